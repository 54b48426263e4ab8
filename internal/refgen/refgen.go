// Package refgen allocates transaction references. A reference is assigned
// once at draft creation and never changes.
package refgen

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Generator interface {
	Next() string
}

type generator struct {
	prefix string
}

func New(prefix string) Generator {
	if prefix == "" {
		prefix = "ZC"
	}
	return &generator{prefix: prefix}
}

func (g *generator) Next() string {
	return fmt.Sprintf("%s-%s-%s", g.prefix, time.Now().UTC().Format("20060102"), uuid.New().String()[:8])
}

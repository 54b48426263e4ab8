package zcredit

import (
	"encoding/json"
	"testing"

	"github.com/Shani242/Z-Credit-Payment-Module/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPayload_Normalization(t *testing.T) {
	p := BuildPayload(domain.TransactionRequest{
		TerminalNumber:   "0882016016",
		TerminalPassword: "Z0882016016",
		CardNumber:       "4532 0151 1283 0366",
		ExpiryDate:       " 12/27 ",
		CVV:              " 123 ",
		CardholderName:   "  John Smith ",
		Amount:           99.90,
		Kind:             domain.KindSale,
	})

	assert.Equal(t, "4532015112830366", p.CardNumber)
	assert.Equal(t, "1227", p.ExpDateMMYY)
	assert.Equal(t, "123", p.CVV)
	assert.Equal(t, "John Smith", p.CardHolderName)
	assert.Equal(t, 99.90, p.TransactionSum)
	assert.Equal(t, jCommit, p.J)
}

func TestBuildPayload_JFlag(t *testing.T) {
	for kind, want := range map[domain.Kind]int{
		domain.KindSale:      jCommit,
		domain.KindRefund:    jCommit,
		domain.KindAuthorize: jAuthorize,
	} {
		p := BuildPayload(domain.TransactionRequest{Kind: kind})
		assert.Equal(t, want, p.J, "kind %s", kind)
	}
}

func TestBuildPayload_WireSchema(t *testing.T) {
	p := BuildPayload(domain.TransactionRequest{
		TerminalNumber:   "t1",
		TerminalPassword: "pw",
		CardNumber:       "4111111111111111",
		ExpiryDate:       "01/30",
		CVV:              "999",
		CardholderName:   "Jane Doe",
		Amount:           10,
		Kind:             domain.KindAuthorize,
	})

	raw, err := json.Marshal(p)
	require.NoError(t, err)

	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &fields))

	// exact processor field names; Kind never goes over the wire
	for _, key := range []string{"TerminalNumber", "password", "CardNumber", "ExpDate_MMYY", "CVV", "CardHolderName", "TransactionSum", "J"} {
		assert.Contains(t, fields, key)
	}
	assert.Len(t, fields, 8)
	assert.Equal(t, float64(5), fields["J"])
}

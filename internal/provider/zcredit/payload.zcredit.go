package zcredit

import (
	"strings"

	"github.com/Shani242/Z-Credit-Payment-Module/internal/domain"
)

// authorize-only (J5) transactions carry flag 5, everything else commits funds
const (
	jCommit    = 0
	jAuthorize = 5
)

// BuildPayload maps a validated request onto the processor wire schema.
// Card number loses its spaces, expiry loses its separator. No validation
// happens here; the validator has already run.
func BuildPayload(req domain.TransactionRequest) domain.GatewayPayload {
	j := jCommit
	if req.Kind == domain.KindAuthorize {
		j = jAuthorize
	}

	return domain.GatewayPayload{
		Kind:           req.Kind,
		TerminalNumber: req.TerminalNumber,
		Password:       req.TerminalPassword,
		CardNumber:     strings.ReplaceAll(req.CardNumber, " ", ""),
		ExpDateMMYY:    strings.ReplaceAll(strings.TrimSpace(req.ExpiryDate), "/", ""),
		CVV:            strings.TrimSpace(req.CVV),
		CardHolderName: strings.TrimSpace(req.CardholderName),
		TransactionSum: req.Amount,
		J:              j,
	}
}

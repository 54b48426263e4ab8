// domain/gateway.go
package domain

import "context"

type OutcomeKind string

const (
	OutcomeHTTP       OutcomeKind = "http"       // completed HTTP exchange, any status code
	OutcomeTimeout    OutcomeKind = "timeout"    // no response in time, processor outcome unknown
	OutcomeCanceled   OutcomeKind = "canceled"   // caller aborted before the call resolved
	OutcomeConnection OutcomeKind = "connection" // endpoint unreachable
	OutcomeTransport  OutcomeKind = "transport"  // any other network-layer failure
)

// GatewayOutcome is the typed result of exactly one send attempt.
// StatusCode and Body are set only for OutcomeHTTP; Detail carries the
// transport diagnostic otherwise.
type GatewayOutcome struct {
	Kind       OutcomeKind
	StatusCode int
	Body       string
	Detail     string
}

// GatewayPayload is the processor wire schema for a charge request. Kind is
// not part of the wire format (sale and refund both commit with J=0); it is
// carried for gateway implementations that apply kind-specific policy.
type GatewayPayload struct {
	Kind           Kind    `json:"-"`
	TerminalNumber string  `json:"TerminalNumber"`
	Password       string  `json:"password"`
	CardNumber     string  `json:"CardNumber"`
	ExpDateMMYY    string  `json:"ExpDate_MMYY"`
	CVV            string  `json:"CVV"`
	CardHolderName string  `json:"CardHolderName"`
	TransactionSum float64 `json:"TransactionSum"`
	J              int     `json:"J"` // 5 = authorize, 0 = sale/refund
}

// Gateway performs one outbound request per Send call. Retry policy, if any,
// belongs to the caller.
type Gateway interface {
	Name() string
	Send(ctx context.Context, payload GatewayPayload) GatewayOutcome
}

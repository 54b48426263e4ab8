package zcredit

import (
	"encoding/json"
	"fmt"
)

// Response is the processor's JSON response body.
type Response struct {
	HasError       bool   `json:"HasError"`
	ReturnCode     int    `json:"ReturnCode"`
	ReturnMessage  string `json:"ReturnMessage"`
	ApprovalNumber string `json:"ApprovalNumber"`
}

// Approved reports the conjunctive success criterion: the exchange completed
// with HTTP 200 and the processor raised neither an error flag nor a non-zero
// return code.
func (r Response) Approved(statusCode int) bool {
	return statusCode == 200 && !r.HasError && r.ReturnCode == 0
}

// ParseResponse decodes a response body. A decode failure means the body is
// kept verbatim for audit and the transaction fails as malformed.
func ParseResponse(body string) (Response, error) {
	var res Response
	if err := json.Unmarshal([]byte(body), &res); err != nil {
		return Response{}, fmt.Errorf("failed to parse processor response: %w", err)
	}
	return res, nil
}

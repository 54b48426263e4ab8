package usecase

import (
	"fmt"

	"github.com/Shani242/Z-Credit-Payment-Module/internal/domain"
	"github.com/Shani242/Z-Credit-Payment-Module/internal/provider/zcredit"
)

// interpret maps a gateway outcome to (status, rawResponse, outcomeMessage).
//
// Timeout and caller cancellation land in pending, not failed: the processor
// may well have taken the charge even though no response arrived here.
// Connection and transport failures happened before any processor response,
// so they are a clean failure and safe to retry on a new transaction.
func interpret(outcome domain.GatewayOutcome) (domain.Status, string, string) {
	switch outcome.Kind {
	case domain.OutcomeTimeout:
		return domain.StatusPending,
			"API Request Timeout: " + outcome.Detail,
			"timeout, status unknown"

	case domain.OutcomeCanceled:
		return domain.StatusPending,
			"Submission Canceled: " + outcome.Detail,
			"canceled before the processor responded, status unknown"

	case domain.OutcomeConnection:
		return domain.StatusFailed,
			"Connection Error: " + outcome.Detail,
			"cannot reach processor: " + outcome.Detail

	case domain.OutcomeTransport:
		return domain.StatusFailed,
			"Request Error: " + outcome.Detail,
			"network error: " + outcome.Detail

	case domain.OutcomeHTTP:
		return interpretHTTP(outcome)
	}

	return domain.StatusFailed,
		fmt.Sprintf("Unexpected Outcome: %q", outcome.Kind),
		"internal processing error"
}

func interpretHTTP(outcome domain.GatewayOutcome) (domain.Status, string, string) {
	res, err := zcredit.ParseResponse(outcome.Body)
	if err != nil {
		// keep the unparseable body verbatim for manual investigation
		return domain.StatusFailed, outcome.Body, "invalid response format"
	}

	if res.Approved(outcome.StatusCode) {
		msg := res.ReturnMessage
		if msg == "" {
			msg = "Transaction Approved"
		}
		if res.ApprovalNumber != "" {
			msg = fmt.Sprintf("%s (approval %s)", msg, res.ApprovalNumber)
		}
		return domain.StatusSuccess, outcome.Body, msg
	}

	declineMsg := res.ReturnMessage
	if declineMsg == "" {
		declineMsg = "Unknown error occurred"
	}
	return domain.StatusFailed, outcome.Body, fmt.Sprintf("%d: %s", res.ReturnCode, declineMsg)
}

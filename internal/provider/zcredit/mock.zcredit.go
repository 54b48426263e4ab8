// internal/provider/zcredit/mock.go
package zcredit

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Shani242/Z-Credit-Payment-Module/internal/config"
	"github.com/Shani242/Z-Credit-Payment-Module/internal/domain"
	"github.com/google/uuid"
)

// test PANs the mock treats as reported stolen/lost
var stolenCards = map[string]bool{
	"4532015112830366": true,
	"5425233010103442": true,
}

// MockGateway simulates the processor for environments without a live
// terminal. It speaks the same wire schema as the live client, so the
// interpreter above it cannot tell the difference.
type MockGateway struct {
	cfg config.ZCreditConfig
}

func NewMockGateway(cfg config.ZCreditConfig) *MockGateway {
	return &MockGateway{cfg: cfg}
}

func (m *MockGateway) Name() string {
	return "zcredit-mock"
}

func (m *MockGateway) Send(_ context.Context, payload domain.GatewayPayload) domain.GatewayOutcome {
	if res, status := m.simulateDecline(payload); res != nil {
		return httpOutcome(status, *res)
	}

	if len(payload.CardNumber) < 15 {
		return httpOutcome(http.StatusBadRequest, Response{
			HasError:      true,
			ReturnCode:    106,
			ReturnMessage: "Invalid Card Format",
		})
	}

	if payload.TerminalNumber != m.cfg.MockTerminalNumber || payload.Password != m.cfg.MockTerminalPassword {
		return httpOutcome(http.StatusUnauthorized, Response{
			HasError:      true,
			ReturnCode:    101,
			ReturnMessage: "Authentication Failed: Invalid Terminal ID or Password",
		})
	}

	if payload.TransactionSum <= 0 {
		return httpOutcome(http.StatusBadRequest, Response{
			HasError:      true,
			ReturnCode:    102,
			ReturnMessage: "Invalid Amount",
		})
	}

	return httpOutcome(http.StatusOK, Response{
		HasError:       false,
		ReturnCode:     0,
		ReturnMessage:  "Transaction Approved",
		ApprovalNumber: fmt.Sprintf("TRX-%s", uuid.New().String()[:8]),
	})
}

// simulateDecline reproduces the known business-decline scenarios: stolen
// card, charge over the credit ceiling, refund over the refund cap.
func (m *MockGateway) simulateDecline(payload domain.GatewayPayload) (*Response, int) {
	if stolenCards[payload.CardNumber] {
		return &Response{
			HasError:      true,
			ReturnCode:    205,
			ReturnMessage: "Card Declined - Do Not Honor (Card is reported stolen/lost)",
		}, http.StatusBadRequest
	}

	if payload.TransactionSum > m.cfg.MockCreditCeiling {
		return &Response{
			HasError:      true,
			ReturnCode:    206,
			ReturnMessage: "Insufficient Funds - Amount exceeds credit limit",
		}, http.StatusBadRequest
	}

	if payload.Kind == domain.KindRefund && payload.TransactionSum > m.cfg.MockRefundCap {
		return &Response{
			HasError:      true,
			ReturnCode:    207,
			ReturnMessage: "Transaction Not Allowed - Refund limit exceeded",
		}, http.StatusBadRequest
	}

	return nil, 0
}

func httpOutcome(status int, res Response) domain.GatewayOutcome {
	body, _ := json.Marshal(res)
	return domain.GatewayOutcome{
		Kind:       domain.OutcomeHTTP,
		StatusCode: status,
		Body:       string(body),
	}
}

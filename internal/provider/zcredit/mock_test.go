package zcredit

import (
	"context"
	"net/http"
	"testing"

	"github.com/Shani242/Z-Credit-Payment-Module/internal/config"
	"github.com/Shani242/Z-Credit-Payment-Module/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mockConfig() config.ZCreditConfig {
	return config.ZCreditConfig{
		MockTerminalNumber:   "0882016016",
		MockTerminalPassword: "Z0882016016",
		MockCreditCeiling:    5000,
		MockRefundCap:        1000,
	}
}

func goodPayload() domain.GatewayPayload {
	return domain.GatewayPayload{
		Kind:           domain.KindSale,
		TerminalNumber: "0882016016",
		Password:       "Z0882016016",
		CardNumber:     "4111111111111111",
		ExpDateMMYY:    "1227",
		CVV:            "123",
		CardHolderName: "John Smith",
		TransactionSum: 150,
		J:              0,
	}
}

func sendMock(t *testing.T, payload domain.GatewayPayload) (int, Response) {
	t.Helper()
	gw := NewMockGateway(mockConfig())
	out := gw.Send(context.Background(), payload)
	require.Equal(t, domain.OutcomeHTTP, out.Kind)
	res, err := ParseResponse(out.Body)
	require.NoError(t, err)
	return out.StatusCode, res
}

func TestMockGateway_Approval(t *testing.T) {
	status, res := sendMock(t, goodPayload())
	assert.Equal(t, http.StatusOK, status)
	assert.False(t, res.HasError)
	assert.Equal(t, 0, res.ReturnCode)
	assert.Equal(t, "Transaction Approved", res.ReturnMessage)
	assert.NotEmpty(t, res.ApprovalNumber)
	assert.True(t, res.Approved(status))
}

func TestMockGateway_StolenCard(t *testing.T) {
	p := goodPayload()
	p.CardNumber = "4532015112830366"
	status, res := sendMock(t, p)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.True(t, res.HasError)
	assert.Equal(t, 205, res.ReturnCode)
	assert.Contains(t, res.ReturnMessage, "stolen/lost")
}

func TestMockGateway_CreditCeiling(t *testing.T) {
	p := goodPayload()
	p.TransactionSum = 5000.01
	status, res := sendMock(t, p)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, 206, res.ReturnCode)
	assert.Contains(t, res.ReturnMessage, "credit limit")
}

func TestMockGateway_RefundCap(t *testing.T) {
	p := goodPayload()
	p.Kind = domain.KindRefund
	p.TransactionSum = 1500
	status, res := sendMock(t, p)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, 207, res.ReturnCode)
	assert.Contains(t, res.ReturnMessage, "Refund limit")

	// same amount as a sale passes the refund cap
	p.Kind = domain.KindSale
	_, res = sendMock(t, p)
	assert.Equal(t, 0, res.ReturnCode)
}

func TestMockGateway_ShortPAN(t *testing.T) {
	p := goodPayload()
	p.CardNumber = "41111111111111" // 14 digits
	_, res := sendMock(t, p)
	assert.Equal(t, 106, res.ReturnCode)
	assert.Equal(t, "Invalid Card Format", res.ReturnMessage)
}

func TestMockGateway_BadTerminal(t *testing.T) {
	p := goodPayload()
	p.Password = "wrong"
	status, res := sendMock(t, p)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, 101, res.ReturnCode)
}

func TestMockGateway_NonPositiveAmount(t *testing.T) {
	p := goodPayload()
	p.TransactionSum = 0
	_, res := sendMock(t, p)
	assert.Equal(t, 102, res.ReturnCode)
}

// internal/handler/transaction.go
package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Shani242/Z-Credit-Payment-Module/internal/domain"
	usecase "github.com/Shani242/Z-Credit-Payment-Module/internal/usecase/transaction"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type TransactionHandler struct {
	uc     *usecase.TransactionUsecase
	logger *zap.Logger
}

func NewTransactionHandler(uc *usecase.TransactionUsecase, logger *zap.Logger) *TransactionHandler {
	return &TransactionHandler{
		uc:     uc,
		logger: logger,
	}
}

// transactionView is what leaves the service: card data is masked, terminal
// credentials and CVV never appear.
type transactionView struct {
	Reference      string     `json:"reference"`
	CardNumber     string     `json:"card_number"`
	CardholderName string     `json:"cardholder_name"`
	Amount         float64    `json:"amount"`
	Kind           string     `json:"kind"`
	Status         string     `json:"status"`
	OutcomeMessage *string    `json:"outcome_message,omitempty"`
	RawResponse    *string    `json:"raw_response,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
}

func viewOf(tx *domain.Transaction) transactionView {
	return transactionView{
		Reference:      tx.Reference,
		CardNumber:     maskCard(tx.Request.CardNumber),
		CardholderName: tx.Request.CardholderName,
		Amount:         tx.Request.Amount,
		Kind:           string(tx.Request.Kind),
		Status:         string(tx.Status),
		OutcomeMessage: tx.OutcomeMessage,
		RawResponse:    tx.RawResponse,
		CreatedAt:      tx.CreatedAt,
		CompletedAt:    tx.CompletedAt,
	}
}

func maskCard(card string) string {
	digits := strings.ReplaceAll(card, " ", "")
	if len(digits) <= 4 {
		return digits
	}
	return strings.Repeat("*", len(digits)-4) + digits[len(digits)-4:]
}

// CreateTransaction creates a draft record with a fresh reference.
func (h *TransactionHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req domain.TransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode transaction request", zap.Error(err))
		h.sendError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if req.Kind == "" {
		req.Kind = domain.KindSale
	}

	tx, err := h.uc.CreateDraft(ctx, req)
	if err != nil {
		var vErr *usecase.ValidationFailedError
		if errors.As(err, &vErr) {
			h.sendValidationError(w, vErr)
			return
		}
		h.logger.Error("failed to create transaction", zap.Error(err))
		h.sendError(w, http.StatusInternalServerError, "failed to create transaction", nil)
		return
	}

	h.sendSuccess(w, http.StatusCreated, "transaction created", viewOf(tx))
}

// SubmitTransaction runs the submission pipeline for an existing draft.
func (h *TransactionHandler) SubmitTransaction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reference := chi.URLParam(r, "reference")

	tx, err := h.uc.Submit(ctx, reference)
	if err != nil {
		var vErr *usecase.ValidationFailedError
		switch {
		case errors.Is(err, domain.ErrTransactionNotFound):
			h.sendError(w, http.StatusNotFound, "transaction not found", nil)
		case errors.Is(err, domain.ErrDuplicateTransaction):
			h.sendError(w, http.StatusConflict, "transaction was already processed", err)
		case errors.Is(err, domain.ErrSubmissionInFlight):
			h.sendError(w, http.StatusConflict, "another submission is in progress", err)
		case errors.As(err, &vErr):
			h.sendValidationError(w, vErr)
		default:
			h.logger.Error("submission failed",
				zap.String("reference", reference),
				zap.Error(err))
			h.sendError(w, http.StatusInternalServerError, "failed to submit transaction", nil)
		}
		return
	}

	h.sendSuccess(w, http.StatusOK, "transaction submitted", viewOf(tx))
}

// GetTransaction fetches one record by reference.
func (h *TransactionHandler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	reference := chi.URLParam(r, "reference")

	tx, err := h.uc.Get(r.Context(), reference)
	if err != nil {
		if errors.Is(err, domain.ErrTransactionNotFound) {
			h.sendError(w, http.StatusNotFound, "transaction not found", nil)
			return
		}
		h.logger.Error("failed to fetch transaction",
			zap.String("reference", reference),
			zap.Error(err))
		h.sendError(w, http.StatusInternalServerError, "failed to fetch transaction", nil)
		return
	}

	h.sendSuccess(w, http.StatusOK, "transaction", viewOf(tx))
}

// ListTransactions returns recent records, newest first.
func (h *TransactionHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	txs, total, err := h.uc.List(r.Context(), limit, offset)
	if err != nil {
		h.logger.Error("failed to list transactions", zap.Error(err))
		h.sendError(w, http.StatusInternalServerError, "failed to list transactions", nil)
		return
	}

	views := make([]transactionView, 0, len(txs))
	for i := range txs {
		views = append(views, viewOf(&txs[i]))
	}

	h.sendSuccess(w, http.StatusOK, "transactions", map[string]interface{}{
		"total":        total,
		"transactions": views,
	})
}

// Response helpers
func (h *TransactionHandler) sendSuccess(w http.ResponseWriter, statusCode int, message string, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": message,
		"data":    data,
	})
}

func (h *TransactionHandler) sendError(w http.ResponseWriter, statusCode int, message string, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	response := map[string]interface{}{
		"success": false,
		"message": message,
	}
	if err != nil {
		response["error"] = err.Error()
	}

	json.NewEncoder(w).Encode(response)
}

func (h *TransactionHandler) sendValidationError(w http.ResponseWriter, vErr *usecase.ValidationFailedError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnprocessableEntity)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success":    false,
		"message":    "validation failed",
		"violations": vErr.Violations,
	})
}

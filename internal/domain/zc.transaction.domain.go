// domain/transaction.go
package domain

import (
	"errors"
	"time"
)

type Status string
type Kind string

const (
	StatusDraft      Status = "draft"
	StatusProcessing Status = "processing"
	StatusSuccess    Status = "success"
	StatusFailed     Status = "failed"
	StatusPending    Status = "pending" // timeout, outcome unknown at the processor
)

const (
	KindSale      Kind = "sale"
	KindAuthorize Kind = "authorize"
	KindRefund    Kind = "refund"
)

var (
	ErrTransactionNotFound  = errors.New("transaction not found")
	ErrDuplicateTransaction = errors.New("transaction was already processed, duplicate transactions are not allowed")
	ErrInvalidTransition    = errors.New("invalid status transition")
	ErrSubmissionInFlight   = errors.New("another submission for this transaction is in progress")
)

// TransactionRequest is the immutable card-payment input. It is validated and
// transmitted, never stored beyond the owning Transaction record.
type TransactionRequest struct {
	TerminalNumber   string  `json:"terminal_number"`
	TerminalPassword string  `json:"terminal_password"`
	CardNumber       string  `json:"card_number"`
	ExpiryDate       string  `json:"expiry_date"` // MM/YY
	CVV              string  `json:"cvv"`
	CardholderName   string  `json:"cardholder_name"`
	Amount           float64 `json:"amount"`
	Kind             Kind    `json:"kind"`
}

// Transaction is the durable record of one payment attempt.
type Transaction struct {
	ID             int64              `json:"id"`
	Reference      string             `json:"reference"`
	Request        TransactionRequest `json:"request"`
	Status         Status             `json:"status"`
	RawResponse    *string            `json:"raw_response,omitempty"`    // last response body or transport diagnostic, audit only
	OutcomeMessage *string            `json:"outcome_message,omitempty"` // short human-readable summary
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
	CompletedAt    *time.Time         `json:"completed_at,omitempty"`
}

// legal transitions; terminal statuses have no outgoing edges
var transitions = map[Status][]Status{
	StatusDraft:      {StatusProcessing},
	StatusProcessing: {StatusSuccess, StatusFailed, StatusPending},
}

// CanTransition reports whether moving from s to next is legal.
func (s Status) CanTransition(next Status) bool {
	for _, n := range transitions[s] {
		if n == next {
			return true
		}
	}
	return false
}

// Terminal reports whether s admits no further automatic transition.
// Pending is terminal for the attempt: the outcome is unknown, not retried.
func (s Status) Terminal() bool {
	return s == StatusSuccess || s == StatusFailed || s == StatusPending
}

// Resolved reports whether the record left draft, i.e. a submission has run
// (or is running). The duplicate guard rejects resubmission of resolved records.
func (s Status) Resolved() bool {
	return s != StatusDraft && s != ""
}

// Transition moves the transaction to next or fails with ErrInvalidTransition.
func (t *Transaction) Transition(next Status) error {
	if !t.Status.CanTransition(next) {
		return ErrInvalidTransition
	}
	t.Status = next
	return nil
}

func ValidKind(k Kind) bool {
	switch k {
	case KindSale, KindAuthorize, KindRefund:
		return true
	}
	return false
}

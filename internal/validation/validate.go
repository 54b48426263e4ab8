// Package validation checks a transaction request against format and business
// rules before anything touches the network. All rules are evaluated so the
// caller can report every problem at once.
package validation

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/Shani242/Z-Credit-Payment-Module/internal/domain"
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

type Validator struct {
	maxAmount float64
	now       func() time.Time
}

func New(maxAmount float64) *Validator {
	return &Validator{maxAmount: maxAmount, now: time.Now}
}

// NewAt builds a validator with a fixed clock, for expiry checks in tests.
func NewAt(maxAmount float64, now func() time.Time) *Validator {
	return &Validator{maxAmount: maxAmount, now: now}
}

type rule func(domain.TransactionRequest) *FieldError

// Validate runs every rule and returns all violations. It never mutates the
// request and performs no I/O.
func (v *Validator) Validate(req domain.TransactionRequest) []FieldError {
	rules := []rule{
		v.checkAmount,
		v.checkCardNumber,
		v.checkExpiry,
		v.checkCVV,
		v.checkCardholderName,
		v.checkTerminal,
		v.checkKind,
	}

	var errs []FieldError
	for _, r := range rules {
		if e := r(req); e != nil {
			errs = append(errs, *e)
		}
	}
	return errs
}

func (v *Validator) checkAmount(req domain.TransactionRequest) *FieldError {
	if req.Amount <= 0 {
		return &FieldError{Field: "amount", Message: "amount must be a positive number"}
	}
	if v.maxAmount > 0 && req.Amount > v.maxAmount {
		return &FieldError{Field: "amount", Message: "amount exceeds maximum allowed limit"}
	}
	return nil
}

func (v *Validator) checkCardNumber(req domain.TransactionRequest) *FieldError {
	card := strings.ReplaceAll(req.CardNumber, " ", "")
	if len(card) < 13 || len(card) > 19 {
		return &FieldError{Field: "card_number", Message: "card number must be between 13-19 digits"}
	}
	if !digitsOnly(card) {
		return &FieldError{Field: "card_number", Message: "card number must contain only digits"}
	}
	return nil
}

// checkExpiry accepts MM/YY, resolves YY against century base 2000 and treats
// the card as valid through the end of its listed month.
func (v *Validator) checkExpiry(req domain.TransactionRequest) *FieldError {
	expiry := strings.TrimSpace(req.ExpiryDate)
	if len(expiry) != 5 || expiry[2] != '/' ||
		!digitsOnly(expiry[:2]) || !digitsOnly(expiry[3:]) {
		return &FieldError{Field: "expiry_date", Message: "expiry date must be in MM/YY format (e.g., 12/25)"}
	}

	month, _ := strconv.Atoi(expiry[:2])
	year, _ := strconv.Atoi(expiry[3:])
	if month < 1 || month > 12 {
		return &FieldError{Field: "expiry_date", Message: "month must be between 01 and 12"}
	}

	now := v.now()
	fullYear := 2000 + year
	if fullYear < now.Year() || (fullYear == now.Year() && time.Month(month) < now.Month()) {
		return &FieldError{Field: "expiry_date", Message: fmt.Sprintf("card has expired, expiry date: %s", expiry)}
	}
	return nil
}

func (v *Validator) checkCVV(req domain.TransactionRequest) *FieldError {
	cvv := strings.TrimSpace(req.CVV)
	if (len(cvv) != 3 && len(cvv) != 4) || !digitsOnly(cvv) {
		return &FieldError{Field: "cvv", Message: "cvv must be 3 or 4 digits"}
	}
	return nil
}

func (v *Validator) checkCardholderName(req domain.TransactionRequest) *FieldError {
	name := strings.TrimSpace(req.CardholderName)
	if len(name) < 3 {
		return &FieldError{Field: "cardholder_name", Message: "cardholder name must be at least 3 characters"}
	}
	if len(name) > 100 {
		return &FieldError{Field: "cardholder_name", Message: "cardholder name must not exceed 100 characters"}
	}
	for _, r := range name {
		if !unicode.IsLetter(r) && r != ' ' && r != '-' && r != '.' {
			return &FieldError{Field: "cardholder_name", Message: "cardholder name may only contain letters, spaces, hyphens, and dots"}
		}
	}
	return nil
}

func (v *Validator) checkTerminal(req domain.TransactionRequest) *FieldError {
	if strings.TrimSpace(req.TerminalNumber) == "" || strings.TrimSpace(req.TerminalPassword) == "" {
		return &FieldError{Field: "terminal", Message: "terminal number and password are required"}
	}
	return nil
}

func (v *Validator) checkKind(req domain.TransactionRequest) *FieldError {
	if !domain.ValidKind(req.Kind) {
		return &FieldError{Field: "kind", Message: "transaction type must be one of sale, authorize, refund"}
	}
	return nil
}

func digitsOnly(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

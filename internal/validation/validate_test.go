package validation

import (
	"strings"
	"testing"
	"time"

	"github.com/Shani242/Z-Credit-Payment-Module/internal/domain"
)

// fixed clock: June 2025
func testClock() time.Time {
	return time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)
}

func validRequest() domain.TransactionRequest {
	return domain.TransactionRequest{
		TerminalNumber:   "0882016016",
		TerminalPassword: "Z0882016016",
		CardNumber:       "4111 1111 1111 1111",
		ExpiryDate:       "12/27",
		CVV:              "123",
		CardholderName:   "John Smith",
		Amount:           150.00,
		Kind:             domain.KindSale,
	}
}

func fieldOf(errs []FieldError) map[string]string {
	m := make(map[string]string)
	for _, e := range errs {
		m[e.Field] = e.Message
	}
	return m
}

func TestValidate_AllValid(t *testing.T) {
	v := NewAt(999999.99, testClock)
	if errs := v.Validate(validRequest()); len(errs) != 0 {
		t.Fatalf("expected no violations, got %v", errs)
	}
}

func TestValidate_Amount(t *testing.T) {
	v := NewAt(999999.99, testClock)

	cases := []struct {
		name   string
		amount float64
		valid  bool
	}{
		{"zero", 0, false},
		{"negative", -10, false},
		{"boundary max", 999999.99, true},
		{"over max", 1000000, false},
		{"small positive", 0.01, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			req.Amount = tc.amount
			_, bad := fieldOf(v.Validate(req))["amount"]
			if tc.valid && bad {
				t.Fatalf("amount %v: unexpected violation", tc.amount)
			}
			if !tc.valid && !bad {
				t.Fatalf("amount %v: expected violation", tc.amount)
			}
		})
	}
}

func TestValidate_CardNumber(t *testing.T) {
	v := NewAt(999999.99, testClock)

	cases := []struct {
		name  string
		card  string
		valid bool
	}{
		{"16 digits with spaces", "4532 0151 1283 0366", true},
		{"13 digits", "4222222222222", true},
		{"19 digits", "4123456789012345678", true},
		{"too short", "123", false},
		{"20 digits", "12345678901234567890", false},
		{"letters", "4111a1111111b111", false},
		{"empty", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			req.CardNumber = tc.card
			_, bad := fieldOf(v.Validate(req))["card_number"]
			if tc.valid == bad {
				t.Fatalf("card %q: valid=%v but violation=%v", tc.card, tc.valid, bad)
			}
		})
	}
}

func TestValidate_Expiry(t *testing.T) {
	v := NewAt(999999.99, testClock)

	cases := []struct {
		name   string
		expiry string
		valid  bool
	}{
		{"future", "12/27", true},
		{"current month", "06/25", true}, // valid through end of the listed month
		{"one month past", "05/25", false},
		{"past year", "12/24", false},
		{"month 13", "13/25", false},
		{"month 00", "00/25", false},
		{"no separator", "1225", false},
		{"bad format", "1/25", false},
		{"letters", "ab/cd", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			req.ExpiryDate = tc.expiry
			_, bad := fieldOf(v.Validate(req))["expiry_date"]
			if tc.valid == bad {
				t.Fatalf("expiry %q: valid=%v but violation=%v", tc.expiry, tc.valid, bad)
			}
		})
	}
}

func TestValidate_CVV(t *testing.T) {
	v := NewAt(999999.99, testClock)

	cases := []struct {
		cvv   string
		valid bool
	}{
		{"123", true},
		{"1234", true},
		{"12", false},
		{"12345", false},
		{"12a", false},
		{"", false},
	}

	for _, tc := range cases {
		req := validRequest()
		req.CVV = tc.cvv
		_, bad := fieldOf(v.Validate(req))["cvv"]
		if tc.valid == bad {
			t.Fatalf("cvv %q: valid=%v but violation=%v", tc.cvv, tc.valid, bad)
		}
	}
}

func TestValidate_CardholderName(t *testing.T) {
	v := NewAt(999999.99, testClock)

	cases := []struct {
		name   string
		holder string
		valid  bool
	}{
		{"plain", "John Smith", true},
		{"hyphen and dot", "J. Smith-Jones", true},
		{"too short", "Jo", false},
		{"trimmed too short", "  A  ", false},
		{"max length", strings.Repeat("a", 100), true},
		{"over max", strings.Repeat("a", 101), false},
		{"digits", "John Smith 3rd", false},
		{"symbols", "John; DROP TABLE", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			req.CardholderName = tc.holder
			_, bad := fieldOf(v.Validate(req))["cardholder_name"]
			if tc.valid == bad {
				t.Fatalf("name %q: valid=%v but violation=%v", tc.holder, tc.valid, bad)
			}
		})
	}
}

func TestValidate_CollectsAllViolations(t *testing.T) {
	v := NewAt(999999.99, testClock)

	req := domain.TransactionRequest{
		CardNumber:     "123",
		ExpiryDate:     "13/20",
		CVV:            "1",
		CardholderName: "x",
		Amount:         -5,
		Kind:           "chargeback",
	}

	errs := v.Validate(req)
	fields := fieldOf(errs)
	for _, want := range []string{"amount", "card_number", "expiry_date", "cvv", "cardholder_name", "terminal", "kind"} {
		if _, ok := fields[want]; !ok {
			t.Fatalf("expected violation for %q, got %v", want, errs)
		}
	}
}

package payments

import (
	"errors"
	"testing"
)

func TestValidate(t *testing.T) {
	testCases := []struct {
		name   string
		record Record
		want   Transaction
	}{
		{
			name:   "deposit",
			record: Record{Type: "deposit", Client: "1", Tx: "2", Amount: "1.5"},
			want:   NewDeposit(1, 2, A("1.5")),
		},
		{
			name:   "withdrawal with spaces and case",
			record: Record{Type: " Withdrawal ", Client: " 7 ", Tx: " 9", Amount: "0.25 "},
			want:   NewWithdrawal(7, 9, A("0.25")),
		},
		{
			name:   "dispute ignores amount",
			record: Record{Type: "dispute", Client: "1", Tx: "2", Amount: "garbage"},
			want:   NewDispute(1, 2),
		},
		{
			name:   "resolve without amount",
			record: Record{Type: "resolve", Client: "1", Tx: "2"},
			want:   NewResolve(1, 2),
		},
		{
			name:   "chargeback",
			record: Record{Type: "CHARGEBACK", Client: "65535", Tx: "4294967295"},
			want:   NewChargeback(65535, 4294967295),
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Validate(tc.record)
			if err != nil {
				t.Fatalf("Validate() failed: %v", err)
			}
			if got.Type != tc.want.Type || got.Client != tc.want.Client || got.ID != tc.want.ID || !got.Amount.Equal(tc.want.Amount) {
				t.Errorf("Validate() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestValidate_Rejections(t *testing.T) {
	testCases := []struct {
		name   string
		record Record
		want   error
	}{
		{"unknown type", Record{Type: "refund", Client: "1", Tx: "1", Amount: "1"}, ErrUnknownType},
		{"empty type", Record{Type: "", Client: "1", Tx: "1", Amount: "1"}, ErrUnknownType},
		{"deposit without amount", Record{Type: "deposit", Client: "1", Tx: "1"}, ErrMissingAmount},
		{"withdrawal blank amount", Record{Type: "withdrawal", Client: "1", Tx: "1", Amount: "  "}, ErrMissingAmount},
		{"negative amount", Record{Type: "deposit", Client: "1", Tx: "1", Amount: "-1"}, ErrInvalidAmount},
		{"too precise", Record{Type: "deposit", Client: "1", Tx: "1", Amount: "1.00001"}, ErrInvalidAmount},
		{"not a number", Record{Type: "withdrawal", Client: "1", Tx: "1", Amount: "one"}, ErrInvalidAmount},
		{"client not a number", Record{Type: "deposit", Client: "x", Tx: "1", Amount: "1"}, ErrMalformedRecord},
		{"client out of range", Record{Type: "deposit", Client: "65536", Tx: "1", Amount: "1"}, ErrMalformedRecord},
		{"negative client", Record{Type: "deposit", Client: "-1", Tx: "1", Amount: "1"}, ErrMalformedRecord},
		{"tx out of range", Record{Type: "dispute", Client: "1", Tx: "4294967296"}, ErrMalformedRecord},
		{"missing tx", Record{Type: "dispute", Client: "1"}, ErrMalformedRecord},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Validate(tc.record)
			if !errors.Is(err, tc.want) {
				t.Errorf("Validate() error = %v, want %v", err, tc.want)
			}
			if !IsRejection(err) {
				t.Errorf("IsRejection(%v) = false", err)
			}
		})
	}
}

func TestParseCommandType(t *testing.T) {
	for _, s := range []string{"deposit", "withdrawal", "dispute", "resolve", "chargeback"} {
		c, err := ParseCommandType(s)
		if err != nil || string(c) != s {
			t.Errorf("ParseCommandType(%q) = %q, %v", s, c, err)
		}
	}
	if _, err := ParseCommandType("withdraw"); !errors.Is(err, ErrUnknownType) {
		t.Errorf("ParseCommandType(withdraw) error = %v, want ErrUnknownType", err)
	}
}

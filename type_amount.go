package payments

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Precision is the maximum number of fractional digits an Amount carries.
const Precision = 4

// amountPattern accepts plain non-negative decimal literals: no sign, no exponent.
var amountPattern = regexp.MustCompile(`^(\d+(\.\d+)?|\.\d+)$`)

// Amount is an exact, non-negative monetary value with at most Precision
// fractional digits. Its zero value is 0.
type Amount struct {
	value decimal.Decimal
}

// A is a convenient factory for Amount, mostly used in tests.
//
// It panics if v is negative or too precise.
func A[T int | int64 | float64 | string](v T) Amount {
	var d decimal.Decimal
	switch x := any(v).(type) {
	case int:
		d = decimal.NewFromInt(int64(x))
	case int64:
		d = decimal.NewFromInt(x)
	case float64:
		d = decimal.NewFromFloat(x)
	case string:
		a, err := ParseAmount(x)
		if err != nil {
			panic(err)
		}
		return a
	}
	if d.IsNegative() || !d.Equal(d.Truncate(Precision)) {
		panic(fmt.Sprintf("invalid amount %v", v))
	}
	return Amount{value: d}
}

// ParseAmount parses a decimal literal such as "1", "1.5" or "0.0001".
//
// Negative values, exponents, malformed numbers and values that need more than
// Precision fractional digits fail with ErrInvalidAmount. Digits are counted as
// written, trailing zeros included: "1.50000" is refused, never rounded.
func ParseAmount(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	if !amountPattern.MatchString(s) {
		return Amount{}, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if dot := strings.IndexByte(s, '.'); dot >= 0 && len(s)-dot-1 > Precision {
		return Amount{}, fmt.Errorf("%w: %q has more than %d decimal places", ErrInvalidAmount, s, Precision)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, fmt.Errorf("%w: %q: %v", ErrInvalidAmount, s, err)
	}
	return Amount{value: d}, nil
}

func (a Amount) Add(b Amount) Amount { return Amount{value: a.value.Add(b.value)} }

// Sub returns a-b. Callers check LessThan first: an Amount is never meant to go negative.
func (a Amount) Sub(b Amount) Amount { return Amount{value: a.value.Sub(b.value)} }

func (a Amount) Equal(b Amount) bool              { return a.value.Equal(b.value) }
func (a Amount) LessThan(b Amount) bool           { return a.value.LessThan(b.value) }
func (a Amount) GreaterThanOrEqual(b Amount) bool { return a.value.GreaterThanOrEqual(b.value) }
func (a Amount) IsZero() bool                     { return a.value.IsZero() }
func (a Amount) IsNegative() bool                 { return a.value.IsNegative() }

// Decimal returns the underlying decimal value.
func (a Amount) Decimal() decimal.Decimal { return a.value }

// String returns the minimal exact representation: "3.5", "0", "10".
func (a Amount) String() string { return a.value.String() }

// MarshalJSON renders the amount as a quoted decimal string so no precision
// is lost to float parsing on the reading side.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(`"` + a.String() + `"`), nil
}

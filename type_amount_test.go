package payments

import (
	"errors"
	"testing"
)

func TestParseAmount(t *testing.T) {
	testCases := []struct {
		input string
		want  string
	}{
		{"1", "1"},
		{"1.5", "1.5"},
		{" 2.25 ", "2.25"},
		{"0", "0"},
		{"0.0001", "0.0001"},
		{".5", "0.5"},
		{"1.5000", "1.5"},
		{"0010.1000", "10.1"},
		{"123456789012345.1234", "123456789012345.1234"},
	}
	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParseAmount(tc.input)
			if err != nil {
				t.Fatalf("ParseAmount(%q) failed: %v", tc.input, err)
			}
			if got.String() != tc.want {
				t.Errorf("ParseAmount(%q) = %s, want %s", tc.input, got, tc.want)
			}
		})
	}
}

func TestParseAmount_Invalid(t *testing.T) {
	for _, input := range []string{"", " ", "-1", "-0.5", "+1", "1e3", "abc", "1.2.3", "1.", "0.00001", "1.23456", "1.00000", " 2.50000 ", "1,5", "NaN"} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseAmount(input)
			if !errors.Is(err, ErrInvalidAmount) {
				t.Errorf("ParseAmount(%q) error = %v, want ErrInvalidAmount", input, err)
			}
		})
	}
}

func TestAmount_Arithmetic(t *testing.T) {
	// 0.1 + 0.2 is exact in decimal.
	sum := A("0.1").Add(A("0.2"))
	if !sum.Equal(A("0.3")) {
		t.Errorf("0.1+0.2 = %s, want 0.3", sum)
	}
	if got := A("10").Sub(A("0.0001")); got.String() != "9.9999" {
		t.Errorf("10-0.0001 = %s, want 9.9999", got)
	}
	if !A(1).LessThan(A(2)) || A(2).LessThan(A(1)) {
		t.Error("LessThan is wrong")
	}
	if !A(2).GreaterThanOrEqual(A(2)) {
		t.Error("GreaterThanOrEqual is wrong")
	}
	var zero Amount
	if !zero.IsZero() || zero.String() != "0" {
		t.Errorf("zero Amount = %s, want 0", zero)
	}
}

func TestAmount_MarshalJSON(t *testing.T) {
	b, err := A("3.5").MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `"3.5"` {
		t.Errorf("MarshalJSON() = %s, want \"3.5\"", b)
	}
}

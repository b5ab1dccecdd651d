package shared

import (
	"math/big"
	"testing"
)

func TestParseUnits(t *testing.T) {
	cases := []struct {
		input    string
		decimals uint8
		expected string
	}{
		{"1000000", 18, "1000000000000000000000000"},
		{"1000", 18, "1000000000000000000000"},
		{"10", 18, "10000000000000000000"},
		{"0.5", 18, "500000000000000000"},
		{".25", 2, "25"},
		{"1.", 6, "1000000"},
		{"7", 0, "7"},
		{" 3.141 ", 3, "3141"},
	}

	for _, tc := range cases {
		result, err := ParseUnits(tc.input, tc.decimals)
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", tc.input, err)
		}
		if result.String() != tc.expected {
			t.Fatalf("expected %s for %q, got %s", tc.expected, tc.input, result)
		}
	}
}

func TestParseUnitsInvalid(t *testing.T) {
	invalid := []string{"", ".", "-1", "1e18", "1,000", "abc", "1.2.3"}
	for _, input := range invalid {
		if _, err := ParseUnits(input, 18); err == nil {
			t.Fatalf("expected error for %q", input)
		}
	}

	if _, err := ParseUnits("0.001", 2); err == nil {
		t.Fatal("expected error for too many decimal places")
	}
}

func TestFormatUnits(t *testing.T) {
	cases := []struct {
		amount   *big.Int
		decimals uint8
		expected string
	}{
		{nil, 18, "0"},
		{big.NewInt(0), 18, "0"},
		{MustParseUnits("1000", 18), 18, "1000"},
		{MustParseUnits("0.5", 18), 18, "0.5"},
		{big.NewInt(1), 18, "0.000000000000000001"},
		{big.NewInt(-150), 2, "-1.5"},
		{big.NewInt(42), 0, "42"},
	}

	for _, tc := range cases {
		result := FormatUnits(tc.amount, tc.decimals)
		if result != tc.expected {
			t.Fatalf("expected %q, got %q", tc.expected, result)
		}
	}
}

func TestMustParseUnitsPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	MustParseUnits("bad", 18)
}

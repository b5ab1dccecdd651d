package shared

import (
	"fmt"
	"math/big"
	"strings"
)

// DefaultDecimals is the decimals value used by SimpleToken.
const DefaultDecimals = 18

// ParseUnits converts a decimal string such as "1000.5" into base units.
func ParseUnits(value string, decimals uint8) (*big.Int, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil, fmt.Errorf("amount cannot be empty")
	}

	whole, fraction, hasFraction := strings.Cut(trimmed, ".")
	if whole == "" && (!hasFraction || fraction == "") {
		return nil, fmt.Errorf("invalid amount %q", value)
	}
	if !isDigits(whole) || !isDigits(fraction) {
		return nil, fmt.Errorf("invalid amount %q", value)
	}
	if len(fraction) > int(decimals) {
		return nil, fmt.Errorf("amount %q has more than %d decimal places", value, decimals)
	}

	digits := whole + fraction + strings.Repeat("0", int(decimals)-len(fraction))
	amount, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		return nil, fmt.Errorf("invalid amount %q", value)
	}
	return amount, nil
}

// MustParseUnits is ParseUnits for constants; it panics on malformed input.
func MustParseUnits(value string, decimals uint8) *big.Int {
	amount, err := ParseUnits(value, decimals)
	if err != nil {
		panic(err)
	}
	return amount
}

// FormatUnits renders base units as a decimal string without trailing zeros.
func FormatUnits(amount *big.Int, decimals uint8) string {
	if amount == nil {
		return "0"
	}

	negative := amount.Sign() < 0
	digits := new(big.Int).Abs(amount).String()
	if len(digits) <= int(decimals) {
		digits = strings.Repeat("0", int(decimals)-len(digits)+1) + digits
	}

	split := len(digits) - int(decimals)
	whole := digits[:split]
	fraction := strings.TrimRight(digits[split:], "0")

	result := whole
	if fraction != "" {
		result = whole + "." + fraction
	}
	if negative {
		result = "-" + result
	}
	return result
}

func isDigits(value string) bool {
	for _, character := range value {
		if character < '0' || character > '9' {
			return false
		}
	}
	return true
}

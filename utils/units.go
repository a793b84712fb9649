package utils

import (
	"fmt"
	"math/big"
	"strings"
)

// ParseUnits converts a human decimal amount ("1.5") into base units with the
// given number of decimals. The full precision of the input is preserved;
// more fractional digits than the token supports is an error.
func ParseUnits(s string, decimals int) (*big.Int, error) {
	s = strings.TrimSpace(s)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	if s == "" || s == "." {
		return nil, fmt.Errorf("invalid amount %q", s)
	}
	intPart, fracPart, _ := strings.Cut(s, ".")
	if intPart == "" {
		intPart = "0"
	}
	if len(fracPart) > decimals {
		return nil, fmt.Errorf("amount %q has more than %d decimal places", s, decimals)
	}
	fracPart += strings.Repeat("0", decimals-len(fracPart))

	v, ok := new(big.Int).SetString(intPart+fracPart, 10)
	if !ok {
		return nil, fmt.Errorf("invalid amount %q", s)
	}
	if neg {
		v.Neg(v)
	}
	return v, nil
}

// FormatUnits renders a base-unit amount as a decimal string, trimming
// trailing fractional zeros. Precision is never lost: the digits come
// straight from the big integer.
func FormatUnits(v *big.Int, decimals int) string {
	if v == nil {
		return "0"
	}
	digits := new(big.Int).Abs(v).String()
	if len(digits) <= decimals {
		digits = strings.Repeat("0", decimals-len(digits)+1) + digits
	}
	intPart := digits[:len(digits)-decimals]
	fracPart := strings.TrimRight(digits[len(digits)-decimals:], "0")

	out := intPart
	if fracPart != "" {
		out += "." + fracPart
	}
	if v.Sign() < 0 {
		out = "-" + out
	}
	return out
}

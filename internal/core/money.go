// Package core provides money parsing and formatting utilities.
//
// This file contains functions for parsing monetary amounts from strings
// and formatting cents for display.
package core

import (
	"strconv"
	"strings"
	"unicode"
)

// ParseDecimalToCents converts a decimal string to cents with proper rounding.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators and performs
// half-up rounding on the third decimal place. The result is always positive cents.
// Returns an error for invalid formats, negative values, or zero amounts.
//
// Examples:
//   ParseDecimalToCents("12.34") -> 1234, nil
//   ParseDecimalToCents("12,34") -> 1234, nil
//   ParseDecimalToCents("12.345") -> 1234, nil (rounds down)
//   ParseDecimalToCents("12.346") -> 1235, nil (rounds up)
func ParseDecimalToCents(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	// Normalize decimal comma to dot
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		// Only positive values allowed
		return 0, ErrInvalidAmount
	}
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, ErrInvalidAmount
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}
	for _, r := range fracPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}
	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	// Prevent overflow when multiplying by 100
	const maxSafeInt64 = (1<<63 - 1) / 100
	if iv > maxSafeInt64 {
		return 0, ErrInvalidAmount
	}
	// Take first two fractional digits; then half-up rounding on third
	var fracCents int64
	if len(fracPart) > 0 {
		d1 := int64(fracPart[0] - '0')
		fracCents = d1 * 10
		if len(fracPart) > 1 {
			d2 := int64(fracPart[1] - '0')
			fracCents += d2
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				fracCents++
			}
		}
	}
	cents := iv*100 + fracCents
	if cents <= 0 {
		return 0, ErrInvalidAmount
	}
	return cents, nil
}

// Format renders the amount for display with thousands separators and
// two decimals: 123456789 -> "1,234,567.89". Negative amounts keep a
// leading minus so over-budget values stand out.
func (m Money) Format() string {
	cents := m.Cents
	neg := cents < 0
	if neg {
		cents = -cents
	}
	whole := cents / 100
	rem := cents % 100

	digits := strconv.FormatInt(whole, 10)
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
		if len(digits) > lead {
			b.WriteByte(',')
		}
	}
	for i := lead; i < len(digits); i += 3 {
		b.WriteString(digits[i : i+3])
		if i+3 < len(digits) {
			b.WriteByte(',')
		}
	}
	b.WriteByte('.')
	if rem < 10 {
		b.WriteByte('0')
	}
	b.WriteString(strconv.FormatInt(rem, 10))
	return b.String()
}

// Amount returns the value as a float64 for display purposes only.
// Use cents for calculations to avoid floating-point precision issues.
func (m Money) Amount() float64 {
	return float64(m.Cents) / 100.0
}

// Package core provides money parsing and handling utilities.
//
// This file contains functions for parsing monetary amounts typed into forms
// and formatting them back for display.
package core

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// arabicDigits maps Arabic-Indic and Eastern Arabic-Indic digits to ASCII.
var arabicDigits = strings.NewReplacer(
	"٠", "0", "١", "1", "٢", "2", "٣", "3", "٤", "4",
	"٥", "5", "٦", "6", "٧", "7", "٨", "8", "٩", "9",
	"۰", "0", "۱", "1", "۲", "2", "۳", "3", "۴", "4",
	"۵", "5", "۶", "6", "۷", "7", "۸", "8", "۹", "9",
	"٫", ".", "٬", "",
)

// ParseAmount converts a decimal string into a non-negative amount.
//
// It accepts dot (12.34), comma (12,34) and Arabic (١٢٫٣٤) decimal
// separators. Signs, exponents and anything but digits and a single
// separator are rejected with ErrInvalidAmount. Zero is accepted; callers
// that need a positive value check IsPositive themselves.
//
// Examples:
//   ParseAmount("12.34") -> 12.34, nil
//   ParseAmount("12,34") -> 12.34, nil
//   ParseAmount("٥٠")    -> 50, nil
//   ParseAmount("-1")    -> 0, ErrInvalidAmount
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(arabicDigits.Replace(s))
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")

	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return decimal.Zero, ErrInvalidAmount
	}
	if parts[0] == "" && (len(parts) == 1 || parts[1] == "") {
		return decimal.Zero, ErrInvalidAmount
	}
	for _, p := range parts {
		for _, r := range p {
			if r > unicode.MaxASCII || !unicode.IsDigit(r) {
				return decimal.Zero, ErrInvalidAmount
			}
		}
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}

// ParseAmountOrZero treats an empty field as zero, like the add-client form.
func ParseAmountOrZero(s string) (decimal.Decimal, error) {
	if strings.TrimSpace(s) == "" {
		return decimal.Zero, nil
	}
	return ParseAmount(s)
}

// FormatAmount renders an amount with two decimals for display and export.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

package models

import (
	"fmt"
	"strconv"
	"strings"
)

// FieldType is the declared kind of a custom field. The stored value is
// always a raw string regardless of type; the type only drives presentation.
type FieldType string

const (
	FieldText     FieldType = "TEXT"
	FieldNumber   FieldType = "NUMBER"
	FieldDate     FieldType = "DATE"
	FieldSelect   FieldType = "SELECT"
	FieldCheckbox FieldType = "CHECKBOX"
	FieldCurrency FieldType = "CURRENCY"
	FieldRating   FieldType = "RATING"
)

// ValidFieldTypes enumerates the seven recognized field kinds.
var ValidFieldTypes = map[FieldType]struct{}{
	FieldText:     {},
	FieldNumber:   {},
	FieldDate:     {},
	FieldSelect:   {},
	FieldCheckbox: {},
	FieldCurrency: {},
	FieldRating:   {},
}

// DefaultCurrency is used when a CURRENCY field omits its currency code.
const DefaultCurrency = "BRL"

// Currency pairs an ISO code with its display symbol.
type Currency struct {
	Code   string `json:"code"`
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

// Currencies lists the codes offered when configuring a CURRENCY field.
var Currencies = []Currency{
	{Code: "BRL", Symbol: "R$", Name: "Brazilian real (R$)"},
	{Code: "USD", Symbol: "$", Name: "US dollar ($)"},
	{Code: "EUR", Symbol: "€", Name: "Euro (€)"},
	{Code: "GBP", Symbol: "£", Name: "Pound sterling (£)"},
	{Code: "JPY", Symbol: "¥", Name: "Japanese yen (¥)"},
	{Code: "CAD", Symbol: "C$", Name: "Canadian dollar (C$)"},
	{Code: "AUD", Symbol: "A$", Name: "Australian dollar (A$)"},
	{Code: "CHF", Symbol: "CHF", Name: "Swiss franc (CHF)"},
	{Code: "CNY", Symbol: "¥", Name: "Chinese yuan (¥)"},
	{Code: "MXN", Symbol: "$", Name: "Mexican peso ($)"},
}

// CurrencySymbol resolves a code to its symbol, falling back to the code
// itself for unknown currencies.
func CurrencySymbol(code string) string {
	for _, c := range Currencies {
		if c.Code == code {
			return c.Symbol
		}
	}
	return code
}

// FormatValue renders a raw stored value for display according to the
// field's type. The raw string itself is never modified in the store; this
// is the presentation boundary.
func FormatValue(field CustomField, raw string) string {
	switch field.Type {
	case FieldCurrency:
		code := field.Currency
		if code == "" {
			code = DefaultCurrency
		}
		return FormatCurrency(raw, code)
	case FieldRating:
		return strconv.Itoa(ClampRating(raw))
	case FieldCheckbox:
		if raw == "true" {
			return "true"
		}
		return "false"
	default:
		return raw
	}
}

// FormatCurrency renders a numeric string as a currency amount with a
// thousands-grouped value, e.g. ("1500.50", "USD") -> "$1,500.50". Returns
// "-" when the value does not parse.
func FormatCurrency(raw, code string) string {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return "-"
	}
	neg := v < 0
	if neg {
		v = -v
	}
	s := fmt.Sprintf("%.2f", v)
	parts := strings.SplitN(s, ".", 2)
	grouped := groupThousands(parts[0])
	out := CurrencySymbol(code) + grouped + "." + parts[1]
	if neg {
		out = "-" + out
	}
	return out
}

// ClampRating parses a rating value and clamps it to the 1..5 star range.
// Unparsable input clamps to 1.
func ClampRating(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 1
	}
	if n < 1 {
		return 1
	}
	if n > 5 {
		return 5
	}
	return n
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	rem := len(digits) % 3
	if rem > 0 {
		b.WriteString(digits[:rem])
	}
	for i := rem; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

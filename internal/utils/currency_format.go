package utils

import (
	"github.com/SscSPs/fxdesk/internal/core/domain"
	"github.com/shopspring/decimal"
)

// FormatWithCurrencyPrecision formats an amount with the correct precision for a given currency
// Example: amount 12.3456 with USD (precision 2) returns "12.35"
// Example: amount 18250000.4 with VND (precision 0) returns "18250000"
// Example: amount 0.00012345678 with BTC (precision 8) returns "0.00012346"
func FormatWithCurrencyPrecision(amount decimal.Decimal, currency domain.Currency) string {
	return amount.StringFixed(currency.Precision())
}

// FormatWithPrecision formats an amount with the given precision, dropping trailing zeros.
func FormatWithPrecision(amount decimal.Decimal, precision int) string {
	return amount.Round(int32(precision)).String()
}

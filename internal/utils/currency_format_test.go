package utils

import (
	"testing"

	"github.com/SscSPs/fxdesk/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatWithCurrencyPrecision(t *testing.T) {
	tests := []struct {
		amount   string
		currency domain.Currency
		want     string
	}{
		{"12.3456", domain.USD, "12.35"},
		{"12", domain.USD, "12.00"},
		{"18250000.4", domain.VND, "18250000"},
		{"55123.75", domain.KRW, "55124"},
		{"0.00012345678", domain.BTC, "0.00012346"},
	}

	for _, tt := range tests {
		t.Run(string(tt.currency)+"/"+tt.amount, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatWithCurrencyPrecision(decimal.RequireFromString(tt.amount), tt.currency))
		})
	}
}

func TestFormatWithPrecision(t *testing.T) {
	assert.Equal(t, "0.05466667", FormatWithPrecision(decimal.RequireFromString("0.0546666666"), 8))
	assert.Equal(t, "18.25", FormatWithPrecision(decimal.RequireFromString("18.2500"), 8))
	assert.Equal(t, "25300", FormatWithPrecision(decimal.NewFromInt(25300), 8))
}

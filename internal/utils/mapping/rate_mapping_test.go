package mapping_test

import (
	"testing"
	"time"

	"github.com/SscSPs/fxdesk/internal/core/domain"
	"github.com/SscSPs/fxdesk/internal/models"
	"github.com/SscSPs/fxdesk/internal/utils/mapping"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestToDomainRateRecord(t *testing.T) {
	updated := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	m := models.ExchangeRate{
		ID:           "r-1",
		UserID:       "tenant-7",
		FromCurrency: "usd",
		ToCurrency:   "VND",
		Denomination: strPtr("20_10"),
		GoldShopRate: decimal.NewNullDecimal(decimal.RequireFromString("25350")),
		MyBuyRate:    decimal.NewNullDecimal(decimal.RequireFromString("25100")),
		IsActive:     strPtr("true"),
		Memo:         strPtr("volatile"),
		UpdatedAt:    updated,
	}

	rec, err := mapping.ToDomainRateRecord(m)
	require.NoError(t, err)
	assert.Equal(t, domain.USD, rec.FromCurrency)
	assert.Equal(t, domain.DenominationKey("20_10"), rec.Denomination)
	assert.True(t, rec.IsActive)
	assert.False(t, rec.SellRate.Valid)
	assert.True(t, rec.ReferenceRate.Valid)
	assert.Equal(t, "volatile", rec.Memo)
	assert.Equal(t, updated, rec.UpdatedAt)

	m.IsActive = strPtr("false")
	m.Denomination = nil
	rec, err = mapping.ToDomainRateRecord(m)
	require.NoError(t, err)
	assert.False(t, rec.IsActive)
	assert.Equal(t, domain.NoDenomination, rec.Denomination)

	m.IsActive = nil
	rec, err = mapping.ToDomainRateRecord(m)
	require.NoError(t, err)
	assert.True(t, rec.IsActive, "a missing flag takes the column default")

	m.ToCurrency = "EUR"
	_, err = mapping.ToDomainRateRecord(m)
	assert.Error(t, err)
}

func TestToDomainCashAsset(t *testing.T) {
	asset, err := mapping.ToDomainCashAsset(models.Asset{
		ID:            "a-1",
		Type:          models.AssetTypeCash,
		Name:          "VND drawer",
		Currency:      "VND",
		Denominations: []byte(`{"100000": 4, "500,000": "3", "20000": 0}`),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.VND, asset.Currency)
	assert.Equal(t, []domain.DenominationStock{
		{Value: 500000, AvailableCount: 3},
		{Value: 100000, AvailableCount: 4},
		{Value: 20000, AvailableCount: 0},
	}, asset.Stocks)

	asset, err = mapping.ToDomainCashAsset(models.Asset{ID: "a-2", Currency: "KRW"})
	require.NoError(t, err)
	assert.Empty(t, asset.Stocks)

	for _, raw := range []string{`{"abc": 1}`, `{"1000": 1.5}`, `{"1000": true}`, `[1,2]`} {
		_, err = mapping.ToDomainCashAsset(models.Asset{ID: "a-3", Currency: "KRW", Denominations: []byte(raw)})
		assert.Error(t, err, raw)
	}
}

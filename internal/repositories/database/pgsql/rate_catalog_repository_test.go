package pgsql

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/SscSPs/fxdesk/internal/apperrors"
	"github.com/SscSPs/fxdesk/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func rateColumns() []string {
	return []string{"id", "user_id", "from_currency", "to_currency", "denomination",
		"gold_shop_rate", "my_buy_rate", "my_sell_rate", "is_active", "memo", "updated_at"}
}

func assetColumns() []string {
	return []string{"id", "user_id", "type", "name", "currency", "denominations"}
}

func TestRateCatalogRepository_ListActiveRates(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewRateCatalogRepository(mock)
	updated := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT DISTINCT ON .+ FROM exchange_rates WHERE user_id").
		WithArgs("tenant-7", "KRW", "VND").
		WillReturnRows(pgxmock.NewRows(rateColumns()).
			AddRow("r-1", "tenant-7", "KRW", "VND", strPtr("50000"),
				"18.20", "18.00", "18.25", strPtr("true"), (*string)(nil), updated).
			AddRow("r-2", "tenant-7", "KRW", "VND", strPtr("10000"),
				"18.20", "17.90", nil, strPtr("true"), strPtr("sell side paused"), updated.Add(time.Minute)))

	records, err := repo.ListActiveRates(context.Background(), "tenant-7", domain.KRW, domain.VND)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "r-1", records[0].ID)
	assert.Equal(t, domain.DenominationKey("50000"), records[0].Denomination)
	assert.True(t, records[0].SellRate.Decimal.Equal(decimal.RequireFromString("18.25")))
	assert.True(t, records[0].ReferenceRate.Valid)
	assert.True(t, records[0].IsActive)

	assert.False(t, records[1].SellRate.Valid)
	assert.Equal(t, "sell side paused", records[1].Memo)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRateCatalogRepository_ListActiveRates_Empty(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewRateCatalogRepository(mock)

	mock.ExpectQuery("SELECT DISTINCT ON .+ FROM exchange_rates").
		WithArgs("tenant-7", "USD", "VND").
		WillReturnRows(pgxmock.NewRows(rateColumns()))

	records, err := repo.ListActiveRates(context.Background(), "tenant-7", domain.USD, domain.VND)
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRateCatalogRepository_ListActiveRates_QueryError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewRateCatalogRepository(mock)
	dbErr := errors.New("connection refused")

	mock.ExpectQuery("SELECT DISTINCT ON .+ FROM exchange_rates").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(dbErr)

	records, err := repo.ListActiveRates(context.Background(), "tenant-7", domain.USD, domain.VND)
	assert.Nil(t, records)
	assert.ErrorIs(t, err, dbErr)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusInternalServerError, appErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRateCatalogRepository_ListActiveRates_UnknownCurrencyRow(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewRateCatalogRepository(mock)

	mock.ExpectQuery("SELECT DISTINCT ON .+ FROM exchange_rates").
		WithArgs("tenant-7", "USD", "VND").
		WillReturnRows(pgxmock.NewRows(rateColumns()).
			AddRow("r-9", "tenant-7", "XAU", "VND", strPtr("100"),
				"1", "1", "1", strPtr("true"), (*string)(nil), time.Now()))

	_, err = repo.ListActiveRates(context.Background(), "tenant-7", domain.USD, domain.VND)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRateCatalogRepository_FindCashAsset(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewRateCatalogRepository(mock)

	mock.ExpectQuery("SELECT .+ FROM assets WHERE user_id").
		WithArgs("tenant-7", "a-1", "cash").
		WillReturnRows(pgxmock.NewRows(assetColumns()).
			AddRow("a-1", "tenant-7", "cash", "VND drawer", "VND",
				[]byte(`{"500000": 2, "200000": 1, "100000": 1}`)))

	asset, err := repo.FindCashAsset(context.Background(), "tenant-7", "a-1")
	require.NoError(t, err)
	require.NotNil(t, asset)
	assert.Equal(t, domain.VND, asset.Currency)
	assert.Equal(t, "VND drawer", asset.Name)
	assert.Equal(t, []domain.DenominationStock{
		{Value: 500000, AvailableCount: 2},
		{Value: 200000, AvailableCount: 1},
		{Value: 100000, AvailableCount: 1},
	}, asset.Stocks)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRateCatalogRepository_FindCashAsset_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewRateCatalogRepository(mock)

	mock.ExpectQuery("SELECT .+ FROM assets WHERE user_id").
		WithArgs("tenant-7", "missing", "cash").
		WillReturnError(pgx.ErrNoRows)

	asset, err := repo.FindCashAsset(context.Background(), "tenant-7", "missing")
	assert.Nil(t, asset)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNewRepositoryProvider(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repos := NewRepositoryProvider(mock)
	assert.NotNil(t, repos.RateCatalog)
	assert.NotNil(t, repos.CashStock)
}

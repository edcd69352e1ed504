package pgsql

import (
	"context"
	"errors"
	"net/http"

	"github.com/SscSPs/fxdesk/internal/apperrors"
	"github.com/SscSPs/fxdesk/internal/core/domain"
	portsrepo "github.com/SscSPs/fxdesk/internal/core/ports/repositories"
	"github.com/SscSPs/fxdesk/internal/models"
	"github.com/SscSPs/fxdesk/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

// RateCatalogRepository reads posted rates and cash stock. It never writes.
type RateCatalogRepository struct {
	BaseRepository
}

// NewRateCatalogRepository creates a new RateCatalogRepository.
func NewRateCatalogRepository(pool Pool) *RateCatalogRepository {
	return &RateCatalogRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var (
	_ portsrepo.RateCatalogReader = (*RateCatalogRepository)(nil)
	_ portsrepo.CashStockReader   = (*RateCatalogRepository)(nil)
)

// One row per denomination: the most recently updated active one.
const listActiveRatesQuery = `
	SELECT DISTINCT ON (COALESCE(denomination, ''))
		id, user_id, from_currency, to_currency, denomination,
		gold_shop_rate, my_buy_rate, my_sell_rate, is_active, memo, updated_at
	FROM exchange_rates
	WHERE user_id = $1 AND from_currency = $2 AND to_currency = $3
		AND COALESCE(is_active, 'true') = 'true'
	ORDER BY COALESCE(denomination, ''), updated_at DESC, created_at ASC;
`

// ListActiveRates retrieves the tenant's active rates for a pair.
func (r *RateCatalogRepository) ListActiveRates(ctx context.Context, tenantID string, from, to domain.Currency) ([]domain.RateRecord, error) {
	rows, err := r.Pool.Query(ctx, listActiveRatesQuery, tenantID, from.String(), to.String())
	if err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to list exchange rates", err)
	}
	defer rows.Close()

	var modelRates []models.ExchangeRate
	for rows.Next() {
		var m models.ExchangeRate
		err := rows.Scan(
			&m.ID, &m.UserID, &m.FromCurrency, &m.ToCurrency, &m.Denomination,
			&m.GoldShopRate, &m.MyBuyRate, &m.MySellRate, &m.IsActive, &m.Memo, &m.UpdatedAt,
		)
		if err != nil {
			return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to scan exchange rate", err)
		}
		modelRates = append(modelRates, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "error iterating exchange rates", err)
	}

	records, err := mapping.ToDomainRateRecords(modelRates)
	if err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to map exchange rates", err)
	}
	return records, nil
}

const findCashAssetQuery = `
	SELECT id, user_id, type, name, currency, metadata->'denominations'
	FROM assets
	WHERE user_id = $1 AND id = $2 AND type = $3;
`

// FindCashAsset retrieves a cash asset with its bill composition.
func (r *RateCatalogRepository) FindCashAsset(ctx context.Context, tenantID, assetID string) (*domain.CashAsset, error) {
	var m models.Asset
	err := r.Pool.QueryRow(ctx, findCashAssetQuery, tenantID, assetID, models.AssetTypeCash).Scan(
		&m.ID, &m.UserID, &m.Type, &m.Name, &m.Currency, &m.Denominations,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("cash asset " + assetID + " not found")
		}
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to find cash asset", err)
	}

	asset, err := mapping.ToDomainCashAsset(m)
	if err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to map cash asset", err)
	}
	return asset, nil
}

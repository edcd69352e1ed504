package repositories

import (
	"context"

	"github.com/SscSPs/fxdesk/internal/core/domain"
)

// RateCatalogReader defines read operations for the tenant's posted rates.
type RateCatalogReader interface {
	// ListActiveRates returns the active records for the pair, at most one per denomination.
	ListActiveRates(ctx context.Context, tenantID string, from, to domain.Currency) ([]domain.RateRecord, error)
}

// RateCatalogInvalidator drops any cached view of a pair's rates.
type RateCatalogInvalidator interface {
	Invalidate(ctx context.Context, tenantID string, from, to domain.Currency) error
}

// CashStockReader defines read operations for cash holdings.
type CashStockReader interface {
	// FindCashAsset returns the cash asset with its bill stock.
	// Returns apperrors.ErrNotFound if the tenant has no such cash asset.
	FindCashAsset(ctx context.Context, tenantID, assetID string) (*domain.CashAsset, error)
}

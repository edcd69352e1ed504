package services

import (
	"context"

	"github.com/SscSPs/fxdesk/internal/core/domain"
	"github.com/SscSPs/fxdesk/internal/dto"
)

// QuoteReaderSvc prices an exchange without touching stock.
type QuoteReaderSvc interface {
	// QuoteExchange prices a single-denomination exchange.
	QuoteExchange(ctx context.Context, tenantID string, req dto.QuoteRequest) (*domain.Quote, error)
	// QuoteBlended prices a mixed bundle of bills at the averaged rate.
	QuoteBlended(ctx context.Context, tenantID string, req dto.BlendedQuoteRequest) (*domain.Quote, error)
}

// PayoutPlannerSvc breaks payouts into bills from a cash asset.
type PayoutPlannerSvc interface {
	PlanPayout(ctx context.Context, tenantID string, req dto.PayoutRequest) (*domain.PayoutPlan, error)
}

// QuoteSvcFacade combines all quote-related service interfaces
type QuoteSvcFacade interface {
	QuoteReaderSvc
	PayoutPlannerSvc
}

package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/SscSPs/fxdesk/internal/apperrors"
	"github.com/SscSPs/fxdesk/internal/core/domain"
	"github.com/SscSPs/fxdesk/internal/core/engine"
	portsrepo "github.com/SscSPs/fxdesk/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/fxdesk/internal/core/ports/services"
	"github.com/SscSPs/fxdesk/internal/dto"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// quoteService prices exchanges against the tenant's rate catalog and plans
// payouts from cash stock. It never writes; quotes and plans are advisory.
type quoteService struct {
	BaseService
	rates    portsrepo.RateCatalogReader
	stock    portsrepo.CashStockReader
	engine   *engine.Engine
	validate *validator.Validate
	now      func() time.Time
	newID    func() string
}

// QuoteServiceOption configures a quote service.
type QuoteServiceOption func(*quoteService)

// WithEngine sets the rate engine, e.g. one with reference denomination overrides.
func WithEngine(e *engine.Engine) QuoteServiceOption {
	return func(s *quoteService) {
		s.engine = e
	}
}

// WithClock sets the time source used for QuotedAt and PlannedAt.
func WithClock(now func() time.Time) QuoteServiceOption {
	return func(s *quoteService) {
		s.now = now
	}
}

// WithIDGenerator sets the generator for quote and plan IDs.
func WithIDGenerator(newID func() string) QuoteServiceOption {
	return func(s *quoteService) {
		s.newID = newID
	}
}

// NewQuoteService creates a new quote service.
func NewQuoteService(rates portsrepo.RateCatalogReader, stock portsrepo.CashStockReader, opts ...QuoteServiceOption) portssvc.QuoteSvcFacade {
	v := validator.New()
	v.SetTagName("binding")

	s := &quoteService{
		rates:    rates,
		stock:    stock,
		engine:   engine.New(),
		validate: v,
		now:      func() time.Time { return time.Now().UTC() },
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portssvc.QuoteSvcFacade = (*quoteService)(nil)

// QuoteExchange prices a single-denomination exchange.
func (s *quoteService) QuoteExchange(ctx context.Context, tenantID string, req dto.QuoteRequest) (*domain.Quote, error) {
	if err := s.validateRequest(tenantID, req); err != nil {
		return nil, err
	}
	pair, direction, err := parseTarget(req.FromCurrency, req.ToCurrency, req.Direction)
	if err != nil {
		return nil, err
	}
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive, got %s", apperrors.ErrInvalidAmount, req.Amount)
	}

	denomination := s.engine.ReferenceDenomination(pair.From, pair.To)
	if req.Denomination != "" {
		denomination, err = domain.ParseDenomination(pair.From, req.Denomination)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
	}

	records, err := s.loadRates(ctx, tenantID, pair)
	if err != nil {
		return nil, err
	}

	sel, err := s.engine.SelectRate(records, pair.From, pair.To, denomination, direction)
	if err != nil {
		s.LogInfo(ctx, "No rate available for quote",
			slog.String("tenant_id", tenantID),
			slog.String("pair", pair.String()),
			slog.String("denomination", string(denomination)),
			slog.String("direction", string(direction)))
		return nil, err
	}
	if sel.FellBack {
		s.LogDebug(ctx, "Rate resolved through reference denomination",
			slog.String("pair", pair.String()),
			slog.String("requested", string(sel.Requested)),
			slog.String("resolved", string(sel.Resolved)))
	}

	quote := s.newQuote(tenantID, pair, direction, req.Amount, sel.Rate)
	quote.Selection = &sel

	if err := s.completeQuote(ctx, quote, req.MarketRate, req.PayoutAssetID); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Quote priced",
		slog.String("quote_id", quote.QuoteID),
		slog.String("tenant_id", tenantID),
		slog.String("pair", pair.String()),
		slog.String("rate", quote.Rate.String()))
	return quote, nil
}

// QuoteBlended prices a bundle of mixed bills at the averaged rate of the denominations handed over.
func (s *quoteService) QuoteBlended(ctx context.Context, tenantID string, req dto.BlendedQuoteRequest) (*domain.Quote, error) {
	if err := s.validateRequest(tenantID, req); err != nil {
		return nil, err
	}
	pair, direction, err := parseTarget(req.FromCurrency, req.ToCurrency, req.Direction)
	if err != nil {
		return nil, err
	}

	total, err := engine.TotalFromCounts(req.Bills)
	if err != nil {
		return nil, err
	}
	if total <= 0 {
		return nil, fmt.Errorf("%w: no bills handed over", apperrors.ErrInvalidAmount)
	}

	entered, err := enteredDenominations(pair.From, req.Bills)
	if err != nil {
		return nil, err
	}

	records, err := s.loadRates(ctx, tenantID, pair)
	if err != nil {
		return nil, err
	}

	blend, err := s.engine.AverageRate(records, pair.From, pair.To, entered, direction)
	if err != nil {
		s.LogInfo(ctx, "No rate available for blended quote",
			slog.String("tenant_id", tenantID),
			slog.String("pair", pair.String()),
			slog.String("direction", string(direction)))
		return nil, err
	}
	if len(blend.Unresolved) > 0 {
		s.LogWarn(ctx, "Denominations without a rate left out of the average",
			slog.String("pair", pair.String()),
			slog.Any("denominations", blend.Unresolved))
	}

	quote := s.newQuote(tenantID, pair, direction, decimal.NewFromInt(total), blend.Rate)
	quote.Blend = &blend

	if err := s.completeQuote(ctx, quote, req.MarketRate, req.PayoutAssetID); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Blended quote priced",
		slog.String("quote_id", quote.QuoteID),
		slog.String("tenant_id", tenantID),
		slog.String("pair", pair.String()),
		slog.Int("denominations", len(blend.Components)),
		slog.String("rate", quote.Rate.String()))
	return quote, nil
}

// PlanPayout breaks an amount into bills drawn from one cash asset.
func (s *quoteService) PlanPayout(ctx context.Context, tenantID string, req dto.PayoutRequest) (*domain.PayoutPlan, error) {
	if err := s.validateRequest(tenantID, req); err != nil {
		return nil, err
	}
	if req.Amount <= 0 {
		return nil, fmt.Errorf("%w: payout amount must be positive, got %d", apperrors.ErrInvalidAmount, req.Amount)
	}

	asset, err := s.findAsset(ctx, tenantID, req.AssetID)
	if err != nil {
		return nil, err
	}
	return s.planFrom(ctx, tenantID, asset, req.Amount)
}

func (s *quoteService) validateRequest(tenantID string, req any) error {
	if strings.TrimSpace(tenantID) == "" {
		return apperrors.NewValidationError("tenant ID is required")
	}
	if err := s.validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	return nil
}

func (s *quoteService) loadRates(ctx context.Context, tenantID string, pair domain.Pair) ([]domain.RateRecord, error) {
	records, err := s.rates.ListActiveRates(ctx, tenantID, pair.From, pair.To)
	if err != nil {
		s.LogError(ctx, err, "Failed to load rate catalog",
			slog.String("tenant_id", tenantID),
			slog.String("pair", pair.String()))
		return nil, fmt.Errorf("failed to load rates for %s: %w", pair, err)
	}
	s.LogDebug(ctx, "Rate catalog loaded", slog.String("pair", pair.String()), slog.Int("records", len(records)))
	return records, nil
}

func (s *quoteService) findAsset(ctx context.Context, tenantID, assetID string) (*domain.CashAsset, error) {
	asset, err := s.stock.FindCashAsset(ctx, tenantID, assetID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load cash asset",
			slog.String("tenant_id", tenantID),
			slog.String("asset_id", assetID))
		return nil, fmt.Errorf("failed to load cash asset %s: %w", assetID, err)
	}
	return asset, nil
}

func (s *quoteService) newQuote(tenantID string, pair domain.Pair, direction domain.Direction, amount, rate decimal.Decimal) *domain.Quote {
	return &domain.Quote{
		QuoteID:      s.newID(),
		TenantID:     tenantID,
		FromCurrency: pair.From,
		ToCurrency:   pair.To,
		Direction:    direction,
		FromAmount:   amount,
		ToAmount:     engine.Convert(amount, rate, pair.To),
		Rate:         rate,
		QuotedAt:     s.now(),
	}
}

// completeQuote attaches the optional profit figure and payout plan.
func (s *quoteService) completeQuote(ctx context.Context, quote *domain.Quote, marketRate *decimal.Decimal, payoutAssetID string) error {
	if marketRate != nil {
		if !marketRate.IsPositive() {
			return fmt.Errorf("%w: market rate must be positive, got %s", apperrors.ErrValidation, marketRate)
		}
		profit, err := engine.ComputeProfit(quote.Rate, *marketRate, quote.FromAmount)
		if err != nil {
			return err
		}
		mr := *marketRate
		quote.MarketRate = &mr
		quote.Profit = &profit
	}

	if payoutAssetID == "" {
		return nil
	}
	asset, err := s.findAsset(ctx, quote.TenantID, payoutAssetID)
	if err != nil {
		return err
	}
	if asset.Currency != quote.ToCurrency {
		return fmt.Errorf("%w: cash asset %s holds %s, quote pays out %s",
			apperrors.ErrValidation, asset.ID, asset.Currency, quote.ToCurrency)
	}
	plan, err := s.planFrom(ctx, quote.TenantID, asset, quote.ToAmount.IntPart())
	if err != nil {
		return err
	}
	quote.Payout = plan
	return nil
}

func (s *quoteService) planFrom(ctx context.Context, tenantID string, asset *domain.CashAsset, amount int64) (*domain.PayoutPlan, error) {
	allocation, err := engine.AllocateDenominations(amount, asset.Stocks)
	if err != nil {
		return nil, err
	}
	if !allocation.Satisfied() {
		s.LogWarn(ctx, "Cash stock cannot cover payout",
			slog.String("tenant_id", tenantID),
			slog.String("asset_id", asset.ID),
			slog.Int64("requested", allocation.RequestedAmount),
			slog.Int64("shortfall", allocation.Shortfall))
	}

	return &domain.PayoutPlan{
		PlanID:     s.newID(),
		TenantID:   tenantID,
		AssetID:    asset.ID,
		Currency:   asset.Currency,
		Allocation: allocation,
		Lines:      allocation.Lines(),
		PlannedAt:  s.now(),
	}, nil
}

func parseTarget(from, to, direction string) (domain.Pair, domain.Direction, error) {
	pair, err := domain.ParsePair(from + "/" + to)
	if err != nil {
		return domain.Pair{}, "", fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	d, err := domain.ParseDirection(direction)
	if err != nil {
		return domain.Pair{}, "", fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	return pair, d, nil
}

// enteredDenominations maps the face values handed over to their buckets,
// largest first. Face values with a zero count were not handed over.
func enteredDenominations(c domain.Currency, bills map[int64]int64) ([]domain.DenominationKey, error) {
	values := make([]int64, 0, len(bills))
	for v, n := range bills {
		if n > 0 {
			values = append(values, v)
		}
	}
	sort.Slice(values, func(i, j int) bool { return values[i] > values[j] })

	keys := make([]domain.DenominationKey, 0, len(values))
	for _, v := range values {
		b, ok := domain.BucketForFaceValue(c, v)
		if !ok {
			return nil, fmt.Errorf("%w: %d is not a %s bill", apperrors.ErrValidation, v, c)
		}
		keys = append(keys, b.Key)
	}
	return keys, nil
}

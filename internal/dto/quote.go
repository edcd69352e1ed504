package dto

import (
	"time"

	"github.com/SscSPs/fxdesk/internal/core/domain"
	"github.com/SscSPs/fxdesk/internal/utils"
	"github.com/shopspring/decimal"
)

// QuoteRequest defines the structure for pricing a single-denomination exchange.
type QuoteRequest struct {
	FromCurrency string `json:"fromCurrency" binding:"required,alpha,min=3,max=5"`
	ToCurrency   string `json:"toCurrency" binding:"required,alpha,min=3,max=5,nefield=FromCurrency"`
	// Denomination is a bucket key of the from-currency. Empty means the pair's reference bucket.
	Denomination  string           `json:"denomination" binding:"omitempty,max=16"`
	Direction     string           `json:"direction" binding:"required,oneof=buy sell"`
	Amount        decimal.Decimal  `json:"amount"`
	MarketRate    *decimal.Decimal `json:"marketRate,omitempty"`
	PayoutAssetID string           `json:"payoutAssetID,omitempty" binding:"omitempty,max=64"`
}

// BlendedQuoteRequest defines the structure for pricing a mixed bundle of bills.
type BlendedQuoteRequest struct {
	FromCurrency string `json:"fromCurrency" binding:"required,alpha,min=3,max=5"`
	ToCurrency   string `json:"toCurrency" binding:"required,alpha,min=3,max=5,nefield=FromCurrency"`
	Direction    string `json:"direction" binding:"required,oneof=buy sell"`
	// Bills maps face value to the number of bills handed over.
	Bills         map[int64]int64  `json:"bills" binding:"required,min=1,dive,keys,gt=0,endkeys,gte=0"`
	MarketRate    *decimal.Decimal `json:"marketRate,omitempty"`
	PayoutAssetID string           `json:"payoutAssetID,omitempty" binding:"omitempty,max=64"`
}

// PayoutRequest defines the structure for planning a payout from a cash asset.
type PayoutRequest struct {
	AssetID string `json:"assetID" binding:"required,max=64"`
	Amount  int64  `json:"amount"`
}

// RateSelectionResponse describes which record priced a denomination.
type RateSelectionResponse struct {
	RecordID              string `json:"recordID"`
	RequestedDenomination string `json:"requestedDenomination"`
	ResolvedDenomination  string `json:"resolvedDenomination"`
	FellBack              bool   `json:"fellBack"`
	Rate                  string `json:"rate"`
}

// AllocationLineResponse is one denomination of a payout.
type AllocationLineResponse struct {
	Value    int64 `json:"value"`
	Count    int64 `json:"count"`
	Subtotal int64 `json:"subtotal"`
}

// PayoutPlanResponse defines the structure for API responses containing a payout plan.
type PayoutPlanResponse struct {
	PlanID          string                   `json:"planID"`
	AssetID         string                   `json:"assetID"`
	Currency        string                   `json:"currency"`
	RequestedAmount string                   `json:"requestedAmount"`
	TotalAllocated  string                   `json:"totalAllocated"`
	Shortfall       string                   `json:"shortfall"`
	Satisfied       bool                     `json:"satisfied"`
	Lines           []AllocationLineResponse `json:"lines"`
	PlannedAt       time.Time                `json:"plannedAt"`
}

// QuoteResponse defines the structure for API responses containing a quote.
type QuoteResponse struct {
	QuoteID      string `json:"quoteID"`
	FromCurrency string `json:"fromCurrency"`
	ToCurrency   string `json:"toCurrency"`
	Direction    string `json:"direction"`
	FromAmount   string `json:"fromAmount"`
	ToAmount     string `json:"toAmount"`
	Rate         string `json:"rate"`

	Selection  *RateSelectionResponse  `json:"selection,omitempty"`
	Components []RateSelectionResponse `json:"components,omitempty"`
	Unresolved []string                `json:"unresolvedDenominations,omitempty"`

	MarketRate *string             `json:"marketRate,omitempty"`
	Profit     *string             `json:"profit,omitempty"`
	Payout     *PayoutPlanResponse `json:"payout,omitempty"`
	QuotedAt   time.Time           `json:"quotedAt"`
}

// Rates are printed with more places than any currency amount.
const ratePrecision = 8

func toRateSelectionResponse(s domain.RateSelection) RateSelectionResponse {
	return RateSelectionResponse{
		RecordID:              s.RecordID,
		RequestedDenomination: string(s.Requested),
		ResolvedDenomination:  string(s.Resolved),
		FellBack:              s.FellBack,
		Rate:                  utils.FormatWithPrecision(s.Rate, ratePrecision),
	}
}

// ToPayoutPlanResponse converts a domain.PayoutPlan to PayoutPlanResponse DTO
func ToPayoutPlanResponse(p *domain.PayoutPlan) PayoutPlanResponse {
	lines := make([]AllocationLineResponse, len(p.Lines))
	for i, l := range p.Lines {
		lines[i] = AllocationLineResponse{Value: l.Value, Count: l.Count, Subtotal: l.Subtotal}
	}
	return PayoutPlanResponse{
		PlanID:          p.PlanID,
		AssetID:         p.AssetID,
		Currency:        p.Currency.String(),
		RequestedAmount: utils.FormatWithCurrencyPrecision(decimal.NewFromInt(p.Allocation.RequestedAmount), p.Currency),
		TotalAllocated:  utils.FormatWithCurrencyPrecision(decimal.NewFromInt(p.Allocation.TotalAllocated), p.Currency),
		Shortfall:       utils.FormatWithCurrencyPrecision(decimal.NewFromInt(p.Allocation.Shortfall), p.Currency),
		Satisfied:       p.Allocation.Satisfied(),
		Lines:           lines,
		PlannedAt:       p.PlannedAt,
	}
}

// ToQuoteResponse converts a domain.Quote to QuoteResponse DTO
func ToQuoteResponse(q *domain.Quote) QuoteResponse {
	resp := QuoteResponse{
		QuoteID:      q.QuoteID,
		FromCurrency: q.FromCurrency.String(),
		ToCurrency:   q.ToCurrency.String(),
		Direction:    string(q.Direction),
		FromAmount:   utils.FormatWithCurrencyPrecision(q.FromAmount, q.FromCurrency),
		ToAmount:     utils.FormatWithCurrencyPrecision(q.ToAmount, q.ToCurrency),
		Rate:         utils.FormatWithPrecision(q.Rate, ratePrecision),
		QuotedAt:     q.QuotedAt,
	}

	if q.Selection != nil {
		sel := toRateSelectionResponse(*q.Selection)
		resp.Selection = &sel
	}
	if q.Blend != nil {
		resp.Components = make([]RateSelectionResponse, len(q.Blend.Components))
		for i, c := range q.Blend.Components {
			resp.Components[i] = toRateSelectionResponse(c)
		}
		for _, k := range q.Blend.Unresolved {
			resp.Unresolved = append(resp.Unresolved, string(k))
		}
	}
	if q.MarketRate != nil {
		s := utils.FormatWithPrecision(*q.MarketRate, ratePrecision)
		resp.MarketRate = &s
	}
	if q.Profit != nil {
		s := utils.FormatWithCurrencyPrecision(*q.Profit, q.FromCurrency)
		resp.Profit = &s
	}
	if q.Payout != nil {
		p := ToPayoutPlanResponse(q.Payout)
		resp.Payout = &p
	}
	return resp
}

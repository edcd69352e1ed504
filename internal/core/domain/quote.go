package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Quote is a priced, not yet committed, exchange for one tenant.
type Quote struct {
	QuoteID      string          `json:"quoteID"`
	TenantID     string          `json:"tenantID"`
	FromCurrency Currency        `json:"fromCurrency"`
	ToCurrency   Currency        `json:"toCurrency"`
	Direction    Direction       `json:"direction"`
	FromAmount   decimal.Decimal `json:"fromAmount"`
	ToAmount     decimal.Decimal `json:"toAmount"`
	Rate         decimal.Decimal `json:"rate"`

	Selection *RateSelection `json:"selection,omitempty"` // single denomination quotes
	Blend     *BlendedRate   `json:"blend,omitempty"`     // multi denomination quotes

	MarketRate *decimal.Decimal `json:"marketRate,omitempty"`
	Profit     *decimal.Decimal `json:"profit,omitempty"` // in the from-currency

	Payout   *PayoutPlan `json:"payout,omitempty"`
	QuotedAt time.Time   `json:"quotedAt"`
}

// PayoutPlan proposes which bills to hand out from a cash asset.
// It is advisory: stock is not decremented until a caller commits it.
type PayoutPlan struct {
	PlanID     string           `json:"planID"`
	TenantID   string           `json:"tenantID"`
	AssetID    string           `json:"assetID"`
	Currency   Currency         `json:"currency"`
	Allocation AllocationResult `json:"allocation"`
	Lines      []AllocationLine `json:"lines"`
	PlannedAt  time.Time        `json:"plannedAt"`
}

package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Direction selects which side of the operator's own price book applies.
type Direction string

const (
	// DirectionBuy uses the operator's buy rate: the operator takes in the from-currency bills.
	DirectionBuy Direction = "buy"
	// DirectionSell uses the operator's sell rate: the operator hands out the target currency.
	DirectionSell Direction = "sell"
)

// ParseDirection validates a direction string.
func ParseDirection(s string) (Direction, error) {
	switch d := Direction(s); d {
	case DirectionBuy, DirectionSell:
		return d, nil
	}
	return "", fmt.Errorf("direction must be %q or %q, got %q", DirectionBuy, DirectionSell, s)
}

// RateRecord is one row of the operator's curated rate table.
type RateRecord struct {
	ID            string              `json:"id"`
	FromCurrency  Currency            `json:"fromCurrency"`
	ToCurrency    Currency            `json:"toCurrency"`
	Denomination  DenominationKey     `json:"denomination"`
	BuyRate       decimal.NullDecimal `json:"buyRate"`
	SellRate      decimal.NullDecimal `json:"sellRate"`
	ReferenceRate decimal.NullDecimal `json:"referenceRate"` // market-observed, display only
	IsActive      bool                `json:"isActive"`
	Memo          string              `json:"memo,omitempty"`
	UpdatedAt     time.Time           `json:"updatedAt"`
}

// RateFor returns the rate of the requested side, or false when that side is unset or not positive.
func (r RateRecord) RateFor(d Direction) (decimal.Decimal, bool) {
	var v decimal.NullDecimal
	switch d {
	case DirectionBuy:
		v = r.BuyRate
	case DirectionSell:
		v = r.SellRate
	default:
		return decimal.Zero, false
	}
	if !v.Valid || !v.Decimal.IsPositive() {
		return decimal.Zero, false
	}
	return v.Decimal, true
}

// RateSelection is the outcome of resolving a single rate.
type RateSelection struct {
	Rate      decimal.Decimal `json:"rate"`
	RecordID  string          `json:"recordID"`
	Requested DenominationKey `json:"requested"`
	Resolved  DenominationKey `json:"resolved"`
	FellBack  bool            `json:"fellBack"` // resolved through the reference denomination
}

// BlendedRate is the equal-weight mean of the rates of several denominations.
type BlendedRate struct {
	Rate       decimal.Decimal   `json:"rate"`
	Components []RateSelection   `json:"components"`
	Unresolved []DenominationKey `json:"unresolved,omitempty"`
}

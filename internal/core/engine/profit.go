package engine

import (
	"fmt"

	"github.com/SscSPs/fxdesk/internal/apperrors"
	"github.com/SscSPs/fxdesk/internal/core/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ComputeProfit returns ((effectiveRate - referenceRate) * amount) / effectiveRate,
// the rate differential expressed in the units of amount.
func ComputeProfit(effectiveRate, referenceRate, amount decimal.Decimal) (decimal.Decimal, error) {
	if effectiveRate.IsZero() {
		return decimal.Zero, fmt.Errorf("%w: effective rate must not be zero", apperrors.ErrInvalidEffectiveRate)
	}
	return effectiveRate.Sub(referenceRate).Mul(amount).Div(effectiveRate), nil
}

// Convert applies rate to amount and rounds to the precision of the target currency.
func Convert(amount, rate decimal.Decimal, to domain.Currency) decimal.Decimal {
	return amount.Mul(rate).Round(to.Precision())
}

// ChangePercentage returns the percentage change from previous to next.
// A zero previous rate yields zero.
func ChangePercentage(previous, next decimal.Decimal) decimal.Decimal {
	if previous.IsZero() {
		return decimal.Zero
	}
	return next.Sub(previous).Div(previous).Mul(hundred)
}

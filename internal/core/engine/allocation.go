package engine

import (
	"fmt"
	"math"
	"sort"

	"github.com/SscSPs/fxdesk/internal/apperrors"
	"github.com/SscSPs/fxdesk/internal/core/domain"
)

// AllocateDenominations breaks requestedAmount into bills, largest face value first,
// never using more bills of a value than are available.
//
// This is a greedy approximation. It can report a shortfall even when another
// combination of the available bills would cover the amount exactly; callers
// must surface a non-zero Shortfall instead of truncating silently.
func AllocateDenominations(requestedAmount int64, stocks []domain.DenominationStock) (domain.AllocationResult, error) {
	if requestedAmount <= 0 {
		return domain.AllocationResult{}, fmt.Errorf("%w: requested amount must be positive, got %d", apperrors.ErrInvalidAmount, requestedAmount)
	}

	sorted := make([]domain.DenominationStock, len(stocks))
	copy(sorted, stocks)
	for _, s := range sorted {
		if s.Value <= 0 {
			return domain.AllocationResult{}, fmt.Errorf("%w: denomination value must be positive, got %d", apperrors.ErrValidation, s.Value)
		}
		if s.AvailableCount < 0 {
			return domain.AllocationResult{}, fmt.Errorf("%w: available count for %d must not be negative", apperrors.ErrValidation, s.Value)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Value > sorted[j].Value })

	result := domain.AllocationResult{
		RequestedAmount: requestedAmount,
		PerDenomination: make(map[int64]int64),
	}
	remaining := requestedAmount
	for _, s := range sorted {
		count := remaining / s.Value
		if count > s.AvailableCount {
			count = s.AvailableCount
		}
		if count <= 0 {
			continue
		}
		result.PerDenomination[s.Value] += count
		remaining -= count * s.Value
	}

	result.TotalAllocated = requestedAmount - remaining
	result.Shortfall = remaining
	return result, nil
}

// BreakdownUnlimited splits amount into the given face values as if every bill
// were available in any quantity.
func BreakdownUnlimited(amount int64, faceValues []int64) (domain.AllocationResult, error) {
	stocks := make([]domain.DenominationStock, len(faceValues))
	for i, v := range faceValues {
		stocks[i] = domain.DenominationStock{Value: v, AvailableCount: math.MaxInt64}
	}
	return AllocateDenominations(amount, stocks)
}

// TotalFromCounts returns the value of a bill breakdown keyed by face value.
func TotalFromCounts(counts map[int64]int64) (int64, error) {
	var total int64
	for value, count := range counts {
		if value <= 0 {
			return 0, fmt.Errorf("%w: face value must be positive, got %d", apperrors.ErrValidation, value)
		}
		if count < 0 {
			return 0, fmt.Errorf("%w: bill count for %d must not be negative", apperrors.ErrValidation, value)
		}
		if count > (math.MaxInt64-total)/value {
			return 0, fmt.Errorf("%w: %d bills of %d exceed the largest representable total", apperrors.ErrInvalidAmount, count, value)
		}
		total += value * count
	}
	return total, nil
}

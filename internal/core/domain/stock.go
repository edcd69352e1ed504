package domain

import "sort"

// DenominationStock is the number of bills of one face value available in a cash source.
type DenominationStock struct {
	Value          int64 `json:"value"`
	AvailableCount int64 `json:"availableCount"`
}

// CashAsset is a physical cash holding with its bill composition.
type CashAsset struct {
	ID       string              `json:"id"`
	Name     string              `json:"name"`
	Currency Currency            `json:"currency"`
	Stocks   []DenominationStock `json:"stocks"`
}

// AllocationLine is one denomination of an allocation.
type AllocationLine struct {
	Value    int64 `json:"value"`
	Count    int64 `json:"count"`
	Subtotal int64 `json:"subtotal"`
}

// AllocationResult is the outcome of drawing an amount from denomination stock.
type AllocationResult struct {
	RequestedAmount int64           `json:"requestedAmount"`
	PerDenomination map[int64]int64 `json:"perDenomination"` // only counts > 0
	TotalAllocated  int64           `json:"totalAllocated"`
	Shortfall       int64           `json:"shortfall"`
}

// Satisfied reports whether the whole requested amount was covered.
func (r AllocationResult) Satisfied() bool {
	return r.Shortfall == 0
}

// Lines returns the allocation ordered by face value, largest first.
func (r AllocationResult) Lines() []AllocationLine {
	lines := make([]AllocationLine, 0, len(r.PerDenomination))
	for v, c := range r.PerDenomination {
		lines = append(lines, AllocationLine{Value: v, Count: c, Subtotal: v * c})
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].Value > lines[j].Value })
	return lines
}

// Package engine holds the pure rate-selection and bill-allocation computations.
// Nothing in this package performs I/O, logs, or mutates its inputs, so every
// function is safe for concurrent use.
package engine

import (
	"errors"
	"fmt"

	"github.com/SscSPs/fxdesk/internal/apperrors"
	"github.com/SscSPs/fxdesk/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Engine resolves rates from a rate catalog. Its only configuration is the
// reference denomination per pair; it is immutable after New.
type Engine struct {
	references map[domain.Pair]domain.DenominationKey
}

// Option configures an Engine.
type Option func(*Engine)

// WithReferenceDenomination overrides the fallback bucket for one pair.
func WithReferenceDenomination(pair domain.Pair, key domain.DenominationKey) Option {
	return func(e *Engine) {
		e.references[pair] = key
	}
}

// WithReferenceDenominations applies several overrides at once.
func WithReferenceDenominations(refs map[domain.Pair]domain.DenominationKey) Option {
	return func(e *Engine) {
		for p, k := range refs {
			e.references[p] = k
		}
	}
}

// New creates an Engine. Without options the reference denomination of a pair
// is the largest bill bucket of its from-currency.
func New(opts ...Option) *Engine {
	e := &Engine{references: make(map[domain.Pair]domain.DenominationKey)}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ReferenceDenomination returns the fallback bucket used for the pair.
func (e *Engine) ReferenceDenomination(from, to domain.Currency) domain.DenominationKey {
	if key, ok := e.references[domain.Pair{From: from, To: to}]; ok {
		return key
	}
	return domain.ReferenceDenomination(from)
}

// SelectRate resolves the rate for one denomination of a pair.
//
// The newest active record with an exact denomination match wins. When it is
// missing, or its requested side is unset, the pair's reference denomination
// is tried. Records with equal UpdatedAt are resolved in input order.
// Returns apperrors.ErrNoRateAvailable when neither resolves.
func (e *Engine) SelectRate(
	records []domain.RateRecord,
	from, to domain.Currency,
	denomination domain.DenominationKey,
	direction domain.Direction,
) (domain.RateSelection, error) {
	if direction != domain.DirectionBuy && direction != domain.DirectionSell {
		return domain.RateSelection{}, fmt.Errorf("%w: unknown direction %q", apperrors.ErrValidation, direction)
	}

	if rec, ok := latestActive(records, from, to, denomination); ok {
		if rate, ok := rec.RateFor(direction); ok {
			return domain.RateSelection{
				Rate:      rate,
				RecordID:  rec.ID,
				Requested: denomination,
				Resolved:  denomination,
			}, nil
		}
	}

	ref := e.ReferenceDenomination(from, to)
	if ref != denomination {
		if rec, ok := latestActive(records, from, to, ref); ok {
			if rate, ok := rec.RateFor(direction); ok {
				return domain.RateSelection{
					Rate:      rate,
					RecordID:  rec.ID,
					Requested: denomination,
					Resolved:  ref,
					FellBack:  true,
				}, nil
			}
		}
	}

	return domain.RateSelection{}, fmt.Errorf("%w: %s/%s %s rate for denomination %q",
		apperrors.ErrNoRateAvailable, from, to, direction, denomination)
}

// AverageRate blends the rates of the denominations actually handed over.
//
// Each distinct entered denomination is resolved with SelectRate (fallback
// included) and unresolved ones are dropped. The result is the arithmetic
// mean of the resolved rates; every denomination weighs the same regardless
// of how much value it carried. With nothing resolved the reference
// denomination alone is used.
func (e *Engine) AverageRate(
	records []domain.RateRecord,
	from, to domain.Currency,
	entered []domain.DenominationKey,
	direction domain.Direction,
) (domain.BlendedRate, error) {
	var (
		components []domain.RateSelection
		unresolved []domain.DenominationKey
		sum        = decimal.Zero
		seen       = make(map[domain.DenominationKey]struct{}, len(entered))
	)

	for _, key := range entered {
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		sel, err := e.SelectRate(records, from, to, key, direction)
		if err != nil {
			if errors.Is(err, apperrors.ErrNoRateAvailable) {
				unresolved = append(unresolved, key)
				continue
			}
			return domain.BlendedRate{}, err
		}
		components = append(components, sel)
		sum = sum.Add(sel.Rate)
	}

	if len(components) > 0 {
		return domain.BlendedRate{
			Rate:       sum.Div(decimal.NewFromInt(int64(len(components)))),
			Components: components,
			Unresolved: unresolved,
		}, nil
	}

	sel, err := e.SelectRate(records, from, to, e.ReferenceDenomination(from, to), direction)
	if err != nil {
		return domain.BlendedRate{}, err
	}
	return domain.BlendedRate{
		Rate:       sel.Rate,
		Components: []domain.RateSelection{sel},
		Unresolved: unresolved,
	}, nil
}

// latestActive returns the most recently updated active record for the key.
func latestActive(records []domain.RateRecord, from, to domain.Currency, key domain.DenominationKey) (domain.RateRecord, bool) {
	found := -1
	for i := range records {
		r := &records[i]
		if !r.IsActive || r.FromCurrency != from || r.ToCurrency != to || r.Denomination != key {
			continue
		}
		if found < 0 || r.UpdatedAt.After(records[found].UpdatedAt) {
			found = i
		}
	}
	if found < 0 {
		return domain.RateRecord{}, false
	}
	return records[found], true
}

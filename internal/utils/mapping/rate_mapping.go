package mapping

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/SscSPs/fxdesk/internal/core/domain"
	"github.com/SscSPs/fxdesk/internal/models"
)

// ToDomainRateRecord converts a model ExchangeRate to a domain RateRecord
func ToDomainRateRecord(m models.ExchangeRate) (domain.RateRecord, error) {
	from, err := domain.ParseCurrency(m.FromCurrency)
	if err != nil {
		return domain.RateRecord{}, fmt.Errorf("exchange rate %s: %w", m.ID, err)
	}
	to, err := domain.ParseCurrency(m.ToCurrency)
	if err != nil {
		return domain.RateRecord{}, fmt.Errorf("exchange rate %s: %w", m.ID, err)
	}

	rec := domain.RateRecord{
		ID:            m.ID,
		FromCurrency:  from,
		ToCurrency:    to,
		Denomination:  domain.NoDenomination,
		BuyRate:       m.MyBuyRate,
		SellRate:      m.MySellRate,
		ReferenceRate: m.GoldShopRate,
		IsActive:      m.IsActive == nil || strings.EqualFold(strings.TrimSpace(*m.IsActive), "true"),
		UpdatedAt:     m.UpdatedAt,
	}
	if m.Denomination != nil {
		rec.Denomination = domain.DenominationKey(strings.TrimSpace(*m.Denomination))
	}
	if m.Memo != nil {
		rec.Memo = *m.Memo
	}
	return rec, nil
}

// ToDomainRateRecords converts model ExchangeRates, failing on the first bad row.
func ToDomainRateRecords(ms []models.ExchangeRate) ([]domain.RateRecord, error) {
	out := make([]domain.RateRecord, 0, len(ms))
	for _, m := range ms {
		rec, err := ToDomainRateRecord(m)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

// ToDomainCashAsset converts a model Asset to a domain CashAsset.
// Stock is ordered by face value, largest first.
func ToDomainCashAsset(m models.Asset) (*domain.CashAsset, error) {
	currency, err := domain.ParseCurrency(m.Currency)
	if err != nil {
		return nil, fmt.Errorf("asset %s: %w", m.ID, err)
	}
	stocks, err := parseDenominationCounts(m.Denominations)
	if err != nil {
		return nil, fmt.Errorf("asset %s: %w", m.ID, err)
	}
	return &domain.CashAsset{
		ID:       m.ID,
		Name:     m.Name,
		Currency: currency,
		Stocks:   stocks,
	}, nil
}

// parseDenominationCounts reads {"500000": 3, "200000": "2"}. Counts may be
// numbers or numeric strings; face values may carry thousands separators.
func parseDenominationCounts(raw []byte) ([]domain.DenominationStock, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var counts map[string]any
	if err := json.Unmarshal(raw, &counts); err != nil {
		return nil, fmt.Errorf("invalid denominations: %w", err)
	}

	stocks := make([]domain.DenominationStock, 0, len(counts))
	for k, v := range counts {
		value, err := strconv.ParseInt(strings.ReplaceAll(strings.TrimSpace(k), ",", ""), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid face value %q", k)
		}
		count, err := toCount(v)
		if err != nil {
			return nil, fmt.Errorf("invalid count for %q: %w", k, err)
		}
		stocks = append(stocks, domain.DenominationStock{Value: value, AvailableCount: count})
	}
	sort.Slice(stocks, func(i, j int) bool { return stocks[i].Value > stocks[j].Value })
	return stocks, nil
}

func toCount(v any) (int64, error) {
	switch n := v.(type) {
	case float64:
		if n != math.Trunc(n) {
			return 0, fmt.Errorf("%v is not a whole number", n)
		}
		return int64(n), nil
	case string:
		if strings.TrimSpace(n) == "" {
			return 0, nil
		}
		return strconv.ParseInt(strings.TrimSpace(n), 10, 64)
	case nil:
		return 0, nil
	}
	return 0, fmt.Errorf("unexpected type %T", v)
}

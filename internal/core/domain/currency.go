package domain

import (
	"fmt"
	"strings"
)

// Currency is a supported currency code. The set is closed; use ParseCurrency for untrusted input.
type Currency string

const (
	KRW  Currency = "KRW"
	USD  Currency = "USD"
	VND  Currency = "VND"
	USDT Currency = "USDT"
	BTC  Currency = "BTC"
)

// currencyInfo holds static attributes of a currency.
type currencyInfo struct {
	Symbol    string
	Name      string
	Precision int32 // decimal places used when rounding amounts
	Crypto    bool
}

var currencies = map[Currency]currencyInfo{
	KRW:  {Symbol: "₩", Name: "South Korean Won", Precision: 0},
	USD:  {Symbol: "$", Name: "US Dollar", Precision: 2},
	VND:  {Symbol: "₫", Name: "Vietnamese Dong", Precision: 0},
	USDT: {Symbol: "₮", Name: "Tether", Precision: 6, Crypto: true},
	BTC:  {Symbol: "₿", Name: "Bitcoin", Precision: 8, Crypto: true},
}

// ParseCurrency normalizes s and returns the matching Currency.
func ParseCurrency(s string) (Currency, error) {
	c := Currency(strings.ToUpper(strings.TrimSpace(s)))
	if !c.IsValid() {
		return "", fmt.Errorf("unsupported currency %q", s)
	}
	return c, nil
}

// IsValid reports whether c is one of the supported currencies.
func (c Currency) IsValid() bool {
	_, ok := currencies[c]
	return ok
}

// Precision returns the number of decimal places amounts in c are rounded to.
func (c Currency) Precision() int32 {
	return currencies[c].Precision
}

// Symbol returns the display symbol, e.g. "₫".
func (c Currency) Symbol() string {
	return currencies[c].Symbol
}

// Name returns the human readable currency name.
func (c Currency) Name() string {
	return currencies[c].Name
}

// IsCrypto reports whether c is held on exchanges rather than as physical cash.
func (c Currency) IsCrypto() bool {
	return currencies[c].Crypto
}

func (c Currency) String() string {
	return string(c)
}

// Pair identifies a directed currency pair.
type Pair struct {
	From Currency
	To   Currency
}

func (p Pair) String() string {
	return string(p.From) + "/" + string(p.To)
}

// ParsePair parses "FROM/TO", e.g. "VND/KRW".
func ParsePair(s string) (Pair, error) {
	parts := strings.Split(s, "/")
	if len(parts) != 2 {
		return Pair{}, fmt.Errorf("currency pair %q must have the form FROM/TO", s)
	}
	from, err := ParseCurrency(parts[0])
	if err != nil {
		return Pair{}, err
	}
	to, err := ParseCurrency(parts[1])
	if err != nil {
		return Pair{}, err
	}
	if from == to {
		return Pair{}, fmt.Errorf("currency pair %q uses the same currency twice", s)
	}
	return Pair{From: from, To: to}, nil
}

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate is a row of exchange_rates: one posted rate per user, pair and denomination.
// is_active is stored as the text 'true' or 'false'.
type ExchangeRate struct {
	ID           string              `db:"id"`
	UserID       string              `db:"user_id"`
	FromCurrency string              `db:"from_currency"`
	ToCurrency   string              `db:"to_currency"`
	Denomination *string             `db:"denomination"`
	GoldShopRate decimal.NullDecimal `db:"gold_shop_rate"`
	MyBuyRate    decimal.NullDecimal `db:"my_buy_rate"`
	MySellRate   decimal.NullDecimal `db:"my_sell_rate"`
	IsActive     *string             `db:"is_active"`
	Memo         *string             `db:"memo"`
	UpdatedAt    time.Time           `db:"updated_at"`
}

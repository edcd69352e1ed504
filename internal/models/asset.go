package models

// Asset is a row of assets. Only cash assets carry a bill composition,
// stored under metadata.denominations as {"500000": 3, ...}.
type Asset struct {
	ID            string `db:"id"`
	UserID        string `db:"user_id"`
	Type          string `db:"type"`
	Name          string `db:"name"`
	Currency      string `db:"currency"`
	Denominations []byte `db:"denominations"` // raw jsonb, may be nil
}

// AssetTypeCash marks physical cash holdings.
const AssetTypeCash = "cash"

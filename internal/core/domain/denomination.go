package domain

import (
	"fmt"
	"strings"
)

// DenominationKey identifies a pricing bucket of one or more bill face values, e.g. "100" or "20_10".
// Keys are only meaningful together with the currency they belong to.
type DenominationKey string

// NoDenomination is the key used by rate records that are not tied to physical bills.
const NoDenomination DenominationKey = ""

// DenominationBucket maps a bucket key to the set of face values priced together.
type DenominationBucket struct {
	Currency   Currency
	Key        DenominationKey
	Label      string
	FaceValues []int64 // largest first
}

// Covers reports whether a bill of faceValue belongs to the bucket.
func (b DenominationBucket) Covers(faceValue int64) bool {
	for _, v := range b.FaceValues {
		if v == faceValue {
			return true
		}
	}
	return false
}

// buckets lists the bill buckets per currency, largest bucket first.
// The first entry is the reference bucket for rates quoted from that currency.
var buckets = map[Currency][]DenominationBucket{
	USD: {
		{Currency: USD, Key: "100", Label: "$100", FaceValues: []int64{100}},
		{Currency: USD, Key: "50", Label: "$50", FaceValues: []int64{50}},
		{Currency: USD, Key: "20_10", Label: "$20/$10", FaceValues: []int64{20, 10}},
		{Currency: USD, Key: "5_2_1", Label: "$5/$2/$1", FaceValues: []int64{5, 2, 1}},
	},
	KRW: {
		{Currency: KRW, Key: "50000", Label: "₩50,000", FaceValues: []int64{50000}},
		{Currency: KRW, Key: "10000", Label: "₩10,000", FaceValues: []int64{10000}},
		{Currency: KRW, Key: "5000", Label: "₩5,000", FaceValues: []int64{5000}},
		{Currency: KRW, Key: "1000", Label: "₩1,000", FaceValues: []int64{1000}},
	},
	VND: {
		{Currency: VND, Key: "500000", Label: "500,000₫", FaceValues: []int64{500000}},
		{Currency: VND, Key: "200000", Label: "200,000₫", FaceValues: []int64{200000}},
		{Currency: VND, Key: "100000", Label: "100,000₫", FaceValues: []int64{100000}},
		{Currency: VND, Key: "50000", Label: "50,000₫", FaceValues: []int64{50000}},
		{Currency: VND, Key: "20000", Label: "20,000₫", FaceValues: []int64{20000}},
		{Currency: VND, Key: "10000", Label: "10,000₫", FaceValues: []int64{10000}},
		{Currency: VND, Key: "5000", Label: "5,000₫", FaceValues: []int64{5000}},
		{Currency: VND, Key: "1000", Label: "1,000₫", FaceValues: []int64{1000}},
	},
}

// Buckets returns the bill buckets of c, largest first. Crypto currencies have none.
func Buckets(c Currency) []DenominationBucket {
	src := buckets[c]
	out := make([]DenominationBucket, len(src))
	copy(out, src)
	return out
}

// LookupBucket finds the bucket with the given key for c.
func LookupBucket(c Currency, key DenominationKey) (DenominationBucket, bool) {
	for _, b := range buckets[c] {
		if b.Key == key {
			return b, true
		}
	}
	return DenominationBucket{}, false
}

// BucketForFaceValue returns the bucket pricing a bill of faceValue in c, e.g. USD 20 -> "20_10".
func BucketForFaceValue(c Currency, faceValue int64) (DenominationBucket, bool) {
	for _, b := range buckets[c] {
		if b.Covers(faceValue) {
			return b, true
		}
	}
	return DenominationBucket{}, false
}

// ReferenceDenomination is the canonical bucket used when a more specific rate is unset.
func ReferenceDenomination(c Currency) DenominationKey {
	if bs := buckets[c]; len(bs) > 0 {
		return bs[0].Key
	}
	return NoDenomination
}

// FaceValues returns every bill face value of c, largest first.
func FaceValues(c Currency) []int64 {
	var out []int64
	for _, b := range buckets[c] {
		out = append(out, b.FaceValues...)
	}
	return out
}

// ParseDenomination validates s as a bucket key of c. An empty string maps to NoDenomination
// for currencies without bills.
func ParseDenomination(c Currency, s string) (DenominationKey, error) {
	key := DenominationKey(strings.TrimSpace(s))
	if key == NoDenomination && len(buckets[c]) == 0 {
		return NoDenomination, nil
	}
	if _, ok := LookupBucket(c, key); !ok {
		return "", fmt.Errorf("unknown denomination %q for %s", s, c)
	}
	return key, nil
}

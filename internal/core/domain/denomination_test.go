package domain_test

import (
	"testing"

	"github.com/SscSPs/fxdesk/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCurrency(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    domain.Currency
		wantErr bool
	}{
		{name: "upper case", input: "VND", want: domain.VND},
		{name: "lower case with spaces", input: " usdt ", want: domain.USDT},
		{name: "unsupported", input: "EUR", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := domain.ParseCurrency(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParsePair(t *testing.T) {
	p, err := domain.ParsePair("vnd/KRW")
	require.NoError(t, err)
	assert.Equal(t, domain.Pair{From: domain.VND, To: domain.KRW}, p)
	assert.Equal(t, "VND/KRW", p.String())

	_, err = domain.ParsePair("USD")
	assert.Error(t, err)
	_, err = domain.ParsePair("USD/USD")
	assert.Error(t, err)
	_, err = domain.ParsePair("USD/EUR")
	assert.Error(t, err)
}

func TestReferenceDenomination(t *testing.T) {
	assert.Equal(t, domain.DenominationKey("500000"), domain.ReferenceDenomination(domain.VND))
	assert.Equal(t, domain.DenominationKey("100"), domain.ReferenceDenomination(domain.USD))
	assert.Equal(t, domain.DenominationKey("50000"), domain.ReferenceDenomination(domain.KRW))
	assert.Equal(t, domain.NoDenomination, domain.ReferenceDenomination(domain.USDT))
}

func TestBucketForFaceValue_CompositeBuckets(t *testing.T) {
	b, ok := domain.BucketForFaceValue(domain.USD, 10)
	require.True(t, ok)
	assert.Equal(t, domain.DenominationKey("20_10"), b.Key)
	assert.Equal(t, []int64{20, 10}, b.FaceValues)

	b, ok = domain.BucketForFaceValue(domain.USD, 2)
	require.True(t, ok)
	assert.Equal(t, domain.DenominationKey("5_2_1"), b.Key)

	_, ok = domain.BucketForFaceValue(domain.USD, 25)
	assert.False(t, ok)
	_, ok = domain.BucketForFaceValue(domain.BTC, 1)
	assert.False(t, ok)
}

func TestParseDenomination(t *testing.T) {
	key, err := domain.ParseDenomination(domain.KRW, "50000")
	require.NoError(t, err)
	assert.Equal(t, domain.DenominationKey("50000"), key)

	// 500000 is a VND bill, not a KRW one
	_, err = domain.ParseDenomination(domain.KRW, "500000")
	assert.Error(t, err)

	key, err = domain.ParseDenomination(domain.USDT, "")
	require.NoError(t, err)
	assert.Equal(t, domain.NoDenomination, key)

	_, err = domain.ParseDenomination(domain.VND, "")
	assert.Error(t, err)
}

func TestFaceValues(t *testing.T) {
	assert.Equal(t, []int64{100, 50, 20, 10, 5, 2, 1}, domain.FaceValues(domain.USD))
	assert.Equal(t, []int64{500000, 200000, 100000, 50000, 20000, 10000, 5000, 1000}, domain.FaceValues(domain.VND))
	assert.Empty(t, domain.FaceValues(domain.BTC))
}

func TestBuckets_ReturnsCopy(t *testing.T) {
	bs := domain.Buckets(domain.VND)
	bs[0].Key = "tampered"
	assert.Equal(t, domain.DenominationKey("500000"), domain.Buckets(domain.VND)[0].Key)
}

func TestCurrencyAttributes(t *testing.T) {
	assert.Equal(t, int32(0), domain.VND.Precision())
	assert.Equal(t, int32(2), domain.USD.Precision())
	assert.Equal(t, int32(8), domain.BTC.Precision())
	assert.True(t, domain.USDT.IsCrypto())
	assert.False(t, domain.KRW.IsCrypto())
	assert.Equal(t, "₫", domain.VND.Symbol())
}

package formatter

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestMoney(t *testing.T) {
	tests := []struct {
		amount   float64
		currency string
		want     string
	}{
		{416.5, "BRL", "R$ 416,50"},
		{1234.5, "BRL", "R$ 1.234,50"},
		{2.675, "BRL", "R$ 2,68"},
		{99.999, "usd", "US$ 100,00"},
		{10, "", "R$ 10,00"},
		{10, "JPY", "JPY 10,00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Money(tt.amount, tt.currency), "%v %s", tt.amount, tt.currency)
	}
}

func TestDecimalMoney(t *testing.T) {
	assert.Equal(t, "R$ 665,50", DecimalMoney(decimal.RequireFromString("665.5"), "BRL"))
}

func TestDate(t *testing.T) {
	assert.Equal(t, "—", Date(nil))
	d := time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "07/03/2026", Date(&d))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "Compressor", Truncate("Compressor", 10))
	assert.Equal(t, "Compress…", Truncate("Compressores", 9))
	assert.Equal(t, "Óle…", Truncate("Óleo sintético", 4))
}

package quote

import (
	"testing"

	"github.com/compressorworks/crm/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		def  float64
		want float64
	}{
		{"", 1, 1},
		{"   ", 0, 0},
		{"2", 0, 2},
		{" 25,50 ", 0, 25.5},
		{"25.50", 0, 25.5},
		{"-3", 0, -3},
		{"1e2", 0, 100},
	}
	for _, tc := range tests {
		got, err := ParseAmount(tc.in, tc.def)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestParseAmount_Rejects(t *testing.T) {
	for _, in := range []string{"12abc", "NaN", "+Inf", "1.234,56", "R$ 10"} {
		_, err := ParseAmount(in, 0)
		assert.ErrorIs(t, err, domain.ErrInvalidNumber, in)
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("05/03/2025")
	require.NoError(t, err)
	assert.Equal(t, "2025-03-05", d.Format("2006-01-02"))

	d, err = ParseDate("2025-03-05")
	require.NoError(t, err)
	assert.Equal(t, 5, d.Day())

	d, err = ParseDate("")
	require.NoError(t, err)
	assert.Nil(t, d)

	_, err = ParseDate("amanhã")
	assert.Error(t, err)
}

func TestFormatQuantity(t *testing.T) {
	assert.Equal(t, "2", FormatQuantity(2))
	assert.Equal(t, "2.5", FormatQuantity(2.5))
}

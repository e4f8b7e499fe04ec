package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuotationFields_LabelsAndColumnsUnique(t *testing.T) {
	labels := map[string]bool{}
	columns := map[string]bool{}
	for _, f := range QuotationFields {
		assert.False(t, labels[f.Label], "duplicate label %q", f.Label)
		assert.False(t, columns[f.Column], "duplicate column %q", f.Column)
		labels[f.Label] = true
		columns[f.Column] = true
	}
}

func TestFieldForLabel_RoundTrip(t *testing.T) {
	for _, f := range QuotationFields {
		col, ok := FieldForLabel(f.Label)
		require.True(t, ok, f.Label)
		assert.Equal(t, f.Column, col)

		label, ok := LabelForField(f.Column)
		require.True(t, ok, f.Column)
		assert.Equal(t, f.Label, label)
	}
}

func TestFieldForLabel_AccentedLabel(t *testing.T) {
	col, ok := FieldForLabel("Condição Inicial")
	require.True(t, ok)
	assert.Equal(t, "initial_condition", col)

	col, ok = FieldForLabel("  Condição de Pagamento ")
	require.True(t, ok)
	assert.Equal(t, "payment_terms", col)
}

func TestFieldForLabel_NoDerivedMatches(t *testing.T) {
	for _, label := range []string{"condicao inicial", "CONDIÇÃO INICIAL", "condição_inicial", ""} {
		_, ok := FieldForLabel(label)
		assert.False(t, ok, label)
	}
}

func TestMustLabel_PanicsOnUnknownColumn(t *testing.T) {
	assert.Equal(t, "Moeda", MustLabel("currency"))
	assert.Panics(t, func() { MustLabel("nope") })
}

package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validQuotation() *Quotation {
	q := &Quotation{ProposalNumber: " 2024-001 ", ClientID: "c1"}
	q.Normalize()
	return q
}

func TestQuotation_NormalizeDefaults(t *testing.T) {
	q := validQuotation()

	assert.Equal(t, "2024-001", q.ProposalNumber)
	assert.Equal(t, QuotationOpen, q.Status)
	assert.Equal(t, "BRL", q.Terms.Currency)
	require.NoError(t, q.Validate())
}

func TestQuotation_ValidateRequiredFields(t *testing.T) {
	tests := []struct {
		name  string
		mut   func(q *Quotation)
		field string
	}{
		{"missing proposal number", func(q *Quotation) { q.ProposalNumber = "" }, "proposal_number"},
		{"missing client", func(q *Quotation) { q.ClientID = "" }, "client_id"},
		{"bad status", func(q *Quotation) { q.Status = "draft" }, "status"},
		{"bad freight", func(q *Quotation) { q.Terms.FreightType = "EXW" }, "freight_type"},
		{"bad currency", func(q *Quotation) { q.Terms.Currency = "REAL" }, "currency"},
		{"unnamed item", func(q *Quotation) { q.Items = []LineItem{{Type: ProductGood}} }, "item.name"},
		{"untyped item", func(q *Quotation) { q.Items = []LineItem{{Name: "x", Type: "misc"}} }, "item.type"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			q := validQuotation()
			tc.mut(q)
			err := q.Validate()
			require.Error(t, err)

			var ve *ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tc.field, ve.Field)
			assert.True(t, IsValidation(err))
		})
	}
}

func TestQuotation_ExpiryBeforeCreation(t *testing.T) {
	q := validQuotation()
	q.CreatedDate = time.Date(2024, 5, 10, 15, 0, 0, 0, time.UTC)
	before := time.Date(2024, 5, 9, 0, 0, 0, 0, time.UTC)
	q.ExpiryDate = &before
	assert.Error(t, q.Validate())

	sameDay := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	q.ExpiryDate = &sameDay
	assert.NoError(t, q.Validate())
}

func TestQuotation_RecomputeTotals(t *testing.T) {
	q := validQuotation()
	q.Items = []LineItem{
		{Name: "Revisão", Type: ProductService, Quantity: 2, UnitPrice: 100, Labor: 50, Travel: 20},
		{Name: "Filtro", Type: ProductGood, Quantity: 3, UnitPrice: 25.50, Labor: 99},
	}
	q.RecomputeTotals()

	assert.Equal(t, 340.0, q.Items[0].LineTotal)
	assert.Equal(t, 76.5, q.Items[1].LineTotal)
	assert.Zero(t, q.Items[1].Labor)
	assert.Equal(t, 416.5, q.Total)
}

func TestDefaultExpiry(t *testing.T) {
	created := time.Date(2024, 1, 30, 18, 45, 0, 0, time.UTC)

	exp := DefaultExpiry(created, 15)
	require.NotNil(t, exp)
	assert.Equal(t, time.Date(2024, 2, 14, 0, 0, 0, 0, time.UTC), *exp)
	assert.Nil(t, DefaultExpiry(created, 0))
}

func TestValidationError_Message(t *testing.T) {
	err := NewValidationError("name", ErrNameRequired)
	assert.Equal(t, "name: name required", err.Error())
	assert.ErrorIs(t, err, ErrNameRequired)

	bare := &ValidationError{Err: ErrNoSelection}
	assert.Equal(t, "no selection", bare.Error())
}

func TestPersistenceError_Unwraps(t *testing.T) {
	cause := errors.New("disk full")
	err := &PersistenceError{Op: "saving quotation", Err: cause}
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "saving quotation: disk full", err.Error())
}

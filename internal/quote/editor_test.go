package quote

import (
	"errors"
	"testing"
	"time"

	"github.com/compressorworks/crm/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddLineItem_ServiceWithSurcharges(t *testing.T) {
	e := NewEditor(nil)

	st, err := e.AddLineItem(LineItemInput{
		Type: domain.ProductService, Name: "Revisão", Quantity: "2", UnitPrice: "100,00",
		Labor: "50", Travel: "20", Lodging: "",
	})
	require.NoError(t, err)
	require.Len(t, st.Items, 1)
	assert.Equal(t, 340.0, st.Items[0].LineTotal)
	assert.Equal(t, 340.0, st.Total)
}

func TestAddLineItem_GoodIgnoresSurchargeText(t *testing.T) {
	e := NewEditor(nil)

	st, err := e.AddLineItem(LineItemInput{
		Type: domain.ProductGood, Name: "Filtro", Quantity: "3", UnitPrice: "25.50",
		Labor: "not a number",
	})
	require.NoError(t, err)
	assert.Equal(t, 76.5, st.Items[0].LineTotal)
	assert.Zero(t, st.Items[0].Labor)
}

func TestAddLineItem_Defaults(t *testing.T) {
	e := NewEditor(nil)

	st, err := e.AddLineItem(LineItemInput{Type: domain.ProductGood, Name: "Brinde"})
	require.NoError(t, err)
	assert.Equal(t, 1.0, st.Items[0].Quantity)
	assert.Zero(t, st.Items[0].UnitPrice)
	assert.Zero(t, st.Total)
}

func TestAddLineItem_EmptyNameRejected(t *testing.T) {
	e := NewEditor(nil)
	_, err := e.AddLineItem(LineItemInput{Type: domain.ProductGood, Name: "x", Quantity: "1", UnitPrice: "5"})
	require.NoError(t, err)

	st, err := e.AddLineItem(LineItemInput{Type: domain.ProductGood, Name: "   ", Quantity: "1"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNameRequired)
	assert.True(t, domain.IsValidation(err))
	assert.Len(t, st.Items, 1, "sequence untouched")
	assert.Equal(t, 5.0, e.Total())
}

func TestAddLineItem_InvalidNumbersRejected(t *testing.T) {
	for _, text := range []string{"12abc", "abc", "NaN", "Inf", "-Inf", "1.234,56", "1,2,3"} {
		t.Run(text, func(t *testing.T) {
			e := NewEditor(nil)
			st, err := e.AddLineItem(LineItemInput{Type: domain.ProductService, Name: "x", Quantity: text})
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidNumber)
			assert.Empty(t, st.Items)

			_, err = e.AddLineItem(LineItemInput{Type: domain.ProductService, Name: "x", Travel: text})
			assert.ErrorIs(t, err, domain.ErrInvalidNumber)
			assert.Empty(t, e.Items().Items)
		})
	}
}

func TestAddLineItem_UnknownTypeRejected(t *testing.T) {
	e := NewEditor(nil)
	_, err := e.AddLineItem(LineItemInput{Type: "misc", Name: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidValue)
}

func TestAddLineItem_AppendsAtTail(t *testing.T) {
	e := NewEditor(nil)
	for _, name := range []string{"a", "b", "c"} {
		_, err := e.AddLineItem(LineItemInput{Type: domain.ProductGood, Name: name, UnitPrice: "1"})
		require.NoError(t, err)
	}
	st := e.Items()
	require.Len(t, st.Items, 3)
	assert.Equal(t, "a", st.Items[0].Name)
	assert.Equal(t, "c", st.Items[2].Name)
	assert.Equal(t, 3.0, st.Total)
}

func TestRemoveLineItem(t *testing.T) {
	e := NewEditor(nil)
	for _, name := range []string{"a", "b", "c"} {
		_, err := e.AddLineItem(LineItemInput{Type: domain.ProductGood, Name: name, UnitPrice: "10"})
		require.NoError(t, err)
	}

	st, err := e.RemoveLineItem(1)
	require.NoError(t, err)
	require.Len(t, st.Items, 2)
	assert.Equal(t, "a", st.Items[0].Name)
	assert.Equal(t, "c", st.Items[1].Name)
	assert.Equal(t, 20.0, st.Total)
}

func TestRemoveLineItem_NoSelection(t *testing.T) {
	e := NewEditor(nil)
	_, err := e.AddLineItem(LineItemInput{Type: domain.ProductGood, Name: "a"})
	require.NoError(t, err)

	for _, pos := range []int{-1, 1, 99} {
		st, err := e.RemoveLineItem(pos)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrNoSelection)
		assert.Equal(t, "no selection", err.Error())
		assert.Len(t, st.Items, 1)
	}
}

func TestItems_ReturnsCopy(t *testing.T) {
	e := NewEditor(nil)
	st, err := e.AddLineItem(LineItemInput{Type: domain.ProductGood, Name: "a", UnitPrice: "1"})
	require.NoError(t, err)

	st.Items[0].Name = "mutated"
	assert.Equal(t, "a", e.Items().Items[0].Name)
}

func TestTotal_EqualsSumAfterAnySequence(t *testing.T) {
	e := NewEditor(nil)
	ops := []LineItemInput{
		{Type: domain.ProductService, Name: "s1", Quantity: "1,5", UnitPrice: "33.3", Labor: "0.7"},
		{Type: domain.ProductGood, Name: "g1", Quantity: "7", UnitPrice: "0.1"},
		{Type: domain.ProductKit, Name: "k1", Quantity: "2", UnitPrice: "199.99"},
	}
	for _, in := range ops {
		_, err := e.AddLineItem(in)
		require.NoError(t, err)
	}
	_, err := e.RemoveLineItem(0)
	require.NoError(t, err)

	var want float64
	for _, it := range e.Quotation().Items {
		want += it.LineTotal
	}
	assert.Equal(t, want, e.Total())
	assert.Equal(t, want, e.Quotation().Total)
}

func TestMarkSaved_KeepsLiveEdits(t *testing.T) {
	e := NewEditor(nil)
	_, err := e.AddLineItem(LineItemInput{Name: "Visita"})
	require.NoError(t, err)

	created := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	expiry := created.AddDate(0, 0, 15)
	saved := *e.Quotation()
	saved.ID = "q-1"
	saved.CreatedDate = created
	saved.ExpiryDate = &expiry
	saved.Terms.Currency = "BRL"

	_, err = e.AddLineItem(LineItemInput{Name: "Troca de óleo"})
	require.NoError(t, err)
	e.MarkSaved(&saved)

	q := e.Quotation()
	assert.Equal(t, "q-1", q.ID)
	assert.Equal(t, created, q.CreatedDate)
	require.NotNil(t, q.ExpiryDate)
	assert.Equal(t, expiry, *q.ExpiryDate)
	assert.Equal(t, "BRL", q.Terms.Currency)
	assert.Len(t, q.Items, 2)
}

func TestNewDraft_UsesCurrency(t *testing.T) {
	assert.Equal(t, "USD", NewDraft("USD").Header().Currency)
	assert.Empty(t, NewEditor(nil).Header().Currency)
}

func TestBindClient(t *testing.T) {
	e := NewEditor(nil)
	e.BindClient(domain.ClientSummary{ID: "c-1", Name: "Alfa"})

	assert.Equal(t, "c-1", e.Quotation().ClientID)
	assert.Equal(t, "Alfa", e.ClientName())
}

func TestAddProduct_KitNote(t *testing.T) {
	e := NewEditor(nil)
	kit := &domain.Product{
		Name: "Kit revisão", Type: domain.ProductKit, UnitPrice: 600,
		Components: []domain.KitComponent{
			{ComponentName: "Óleo 20L", Quantity: 1},
			{ComponentName: "Filtro", Quantity: 2.5},
		},
	}

	st, err := e.AddProduct(kit, "2")
	require.NoError(t, err)
	require.Len(t, st.Items, 1)
	assert.Equal(t, domain.ProductKit, st.Items[0].Type)
	assert.Equal(t, 1200.0, st.Items[0].LineTotal)
	assert.Equal(t, "Inclui: 1x Óleo 20L, 2.5x Filtro", st.Items[0].Note)
}

func TestApplyHeader(t *testing.T) {
	e := NewEditor(nil)
	err := e.ApplyHeader(HeaderInput{
		ProposalNumber: " 2024-010 ",
		ExpiryDate:     "31/12/2024",
		FreightType:    "fob",
		Currency:       "usd",
	})
	require.NoError(t, err)

	q := e.Quotation()
	assert.Equal(t, "2024-010", q.ProposalNumber)
	assert.Equal(t, domain.FreightFOB, q.Terms.FreightType)
	assert.Equal(t, "USD", q.Terms.Currency)
	require.NotNil(t, q.ExpiryDate)
	assert.Equal(t, "2024-12-31", q.ExpiryDate.Format("2006-01-02"))
	assert.Equal(t, "31/12/2024", e.Header().ExpiryDate)
}

func TestApplyHeader_InvalidLeavesQuotationUnchanged(t *testing.T) {
	e := NewEditor(nil)
	require.NoError(t, e.ApplyHeader(HeaderInput{ProposalNumber: "P-1"}))

	err := e.ApplyHeader(HeaderInput{ProposalNumber: "P-2", ExpiryDate: "31-31-2024"})
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "expiry_date", ve.Field)
	assert.Equal(t, "P-1", e.Quotation().ProposalNumber)

	err = e.ApplyHeader(HeaderInput{ProposalNumber: "P-3", FreightType: "EXW"})
	assert.ErrorIs(t, err, domain.ErrInvalidValue)
	assert.Equal(t, "P-1", e.Quotation().ProposalNumber)
}

func TestFromQuotation_CopiesAsNew(t *testing.T) {
	src := &domain.Quotation{
		ID: "q-1", ProposalNumber: "P-1", ClientID: "c-1", Status: domain.QuotationApproved,
		Items: []domain.LineItem{{ID: "i-1", QuotationID: "q-1", Type: domain.ProductGood, Name: "a", Quantity: 2, UnitPrice: 5}},
	}
	e := FromQuotation(src, "P-2")
	q := e.Quotation()

	assert.True(t, q.IsNew())
	assert.Equal(t, "P-2", q.ProposalNumber)
	assert.Equal(t, "c-1", q.ClientID)
	assert.Equal(t, domain.QuotationOpen, q.Status)
	require.Len(t, q.Items, 1)
	assert.Empty(t, q.Items[0].ID)
	assert.Equal(t, 10.0, q.Total)

	q.Items[0].Name = "changed"
	assert.Equal(t, "a", src.Items[0].Name)
	assert.Equal(t, "i-1", src.Items[0].ID)
}

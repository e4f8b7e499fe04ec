package formatter

import (
	"strings"
	"testing"
	"time"

	"github.com/compressorworks/crm/internal/domain"
	"github.com/compressorworks/crm/internal/repository"
	"github.com/stretchr/testify/assert"
)

func TestRenderTable_AlignsColumns(t *testing.T) {
	out := RenderTable([]string{"A", "LONG"}, [][]string{{"xyz", "1"}, {"q", "22"}})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 4)
	assert.Equal(t, strings.Index(lines[0], "LONG"), strings.Index(lines[2], "1"))
	assert.Equal(t, strings.Index(lines[0], "LONG"), strings.Index(lines[3], "22"))
}

func TestRenderTable_NoHeaders(t *testing.T) {
	assert.Empty(t, RenderTable(nil, [][]string{{"x"}}))
}

func TestFormatItems(t *testing.T) {
	svc := domain.LineItem{Type: domain.ProductService, Name: "Revisão", Quantity: 2, UnitPrice: 100, Labor: 50, Travel: 20}
	svc.Recompute()
	good := domain.LineItem{Type: domain.ProductGood, Name: "Filtro de ar", Quantity: 3, UnitPrice: 25.5}
	good.Recompute()

	out := FormatItems([]domain.LineItem{svc, good}, "BRL")
	assert.Contains(t, out, "Revisão")
	assert.Contains(t, out, "Serviço")
	assert.Contains(t, out, "70,00")
	assert.Contains(t, out, "340,00")
	assert.Contains(t, out, "76,50")
	assert.Contains(t, out, "R$ 416,50")
}

func TestFormatQuotationList(t *testing.T) {
	expiry := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	out := FormatQuotationList([]repository.QuotationSummary{{
		ProposalNumber: "P-0001",
		ClientName:     "Metalúrgica Vale",
		CreatedDate:    time.Date(2026, 1, 17, 10, 0, 0, 0, time.UTC),
		ExpiryDate:     &expiry,
		Status:         domain.QuotationApproved,
		Currency:       "BRL",
		Total:          1500,
		ItemCount:      3,
	}})
	assert.Contains(t, out, "P-0001")
	assert.Contains(t, out, "Metalúrgica Vale")
	assert.Contains(t, out, "17/01/2026")
	assert.Contains(t, out, "01/02/2026")
	assert.Contains(t, out, "Aprovada")
	assert.Contains(t, out, "R$ 1.500,00")
}

func TestFormatQuotation_BlankFieldsShowDash(t *testing.T) {
	q := &domain.Quotation{
		ProposalNumber: "P-0002",
		CreatedDate:    time.Date(2026, 1, 17, 0, 0, 0, 0, time.UTC),
		Status:         domain.QuotationOpen,
		Terms:          domain.CommercialTerms{Currency: "BRL"},
	}
	out := FormatQuotation(q, "Cliente X")
	assert.Contains(t, out, "Número da Proposta:")
	assert.Contains(t, out, "Cliente X")
	assert.Contains(t, out, "Equipamento: —")
}

func TestFormatClient(t *testing.T) {
	c := &domain.Client{
		Name:     "Metalúrgica Vale",
		FiscalID: "12345678000190",
		City:     "Campinas",
		State:    "SP",
		Contacts: []domain.Contact{{Name: "Ana", Role: "Compras"}},
	}
	out := FormatClient(c)
	assert.Contains(t, out, "12.345.678/0001-90")
	assert.Contains(t, out, "Campinas/SP")
	assert.Contains(t, out, "Ana")
	assert.Contains(t, out, "Compras")
}

package formatter

import (
	"fmt"
	"strings"

	"github.com/compressorworks/crm/internal/domain"
	"github.com/compressorworks/crm/internal/quote"
	"github.com/compressorworks/crm/internal/repository"
)

// FormatQuotationList renders quotation summaries newest first, as listed.
func FormatQuotationList(list []repository.QuotationSummary) string {
	headers := []string{"NÚMERO", "CLIENTE", "CRIADA", "VALIDADE", "STATUS", "ITENS", "TOTAL"}
	rows := make([][]string, 0, len(list))
	for _, s := range list {
		created := s.CreatedDate
		rows = append(rows, []string{
			StyleGreen.Render(s.ProposalNumber),
			Bold(Truncate(s.ClientName, 32)),
			Date(&created),
			Date(s.ExpiryDate),
			StatusPill(s.Status),
			fmt.Sprintf("%d", s.ItemCount),
			Money(s.Total, s.Currency),
		})
	}
	return RenderBox("Propostas", RenderTable(headers, rows))
}

// FormatItems renders a quotation's line items with a total row.
func FormatItems(items []domain.LineItem, currency string) string {
	headers := []string{"#", "TIPO", "DESCRIÇÃO", "QTD", "UNIT.", "ADICIONAIS", "TOTAL"}
	rows := make([][]string, 0, len(items)+1)
	for i, it := range items {
		extra := Dim("—")
		if it.Type == domain.ProductService && it.Surcharges() != 0 {
			extra = Amount(it.Surcharges())
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			TypeBadge(it.Type),
			Truncate(it.Name, 40),
			quote.FormatQuantity(it.Quantity),
			Amount(it.UnitPrice),
			extra,
			Amount(it.LineTotal),
		})
	}
	rows = append(rows, []string{"", "", "", "", "", Bold(domain.MustLabel("total_value")), Bold(Money(domain.SumLineTotals(items), currency))})
	return RenderTable(headers, rows)
}

// FormatQuotation renders a full quotation card: header fields, then items.
func FormatQuotation(q *domain.Quotation, clientName string) string {
	field := func(column, value string) string {
		if strings.TrimSpace(value) == "" {
			value = Dim("—")
		}
		return fmt.Sprintf("%s %s", StyleDim.Render(domain.MustLabel(column)+":"), value)
	}

	lines := []string{
		field("proposal_number", StyleGreen.Render(q.ProposalNumber)),
		field("client_id", Bold(clientName)),
		field("created_date", Date(&q.CreatedDate)),
		field("expiry_date", Date(q.ExpiryDate)),
		field("status", StatusPill(q.Status)),
		field("description", q.Description),
		field("equipment", q.Equipment),
		field("initial_condition", q.InitialCondition),
		field("notes", q.Notes),
		field("freight_type", string(q.Terms.FreightType)),
		field("payment_terms", q.Terms.PaymentTerms),
		field("delivery_term", q.Terms.DeliveryTerm),
		field("currency", q.Terms.Currency),
	}

	var b strings.Builder
	b.WriteString(strings.Join(lines, "\n"))
	b.WriteString("\n\n")
	b.WriteString(FormatItems(q.Items, q.Terms.Currency))
	return RenderBox("Proposta "+q.ProposalNumber, b.String())
}

package domain

import "strings"

// QuotationField pairs a display label with the column that stores it.
type QuotationField struct {
	Label  string
	Column string
}

// QuotationFields lists every labelled quotation header field in form
// order. Labels are looked up exactly; there is no derived mapping.
var QuotationFields = []QuotationField{
	{Label: "Número da Proposta", Column: "proposal_number"},
	{Label: "Cliente", Column: "client_id"},
	{Label: "Responsável", Column: "owner_id"},
	{Label: "Data de Criação", Column: "created_date"},
	{Label: "Validade", Column: "expiry_date"},
	{Label: "Descrição", Column: "description"},
	{Label: "Equipamento", Column: "equipment"},
	{Label: "Condição Inicial", Column: "initial_condition"},
	{Label: "Observações", Column: "notes"},
	{Label: "Tipo de Frete", Column: "freight_type"},
	{Label: "Condição de Pagamento", Column: "payment_terms"},
	{Label: "Prazo de Entrega", Column: "delivery_term"},
	{Label: "Moeda", Column: "currency"},
	{Label: "Status", Column: "status"},
	{Label: "Valor Total", Column: "total_value"},
}

// FieldForLabel returns the column stored under label.
func FieldForLabel(label string) (string, bool) {
	label = strings.TrimSpace(label)
	for _, f := range QuotationFields {
		if f.Label == label {
			return f.Column, true
		}
	}
	return "", false
}

// LabelForField returns the display label of column.
func LabelForField(column string) (string, bool) {
	for _, f := range QuotationFields {
		if f.Column == column {
			return f.Label, true
		}
	}
	return "", false
}

// MustLabel is LabelForField for columns known at compile time.
func MustLabel(column string) string {
	if l, ok := LabelForField(column); ok {
		return l
	}
	panic("domain: no label for column " + column)
}

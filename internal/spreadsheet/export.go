// Package spreadsheet renders quotations to XLSX and reads catalog price
// lists from XLSX.
package spreadsheet

import (
	"context"
	"fmt"
	"io"

	"github.com/compressorworks/crm/internal/domain"
	"github.com/xuri/excelize/v2"
)

const (
	SheetProposal = "Proposta"
	SheetItems    = "Itens"

	dateFormat = "02/01/2006"
	// Built-in format "#,##0.00".
	numFmtMoney = 4
)

// QuotationReader loads a committed quotation with its items.
type QuotationReader interface {
	Get(ctx context.Context, id string) (*domain.Quotation, error)
}

// ClientReader loads the quotation's client for the header block.
type ClientReader interface {
	Get(ctx context.Context, id string) (*domain.Client, error)
}

var itemHeader = []interface{}{
	"#", "Tipo", "Descrição", "Qtd", "Preço Unit.", "Mão de Obra", "Deslocamento", "Hospedagem", "Total", "Observação",
}

// ExportQuotation writes quotation id as a workbook with a header sheet and
// an items sheet.
func ExportQuotation(ctx context.Context, quotes QuotationReader, clients ClientReader, id string, w io.Writer) error {
	q, err := quotes.Get(ctx, id)
	if err != nil {
		return err
	}
	client, err := clients.Get(ctx, q.ClientID)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), SheetProposal); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}
	if _, err := f.NewSheet(SheetItems); err != nil {
		return fmt.Errorf("adding items sheet: %w", err)
	}
	money, err := f.NewStyle(&excelize.Style{NumFmt: numFmtMoney})
	if err != nil {
		return fmt.Errorf("creating style: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating style: %w", err)
	}

	if err := writeHeader(f, q, client, money, bold); err != nil {
		return err
	}
	if err := writeItems(f, q, money, bold); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func writeHeader(f *excelize.File, q *domain.Quotation, c *domain.Client, money, bold int) error {
	expiry := ""
	if q.ExpiryDate != nil {
		expiry = q.ExpiryDate.Format(dateFormat)
	}
	rows := []struct {
		column string
		value  interface{}
	}{
		{"proposal_number", q.ProposalNumber},
		{"client_id", c.Name},
		{"created_date", q.CreatedDate.Format(dateFormat)},
		{"expiry_date", expiry},
		{"description", q.Description},
		{"equipment", q.Equipment},
		{"initial_condition", q.InitialCondition},
		{"notes", q.Notes},
		{"freight_type", string(q.Terms.FreightType)},
		{"payment_terms", q.Terms.PaymentTerms},
		{"delivery_term", q.Terms.DeliveryTerm},
		{"currency", q.Terms.Currency},
		{"status", q.Status.Label()},
		{"total_value", q.Total},
	}
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		row := []interface{}{domain.MustLabel(r.column), r.value}
		if err := f.SetSheetRow(SheetProposal, cell, &row); err != nil {
			return fmt.Errorf("writing header row: %w", err)
		}
		if err := f.SetCellStyle(SheetProposal, cell, cell, bold); err != nil {
			return err
		}
	}
	last := fmt.Sprintf("B%d", len(rows))
	if err := f.SetCellStyle(SheetProposal, last, last, money); err != nil {
		return err
	}
	if c.FiscalID != "" {
		if err := f.SetCellValue(SheetProposal, "C2", domain.FormatFiscalID(c.FiscalID)); err != nil {
			return err
		}
	}
	return f.SetColWidth(SheetProposal, "A", "A", 24)
}

func writeItems(f *excelize.File, q *domain.Quotation, money, bold int) error {
	if err := f.SetSheetRow(SheetItems, "A1", &itemHeader); err != nil {
		return fmt.Errorf("writing items header: %w", err)
	}
	if err := f.SetCellStyle(SheetItems, "A1", "J1", bold); err != nil {
		return err
	}

	row := 2
	for i, it := range q.Items {
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		values := []interface{}{
			i + 1, it.Type.Label(), it.Name, it.Quantity, it.UnitPrice,
			it.Labor, it.Travel, it.Lodging, it.LineTotal, it.Note,
		}
		if err := f.SetSheetRow(SheetItems, cell, &values); err != nil {
			return fmt.Errorf("writing item row: %w", err)
		}
		row++
	}

	totalLabel := fmt.Sprintf("H%d", row)
	if err := f.SetCellValue(SheetItems, totalLabel, domain.MustLabel("total_value")); err != nil {
		return err
	}
	if err := f.SetCellValue(SheetItems, fmt.Sprintf("I%d", row), q.Total); err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetItems, "E2", fmt.Sprintf("I%d", row), money); err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetItems, totalLabel, totalLabel, bold); err != nil {
		return err
	}
	return f.SetColWidth(SheetItems, "C", "C", 40)
}

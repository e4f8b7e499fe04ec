package spreadsheet

import (
	"fmt"
	"io"
	"strings"

	"github.com/compressorworks/crm/internal/domain"
	"github.com/compressorworks/crm/internal/quote"
	"github.com/xuri/excelize/v2"
)

// Accepted header names per column, compared after accent folding.
var catalogColumns = map[string][]string{
	"name":       {"name", "nome", "descricao"},
	"type":       {"type", "tipo"},
	"unit_price": {"unit_price", "preco", "preco unitario", "valor"},
}

var productTypeNames = map[string]domain.ProductType{
	"service": domain.ProductService,
	"servico": domain.ProductService,
	"good":    domain.ProductGood,
	"produto": domain.ProductGood,
	"peca":    domain.ProductGood,
	"kit":     domain.ProductKit,
}

// ReadCatalog reads products from the first sheet. The first row is a
// header naming the name, type and unit price columns; blank rows are
// skipped.
func ReadCatalog(r io.Reader) ([]*domain.Product, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	// Raw values keep formatted prices such as "1,234.50" parseable.
	rows, err := f.GetRows(f.GetSheetName(0), excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("reading rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("empty workbook")
	}

	idx, err := headerIndex(rows[0])
	if err != nil {
		return nil, err
	}

	var products []*domain.Product
	for n, row := range rows[1:] {
		name := cell(row, idx["name"])
		if name == "" && cell(row, idx["type"]) == "" && cell(row, idx["unit_price"]) == "" {
			continue
		}
		lineNo := n + 2

		t, ok := productTypeNames[domain.FoldText(cell(row, idx["type"]))]
		if !ok {
			return nil, fmt.Errorf("row %d: %w", lineNo, domain.NewValidationError("type", domain.ErrInvalidValue))
		}
		price, err := quote.ParseAmount(cell(row, idx["unit_price"]), 0)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", lineNo, domain.NewValidationError("unit_price", err))
		}
		products = append(products, &domain.Product{Name: name, Type: t, UnitPrice: price})
	}
	return products, nil
}

func headerIndex(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(catalogColumns))
	for i, h := range header {
		key := domain.FoldText(h)
		for col, names := range catalogColumns {
			for _, n := range names {
				if key == n {
					idx[col] = i
				}
			}
		}
	}
	for col := range catalogColumns {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("missing column %q", col)
		}
	}
	return idx, nil
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

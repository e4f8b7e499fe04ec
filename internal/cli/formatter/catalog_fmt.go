package formatter

import (
	"strings"

	"github.com/compressorworks/crm/internal/domain"
	"github.com/compressorworks/crm/internal/quote"
	"github.com/shopspring/decimal"
)

func FormatProductList(products []*domain.Product) string {
	headers := []string{"ID", "NOME", "TIPO", "PREÇO", "ATIVO"}
	rows := make([][]string, 0, len(products))
	for _, p := range products {
		active := StyleGreen.Render("sim")
		if !p.Active {
			active = Dim("não")
		}
		rows = append(rows, []string{
			ShortID(p.ID),
			Bold(Truncate(p.Name, 40)),
			TypeBadge(p.Type),
			Amount(p.UnitPrice),
			active,
		})
	}
	return RenderTable(headers, rows)
}

// FormatKit renders a kit's direct composition, its expansion into leaf
// products and the suggested price.
func FormatKit(kit *domain.Product, leaves []domain.KitLine, suggested decimal.Decimal) string {
	var b strings.Builder

	b.WriteString(Header("Composição") + "\n")
	rows := make([][]string, 0, len(kit.Components))
	for _, c := range kit.Components {
		rows = append(rows, []string{quote.FormatQuantity(c.Quantity) + "x", c.ComponentName, TypeBadge(c.ComponentType)})
	}
	b.WriteString(RenderTable([]string{"QTD", "ITEM", "TIPO"}, rows))

	b.WriteString("\n" + Header("Itens expandidos") + "\n")
	rows = rows[:0]
	for _, l := range leaves {
		rows = append(rows, []string{quote.FormatQuantity(l.Quantity) + "x", l.Name, Amount(l.UnitPrice)})
	}
	b.WriteString(RenderTable([]string{"QTD", "ITEM", "UNIT."}, rows))

	b.WriteString("\n" + Dim("Preço sugerido: ") + Bold(DecimalMoney(suggested, domain.DefaultCurrency)) + "\n")
	b.WriteString(Dim("Preço cadastrado: ") + Amount(kit.UnitPrice))
	return RenderBox("Kit "+kit.Name, b.String())
}

package formatter

import (
	"fmt"
	"strings"

	"github.com/compressorworks/crm/internal/domain"
)

func FormatClientList(list []domain.ClientSummary) string {
	headers := []string{"ID", "NOME", "FANTASIA", "CNPJ/CPF", "CIDADE"}
	rows := make([][]string, 0, len(list))
	for _, c := range list {
		rows = append(rows, []string{
			ShortID(c.ID),
			Bold(Truncate(c.Name, 36)),
			c.TradeName,
			domain.FormatFiscalID(c.FiscalID),
			c.City,
		})
	}
	return RenderTable(headers, rows)
}

// FormatClient renders a client card with address and contacts.
func FormatClient(c *domain.Client) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", Bold(c.Name))
	if c.TradeName != "" {
		fmt.Fprintf(&b, "%s\n", Dim(c.TradeName))
	}
	if c.FiscalID != "" {
		fmt.Fprintf(&b, "CNPJ/CPF: %s\n", domain.FormatFiscalID(c.FiscalID))
	}
	addr := strings.TrimSpace(strings.Join(nonEmpty(c.Street, c.Number, c.District), ", "))
	city := strings.Join(nonEmpty(c.City, c.State), "/")
	if addr != "" || city != "" {
		fmt.Fprintf(&b, "%s\n", strings.Join(nonEmpty(addr, city, c.ZipCode), " · "))
	}
	if c.Phone != "" || c.Email != "" {
		fmt.Fprintf(&b, "%s\n", strings.Join(nonEmpty(c.Phone, c.Email), " · "))
	}

	if len(c.Contacts) > 0 {
		b.WriteString("\n" + Header("Contatos") + "\n")
		for _, ct := range c.Contacts {
			fmt.Fprintf(&b, "  %s %s\n", Bold(ct.Name), Dim(strings.Join(nonEmpty(ct.Role, ct.Phone, ct.Email), " · ")))
		}
	}
	return RenderBox("Cliente", strings.TrimRight(b.String(), "\n"))
}

// ShortID returns the first 8 characters of an id, dimmed.
func ShortID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

func nonEmpty(vals ...string) []string {
	out := vals[:0:0]
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}

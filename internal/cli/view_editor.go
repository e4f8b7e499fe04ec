package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/compressorworks/crm/internal/cli/formatter"
	"github.com/compressorworks/crm/internal/domain"
	"github.com/compressorworks/crm/internal/quote"
)

// quotationSavedMsg reports a save of the editor state at revision rev.
type quotationSavedMsg struct {
	q   *domain.Quotation
	rev int
	err error
}

// clientPickedMsg is delivered by the client search view when it closes.
type clientPickedMsg struct {
	client domain.ClientSummary
}

// editorView edits one quotation in memory. Nothing reaches the database
// until ctrl+s saves header and items together.
type editorView struct {
	state  *SharedState
	editor *quote.Editor
	table  table.Model
	dirty  bool
	saving bool
	rev    int
}

var itemColumns = []table.Column{
	{Title: "#", Width: 3},
	{Title: "Tipo", Width: 8},
	{Title: "Descrição", Width: 32},
	{Title: "Qtd", Width: 7},
	{Title: "Unit.", Width: 11},
	{Title: "Adicionais", Width: 11},
	{Title: "Total", Width: 12},
}

func newEditorView(state *SharedState, ed *quote.Editor) *editorView {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Foreground(formatter.ColorHeader).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(formatter.ColorDim).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(formatter.ColorFg).
		Background(lipgloss.Color("#504945")).
		Bold(false)

	t := table.New(
		table.WithColumns(itemColumns),
		table.WithFocused(true),
		table.WithHeight(8),
		table.WithStyles(styles),
	)
	v := &editorView{state: state, editor: ed, table: t}
	v.syncRows(ed.Items())
	return v
}

func (v *editorView) ID() ViewID { return ViewEditor }

func (v *editorView) Title() string {
	if n := v.editor.Quotation().ProposalNumber; n != "" {
		return n
	}
	return "Nova proposta"
}

func (v *editorView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "item")),
		key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "product")),
		key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "remove")),
		key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "header")),
		key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "client")),
		key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
	}
}

func (v *editorView) Init() tea.Cmd { return nil }

// syncRows redraws the table from state, keeping the cursor in range.
func (v *editorView) syncRows(st quote.ItemsState) {
	rows := make([]table.Row, 0, len(st.Items))
	for i, it := range st.Items {
		extra := ""
		if it.Type == domain.ProductService && it.Surcharges() != 0 {
			extra = formatter.Amount(it.Surcharges())
		}
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", i+1),
			it.Type.Label(),
			it.Name,
			quote.FormatQuantity(it.Quantity),
			formatter.Amount(it.UnitPrice),
			extra,
			formatter.Amount(it.LineTotal),
		})
	}
	v.table.SetRows(rows)
	if c := v.table.Cursor(); c >= len(rows) && len(rows) > 0 {
		v.table.SetCursor(len(rows) - 1)
	}
}

// selectedPos is the table cursor, or -1 when there are no items.
func (v *editorView) selectedPos() int {
	if len(v.table.Rows()) == 0 {
		return -1
	}
	return v.table.Cursor()
}

func (v *editorView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.table.SetHeight(max(v.state.ContentHeight()-12, 3))
		return v, nil

	case itemFormMsg:
		st, err := v.editor.AddLineItem(msg.in)
		return v, v.afterItems(st, err, "Item added")

	case productFormMsg:
		st, err := v.editor.AddProduct(msg.product, msg.quantity)
		return v, v.afterItems(st, err, "Added "+msg.product.Name)

	case headerFormMsg:
		if err := v.editor.ApplyHeader(msg.in); err != nil {
			return v, showError(err)
		}
		v.touch()
		return v, nil

	case clientPickedMsg:
		v.editor.BindClient(msg.client)
		v.touch()
		return v, showStatus("Client: " + msg.client.Name)

	case quotationSavedMsg:
		v.saving = false
		if msg.err != nil {
			return v, showError(msg.err)
		}
		v.editor.MarkSaved(msg.q)
		v.dirty = v.rev != msg.rev
		return v, tea.Batch(refreshViews, showStatus("Saved "+msg.q.ProposalNumber))

	case tea.KeyMsg:
		return v.updateKeys(msg)
	}
	return v, nil
}

func (v *editorView) afterItems(st quote.ItemsState, err error, ok string) tea.Cmd {
	if err != nil {
		return showError(err)
	}
	v.touch()
	v.syncRows(st)
	v.table.SetCursor(len(st.Items) - 1)
	return showStatus(ok)
}

// touch marks the editor changed since the last save.
func (v *editorView) touch() {
	v.dirty = true
	v.rev++
}

// mutatingKeys change the quotation and wait while a save is running.
var mutatingKeys = map[string]bool{"i": true, "p": true, "h": true, "c": true, "d": true, "delete": true}

func (v *editorView) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if v.saving && mutatingKeys[msg.String()] {
		return v, showStatus("Saving, try again in a moment")
	}
	switch msg.String() {
	case "i":
		return v, pushView(newItemFormView(v.state))
	case "p":
		return v, pushView(newProductFormView(v.state))
	case "h":
		return v, pushView(newHeaderFormView(v.state, v.editor.Header()))
	case "c":
		return v, pushView(newClientSearchView(v.state))
	case "d", "delete":
		st, err := v.editor.RemoveLineItem(v.selectedPos())
		if err != nil {
			return v, showError(err)
		}
		v.touch()
		v.syncRows(st)
		return v, showStatus("Item removed")
	case "ctrl+s":
		if v.saving {
			return v, nil
		}
		v.saving = true
		return v, v.save()
	case "up", "down", "k", "j", "home", "end", "pgup", "pgdown":
		var cmd tea.Cmd
		v.table, cmd = v.table.Update(msg)
		return v, cmd
	}
	return v, nil
}

// save hands a copy of the quotation to the service so the editor is never
// touched from the command goroutine.
func (v *editorView) save() tea.Cmd {
	app := v.state.App
	rev := v.rev
	q := *v.editor.Quotation()
	q.Items = append([]domain.LineItem(nil), q.Items...)
	return func() tea.Msg {
		if _, err := app.Quotations.Save(context.Background(), &q); err != nil {
			return quotationSavedMsg{rev: rev, err: err}
		}
		return quotationSavedMsg{q: &q, rev: rev}
	}
}

func (v *editorView) View() string {
	q := v.editor.Quotation()

	client := v.editor.ClientName()
	if client == "" {
		client = formatter.StyleYellow.Render("no client, press c")
	}
	number := q.ProposalNumber
	if number == "" {
		number = formatter.StyleYellow.Render("no number, press h")
	}

	label := func(column string) string { return formatter.Dim(domain.MustLabel(column) + ":") }

	var b strings.Builder
	b.WriteString("\n")
	fmt.Fprintf(&b, "  %s %s   %s %s   %s %s\n",
		label("proposal_number"), formatter.StyleGreen.Render(number),
		label("client_id"), formatter.Bold(client),
		label("status"), formatter.StatusPill(q.Status))
	fmt.Fprintf(&b, "  %s %s   %s %s\n",
		label("created_date"), formatter.Date(&q.CreatedDate),
		label("expiry_date"), formatter.Date(q.ExpiryDate))
	if q.Description != "" || q.Equipment != "" {
		fmt.Fprintf(&b, "  %s %s   %s %s\n",
			label("description"), q.Description,
			label("equipment"), q.Equipment)
	}
	b.WriteString("\n")

	if len(q.Items) == 0 {
		b.WriteString("  " + formatter.Dim("No items. Press i for a free item or p for a catalog product.") + "\n")
	} else {
		b.WriteString(v.table.View() + "\n")
	}

	total := formatter.Bold(formatter.Money(v.editor.Total(), q.Terms.Currency))
	fmt.Fprintf(&b, "\n  %s %s", label("total_value"), total)
	if v.dirty {
		b.WriteString("  " + formatter.StyleYellow.Render("● unsaved"))
	}
	if v.saving {
		b.WriteString("  " + formatter.Dim("saving..."))
	}
	b.WriteString("\n")
	return b.String()
}

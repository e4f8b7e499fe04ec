package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/compressorworks/crm/internal/cli/formatter"
	"github.com/compressorworks/crm/internal/domain"
	"github.com/compressorworks/crm/internal/quote"
	"github.com/compressorworks/crm/internal/repository"
)

type quotationsLoadedMsg struct {
	list []repository.QuotationSummary
	err  error
}

// quotationListView is the home view: every quotation, newest first.
type quotationListView struct {
	state   *SharedState
	list    []repository.QuotationSummary
	cursor  int
	loading bool
	err     error
}

func newQuotationListView(state *SharedState) *quotationListView {
	return &quotationListView{state: state, loading: true}
}

func (v *quotationListView) ID() ViewID    { return ViewQuotationList }
func (v *quotationListView) Title() string { return "Propostas" }

func (v *quotationListView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new")),
		key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy")),
		key.NewBinding(key.WithKeys("a", "r", "o"), key.WithHelp("a/r/o", "approve/reject/reopen")),
		key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete")),
	}
}

func (v *quotationListView) Init() tea.Cmd {
	return v.load()
}

func (v *quotationListView) load() tea.Cmd {
	app := v.state.App
	return func() tea.Msg {
		list, err := app.Quotations.List(context.Background(), repository.QuotationFilter{})
		return quotationsLoadedMsg{list: list, err: err}
	}
}

func (v *quotationListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case quotationsLoadedMsg:
		v.loading = false
		v.err = msg.err
		v.list = msg.list
		if v.cursor >= len(v.list) {
			v.cursor = max(len(v.list)-1, 0)
		}
		return v, nil

	case refreshViewMsg:
		return v, v.load()

	case tea.KeyMsg:
		return v.updateKeys(msg)
	}
	return v, nil
}

func (v *quotationListView) selected() (repository.QuotationSummary, bool) {
	if v.cursor < 0 || v.cursor >= len(v.list) {
		return repository.QuotationSummary{}, false
	}
	return v.list[v.cursor], true
}

func (v *quotationListView) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
		return v, nil
	case "down", "j":
		if v.cursor < len(v.list)-1 {
			v.cursor++
		}
		return v, nil
	case "n":
		draft := quote.NewDraft(v.state.App.Quotations.Settings().Currency)
		return v, pushView(newEditorView(v.state, draft))
	}

	sel, ok := v.selected()
	if !ok {
		return v, nil
	}

	switch msg.String() {
	case "enter":
		return v, v.open(sel.ID)
	case "c":
		return v, pushView(newCopyFormView(v.state, sel.ID, sel.ProposalNumber))
	case "x":
		return v, pushView(newDeleteFormView(v.state, sel.ID, sel.ProposalNumber))
	case "a":
		return v, v.setStatus(sel, domain.QuotationApproved)
	case "r":
		return v, v.setStatus(sel, domain.QuotationRejected)
	case "o":
		return v, v.setStatus(sel, domain.QuotationOpen)
	}
	return v, nil
}

// open loads the quotation and pushes an editor for it.
func (v *quotationListView) open(id string) tea.Cmd {
	state := v.state
	return func() tea.Msg {
		ctx := context.Background()
		q, err := state.App.Quotations.Get(ctx, id)
		if err != nil {
			return statusMsg{text: UserMessage(err), err: true}
		}
		ed := quote.NewEditor(q)
		if c, err := state.App.Clients.Get(ctx, q.ClientID); err == nil {
			ed.BindClient(c.Summary())
		}
		return pushViewMsg{view: newEditorView(state, ed)}
	}
}

func (v *quotationListView) setStatus(sel repository.QuotationSummary, st domain.QuotationStatus) tea.Cmd {
	app := v.state.App
	return func() tea.Msg {
		if err := app.Quotations.SetStatus(context.Background(), sel.ID, st); err != nil {
			return statusMsg{text: UserMessage(err), err: true}
		}
		return tea.Batch(refreshViews, showStatus(fmt.Sprintf("%s: %s", sel.ProposalNumber, st.Label())))()
	}
}

func (v *quotationListView) View() string {
	if v.loading {
		return "\n  " + formatter.Dim("Loading quotations...")
	}
	if v.err != nil {
		return "\n  " + formatter.StyleRed.Render("Error: "+UserMessage(v.err))
	}
	if len(v.list) == 0 {
		return "\n  " + formatter.Dim("No quotations yet. Press n to create one.") + "\n"
	}

	var b strings.Builder
	b.WriteString("\n")
	for i, s := range v.list {
		cursor := "  "
		nameStyle := formatter.StyleFg
		if i == v.cursor {
			cursor = formatter.StyleGreen.Render("▸ ")
			nameStyle = formatter.StyleBold
		}
		created := s.CreatedDate
		fmt.Fprintf(&b, "%s%s  %s  %s  %s  %s\n",
			cursor,
			formatter.StyleGreen.Render(padRight(s.ProposalNumber, 10)),
			nameStyle.Render(padRight(s.ClientName, 28)),
			formatter.Date(&created),
			formatter.StatusPill(s.Status),
			formatter.Money(s.Total, s.Currency),
		)
	}
	return b.String()
}

// padRight pads s to width visible runes, truncating if needed.
func padRight(s string, width int) string {
	s = formatter.Truncate(s, width)
	if n := len([]rune(s)); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

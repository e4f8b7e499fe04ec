package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/compressorworks/crm/internal/cli/formatter"
	"github.com/compressorworks/crm/internal/domain"
)

type clientResultsMsg struct {
	term    string
	results []domain.ClientSummary
	err     error
}

// clientSearchView looks clients up by name, trade name or CNPJ/CPF as the
// user types, and hands the chosen one back to the editor.
type clientSearchView struct {
	state   *SharedState
	input   textinput.Model
	results []domain.ClientSummary
	cursor  int
	err     error
}

func newClientSearchView(state *SharedState) *clientSearchView {
	ti := textinput.New()
	ti.Placeholder = "nome, fantasia ou CNPJ/CPF"
	ti.Prompt = "› "
	ti.PromptStyle = formatter.StyleYellow
	ti.CharLimit = 80
	ti.Focus()
	return &clientSearchView{state: state, input: ti}
}

func (v *clientSearchView) ID() ViewID    { return ViewClientSearch }
func (v *clientSearchView) Title() string { return "Cliente" }

func (v *clientSearchView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "choose")),
		key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑↓", "move")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

func (v *clientSearchView) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, v.search(""))
}

func (v *clientSearchView) search(term string) tea.Cmd {
	app := v.state.App
	return func() tea.Msg {
		res, err := app.Clients.Search(context.Background(), term)
		return clientResultsMsg{term: term, results: res, err: err}
	}
}

func (v *clientSearchView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case clientResultsMsg:
		// Drop results for a term the user has already typed past.
		if msg.term != v.input.Value() {
			return v, nil
		}
		v.results, v.err = msg.results, msg.err
		v.cursor = 0
		return v, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEsc:
			return v, popView()
		case tea.KeyEnter:
			if v.cursor < len(v.results) {
				return v, popViewWith(clientPickedMsg{client: v.results[v.cursor]})
			}
			return v, nil
		case tea.KeyUp:
			if v.cursor > 0 {
				v.cursor--
			}
			return v, nil
		case tea.KeyDown:
			if v.cursor < len(v.results)-1 {
				v.cursor++
			}
			return v, nil
		}

		before := v.input.Value()
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		if v.input.Value() != before {
			return v, tea.Batch(cmd, v.search(v.input.Value()))
		}
		return v, cmd
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *clientSearchView) View() string {
	var b strings.Builder
	b.WriteString("\n  " + v.input.View() + "\n\n")

	if v.err != nil {
		b.WriteString("  " + formatter.StyleRed.Render(UserMessage(v.err)) + "\n")
		return b.String()
	}
	if len(v.results) == 0 {
		b.WriteString("  " + formatter.Dim("No clients match.") + "\n")
		return b.String()
	}

	limit := max(v.state.ContentHeight()-4, 5)
	for i, c := range v.results {
		if i >= limit {
			fmt.Fprintf(&b, "  %s\n", formatter.Dim(fmt.Sprintf("… %d more", len(v.results)-limit)))
			break
		}
		cursor := "  "
		name := formatter.StyleFg.Render(c.Name)
		if i == v.cursor {
			cursor = formatter.StyleGreen.Render("▸ ")
			name = formatter.Bold(c.Name)
		}
		fmt.Fprintf(&b, "%s%s  %s  %s\n", cursor, name,
			formatter.Dim(domain.FormatFiscalID(c.FiscalID)), formatter.Dim(c.City))
	}
	return b.String()
}

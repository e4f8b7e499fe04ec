package cli

import tea "github.com/charmbracelet/bubbletea"

// Navigation messages, handled by appModel.

type pushViewMsg struct {
	view View
}

// popViewMsg pops the top view. When then is set it is delivered to the
// view underneath once that view is on top again.
type popViewMsg struct {
	then tea.Msg
}

// refreshViewMsg is broadcast to every view on the stack after a mutation.
type refreshViewMsg struct{}

// statusMsg sets the one-line status shown under the content.
type statusMsg struct {
	text string
	err  bool
}

// wizardCompleteMsg pops a finished form and then runs nextCmd, so its
// result reaches the view that opened the form.
type wizardCompleteMsg struct {
	nextCmd tea.Cmd
}

type quitMsg struct{}

func pushView(v View) tea.Cmd {
	return func() tea.Msg { return pushViewMsg{view: v} }
}

func popView() tea.Cmd {
	return func() tea.Msg { return popViewMsg{} }
}

// popViewWith pops the top view and hands msg to the one below.
func popViewWith(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return popViewMsg{then: msg} }
}

func refreshViews() tea.Msg { return refreshViewMsg{} }

func showStatus(text string) tea.Cmd {
	return func() tea.Msg { return statusMsg{text: text} }
}

func showError(err error) tea.Cmd {
	return func() tea.Msg { return statusMsg{text: UserMessage(err), err: true} }
}

package widgets

import "github.com/charmbracelet/lipgloss"

// Widget is a live command affordance bound to one message id. A widget moves
// from streaming/editable to exactly one terminal state (accepted, cancelled,
// or restored-already-resolved); its action controls disappear permanently on
// the first transition.
type Widget interface {
	MessageID() string
	RequestID() string
	Resolved() bool
	ButtonsHidden() bool
	HideButtons()
	Editor() *EditorBuffer
	Render(width int) []string
}

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#666666")).
			Padding(0, 1)

	explanationStyle = lipgloss.NewStyle().Faint(true).Italic(true)

	promptStyle = lipgloss.NewStyle().Bold(true)

	acceptButtonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FFFFFF")).
				Background(lipgloss.Color("#00AA00")).
				Padding(0, 1)

	cancelButtonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FFFFFF")).
				Background(lipgloss.Color("#AA0000")).
				Padding(0, 1)

	statsStyle = lipgloss.NewStyle().Faint(true)
)

// buttonRow renders the accept/cancel affordances.
func buttonRow(accept, cancel string) string {
	return acceptButtonStyle.Render(accept) + "  " + cancelButtonStyle.Render(cancel)
}

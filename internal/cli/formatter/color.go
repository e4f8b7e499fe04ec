// Package formatter renders domain records for the terminal.
package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/compressorworks/crm/internal/domain"
)

// Gruvbox palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// StatusPill returns a colored indicator for a quotation status.
func StatusPill(s domain.QuotationStatus) string {
	switch s {
	case domain.QuotationOpen:
		return StyleYellow.Render("○ " + s.Label())
	case domain.QuotationApproved:
		return StyleGreen.Render("● " + s.Label())
	case domain.QuotationRejected:
		return StyleRed.Render("✖ " + s.Label())
	default:
		return StyleDim.Render(string(s))
	}
}

// TypeBadge returns the product type label in the type's color.
func TypeBadge(t domain.ProductType) string {
	switch t {
	case domain.ProductService:
		return StyleBlue.Render(t.Label())
	case domain.ProductGood:
		return StyleFg.Render(t.Label())
	case domain.ProductKit:
		return StylePurple.Render(t.Label())
	default:
		return StyleDim.Render(string(t))
	}
}

// Header renders a section title with an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}

// Success prefixes msg with a green check mark.
func Success(msg string) string {
	return StyleGreen.Render("✔") + " " + msg
}

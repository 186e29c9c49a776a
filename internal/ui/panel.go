package ui

import (
	"cardvault/internal/filter"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	activeSymbol   = "◆"
	completeSymbol = "◇"
	separator      = " · "
	borderTop      = "┌"
	borderSide     = "│"
	borderBottom   = "└"
	checkSymbol    = "✓"
)

type Field struct {
	Label    string
	Value    string
	Optional bool
}

func borderStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
}

// RenderPanel draws fields inside a left border. Fields without a value
// are skipped unless they are active.
func RenderPanel(title string, fields []Field, activeIdx int) string {
	var b strings.Builder

	border := borderStyle()

	b.WriteString(border.Render(borderTop))
	b.WriteString(" ")
	b.WriteString(title)
	b.WriteString("\n")

	b.WriteString(border.Render(borderSide))
	b.WriteString("\n")

	for i, f := range fields {
		active := i == activeIdx
		if f.Value != "" || active {
			b.WriteString(renderField(f, active))
			b.WriteString("\n")
		}
	}

	if activeIdx >= 0 && activeIdx < len(fields) {
		b.WriteString(border.Render(borderSide))
		b.WriteString("\n")
	}

	b.WriteString(border.Render(borderBottom))
	b.WriteString("\n")

	return b.String()
}

// RenderFilter summarizes the filter a search will run with.
func RenderFilter(spec filter.Spec) string {
	colorMode := "any of"
	if spec.ExcludeMode {
		colorMode = "exactly"
	}
	colors := spec.Colors.String()
	if colors != "" {
		colors = colorMode + " " + colors
	}
	fields := []Field{
		{Label: "Types", Value: strings.Join(spec.Types, ", ")},
		{Label: "Colors", Value: colors},
	}
	if spec.IsEmpty() {
		fields = []Field{{Label: "Filter", Value: "none"}}
	}
	return RenderPanel("Search filter", fields, -1)
}

// RenderDone reports a finished action with one check line per detail.
func RenderDone(title, subtitle string, checks []string) string {
	var b strings.Builder

	border := borderStyle()

	b.WriteString(border.Render(borderTop))
	b.WriteString(" ")
	b.WriteString(activeSymbol)
	b.WriteString(" ")
	b.WriteString(title)
	b.WriteString("\n")

	if subtitle != "" {
		b.WriteString(border.Render(borderSide))
		b.WriteString(" ")
		b.WriteString(subtitle)
		b.WriteString("\n")
	}

	b.WriteString(border.Render(borderSide))
	b.WriteString("\n")

	for _, check := range checks {
		b.WriteString(border.Render(borderSide))
		b.WriteString(" ")
		b.WriteString(checkSymbol)
		b.WriteString(" ")
		b.WriteString(check)
		b.WriteString("\n")
	}

	b.WriteString(border.Render(borderBottom))
	b.WriteString("\n")

	return b.String()
}

func renderField(f Field, active bool) string {
	var b strings.Builder

	if active {
		b.WriteString(activeSymbol)
		b.WriteString(" ")
		b.WriteString(f.Label)
		if f.Optional {
			b.WriteString(" (optional)")
		}
	} else {
		b.WriteString(completeSymbol)
		b.WriteString(" ")
		b.WriteString(f.Label)
		b.WriteString(separator)
		b.WriteString(f.Value)
	}

	return b.String()
}

package render

import (
	"cardvault/internal/card"
	"cardvault/internal/session"
	"cardvault/internal/view"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"
)

const bullet = " · "

type LipglossRenderer struct {
	width int
	r     *lipgloss.Renderer

	nameStyle  lipgloss.Style
	countStyle lipgloss.Style
	metaStyle  lipgloss.Style
	imageStyle lipgloss.Style
	noneStyle  lipgloss.Style
}

func NewLipglossRenderer(w io.Writer, width int) *LipglossRenderer {
	r := lipgloss.NewRenderer(w)
	return &LipglossRenderer{
		width:      width,
		r:          r,
		nameStyle:  r.NewStyle().Bold(true),
		countStyle: r.NewStyle().Foreground(lipgloss.Color("10")),
		metaStyle:  r.NewStyle().Faint(true),
		imageStyle: r.NewStyle().Faint(true),
		noneStyle:  r.NewStyle().Faint(true),
	}
}

func NewLipglossRendererAuto(w io.Writer) *LipglossRenderer {
	width := 80
	if f, ok := w.(*os.File); ok {
		if tw, _, err := term.GetSize(f.Fd()); err == nil && tw > 0 {
			width = tw
		}
	}
	return NewLipglossRenderer(w, width)
}

func (r *LipglossRenderer) RenderCollection(v CollectionView) string {
	if v.IsEmpty() {
		return "No cards in collection.\n"
	}

	var sb strings.Builder
	for i, e := range v.Entries {
		if i > 0 && v.Mode.ShowImages() {
			sb.WriteString("\n")
		}
		count := r.countStyle.Render(fmt.Sprintf("x%d", e.Count))
		sb.WriteString(r.renderCard(e.Card, count, v.Mode, false))
	}
	fmt.Fprintf(&sb, "\n%s\n", plural(len(v.Entries), "card")+", "+plural(view.TotalCopies(v.Entries), "copy"))
	return sb.String()
}

func (r *LipglossRenderer) RenderResults(v ResultsView) string {
	if v.IsEmpty() {
		notice := v.Notice
		if notice == "" {
			notice = session.NoCardsFound
		}
		return notice + "\n"
	}

	var sb strings.Builder
	for i, res := range v.Results {
		if i > 0 {
			sb.WriteString("\n")
		}
		owned := r.noneStyle.Render("not owned")
		if res.Owned > 0 {
			owned = r.countStyle.Render(fmt.Sprintf("owned %d", res.Owned))
		}
		sb.WriteString(r.renderCard(res.Card, owned, v.Mode, true))
	}
	return sb.String()
}

func (r *LipglossRenderer) renderCard(c card.Record, right string, mode view.DisplayMode, withID bool) string {
	name := r.nameStyle.Render(c.Name)
	padding := max(1, r.width-lipgloss.Width(name)-lipgloss.Width(right))

	lines := []string{name + strings.Repeat(" ", padding) + right}
	if withID {
		lines = append(lines, r.metaStyle.Render("  "+c.ID))
	}
	if mode.ShowImages() {
		if meta := describe(c); meta != "" {
			lines = append(lines, r.metaStyle.Render("  "+meta))
		}
		if c.ImageURL != "" {
			lines = append(lines, r.imageStyle.Render("  "+c.ImageURL))
		}
	}
	return strings.Join(lines, "\n") + "\n"
}

// describe joins the type line and colors, or returns "" when both are
// unknown.
func describe(c card.Record) string {
	var parts []string
	if c.TypeLine != "" {
		parts = append(parts, c.TypeLine)
	}
	if colors := c.ColorSet().String(); colors != "" {
		parts = append(parts, colors)
	}
	return strings.Join(parts, bullet)
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	if strings.HasSuffix(noun, "y") {
		return fmt.Sprintf("%d %sies", n, strings.TrimSuffix(noun, "y"))
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

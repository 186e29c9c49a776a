package ui

import (
	"cardvault/internal/card"
	"cardvault/internal/filter"
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

func Theme() *huh.Theme {
	t := huh.ThemeBase()
	red := lipgloss.Color("1")
	t.Focused.ErrorMessage = t.Focused.ErrorMessage.SetString("✗").Foreground(red)
	t.Blurred.ErrorMessage = t.Blurred.ErrorMessage.SetString("✗").Foreground(red)
	return t
}

// Aborted reports whether err is the user backing out of a form. Callers
// treat that as a "no" rather than a failure.
func Aborted(err error) bool {
	return errors.Is(err, huh.ErrUserAborted)
}

func clearForm(copies int, confirmed *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Clear collection?").
				Description(fmt.Sprintf("This deletes all %d owned copies.", copies)).
				Affirmative("Clear").
				Negative("Keep").
				Value(confirmed),
		),
	).WithTheme(Theme())
}

// ConfirmClear asks before the collection is deleted. Aborting the form
// counts as declining.
func ConfirmClear(copies int) (bool, error) {
	var confirmed bool
	if err := clearForm(copies, &confirmed).Run(); err != nil {
		if Aborted(err) {
			return false, nil
		}
		return false, err
	}
	return confirmed, nil
}

var colorNames = map[card.Color]string{
	card.White: "White",
	card.Blue:  "Blue",
	card.Black: "Black",
	card.Red:   "Red",
	card.Green: "Green",
}

func colorOptions() []huh.Option[card.Color] {
	opts := make([]huh.Option[card.Color], 0, len(card.AllColors))
	for _, c := range card.AllColors {
		opts = append(opts, huh.NewOption(colorNames[c]+" ("+string(c)+")", c))
	}
	return opts
}

// filterValues is the mutable state the filter form edits.
type filterValues struct {
	types   []string
	colors  []card.Color
	exclude bool
}

func newFilterValues(spec filter.Spec) *filterValues {
	return &filterValues{
		types:   append([]string(nil), spec.Types...),
		colors:  spec.Colors.Sorted(),
		exclude: spec.ExcludeMode,
	}
}

func (v *filterValues) spec() filter.Spec {
	return filter.Spec{
		Types:       filter.ParseTypes(v.types...),
		Colors:      card.NewColorSet(v.colors...),
		ExcludeMode: v.exclude,
	}
}

func filterForm(v *filterValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Types").
				Description("Cards must match at least one").
				Options(huh.NewOptions(filter.CommonTypes...)...).
				Value(&v.types),
			huh.NewMultiSelect[card.Color]().
				Title("Colors").
				Options(colorOptions()...).
				Value(&v.colors),
			huh.NewConfirm().
				Title("Exact colors only?").
				Description("Exclude cards with any other color").
				Value(&v.exclude),
		),
	).WithTheme(Theme())
}

// EditFilter runs the interactive filter form seeded with current. An
// aborted form returns current unchanged.
func EditFilter(current filter.Spec) (filter.Spec, error) {
	v := newFilterValues(current)
	if err := filterForm(v).Run(); err != nil {
		if Aborted(err) {
			return current, nil
		}
		return filter.Spec{}, err
	}
	return v.spec(), nil
}

package main

import (
	"cardvault/cmd/cardvault/render"
	"cardvault/internal/card"
	"cardvault/internal/ui"
	"context"
	"fmt"
	"strings"
)

type SearchCmd struct {
	Name        []string `arg:"" help:"Card name to search for"`
	Types       []string `short:"t" name:"type" help:"Only cards whose type line contains one of these (repeatable, comma-separated)"`
	Colors      string   `short:"C" help:"Only cards with these colors, e.g. WU"`
	Exclude     bool     `short:"x" help:"Require exactly the given colors"`
	Interactive bool     `short:"i" help:"Pick the filter in a form before searching"`
}

func (cmd *SearchCmd) applyFilter(g *Globals) error {
	colors, err := card.ParseColors(cmd.Colors)
	if err != nil {
		return fmt.Errorf("invalid --colors: %w", err)
	}
	g.Session.SetTypes(cmd.Types...)
	g.Session.SetColors(colors)
	if g.Session.Spec().ExcludeMode != cmd.Exclude {
		g.Session.ToggleExcludeMode()
	}

	if !cmd.Interactive {
		return nil
	}
	spec, err := g.EditFilter(g.Session.Spec())
	if err != nil {
		return err
	}
	g.Session.SetTypes(spec.Types...)
	g.Session.SetColors(spec.Colors)
	if g.Session.Spec().ExcludeMode != spec.ExcludeMode {
		g.Session.ToggleExcludeMode()
	}
	fmt.Fprint(g.Out, ui.RenderFilter(g.Session.Spec()))
	return nil
}

func (cmd *SearchCmd) Run(ctx context.Context, g *Globals) error {
	if err := cmd.applyFilter(g); err != nil {
		return err
	}
	return runSearch(ctx, g, strings.Join(cmd.Name, " "))
}

func runSearch(ctx context.Context, g *Globals, query string) error {
	results, err := g.Session.Search(ctx, query)
	if err != nil {
		return err
	}
	fmt.Fprint(g.Out, g.Render.RenderResults(render.ResultsView{
		Results: results,
		Mode:    g.Session.Mode(),
		Notice:  g.Session.Notice(),
	}))
	return nil
}

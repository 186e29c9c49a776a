package main

import (
	"context"
	"fmt"
)

type ShowCmd struct {
	ID  string `arg:"" help:"Scryfall card ID" completion:"cardvault list --ids"`
	URL bool   `name:"url" help:"Output only the image URL (for scripting)"`
}

func (cmd *ShowCmd) Run(ctx context.Context, g *Globals) error {
	c, err := g.Store.Load(ctx)
	if err != nil {
		return err
	}
	r, ok := c.First(cmd.ID)
	if !ok {
		return fmt.Errorf("card not in collection: %s", cmd.ID)
	}

	if cmd.URL {
		fmt.Fprintln(g.Out, r.ImageURL)
		return nil
	}

	fmt.Fprintf(g.Out, "Name:   %s\n", r.Name)
	fmt.Fprintf(g.Out, "ID:     %s\n", r.ID)
	if r.TypeLine != "" {
		fmt.Fprintf(g.Out, "Type:   %s\n", r.TypeLine)
	}
	if colors := r.ColorSet().String(); colors != "" {
		fmt.Fprintf(g.Out, "Colors: %s\n", colors)
	}
	if r.ImageURL != "" {
		fmt.Fprintf(g.Out, "Image:  %s\n", r.ImageURL)
	}
	fmt.Fprintf(g.Out, "Owned:  %d\n", c.Count(r.ID))
	return nil
}

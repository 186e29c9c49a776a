package main

import (
	"cardvault/internal/ui"
	"context"
	"fmt"
)

type ClearCmd struct {
	Yes bool `short:"y" help:"Skip the confirmation prompt"`
}

func (cmd *ClearCmd) Run(ctx context.Context, g *Globals) error {
	return runClear(ctx, g, cmd.Yes)
}

func runClear(ctx context.Context, g *Globals, yes bool) error {
	c, err := g.Store.Load(ctx)
	if err != nil {
		return err
	}
	copies := len(c)

	cleared, err := g.Session.Clear(ctx, func() (bool, error) {
		if yes {
			return true, nil
		}
		return g.Confirm(copies)
	})
	if err != nil {
		return err
	}
	if !cleared {
		fmt.Fprintln(g.Out, "Kept collection.")
		return nil
	}

	fmt.Fprint(g.Out, ui.RenderDone("Cleared collection", "", []string{plural(copies, "copy") + " removed"}))
	return nil
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	if noun == "copy" {
		return fmt.Sprintf("%d copies", n)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

package main

import (
	"context"
	"fmt"
)

type RmCmd struct {
	ID string `arg:"" help:"Scryfall card ID" completion:"cardvault list --ids"`
}

func (cmd *RmCmd) Run(ctx context.Context, g *Globals) error {
	r, owned, err := g.Store.First(ctx, cmd.ID)
	if err != nil {
		return err
	}
	if !owned {
		fmt.Fprintf(g.Out, "Not in collection: %s\n", cmd.ID)
		return nil
	}

	n, err := g.Session.Decrement(ctx, cmd.ID)
	if err != nil {
		return err
	}
	fmt.Fprintf(g.Out, "Removed: %s (%d owned)\n", r.Name, n)
	return nil
}

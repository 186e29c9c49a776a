package main

import (
	"context"
	"fmt"
)

type AddCmd struct {
	ID string `arg:"" help:"Scryfall card ID" completion:"cardvault list --ids"`
}

func (cmd *AddCmd) Run(ctx context.Context, g *Globals) error {
	n, err := g.Session.Increment(ctx, cmd.ID)
	if err != nil {
		return err
	}

	r, _, err := g.Store.First(ctx, cmd.ID)
	if err != nil {
		return err
	}
	fmt.Fprintf(g.Out, "Added: %s (%d owned)\n", r.Name, n)
	return nil
}

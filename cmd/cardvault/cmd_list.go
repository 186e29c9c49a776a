package main

import (
	"cardvault/cmd/cardvault/render"
	"cardvault/internal/view"
	"fmt"
)

type ListCmd struct {
	Mode string `short:"m" help:"Display mode (images, text); defaults to the configured mode"`
	IDs  bool   `name:"ids" help:"Output only card IDs (one per line)"`
}

func (cmd *ListCmd) Run(g *Globals) error {
	entries := g.Session.Owned()

	if cmd.IDs {
		for _, e := range entries {
			fmt.Fprintln(g.Out, e.Card.ID)
		}
		return nil
	}

	mode := g.Session.Mode()
	if cmd.Mode != "" {
		m, err := view.ParseDisplayMode(cmd.Mode)
		if err != nil {
			return err
		}
		mode = m
	}

	fmt.Fprint(g.Out, g.Render.RenderCollection(render.CollectionView{Entries: entries, Mode: mode}))
	return nil
}

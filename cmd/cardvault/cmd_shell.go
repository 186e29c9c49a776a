package main

import (
	"bufio"
	"cardvault/cmd/cardvault/render"
	"cardvault/internal/card"
	"cardvault/internal/ui"
	"context"
	"errors"
	"fmt"
	"strings"
)

const shellHelp = `Commands:
  search <name>    search Scryfall with the current filter (alias: s)
  + <id>           add one copy
  - <id>           remove one copy
  types [a,b,...]  set type filter; no argument clears it
  colors [WUBRG]   set color filter; no argument clears it
  exclude          toggle exact color matching
  filter           show the current filter
  mode             toggle images/text display
  list             show the collection (alias: ls)
  clear            delete the collection after confirming
  help             show this help
  quit             leave the shell (alias: exit)
`

var errQuit = errors.New("quit")

type ShellCmd struct {
	Prompt string `default:"> " help:"Prompt printed before each command"`
}

func (cmd *ShellCmd) Run(ctx context.Context, g *Globals) error {
	scanner := bufio.NewScanner(g.In)
	for {
		fmt.Fprint(g.Out, cmd.Prompt)
		if !scanner.Scan() {
			break
		}
		if ctx.Err() != nil {
			return nil
		}

		err := dispatch(ctx, g, scanner.Text())
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			fmt.Fprintf(g.Out, "error: %v\n", err)
		}
	}
	fmt.Fprintln(g.Out)
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	return nil
}

func dispatch(ctx context.Context, g *Globals, line string) error {
	verb, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	arg = strings.TrimSpace(arg)

	switch strings.ToLower(verb) {
	case "":
		return nil
	case "search", "s":
		if arg == "" {
			return errors.New("usage: search <name>")
		}
		return runSearch(ctx, g, arg)
	case "+", "add":
		cmd := AddCmd{ID: arg}
		return cmd.Run(ctx, g)
	case "-", "rm":
		cmd := RmCmd{ID: arg}
		return cmd.Run(ctx, g)
	case "types":
		g.Session.SetTypes(arg)
		fmt.Fprint(g.Out, ui.RenderFilter(g.Session.Spec()))
	case "colors":
		colors, err := card.ParseColors(arg)
		if err != nil {
			return err
		}
		g.Session.SetColors(colors)
		fmt.Fprint(g.Out, ui.RenderFilter(g.Session.Spec()))
	case "exclude":
		g.Session.ToggleExcludeMode()
		fmt.Fprint(g.Out, ui.RenderFilter(g.Session.Spec()))
	case "filter":
		fmt.Fprint(g.Out, ui.RenderFilter(g.Session.Spec()))
	case "mode":
		fmt.Fprintf(g.Out, "Display mode: %s\n", g.Session.ToggleDisplayMode())
	case "list", "ls":
		fmt.Fprint(g.Out, g.Render.RenderCollection(render.CollectionView{
			Entries: g.Session.Owned(),
			Mode:    g.Session.Mode(),
		}))
	case "clear":
		return runClear(ctx, g, false)
	case "help", "?":
		fmt.Fprint(g.Out, shellHelp)
	case "quit", "exit", "q":
		return errQuit
	default:
		return fmt.Errorf("unknown command %q (try help)", verb)
	}
	return nil
}

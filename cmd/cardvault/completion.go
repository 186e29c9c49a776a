package main

import (
	"cardvault/internal/util"
	_ "embed"
	"fmt"
)

//go:embed completions/cardvault.zsh
var zshCompletion []byte

type CompletionCmd struct {
	Shell string `arg:"" enum:"zsh" help:"Shell type (zsh)"`
}

func (cmd *CompletionCmd) Run(g *Globals) error {
	switch cmd.Shell {
	case "zsh":
		util.Must(g.Out.Write(zshCompletion))
	default:
		return fmt.Errorf("unsupported shell: %s", cmd.Shell)
	}
	return nil
}

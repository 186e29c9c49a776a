package main

import (
	"cardvault/internal/config"
	"cardvault/internal/kv"
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type CLI struct {
	Search SearchCmd `cmd:"" aliases:"s" help:"Search Scryfall for cards by name"`
	Add    AddCmd    `cmd:"" aliases:"a" help:"Add one copy of a card to the collection"`
	Rm     RmCmd     `cmd:"" help:"Remove one copy of a card from the collection"`
	List   ListCmd   `cmd:"" aliases:"ls" help:"List owned cards"`
	Show   ShowCmd   `cmd:"" help:"Show one owned card"`
	Clear  ClearCmd  `cmd:"" help:"Delete the whole collection"`
	Shell  ShellCmd  `cmd:"" help:"Run an interactive session reading commands from stdin"`

	Completion CompletionCmd `cmd:"" help:"Generate shell completions"`

	Store      string `help:"Storage backend (file, sqlite, memory)" env:"CARDVAULT_STORE"`
	DataDir    string `name:"data-dir" help:"Directory holding the collection" env:"CARDVAULT_DATA_DIR"`
	ConfigPath string `name:"config" help:"Path to config file" env:"CARDVAULT_CONFIG"`
	APIURL     string `name:"api-url" hidden:"" env:"CARDVAULT_API_URL"`
	Verbose    bool   `short:"v" help:"Enable debug logging" env:"CARDVAULT_VERBOSE"`

	globals *Globals
}

func (c *CLI) loadConfig() (config.Config, error) {
	path := c.ConfigPath
	if path == "" {
		path = config.DefaultConfigPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	return cfg.Merge(config.Config{
		Store:   kv.Backend(c.Store),
		DataDir: c.DataDir,
		APIURL:  c.APIURL,
	})
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	cfg.Encoding = "console"
	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

func (c *CLI) AfterApply(ctx *kong.Context) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := newLogger(c.Verbose)
	if err != nil {
		return err
	}

	globals, err := openGlobals(context.Background(), cfg, logger, os.Stdin, os.Stdout)
	if err != nil {
		_ = logger.Sync()
		return err
	}
	c.globals = globals
	ctx.Bind(globals)
	return nil
}

func main() {
	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cli := CLI{}
	ctx := kong.Parse(&cli,
		kong.Name("cardvault"),
		kong.Description("Track a Magic: The Gathering card collection"),
		kong.UsageOnError(),
		kong.BindTo(sigCtx, (*context.Context)(nil)),
	)
	err := ctx.Run()
	if cli.globals != nil {
		if cerr := cli.globals.Close(); err == nil {
			err = cerr
		}
	}
	ctx.FatalIfErrorf(err)
}

package main

import (
	"cardvault/cmd/cardvault/render"
	"cardvault/internal/collection"
	"cardvault/internal/config"
	"cardvault/internal/filter"
	"cardvault/internal/kv"
	"cardvault/internal/scryfall"
	"cardvault/internal/session"
	"cardvault/internal/ui"
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"
)

type Globals struct {
	Session *session.Session
	Store   *collection.Store
	In      io.Reader
	Out     io.Writer
	Render  render.Renderer
	Log     *zap.Logger

	// Confirm asks before the collection is cleared.
	Confirm func(copies int) (bool, error)
	// EditFilter runs the interactive filter form.
	EditFilter func(filter.Spec) (filter.Spec, error)

	backend kv.Store
}

func openGlobals(ctx context.Context, cfg config.Config, log *zap.Logger, in io.Reader, out io.Writer) (*Globals, error) {
	backend, err := kv.Open(cfg.Store, cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", cfg.Store, err)
	}
	log.Debug("opened store",
		zap.String("backend", string(cfg.Store)),
		zap.String("data_dir", config.ShortenPath(cfg.DataDir)))

	client := scryfall.NewClient(
		scryfall.WithBaseURL(cfg.APIURL),
		scryfall.WithUserAgent(cfg.UserAgent),
		scryfall.WithLogger(log.Named("scryfall")),
	)

	g, err := newGlobals(ctx, backend, client, log, cfg, in, out)
	if err != nil {
		_ = backend.Close()
		return nil, err
	}
	g.Render = render.NewLipglossRendererAuto(out)
	return g, nil
}

func newGlobals(ctx context.Context, backend kv.Store, lookup session.Lookup, log *zap.Logger, cfg config.Config, in io.Reader, out io.Writer) (*Globals, error) {
	store := collection.NewStore(backend, collection.WithLogger(log.Named("store")))
	sess, err := session.New(ctx, store, lookup,
		session.WithLogger(log.Named("session")),
		session.WithDisplayMode(cfg.DisplayMode),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load collection: %w", err)
	}
	return &Globals{
		Session:    sess,
		Store:      store,
		In:         in,
		Out:        out,
		Render:     render.NewLipglossRenderer(out, 80),
		Log:        log,
		Confirm:    ui.ConfirmClear,
		EditFilter: ui.EditFilter,
		backend:    backend,
	}, nil
}

func (g *Globals) Close() error {
	g.Session.Close()
	err := g.backend.Close()
	// Sync reports EINVAL for a terminal stderr.
	_ = g.Log.Sync()
	if err != nil {
		return fmt.Errorf("failed to close store: %w", err)
	}
	return nil
}

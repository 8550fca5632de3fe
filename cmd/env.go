package main

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/leadforge/prospector-cli/internal/ai"
	"github.com/leadforge/prospector-cli/internal/analyze"
	"github.com/leadforge/prospector-cli/internal/enrich"
	"github.com/leadforge/prospector-cli/internal/search"
	"github.com/leadforge/prospector-cli/internal/store"
	"github.com/leadforge/prospector-cli/pkg/places"
)

// env bundles the wired adapters shared by the commands.
type env struct {
	Store    store.Store
	Gen      ai.Generator
	Places   places.Client // nil without a maps key
	Search   *search.Service
	Analyzer *analyze.Analyzer
	Finder   *enrich.Finder
}

func initEnv(ctx context.Context) (*env, error) {
	st, err := initStore(ctx)
	if err != nil {
		return nil, err
	}

	gen, err := ai.New(ctx, cfg.AI)
	if err != nil {
		_ = st.Close()
		return nil, err
	}

	var placesClient places.Client
	if cfg.Maps.APIKey != "" {
		placesClient = places.NewClient(cfg.Maps.APIKey)
	}

	return &env{
		Store:    st,
		Gen:      gen,
		Places:   placesClient,
		Search:   search.New(gen, placesClient, cfg.Search),
		Analyzer: analyze.New(gen),
		Finder:   enrich.NewFinder(gen),
	}, nil
}

func (e *env) Close() {
	_ = e.Store.Close()
}

func initStore(ctx context.Context) (store.Store, error) {
	var (
		st  store.Store
		err error
	)
	switch cfg.Store.Driver {
	case "sqlite", "":
		st, err = store.NewSQLite(cfg.Store.Path)
	case "file":
		st, err = store.NewFile(cfg.Store.Path)
	default:
		return nil, eris.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
	if err != nil {
		return nil, eris.Wrap(err, "init store")
	}

	if err := st.Migrate(ctx); err != nil {
		_ = st.Close()
		return nil, eris.Wrap(err, "migrate store")
	}
	return st, nil
}

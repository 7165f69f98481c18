package main

import (
	"context"
	"fmt"

	"github.com/d4zhu/portfolio/internal/cache"
	"github.com/d4zhu/portfolio/internal/commits"
	"github.com/d4zhu/portfolio/internal/ingestion"
	"github.com/d4zhu/portfolio/internal/meta"
	"github.com/d4zhu/portfolio/internal/storage"
)

// newLoader builds a loader in the configured display timezone.
func newLoader() (*ingestion.Loader, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	return ingestion.NewLoader(logger, loc), nil
}

// recordSource picks the CSV named on the command line, the sqlite import
// when configured, or the configured CSV. The returned close func releases
// the store, if any.
func recordSource(args []string) (meta.RecordSource, func() error, error) {
	loader, err := newLoader()
	if err != nil {
		return nil, nil, err
	}
	noop := func() error { return nil }

	if len(args) > 0 {
		return meta.CSVRecords{Loader: loader, Source: ingestion.NewSource(args[0])}, noop, nil
	}

	if cfg.Storage.SQLitePath != "" {
		store, err := storage.NewSQLiteStore(cfg.Storage.SQLitePath, logger)
		if err != nil {
			return nil, nil, err
		}
		return meta.StoredRecords{Store: store, Source: cfg.Meta.CSV, Loader: loader}, store.Close, nil
	}

	if cfg.Meta.CSV == "" {
		return nil, nil, fmt.Errorf("no CSV given and meta.csv is not configured")
	}
	return meta.CSVRecords{Loader: loader, Source: ingestion.NewSource(cfg.Meta.CSV)}, noop, nil
}

// loadDataset loads and aggregates once, for one-shot commands.
func loadDataset(ctx context.Context, args []string) (*commits.Dataset, error) {
	src, closeFn, err := recordSource(args)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	return meta.NewProvider(src, cfg.Meta.CommitBaseURL, nil, logger).Dataset(ctx)
}

// newProvider is the memoizing provider used by the server.
func newProvider(src meta.RecordSource) *meta.Provider {
	memo := cache.NewMemory(cfg.Meta.ReloadInterval, logger)
	return meta.NewProvider(src, cfg.Meta.CommitBaseURL, memo, logger)
}

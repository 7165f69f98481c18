// Package meta wires the commit pipeline together for the meta page:
// load records, aggregate them once, and answer brush, slider and
// scroll interactions against the cached dataset.
package meta

import (
	"context"

	"github.com/d4zhu/portfolio/internal/cache"
	"github.com/d4zhu/portfolio/internal/commits"
	"github.com/d4zhu/portfolio/internal/ingestion"
	"github.com/d4zhu/portfolio/internal/models"
	"github.com/d4zhu/portfolio/internal/storage"
	"github.com/sirupsen/logrus"
)

// RecordSource yields the raw line records.
type RecordSource interface {
	Name() string
	Records(ctx context.Context) ([]models.LineRecord, error)
}

// CSVRecords reads loc.csv through the loader.
type CSVRecords struct {
	Loader *ingestion.Loader
	Source ingestion.Source
}

func (c CSVRecords) Name() string { return c.Source.Name() }

func (c CSVRecords) Records(ctx context.Context) ([]models.LineRecord, error) {
	return c.Loader.Load(ctx, c.Source)
}

// StoredRecords reads records previously imported into a store.
type StoredRecords struct {
	Store  storage.Store
	Source string
	Loader *ingestion.Loader
}

func (s StoredRecords) Name() string { return "sqlite:" + s.Source }

func (s StoredRecords) Records(ctx context.Context) ([]models.LineRecord, error) {
	records, err := s.Store.LoadRecords(ctx, s.Source)
	if err != nil {
		return nil, err
	}
	return s.Loader.Localize(records), nil
}

// Provider loads and memoizes the aggregated dataset.
type Provider struct {
	source  RecordSource
	baseURL string
	memo    *cache.Memory
	logger  *logrus.Logger
}

// NewProvider creates a provider. memo may be nil to load on every call.
func NewProvider(source RecordSource, baseURL string, memo *cache.Memory, logger *logrus.Logger) *Provider {
	return &Provider{source: source, baseURL: baseURL, memo: memo, logger: logger}
}

// Dataset returns the aggregated commits. Load failures are returned and
// not memoized.
func (p *Provider) Dataset(ctx context.Context) (*commits.Dataset, error) {
	load := func(ctx context.Context) (interface{}, error) {
		records, err := p.source.Records(ctx)
		if err != nil {
			return nil, err
		}
		ds := commits.Aggregate(records, p.baseURL)
		p.logger.WithFields(logrus.Fields{
			"source":  p.source.Name(),
			"lines":   len(records),
			"commits": ds.Len(),
		}).Info("commit dataset loaded")
		return ds, nil
	}

	if p.memo == nil {
		v, err := load(ctx)
		if err != nil {
			return nil, err
		}
		return v.(*commits.Dataset), nil
	}

	// the memoized load is shared by every waiting request, so one
	// caller going away must not cancel it for the others
	shared := context.WithoutCancel(ctx)
	v, err := p.memo.GetOrLoad("dataset:"+p.source.Name(), func() (interface{}, error) {
		return load(shared)
	})
	if err != nil {
		return nil, err
	}
	return v.(*commits.Dataset), nil
}

// DatasetSafe is Dataset for page rendering: a failure is logged and an
// empty dataset returned so the page still renders.
func (p *Provider) DatasetSafe(ctx context.Context) *commits.Dataset {
	ds, err := p.Dataset(ctx)
	if err != nil {
		p.logger.WithError(err).WithField("source", p.source.Name()).Error("failed to load commit data")
		return commits.Aggregate(nil, p.baseURL)
	}
	return ds
}

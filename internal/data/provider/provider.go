// Package provider supplies ordered report records from the configured
// source. Providers are read-only: nothing is ever written back.
package provider

import (
	"context"
	"errors"
	"fmt"

	"github.com/colonyops/reportbox/internal/core/config"
	"github.com/colonyops/reportbox/internal/core/report"
)

// ErrUnknownKind is returned by New for a source kind it cannot build.
var ErrUnknownKind = errors.New("unknown source kind")

// Provider returns the current ordered sequence of report records.
type Provider interface {
	Name() string
	Reports(ctx context.Context) ([]report.Record, error)
}

// Watchable is implemented by providers backed by files that can change
// while the program runs.
type Watchable interface {
	WatchTarget() (WatchTarget, error)
}

// New builds the provider for a source configuration.
func New(src config.SourceConfig) (Provider, error) {
	switch kind := src.ResolvedKind(); kind {
	case config.SourceSample:
		return NewSample(), nil
	case config.SourceJSON:
		return NewFile(FormatJSON, src.Path), nil
	case config.SourceYAML:
		return NewFile(FormatYAML, src.Path), nil
	case config.SourceSQLite:
		return NewSQLite(src.Path, src.Query), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}

// Load fetches records from p and checks them against the record contract.
func Load(ctx context.Context, p Provider) ([]report.Record, error) {
	records, err := p.Reports(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p.Name(), err)
	}

	if err := ValidateRecords(records); err != nil {
		return nil, fmt.Errorf("%s: %w", p.Name(), err)
	}

	return records, nil
}

// Static is a fixed in-memory provider.
type Static []report.Record

// Name implements Provider.
func (s Static) Name() string { return "static" }

// Reports implements Provider. The returned slice is a copy.
func (s Static) Reports(context.Context) ([]report.Record, error) {
	out := make([]report.Record, len(s))
	copy(out, s)
	return out, nil
}

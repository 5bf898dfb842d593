package provider

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"

	"github.com/colonyops/reportbox/internal/core/report"
)

//go:embed sample.json
var sampleJSON []byte

// Sample serves the built-in sample payload.
type Sample struct{}

// NewSample creates the sample provider.
func NewSample() *Sample { return &Sample{} }

// Name implements Provider.
func (s *Sample) Name() string { return "sample" }

// Reports implements Provider. The payload is parsed on every call so
// callers never share a slice.
func (s *Sample) Reports(context.Context) ([]report.Record, error) {
	records, err := decodeJSON(bytes.NewReader(sampleJSON))
	if err != nil {
		return nil, fmt.Errorf("decode sample: %w", err)
	}
	return records, nil
}

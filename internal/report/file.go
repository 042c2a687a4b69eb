// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/arxiv-trends/pkg/types"
)

// New assembles a report from computed summaries, stamped with the
// current time.
func New(query, field string, entries int, hist types.Histogram, trend types.Trend) types.Report {
	return types.Report{
		Query:       query,
		Entries:     entries,
		Field:       field,
		Histogram:   hist,
		Trend:       trend,
		GeneratedAt: time.Now().UTC().Truncate(time.Second),
	}
}

// WriteFile saves a report as YAML.
func WriteFile(path string, r types.Report) error {
	data, err := yaml.Marshal(&r)
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadFile loads a report previously saved with WriteFile.
func ReadFile(path string) (*types.Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading report file: %w", err)
	}
	var r types.Report
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parsing report file: %w", err)
	}
	return &r, nil
}

// WordCloudInput is what the external word-cloud renderer consumes: the
// word-frequency text plus its render options.
type WordCloudInput struct {
	Text            string `yaml:"text"`
	BackgroundColor string `yaml:"background_color"`
	Width           int    `yaml:"width"`
	Height          int    `yaml:"height"`
}

// WriteWordCloudInput saves the renderer input as YAML.
func WriteWordCloudInput(path, text string, cfg types.WordCloudConfig) error {
	in := WordCloudInput{
		Text:            text,
		BackgroundColor: cfg.BackgroundColor,
		Width:           cfg.Width,
		Height:          cfg.Height,
	}
	data, err := yaml.Marshal(&in)
	if err != nil {
		return fmt.Errorf("marshaling word cloud input: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

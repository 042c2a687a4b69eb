// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Count pairs a distinct value with its number of occurrences.
type Count struct {
	Key   string `json:"key" yaml:"key"`
	Count int    `json:"count" yaml:"count"`
}

// Histogram holds occurrence counts in first-occurrence order, so that
// iteration is deterministic for a given input.
type Histogram []Count

// Get returns the count for key, or 0 if the key never occurred.
func (h Histogram) Get(key string) int {
	for _, c := range h {
		if c.Key == key {
			return c.Count
		}
	}
	return 0
}

// Total returns the sum of all counts.
func (h Histogram) Total() int {
	n := 0
	for _, c := range h {
		n += c.Count
	}
	return n
}

// ToMap converts the histogram into an unordered map.
func (h Histogram) ToMap() map[string]int {
	m := make(map[string]int, len(h))
	for _, c := range h {
		m[c.Key] = c.Count
	}
	return m
}

// Granularity names the bucket width chosen for a trend.
type Granularity string

const (
	GranularityDaily   Granularity = "daily"
	GranularityMonthly Granularity = "monthly"
	GranularityYearly  Granularity = "yearly"
)

// Trend holds publication counts per time bucket. Buckets are sorted by
// key; all key formats (YYYY-MM-DD, YYYY-MM, YYYY) sort chronologically.
type Trend struct {
	Granularity Granularity `json:"granularity" yaml:"granularity"`
	SpanDays    int         `json:"span_days" yaml:"span_days"`
	Buckets     Histogram   `json:"buckets" yaml:"buckets"`
}

// Report bundles the summaries of one fetched feed so it can be saved
// and printed again without re-querying the API.
type Report struct {
	// Query is the serialized request URL that produced the entries.
	Query string `json:"query" yaml:"query"`

	// Entries is the number of entries summarized.
	Entries int `json:"entries" yaml:"entries"`

	// Field is the entry field the histogram was computed over.
	Field string `json:"field" yaml:"field"`

	Histogram Histogram `json:"histogram" yaml:"histogram"`
	Trend     Trend     `json:"trend" yaml:"trend"`

	// GeneratedAt records when the report was produced.
	GeneratedAt time.Time `json:"generated_at" yaml:"generated_at"`
}

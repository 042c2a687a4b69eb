// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analyze

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/pdiddy/arxiv-trends/pkg/types"
)

// PublishedLayout is the only accepted form of the published field.
const PublishedLayout = "2006-01-02T15:04:05Z"

const day = 24 * time.Hour

// Span thresholds, in whole days, that select the bucket granularity.
const (
	dailySpanLimit   = 61
	monthlySpanLimit = 731
)

type bucketPolicy struct {
	granularity types.Granularity
	layout      string
	stride      time.Duration
}

// policyFor picks the bucket width for a span. Monthly and yearly
// buckets use fixed 30 and 365 day strides, not calendar arithmetic, so
// a seeded range can skip a calendar month or year near its end.
func policyFor(spanDays int) bucketPolicy {
	switch {
	case spanDays < dailySpanLimit:
		return bucketPolicy{types.GranularityDaily, "2006-01-02", day}
	case spanDays < monthlySpanLimit:
		return bucketPolicy{types.GranularityMonthly, "2006-01", 30 * day}
	default:
		return bucketPolicy{types.GranularityYearly, "2006", 365 * day}
	}
}

// ParsePublished parses a timestamp in strict YYYY-MM-DDTHH:MM:SSZ form.
func ParsePublished(s string) (time.Time, error) {
	// time.Parse tolerates fractional seconds the layout does not name.
	if len(s) != len(PublishedLayout) {
		return time.Time{}, fmt.Errorf("%w: %q is not YYYY-MM-DDTHH:MM:SSZ", ErrParse, s)
	}
	t, err := time.Parse(PublishedLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q: %v", ErrParse, s, err)
	}
	return t, nil
}

// Trend counts entries per publication-time bucket. The bucket width
// follows the span between the earliest and latest published timestamps:
// daily below 61 days, 30-day strides below 731 days, 365-day strides
// beyond. Every bucket from the earliest to the latest timestamp is
// reported, including empty ones.
func Trend(entries []types.Entry) (types.Trend, error) {
	if len(entries) == 0 {
		return types.Trend{}, fmt.Errorf("%w: no entries", ErrEmptyInput)
	}

	raw, err := field(entries, types.FieldPublished)
	if err != nil {
		return types.Trend{}, err
	}
	stamps := make([]time.Time, len(raw))
	for i, s := range raw {
		t, err := ParsePublished(s)
		if err != nil {
			return types.Trend{}, fmt.Errorf("entry %d: %w", i, err)
		}
		stamps[i] = t
	}

	first := slices.MinFunc(stamps, time.Time.Compare)
	last := slices.MaxFunc(stamps, time.Time.Compare)
	spanDays := spanInDays(first, last)
	policy := policyFor(spanDays)

	index := make(map[string]int)
	var buckets types.Histogram
	slot := func(key string) int {
		if i, ok := index[key]; ok {
			return i
		}
		index[key] = len(buckets)
		buckets = append(buckets, types.Count{Key: key})
		return len(buckets) - 1
	}

	for cur := first; !cur.After(last); cur = cur.Add(policy.stride) {
		slot(cur.Format(policy.layout))
	}
	for _, t := range stamps {
		i := slot(t.Format(policy.layout))
		buckets[i].Count++
	}

	slices.SortFunc(buckets, func(a, b types.Count) int {
		return strings.Compare(a.Key, b.Key)
	})

	return types.Trend{
		Granularity: policy.granularity,
		SpanDays:    spanDays,
		Buckets:     buckets,
	}, nil
}

// spanInDays returns the distance from first to last rounded up to whole
// days, in Unix seconds so spans past the time.Duration range stay exact.
func spanInDays(first, last time.Time) int {
	const secondsPerDay = 24 * 60 * 60
	secs := last.Unix() - first.Unix()
	days := secs / secondsPerDay
	if secs%secondsPerDay != 0 {
		days++
	}
	return int(days)
}

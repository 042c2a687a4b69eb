// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analyze

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/arxiv-trends/pkg/types"
)

func published(stamps ...string) []types.Entry {
	return entriesWith(types.FieldPublished, stamps...)
}

func TestTrendDaily(t *testing.T) {
	trend, err := Trend(published("2024-01-01T00:00:00Z", "2024-01-03T00:00:00Z"))
	require.NoError(t, err)

	assert.Equal(t, types.GranularityDaily, trend.Granularity)
	assert.Equal(t, 2, trend.SpanDays)
	want := types.Histogram{
		{Key: "2024-01-01", Count: 1},
		{Key: "2024-01-02", Count: 0},
		{Key: "2024-01-03", Count: 1},
	}
	if diff := cmp.Diff(want, trend.Buckets); diff != "" {
		t.Errorf("buckets mismatch (-want +got):\n%s", diff)
	}
}

func TestTrendSingleEntry(t *testing.T) {
	trend, err := Trend(published("2023-05-17T12:30:00Z"))
	require.NoError(t, err)
	assert.Equal(t, 0, trend.SpanDays)
	assert.Equal(t, types.Histogram{{Key: "2023-05-17", Count: 1}}, trend.Buckets)
}

// Fixed 30-day strides seeded from Jan 1 land on Jan 31 and then Mar 1,
// so February is never seeded in a leap year.
func TestTrendMonthlyFixedStride(t *testing.T) {
	trend, err := Trend(published("2024-06-15T08:00:00Z", "2024-01-01T00:00:00Z"))
	require.NoError(t, err)

	assert.Equal(t, types.GranularityMonthly, trend.Granularity)
	want := types.Histogram{
		{Key: "2024-01", Count: 1},
		{Key: "2024-03", Count: 0},
		{Key: "2024-04", Count: 0},
		{Key: "2024-05", Count: 0},
		{Key: "2024-06", Count: 1},
	}
	if diff := cmp.Diff(want, trend.Buckets); diff != "" {
		t.Errorf("buckets mismatch (-want +got):\n%s", diff)
	}
}

func TestTrendYearly(t *testing.T) {
	trend, err := Trend(published(
		"2018-03-01T00:00:00Z",
		"2019-11-20T10:00:00Z",
		"2019-12-01T10:00:00Z",
		"2021-07-01T00:00:00Z",
	))
	require.NoError(t, err)

	assert.Equal(t, types.GranularityYearly, trend.Granularity)
	want := types.Histogram{
		{Key: "2018", Count: 1},
		{Key: "2019", Count: 2},
		{Key: "2020", Count: 0},
		{Key: "2021", Count: 1},
	}
	if diff := cmp.Diff(want, trend.Buckets); diff != "" {
		t.Errorf("buckets mismatch (-want +got):\n%s", diff)
	}
}

func TestTrendGranularityThresholds(t *testing.T) {
	tests := []struct {
		name     string
		first    string
		last     string
		wantSpan int
		want     types.Granularity
	}{
		{"60 days", "2024-01-01T00:00:00Z", "2024-03-01T00:00:00Z", 60, types.GranularityDaily},
		{"60 days and a second rounds up", "2024-01-01T00:00:00Z", "2024-03-01T00:00:01Z", 61, types.GranularityMonthly},
		{"730 days", "2021-01-01T00:00:00Z", "2023-01-01T00:00:00Z", 730, types.GranularityMonthly},
		{"731 days", "2020-01-01T00:00:00Z", "2022-01-01T00:00:00Z", 731, types.GranularityYearly},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trend, err := Trend(published(tt.first, tt.last))
			require.NoError(t, err)
			assert.Equal(t, tt.wantSpan, trend.SpanDays)
			assert.Equal(t, tt.want, trend.Granularity)
		})
	}
}

func TestTrendDailyIsContiguousAndComplete(t *testing.T) {
	stamps := []string{
		"2024-02-27T23:59:59Z",
		"2024-03-04T01:00:00Z",
		"2024-02-28T00:00:00Z",
		"2024-03-01T12:00:00Z",
		"2024-03-01T13:00:00Z",
	}
	trend, err := Trend(published(stamps...))
	require.NoError(t, err)

	assert.Equal(t, len(stamps), trend.Buckets.Total())
	assert.Equal(t, "2024-02-27", trend.Buckets[0].Key)
	assert.Equal(t, "2024-03-04", trend.Buckets[len(trend.Buckets)-1].Key)
	for i := 1; i < len(trend.Buckets); i++ {
		prev, err := time.Parse("2006-01-02", trend.Buckets[i-1].Key)
		require.NoError(t, err)
		cur, err := time.Parse("2006-01-02", trend.Buckets[i].Key)
		require.NoError(t, err)
		assert.Equal(t, 24*time.Hour, cur.Sub(prev), "gap between %s and %s", trend.Buckets[i-1].Key, trend.Buckets[i].Key)
	}
}

func TestTrendSpanBeyondDurationRange(t *testing.T) {
	trend, err := Trend(published("1500-01-01T00:00:00Z", "2024-01-01T00:00:00Z"))
	require.NoError(t, err)

	assert.Equal(t, types.GranularityYearly, trend.Granularity)
	assert.Equal(t, 191387, trend.SpanDays)
	assert.Equal(t, 2, trend.Buckets.Total())
	assert.Equal(t, "1500", trend.Buckets[0].Key)
	assert.Equal(t, "2024", trend.Buckets[len(trend.Buckets)-1].Key)
}

func TestSpanInDays(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		last time.Time
		want int
	}{
		{"same instant", base, 0},
		{"one second", base.Add(time.Second), 1},
		{"exact day", base.AddDate(0, 0, 1), 1},
		{"day and a second", base.AddDate(0, 0, 1).Add(time.Second), 2},
		{"six centuries", base.AddDate(600, 0, 0), 219145},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, spanInDays(base, tt.last))
		})
	}
}

func TestTrendErrors(t *testing.T) {
	tests := []struct {
		name    string
		entries []types.Entry
		wantErr error
	}{
		{"no entries", nil, ErrEmptyInput},
		{"space separator", published("2024-01-01 00:00:00"), ErrParse},
		{"fractional seconds", published("2024-01-01T00:00:00.5Z"), ErrParse},
		{"offset", published("2024-01-01T00:00:00+01:00"), ErrParse},
		{"date only", published("2024-01-01"), ErrParse},
		{"invalid month", published("2024-13-01T00:00:00Z"), ErrParse},
		{"missing field", []types.Entry{{"title": "x"}}, ErrFieldNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Trend(tt.entries)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

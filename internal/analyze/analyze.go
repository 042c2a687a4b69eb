// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package analyze derives summaries from feed entries: per-entry field
// collections, categorical histograms, publication trends and the
// word-frequency text consumed by a word-cloud renderer.
//
// Every function is stateless: it reads the entries it is given and
// returns a fresh result, or an error and no result.
package analyze

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pdiddy/arxiv-trends/pkg/types"
)

var (
	// ErrFieldNotFound reports an entry that lacks the requested field.
	ErrFieldNotFound = errors.New("field not found")

	// ErrParse reports a timestamp that is not in YYYY-MM-DDTHH:MM:SSZ form.
	ErrParse = errors.New("parse error")

	// ErrEmptyInput reports that there is nothing to summarize.
	ErrEmptyInput = errors.New("empty input")
)

// normalize strips newlines and then replaces each pair of spaces with a
// single space in one left-to-right pass. Runs longer than two spaces are
// only halved; this is not a general whitespace normalizer.
func normalize(s string) string {
	s = strings.ReplaceAll(s, "\n", "")
	return strings.ReplaceAll(s, "  ", " ")
}

func field(entries []types.Entry, name string) ([]string, error) {
	values := make([]string, len(entries))
	for i, e := range entries {
		v, ok := e.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("%w: entry %d has no %q", ErrFieldNotFound, i, name)
		}
		values[i] = v
	}
	return values, nil
}

// Collect returns the normalized value of field for every entry, in entry order.
func Collect(entries []types.Entry, name string) ([]string, error) {
	values, err := field(entries, name)
	if err != nil {
		return nil, err
	}
	for i, v := range values {
		values[i] = normalize(v)
	}
	return values, nil
}

// Histogram counts the occurrences of each normalized value of field.
// Values appear in the order they were first seen.
func Histogram(entries []types.Entry, name string) (types.Histogram, error) {
	values, err := Collect(entries, name)
	if err != nil {
		return nil, err
	}

	index := make(map[string]int)
	var hist types.Histogram
	for _, v := range values {
		if i, ok := index[v]; ok {
			hist[i].Count++
			continue
		}
		index[v] = len(hist)
		hist = append(hist, types.Count{Key: v, Count: 1})
	}
	return hist, nil
}

var punctuation = strings.NewReplacer(".", "", ",", "")

// WordFrequencyText returns the text handed to a word-cloud renderer: the
// field text of all entries, newline-stripped, double-space collapsed,
// with periods and commas removed, lower-cased, and with stop-words
// dropped. A nil stopWords uses DefaultStopWords.
//
// Entry texts are concatenated with no separator, so the last word of one
// entry runs into the first word of the next.
func WordFrequencyText(entries []types.Entry, name string, stopWords []string) (string, error) {
	values, err := field(entries, name)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, v := range values {
		sb.WriteString(strings.ToLower(punctuation.Replace(normalize(v))))
	}
	text := sb.String()
	if text == "" {
		return "", fmt.Errorf("%w: no %q text in %d entries", ErrEmptyInput, name, len(entries))
	}

	stop := DefaultStopWords
	if stopWords != nil {
		stop = stopWords
	}
	skip := make(map[string]bool, len(stop))
	for _, w := range stop {
		skip[w] = true
	}

	words := strings.Split(text, " ")
	kept := words[:0]
	for _, w := range words {
		if !skip[w] {
			kept = append(kept, w)
		}
	}
	return strings.Join(kept, " "), nil
}

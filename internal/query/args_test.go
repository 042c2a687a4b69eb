// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseArgsMatchesFluentCalls(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, ParseArgs(b, []string{"cat:cs.LG", "AND", "abs:deep learning"}))
	got, err := b.Serialize()
	require.NoError(t, err)

	want, err := NewBuilder().Category("cs.LG").And().Abstract("deep learning").Serialize()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestParseArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"bare word", []string{"transformers"}, "all:transformers"},
		{"long names", []string{"title:graph", "OR", "author:Kipf"}, "ti:graph+OR+au:Kipf"},
		{"lower-case operators are words", []string{"rock", "and", "roll"}, "all:rock+AND+all:and+AND+all:roll"},
		{"mixed-case operator is a word", []string{"ti:x", "Or", "ti:y"}, "ti:x+AND+all:Or+AND+ti:y"},
		{"groups", []string{"(", "ti:a", "OR", "ti:b", ")", "ANDNOT", "cat:cs.CV"}, "%28ti:a+OR+ti:b%29+ANDNOT+cat:cs.CV"},
		{"report number", []string{"report-number:CERN-TH-2020"}, "rn:CERN-TH-2020"},
		{"raw id", []string{"raw-id:2301.07041"}, "id:2301.07041"},
		{"implicit and", []string{"au:Bengio", "abs:deep learning"}, "au:Bengio+AND+abs:%22deep+learning%22"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuilder()
			require.NoError(t, ParseArgs(b, tt.args))
			q, err := b.Build()
			require.NoError(t, err)
			assert.Equal(t, tt.want, q.SearchQuery)
		})
	}
}

func TestParseArgsErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown prefix", []string{"venue:NeurIPS"}},
		{"empty text", []string{"ti:"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ParseArgs(NewBuilder(), tt.args)
			assert.ErrorIs(t, err, ErrInvalidArgument)
		})
	}
}

func TestParseArgsLeavesGrammarToBuild(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, ParseArgs(b, []string{"AND", "ti:x"}))
	_, err := b.Build()
	assert.ErrorIs(t, err, ErrSyntax)
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package query builds arXiv API query URLs from search terms, boolean
// operators and grouping markers, validating the boolean grammar before
// serialization.
//
// A Builder is configured through chainable methods. Setters that receive
// an invalid value leave the builder unchanged and record the error; it is
// visible immediately through Err and is returned by Build. A Builder is
// not safe for concurrent mutation.
package query

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// DefaultEndpoint is the arXiv API query endpoint.
const DefaultEndpoint = "https://export.arxiv.org/api/query"

const (
	defaultMaxResults = 10
	maxMaxResults     = 30000
)

// Accepted values for sortBy and sortOrder.
var (
	SortByValues    = []string{"relevance", "lastUpdatedDate", "submittedDate"}
	SortOrderValues = []string{"ascending", "descending"}
)

// Builder accumulates query tokens and request parameters.
type Builder struct {
	endpoint string
	parens   ParenStyle

	tokens     []Token
	ids        []string
	start      int
	maxResults int
	sortBy     string
	sortOrder  string

	err error
}

// Option configures a Builder at construction.
type Option func(*Builder)

// WithEndpoint overrides the API endpoint the URL is built against.
func WithEndpoint(endpoint string) Option {
	return func(b *Builder) { b.endpoint = endpoint }
}

// WithParenStyle selects encoded (%28/%29) or plain grouping markers.
func WithParenStyle(style ParenStyle) Option {
	return func(b *Builder) { b.parens = style }
}

// NewBuilder returns an empty builder with default parameters.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{endpoint: DefaultEndpoint, maxResults: defaultMaxResults}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Err returns the first error recorded by a setter since the last Reset.
func (b *Builder) Err() error { return b.err }

func (b *Builder) fail(err error) *Builder {
	if b.err == nil {
		b.err = err
	}
	return b
}

// AddTerm appends a search term of the given kind.
func (b *Builder) AddTerm(kind TermKind, text string) *Builder {
	if _, ok := kind.Prefix(); !ok {
		return b.fail(fmt.Errorf("%w: unknown term kind %q", ErrInvalidArgument, kind))
	}
	b.tokens = append(b.tokens, TermToken(kind, Escape(text)))
	return b
}

func (b *Builder) Title(text string) *Builder        { return b.AddTerm(KindTitle, text) }
func (b *Builder) Author(text string) *Builder       { return b.AddTerm(KindAuthor, text) }
func (b *Builder) Abstract(text string) *Builder     { return b.AddTerm(KindAbstract, text) }
func (b *Builder) Comment(text string) *Builder      { return b.AddTerm(KindComment, text) }
func (b *Builder) Journal(text string) *Builder      { return b.AddTerm(KindJournal, text) }
func (b *Builder) Category(text string) *Builder     { return b.AddTerm(KindCategory, text) }
func (b *Builder) ReportNumber(text string) *Builder { return b.AddTerm(KindReportNumber, text) }
func (b *Builder) All(text string) *Builder          { return b.AddTerm(KindAll, text) }

// AddID appends a raw arXiv identifier to the id_list. Ids are kept apart
// from the boolean token stream.
func (b *Builder) AddID(text string) *Builder {
	b.ids = append(b.ids, Escape(text))
	return b
}

func (b *Builder) And() *Builder    { return b.push(OperatorToken(OpAnd)) }
func (b *Builder) Or() *Builder     { return b.push(OperatorToken(OpOr)) }
func (b *Builder) AndNot() *Builder { return b.push(OperatorToken(OpAndNot)) }

func (b *Builder) OpenGroup() *Builder  { return b.push(GroupToken(OpenParen)) }
func (b *Builder) CloseGroup() *Builder { return b.push(GroupToken(CloseParen)) }

func (b *Builder) push(t Token) *Builder {
	b.tokens = append(b.tokens, t)
	return b
}

// SetStart sets the index of the first result. n must be >= 0.
func (b *Builder) SetStart(n int) *Builder {
	if n < 0 {
		return b.fail(fmt.Errorf("%w: start must be >= 0, got %d", ErrInvalidArgument, n))
	}
	b.start = n
	return b
}

// SetMaxResults sets the page size. n must be in [1, 30000].
func (b *Builder) SetMaxResults(n int) *Builder {
	if n < 1 || n > maxMaxResults {
		return b.fail(fmt.Errorf("%w: max_results must be in [1, %d], got %d", ErrInvalidArgument, maxMaxResults, n))
	}
	b.maxResults = n
	return b
}

// SetSortBy sets the sort field: relevance, lastUpdatedDate or submittedDate.
func (b *Builder) SetSortBy(value string) *Builder {
	if !slices.Contains(SortByValues, value) {
		return b.fail(fmt.Errorf("%w: sortBy %q is not one of %s", ErrInvalidArgument, value, strings.Join(SortByValues, ", ")))
	}
	b.sortBy = value
	return b
}

// SetSortOrder sets the sort direction: ascending or descending.
func (b *Builder) SetSortOrder(value string) *Builder {
	if !slices.Contains(SortOrderValues, value) {
		return b.fail(fmt.Errorf("%w: sortOrder %q is not one of %s", ErrInvalidArgument, value, strings.Join(SortOrderValues, ", ")))
	}
	b.sortOrder = value
	return b
}

// Reset clears tokens, ids, parameters and any recorded error. The
// endpoint and paren style are kept.
func (b *Builder) Reset() *Builder {
	b.tokens = nil
	b.ids = nil
	b.start = 0
	b.maxResults = defaultMaxResults
	b.sortBy = ""
	b.sortOrder = ""
	b.err = nil
	return b
}

// Tokens returns a copy of the accumulated token sequence.
func (b *Builder) Tokens() []Token {
	return slices.Clone(b.tokens)
}

// Build validates the accumulated state and returns the immutable Query.
func (b *Builder) Build() (Query, error) {
	if b.err != nil {
		return Query{}, b.err
	}
	expr, err := Expression(b.tokens, b.parens)
	if err != nil {
		return Query{}, err
	}
	return Query{
		Endpoint:    b.endpoint,
		SearchQuery: expr,
		IDs:         slices.Clone(b.ids),
		Start:       b.start,
		MaxResults:  b.maxResults,
		SortBy:      b.sortBy,
		SortOrder:   b.sortOrder,
	}, nil
}

// Serialize returns the final request URL.
func (b *Builder) Serialize() (string, error) {
	q, err := b.Build()
	if err != nil {
		return "", err
	}
	return q.String(), nil
}

// Query is a validated, read-only arXiv request.
type Query struct {
	Endpoint    string
	SearchQuery string
	IDs         []string
	Start       int
	MaxResults  int
	SortBy      string
	SortOrder   string
}

// RawQuery returns the parameter string that follows "?" in the URL.
func (q Query) RawQuery() string {
	var parts []string
	if q.SearchQuery != "" {
		parts = append(parts, "search_query="+q.SearchQuery)
	}
	if len(q.IDs) > 0 {
		parts = append(parts, `id_list="`+strings.Join(q.IDs, " ")+`"`)
	}
	parts = append(parts, "start="+strconv.Itoa(q.Start))
	parts = append(parts, "max_results="+strconv.Itoa(q.MaxResults))
	if q.SortBy != "" {
		parts = append(parts, "sortBy="+q.SortBy)
	}
	if q.SortOrder != "" {
		parts = append(parts, "sortOrder="+q.SortOrder)
	}
	return strings.Join(parts, "&")
}

// String returns the full request URL.
func (q Query) String() string {
	return q.Endpoint + "?" + q.RawQuery()
}

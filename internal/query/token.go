// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package query

import (
	"fmt"
	"strings"
	"unicode"
)

// TermKind selects the arXiv field prefix of a search term.
type TermKind string

const (
	KindTitle        TermKind = "title"
	KindAuthor       TermKind = "author"
	KindAbstract     TermKind = "abstract"
	KindComment      TermKind = "comment"
	KindJournal      TermKind = "journal"
	KindCategory     TermKind = "category"
	KindReportNumber TermKind = "reportNumber"
	KindAll          TermKind = "all"
	KindRawID        TermKind = "rawId"
)

var termPrefixes = map[TermKind]string{
	KindTitle:        "ti",
	KindAuthor:       "au",
	KindAbstract:     "abs",
	KindComment:      "co",
	KindJournal:      "jr",
	KindCategory:     "cat",
	KindReportNumber: "rn",
	KindAll:          "all",
	KindRawID:        "id",
}

// Prefix returns the search_query field prefix for k (e.g. "ti").
func (k TermKind) Prefix() (string, bool) {
	p, ok := termPrefixes[k]
	return p, ok
}

// Operator is a boolean connective between terms.
type Operator string

const (
	OpAnd    Operator = "AND"
	OpOr     Operator = "OR"
	OpAndNot Operator = "ANDNOT"
)

// Group is an opening or closing grouping marker.
type Group int

const (
	OpenParen Group = iota
	CloseParen
)

// TokenType discriminates the Token variants.
type TokenType int

const (
	TokenTerm TokenType = iota
	TokenOperator
	TokenGroup
)

// Token is one element of the builder's sequence: a term, an operator
// or a grouping marker. Only the field matching Type is meaningful.
type Token struct {
	Type     TokenType
	Kind     TermKind
	Text     string // escaped term text
	Operator Operator
	Group    Group
}

// TermToken returns a term token holding already escaped text.
func TermToken(kind TermKind, escaped string) Token {
	return Token{Type: TokenTerm, Kind: kind, Text: escaped}
}

// OperatorToken returns a boolean operator token.
func OperatorToken(op Operator) Token {
	return Token{Type: TokenOperator, Operator: op}
}

// GroupToken returns a grouping marker token.
func GroupToken(g Group) Token {
	return Token{Type: TokenGroup, Group: g}
}

// String renders the token the way it appears in a search expression
// with encoded parentheses.
func (t Token) String() string {
	switch t.Type {
	case TokenTerm:
		p, _ := t.Kind.Prefix()
		return p + ":" + t.Text
	case TokenOperator:
		return string(t.Operator)
	case TokenGroup:
		if t.Group == OpenParen {
			return "%28"
		}
		return "%29"
	}
	return fmt.Sprintf("token(%d)", t.Type)
}

// quoteMarker wraps multi-word phrases.
const quoteMarker = "%22"

// Escape prepares literal user text for a query: text containing
// whitespace is wrapped in quote markers with each whitespace character
// replaced by "+"; anything else passes through unchanged.
func Escape(text string) string {
	if !strings.ContainsFunc(text, unicode.IsSpace) {
		return text
	}
	replaced := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return '+'
		}
		return r
	}, text)
	return quoteMarker + replaced + quoteMarker
}

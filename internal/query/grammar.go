// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package query

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidArgument reports a bad scalar or enum passed to a builder setter.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrSyntax reports a token sequence that is not a well-formed boolean expression.
	ErrSyntax = errors.New("query syntax error")
)

// ParenStyle selects how grouping markers are written.
type ParenStyle int

const (
	// ParensEncoded writes %28 and %29.
	ParensEncoded ParenStyle = iota
	// ParensPlain writes ( and ).
	ParensPlain
)

func (s ParenStyle) markers() (open, close string) {
	if s == ParensPlain {
		return "(", ")"
	}
	return "%28", "%29"
}

// Validate checks that tokens form a well-formed boolean expression
// without rendering it.
func Validate(tokens []Token) error {
	return walk(tokens, func(string) {})
}

// Expression renders tokens as a search_query expression. Two terms with
// no operator between them are joined by an implicit +AND+.
func Expression(tokens []Token, style ParenStyle) (string, error) {
	open, close := style.markers()
	var b strings.Builder
	err := walk(tokens, func(s string) {
		switch s {
		case "(":
			b.WriteString(open)
		case ")":
			b.WriteString(close)
		default:
			b.WriteString(s)
		}
	})
	if err != nil {
		return "", err
	}
	return b.String(), nil
}

// walk runs the needsOperator state machine over tokens, passing each
// output fragment to emit. Grouping markers are emitted as "(" and ")".
func walk(tokens []Token, emit func(string)) error {
	if len(tokens) == 0 {
		return fmt.Errorf("%w: at least one term is required", ErrSyntax)
	}

	needsOperator := false
	for i, t := range tokens {
		switch t.Type {
		case TokenTerm:
			if needsOperator {
				emit("+AND+")
			}
			emit(t.String())
			needsOperator = true

		case TokenGroup:
			if t.Group == OpenParen {
				if needsOperator {
					return fmt.Errorf("%w: token %d: cannot open a group where an operator is expected", ErrSyntax, i)
				}
				emit("(")
				continue
			}
			if !needsOperator {
				return fmt.Errorf("%w: token %d: cannot close an empty group", ErrSyntax, i)
			}
			emit(")")

		case TokenOperator:
			if !needsOperator {
				return fmt.Errorf("%w: token %d: %s must follow a term or a closing group", ErrSyntax, i, t.Operator)
			}
			emit("+" + string(t.Operator) + "+")
			needsOperator = false

		default:
			return fmt.Errorf("%w: token %d: unknown token type %d", ErrSyntax, i, t.Type)
		}
	}

	if !needsOperator {
		return fmt.Errorf("%w: expression ends where a term is expected", ErrSyntax)
	}
	return nil
}

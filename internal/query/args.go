// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package query

import (
	"fmt"
	"strings"
)

// argKinds maps the prefixes accepted on the command line to term kinds.
// Both the arXiv short prefix and a long name are accepted.
var argKinds = map[string]TermKind{
	"ti": KindTitle, "title": KindTitle,
	"au": KindAuthor, "author": KindAuthor,
	"abs": KindAbstract, "abstract": KindAbstract,
	"co": KindComment, "comment": KindComment,
	"jr": KindJournal, "journal": KindJournal,
	"cat": KindCategory, "category": KindCategory,
	"rn": KindReportNumber, "report-number": KindReportNumber,
	"all": KindAll,
	"id": KindRawID, "raw-id": KindRawID,
}

// ParseArgs appends one token per command-line word to b. Recognized words
// are AND, OR and ANDNOT (upper case only; "and" is a search word), "(" and ")", and "prefix:text" terms.
// A word without a prefix becomes an all: term. Grammar is not checked
// here; Build reports malformed sequences.
func ParseArgs(b *Builder, args []string) error {
	for _, arg := range args {
		switch arg {
		case "AND":
			b.And()
			continue
		case "OR":
			b.Or()
			continue
		case "ANDNOT":
			b.AndNot()
			continue
		case "(":
			b.OpenGroup()
			continue
		case ")":
			b.CloseGroup()
			continue
		}

		prefix, text, found := strings.Cut(arg, ":")
		if !found {
			b.All(arg)
			continue
		}
		kind, ok := argKinds[strings.ToLower(prefix)]
		if !ok {
			return fmt.Errorf("%w: unknown field prefix %q in %q", ErrInvalidArgument, prefix, arg)
		}
		if text == "" {
			return fmt.Errorf("%w: empty term after %q", ErrInvalidArgument, prefix+":")
		}
		b.AddTerm(kind, text)
	}
	return b.Err()
}

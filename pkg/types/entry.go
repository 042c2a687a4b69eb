// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the arxiv-trends tool:
// feed entries, the summaries derived from them, and configuration.
package types

// Entry is one paper returned by the feed collaborator: a mapping from
// field name to string value. Entries are treated as read-only once
// returned; optional fields the feed omitted are absent from the map.
type Entry map[string]string

// Field names populated by the arXiv feed client.
const (
	FieldID              = "id"
	FieldArxivID         = "arxiv_id"
	FieldTitle           = "title"
	FieldSummary         = "summary"
	FieldPublished       = "published"
	FieldUpdated         = "updated"
	FieldAuthor          = "author"
	FieldAuthors         = "authors"
	FieldCategory        = "category"
	FieldCategories      = "categories"
	FieldPrimaryCategory = "primary_category"
	FieldComment         = "comment"
	FieldJournalRef      = "journal_ref"
	FieldDOI             = "doi"
	FieldLink            = "link"
)

// Lookup returns the value of field and whether the entry carries it.
func (e Entry) Lookup(field string) (string, bool) {
	v, ok := e[field]
	return v, ok
}

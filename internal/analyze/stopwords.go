// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analyze

// DefaultStopWords lists the English words dropped from word-frequency
// text when the caller supplies none. Treat as read-only.
var DefaultStopWords = []string{
	"a", "the", "it", "is", "are", "was", "were", "not", "do", "did", "no",
	"any", "there", "i", "we", "to", "in", "of", "for", "with", "this", "that",
}

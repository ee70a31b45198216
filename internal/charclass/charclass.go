// Package charclass classifies characters for word-boundary detection.
package charclass

import "unicode"

// Category is the word-boundary class of a character.
type Category int

const (
	// General covers punctuation, symbols, control characters and every letter
	// class other than upper and lower case.
	General Category = iota
	// Identifier covers underscore, decimal digits, and upper/lower case letters.
	Identifier
	// Whitespace covers Unicode space separators (Zs).
	Whitespace
)

func (c Category) String() string {
	switch c {
	case General:
		return "general"
	case Identifier:
		return "identifier"
	case Whitespace:
		return "whitespace"
	default:
		return "unknown"
	}
}

// ClassifyRune returns the category of r.
func ClassifyRune(r rune) Category {
	if r == '_' {
		return Identifier
	}

	switch {
	case unicode.Is(unicode.Nd, r), unicode.Is(unicode.Ll, r), unicode.Is(unicode.Lu, r):
		return Identifier
	case unicode.Is(unicode.Zs, r):
		return Whitespace
	}
	return General
}

// Classify returns the category of a grapheme cluster, decided by its base rune.
// The empty string is General.
func Classify(cluster string) Category {
	for _, r := range cluster {
		return ClassifyRune(r)
	}
	return General
}

// IsSpace reports whether the cluster's base rune is any Unicode white space,
// including tabs and line breaks. This is wider than the Whitespace category
// and is what the word-delete trimming uses.
func IsSpace(cluster string) bool {
	for _, r := range cluster {
		return unicode.IsSpace(r)
	}
	return false
}

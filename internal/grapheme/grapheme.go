// Package grapheme provides grapheme cluster helpers for the text buffer.
//
// Every column the editor engine exposes is a grapheme index: the nth
// user-perceived character of a line. Go strings are indexed by byte, so the
// buffer converts between the two units with the functions in this package.
//
// Three units are in play:
//
//  1. Bytes: len(s). One grapheme can span many bytes ("👨‍👩‍👧" is 18).
//  2. Graphemes: what the caret steps over. "e" + U+0301 is a single grapheme.
//  3. Display columns: terminal cells a grapheme occupies (CJK and emoji take 2).
package grapheme

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Count returns the number of grapheme clusters in s.
func Count(s string) int {
	return uniseg.GraphemeClusterCount(s)
}

// At returns the grapheme cluster at index idx, or "" when idx is out of range.
func At(s string, idx int) string {
	if idx < 0 {
		return ""
	}

	i := 0
	state := -1
	for len(s) > 0 {
		cluster, rest, _, newState := uniseg.StepString(s, state)
		if i == idx {
			return cluster
		}
		i++
		s = rest
		state = newState
	}
	return ""
}

// ToByteOffset converts a grapheme index to a byte offset.
// Returns 0 for idx <= 0 and len(s) when idx >= Count(s).
func ToByteOffset(s string, idx int) int {
	if idx <= 0 {
		return 0
	}

	i := 0
	state := -1
	original := s
	for len(s) > 0 {
		_, rest, _, newState := uniseg.StepString(s, state)
		i++
		if i == idx {
			return len(original) - len(rest)
		}
		s = rest
		state = newState
	}
	return len(original)
}

// Slice returns the graphemes in [start, end) as a substring.
// Out-of-range bounds are clamped; an empty or inverted range yields "".
func Slice(s string, start, end int) string {
	if start < 0 {
		start = 0
	}
	if end <= start {
		return ""
	}

	startByte := ToByteOffset(s, start)
	endByte := ToByteOffset(s, end)
	if startByte >= len(s) {
		return ""
	}
	return s[startByte:endByte]
}

// Head returns the first n graphemes of s.
func Head(s string, n int) string {
	return s[:ToByteOffset(s, n)]
}

// Tail returns s with its first n graphemes removed.
func Tail(s string, n int) string {
	return s[ToByteOffset(s, n):]
}

// Insert inserts text before the grapheme at idx.
func Insert(s string, idx int, text string) string {
	off := ToByteOffset(s, idx)
	return s[:off] + text + s[off:]
}

// DeleteRange removes the graphemes in [start, end).
func DeleteRange(s string, start, end int) string {
	startByte := ToByteOffset(s, start)
	endByte := ToByteOffset(s, end)
	if endByte < startByte {
		return s
	}
	return s[:startByte] + s[endByte:]
}

// DisplayWidth returns the terminal width of a single cluster.
func DisplayWidth(cluster string) int {
	if cluster == "" {
		return 0
	}
	return runewidth.StringWidth(cluster)
}

// StringDisplayWidth returns the terminal width of s.
func StringDisplayWidth(s string) int {
	return runewidth.StringWidth(s)
}

// Iterator walks the grapheme clusters of a string front to back.
//
//	it := grapheme.NewIterator("héllo")
//	for it.Next() {
//	    fmt.Println(it.Index(), it.Cluster())
//	}
type Iterator struct {
	original string
	rest     string
	state    int
	cluster  string
	bytePos  int
	index    int
}

// NewIterator returns an iterator positioned before the first cluster of s.
func NewIterator(s string) *Iterator {
	return &Iterator{
		original: s,
		rest:     s,
		state:    -1,
		index:    -1,
	}
}

// Next advances to the next cluster and reports whether one exists.
func (it *Iterator) Next() bool {
	if len(it.rest) == 0 {
		return false
	}

	it.bytePos = len(it.original) - len(it.rest)
	it.index++

	cluster, rest, _, newState := uniseg.StepString(it.rest, it.state)
	it.cluster = cluster
	it.rest = rest
	it.state = newState
	return true
}

// Cluster returns the current cluster.
func (it *Iterator) Cluster() string { return it.cluster }

// BytePos returns the byte offset of the current cluster.
func (it *Iterator) BytePos() int { return it.bytePos }

// Index returns the grapheme index of the current cluster, -1 before Next.
func (it *Iterator) Index() int { return it.index }

// Split returns the clusters of s in order.
func Split(s string) []string {
	clusters := make([]string, 0, len(s))
	it := NewIterator(s)
	for it.Next() {
		clusters = append(clusters, it.Cluster())
	}
	return clusters
}

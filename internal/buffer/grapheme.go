package buffer

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// GraphemeCount returns the number of grapheme clusters in s.
// For example: "hello" = 5, "h😀llo" = 5.
func GraphemeCount(s string) int {
	return uniseg.GraphemeClusterCount(s)
}

// GraphemeAt returns the grapheme cluster at index idx.
// Returns "" if idx is out of bounds or negative.
func GraphemeAt(s string, idx int) string {
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

// GraphemeToByteOffset converts a grapheme index to a byte offset.
// Returns len(s) if idx >= grapheme count and 0 if idx <= 0.
func GraphemeToByteOffset(s string, idx int) int {
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

// ByteToGraphemeOffset converts a byte offset to a grapheme index.
// An offset inside a cluster maps to that cluster's index; offsets past the
// end map to the grapheme count.
func ByteToGraphemeOffset(s string, byteOffset int) int {
	if byteOffset <= 0 {
		return 0
	}
	if byteOffset >= len(s) {
		return GraphemeCount(s)
	}

	i := 0
	pos := 0
	state := -1
	for len(s) > 0 {
		cluster, rest, _, newState := uniseg.StepString(s, state)
		next := pos + len(cluster)
		if byteOffset < next {
			return i
		}
		i++
		pos = next
		s = rest
		state = newState
	}
	return i
}

// SliceByGraphemes returns the substring between grapheme indices start and
// end (exclusive). Returns "" for invalid ranges.
func SliceByGraphemes(s string, start, end int) string {
	if start < 0 {
		start = 0
	}
	if end < start {
		return ""
	}

	startByte := GraphemeToByteOffset(s, start)
	endByte := GraphemeToByteOffset(s, end)
	if startByte >= len(s) {
		return ""
	}
	return s[startByte:min(endByte, len(s))]
}

// InsertAtGrapheme inserts text at grapheme index idx.
func InsertAtGrapheme(s string, idx int, text string) string {
	off := GraphemeToByteOffset(s, idx)
	return s[:off] + text + s[off:]
}

// DisplayWidth returns the width of s in terminal cells.
func DisplayWidth(s string) int {
	return runewidth.StringWidth(s)
}

package pairing

import "errors"

// Reasons carried by Blocked actions. Check them with errors.Is.
var (
	// ErrUnmatchedCloser blocks typing a closing delimiter that has nothing
	// to move over.
	ErrUnmatchedCloser = errors.New("unmatched closer")

	// ErrUnmatchedDelimiter blocks deleting a delimiter whose syntactic
	// match cannot be resolved.
	ErrUnmatchedDelimiter = errors.New("unmatched delimiter")

	// ErrSubstituteDelimiter blocks replacing a delimiter in place.
	ErrSubstituteDelimiter = errors.New("cannot substitute delimiter")
)

// ErrInvalidTable is returned when a delimiter table cannot be built.
var ErrInvalidTable = errors.New("invalid delimiter table")

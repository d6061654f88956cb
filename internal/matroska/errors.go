package matroska

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a parse failure.
type ErrorKind int

const (
	NotMatroska ErrorKind = iota + 1
	Truncated
	MalformedID
	MalformedTrack
	MalformedBlock
)

func (k ErrorKind) String() string {
	switch k {
	case NotMatroska:
		return "not matroska"
	case Truncated:
		return "truncated"
	case MalformedID:
		return "malformed id"
	case MalformedTrack:
		return "malformed track"
	case MalformedBlock:
		return "malformed block"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseError is returned by every parsing entry point of this package.
// Offset is the absolute byte offset in the container where the problem was found.
type ParseError struct {
	Kind   ErrorKind
	Offset int
	Msg    string
}

func (e *ParseError) Error() string {
	if e.Msg == "" {
		return "matroska: " + e.Kind.String()
	}
	return fmt.Sprintf("matroska: %s at offset %d: %s", e.Kind, e.Offset, e.Msg)
}

// Is matches any ParseError of the same kind, so the Err* values below work
// with errors.Is regardless of offset and message.
func (e *ParseError) Is(target error) bool {
	t, ok := target.(*ParseError)
	return ok && t.Kind == e.Kind
}

var (
	ErrNotMatroska    = &ParseError{Kind: NotMatroska}
	ErrTruncated      = &ParseError{Kind: Truncated}
	ErrMalformedID    = &ParseError{Kind: MalformedID}
	ErrMalformedTrack = &ParseError{Kind: MalformedTrack}
	ErrMalformedBlock = &ParseError{Kind: MalformedBlock}
)

var ErrNotOpened = errors.New("matroska: session not opened")

// KindOf returns the kind of the first ParseError in err's chain, or 0.
func KindOf(err error) ErrorKind {
	var perr *ParseError
	if errors.As(err, &perr) {
		return perr.Kind
	}
	return 0
}

func newError(kind ErrorKind, offset int, format string, args ...any) *ParseError {
	return &ParseError{Kind: kind, Offset: offset, Msg: fmt.Sprintf(format, args...)}
}

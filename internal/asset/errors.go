package asset

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by the descriptor packages wraps exactly
// one of these, so callers can branch with errors.Is without reading messages.
var (
	// ErrArgument marks a caller-supplied value that violates a precondition.
	ErrArgument = errors.New("invalid argument")
	// ErrParse marks on-disk content that is not valid for the expected format.
	ErrParse = errors.New("malformed content")
	// ErrIO marks a failed read, write, create, or delete.
	ErrIO = errors.New("i/o failure")
)

// Error describes a failed descriptor operation.
type Error struct {
	// Op is the operation that failed, e.g. "item.LoadFromFile".
	Op string
	// Path is the file involved, if any.
	Path string
	// Kind is one of ErrArgument, ErrParse, ErrIO.
	Kind error
	// Err is the underlying cause. May be nil for argument errors.
	Err error
}

func (e *Error) Error() string {
	msg := e.Op + ": " + e.Kind.Error()
	if e.Path != "" {
		msg += fmt.Sprintf(" %q", e.Path)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// ArgumentError returns an ErrArgument-kind error with a formatted reason.
func ArgumentError(op, path, format string, args ...any) error {
	return &Error{Op: op, Path: path, Kind: ErrArgument, Err: fmt.Errorf(format, args...)}
}

// ParseError wraps err as an ErrParse-kind error.
func ParseError(op, path string, err error) error {
	return &Error{Op: op, Path: path, Kind: ErrParse, Err: err}
}

// IOError wraps err as an ErrIO-kind error.
func IOError(op, path string, err error) error {
	return &Error{Op: op, Path: path, Kind: ErrIO, Err: err}
}

// KindOf reports which taxonomy kind err carries, or nil if none.
func KindOf(err error) error {
	for _, k := range []error{ErrArgument, ErrParse, ErrIO} {
		if errors.Is(err, k) {
			return k
		}
	}
	return nil
}

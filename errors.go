package profctl

import (
	"errors"
	"fmt"
)

// Code enumerates the result codes returned by property accessors, Futures,
// and Database-port operations. It mirrors the taxonomy the UI layer
// ultimately surfaces to the user, and is deliberately small and closed:
// every accessor in this package returns one of these, never a bespoke error
// type of its own.
type Code int

const (
	// Success indicates the operation completed normally.
	Success Code = iota
	// UnknownError indicates a non-specific failure.
	UnknownError
	// Timeout indicates a Future wait expired before completion.
	Timeout
	// NotLoaded indicates the requested data has not yet arrived.
	NotLoaded
	// InvalidArgument indicates a nil out-pointer or malformed argument.
	InvalidArgument
	// NotSupported indicates the operation is not implemented for this kind.
	NotSupported
	// ReadOnlyError indicates a setter was called on a read-only property.
	ReadOnlyError
	// MemoryAllocError indicates a worker failed to allocate a result.
	MemoryAllocError
	// InvalidEnum indicates a property id outside the object's declared
	// range, or inside the range but unhandled by the object.
	InvalidEnum
	// InvalidType indicates a primitive accessor was called against a cell
	// or property holding a different primitive type.
	InvalidType
	// OutOfRange indicates an indexed property's index exceeded num_entries.
	OutOfRange
	// Cancelled indicates a Future was interrupted before completion.
	Cancelled
	// Pending indicates a Future has not yet reached a terminal state.
	Pending
	// Duplicate indicates a request was already satisfied by another
	// in-flight Future and was joined rather than re-executed.
	Duplicate
)

func (c Code) String() string {
	switch c {
	case Success:
		return "Success"
	case UnknownError:
		return "UnknownError"
	case Timeout:
		return "Timeout"
	case NotLoaded:
		return "NotLoaded"
	case InvalidArgument:
		return "InvalidArgument"
	case NotSupported:
		return "NotSupported"
	case ReadOnlyError:
		return "ReadOnlyError"
	case MemoryAllocError:
		return "MemoryAllocError"
	case InvalidEnum:
		return "InvalidEnum"
	case InvalidType:
		return "InvalidType"
	case OutOfRange:
		return "OutOfRange"
	case Cancelled:
		return "Cancelled"
	case Pending:
		return "Pending"
	case Duplicate:
		return "Duplicate"
	default:
		return fmt.Sprintf("Code(%d)", int(c))
	}
}

// Error implements the error interface so a Code can be returned, wrapped,
// and matched with errors.Is directly.
func (c Code) Error() string { return c.String() }

// codeError pairs a Code with contextual detail, the way a database-reported
// error becomes a worker's terminal result unchanged (§7) while still
// carrying a message for the progress callback.
type codeError struct {
	code Code
	msg  string
}

func (e *codeError) Error() string { return e.msg }

func (e *codeError) Unwrap() error { return e.code }

// Wrap attaches a human-readable message to a Code, preserving errors.Is
// matching against the Code itself.
func Wrap(code Code, format string, args ...any) error {
	return &codeError{code: code, msg: fmt.Sprintf("%s: %s", code, fmt.Sprintf(format, args...))}
}

// CodeOf extracts the Code from an error produced by Wrap, or UnknownError
// if err does not wrap a Code.
func CodeOf(err error) Code {
	if err == nil {
		return Success
	}
	var ce *codeError
	if errors.As(err, &ce) {
		return ce.code
	}
	var c Code
	if errors.As(err, &c) {
		return c
	}
	return UnknownError
}

// Package errors provides structured error reporting for modal sheets.
//
// Gesture and API misuse never produces an error: the engine degrades to a
// no-op. Errors here cover programmer mistakes (a registry accessed outside
// its scope), configuration and scenario loading, and panics recovered from
// host callbacks.
package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindUsage indicates an API used outside its required scope.
	KindUsage
	// KindConfig indicates invalid or unreadable configuration.
	KindConfig
	// KindScenario indicates a replay scenario that could not be run.
	KindScenario
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindUsage:
		return "usage"
	case KindConfig:
		return "config"
	case KindScenario:
		return "scenario"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// SheetError represents a structured error raised by the sheet packages.
type SheetError struct {
	// Op is the operation that failed (e.g., "sheet.RegistryFromContext").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// Sheet is the name of the sheet involved, if any.
	Sheet string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *SheetError) Error() string {
	if e.Sheet != "" {
		return fmt.Sprintf("%s [%s] sheet=%s: %v", e.Op, e.Kind, e.Sheet, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *SheetError) Unwrap() error {
	return e.Err
}

// Is matches targets built by IsKind, so errors.Is can find a kind anywhere
// in a wrapped or joined tree.
func (e *SheetError) Is(target error) bool {
	k, ok := target.(kindTarget)
	return ok && e.Kind == ErrorKind(k)
}

type kindTarget ErrorKind

func (k kindTarget) Error() string {
	return "sheet error of kind " + ErrorKind(k).String()
}

// IsKind reports whether err is a *SheetError of the given kind anywhere in
// its tree, including errors combined with errors.Join.
func IsKind(err error, kind ErrorKind) bool {
	return stderrors.Is(err, kindTarget(kind))
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "sheet.onClose").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// ErrorHandler receives errors reported by the sheet packages.
type ErrorHandler interface {
	// HandleError is called when an error is reported.
	HandleError(err *SheetError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}

package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrDegenerateInput is returned when statistics are requested over an
	// empty document set or empty index; means and extrema are undefined.
	ErrDegenerateInput = errors.New("degenerate input")
	// ErrInsufficientVocabulary is returned when pair queries are requested
	// but the index holds fewer than two distinct keywords.
	ErrInsufficientVocabulary = errors.New("insufficient vocabulary")
	// ErrInconsistentIndex signals a mismatch between the inverted index
	// and the document set it was built from.
	ErrInconsistentIndex = errors.New("inconsistent index")
	ErrInvalidInput      = errors.New("invalid input")
	ErrSinkFailure       = errors.New("sink write failed")
	ErrInternal          = errors.New("internal error")
)

type AppError struct {
	Err      error
	Message  string
	ExitCode int
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Err.Error(), e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(sentinel error, exitCode int, message string) *AppError {
	return &AppError{
		Err:      sentinel,
		Message:  message,
		ExitCode: exitCode,
	}
}

func Newf(sentinel error, exitCode int, format string, args ...any) *AppError {
	return &AppError{
		Err:      sentinel,
		Message:  fmt.Sprintf(format, args...),
		ExitCode: exitCode,
	}
}

// ExitCode maps an error to a process exit code so failure classes are
// distinguishable from shell scripts driving the generator.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.ExitCode
	}

	switch {
	case errors.Is(err, ErrInvalidInput):
		return 2
	case errors.Is(err, ErrDegenerateInput):
		return 3
	case errors.Is(err, ErrInsufficientVocabulary):
		return 4
	case errors.Is(err, ErrInconsistentIndex):
		return 5
	case errors.Is(err, ErrSinkFailure):
		return 6
	default:
		return 1
	}
}

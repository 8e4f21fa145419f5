// Package errs defines the error taxonomy shared by every stage of a
// configure pass. Callers classify failures with errors.Is and errors.As.
package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrModelIncomplete means required workspace or project state is absent.
	// It aborts construction of the affected artifact only.
	ErrModelIncomplete = errors.New("configuration incomplete")

	// ErrPersistedUnreadable means an existing artifact file could not be parsed.
	ErrPersistedUnreadable = errors.New("persisted artifact unreadable")

	// ErrWriteFailure means emitting an artifact to disk failed.
	ErrWriteFailure = errors.New("artifact write failed")

	// ErrRenderFailure means an artifact's template could not be executed.
	ErrRenderFailure = errors.New("artifact render failed")
)

// MaterializationError reports an include cycle or a broken graph invariant.
// It is fatal to the whole pass.
type MaterializationError struct {
	Chain  []string
	Reason string
}

// Error implements the error interface.
func (e *MaterializationError) Error() string {
	if len(e.Chain) == 0 {
		return "materialization error: " + e.Reason
	}
	return fmt.Sprintf("materialization error: %s: %s", e.Reason, strings.Join(e.Chain, " -> "))
}

// ModelIncomplete wraps ErrModelIncomplete with a formatted detail.
func ModelIncomplete(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrModelIncomplete, fmt.Sprintf(format, args...))
}

// Class names the taxonomy bucket of err for reports.
func Class(err error) string {
	var mErr *MaterializationError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &mErr):
		return "materialization"
	case errors.Is(err, ErrModelIncomplete):
		return "model_incomplete"
	case errors.Is(err, ErrPersistedUnreadable):
		return "persisted_unreadable"
	case errors.Is(err, ErrWriteFailure):
		return "write_failure"
	case errors.Is(err, ErrRenderFailure):
		return "render_failure"
	default:
		return "internal"
	}
}

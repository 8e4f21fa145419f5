package errs

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaterializationError_Message(t *testing.T) {
	err := &MaterializationError{Chain: []string{"artifact.a", "artifact.b", "artifact.a"}, Reason: "include cycle"}
	assert.Equal(t, "materialization error: include cycle: artifact.a -> artifact.b -> artifact.a", err.Error())

	bare := &MaterializationError{Reason: "unknown kind"}
	assert.Equal(t, "materialization error: unknown kind", bare.Error())
}

func TestModelIncomplete_Wraps(t *testing.T) {
	err := ModelIncomplete("no value for %q", "workspace.project_name")
	assert.ErrorIs(t, err, ErrModelIncomplete)
	assert.Contains(t, err.Error(), "workspace.project_name")
}

func TestClass(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "materialization", err: fmt.Errorf("wrap: %w", &MaterializationError{Reason: "x"}), want: "materialization"},
		{name: "model incomplete", err: ModelIncomplete("x"), want: "model_incomplete"},
		{name: "unreadable", err: fmt.Errorf("%w: bad xml", ErrPersistedUnreadable), want: "persisted_unreadable"},
		{name: "write", err: fmt.Errorf("%w: %w", ErrWriteFailure, os.ErrPermission), want: "write_failure"},
		{name: "render", err: fmt.Errorf("%w: boom", ErrRenderFailure), want: "render_failure"},
		{name: "other", err: errors.New("plain"), want: "internal"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Class(tc.err))
		})
	}
}

package ctxlog

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromContext_Missing(t *testing.T) {
	logger := FromContext(context.Background())
	assert.NotNil(t, logger)
	logger.Info("goes nowhere")
}

func TestWith_AddsAttributes(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	ctx := With(WithLogger(context.Background(), logger), "artifact", "artifact.lib_build")
	FromContext(ctx).Info("resolved")

	assert.Contains(t, buf.String(), "artifact=artifact.lib_build")
	assert.Contains(t, buf.String(), "msg=resolved")
}

package infrastructure

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tonechas/moodle-workshop-group-grades/internal/shared/testutil"
)

func TestRunIDHandler_InjectsRunIDFromContext(t *testing.T) {
	logger, capture := testutil.NewLogger(t)
	wrapped := slog.New(&runIDHandler{Handler: logger.Handler()})

	ctx := WithRunID(context.Background(), "run-123")
	wrapped.InfoContext(ctx, "stage complete", slog.Int("rows", 4))

	require.True(t, capture.HasMessage(slog.LevelInfo, "stage complete"))
	assert.True(t, capture.HasAttr("run_id", "run-123"))
	assert.True(t, capture.HasAttr("rows", int64(4)))
}

func TestRunIDHandler_NoRunIDNoAttr(t *testing.T) {
	logger, capture := testutil.NewLogger(t)
	wrapped := slog.New(&runIDHandler{Handler: logger.Handler()})

	wrapped.InfoContext(context.Background(), "stage complete")

	records := capture.Records()
	require.Len(t, records, 1)
	_, ok := records[0].Attrs["run_id"]
	assert.False(t, ok)
}

func TestRunIDHandler_PreservedAcrossWith(t *testing.T) {
	logger, capture := testutil.NewLogger(t)
	wrapped := slog.New(&runIDHandler{Handler: logger.Handler()}).With("component", "pipeline")

	ctx := WithRunID(context.Background(), "run-456")
	wrapped.WarnContext(ctx, "report row matches no roster participant")

	assert.True(t, capture.HasAttr("run_id", "run-456"))
	assert.True(t, capture.HasAttr("component", "pipeline"))
}

func TestGetRunID(t *testing.T) {
	assert.Empty(t, GetRunID(context.Background()))

	ctx := ContextWithRunID(context.Background())
	id := GetRunID(ctx)
	assert.NotEmpty(t, id)

	// A fresh context gets a fresh ID.
	other := ContextWithRunID(context.Background())
	assert.NotEqual(t, id, GetRunID(other))
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLogLevel("debug"))
	assert.Equal(t, slog.LevelWarn, parseLogLevel("WARN"))
	assert.Equal(t, slog.LevelError, parseLogLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLogLevel("anything else"))
}

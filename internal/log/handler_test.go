package log

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/sitegrid/fm-manager/internal/middleware"
	"github.com/sitegrid/fm-manager/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextHandler_AddsCorrelationIDAndUser(t *testing.T) {
	var b bytes.Buffer
	logger := slog.New(New(slog.NewJSONHandler(&b, nil)))

	ctx := middleware.NewContextWithCorrelationID(context.Background(), "some-id")
	ctx = model.NewContextWithUser(ctx, &model.User{ID: 42})

	logger.InfoContext(ctx, "info")

	got := make(map[string]any)
	err := json.Unmarshal(b.Bytes(), &got)
	require.NoError(t, err)

	assert.Equal(t, "some-id", got[middleware.RequestLoggerKeyCorrelationID])
	assert.Equal(t, float64(42), got[middleware.RequestLoggerKeyUser])
}

func TestContextHandler_NoContextValues(t *testing.T) {
	var b bytes.Buffer
	logger := slog.New(New(slog.NewJSONHandler(&b, nil)))

	logger.Info("info")

	got := make(map[string]any)
	err := json.Unmarshal(b.Bytes(), &got)
	require.NoError(t, err)

	assert.NotContains(t, got, middleware.RequestLoggerKeyCorrelationID)
	assert.NotContains(t, got, middleware.RequestLoggerKeyUser)
}

package requestid_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studenthub/pkg/logger"
)

func TestGenerateRequestID(t *testing.T) {
	t.Run("generates valid UUID", func(t *testing.T) {
		id := logger.GenerateRequestID()

		_, err := uuid.Parse(id)
		require.NoError(t, err)
	})

	t.Run("generates unique identifiers", func(t *testing.T) {
		id1 := logger.GenerateRequestID()
		id2 := logger.GenerateRequestID()

		assert.NotEqual(t, id1, id2)
	})
}

func TestNewRequestIDContext(t *testing.T) {
	t.Run("stores provided request ID", func(t *testing.T) {
		requestID := "test-request-id-123"
		ctx := logger.NewRequestIDContext(context.Background(), requestID)

		retrieved, ok := logger.GetRequestID(ctx)
		require.True(t, ok)
		assert.Equal(t, requestID, retrieved)
	})

	t.Run("generates request ID when empty string given", func(t *testing.T) {
		ctx := logger.NewRequestIDContext(context.Background(), "")

		retrieved, ok := logger.GetRequestID(ctx)
		require.True(t, ok)
		require.NotEmpty(t, retrieved)

		_, err := uuid.Parse(retrieved)
		assert.NoError(t, err)
	})

	t.Run("GetRequestID reports absence", func(t *testing.T) {
		_, ok := logger.GetRequestID(context.Background())
		assert.False(t, ok)
	})
}

func TestWithRequestID(t *testing.T) {
	t.Run("adds request ID field when present in context", func(t *testing.T) {
		baseLogger, err := logger.NewLogger(logger.Development, "debug")
		require.NoError(t, err)

		requestID := "test-request-id-456"
		ctx := logger.NewRequestIDContext(context.Background(), requestID)

		loggerWithID := baseLogger.WithRequestID(ctx)

		assert.NotSame(t, baseLogger, loggerWithID, "WithRequestID should return a new logger when request ID exists")

		loggerWithID.Info(ctx, "test message with request ID")
	})

	t.Run("returns original logger when no request ID in context", func(t *testing.T) {
		baseLogger, err := logger.NewLogger(logger.Development, "debug")
		require.NoError(t, err)

		ctx := context.Background()

		resultLogger := baseLogger.WithRequestID(ctx)

		assert.Same(t, baseLogger, resultLogger, "WithRequestID should return the same logger when no request ID exists")
	})
}

package logger

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestContextLogger(t *testing.T) {
	logger := logrus.New()
	entry := logger.WithField("test", "value")

	// Test WithLogger
	ctx := context.Background()
	ctx = WithLogger(ctx, entry)

	// Test FromContext
	retrieved := FromContext(ctx)
	assert.Equal(t, "value", retrieved.Data["test"])

	// Test with nil context
	nilEntry := FromContext(context.Background())
	assert.NotNil(t, nilEntry)
}

func TestContextJobID(t *testing.T) {
	ctx := context.Background()

	// Test WithJobID
	jobID := "test-job-123"
	ctx = WithJobID(ctx, jobID)

	// Test GetJobID
	retrieved := GetJobID(ctx)
	assert.Equal(t, jobID, retrieved)

	// Test with no job ID
	emptyID := GetJobID(context.Background())
	assert.Empty(t, emptyID)
}

func TestNewJobID(t *testing.T) {
	first := NewJobID()
	second := NewJobID()

	assert.NotEmpty(t, first)
	assert.NotEmpty(t, second)
	assert.NotEqual(t, first, second)
}

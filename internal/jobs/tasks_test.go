package jobs

import (
	"context"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAutoClockOutTask(t *testing.T) {
	task, err := NewAutoClockOutTask(time.Now())
	require.NoError(t, err)
	assert.Equal(t, TaskAttendanceAutoClockOut, task.Type())
}

func TestAutoClockOutHandlerSkipsBadPayload(t *testing.T) {
	handler := AutoClockOutHandler(nil)
	task := asynq.NewTask(TaskAttendanceAutoClockOut, []byte("not json"))

	err := handler(context.Background(), task)
	assert.ErrorIs(t, err, asynq.SkipRetry)
}

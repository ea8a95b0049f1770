package tasks

import (
	"context"
	"log/slog"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRun(t *testing.T) {
	bgTasks := New(slog.Default(), 3, 10)
	bgTasks.Run()
	var taskRuns atomic.Int32
	for i := 0; i < 5; i++ {
		bgTasks.Add(func() { taskRuns.Add(1) })
	}
	bgTasks.Shutdown(context.Background())
	assert.Equal(t, int32(5), taskRuns.Load())
}

func TestRunRecoversPanickingTask(t *testing.T) {
	bgTasks := New(slog.Default(), 1, 10)
	bgTasks.Run()
	ran := false
	bgTasks.Add(func() { panic("boom") })
	bgTasks.Add(func() { ran = true })
	bgTasks.Shutdown(context.Background())
	assert.True(t, ran)
}

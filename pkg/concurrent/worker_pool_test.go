package concurrent

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_ResultsKeepTaskOrder(t *testing.T) {
	tasks := []Task{
		{Name: "slow", Work: func(ctx context.Context) (interface{}, error) {
			time.Sleep(30 * time.Millisecond)
			return "first", nil
		}},
		{Name: "fast", Work: func(ctx context.Context) (interface{}, error) {
			return "second", nil
		}},
	}

	results, err := Run(context.Background(), tasks, time.Second)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "slow", results[0].Name)
	assert.Equal(t, "first", results[0].Value)
	assert.Equal(t, "fast", results[1].Name)
	assert.Equal(t, "second", results[1].Value)
	assert.Greater(t, results[0].Elapsed, results[1].Elapsed)
}

func TestRun_TaskErrorsAreReportedPerResult(t *testing.T) {
	boom := errors.New("boom")
	tasks := []Task{
		{Name: "ok", Work: func(ctx context.Context) (interface{}, error) { return 1, nil }},
		{Name: "bad", Work: func(ctx context.Context) (interface{}, error) { return nil, boom }},
	}

	results, err := Run(context.Background(), tasks, time.Second)
	require.NoError(t, err)
	assert.NoError(t, results[0].Err)
	assert.ErrorIs(t, results[1].Err, boom)

	first := FirstError(results)
	require.Error(t, first)
	assert.ErrorIs(t, first, boom)
	assert.Contains(t, first.Error(), "bad")
}

func TestRun_Timeout(t *testing.T) {
	tasks := []Task{
		{Name: "quick", Work: func(ctx context.Context) (interface{}, error) { return 1, nil }},
		{Name: "stuck", Work: func(ctx context.Context) (interface{}, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		}},
	}

	_, err := Run(context.Background(), tasks, 20*time.Millisecond)
	require.Error(t, err)

	var timeout *TimeoutError
	require.ErrorAs(t, err, &timeout)
	assert.Equal(t, 2, timeout.Total)
	assert.Less(t, timeout.Received, 2)
	assert.Contains(t, timeout.Error(), "of 2 tasks finished")
}

func TestRun_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tasks := []Task{
		{Name: "never", Work: func(ctx context.Context) (interface{}, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		}},
	}

	_, err := Run(ctx, tasks, time.Second)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun_EmptyTasks(t *testing.T) {
	results, err := Run(context.Background(), nil, time.Second)
	require.NoError(t, err)
	assert.Nil(t, results)
}

func TestRun_MoreTasksThanWorkers(t *testing.T) {
	tasks := make([]Task, 10)
	for i := range tasks {
		i := i
		tasks[i] = Task{Name: "n", Work: func(ctx context.Context) (interface{}, error) {
			return i, nil
		}}
	}

	results, err := Run(context.Background(), tasks, time.Second)
	require.NoError(t, err)
	require.Len(t, results, 10)
	for i, result := range results {
		assert.Equal(t, i, result.Value)
	}
}

func TestFirstError_AllHealthy(t *testing.T) {
	results := []Result{{Name: "a"}, {Name: "b"}}
	assert.NoError(t, FirstError(results))
}

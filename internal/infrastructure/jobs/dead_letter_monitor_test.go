package jobs

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"producer-payout.backend/pkg/logger"
)

type counterStub struct {
	mu    sync.Mutex
	count int64
	err   error
	calls int
}

func (s *counterStub) CountUnresolved(context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return s.count, s.err
}

func (s *counterStub) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

type gaugeStub struct {
	values []int64
}

func (g *gaugeStub) SetUnresolvedFailures(n int64) {
	g.values = append(g.values, n)
}

func observeLogs(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	prev := logger.GetLogger()
	logger.SetLogger(zap.New(core))
	t.Cleanup(func() { logger.SetLogger(prev) })
	return logs
}

func TestDeadLetterMonitor_WarnsOnBacklog(t *testing.T) {
	logs := observeLogs(t)
	counter := &counterStub{count: 3}
	gauge := &gaugeStub{}
	job := NewDeadLetterMonitorJob(counter, gauge, time.Minute)

	job.check(context.Background())

	require.Equal(t, []int64{3}, gauge.values)
	warnings := logs.FilterLevelExact(zapcore.WarnLevel).All()
	require.Len(t, warnings, 1)
	require.Equal(t, int64(3), warnings[0].ContextMap()["count"])
}

func TestDeadLetterMonitor_QuietWhenEmpty(t *testing.T) {
	logs := observeLogs(t)
	gauge := &gaugeStub{}
	job := NewDeadLetterMonitorJob(&counterStub{}, gauge, time.Minute)

	job.check(context.Background())

	require.Equal(t, []int64{0}, gauge.values)
	require.Zero(t, logs.FilterLevelExact(zapcore.WarnLevel).Len())
}

func TestDeadLetterMonitor_CountError(t *testing.T) {
	logs := observeLogs(t)
	gauge := &gaugeStub{}
	job := NewDeadLetterMonitorJob(&counterStub{err: errors.New("db down")}, gauge, time.Minute)

	job.check(context.Background())

	require.Empty(t, gauge.values)
	require.Equal(t, 1, logs.FilterLevelExact(zapcore.ErrorLevel).Len())
}

func TestDeadLetterMonitor_DefaultInterval(t *testing.T) {
	job := NewDeadLetterMonitorJob(&counterStub{}, nil, 0)
	require.Equal(t, 5*time.Minute, job.interval)
	job.check(context.Background())
}

func TestStartStop_StopsByContext(t *testing.T) {
	counter := &counterStub{}
	job := NewDeadLetterMonitorJob(counter, nil, time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		job.Start(ctx)
		close(done)
	}()
	require.Eventually(t, func() bool { return counter.Calls() >= 2 }, time.Second, time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("job did not stop on context cancel")
	}
}

func TestStartStop_StopsByStopChannel(t *testing.T) {
	job := NewDeadLetterMonitorJob(&counterStub{}, nil, time.Millisecond)

	done := make(chan struct{})
	go func() {
		job.Start(context.Background())
		close(done)
	}()
	job.Stop()
	job.Stop()

	select {
	case <-done:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("job did not stop on Stop()")
	}
}

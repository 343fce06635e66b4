package jobs

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"producer-payout.backend/pkg/logger"
)

// UnresolvedCounter reports the size of the dead-letter backlog
type UnresolvedCounter interface {
	CountUnresolved(ctx context.Context) (int64, error)
}

// BacklogGauge exports the backlog size
type BacklogGauge interface {
	SetUnresolvedFailures(n int64)
}

// DeadLetterMonitorJob periodically reports unresolved reconciliation
// failures. It never replays them; operators do that through the admin API.
type DeadLetterMonitorJob struct {
	counter  UnresolvedCounter
	gauge    BacklogGauge
	interval time.Duration
	stop     chan struct{}
	stopOnce sync.Once
}

func NewDeadLetterMonitorJob(counter UnresolvedCounter, gauge BacklogGauge, interval time.Duration) *DeadLetterMonitorJob {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &DeadLetterMonitorJob{
		counter:  counter,
		gauge:    gauge,
		interval: interval,
		stop:     make(chan struct{}),
	}
}

func (j *DeadLetterMonitorJob) Start(ctx context.Context) {
	logger.Info(ctx, "Starting dead-letter monitor job", zap.Duration("interval", j.interval))

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	j.check(ctx)
	for {
		select {
		case <-ctx.Done():
			logger.Info(context.Background(), "Dead-letter monitor job stopped (context cancelled)")
			return
		case <-j.stop:
			logger.Info(ctx, "Dead-letter monitor job stopped")
			return
		case <-ticker.C:
			j.check(ctx)
		}
	}
}

func (j *DeadLetterMonitorJob) Stop() {
	j.stopOnce.Do(func() { close(j.stop) })
}

func (j *DeadLetterMonitorJob) check(ctx context.Context) {
	count, err := j.counter.CountUnresolved(ctx)
	if err != nil {
		logger.Error(ctx, "Failed to count unresolved reconciliation failures", zap.Error(err))
		return
	}

	if j.gauge != nil {
		j.gauge.SetUnresolvedFailures(count)
	}
	if count > 0 {
		logger.Warn(ctx, "Unresolved reconciliation failures pending operator action", zap.Int64("count", count))
	}
}

package jobs

import (
	"context"
	"time"

	"sellerconsole/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

const (
	// ReconciliationLockKey is shared by every instance of the service.
	ReconciliationLockKey = "sellerconsole:jobs:reconcile-notifications"

	minLockTTL = 30 * time.Second
)

// Reconciler is the command handler the job drives.
type Reconciler interface {
	Handle(ctx context.Context, cmd commands.ReconcileNotificationsCommand) (commands.ReconcileResult, error)
}

// ReconciliationJob re-dispatches notifications for recently changed entities
// on a cron schedule. Overlapping ticks are skipped, and across instances only
// the holder of ReconciliationLockKey runs a tick.
type ReconciliationJob struct {
	handler  Reconciler
	schedule string
	lookback time.Duration
	locker   Locker
	cron     *cron.Cron
	logger   logrus.FieldLogger
}

func NewReconciliationJob(
	handler Reconciler,
	schedule string,
	lookback time.Duration,
	locker Locker,
	logger logrus.FieldLogger,
) *ReconciliationJob {
	if locker == nil {
		locker = LocalLocker{}
	}
	return &ReconciliationJob{
		handler:  handler,
		schedule: schedule,
		lookback: lookback,
		locker:   locker,
		cron:     cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:   logger.WithField("component", "reconciliation_job"),
	}
}

// Start registers the schedule and starts the cron runner.
func (j *ReconciliationJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		_, _ = j.RunOnce(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.WithFields(logrus.Fields{
		"schedule": j.schedule,
		"lookback": j.lookback.String(),
	}).Info("reconciliation job started")
	return nil
}

// Stop stops scheduling and waits for a running tick to finish.
func (j *ReconciliationJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("reconciliation job stopped")
}

// RunOnce performs a single pass. ran is false when another runner holds the lease.
func (j *ReconciliationJob) RunOnce(ctx context.Context) (ran bool, err error) {
	cmd, err := commands.NewReconcileNotificationsCommand(j.lookback)
	if err != nil {
		return false, err
	}

	release, ok, err := j.locker.TryLock(ctx, ReconciliationLockKey, max(j.lookback, minLockTTL))
	if err != nil {
		j.logger.WithError(err).Error("reconciliation lock failed")
		return false, err
	}
	if !ok {
		j.logger.Debug("reconciliation skipped, another instance holds the lock")
		return false, nil
	}
	defer release()

	started := time.Now()
	result, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.WithError(err).Error("reconciliation failed")
		return true, err
	}

	fields := logrus.Fields{
		"sellers":     result.Sellers,
		"entities":    result.Entities,
		"created":     result.Created,
		"duplicates":  result.Duplicates,
		"alerts":      result.Alerts,
		"errors":      len(result.Errors),
		"duration_ms": time.Since(started).Milliseconds(),
	}
	for _, e := range result.Errors {
		j.logger.WithError(e).Warn("reconciliation dropped an item")
	}
	if result.Created > 0 || result.Alerts > 0 {
		j.logger.WithFields(fields).Info("reconciliation recovered notifications")
	} else {
		j.logger.WithFields(fields).Debug("reconciliation finished")
	}
	return true, nil
}

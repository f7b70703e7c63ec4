// Package jobs provides scheduled background tasks for the seller console.
//
// Jobs are cron-based (github.com/robfig/cron/v3) and started through
// JobManager:
//
//	job := jobs.NewReconciliationJob(reconcileHandler, "@every 1m", 15*time.Minute, locker, logger)
//	jobManager := jobs.NewJobManager(job)
//	if err := jobManager.StartAll(); err != nil {
//		return err
//	}
//	defer jobManager.StopAll()
//
// # Available Jobs
//
// ReconciliationJob replays the current state of orders and deliveries
// changed within the lookback through the notification dispatcher, which
// recovers events the best-effort change feed lost. Notification dedup makes
// replays harmless. The same tick alerts sellers about deliveries past their
// estimated delivery time.
//
// # Single runner
//
// With Redis configured, RedisLocker (github.com/bsm/redislock) leases each
// tick so one instance runs it. Without Redis, LocalLocker always grants.
package jobs

// Package maintenance runs the circulation sweeps once a day at fixed wall-clock times.
//
// Each Job gets its own goroutine that sleeps until the next occurrence of its time of day,
// runs, and goes back to sleep. Runs of the same job never overlap, whether they are triggered
// by the timer or by RunNow. The sweeps themselves are plain command handlers and do not depend
// on being called through a Scheduler.
//
//	scheduler, err := maintenance.NewScheduler(
//		[]maintenance.Job{
//			{Name: "expire-reservations", At: "00:00", Run: maintenance.SweepRunner(expireHandler, expirereservations.BuildCommand())},
//			{Name: "detect-overdue-loans", At: "01:00", Run: maintenance.SweepRunner(overdueHandler, detectoverdueloans.BuildCommand())},
//		},
//		maintenance.WithContextualLogger(logger),
//	)
//
//	scheduler.Start(ctx)
//	defer scheduler.Stop()
package maintenance

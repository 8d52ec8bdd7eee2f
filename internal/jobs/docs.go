// Package jobs provides the background tasks of the order service.
//
// # Available Jobs
//
//  1. PaymentPollJob runs on a robfig/cron schedule and advances orders in
//     awaiting_payment whose payment cards are all settled.
//  2. NotificationListenerJob keeps a LISTEN connection on the order event
//     channel and dispatches every event published by notify.PgNotifier.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(
//		jobs.NewPaymentPollJob(advanceHandler, "", log),
//		jobs.NewNotificationListenerJob(dsn, "", jobs.LogNotification(log), log),
//	)
//	if err := jobManager.StartAll(); err != nil {
//		return err
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Failed polls and unhandled notifications are logged and retried on the next
// tick or event. A failed start stops the jobs already running.
package jobs

package jobs

import (
	"context"
	"time"

	"orderflow/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// DefaultPaymentPollSchedule runs the poll every 30 seconds.
const DefaultPaymentPollSchedule = "*/30 * * * * *"

// paidOrdersAdvancer is satisfied by commands.AdvancePaidOrdersCommandHandler.
type paidOrdersAdvancer interface {
	Handle(ctx context.Context, c commands.AdvancePaidOrdersCommand) (int, error)
}

// PaymentPollJob moves orders whose ledger is fully settled out of
// awaiting_payment. It catches cards settled outside the API.
type PaymentPollJob struct {
	handler  paidOrdersAdvancer
	schedule string
	timeout  time.Duration
	cron     *cron.Cron
	log      zerolog.Logger
}

// NewPaymentPollJob creates the job. An empty schedule uses DefaultPaymentPollSchedule.
func NewPaymentPollJob(handler paidOrdersAdvancer, schedule string, log zerolog.Logger) *PaymentPollJob {
	if schedule == "" {
		schedule = DefaultPaymentPollSchedule
	}
	return &PaymentPollJob{
		handler:  handler,
		schedule: schedule,
		timeout:  20 * time.Second,
		cron:     cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		log:      log.With().Str("component", "payment_poll_job").Logger(),
	}
}

// Start registers the poll and starts the scheduler.
func (j *PaymentPollJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.Run); err != nil {
		return err
	}

	j.cron.Start()
	j.log.Info().Str("schedule", j.schedule).Msg("payment poll job started")
	return nil
}

// Run performs one poll.
func (j *PaymentPollJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	advanced, err := j.handler.Handle(ctx, commands.NewAdvancePaidOrdersCommand())
	if err != nil {
		j.log.Error().Err(err).Msg("payment poll failed")
		return
	}
	if advanced > 0 {
		j.log.Info().Int("advanced", advanced).Msg("paid orders advanced")
	}
}

// Stop stops the scheduler and waits for a running poll.
func (j *PaymentPollJob) Stop() {
	<-j.cron.Stop().Done()
	j.log.Info().Msg("payment poll job stopped")
}

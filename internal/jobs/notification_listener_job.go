package jobs

import (
	"context"
	"time"

	"orderflow/internal/adapters/out/notify"

	"github.com/lib/pq"
	"github.com/rs/zerolog"
)

// NotificationHandler receives every order event published on the channel.
type NotificationHandler func(ctx context.Context, m notify.Message) error

// NotificationListenerJob listens on the order event channel and hands each
// event to a handler. It is the consumer side of notify.PgNotifier.
type NotificationListenerJob struct {
	dsn     string
	channel string
	handler NotificationHandler
	log     zerolog.Logger

	listener *pq.Listener
	cancel   context.CancelFunc
	done     chan struct{}
}

func NewNotificationListenerJob(dsn, channel string, handler NotificationHandler, log zerolog.Logger) *NotificationListenerJob {
	if channel == "" {
		channel = notify.DefaultChannel
	}
	return &NotificationListenerJob{
		dsn:     dsn,
		channel: channel,
		handler: handler,
		log:     log.With().Str("component", "notification_listener_job").Logger(),
	}
}

// Start opens the listener connection and begins dispatching.
func (j *NotificationListenerJob) Start() error {
	j.listener = pq.NewListener(j.dsn, time.Second, time.Minute, j.onEvent)
	if err := j.listener.Listen(j.channel); err != nil {
		_ = j.listener.Close()
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	j.cancel = cancel
	j.done = make(chan struct{})
	go j.loop(ctx)

	j.log.Info().Str("channel", j.channel).Msg("notification listener started")
	return nil
}

func (j *NotificationListenerJob) loop(ctx context.Context) {
	defer close(j.done)
	ping := time.NewTicker(90 * time.Second)
	defer ping.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case n := <-j.listener.Notify:
			// nil after a reconnect; events sent meanwhile are lost
			if n == nil {
				continue
			}
			j.dispatch(ctx, n.Extra)
		case <-ping.C:
			if err := j.listener.Ping(); err != nil {
				j.log.Warn().Err(err).Msg("listener ping failed")
			}
		}
	}
}

func (j *NotificationListenerJob) dispatch(ctx context.Context, payload string) {
	m, err := notify.ParseMessage(payload)
	if err != nil {
		j.log.Warn().Err(err).Msg("malformed notification dropped")
		return
	}
	if err = j.handler(ctx, m); err != nil {
		j.log.Error().Err(err).Str("kind", m.Kind).Str("order", m.OrderID).Msg("notification not handled")
	}
}

func (j *NotificationListenerJob) onEvent(ev pq.ListenerEventType, err error) {
	switch ev {
	case pq.ListenerEventConnectionAttemptFailed, pq.ListenerEventDisconnected:
		j.log.Warn().Err(err).Msg("listener connection lost")
	case pq.ListenerEventReconnected:
		j.log.Info().Msg("listener reconnected")
	case pq.ListenerEventConnected:
	}
}

// Stop ends dispatching and closes the connection.
func (j *NotificationListenerJob) Stop() {
	if j.cancel == nil {
		return
	}
	j.cancel()
	<-j.done
	_ = j.listener.Close()
	j.log.Info().Msg("notification listener stopped")
}

// LogNotification is the default handler: it records the event for the
// participants' notification feed in the log.
func LogNotification(log zerolog.Logger) NotificationHandler {
	return func(_ context.Context, m notify.Message) error {
		log.Info().
			Str("kind", m.Kind).
			Str("order", m.Number).
			Str("requester", m.RequesterID).
			Str("provider", m.ProviderID).
			Msg("notify participants")
		return nil
	}
}

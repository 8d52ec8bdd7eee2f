package commands

import (
	"context"
	"errors"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/services"
	"orderflow/internal/core/ports"

	"github.com/rs/zerolog"
)

// errUnchanged is returned by a change function that decided nothing needs saving.
var errUnchanged = errors.New("order unchanged")

// Orchestrator carries what every order command handler shares: the unit of
// work factory, the capability check, the clock and the post-commit notifier.
//
// Every order command runs the same sequence inside one unit of work:
// load the order, authorize the actor, apply the change, update, commit, and
// only then emit the recorded events.
type Orchestrator struct {
	uowFactory UoWFactory
	notifier   ports.Notifier
	authorizer services.Authorizer
	now        func() time.Time
	log        zerolog.Logger
}

// OrchestratorOption customizes an Orchestrator.
type OrchestratorOption func(*Orchestrator)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) OrchestratorOption {
	return func(o *Orchestrator) { o.now = now }
}

func NewOrchestrator(uowFactory UoWFactory, notifier ports.Notifier, log zerolog.Logger, opts ...OrchestratorOption) *Orchestrator {
	o := &Orchestrator{
		uowFactory: uowFactory,
		notifier:   notifier,
		authorizer: services.NewAuthorizer(),
		now:        func() time.Time { return time.Now().UTC() },
		log:        log.With().Str("component", "orchestrator").Logger(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// loader resolves the order a command addresses.
type loader func(ctx context.Context, repo ports.OrderRepository) (*order.Order, error)

func byOrder(id kernel.UUID) loader {
	return func(ctx context.Context, repo ports.OrderRepository) (*order.Order, error) {
		return repo.Get(ctx, id)
	}
}

func byContract(id kernel.UUID) loader {
	return func(ctx context.Context, repo ports.OrderRepository) (*order.Order, error) {
		return repo.GetByContract(ctx, id)
	}
}

func byPaymentCard(id kernel.UUID) loader {
	return func(ctx context.Context, repo ports.OrderRepository) (*order.Order, error) {
		return repo.GetByPaymentCard(ctx, id)
	}
}

func byDeliveryItem(id kernel.UUID) loader {
	return func(ctx context.Context, repo ports.OrderRepository) (*order.Order, error) {
		return repo.GetByDeliveryItem(ctx, id)
	}
}

func byDeliveryFile(id kernel.UUID) loader {
	return func(ctx context.Context, repo ports.OrderRepository) (*order.Order, error) {
		return repo.GetByDeliveryFile(ctx, id)
	}
}

func byConfirmationBlock(id kernel.UUID) loader {
	return func(ctx context.Context, repo ports.OrderRepository) (*order.Order, error) {
		return repo.GetByConfirmationBlock(ctx, id)
	}
}

// mutate runs change against the loaded order in one unit of work.
func (h *Orchestrator) mutate(
	ctx context.Context,
	actor kernel.Actor,
	op services.Operation,
	load loader,
	change func(o *order.Order, now time.Time) error,
) (*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	o, err := load(ctx, repo)
	if err != nil {
		return nil, err
	}
	if err = h.authorizer.Authorize(actor, op, o); err != nil {
		return nil, err
	}

	from := o.Status()
	err = change(o, h.now())
	if errors.Is(err, errUnchanged) {
		return o, nil
	}
	if err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, o); err != nil {
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	if o.Status() != from {
		h.log.Info().
			Str("order", o.Number().String()).
			Str("from", from.String()).
			Str("to", o.Status().String()).
			Stringer("actor", actor).
			Msg("order status changed")
	}
	h.emit(ctx, uow.PullEvents()...)
	return o, nil
}

// emit hands events to the notifier. Failures are logged, never returned.
func (h *Orchestrator) emit(ctx context.Context, events ...order.Event) {
	if h.notifier == nil {
		return
	}
	for _, e := range events {
		if err := h.notifier.Emit(ctx, e); err != nil {
			h.log.Warn().Err(err).
				Str("event", string(e.Kind)).
				Str("order", e.Number.String()).
				Msg("notification failed")
		}
	}
}

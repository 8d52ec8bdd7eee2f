package commands

import (
	"context"
	"time"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/services"
)

type SelectConfirmationItemCommandHandler struct{ o *Orchestrator }

func NewSelectConfirmationItemCommandHandler(o *Orchestrator) SelectConfirmationItemCommandHandler {
	return SelectConfirmationItemCommandHandler{o: o}
}

func (h SelectConfirmationItemCommandHandler) Handle(ctx context.Context, c SelectConfirmationItemCommand) error {
	if err := c.Validate(); err != nil {
		return err
	}
	_, err := h.o.mutate(ctx, c.Actor(), services.OpAnswerConfirmation, byConfirmationBlock(c.BlockID()),
		func(o *order.Order, now time.Time) error {
			return o.SelectConfirmationItem(c.BlockID(), c.ItemID(), now)
		})
	return err
}

type AnswerConfirmationCommandHandler struct{ o *Orchestrator }

func NewAnswerConfirmationCommandHandler(o *Orchestrator) AnswerConfirmationCommandHandler {
	return AnswerConfirmationCommandHandler{o: o}
}

func (h AnswerConfirmationCommandHandler) Handle(ctx context.Context, c AnswerConfirmationCommand) error {
	if err := c.Validate(); err != nil {
		return err
	}
	_, err := h.o.mutate(ctx, c.Actor(), services.OpAnswerConfirmation, byConfirmationBlock(c.BlockID()),
		func(o *order.Order, now time.Time) error {
			return o.AnswerConfirmation(c.BlockID(), c.Content(), now)
		})
	return err
}

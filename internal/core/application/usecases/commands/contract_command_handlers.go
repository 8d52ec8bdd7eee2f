package commands

import (
	"context"
	"time"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/services"
	"orderflow/internal/core/ports"
)

// SignContractCommandHandler signs with the signature image the identity
// provider holds for the actor.
type SignContractCommandHandler struct {
	o        *Orchestrator
	identity ports.IdentityProvider
}

func NewSignContractCommandHandler(o *Orchestrator, identity ports.IdentityProvider) SignContractCommandHandler {
	return SignContractCommandHandler{o: o, identity: identity}
}

func (h SignContractCommandHandler) Handle(ctx context.Context, c SignContractCommand) error {
	if err := c.Validate(); err != nil {
		return err
	}
	who, err := h.identity.Lookup(ctx, c.Actor().UserID())
	if err != nil {
		return err
	}
	_, err = h.o.mutate(ctx, c.Actor(), services.OpSignContract, byContract(c.ContractID()),
		func(o *order.Order, now time.Time) error {
			party, err := h.o.authorizer.PartyOf(c.Actor(), o)
			if err != nil {
				return err
			}
			return o.SignContract(party, who.SignatureURL, c.Actor(), now)
		})
	return err
}

type RequestContractChangeCommandHandler struct{ o *Orchestrator }

func NewRequestContractChangeCommandHandler(o *Orchestrator) RequestContractChangeCommandHandler {
	return RequestContractChangeCommandHandler{o: o}
}

func (h RequestContractChangeCommandHandler) Handle(ctx context.Context, c RequestContractChangeCommand) error {
	if err := c.Validate(); err != nil {
		return err
	}
	_, err := h.o.mutate(ctx, c.Actor(), services.OpRequestChange, byOrder(c.OrderID()),
		func(o *order.Order, now time.Time) error {
			party, err := h.o.authorizer.PartyOf(c.Actor(), o)
			if err != nil {
				return err
			}
			return o.RequestContractChange(party, c.Reason(), c.ProposedText(), now)
		})
	return err
}

// ResolveContractChangeCommandHandler lets the counterparty of the requester
// approve or reject the pending change.
type ResolveContractChangeCommandHandler struct{ o *Orchestrator }

func NewResolveContractChangeCommandHandler(o *Orchestrator) ResolveContractChangeCommandHandler {
	return ResolveContractChangeCommandHandler{o: o}
}

func (h ResolveContractChangeCommandHandler) Handle(ctx context.Context, c ResolveContractChangeCommand) error {
	if err := c.Validate(); err != nil {
		return err
	}
	_, err := h.o.mutate(ctx, c.Actor(), services.OpResolveChange, byOrder(c.OrderID()),
		func(o *order.Order, now time.Time) error {
			party, err := h.o.authorizer.PartyOf(c.Actor(), o)
			if err != nil {
				return err
			}
			if c.Approve() {
				return o.ApproveContractChange(party, now)
			}
			return o.RejectContractChange(party, c.Actor(), now)
		})
	return err
}

type AddContractClauseCommandHandler struct{ o *Orchestrator }

func NewAddContractClauseCommandHandler(o *Orchestrator) AddContractClauseCommandHandler {
	return AddContractClauseCommandHandler{o: o}
}

func (h AddContractClauseCommandHandler) Handle(ctx context.Context, c AddContractClauseCommand) error {
	if err := c.Validate(); err != nil {
		return err
	}
	_, err := h.o.mutate(ctx, c.Actor(), services.OpEditContract, byContract(c.ContractID()),
		func(o *order.Order, now time.Time) error {
			_, err := o.AddContractClause(c.Name(), c.Content(), now)
			return err
		})
	return err
}

type UpdateContractClauseCommandHandler struct{ o *Orchestrator }

func NewUpdateContractClauseCommandHandler(o *Orchestrator) UpdateContractClauseCommandHandler {
	return UpdateContractClauseCommandHandler{o: o}
}

func (h UpdateContractClauseCommandHandler) Handle(ctx context.Context, c UpdateContractClauseCommand) error {
	if err := c.Validate(); err != nil {
		return err
	}
	_, err := h.o.mutate(ctx, c.Actor(), services.OpEditContract, byContract(c.ContractID()),
		func(o *order.Order, now time.Time) error {
			return o.UpdateContractClause(c.ClauseID(), c.Name(), c.Content(), now)
		})
	return err
}

type DeleteContractClauseCommandHandler struct{ o *Orchestrator }

func NewDeleteContractClauseCommandHandler(o *Orchestrator) DeleteContractClauseCommandHandler {
	return DeleteContractClauseCommandHandler{o: o}
}

func (h DeleteContractClauseCommandHandler) Handle(ctx context.Context, c DeleteContractClauseCommand) error {
	if err := c.Validate(); err != nil {
		return err
	}
	_, err := h.o.mutate(ctx, c.Actor(), services.OpEditContract, byContract(c.ContractID()),
		func(o *order.Order, now time.Time) error {
			return o.DeleteContractClause(c.ClauseID(), now)
		})
	return err
}

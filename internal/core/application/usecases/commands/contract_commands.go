package commands

import (
	"errors"
	"strings"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
)

var (
	ErrSignContractCommandIsNotConstructed = errors.New(
		"SignContractCommand must be created via NewSignContractCommand constructor",
	)
	ErrRequestContractChangeCommandIsNotConstructed = errors.New(
		"RequestContractChangeCommand must be created via NewRequestContractChangeCommand constructor",
	)
	ErrResolveContractChangeCommandIsNotConstructed = errors.New(
		"ResolveContractChangeCommand must be created via NewResolveContractChangeCommand constructor",
	)
	ErrAddContractClauseCommandIsNotConstructed = errors.New(
		"AddContractClauseCommand must be created via NewAddContractClauseCommand constructor",
	)
	ErrUpdateContractClauseCommandIsNotConstructed = errors.New(
		"UpdateContractClauseCommand must be created via NewUpdateContractClauseCommand constructor",
	)
	ErrDeleteContractClauseCommandIsNotConstructed = errors.New(
		"DeleteContractClauseCommand must be created via NewDeleteContractClauseCommand constructor",
	)
)

// SignContractCommand signs the contract for the side the actor is on.
type SignContractCommand struct{ target }

func NewSignContractCommand(actor kernel.Actor, contractID kernel.UUID) (SignContractCommand, error) {
	t, err := newTarget(actor, contractID)
	return SignContractCommand{t}, err
}

func (c SignContractCommand) Validate() error {
	return c.guard.Validate(ErrSignContractCommandIsNotConstructed)
}

func (c SignContractCommand) ContractID() kernel.UUID { return c.id }

// RequestContractChangeCommand proposes a new contract text.
type RequestContractChangeCommand struct {
	target
	reason       string
	proposedText string
}

func NewRequestContractChangeCommand(actor kernel.Actor, orderID kernel.UUID, reason, proposedText string) (RequestContractChangeCommand, error) {
	t, err := newTarget(actor, orderID)
	reason = strings.TrimSpace(reason)
	if reason == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("reason"))
	}
	if err != nil {
		return RequestContractChangeCommand{}, err
	}
	return RequestContractChangeCommand{target: t, reason: reason, proposedText: proposedText}, nil
}

func (c RequestContractChangeCommand) Validate() error {
	return c.guard.Validate(ErrRequestContractChangeCommandIsNotConstructed)
}

func (c RequestContractChangeCommand) OrderID() kernel.UUID { return c.id }
func (c RequestContractChangeCommand) Reason() string       { return c.reason }
func (c RequestContractChangeCommand) ProposedText() string { return c.proposedText }

// ResolveContractChangeCommand approves or rejects the pending change.
type ResolveContractChangeCommand struct {
	target
	approve bool
}

func NewResolveContractChangeCommand(actor kernel.Actor, orderID kernel.UUID, approve bool) (ResolveContractChangeCommand, error) {
	t, err := newTarget(actor, orderID)
	if err != nil {
		return ResolveContractChangeCommand{}, err
	}
	return ResolveContractChangeCommand{target: t, approve: approve}, nil
}

func (c ResolveContractChangeCommand) Validate() error {
	return c.guard.Validate(ErrResolveContractChangeCommandIsNotConstructed)
}

func (c ResolveContractChangeCommand) OrderID() kernel.UUID { return c.id }
func (c ResolveContractChangeCommand) Approve() bool        { return c.approve }

// AddContractClauseCommand appends a clause.
type AddContractClauseCommand struct {
	target
	name    string
	content string
}

func NewAddContractClauseCommand(actor kernel.Actor, contractID kernel.UUID, name, content string) (AddContractClauseCommand, error) {
	t, err := newTarget(actor, contractID)
	if strings.TrimSpace(name) == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("name"))
	}
	if err != nil {
		return AddContractClauseCommand{}, err
	}
	return AddContractClauseCommand{target: t, name: name, content: content}, nil
}

func (c AddContractClauseCommand) Validate() error {
	return c.guard.Validate(ErrAddContractClauseCommandIsNotConstructed)
}

func (c AddContractClauseCommand) ContractID() kernel.UUID { return c.id }
func (c AddContractClauseCommand) Name() string            { return c.name }
func (c AddContractClauseCommand) Content() string         { return c.content }

// UpdateContractClauseCommand replaces the text of a clause.
type UpdateContractClauseCommand struct {
	target
	clauseID kernel.UUID
	name     string
	content  string
}

func NewUpdateContractClauseCommand(actor kernel.Actor, contractID, clauseID kernel.UUID, name, content string) (UpdateContractClauseCommand, error) {
	t, err := newTarget(actor, contractID)
	if err = errors.Join(err, clauseID.Validate()); err != nil {
		return UpdateContractClauseCommand{}, err
	}
	return UpdateContractClauseCommand{target: t, clauseID: clauseID, name: name, content: content}, nil
}

func (c UpdateContractClauseCommand) Validate() error {
	return c.guard.Validate(ErrUpdateContractClauseCommandIsNotConstructed)
}

func (c UpdateContractClauseCommand) ContractID() kernel.UUID { return c.id }
func (c UpdateContractClauseCommand) ClauseID() kernel.UUID   { return c.clauseID }
func (c UpdateContractClauseCommand) Name() string            { return c.name }
func (c UpdateContractClauseCommand) Content() string         { return c.content }

// DeleteContractClauseCommand removes a clause and reindexes the rest.
type DeleteContractClauseCommand struct {
	target
	clauseID kernel.UUID
}

func NewDeleteContractClauseCommand(actor kernel.Actor, contractID, clauseID kernel.UUID) (DeleteContractClauseCommand, error) {
	t, err := newTarget(actor, contractID)
	if err = errors.Join(err, clauseID.Validate()); err != nil {
		return DeleteContractClauseCommand{}, err
	}
	return DeleteContractClauseCommand{target: t, clauseID: clauseID}, nil
}

func (c DeleteContractClauseCommand) Validate() error {
	return c.guard.Validate(ErrDeleteContractClauseCommandIsNotConstructed)
}

func (c DeleteContractClauseCommand) ContractID() kernel.UUID { return c.id }
func (c DeleteContractClauseCommand) ClauseID() kernel.UUID   { return c.clauseID }

package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
)

var (
	ErrSelectConfirmationItemCommandIsNotConstructed = errors.New(
		"SelectConfirmationItemCommand must be created via NewSelectConfirmationItemCommand constructor",
	)
	ErrAnswerConfirmationCommandIsNotConstructed = errors.New(
		"AnswerConfirmationCommand must be created via NewAnswerConfirmationCommand constructor",
	)
)

// SelectConfirmationItemCommand selects an item of a list block.
type SelectConfirmationItemCommand struct {
	target
	itemID kernel.UUID
}

func NewSelectConfirmationItemCommand(actor kernel.Actor, blockID, itemID kernel.UUID) (SelectConfirmationItemCommand, error) {
	t, err := newTarget(actor, blockID)
	if err = errors.Join(err, itemID.Validate()); err != nil {
		return SelectConfirmationItemCommand{}, err
	}
	return SelectConfirmationItemCommand{target: t, itemID: itemID}, nil
}

func (c SelectConfirmationItemCommand) Validate() error {
	return c.guard.Validate(ErrSelectConfirmationItemCommandIsNotConstructed)
}

func (c SelectConfirmationItemCommand) BlockID() kernel.UUID { return c.id }
func (c SelectConfirmationItemCommand) ItemID() kernel.UUID  { return c.itemID }

// AnswerConfirmationCommand answers a text block.
type AnswerConfirmationCommand struct {
	target
	content string
}

func NewAnswerConfirmationCommand(actor kernel.Actor, blockID kernel.UUID, content string) (AnswerConfirmationCommand, error) {
	t, err := newTarget(actor, blockID)
	if content == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("content"))
	}
	if err != nil {
		return AnswerConfirmationCommand{}, err
	}
	return AnswerConfirmationCommand{target: t, content: content}, nil
}

func (c AnswerConfirmationCommand) Validate() error {
	return c.guard.Validate(ErrAnswerConfirmationCommandIsNotConstructed)
}

func (c AnswerConfirmationCommand) BlockID() kernel.UUID { return c.id }
func (c AnswerConfirmationCommand) Content() string      { return c.content }

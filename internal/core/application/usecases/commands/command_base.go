package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

// target is embedded by commands that act on one record on behalf of an actor.
// id is the order, contract, card, item, file or block the command addresses.
type target struct {
	actor kernel.Actor
	id    kernel.UUID

	guard guard.ConstructorGuard
}

func newTarget(actor kernel.Actor, id kernel.UUID) (target, error) {
	if err := errors.Join(validateActor(actor), id.Validate()); err != nil {
		return target{}, err
	}
	return target{actor: actor, id: id, guard: guard.NewConstructorGuard()}, nil
}

// Actor returns the caller the command runs for.
func (t target) Actor() kernel.Actor { return t.actor }

func validateActor(a kernel.Actor) error {
	if a.Role() == "" {
		return errs.NewValueIsRequiredError("actor")
	}
	return nil
}

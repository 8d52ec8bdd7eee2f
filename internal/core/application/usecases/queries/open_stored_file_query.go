package queries

import (
	"errors"
	"strings"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var ErrOpenStoredFileQueryIsNotConstructed = errors.New(
	"OpenStoredFileQuery must be created via NewOpenStoredFileQuery constructor",
)

// OpenStoredFileQuery streams a receipt, invoice or delivery file to a
// participant of the order that references it.
type OpenStoredFileQuery struct {
	actor kernel.Actor
	key   string

	guard guard.ConstructorGuard
}

func NewOpenStoredFileQuery(actor kernel.Actor, key string) (OpenStoredFileQuery, error) {
	var keyErr error
	if strings.TrimSpace(key) == "" {
		keyErr = errs.NewValueIsRequiredError("key")
	}
	if err := errors.Join(validateActor(actor), keyErr); err != nil {
		return OpenStoredFileQuery{}, err
	}
	return OpenStoredFileQuery{actor: actor, key: key, guard: guard.NewConstructorGuard()}, nil
}

func (q OpenStoredFileQuery) Validate() error {
	return q.guard.Validate(ErrOpenStoredFileQueryIsNotConstructed)
}

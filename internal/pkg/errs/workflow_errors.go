package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTransition is the sentinel for status changes that are not reachable.
	ErrInvalidTransition = errors.New("invalid transition")
	// ErrInvalidState is the sentinel for operations rejected by the current entity state.
	ErrInvalidState = errors.New("invalid state")
	// ErrIncompleteConfirmation is returned when confirmation blocks are still unanswered.
	ErrIncompleteConfirmation = errors.New("incomplete confirmation")
	// ErrIncompletePayment is returned when payment cards are not all paid.
	ErrIncompletePayment = errors.New("incomplete payment")
	// ErrIncompleteDelivery is returned when delivery items are not all accepted.
	ErrIncompleteDelivery = errors.New("incomplete delivery")
	// ErrForbidden is the sentinel for failed capability checks.
	ErrForbidden = errors.New("forbidden")
)

// InvalidTransitionError names the entity together with the current and requested states.
type InvalidTransitionError struct {
	Entity string
	From   string
	To     string
}

// NewInvalidTransitionError creates an InvalidTransitionError.
func NewInvalidTransitionError(entity string, from, to fmt.Stringer) *InvalidTransitionError {
	return &InvalidTransitionError{
		Entity: entity,
		From:   from.String(),
		To:     to.String(),
	}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s cannot move from %s to %s", ErrInvalidTransition, e.Entity, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// InvalidStateError reports an operation the entity cannot perform right now.
type InvalidStateError struct {
	Entity string
	Reason string
}

// NewInvalidStateError creates an InvalidStateError.
func NewInvalidStateError(entity, reason string) *InvalidStateError {
	return &InvalidStateError{Entity: entity, Reason: reason}
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrInvalidState, e.Entity, e.Reason)
}

func (e *InvalidStateError) Unwrap() error {
	return ErrInvalidState
}

// PreconditionError reports an unsatisfied workflow gate. Gate is one of
// ErrIncompleteConfirmation, ErrIncompletePayment or ErrIncompleteDelivery.
type PreconditionError struct {
	Gate   error
	Detail string
}

// NewIncompleteConfirmationError creates a PreconditionError for the confirmation gate.
func NewIncompleteConfirmationError(detail string) *PreconditionError {
	return &PreconditionError{Gate: ErrIncompleteConfirmation, Detail: detail}
}

// NewIncompletePaymentError creates a PreconditionError for the payment gate.
func NewIncompletePaymentError(detail string) *PreconditionError {
	return &PreconditionError{Gate: ErrIncompletePayment, Detail: detail}
}

// NewIncompleteDeliveryError creates a PreconditionError for the delivery gate.
func NewIncompleteDeliveryError(detail string) *PreconditionError {
	return &PreconditionError{Gate: ErrIncompleteDelivery, Detail: detail}
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Gate, e.Detail)
}

func (e *PreconditionError) Unwrap() error {
	return e.Gate
}

// ForbiddenError reports that an actor lacks the capability for an operation.
type ForbiddenError struct {
	Actor     string
	Operation string
}

// NewForbiddenError creates a ForbiddenError.
func NewForbiddenError(actor, operation string) *ForbiddenError {
	return &ForbiddenError{Actor: actor, Operation: operation}
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("%s: %s may not %s", ErrForbidden, e.Actor, e.Operation)
}

func (e *ForbiddenError) Unwrap() error {
	return ErrForbidden
}

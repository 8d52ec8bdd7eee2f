package ports

import (
	"context"

	"orderflow/internal/core/domain/model/order"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// Client code must explicitly manage transaction lifecycle.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	// OrderRepository returns a repository bound to the current transaction.
	OrderRepository() OrderRepository

	// TemplateRepository returns a repository bound to the current transaction.
	TemplateRepository() TemplateRepository

	// PullEvents drains the events recorded by every aggregate written through
	// this unit of work. Call it after Commit.
	PullEvents() []order.Event
}

package ports

import (
	"context"

	"orderflow/internal/core/domain/model/kernel"
)

// Identity is what the order core needs to know about a platform user.
type Identity struct {
	UserID       kernel.UUID
	DisplayName  string
	Email        string
	SignatureURL string
}

// IdentityProvider resolves users managed outside the order core.
type IdentityProvider interface {
	Lookup(ctx context.Context, userID kernel.UUID) (Identity, error)
}

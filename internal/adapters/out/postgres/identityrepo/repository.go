// Package identityrepo resolves platform users from the users table the
// identity service replicates into the order database.
package identityrepo

import (
	"context"
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserDTO is the read model of a platform user.
type UserDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	DisplayName  string    `gorm:"type:varchar(255);not null"`
	Email        string    `gorm:"type:varchar(255)"`
	SignatureURL string    `gorm:"type:varchar(1024)"`
}

// TableName specifies the database table name for users.
func (UserDTO) TableName() string {
	return "users"
}

// GormIdentityProvider implements ports.IdentityProvider using GORM.
type GormIdentityProvider struct {
	db *gorm.DB
}

// NewGormIdentityProvider creates a new identity provider backed by the users table.
func NewGormIdentityProvider(db *gorm.DB) *GormIdentityProvider {
	return &GormIdentityProvider{db: db}
}

// Lookup returns the identity of userID.
func (p *GormIdentityProvider) Lookup(ctx context.Context, userID kernel.UUID) (ports.Identity, error) {
	if err := userID.Validate(); err != nil {
		return ports.Identity{}, err
	}

	var dto UserDTO
	if err := p.db.WithContext(ctx).First(&dto, "id = ?", userID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.Identity{}, errs.NewObjectNotFoundError("user", userID.String())
		}
		return ports.Identity{}, err
	}

	return ports.Identity{
		UserID:       userID,
		DisplayName:  dto.DisplayName,
		Email:        dto.Email,
		SignatureURL: dto.SignatureURL,
	}, nil
}

// Save upserts an identity. It is used when replicating users and in tests.
func (p *GormIdentityProvider) Save(ctx context.Context, identity ports.Identity) error {
	if err := identity.UserID.Validate(); err != nil {
		return err
	}

	dto := UserDTO{
		ID:           identity.UserID.Bytes(),
		DisplayName:  identity.DisplayName,
		Email:        identity.Email,
		SignatureURL: identity.SignatureURL,
	}
	return p.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&dto).Error
}

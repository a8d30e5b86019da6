package persistence

import (
	"context"
	"errors"

	"github.com/catalogsync/backend/internal/domain/identity"
	"github.com/catalogsync/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormUserRepository is the gorm-backed identity.UserRepository.
// Errors are translated to domain sentinels at this boundary so the
// service layer never sees gorm types.
type GormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// FindByUsername loads a user by exact username match.
func (r *GormUserRepository) FindByUsername(ctx context.Context, username string) (*identity.User, error) {
	var user identity.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, shared.ErrNotFound
	case err != nil:
		return nil, err
	}
	return &user, nil
}

// Save inserts or updates a user row.
func (r *GormUserRepository) Save(ctx context.Context, user *identity.User) error {
	err := r.db.WithContext(ctx).Save(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return shared.ErrAlreadyExists
	}
	return err
}

var _ identity.UserRepository = (*GormUserRepository)(nil)

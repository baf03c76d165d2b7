package users

import (
	"context"
	"errors"

	"github.com/chethan81/stockmonitor-backend/pkg/db/models"
	pkgerrors "github.com/chethan81/stockmonitor-backend/pkg/errors"
	"gorm.io/gorm"
)

// Repository reads and writes the credential store.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Where("username = ?", username).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorageUnavailable, err, "finding user")
	}
	return &user, nil
}

func (r *Repository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStorageUnavailable, err, "creating user")
	}
	return nil
}

package wages

import (
	"context"

	"github.com/chethan81/stockmonitor-backend/pkg/db/models"
	pkgerrors "github.com/chethan81/stockmonitor-backend/pkg/errors"
	"gorm.io/gorm"
)

// Repository persists payroll disbursements.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, wage *models.Wage) error {
	if err := r.db.WithContext(ctx).Create(wage).Error; err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStorageUnavailable, err, "creating wage record")
	}
	return nil
}

func (r *Repository) List(ctx context.Context) ([]models.Wage, error) {
	var wages []models.Wage
	err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Find(&wages).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorageUnavailable, err, "listing wage records")
	}
	return wages, nil
}

func (r *Repository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Wage{}, id)
	if res.Error != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStorageUnavailable, res.Error, "deleting wage record")
	}
	if res.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "wage record not found")
	}
	return nil
}

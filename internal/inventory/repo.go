package inventory

import (
	"context"
	"errors"

	"github.com/chethan81/stockmonitor-backend/pkg/db/models"
	pkgerrors "github.com/chethan81/stockmonitor-backend/pkg/errors"
	"gorm.io/gorm"
)

// Repository manages persistence for stock items and their sale records.
// Driver failures surface as StorageUnavailable so callers and the API layer
// see one retryable classification for the whole storage plane.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// CreateItem inserts a new stock item row.
func (r *Repository) CreateItem(ctx context.Context, item *models.StockItem) error {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStorageUnavailable, err, "creating stock item")
	}
	return nil
}

// FindItem loads one stock item by id.
func (r *Repository) FindItem(ctx context.Context, id uint) (*models.StockItem, error) {
	var item models.StockItem
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "stock item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorageUnavailable, err, "finding stock item")
	}
	return &item, nil
}

// ListItems returns all stock items, newest first.
func (r *Repository) ListItems(ctx context.Context) ([]models.StockItem, error) {
	var items []models.StockItem
	if err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Find(&items).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorageUnavailable, err, "listing stock items")
	}
	return items, nil
}

// ListRecentItems returns the most recently added items up to limit.
func (r *Repository) ListRecentItems(ctx context.Context, limit int) ([]models.StockItem, error) {
	var items []models.StockItem
	if err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&items).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorageUnavailable, err, "listing recent stock items")
	}
	return items, nil
}

// SaveItem writes back every field of an existing stock item row.
func (r *Repository) SaveItem(ctx context.Context, item *models.StockItem) error {
	if err := r.db.WithContext(ctx).Save(item).Error; err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStorageUnavailable, err, "saving stock item")
	}
	return nil
}

// DeleteItem removes a stock item. Historical sales are left untouched.
func (r *Repository) DeleteItem(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.StockItem{}, "id = ?", id)
	if res.Error != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStorageUnavailable, res.Error, "deleting stock item")
	}
	if res.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "stock item not found")
	}
	return nil
}

// DecrementQuantity applies the guarded decrement that backs the atomic sell:
// quantity and the persisted stock value change in one statement, and the
// `quantity >= ?` predicate makes concurrent sells against a stale read lose
// cleanly instead of driving the quantity negative. Returns false when the
// guard rejected the update.
func (r *Repository) DecrementQuantity(ctx context.Context, id uint, qty int) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.StockItem{}).
		Where("id = ? AND quantity >= ?", id, qty).
		Updates(map[string]any{
			"quantity":            gorm.Expr("quantity - ?", qty),
			"current_stock_value": gorm.Expr("(quantity - ?) * selling_price", qty),
		})
	if res.Error != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeStorageUnavailable, res.Error, "decrementing stock quantity")
	}
	return res.RowsAffected > 0, nil
}

// CreateSale appends one immutable sale record. No update or delete surface
// exists for sales.
func (r *Repository) CreateSale(ctx context.Context, sale *models.Sale) error {
	if err := r.db.WithContext(ctx).Create(sale).Error; err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStorageUnavailable, err, "creating sale record")
	}
	return nil
}

// ListSales returns the sale history, newest first.
func (r *Repository) ListSales(ctx context.Context) ([]models.Sale, error) {
	var sales []models.Sale
	if err := r.db.WithContext(ctx).
		Order("sold_at DESC, id DESC").
		Find(&sales).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorageUnavailable, err, "listing sales")
	}
	return sales, nil
}

// CountItems returns the number of tracked stock items.
func (r *Repository) CountItems(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.StockItem{}).Count(&count).Error; err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeStorageUnavailable, err, "counting stock items")
	}
	return count, nil
}

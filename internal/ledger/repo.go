package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/chethan81/stockmonitor-backend/pkg/db/models"
	pkgerrors "github.com/chethan81/stockmonitor-backend/pkg/errors"
	"gorm.io/gorm"
)

// Repository persists investor capital movements. The table is append-only;
// there are deliberately no update or delete methods.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx rebinds the repository to an open transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

func (r *Repository) Create(ctx context.Context, txn *models.InvestmentTransaction) error {
	if err := r.db.WithContext(ctx).Create(txn).Error; err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStorageUnavailable, err, "creating investment transaction")
	}
	return nil
}

// ListAll returns every movement oldest first, the order balances fold in.
func (r *Repository) ListAll(ctx context.Context) ([]models.InvestmentTransaction, error) {
	var txns []models.InvestmentTransaction
	err := r.db.WithContext(ctx).
		Order("created_at ASC, id ASC").
		Find(&txns).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorageUnavailable, err, "listing investment transactions")
	}
	return txns, nil
}

// ListByInvestor returns one investor's movements newest first.
func (r *Repository) ListByInvestor(ctx context.Context, name string) ([]models.InvestmentTransaction, error) {
	var txns []models.InvestmentTransaction
	err := r.db.WithContext(ctx).
		Where("investor_name = ?", name).
		Order("created_at DESC, id DESC").
		Find(&txns).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorageUnavailable, err,
			fmt.Sprintf("listing transactions for investor %q", name))
	}
	return txns, nil
}

func (r *Repository) Find(ctx context.Context, id uint) (*models.InvestmentTransaction, error) {
	var txn models.InvestmentTransaction
	err := r.db.WithContext(ctx).First(&txn, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "investment transaction not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorageUnavailable, err, "finding investment transaction")
	}
	return &txn, nil
}

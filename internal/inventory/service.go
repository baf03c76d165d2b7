package inventory

import (
	"context"
	"fmt"
	"strings"

	"github.com/chethan81/stockmonitor-backend/pkg/db"
	"github.com/chethan81/stockmonitor-backend/pkg/db/models"
	pkgerrors "github.com/chethan81/stockmonitor-backend/pkg/errors"
	"github.com/chethan81/stockmonitor-backend/pkg/metrics"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Service owns stock item records, their derived valuation fields, and the
// atomic sell transition.
type Service interface {
	AddItem(ctx context.Context, input AddItemInput) (*models.StockItem, error)
	GetItem(ctx context.Context, id uint) (*models.StockItem, error)
	ListItems(ctx context.Context) ([]models.StockItem, error)
	UpdateItem(ctx context.Context, id uint, input UpdateItemInput) (*models.StockItem, error)
	DeleteItem(ctx context.Context, id uint) error
	Sell(ctx context.Context, id uint, input SellInput) (*models.Sale, error)
	ListSales(ctx context.Context) ([]models.Sale, error)
}

// AddItemInput holds the validated payload to create a stock item. CostPrice
// is only populated for privileged callers; the web layer blanks it otherwise.
type AddItemInput struct {
	Name         string
	Quantity     int
	SellingPrice decimal.Decimal
	CostPrice    decimal.Decimal
	Description  string
	ImagePath    *string
	ActingUser   string
}

// UpdateItemInput holds optional mutation values for a stock item.
type UpdateItemInput struct {
	Name         *string
	Quantity     *int
	SellingPrice *decimal.Decimal
	CostPrice    *decimal.Decimal
	Description  *string
	ImagePath    *string
}

// SellInput captures one sale request against a stock item.
type SellInput struct {
	Quantity   int
	Place      string
	ActingUser string
}

type service struct {
	conn    *db.Connector
	metrics *metrics.StorageMetrics
}

// NewService wires an inventory service over the storage connector.
func NewService(conn *db.Connector, m *metrics.StorageMetrics) (Service, error) {
	if conn == nil {
		return nil, fmt.Errorf("storage connector required")
	}
	return &service{conn: conn, metrics: m}, nil
}

func (s *service) AddItem(ctx context.Context, input AddItemInput) (*models.StockItem, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item name is required")
	}
	if input.Quantity < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must not be negative")
	}
	if input.SellingPrice.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "selling price must not be negative")
	}
	if input.CostPrice.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cost price must not be negative")
	}

	qty := decimal.NewFromInt(int64(input.Quantity))
	item := &models.StockItem{
		Name:              strings.TrimSpace(input.Name),
		Quantity:          input.Quantity,
		SellingPrice:      input.SellingPrice,
		InitialPrice:      input.CostPrice,
		Description:       input.Description,
		ImagePath:         input.ImagePath,
		TotalInitialValue: initialValueBasis(input.CostPrice, input.SellingPrice).Mul(qty),
		CurrentStockValue: input.SellingPrice.Mul(qty),
		AddedBy:           input.ActingUser,
	}

	conn, err := s.conn.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	if err := NewRepository(conn.DB()).CreateItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *service) GetItem(ctx context.Context, id uint) (*models.StockItem, error) {
	conn, err := s.conn.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	return NewRepository(conn.DB()).FindItem(ctx, id)
}

func (s *service) ListItems(ctx context.Context) ([]models.StockItem, error) {
	conn, err := s.conn.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	return NewRepository(conn.DB()).ListItems(ctx)
}

func (s *service) UpdateItem(ctx context.Context, id uint, input UpdateItemInput) (*models.StockItem, error) {
	if input.Quantity != nil && *input.Quantity < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must not be negative")
	}
	if input.SellingPrice != nil && input.SellingPrice.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "selling price must not be negative")
	}
	if input.CostPrice != nil && input.CostPrice.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cost price must not be negative")
	}
	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item name must not be empty")
	}

	var updated *models.StockItem
	err := s.conn.WithTx(ctx, func(tx *gorm.DB) error {
		repo := NewRepository(tx)
		item, err := repo.FindItem(ctx, id)
		if err != nil {
			return err
		}

		if input.Name != nil {
			item.Name = strings.TrimSpace(*input.Name)
		}
		if input.Description != nil {
			item.Description = *input.Description
		}
		if input.ImagePath != nil {
			item.ImagePath = input.ImagePath
		}

		recompute := false
		if input.Quantity != nil && *input.Quantity != item.Quantity {
			item.Quantity = *input.Quantity
			recompute = true
		}
		if input.SellingPrice != nil && !input.SellingPrice.Equal(item.SellingPrice) {
			item.SellingPrice = *input.SellingPrice
			recompute = true
		}
		if input.CostPrice != nil && !input.CostPrice.Equal(item.InitialPrice) {
			item.InitialPrice = *input.CostPrice
			recompute = true
		}

		if recompute {
			qty := decimal.NewFromInt(int64(item.Quantity))
			item.CurrentStockValue = item.SellingPrice.Mul(qty)
			item.TotalInitialValue = initialValueBasis(item.InitialPrice, item.SellingPrice).Mul(qty)
		}

		if err := repo.SaveItem(ctx, item); err != nil {
			return err
		}
		updated = item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *service) DeleteItem(ctx context.Context, id uint) error {
	conn, err := s.conn.Acquire(ctx)
	if err != nil {
		return err
	}
	return NewRepository(conn.DB()).DeleteItem(ctx, id)
}

// Sell converts stock into a sale record inside a single unit of work. The
// quantity decrement, the stock value recomputation, and the sale insert
// commit together or not at all.
func (s *service) Sell(ctx context.Context, id uint, input SellInput) (*models.Sale, error) {
	if input.Quantity <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity sold must be positive")
	}

	var sale *models.Sale
	err := s.conn.WithTx(ctx, func(tx *gorm.DB) error {
		repo := NewRepository(tx)

		item, err := repo.FindItem(ctx, id)
		if err != nil {
			return err
		}
		if input.Quantity > item.Quantity {
			return insufficientStock(item, input.Quantity)
		}

		ok, err := repo.DecrementQuantity(ctx, id, input.Quantity)
		if err != nil {
			return err
		}
		if !ok {
			// A concurrent sale consumed the stock between the read and
			// the guarded decrement.
			return insufficientStock(item, input.Quantity)
		}

		sale = &models.Sale{
			ItemID:       item.ID,
			ItemName:     item.Name,
			QuantitySold: input.Quantity,
			SellingPrice: item.SellingPrice,
			TotalAmount:  item.SellingPrice.Mul(decimal.NewFromInt(int64(input.Quantity))),
			ImagePath:    item.ImagePath,
			UserName:     input.ActingUser,
			Place:        input.Place,
		}
		return repo.CreateSale(ctx, sale)
	})
	if err != nil {
		return nil, err
	}

	s.metrics.IncSale()
	return sale, nil
}

func (s *service) ListSales(ctx context.Context) ([]models.Sale, error) {
	conn, err := s.conn.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	return NewRepository(conn.DB()).ListSales(ctx)
}

// initialValueBasis applies the cost-price rule: use the cost price when it is
// set and positive, otherwise fall back to the selling price.
func initialValueBasis(costPrice, sellingPrice decimal.Decimal) decimal.Decimal {
	if costPrice.IsPositive() {
		return costPrice
	}
	return sellingPrice
}

func insufficientStock(item *models.StockItem, requested int) error {
	return pkgerrors.New(
		pkgerrors.CodeInsufficientStock,
		fmt.Sprintf("cannot sell %d of %q", requested, item.Name),
	).WithDetails(map[string]any{
		"item_id":   item.ID,
		"requested": requested,
		"available": item.Quantity,
	})
}

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockItem is a tracked inventory unit. CurrentStockValue is persisted, not
// computed on read, and must be updated in the same unit of work as any
// quantity or price change.
type StockItem struct {
	ID                uint            `gorm:"column:id;primaryKey"`
	Name              string          `gorm:"column:name;not null"`
	Quantity          int             `gorm:"column:quantity;not null;default:0"`
	SellingPrice      decimal.Decimal `gorm:"column:selling_price;type:numeric(10,2);not null;default:0"`
	InitialPrice      decimal.Decimal `gorm:"column:initial_price;type:numeric(10,2);not null;default:0"`
	Description       string          `gorm:"column:description"`
	ImagePath         *string         `gorm:"column:image_path"`
	TotalInitialValue decimal.Decimal `gorm:"column:total_initial_value;type:numeric(10,2);not null;default:0"`
	CurrentStockValue decimal.Decimal `gorm:"column:current_stock_value;type:numeric(10,2);not null;default:0"`
	AddedBy           string          `gorm:"column:added_by"`
	CreatedAt         time.Time       `gorm:"column:created_at;autoCreateTime"`
}

func (StockItem) TableName() string {
	return "stock_items"
}

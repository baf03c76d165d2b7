package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale is the immutable audit record of one completed sale. ItemName and
// SellingPrice are denormalized from the stock item at sale time; ItemID is a
// soft reference that may dangle after the item is deleted.
type Sale struct {
	ID           uint            `gorm:"column:id;primaryKey"`
	ItemID       uint            `gorm:"column:item_id;index"`
	ItemName     string          `gorm:"column:item_name;not null"`
	QuantitySold int             `gorm:"column:quantity_sold;not null"`
	SellingPrice decimal.Decimal `gorm:"column:selling_price;type:numeric(10,2);not null"`
	TotalAmount  decimal.Decimal `gorm:"column:total_amount;type:numeric(10,2);not null"`
	ImagePath    *string         `gorm:"column:image_path"`
	UserName     string          `gorm:"column:user_name"`
	Place        string          `gorm:"column:place"`
	SoldAt       time.Time       `gorm:"column:sold_at;autoCreateTime;index"`
}

func (Sale) TableName() string {
	return "sales"
}

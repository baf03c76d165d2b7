package models

import (
	"time"

	"github.com/chethan81/stockmonitor-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// InvestmentTransaction is an append-only investor capital movement. Balances
// are never stored; they are derived by folding over these rows. Investor
// identity is a free-text grouping key, not a normalized entity.
type InvestmentTransaction struct {
	ID              uint                  `gorm:"column:id;primaryKey"`
	TransactionType enums.TransactionType `gorm:"column:transaction_type;not null;index"`
	Amount          decimal.Decimal       `gorm:"column:amount;type:numeric(10,2);not null"`
	Description     string                `gorm:"column:description"`
	InvestorName    string                `gorm:"column:investor_name;index"`
	InvestorEmail   string                `gorm:"column:investor_email"`
	InvestorPhone   string                `gorm:"column:investor_phone"`
	CreatedAt       time.Time             `gorm:"column:created_at;autoCreateTime;index"`
}

func (InvestmentTransaction) TableName() string {
	return "investment_transactions"
}

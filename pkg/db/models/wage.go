package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Wage is a payroll disbursement record, append-only except for explicit
// deletion.
type Wage struct {
	ID           uint            `gorm:"column:id;primaryKey"`
	EmployeeName string          `gorm:"column:employee_name;not null;index"`
	Amount       decimal.Decimal `gorm:"column:amount;type:numeric(10,2);not null"`
	WageType     string          `gorm:"column:wage_type"`
	Description  string          `gorm:"column:description"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime;index"`
}

func (Wage) TableName() string {
	return "wages"
}

package wages

import (
	"context"
	"fmt"
	"strings"

	"github.com/chethan81/stockmonitor-backend/pkg/db"
	"github.com/chethan81/stockmonitor-backend/pkg/db/models"
	pkgerrors "github.com/chethan81/stockmonitor-backend/pkg/errors"
	"github.com/shopspring/decimal"
)

// Service records, lists, and deletes payroll disbursements.
type Service interface {
	RecordWage(ctx context.Context, input RecordWageInput) (*models.Wage, error)
	ListWages(ctx context.Context) ([]models.Wage, decimal.Decimal, error)
	DeleteWage(ctx context.Context, id uint) error
}

// RecordWageInput is the validated payload for one disbursement.
type RecordWageInput struct {
	EmployeeName string
	Amount       decimal.Decimal
	WageType     string
	Description  string
}

type service struct {
	conn *db.Connector
}

func NewService(conn *db.Connector) (Service, error) {
	if conn == nil {
		return nil, fmt.Errorf("storage connector required")
	}
	return &service{conn: conn}, nil
}

func (s *service) RecordWage(ctx context.Context, input RecordWageInput) (*models.Wage, error) {
	if strings.TrimSpace(input.EmployeeName) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "employee name is required")
	}
	if !input.Amount.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "amount must be positive")
	}

	wage := &models.Wage{
		EmployeeName: strings.TrimSpace(input.EmployeeName),
		Amount:       input.Amount,
		WageType:     strings.TrimSpace(input.WageType),
		Description:  input.Description,
	}

	conn, err := s.conn.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	if err := NewRepository(conn.DB()).Create(ctx, wage); err != nil {
		return nil, err
	}
	return wage, nil
}

// ListWages returns the disbursements newest first along with the total paid.
func (s *service) ListWages(ctx context.Context) ([]models.Wage, decimal.Decimal, error) {
	conn, err := s.conn.Acquire(ctx)
	if err != nil {
		return nil, decimal.Zero, err
	}

	wages, err := NewRepository(conn.DB()).List(ctx)
	if err != nil {
		return nil, decimal.Zero, err
	}

	total := decimal.Zero
	for _, w := range wages {
		total = total.Add(w.Amount)
	}
	return wages, total, nil
}

func (s *service) DeleteWage(ctx context.Context, id uint) error {
	conn, err := s.conn.Acquire(ctx)
	if err != nil {
		return err
	}
	return NewRepository(conn.DB()).Delete(ctx, id)
}

package ledger

import (
	"context"
	"fmt"
	"strings"

	"github.com/chethan81/stockmonitor-backend/pkg/db"
	"github.com/chethan81/stockmonitor-backend/pkg/db/models"
	"github.com/chethan81/stockmonitor-backend/pkg/enums"
	pkgerrors "github.com/chethan81/stockmonitor-backend/pkg/errors"
	"github.com/shopspring/decimal"
)

// Service records and reads investor capital movements.
type Service interface {
	RecordInvestment(ctx context.Context, input RecordInvestmentInput) (*models.InvestmentTransaction, error)
	GetTransaction(ctx context.Context, id uint) (*models.InvestmentTransaction, error)
	ListTransactions(ctx context.Context) ([]models.InvestmentTransaction, error)
	ListInvestorTransactions(ctx context.Context, investorName string) ([]models.InvestmentTransaction, error)
}

// RecordInvestmentInput is the validated payload for one capital movement.
type RecordInvestmentInput struct {
	TransactionType enums.TransactionType
	Amount          decimal.Decimal
	Description     string
	InvestorName    string
	InvestorEmail   string
	InvestorPhone   string
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

func (s *service) RecordInvestment(ctx context.Context, input RecordInvestmentInput) (*models.InvestmentTransaction, error) {
	if !input.TransactionType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("transaction type must be %q or %q", enums.TransactionTypeInvest, enums.TransactionTypeWithdraw))
	}
	if !input.Amount.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "amount must be positive")
	}
	if strings.TrimSpace(input.InvestorName) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "investor name is required")
	}

	txn := &models.InvestmentTransaction{
		TransactionType: input.TransactionType,
		Amount:          input.Amount,
		Description:     input.Description,
		InvestorName:    strings.TrimSpace(input.InvestorName),
		InvestorEmail:   strings.TrimSpace(input.InvestorEmail),
		InvestorPhone:   strings.TrimSpace(input.InvestorPhone),
	}

	conn, err := s.conn.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	if err := NewRepository(conn.DB()).Create(ctx, txn); err != nil {
		return nil, err
	}
	return txn, nil
}

func (s *service) GetTransaction(ctx context.Context, id uint) (*models.InvestmentTransaction, error) {
	conn, err := s.conn.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	return NewRepository(conn.DB()).Find(ctx, id)
}

func (s *service) ListTransactions(ctx context.Context) ([]models.InvestmentTransaction, error) {
	conn, err := s.conn.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	return NewRepository(conn.DB()).ListAll(ctx)
}

func (s *service) ListInvestorTransactions(ctx context.Context, investorName string) ([]models.InvestmentTransaction, error) {
	if strings.TrimSpace(investorName) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "investor name is required")
	}
	conn, err := s.conn.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	return NewRepository(conn.DB()).ListByInvestor(ctx, strings.TrimSpace(investorName))
}

package reports

import (
	"context"
	"fmt"
	"strings"

	"github.com/chethan81/stockmonitor-backend/internal/inventory"
	"github.com/chethan81/stockmonitor-backend/internal/ledger"
	"github.com/chethan81/stockmonitor-backend/pkg/db"
	"github.com/chethan81/stockmonitor-backend/pkg/db/models"
	"github.com/chethan81/stockmonitor-backend/pkg/enums"
	pkgerrors "github.com/chethan81/stockmonitor-backend/pkg/errors"
	"github.com/shopspring/decimal"
)

const recentItemLimit = 5

// Dashboard is the landing-page snapshot: counts, valuations, and the most
// recently added items.
type Dashboard struct {
	TotalItems      int64              `json:"total_items"`
	StockValuation  decimal.Decimal    `json:"stock_valuation"`
	ExpectedRevenue decimal.Decimal    `json:"expected_revenue"`
	RecentItems     []models.StockItem `json:"recent_items"`
}

// InvestorSummary is the folded position of one investor. Contact fields come
// from the investor's newest transaction that carried them.
type InvestorSummary struct {
	Name             string          `json:"name"`
	Email            string          `json:"email,omitempty"`
	Phone            string          `json:"phone,omitempty"`
	TotalInvested    decimal.Decimal `json:"total_invested"`
	TotalWithdrawn   decimal.Decimal `json:"total_withdrawn"`
	NetBalance       decimal.Decimal `json:"net_balance"`
	TransactionCount int             `json:"transaction_count"`
}

// LedgerLine is one investor transaction annotated with the balance after it.
type LedgerLine struct {
	models.InvestmentTransaction
	RunningBalance decimal.Decimal `json:"running_balance"`
}

// Service derives read-only figures by scanning the underlying tables. No
// aggregate is ever stored.
type Service interface {
	Dashboard(ctx context.Context) (*Dashboard, error)
	StockValuation(ctx context.Context) (decimal.Decimal, error)
	ExpectedRevenue(ctx context.Context) (decimal.Decimal, error)
	NetInvested(ctx context.Context) (decimal.Decimal, error)
	InvestorSummaries(ctx context.Context) ([]InvestorSummary, error)
	InvestorLedger(ctx context.Context, investorName string) ([]LedgerLine, error)
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

func (s *service) Dashboard(ctx context.Context) (*Dashboard, error) {
	conn, err := s.conn.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	repo := inventory.NewRepository(conn.DB())

	items, err := repo.ListItems(ctx)
	if err != nil {
		return nil, err
	}
	recent, err := repo.ListRecentItems(ctx, recentItemLimit)
	if err != nil {
		return nil, err
	}

	valuation, revenue := foldStockFigures(items)
	return &Dashboard{
		TotalItems:      int64(len(items)),
		StockValuation:  valuation,
		ExpectedRevenue: revenue,
		RecentItems:     recent,
	}, nil
}

func (s *service) StockValuation(ctx context.Context) (decimal.Decimal, error) {
	valuation, _, err := s.stockFigures(ctx)
	return valuation, err
}

func (s *service) ExpectedRevenue(ctx context.Context) (decimal.Decimal, error) {
	_, revenue, err := s.stockFigures(ctx)
	return revenue, err
}

// NetInvested folds the full capital ledger: invested minus withdrawn.
func (s *service) NetInvested(ctx context.Context) (decimal.Decimal, error) {
	conn, err := s.conn.Acquire(ctx)
	if err != nil {
		return decimal.Zero, err
	}

	txns, err := ledger.NewRepository(conn.DB()).ListAll(ctx)
	if err != nil {
		return decimal.Zero, err
	}

	net := decimal.Zero
	for _, txn := range txns {
		net = net.Add(signedAmount(txn))
	}
	return net, nil
}

// InvestorSummaries groups the ledger by investor name in first-appearance
// order. Addition commutes, so the fold order only fixes presentation.
func (s *service) InvestorSummaries(ctx context.Context) ([]InvestorSummary, error) {
	conn, err := s.conn.Acquire(ctx)
	if err != nil {
		return nil, err
	}

	txns, err := ledger.NewRepository(conn.DB()).ListAll(ctx)
	if err != nil {
		return nil, err
	}

	order := []string{}
	byName := map[string]*InvestorSummary{}
	for _, txn := range txns {
		summary, seen := byName[txn.InvestorName]
		if !seen {
			summary = &InvestorSummary{
				Name:           txn.InvestorName,
				TotalInvested:  decimal.Zero,
				TotalWithdrawn: decimal.Zero,
				NetBalance:     decimal.Zero,
			}
			byName[txn.InvestorName] = summary
			order = append(order, txn.InvestorName)
		}

		switch txn.TransactionType {
		case enums.TransactionTypeWithdraw:
			summary.TotalWithdrawn = summary.TotalWithdrawn.Add(txn.Amount)
		default:
			summary.TotalInvested = summary.TotalInvested.Add(txn.Amount)
		}
		summary.NetBalance = summary.NetBalance.Add(signedAmount(txn))
		summary.TransactionCount++

		// Scanning oldest to newest, so later rows overwrite with fresher
		// contact details.
		if txn.InvestorEmail != "" {
			summary.Email = txn.InvestorEmail
		}
		if txn.InvestorPhone != "" {
			summary.Phone = txn.InvestorPhone
		}
	}

	summaries := make([]InvestorSummary, 0, len(order))
	for _, name := range order {
		summaries = append(summaries, *byName[name])
	}
	return summaries, nil
}

// InvestorLedger returns one investor's transactions newest first, each line
// carrying the balance as of that transaction.
func (s *service) InvestorLedger(ctx context.Context, investorName string) ([]LedgerLine, error) {
	name := strings.TrimSpace(investorName)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "investor name is required")
	}

	conn, err := s.conn.Acquire(ctx)
	if err != nil {
		return nil, err
	}

	txns, err := ledger.NewRepository(conn.DB()).ListByInvestor(ctx, name)
	if err != nil {
		return nil, err
	}
	if len(txns) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no transactions for investor")
	}

	lines := make([]LedgerLine, len(txns))
	balance := decimal.Zero
	for i := len(txns) - 1; i >= 0; i-- {
		balance = balance.Add(signedAmount(txns[i]))
		lines[i] = LedgerLine{
			InvestmentTransaction: txns[i],
			RunningBalance:        balance,
		}
	}
	return lines, nil
}

func (s *service) stockFigures(ctx context.Context) (decimal.Decimal, decimal.Decimal, error) {
	conn, err := s.conn.Acquire(ctx)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	items, err := inventory.NewRepository(conn.DB()).ListItems(ctx)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	valuation, revenue := foldStockFigures(items)
	return valuation, revenue, nil
}

// foldStockFigures sums the stored stock value and the projected revenue from
// selling everything at the current price. The figures agree today but are
// reported separately so a future cost basis can diverge them.
func foldStockFigures(items []models.StockItem) (decimal.Decimal, decimal.Decimal) {
	valuation := decimal.Zero
	revenue := decimal.Zero
	for _, item := range items {
		valuation = valuation.Add(item.CurrentStockValue)
		revenue = revenue.Add(item.SellingPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return valuation, revenue
}

func signedAmount(txn models.InvestmentTransaction) decimal.Decimal {
	if txn.TransactionType == enums.TransactionTypeWithdraw {
		return txn.Amount.Neg()
	}
	return txn.Amount
}

package controllers

import (
	"net/http"

	"github.com/chethan81/stockmonitor-backend/api/responses"
	"github.com/chethan81/stockmonitor-backend/api/validators"
	"github.com/chethan81/stockmonitor-backend/internal/ledger"
	"github.com/chethan81/stockmonitor-backend/pkg/enums"
	"github.com/chethan81/stockmonitor-backend/pkg/logger"
	"github.com/shopspring/decimal"
)

type recordInvestmentRequest struct {
	TransactionType string          `json:"transaction_type" validate:"required,oneof=invest withdraw"`
	Amount          decimal.Decimal `json:"amount"`
	Description     string          `json:"description,omitempty"`
	InvestorName    string          `json:"investor_name" validate:"required"`
	InvestorEmail   string          `json:"investor_email,omitempty" validate:"omitempty,email"`
	InvestorPhone   string          `json:"investor_phone,omitempty"`
}

// ListInvestments returns the full capital ledger, oldest first.
func ListInvestments(svc ledger.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		txns, err := svc.ListTransactions(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, txns)
	}
}

// GetInvestment returns one capital movement by id.
func GetInvestment(svc ledger.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		txn, err := svc.GetTransaction(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, txn)
	}
}

// ListInvestorInvestments returns one investor's raw movements newest first.
func ListInvestorInvestments(svc ledger.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name, err := validators.ParseNameParam(r, "name")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		txns, err := svc.ListInvestorTransactions(r.Context(), name)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, txns)
	}
}

// RecordInvestment appends one capital movement.
func RecordInvestment(svc ledger.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload recordInvestmentRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		txn, err := svc.RecordInvestment(r.Context(), ledger.RecordInvestmentInput{
			TransactionType: enums.TransactionType(payload.TransactionType),
			Amount:          payload.Amount,
			Description:     payload.Description,
			InvestorName:    payload.InvestorName,
			InvestorEmail:   payload.InvestorEmail,
			InvestorPhone:   payload.InvestorPhone,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, txn)
	}
}

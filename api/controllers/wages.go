package controllers

import (
	"net/http"

	"github.com/chethan81/stockmonitor-backend/api/responses"
	"github.com/chethan81/stockmonitor-backend/api/validators"
	"github.com/chethan81/stockmonitor-backend/internal/wages"
	"github.com/chethan81/stockmonitor-backend/pkg/logger"
	"github.com/shopspring/decimal"
)

type recordWageRequest struct {
	EmployeeName string          `json:"employee_name" validate:"required"`
	Amount       decimal.Decimal `json:"amount"`
	WageType     string          `json:"wage_type,omitempty"`
	Description  string          `json:"description,omitempty"`
}

// ListWages returns the disbursements newest first with the total paid.
func ListWages(svc wages.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records, total, err := svc.ListWages(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{
			"wages":       records,
			"total_wages": total,
		})
	}
}

// RecordWage appends one payroll disbursement.
func RecordWage(svc wages.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload recordWageRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		wage, err := svc.RecordWage(r.Context(), wages.RecordWageInput{
			EmployeeName: payload.EmployeeName,
			Amount:       payload.Amount,
			WageType:     payload.WageType,
			Description:  payload.Description,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, wage)
	}
}

// DeleteWage removes one disbursement record.
func DeleteWage(svc wages.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteWage(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"deleted": id})
	}
}

package controllers

import (
	"net/http"

	"github.com/chethan81/stockmonitor-backend/api/responses"
	"github.com/chethan81/stockmonitor-backend/api/validators"
	"github.com/chethan81/stockmonitor-backend/internal/reports"
	"github.com/chethan81/stockmonitor-backend/pkg/logger"
)

// ListInvestorSummaries returns the folded per-investor positions plus the
// overall net invested figure.
func ListInvestorSummaries(svc reports.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summaries, err := svc.InvestorSummaries(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		net, err := svc.NetInvested(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{
			"investors":    summaries,
			"net_invested": net,
		})
	}
}

// InvestorLedger returns one investor's transactions with running balances.
func InvestorLedger(svc reports.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name, err := validators.ParseNameParam(r, "name")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		lines, err := svc.InvestorLedger(r.Context(), name)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, lines)
	}
}

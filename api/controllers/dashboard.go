package controllers

import (
	"net/http"

	"github.com/chethan81/stockmonitor-backend/api/middleware"
	"github.com/chethan81/stockmonitor-backend/api/responses"
	"github.com/chethan81/stockmonitor-backend/internal/reports"
	"github.com/chethan81/stockmonitor-backend/pkg/logger"
)

// Dashboard returns the landing-page snapshot.
func Dashboard(svc reports.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dash, err := svc.Dashboard(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		dash.RecentItems = itemViews(middleware.RoleFromContext(r.Context()), dash.RecentItems)
		responses.WriteSuccess(w, dash)
	}
}

package controllers

import (
	"net/http"

	"github.com/chethan81/stockmonitor-backend/api/middleware"
	"github.com/chethan81/stockmonitor-backend/api/responses"
	"github.com/chethan81/stockmonitor-backend/api/validators"
	"github.com/chethan81/stockmonitor-backend/internal/inventory"
	"github.com/chethan81/stockmonitor-backend/pkg/db/models"
	"github.com/chethan81/stockmonitor-backend/pkg/enums"
	"github.com/chethan81/stockmonitor-backend/pkg/logger"
	"github.com/shopspring/decimal"
)

// itemView zeroes the cost-basis figures for non-admin callers. The write
// path already gates cost price to admins; the read path must not hand the
// same figures back.
func itemView(role enums.Role, item models.StockItem) models.StockItem {
	if role == enums.RoleAdmin {
		return item
	}
	item.InitialPrice = decimal.Zero
	item.TotalInitialValue = decimal.Zero
	return item
}

func itemViews(role enums.Role, items []models.StockItem) []models.StockItem {
	views := make([]models.StockItem, len(items))
	for i, item := range items {
		views[i] = itemView(role, item)
	}
	return views
}

type createItemRequest struct {
	Name         string           `json:"name" validate:"required"`
	Quantity     int              `json:"quantity" validate:"min=0"`
	SellingPrice decimal.Decimal  `json:"selling_price"`
	CostPrice    *decimal.Decimal `json:"cost_price,omitempty"`
	Description  string           `json:"description,omitempty"`
}

type updateItemRequest struct {
	Name         *string          `json:"name,omitempty"`
	Quantity     *int             `json:"quantity,omitempty"`
	SellingPrice *decimal.Decimal `json:"selling_price,omitempty"`
	CostPrice    *decimal.Decimal `json:"cost_price,omitempty"`
	Description  *string          `json:"description,omitempty"`
}

type sellItemRequest struct {
	Quantity int    `json:"quantity" validate:"required,gt=0"`
	Place    string `json:"place,omitempty"`
}

// ListItems returns every stock item, newest first.
func ListItems(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListItems(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, itemViews(middleware.RoleFromContext(r.Context()), items))
	}
}

// CreateItem registers a new stock item. The cost price field is honored only
// for admin callers; everyone else gets the selling-price valuation basis.
func CreateItem(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := inventory.AddItemInput{
			Name:         payload.Name,
			Quantity:     payload.Quantity,
			SellingPrice: payload.SellingPrice,
			Description:  payload.Description,
			ActingUser:   middleware.UsernameFromContext(r.Context()),
		}
		if payload.CostPrice != nil && middleware.RoleFromContext(r.Context()) == enums.RoleAdmin {
			input.CostPrice = *payload.CostPrice
		}

		item, err := svc.AddItem(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, itemView(middleware.RoleFromContext(r.Context()), *item))
	}
}

// GetItem returns one stock item by id.
func GetItem(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.GetItem(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, itemView(middleware.RoleFromContext(r.Context()), *item))
	}
}

// UpdateItem applies a partial update and recomputes the valuation fields.
func UpdateItem(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := inventory.UpdateItemInput{
			Name:         payload.Name,
			Quantity:     payload.Quantity,
			SellingPrice: payload.SellingPrice,
			Description:  payload.Description,
		}
		if middleware.RoleFromContext(r.Context()) == enums.RoleAdmin {
			input.CostPrice = payload.CostPrice
		}

		item, err := svc.UpdateItem(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, itemView(middleware.RoleFromContext(r.Context()), *item))
	}
}

// DeleteItem removes a stock item. Sale history is kept.
func DeleteItem(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteItem(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"deleted": id})
	}
}

// SellItem converts stock into a sale atomically.
func SellItem(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload sellItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sale, err := svc.Sell(r.Context(), id, inventory.SellInput{
			Quantity:   payload.Quantity,
			Place:      payload.Place,
			ActingUser: middleware.UsernameFromContext(r.Context()),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, sale)
	}
}

// ListSales returns the sale history, newest first.
func ListSales(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sales, err := svc.ListSales(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, sales)
	}
}

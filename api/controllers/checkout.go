package controllers

import (
	"net/http"

	"github.com/angelmondragon/voltmart-backend/api/middleware"
	"github.com/angelmondragon/voltmart-backend/api/responses"
	"github.com/angelmondragon/voltmart-backend/api/validators"
	checkoutsvc "github.com/angelmondragon/voltmart-backend/internal/checkout"
	pkgerrors "github.com/angelmondragon/voltmart-backend/pkg/errors"
	"github.com/angelmondragon/voltmart-backend/pkg/geo"
	"github.com/angelmondragon/voltmart-backend/pkg/logger"
)

type checkoutRequest struct {
	CustomerName    string     `json:"customer_name" validate:"required,max=120"`
	CustomerPhone   string     `json:"customer_phone" validate:"required,phone"`
	CustomerEmail   *string    `json:"customer_email" validate:"omitempty,email"`
	DeliveryAddress string     `json:"delivery_address" validate:"required,max=500"`
	Location        *geo.Point `json:"location"`
}

// Checkout turns the session's cart into an order and clears the cart.
func Checkout(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		sessionID := middleware.CartSessionFromContext(r.Context())
		if sessionID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "cart session is required"))
			return
		}

		var payload checkoutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.PlaceOrder(r.Context(), sessionID, checkoutsvc.PlaceOrderInput{
			CustomerName:    payload.CustomerName,
			CustomerPhone:   payload.CustomerPhone,
			CustomerEmail:   payload.CustomerEmail,
			DeliveryAddress: payload.DeliveryAddress,
			Location:        payload.Location,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if logg != nil {
			ctx := logg.WithOrderNumber(r.Context(), order.OrderNumber)
			logg.Info(ctx, "checkout.order_placed")
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}

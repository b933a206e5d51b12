package controllers

import (
	"errors"
	"net/http"

	"github.com/shashiranjanraj/flowershop/app/models"
	"github.com/shashiranjanraj/flowershop/app/services"
	"github.com/shashiranjanraj/flowershop/pkg/auth"
	"github.com/shashiranjanraj/flowershop/pkg/ctx"
	"github.com/shashiranjanraj/flowershop/pkg/logger"
)

// Client-facing messages for domain failures.
const (
	msgLotNotFound        = "Lot not found"
	msgLotNotOwned        = "Lot not found or you do not have permissions"
	msgSellerNotFound     = "Specified seller does not exist"
	msgInvalidCredentials = "Invalid username or password"
	msgConflict           = "Conflict"
	msgInternal           = "Internal Server Error"
)

// respondError maps a service error to its HTTP status. Anything it does not
// recognise is logged and answered with a bare 500.
func respondError(c *ctx.Context, err error) {
	var (
		validation *services.ValidationError
		conflict   *services.ConflictError
		stock      *services.InsufficientStockError
	)

	switch {
	case errors.As(err, &validation):
		c.ValidationError(validation.Fields)
	case errors.As(err, &conflict):
		c.Fail(http.StatusConflict, msgConflict, conflict.Messages())
	case errors.As(err, &stock):
		c.Error(http.StatusBadRequest, stock.Error())
	case errors.Is(err, models.ErrInvalidQuantity):
		c.ValidationError(map[string]string{"quantity": "The quantity must be a positive integer."})
	case errors.Is(err, services.ErrLotNotFound):
		c.NotFound(msgLotNotFound)
	case errors.Is(err, services.ErrSellerNotFound):
		c.NotFound(msgSellerNotFound)
	case errors.Is(err, services.ErrInvalidCredentials):
		c.Forbidden(msgInvalidCredentials)
	default:
		logger.WithCtx(c.Context()).Error("request failed", "path", c.R.URL.Path, "error", err)
		c.Error(http.StatusInternalServerError, msgInternal)
	}
}

// principal returns the user stored by the rbac middleware. Routes that
// reach a handler without one are wired wrong, which is a 500.
func principal(c *ctx.Context) (auth.Principal, bool) {
	p, ok := c.Principal()
	if !ok {
		logger.WithCtx(c.Context()).Error("route reached without a principal", "path", c.R.URL.Path)
		c.Error(http.StatusInternalServerError, msgInternal)
	}
	return p, ok
}

func lotIDParam(c *ctx.Context) (uint, bool) {
	id, err := c.ParamUint("lot_id")
	if err != nil {
		c.ValidationError(map[string]string{"lot_id": err.Error()})
		return 0, false
	}
	return id, true
}

package controllers

import (
	"github.com/shashiranjanraj/flowershop/app/services"
	"github.com/shashiranjanraj/flowershop/pkg/ctx"
	"github.com/shashiranjanraj/flowershop/pkg/resource"
)

type orderInput struct {
	LotID    uint `json:"lot_id" validate:"required"`
	Quantity int  `json:"quantity"`
}

type OrderController struct {
	service *services.OrderService
}

func NewOrderController(service *services.OrderService) *OrderController {
	return &OrderController{service: service}
}

// Create handles POST /create-order.
func (o *OrderController) Create(c *ctx.Context) {
	customer, ok := principal(c)
	if !ok {
		return
	}
	var in orderInput
	if !c.BindJSON(&in) {
		return
	}

	receipt, err := o.service.PlaceOrder(c.Context(), customer, in.LotID, in.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Created(resource.One(receipt, receiptResource))
}

// Deals handles GET /deals: orders the caller bought or sold.
func (o *OrderController) Deals(c *ctx.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	deals, err := o.service.Deals(c.Context(), p.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Success(resource.Collection(deals, dealResource))
}

package controllers

import (
	"errors"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/shashiranjanraj/flowershop/app/services"
	"github.com/shashiranjanraj/flowershop/pkg/ctx"
	"github.com/shashiranjanraj/flowershop/pkg/resource"
)

type newLotInput struct {
	FlowerName    string          `json:"flower_name"    validate:"required"`
	FlowerColor   string          `json:"flower_color"   validate:"required"`
	IsDisplayed   *bool           `json:"is_displayed"`
	FlowersAmount int             `json:"flowers_amount" validate:"required,gt=0"`
	PriceForOne   decimal.Decimal `json:"price_for_one"`
}

type displayInput struct {
	IsDisplayed *bool `json:"is_displayed" validate:"required"`
}

// LotController serves the seller side of the shop.
type LotController struct {
	service *services.LotService
}

func NewLotController(service *services.LotService) *LotController {
	return &LotController{service: service}
}

// Create handles POST /new-lot.
func (l *LotController) Create(c *ctx.Context) {
	seller, ok := principal(c)
	if !ok {
		return
	}
	var in newLotInput
	if !c.BindJSON(&in) {
		return
	}

	lot, err := l.service.Create(c.Context(), seller.ID, services.NewLot(in))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Created(resource.One(lot, lotResource))
}

// SetDisplayed handles PATCH /lot/{lot_id}/display.
func (l *LotController) SetDisplayed(c *ctx.Context) {
	seller, ok := principal(c)
	if !ok {
		return
	}
	lotID, ok := lotIDParam(c)
	if !ok {
		return
	}
	var in displayInput
	if !c.BindJSON(&in) {
		return
	}

	err := l.service.SetDisplayed(c.Context(), seller.ID, lotID, *in.IsDisplayed)
	switch {
	case errors.Is(err, services.ErrLotNotFound):
		c.NotFound(msgLotNotOwned)
	case err != nil:
		respondError(c, err)
	default:
		c.Message(http.StatusOK, "displaying status has been successfully updated")
	}
}

// Index handles GET /lots: every lot of the calling seller.
func (l *LotController) Index(c *ctx.Context) {
	seller, ok := principal(c)
	if !ok {
		return
	}

	lots, err := l.service.Owned(c.Context(), seller.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Success(resource.Collection(lots, lotResource))
}

// Show handles GET /lots/{lot_id}.
func (l *LotController) Show(c *ctx.Context) {
	seller, ok := principal(c)
	if !ok {
		return
	}
	lotID, ok := lotIDParam(c)
	if !ok {
		return
	}

	lot, err := l.service.OwnedOne(c.Context(), seller.ID, lotID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Success(resource.One(lot, lotResource))
}

// Delete handles DELETE /lots/{lot_id}. Deleting a missing lot is not an error.
func (l *LotController) Delete(c *ctx.Context) {
	seller, ok := principal(c)
	if !ok {
		return
	}
	lotID, ok := lotIDParam(c)
	if !ok {
		return
	}

	if err := l.service.Delete(c.Context(), seller.ID, lotID); err != nil {
		respondError(c, err)
		return
	}
	c.NoContent()
}

// Browse handles GET /flowershop/all_flowers[/{saller_name}]: displayed lots
// of every seller, or of one. ?page=N&limit=M paginates.
func (l *LotController) Browse(c *ctx.Context) {
	page := c.QueryInt("page", 0)
	listings, p, err := l.service.Browse(c.Context(), c.Param("saller_name"), page, c.QueryInt("limit", 20))
	if err != nil {
		respondError(c, err)
		return
	}

	items := resource.Collection(listings, listingResource)
	if page < 1 {
		c.Success(items)
		return
	}
	c.Paginated(items, p)
}

package routes

import (
	"github.com/shashiranjanraj/flowershop/app/controllers"
	"github.com/shashiranjanraj/flowershop/pkg/auth"
	"github.com/shashiranjanraj/flowershop/pkg/ctx"
	"github.com/shashiranjanraj/flowershop/pkg/middleware"
	"github.com/shashiranjanraj/flowershop/pkg/rbac"
	"github.com/shashiranjanraj/flowershop/pkg/router"
)

// Controllers bundles the handlers the API routes dispatch to.
type Controllers struct {
	Auth     *controllers.AuthController
	Lots     *controllers.LotController
	Orders   *controllers.OrderController
	Comments *controllers.CommentController
}

// RegisterAPI mounts the marketplace API under prefix.
func RegisterAPI(r *router.Router, prefix string, gate *auth.Gate, c Controllers) {
	api := r.Group(prefix)
	api.Post("/login", "auth.login", ctx.Wrap(c.Auth.Login))
	api.Post("/registration/new", "auth.register", ctx.Wrap(c.Auth.Register))

	authed := api.Group("", middleware.Authenticate(gate))
	member := authed.Group("", rbac.AnyRole(gate))
	seller := authed.Group("", rbac.HasRole(gate, auth.RoleSeller))
	customer := authed.Group("", rbac.HasRole(gate, auth.RoleCustomer))

	member.Get("/refresh", "auth.refresh", ctx.Wrap(c.Auth.Refresh))

	seller.Post("/new-lot", "lots.create", ctx.Wrap(c.Lots.Create))
	seller.Patch("/lot/{lot_id}/display", "lots.display", ctx.Wrap(c.Lots.SetDisplayed))
	seller.Get("/lots", "lots.index", ctx.Wrap(c.Lots.Index))
	seller.Get("/lots/{lot_id}", "lots.show", ctx.Wrap(c.Lots.Show))
	seller.Delete("/lots/{lot_id}", "lots.delete", ctx.Wrap(c.Lots.Delete))

	member.Post("/lot/{lot_id}/comment", "comments.lot.create", ctx.Wrap(c.Comments.CommentLot))
	member.Get("/lot/{lot_id}/comment", "comments.lot.index", ctx.Wrap(c.Comments.LotComments))
	member.Post("/saller/{name}/comment", "comments.seller.create", ctx.Wrap(c.Comments.CommentSeller))
	member.Get("/saller/{name}/comment", "comments.seller.index", ctx.Wrap(c.Comments.SellerComments))

	member.Get("/flowershop/all_flowers", "shop.browse", ctx.Wrap(c.Lots.Browse))
	member.Get("/flowershop/all_flowers/{saller_name}", "shop.browse.seller", ctx.Wrap(c.Lots.Browse))

	customer.Post("/create-order", "orders.create", ctx.Wrap(c.Orders.Create))
	member.Get("/deals", "orders.deals", ctx.Wrap(c.Orders.Deals))
}

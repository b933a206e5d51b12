// Package kernel wires the marketplace onto an application: repositories on
// its database, services on the repositories, controllers on the services.
package kernel

import (
	"fmt"

	"github.com/shashiranjanraj/flowershop/app/controllers"
	"github.com/shashiranjanraj/flowershop/app/repositories"
	"github.com/shashiranjanraj/flowershop/app/routes"
	"github.com/shashiranjanraj/flowershop/app/services"
	"github.com/shashiranjanraj/flowershop/config"
	"github.com/shashiranjanraj/flowershop/pkg/app"
	"github.com/shashiranjanraj/flowershop/pkg/auth"
	"github.com/shashiranjanraj/flowershop/pkg/router"
)

// NewCodec builds the token codec described by cfg.
func NewCodec(cfg *config.Config) (*auth.Codec, error) {
	codec, err := auth.NewCodec(auth.TokenConfig{
		Secret:          cfg.JWTSecret,
		Algorithm:       cfg.JWTAlgorithm,
		AccessLifetime:  cfg.AccessLifetime,
		RefreshLifetime: cfg.RefreshLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("kernel: %w", err)
	}
	return codec, nil
}

// API registers the marketplace routes. It is an app.RoutesFunc.
func API(a *app.Application, r *router.Router) error {
	codec, err := NewCodec(a.Config())
	if err != nil {
		return err
	}

	db := a.DB()
	users := repositories.NewUserRepository(db)
	lots := repositories.NewLotRepository(db)
	orders := repositories.NewOrderRepository(db)
	comments := repositories.NewCommentRepository(db)

	routes.RegisterAPI(r, a.Config().APIPrefix, auth.NewGate(codec, users), routes.Controllers{
		Auth:     controllers.NewAuthController(services.NewAuthService(users, codec)),
		Lots:     controllers.NewLotController(services.NewLotService(lots)),
		Orders:   controllers.NewOrderController(services.NewOrderService(db, lots, orders, users)),
		Comments: controllers.NewCommentController(services.NewCommentService(comments, lots, users)),
	})
	return nil
}

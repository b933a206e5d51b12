package app

import (
	"context"
	"net/http"
	"time"

	"github.com/shashiranjanraj/flowershop/pkg/metrics"
	"github.com/shashiranjanraj/flowershop/pkg/middleware"
	"github.com/shashiranjanraj/flowershop/pkg/reqid"
	"github.com/shashiranjanraj/flowershop/pkg/response"
	"github.com/shashiranjanraj/flowershop/pkg/router"
)

// Kernel builds the router: global middleware, operational endpoints and
// every registered project route.
func (a *Application) Kernel() (*router.Router, error) {
	r := router.New()

	// Global middleware stack (outermost → innermost):
	//  1. Prometheus metrics, for total latency
	//  2. Recovery
	//  3. Request ID, before anything logs
	//  4. Logger
	//  5. CORS
	//  6. Rate limiter
	r.Use(metrics.Middleware())
	r.Use(middleware.Recovery)
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger)
	r.Use(middleware.CORS(middleware.DefaultCORSOptions()))
	if a.limiter != nil {
		r.Use(middleware.RateLimit(a.limiter))
	}

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		response.NotFound(w)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		response.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.Handle("/metrics", "metrics", metrics.Handler())
	r.Get("/healthz", "healthz", a.health)

	for _, fn := range a.routesFns {
		if err := fn(a, r); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// health reports whether the database answers a ping.
func (a *Application) health(w http.ResponseWriter, r *http.Request) {
	if a.db == nil {
		response.Error(w, http.StatusServiceUnavailable, "database not connected")
		return
	}
	sqlDB, err := a.db.DB()
	if err == nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		response.Error(w, http.StatusServiceUnavailable, "database unavailable")
		return
	}
	response.Success(w, map[string]string{"status": "ok"})
}

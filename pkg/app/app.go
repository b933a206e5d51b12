// Package app boots the flowershop process: logger, database, rate limiter
// and the HTTP kernel. Project routes are attached with Routes:
//
//	a := app.New(cfg).Routes(kernel.API)
//	if err := a.Boot(); err != nil { ... }
//	defer a.Close()
//	a.Serve(ctx)
package app

import (
	"context"
	"net"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/flowershop/config"
	"github.com/shashiranjanraj/flowershop/internal/server"
	"github.com/shashiranjanraj/flowershop/pkg/bind"
	"github.com/shashiranjanraj/flowershop/pkg/database"
	"github.com/shashiranjanraj/flowershop/pkg/logger"
	"github.com/shashiranjanraj/flowershop/pkg/middleware"
	"github.com/shashiranjanraj/flowershop/pkg/router"
)

// RoutesFunc registers project routes. It receives the booted application
// so it can build repositories on its database.
type RoutesFunc func(a *Application, r *router.Router) error

// Application is the central object of a flowershop process.
type Application struct {
	cfg       *config.Config
	db        *gorm.DB
	limiter   middleware.Limiter
	routesFns []RoutesFunc
	closers   []func()
}

// New creates an Application for cfg. Nothing is opened until Boot.
func New(cfg *config.Config) *Application {
	return &Application{cfg: cfg}
}

// Config returns the configuration the application was built with.
func (a *Application) Config() *config.Config { return a.cfg }

// DB returns the database handle opened by Boot or set by WithDB.
func (a *Application) DB() *gorm.DB { return a.db }

// WithDB uses an already opened database instead of connecting in Boot.
func (a *Application) WithDB(db *gorm.DB) *Application {
	a.db = db
	return a
}

// Routes registers a route-registration callback. Callbacks run in order
// when the handler is built.
func (a *Application) Routes(fn RoutesFunc) *Application {
	a.routesFns = append(a.routesFns, fn)
	return a
}

// BootLogger installs the process logger from the configuration.
func (a *Application) BootLogger() error {
	closeLog, err := logger.Setup(logger.Options{
		Production:    a.cfg.IsProduction(),
		MongoURI:      a.cfg.LogMongoURI,
		MongoDatabase: a.cfg.LogMongoDB,
	})
	if err != nil {
		return err
	}
	a.closers = append(a.closers, closeLog)
	return nil
}

// BootDatabase opens the configured database unless one was supplied.
func (a *Application) BootDatabase() error {
	if a.db != nil {
		return nil
	}
	db, err := database.Connect(a.cfg)
	if err != nil {
		return err
	}
	a.db = db
	a.closers = append(a.closers, func() {
		if err := database.Close(db); err != nil {
			logger.Warn("closing database", "error", err)
		}
	})
	return nil
}

// Boot prepares everything Serve needs.
func (a *Application) Boot() error {
	if err := a.BootLogger(); err != nil {
		return err
	}
	if err := a.BootDatabase(); err != nil {
		return err
	}
	bind.SetMaxBodyBytes(a.cfg.MaxBodyBytes)
	a.limiter = a.newLimiter()
	return nil
}

// Serve builds the handler and serves it on APP_PORT until ctx ends.
func (a *Application) Serve(ctx context.Context) error {
	if l, ok := a.limiter.(*middleware.MemoryLimiter); ok {
		go l.Run(ctx, time.Minute)
	}

	r, err := a.Kernel()
	if err != nil {
		return err
	}
	return server.Start(ctx, net.JoinHostPort("", a.cfg.AppPort), r.Handler(), nil)
}

// Close releases everything Boot opened, in reverse order.
func (a *Application) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

// newLimiter picks the configured rate limiter. An unreachable Redis falls
// back to the in-memory limiter.
func (a *Application) newLimiter() middleware.Limiter {
	perMinute := a.cfg.RateLimitPerMinute
	memory := middleware.NewMemoryLimiter(perMinute, time.Minute)
	if a.cfg.RateLimitDriver != "redis" {
		return memory
	}

	rdb := redis.NewClient(&redis.Options{Addr: a.cfg.RedisAddr, Password: a.cfg.RedisPassword})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unavailable, using in-memory rate limiter", "addr", a.cfg.RedisAddr, "error", err)
		rdb.Close()
		return memory
	}

	a.closers = append(a.closers, func() { rdb.Close() })
	logger.Info("rate limiter", "driver", "redis", "addr", a.cfg.RedisAddr)
	return middleware.NewRedisLimiter(rdb, perMinute, time.Minute)
}

// Package app arma la aplicación HTTP a partir de la config y el store abierto.
//
//	config ─┬─► jwt.Issuer ──────────────┐
//	        ├─► cache ─► authz.Resolver ─┤
//	        ├─► payment.Provider ────────┼─► services ─► controllers ─► router
//	DAL ────┴────────────────────────────┘
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dropDatabas3/bestseller/internal/authz"
	"github.com/dropDatabas3/bestseller/internal/cache"
	"github.com/dropDatabas3/bestseller/internal/config"
	"github.com/dropDatabas3/bestseller/internal/domain/repository"
	"github.com/dropDatabas3/bestseller/internal/http/controllers"
	mw "github.com/dropDatabas3/bestseller/internal/http/middlewares"
	"github.com/dropDatabas3/bestseller/internal/http/router"
	"github.com/dropDatabas3/bestseller/internal/http/services"
	jwtx "github.com/dropDatabas3/bestseller/internal/jwt"
	"github.com/dropDatabas3/bestseller/internal/observability/logger"
	"github.com/dropDatabas3/bestseller/internal/payment"
)

// Deps dependencias externas ya construidas. Las opcionales en nil se
// arman desde la config.
type Deps struct {
	DAL repository.DataAccessLayer

	// Payment reemplaza al provider de Stripe (tests).
	Payment payment.Provider
	// Registerer para métricas; nil usa prometheus.DefaultRegisterer.
	Registerer prometheus.Registerer
}

// App es la aplicación cableada.
type App struct {
	Handler http.Handler
	Issuer  *jwtx.Issuer

	cache cache.Client
}

// New construye la aplicación.
func New(ctx context.Context, cfg *config.Config, deps Deps) (*App, error) {
	if deps.DAL == nil {
		return nil, repository.ErrNoDatabase
	}
	log := logger.From(ctx).With(logger.Component("app"))

	// 1. Tokens
	issuer, err := jwtx.NewIssuer(cfg.JWT.Secret, config.Duration(cfg.JWT.TTL, jwtx.DefaultTTL))
	if err != nil {
		return nil, fmt.Errorf("app: issuer: %w", err)
	}

	// 2. Roles (con cache opcional)
	var (
		roles    authz.Resolver = authz.NewStoreResolver(deps.DAL.Users())
		roleCache cache.Client
	)
	if cfg.Cache.Kind != "none" {
		roleCache, err = cache.New(ctx, cache.Config{
			Driver:     cfg.Cache.Kind,
			Addr:       cfg.Cache.Redis.Addr,
			DB:         cfg.Cache.Redis.DB,
			Prefix:     cfg.Cache.Redis.Prefix,
			DefaultTTL: config.Duration(cfg.Cache.TTL, 0),
		})
		if err != nil {
			return nil, fmt.Errorf("app: role cache: %w", err)
		}
		roles = authz.NewCachedResolver(roles, roleCache, config.Duration(cfg.Cache.TTL, 0))
		log.Info("role cache enabled", logger.String("kind", cfg.Cache.Kind))
	}

	// 3. Pagos
	provider := deps.Payment
	if provider == nil {
		provider, err = payment.NewStripe(cfg.Payment.StripeSecretKey)
		if errors.Is(err, payment.ErrNotConfigured) {
			log.Warn("STRIPE_SECRET_KEY not set, payment intents disabled")
			provider = payment.Disabled{}
		}
	}

	// 4. Métricas
	reg := deps.Registerer
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	metricsHandler, err := mw.RegisterMetrics(reg)
	if err != nil {
		closeCache(roleCache)
		return nil, fmt.Errorf("app: metrics: %w", err)
	}

	// 5. Services → controllers → router
	svcs := services.New(services.Deps{
		DAL:                 deps.DAL,
		Signer:              issuer,
		Payment:             provider,
		InvalidateRole:      authz.InvalidateFunc(roles),
		Currency:            cfg.Payment.Currency,
		LegacyProductByName: cfg.Policy.LegacyOrderProductByName,
	})
	ctrls := controllers.New(svcs, controllers.Options{
		EnforceProductOwner: cfg.Policy.EnforceProductOwner,
	})
	handler := router.New(router.Deps{
		Controllers: ctrls,
		Tokens:      issuer,
		Roles:       roles,
		Policy:      cfg.Policy,
		CORSOrigins: cfg.Server.CORSAllowedOrigins,
		Metrics:     metricsHandler,
	})

	return &App{Handler: handler, Issuer: issuer, cache: roleCache}, nil
}

// Close libera lo que la app abrió. El DAL lo cierra quien lo abrió.
func (a *App) Close() error {
	return closeCache(a.cache)
}

func closeCache(c cache.Client) error {
	if c == nil {
		return nil
	}
	return c.Close()
}

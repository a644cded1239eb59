package authz

import (
	"context"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/dropDatabas3/bestseller/internal/cache"
	"github.com/dropDatabas3/bestseller/internal/domain/types"
	"github.com/dropDatabas3/bestseller/internal/metrics"
	"github.com/dropDatabas3/bestseller/internal/observability/logger"
)

// CachedResolver envuelve otro Resolver con un cache de roles.
// Los lookups concurrentes del mismo email se colapsan con singleflight.
// Solo se cachean resoluciones exitosas; una negación siempre vuelve al store.
type CachedResolver struct {
	next  Resolver
	cache cache.Client
	ttl   time.Duration
	sf    singleflight.Group
}

// NewCachedResolver crea el wrapper. ttl 0 usa el default del cache.
func NewCachedResolver(next Resolver, c cache.Client, ttl time.Duration) *CachedResolver {
	return &CachedResolver{next: next, cache: c, ttl: ttl}
}

func roleKey(email string) string {
	return "role:" + strings.TrimSpace(email)
}

func (r *CachedResolver) ResolveRole(ctx context.Context, email string) (types.Role, error) {
	key := roleKey(email)

	if v, err := r.cache.Get(ctx, key); err == nil {
		if role, perr := types.ParseRole(v); perr == nil {
			metrics.RoleCacheLookups.WithLabelValues("hit").Inc()
			return role, nil
		}
	} else if !cache.IsNotFound(err) {
		logger.From(ctx).Warn("role cache get failed", logger.Component("authz"), logger.Err(err))
	}
	metrics.RoleCacheLookups.WithLabelValues("miss").Inc()

	v, err, _ := r.sf.Do(key, func() (interface{}, error) {
		role, err := r.next.ResolveRole(ctx, email)
		if err != nil {
			return types.Role(""), err
		}
		if serr := r.cache.Set(ctx, key, role.String(), r.ttl); serr != nil {
			logger.From(ctx).Warn("role cache set failed", logger.Component("authz"), logger.Err(serr))
		}
		return role, nil
	})
	if err != nil {
		return "", err
	}
	return v.(types.Role), nil
}

// Invalidate descarta el rol cacheado del email.
func (r *CachedResolver) Invalidate(ctx context.Context, email string) {
	if err := r.cache.Delete(ctx, roleKey(email)); err != nil {
		logger.From(ctx).Warn("role cache invalidate failed",
			logger.Component("authz"), logger.Email(email), logger.Err(err))
	}
}

// InvalidateFunc retorna una función de invalidación si el resolver la soporta,
// o un no-op.
func InvalidateFunc(r Resolver) func(ctx context.Context, email string) {
	if inv, ok := r.(Invalidator); ok {
		return inv.Invalidate
	}
	return func(context.Context, string) {}
}

package authz

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/bestseller/internal/cache"
	"github.com/dropDatabas3/bestseller/internal/domain/repository"
	"github.com/dropDatabas3/bestseller/internal/domain/types"
	"github.com/dropDatabas3/bestseller/internal/store/adapters/memory"
)

func seedUsers(t *testing.T, docs ...repository.Document) *memory.Collection {
	t.Helper()
	c := memory.NewCollection(types.CollectionUsers)
	for _, d := range docs {
		_, err := c.InsertOne(context.Background(), d)
		require.NoError(t, err)
	}
	return c
}

func TestStoreResolver(t *testing.T) {
	users := seedUsers(t,
		repository.Document{"email": "b@x.com", "role": "Buyer"},
		repository.Document{"email": "s@x.com", "role": "Seller"},
		repository.Document{"email": "a@x.com", "role": "Admin"},
		repository.Document{"email": "weird@x.com", "role": "superuser"},
		repository.Document{"email": "norole@x.com"},
	)
	r := NewStoreResolver(users)
	ctx := context.Background()

	tests := []struct {
		email string
		want  types.Role
		err   error
	}{
		{"b@x.com", types.RoleBuyer, nil},
		{"s@x.com", types.RoleSeller, nil},
		{"a@x.com", types.RoleAdmin, nil},
		{"weird@x.com", "", ErrUnknownRole},
		{"norole@x.com", "", ErrUnknownRole},
		{"ghost@x.com", "", ErrUserNotFound},
		{"", "", ErrUserNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			got, err := r.ResolveRole(ctx, tt.email)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				assert.True(t, IsDenied(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

type countingResolver struct {
	calls atomic.Int32
	role  types.Role
	err   error
	delay time.Duration
}

func (c *countingResolver) ResolveRole(ctx context.Context, email string) (types.Role, error) {
	c.calls.Add(1)
	if c.delay > 0 {
		time.Sleep(c.delay)
	}
	return c.role, c.err
}

func TestCachedResolver_HitsCache(t *testing.T) {
	next := &countingResolver{role: types.RoleSeller}
	r := NewCachedResolver(next, cache.NewMemory("", time.Minute), 0)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		role, err := r.ResolveRole(ctx, "s@x.com")
		require.NoError(t, err)
		assert.Equal(t, types.RoleSeller, role)
	}
	assert.EqualValues(t, 1, next.calls.Load())

	r.Invalidate(ctx, "s@x.com")
	_, err := r.ResolveRole(ctx, "s@x.com")
	require.NoError(t, err)
	assert.EqualValues(t, 2, next.calls.Load())
}

func TestCachedResolver_DoesNotCacheDenials(t *testing.T) {
	next := &countingResolver{err: ErrUserNotFound}
	r := NewCachedResolver(next, cache.NewMemory("", time.Minute), 0)
	ctx := context.Background()

	_, err := r.ResolveRole(ctx, "ghost@x.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
	_, err = r.ResolveRole(ctx, "ghost@x.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.EqualValues(t, 2, next.calls.Load())
}

func TestCachedResolver_CollapsesConcurrentLookups(t *testing.T) {
	next := &countingResolver{role: types.RoleAdmin, delay: 50 * time.Millisecond}
	r := NewCachedResolver(next, cache.NewMemory("", time.Minute), 0)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			role, err := r.ResolveRole(context.Background(), "a@x.com")
			assert.NoError(t, err)
			assert.Equal(t, types.RoleAdmin, role)
		}()
	}
	wg.Wait()
	assert.LessOrEqual(t, next.calls.Load(), int32(8))
	assert.GreaterOrEqual(t, next.calls.Load(), int32(1))
}

func TestInvalidateFunc(t *testing.T) {
	// Un resolver sin estado devuelve un no-op.
	f := InvalidateFunc(NewStoreResolver(seedUsers(t)))
	assert.NotPanics(t, func() { f(context.Background(), "x@x.com") })

	c := NewCachedResolver(&countingResolver{role: types.RoleBuyer}, cache.NewMemory("", time.Minute), 0)
	assert.NotNil(t, InvalidateFunc(c))
}

func TestStoreResolver_PropagatesStoreFailure(t *testing.T) {
	boom := errors.New("connection reset")
	r := NewStoreResolver(failingCollection{err: boom})
	_, err := r.ResolveRole(context.Background(), "a@x.com")
	assert.ErrorIs(t, err, boom)
	assert.False(t, IsDenied(err))
}

type failingCollection struct {
	repository.DocumentCollection
	err error
}

func (f failingCollection) FindOne(ctx context.Context, flt repository.Filter) (repository.Document, error) {
	return nil, f.err
}

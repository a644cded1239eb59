package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	c := NewMemory("test:", time.Minute)

	_, err := c.Get(ctx, "role:a@x.com")
	assert.True(t, IsNotFound(err))

	require.NoError(t, c.Set(ctx, "role:a@x.com", "Seller", 0))
	v, err := c.Get(ctx, "role:a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "Seller", v)

	require.NoError(t, c.Delete(ctx, "role:a@x.com"))
	_, err = c.Get(ctx, "role:a@x.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemory_Expires(t *testing.T) {
	ctx := context.Background()
	c := NewMemory("", time.Minute)

	require.NoError(t, c.Set(ctx, "k", "v", 10*time.Millisecond))
	time.Sleep(30 * time.Millisecond)
	_, err := c.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNew(t *testing.T) {
	c, err := New(context.Background(), Config{Driver: "memory"})
	require.NoError(t, err)
	assert.NoError(t, c.Ping(context.Background()))
	assert.NoError(t, c.Close())

	_, err = New(context.Background(), Config{Driver: "memcached"})
	assert.Error(t, err)
}

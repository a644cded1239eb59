package bootstrap

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/bestseller/internal/domain/repository"
	"github.com/dropDatabas3/bestseller/internal/domain/types"
	"github.com/dropDatabas3/bestseller/internal/store/adapters/memory"
)

func TestEnsureAdmin(t *testing.T) {
	ctx := context.Background()
	users := memory.NewCollection(types.CollectionUsers)

	wrote, err := EnsureAdmin(ctx, AdminBootstrapConfig{Users: users})
	require.NoError(t, err)
	assert.False(t, wrote, "sin email no hace nada")

	_, err = users.InsertOne(ctx, repository.Document{"email": "boss@x.com", "role": "Buyer"})
	require.NoError(t, err)

	wrote, err = EnsureAdmin(ctx, AdminBootstrapConfig{Users: users, AdminEmail: "boss@x.com"})
	require.NoError(t, err)
	assert.True(t, wrote)
	doc, _ := users.FindOne(ctx, repository.Filter{"email": "boss@x.com"})
	assert.Equal(t, "Admin", doc.String("role"))

	// ya hay admin: no toca a nadie más
	wrote, err = EnsureAdmin(ctx, AdminBootstrapConfig{Users: users, AdminEmail: "other@x.com"})
	require.NoError(t, err)
	assert.False(t, wrote)
	assert.Equal(t, 1, users.Len())
}

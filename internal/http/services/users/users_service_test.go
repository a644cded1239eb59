package users

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/bestseller/internal/domain/repository"
	"github.com/dropDatabas3/bestseller/internal/domain/types"
	jwtx "github.com/dropDatabas3/bestseller/internal/jwt"
	"github.com/dropDatabas3/bestseller/internal/store/adapters/memory"
)

type invalidations struct {
	mu     sync.Mutex
	emails []string
}

func (i *invalidations) fn(_ context.Context, email string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.emails = append(i.emails, email)
}

func setup(t *testing.T) (*memory.Collection, *jwtx.Issuer, *invalidations, UserService) {
	t.Helper()
	users := memory.NewCollection(types.CollectionUsers)
	iss, err := jwtx.NewIssuer("secret", time.Hour)
	require.NoError(t, err)
	inv := &invalidations{}
	return users, iss, inv, NewUserService(Deps{Users: users, Signer: iss, InvalidateRole: inv.fn})
}

func TestLogin_UpsertAndToken(t *testing.T) {
	ctx := context.Background()
	users, iss, inv, svc := setup(t)

	body := repository.Document{"email": "new@x.com", "role": "Buyer", "name": "Ana"}
	res, err := svc.Login(ctx, "new@x.com", body)
	require.NoError(t, err)
	assert.EqualValues(t, 1, res.Result.UpsertedCount)

	claims, err := iss.Parse(res.Token)
	require.NoError(t, err)
	assert.Equal(t, "new@x.com", claims.Email)

	first, err := users.FindOne(ctx, repository.Filter{"email": "new@x.com"})
	require.NoError(t, err)
	assert.Equal(t, "Buyer", first.String("role"))

	// mismo login dos veces: mismos campos, sin duplicar
	res, err = svc.Login(ctx, "new@x.com", body)
	require.NoError(t, err)
	assert.EqualValues(t, 1, res.Result.MatchedCount)
	assert.EqualValues(t, 0, res.Result.ModifiedCount)
	assert.Equal(t, 1, users.Len())

	second, _ := users.FindOne(ctx, repository.Filter{"email": "new@x.com"})
	assert.Equal(t, first, second)
	assert.Equal(t, []string{"new@x.com", "new@x.com"}, inv.emails)
}

func TestSetRole(t *testing.T) {
	ctx := context.Background()
	users, _, inv, svc := setup(t)

	_, err := svc.SetRole(ctx, "s@x.com", repository.Document{})
	assert.ErrorIs(t, err, repository.ErrInvalidInput)

	_, err = svc.SetRole(ctx, "s@x.com", repository.Document{"role": "Superuser"})
	assert.ErrorIs(t, err, types.ErrUnknownRole)
	assert.Equal(t, 0, users.Len())

	_, err = svc.SetRole(ctx, "s@x.com", repository.Document{"role": "Seller"})
	require.NoError(t, err)
	doc, _ := users.FindOne(ctx, repository.Filter{"email": "s@x.com"})
	assert.Equal(t, "Seller", doc.String("role"))
	assert.Equal(t, []string{"s@x.com"}, inv.emails)
}

func TestCheckRole(t *testing.T) {
	ctx := context.Background()
	users, _, _, svc := setup(t)
	_, err := users.InsertOne(ctx, repository.Document{"email": "a@x.com", "role": "Admin"})
	require.NoError(t, err)

	got, err := svc.CheckRole(ctx, "a@x.com", types.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", got.String("email"))

	got, err = svc.CheckRole(ctx, "a@x.com", types.RoleSeller)
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = svc.CheckRole(ctx, "ghost@x.com", types.RoleAdmin)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDelete_Invalidates(t *testing.T) {
	ctx := context.Background()
	users, _, inv, svc := setup(t)
	ins, err := users.InsertOne(ctx, repository.Document{"email": "b@x.com", "role": "Buyer"})
	require.NoError(t, err)

	res, err := svc.Delete(ctx, ins.InsertedID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, res.DeletedCount)
	assert.Equal(t, []string{"b@x.com"}, inv.emails)

	res, err = svc.Delete(ctx, ins.InsertedID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, res.DeletedCount)
}

func TestVerify(t *testing.T) {
	ctx := context.Background()
	users, _, _, svc := setup(t)
	ins, _ := users.InsertOne(ctx, repository.Document{"email": "s@x.com", "role": "Seller"})

	res, err := svc.Verify(ctx, ins.InsertedID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, res.ModifiedCount)

	doc, _ := users.FindOne(ctx, repository.ByID(ins.InsertedID))
	assert.True(t, doc.Bool("verified"))
}

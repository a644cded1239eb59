package products

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/bestseller/internal/domain/repository"
	"github.com/dropDatabas3/bestseller/internal/domain/types"
	"github.com/dropDatabas3/bestseller/internal/store/adapters/memory"
)

func TestSoldThenAvailable(t *testing.T) {
	ctx := context.Background()
	c := memory.NewCollection(types.CollectionProducts)
	svc := NewProductService(c)

	ins, err := svc.Create(ctx, repository.Document{"name": "Lamp", "status": "available", "advertised": true}, "")
	require.NoError(t, err)

	_, err = svc.MarkSold(ctx, ins.InsertedID)
	require.NoError(t, err)
	p, _ := svc.Get(ctx, ins.InsertedID)
	assert.Equal(t, "sold", p.String("status"))
	assert.Equal(t, false, p["advertised"])

	_, err = svc.MarkAvailable(ctx, ins.InsertedID)
	require.NoError(t, err)
	p, _ = svc.Get(ctx, ins.InsertedID)
	assert.Equal(t, "available", p.String("status"))
	assert.Equal(t, false, p["advertised"])
}

func TestCreate_OwnerOverride(t *testing.T) {
	ctx := context.Background()
	svc := NewProductService(memory.NewCollection(types.CollectionProducts))

	ins, err := svc.Create(ctx, repository.Document{"name": "A", "sellerEmail": "spoof@x.com"}, "real@x.com")
	require.NoError(t, err)
	p, _ := svc.Get(ctx, ins.InsertedID)
	assert.Equal(t, "real@x.com", p.String("sellerEmail"))

	ins, err = svc.Create(ctx, repository.Document{"name": "B", "sellerEmail": "body@x.com"}, "")
	require.NoError(t, err)
	p, _ = svc.Get(ctx, ins.InsertedID)
	assert.Equal(t, "body@x.com", p.String("sellerEmail"))
}

func TestListings(t *testing.T) {
	ctx := context.Background()
	svc := NewProductService(memory.NewCollection(types.CollectionProducts))
	for _, d := range []repository.Document{
		{"category": "bikes", "status": "available", "sellerEmail": "s@x.com"},
		{"category": "bikes", "status": "sold", "sellerEmail": "s@x.com", "report": true},
		{"category": "lamps", "status": "available", "advertised": true},
	} {
		_, err := svc.Create(ctx, d, "")
		require.NoError(t, err)
	}

	avail, err := svc.ListAvailable(ctx)
	require.NoError(t, err)
	assert.Len(t, avail, 2)

	bikes, _ := svc.ListByCategory(ctx, "bikes")
	assert.Len(t, bikes, 1)

	adv, _ := svc.ListAdvertised(ctx)
	assert.Len(t, adv, 1)

	mine, _ := svc.ListBySeller(ctx, "s@x.com")
	assert.Len(t, mine, 2)

	reported, _ := svc.ListReported(ctx)
	assert.Len(t, reported, 1)
}

func TestUpdate_UpsertsFields(t *testing.T) {
	ctx := context.Background()
	svc := NewProductService(memory.NewCollection(types.CollectionProducts))
	ins, _ := svc.Create(ctx, repository.Document{"name": "A", "resalePrice": 10.0}, "")

	res, err := svc.Update(ctx, ins.InsertedID, repository.Document{"resalePrice": 12.5})
	require.NoError(t, err)
	assert.EqualValues(t, 1, res.ModifiedCount)

	p, _ := svc.Get(ctx, ins.InsertedID)
	assert.Equal(t, "A", p.String("name"))
	assert.Equal(t, 12.5, p["resalePrice"])

	_, err = svc.Update(ctx, "zzz", repository.Document{"x": 1})
	assert.ErrorIs(t, err, repository.ErrInvalidID)
}

package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/bestseller/internal/domain/repository"
	"github.com/dropDatabas3/bestseller/internal/store"
)

func TestRegisteredInStore(t *testing.T) {
	dal, err := store.Open(context.Background(), store.AdapterConfig{Name: "memory"})
	require.NoError(t, err)
	assert.Equal(t, "memory", dal.Driver())
	require.NoError(t, dal.Ping(context.Background()))
}

func TestInsertFindByID(t *testing.T) {
	ctx := context.Background()
	c := NewCollection("products")

	res, err := c.InsertOne(ctx, repository.Document{"name": "Widget", "status": "available"})
	require.NoError(t, err)
	require.True(t, res.Acknowledged)
	require.Len(t, res.InsertedID, 24)

	doc, err := c.FindOne(ctx, repository.ByID(res.InsertedID))
	require.NoError(t, err)
	assert.Equal(t, "Widget", doc.String("name"))
	assert.Equal(t, res.InsertedID, doc.ID())
}

func TestFindOne_NotFoundAndInvalidID(t *testing.T) {
	ctx := context.Background()
	c := NewCollection("products")

	_, err := c.FindOne(ctx, repository.ByID("65f1c0ffee0000000000abcd"))
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = c.FindOne(ctx, repository.ByID("not-an-object-id"))
	assert.ErrorIs(t, err, repository.ErrInvalidID)
}

func TestFind_EqualityFilter(t *testing.T) {
	ctx := context.Background()
	c := NewCollection("products")
	for _, d := range []repository.Document{
		{"name": "a", "status": "available", "category": "phones"},
		{"name": "b", "status": "sold", "category": "phones"},
		{"name": "c", "status": "available", "category": "laptops"},
	} {
		_, err := c.InsertOne(ctx, d)
		require.NoError(t, err)
	}

	got, err := c.Find(ctx, repository.Filter{"status": "available", "category": "phones"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].String("name"))

	none, err := c.Find(ctx, repository.Filter{"category": "tablets"})
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestUpdateOne_Counts(t *testing.T) {
	ctx := context.Background()
	c := NewCollection("users")
	_, err := c.InsertOne(ctx, repository.Document{"email": "a@x.com", "role": "Buyer"})
	require.NoError(t, err)

	res, err := c.UpdateOne(ctx, repository.Filter{"email": "a@x.com"}, repository.Document{"role": "Buyer"}, repository.UpdateOptions{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, res.MatchedCount)
	assert.EqualValues(t, 0, res.ModifiedCount, "mismo valor no cuenta como modificación")

	res, err = c.UpdateOne(ctx, repository.Filter{"email": "a@x.com"}, repository.Document{"role": "Seller"}, repository.UpdateOptions{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, res.ModifiedCount)

	res, err = c.UpdateOne(ctx, repository.Filter{"email": "nobody@x.com"}, repository.Document{"role": "Seller"}, repository.UpdateOptions{})
	require.NoError(t, err)
	assert.EqualValues(t, 0, res.MatchedCount)
	assert.Nil(t, res.UpsertedID)
	assert.Equal(t, 1, c.Len())
}

func TestUpdateOne_UpsertCopiesFilter(t *testing.T) {
	ctx := context.Background()
	c := NewCollection("users")

	res, err := c.UpdateOne(ctx, repository.Filter{"email": "new@x.com"}, repository.Document{"role": "Buyer"}, repository.UpdateOptions{Upsert: true})
	require.NoError(t, err)
	assert.EqualValues(t, 1, res.UpsertedCount)
	require.NotNil(t, res.UpsertedID)

	doc, err := c.FindOne(ctx, repository.Filter{"email": "new@x.com"})
	require.NoError(t, err)
	assert.Equal(t, "Buyer", doc.String("role"))
	assert.Equal(t, *res.UpsertedID, doc.ID())
}

func TestDeleteOne(t *testing.T) {
	ctx := context.Background()
	c := NewCollection("users")
	ins, err := c.InsertOne(ctx, repository.Document{"email": "a@x.com"})
	require.NoError(t, err)

	res, err := c.DeleteOne(ctx, repository.ByID(ins.InsertedID))
	require.NoError(t, err)
	assert.EqualValues(t, 1, res.DeletedCount)

	res, err = c.DeleteOne(ctx, repository.ByID(ins.InsertedID))
	require.NoError(t, err)
	assert.EqualValues(t, 0, res.DeletedCount)
}

func TestReturnedDocumentsAreCopies(t *testing.T) {
	ctx := context.Background()
	c := NewCollection("products")
	ins, err := c.InsertOne(ctx, repository.Document{"name": "a"})
	require.NoError(t, err)

	doc, err := c.FindOne(ctx, repository.ByID(ins.InsertedID))
	require.NoError(t, err)
	doc["name"] = "mutated"

	again, err := c.FindOne(ctx, repository.ByID(ins.InsertedID))
	require.NoError(t, err)
	assert.Equal(t, "a", again.String("name"))
}

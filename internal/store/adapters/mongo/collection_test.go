package mongo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dropDatabas3/bestseller/internal/domain/repository"
	"github.com/dropDatabas3/bestseller/internal/store"
)

func TestToBSONFilter_ConvertsID(t *testing.T) {
	oid := primitive.NewObjectID()
	f, err := toBSONFilter(repository.Filter{"_id": oid.Hex(), "status": "sold"})
	require.NoError(t, err)
	assert.Equal(t, oid, f["_id"])
	assert.Equal(t, "sold", f["status"])
}

func TestToBSONFilter_InvalidID(t *testing.T) {
	_, err := toBSONFilter(repository.ByID("xyz"))
	assert.ErrorIs(t, err, repository.ErrInvalidID)

	_, err = toBSONFilter(repository.Filter{"_id": 42})
	assert.ErrorIs(t, err, repository.ErrInvalidID)
}

func TestFromBSON_NormalizesID(t *testing.T) {
	oid := primitive.NewObjectID()
	d := fromBSON(bson.M{"_id": oid, "name": "Widget"})
	assert.Equal(t, oid.Hex(), d["_id"])
	assert.Equal(t, oid.Hex(), d.ID())
	assert.Equal(t, "Widget", d.String("name"))
}

func TestRegistered(t *testing.T) {
	a, ok := store.GetAdapter("mongo")
	require.True(t, ok)
	assert.Equal(t, "mongo", a.Name())
}

func TestConnect_EmptyURI(t *testing.T) {
	_, err := (&mongoAdapter{}).Connect(context.Background(), store.AdapterConfig{Name: "mongo"})
	assert.Error(t, err)
}

package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dropDatabas3/bestseller/internal/domain/repository"
	"github.com/dropDatabas3/bestseller/internal/domain/types"
)

// collection adapta *mongo.Collection a repository.DocumentCollection.
type collection struct {
	coll *mongo.Collection
}

func (c *collection) Name() string { return c.coll.Name() }

func (c *collection) Find(ctx context.Context, f repository.Filter) ([]repository.Document, error) {
	filter, err := toBSONFilter(f)
	if err != nil {
		return nil, err
	}
	cur, err := c.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("mongo: find %s: %w", c.Name(), err)
	}
	var raw []bson.M
	if err := cur.All(ctx, &raw); err != nil {
		return nil, fmt.Errorf("mongo: decode %s: %w", c.Name(), err)
	}

	out := make([]repository.Document, 0, len(raw))
	for _, m := range raw {
		out = append(out, fromBSON(m))
	}
	return out, nil
}

func (c *collection) FindOne(ctx context.Context, f repository.Filter) (repository.Document, error) {
	filter, err := toBSONFilter(f)
	if err != nil {
		return nil, err
	}
	var m bson.M
	if err := c.coll.FindOne(ctx, filter).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("mongo: find one %s: %w", c.Name(), err)
	}
	return fromBSON(m), nil
}

func (c *collection) InsertOne(ctx context.Context, doc repository.Document) (repository.InsertResult, error) {
	m := bson.M{}
	for k, v := range doc {
		m[k] = v
	}
	if id := doc.ID(); id != "" {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			m[types.FieldID] = oid
		}
	}

	res, err := c.coll.InsertOne(ctx, m)
	if err != nil {
		return repository.InsertResult{}, fmt.Errorf("mongo: insert %s: %w", c.Name(), err)
	}
	return repository.InsertResult{Acknowledged: true, InsertedID: idString(res.InsertedID)}, nil
}

func (c *collection) UpdateOne(ctx context.Context, f repository.Filter, set repository.Document, opts repository.UpdateOptions) (repository.UpdateResult, error) {
	filter, err := toBSONFilter(f)
	if err != nil {
		return repository.UpdateResult{}, err
	}

	fields := bson.M{}
	for k, v := range set {
		if k == types.FieldID {
			continue // _id es inmutable
		}
		fields[k] = v
	}

	// mongo rechaza un $set vacío; sin campos solo reportamos el match.
	if len(fields) == 0 && !opts.Upsert {
		n, err := c.coll.CountDocuments(ctx, filter, options.Count().SetLimit(1))
		if err != nil {
			return repository.UpdateResult{}, fmt.Errorf("mongo: count %s: %w", c.Name(), err)
		}
		return repository.UpdateResult{Acknowledged: true, MatchedCount: n}, nil
	}

	update := bson.M{"$set": fields}
	if len(fields) == 0 {
		update = bson.M{"$setOnInsert": bson.M{}}
	}

	res, err := c.coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(opts.Upsert))
	if err != nil {
		return repository.UpdateResult{}, fmt.Errorf("mongo: update %s: %w", c.Name(), err)
	}

	out := repository.UpdateResult{
		Acknowledged:  true,
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
		UpsertedCount: res.UpsertedCount,
	}
	if res.UpsertedID != nil {
		id := idString(res.UpsertedID)
		out.UpsertedID = &id
	}
	return out, nil
}

func (c *collection) DeleteOne(ctx context.Context, f repository.Filter) (repository.DeleteResult, error) {
	filter, err := toBSONFilter(f)
	if err != nil {
		return repository.DeleteResult{}, err
	}
	res, err := c.coll.DeleteOne(ctx, filter)
	if err != nil {
		return repository.DeleteResult{}, fmt.Errorf("mongo: delete %s: %w", c.Name(), err)
	}
	return repository.DeleteResult{Acknowledged: true, DeletedCount: res.DeletedCount}, nil
}

// ─── Conversiones ───

// toBSONFilter traduce el filtro de dominio; el _id hex pasa a ObjectID.
func toBSONFilter(f repository.Filter) (bson.M, error) {
	out := bson.M{}
	for k, v := range f {
		if k != types.FieldID {
			out[k] = v
			continue
		}
		s, ok := v.(string)
		if !ok {
			return nil, repository.ErrInvalidID
		}
		oid, err := primitive.ObjectIDFromHex(s)
		if err != nil {
			return nil, repository.ErrInvalidID
		}
		out[k] = oid
	}
	return out, nil
}

// fromBSON normaliza el documento leído: _id queda como string hex.
func fromBSON(m bson.M) repository.Document {
	d := make(repository.Document, len(m))
	for k, v := range m {
		d[k] = v
	}
	if id, ok := m[types.FieldID]; ok {
		d[types.FieldID] = idString(id)
	}
	return d
}

func idString(v any) string {
	switch id := v.(type) {
	case primitive.ObjectID:
		return id.Hex()
	case string:
		return id
	default:
		return fmt.Sprint(id)
	}
}

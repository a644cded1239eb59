// Package memory implementa un document store en memoria.
// Se usa en tests y en desarrollo local (storage.driver=memory).
package memory

import (
	"context"
	"reflect"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dropDatabas3/bestseller/internal/domain/repository"
	"github.com/dropDatabas3/bestseller/internal/domain/types"
	"github.com/dropDatabas3/bestseller/internal/store"
)

func init() {
	store.RegisterAdapter(&memoryAdapter{})
}

type memoryAdapter struct{}

func (a *memoryAdapter) Name() string { return "memory" }

func (a *memoryAdapter) Connect(ctx context.Context, cfg store.AdapterConfig) (repository.DataAccessLayer, error) {
	return New(), nil
}

// DAL es el DataAccessLayer en memoria. Exportado para que los tests lo
// construyan sin pasar por el registry.
type DAL struct {
	products *Collection
	users    *Collection
	orders   *Collection
}

// New crea un store vacío.
func New() *DAL {
	return &DAL{
		products: NewCollection(types.CollectionProducts),
		users:    NewCollection(types.CollectionUsers),
		orders:   NewCollection(types.CollectionOrders),
	}
}

func (d *DAL) Driver() string                           { return "memory" }
func (d *DAL) Products() repository.DocumentCollection { return d.products }
func (d *DAL) Users() repository.DocumentCollection    { return d.users }
func (d *DAL) Orders() repository.DocumentCollection   { return d.orders }
func (d *DAL) Ping(ctx context.Context) error          { return nil }
func (d *DAL) Close(ctx context.Context) error         { return nil }

// Collection guarda documentos en orden de inserción.
type Collection struct {
	name string
	mu   sync.RWMutex
	docs []repository.Document
}

// NewCollection crea una colección vacía.
func NewCollection(name string) *Collection {
	return &Collection{name: name}
}

func (c *Collection) Name() string { return c.name }

func (c *Collection) Find(ctx context.Context, f repository.Filter) ([]repository.Document, error) {
	if err := validateFilter(f); err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]repository.Document, 0)
	for _, d := range c.docs {
		if matches(d, f) {
			out = append(out, d.Clone())
		}
	}
	return out, nil
}

func (c *Collection) FindOne(ctx context.Context, f repository.Filter) (repository.Document, error) {
	if err := validateFilter(f); err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, d := range c.docs {
		if matches(d, f) {
			return d.Clone(), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (c *Collection) InsertOne(ctx context.Context, doc repository.Document) (repository.InsertResult, error) {
	nd := doc.Clone()
	id := nd.ID()
	if id == "" {
		id = primitive.NewObjectID().Hex()
	}
	nd[types.FieldID] = id

	c.mu.Lock()
	c.docs = append(c.docs, nd)
	c.mu.Unlock()

	return repository.InsertResult{Acknowledged: true, InsertedID: id}, nil
}

func (c *Collection) UpdateOne(ctx context.Context, f repository.Filter, set repository.Document, opts repository.UpdateOptions) (repository.UpdateResult, error) {
	if err := validateFilter(f); err != nil {
		return repository.UpdateResult{}, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, d := range c.docs {
		if !matches(d, f) {
			continue
		}
		res := repository.UpdateResult{Acknowledged: true, MatchedCount: 1}
		changed := false
		for k, v := range set {
			if k == types.FieldID {
				continue // _id es inmutable
			}
			if old, ok := d[k]; !ok || !reflect.DeepEqual(old, v) {
				changed = true
			}
			d[k] = v
		}
		if changed {
			res.ModifiedCount = 1
		}
		return res, nil
	}

	if !opts.Upsert {
		return repository.UpdateResult{Acknowledged: true}, nil
	}

	nd := repository.Document{}
	for k, v := range f {
		nd[k] = v
	}
	for k, v := range set {
		if k != types.FieldID {
			nd[k] = v
		}
	}
	id := nd.ID()
	if id == "" {
		id = primitive.NewObjectID().Hex()
		nd[types.FieldID] = id
	}
	c.docs = append(c.docs, nd)
	return repository.UpdateResult{Acknowledged: true, UpsertedCount: 1, UpsertedID: &id}, nil
}

func (c *Collection) DeleteOne(ctx context.Context, f repository.Filter) (repository.DeleteResult, error) {
	if err := validateFilter(f); err != nil {
		return repository.DeleteResult{}, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, d := range c.docs {
		if matches(d, f) {
			c.docs = append(c.docs[:i], c.docs[i+1:]...)
			return repository.DeleteResult{Acknowledged: true, DeletedCount: 1}, nil
		}
	}
	return repository.DeleteResult{Acknowledged: true}, nil
}

// Len retorna la cantidad de documentos (helper para tests).
func (c *Collection) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.docs)
}

// validateFilter replica el comportamiento de mongo: un _id que no es
// ObjectID hex es un error del caller, no un "no encontrado".
func validateFilter(f repository.Filter) error {
	v, ok := f[types.FieldID]
	if !ok {
		return nil
	}
	s, ok := v.(string)
	if !ok {
		return repository.ErrInvalidID
	}
	if _, err := primitive.ObjectIDFromHex(s); err != nil {
		return repository.ErrInvalidID
	}
	return nil
}

func matches(d repository.Document, f repository.Filter) bool {
	for k, want := range f {
		if k == types.FieldID {
			if d.ID() != want {
				return false
			}
			continue
		}
		got, ok := d[k]
		if !ok || !reflect.DeepEqual(got, want) {
			return false
		}
	}
	return true
}

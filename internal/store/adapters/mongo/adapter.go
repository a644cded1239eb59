// Package mongo implementa el adapter MongoDB (driver por defecto).
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/dropDatabas3/bestseller/internal/domain/repository"
	"github.com/dropDatabas3/bestseller/internal/domain/types"
	"github.com/dropDatabas3/bestseller/internal/store"
)

// DefaultDatabase es la base usada cuando la config no indica otra.
const DefaultDatabase = "best-seller"

func init() {
	store.RegisterAdapter(&mongoAdapter{})
}

type mongoAdapter struct{}

func (a *mongoAdapter) Name() string { return "mongo" }

func (a *mongoAdapter) Connect(ctx context.Context, cfg store.AdapterConfig) (repository.DataAccessLayer, error) {
	if cfg.DSN == "" {
		return nil, errors.New("mongo: empty connection uri")
	}

	opts := options.Client().
		ApplyURI(cfg.DSN).
		SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1)).
		SetConnectTimeout(cfg.ConnectTimeout)
	if cfg.MaxConns > 0 {
		opts.SetMaxPoolSize(uint64(cfg.MaxConns))
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo: connect: %w", err)
	}

	// Verificar conexión
	pingCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo: ping failed: %w", err)
	}

	dbName := cfg.Database
	if dbName == "" {
		dbName = DefaultDatabase
	}
	db := client.Database(dbName)

	return &mongoDAL{
		client:   client,
		products: &collection{coll: db.Collection(types.CollectionProducts)},
		users:    &collection{coll: db.Collection(types.CollectionUsers)},
		orders:   &collection{coll: db.Collection(types.CollectionOrders)},
	}, nil
}

// mongoDAL mantiene el cliente de larga vida.
type mongoDAL struct {
	client   *mongo.Client
	products *collection
	users    *collection
	orders   *collection
}

func (d *mongoDAL) Driver() string                           { return "mongo" }
func (d *mongoDAL) Products() repository.DocumentCollection { return d.products }
func (d *mongoDAL) Users() repository.DocumentCollection    { return d.users }
func (d *mongoDAL) Orders() repository.DocumentCollection   { return d.orders }

func (d *mongoDAL) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return d.client.Ping(ctx, readpref.Primary())
}

func (d *mongoDAL) Close(ctx context.Context) error {
	return d.client.Disconnect(ctx)
}

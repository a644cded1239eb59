// Package pg implementa el document store sobre PostgreSQL (JSONB).
// Usa pgxpool directamente; el schema está en migrations/postgres.
package pg

import (
	"context"
	"fmt"
	"io/fs"
	"path"

	"github.com/jackc/pgx/v5/pgxpool"

	migrations "github.com/dropDatabas3/bestseller/migrations/postgres"

	"github.com/dropDatabas3/bestseller/internal/domain/repository"
	"github.com/dropDatabas3/bestseller/internal/domain/types"
	"github.com/dropDatabas3/bestseller/internal/store"
)

func init() {
	store.RegisterAdapter(&postgresAdapter{})
}

// postgresAdapter implementa store.Adapter para PostgreSQL.
type postgresAdapter struct{}

func (a *postgresAdapter) Name() string { return "postgres" }

func (a *postgresAdapter) Connect(ctx context.Context, cfg store.AdapterConfig) (repository.DataAccessLayer, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("pg: parse DSN: %w", err)
	}

	// Configurar pool
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = int32(cfg.MaxConns)
	} else {
		poolCfg.MaxConns = 10
	}
	poolCfg.ConnConfig.ConnectTimeout = cfg.ConnectTimeout

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("pg: create pool: %w", err)
	}

	// Verificar conexión
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pg: ping failed: %w", err)
	}

	if err := migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}

	return &pgDAL{
		pool:     pool,
		products: &collection{pool: pool, name: types.CollectionProducts},
		users:    &collection{pool: pool, name: types.CollectionUsers},
		orders:   &collection{pool: pool, name: types.CollectionOrders},
	}, nil
}

// migrate aplica los .sql embebidos en orden lexicográfico.
// Todos son idempotentes (IF NOT EXISTS), así que se corren en cada arranque.
func migrate(ctx context.Context, pool *pgxpool.Pool) error {
	entries, err := fs.ReadDir(migrations.DocumentsFS, migrations.DocumentsDir)
	if err != nil {
		return fmt.Errorf("pg: read migrations: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ".sql" {
			continue
		}
		sqlBytes, err := fs.ReadFile(migrations.DocumentsFS, path.Join(migrations.DocumentsDir, e.Name()))
		if err != nil {
			return fmt.Errorf("pg: read %s: %w", e.Name(), err)
		}
		if _, err := pool.Exec(ctx, string(sqlBytes)); err != nil {
			return fmt.Errorf("pg: apply %s: %w", e.Name(), err)
		}
	}
	return nil
}

// pgDAL representa una conexión activa a PostgreSQL.
type pgDAL struct {
	pool     *pgxpool.Pool
	products *collection
	users    *collection
	orders   *collection
}

func (d *pgDAL) Driver() string                           { return "postgres" }
func (d *pgDAL) Products() repository.DocumentCollection { return d.products }
func (d *pgDAL) Users() repository.DocumentCollection    { return d.users }
func (d *pgDAL) Orders() repository.DocumentCollection   { return d.orders }
func (d *pgDAL) Ping(ctx context.Context) error          { return d.pool.Ping(ctx) }

func (d *pgDAL) Close(ctx context.Context) error {
	d.pool.Close()
	return nil
}

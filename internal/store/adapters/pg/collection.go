package pg

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dropDatabas3/bestseller/internal/domain/repository"
	"github.com/dropDatabas3/bestseller/internal/domain/types"
)

// collection es una colección lógica dentro de la tabla documents.
// Los filtros de igualdad se resuelven con containment (body @> filtro).
type collection struct {
	pool *pgxpool.Pool
	name string
}

func (c *collection) Name() string { return c.name }

func (c *collection) Find(ctx context.Context, f repository.Filter) ([]repository.Document, error) {
	filter, err := filterJSON(f)
	if err != nil {
		return nil, err
	}
	rows, err := c.pool.Query(ctx, `
		SELECT body FROM documents
		WHERE collection = $1 AND body @> $2::jsonb
		ORDER BY seq`, c.name, filter)
	if err != nil {
		return nil, fmt.Errorf("pg: find %s: %w", c.name, err)
	}
	defer rows.Close()

	out := make([]repository.Document, 0)
	for rows.Next() {
		var body map[string]any
		if err := rows.Scan(&body); err != nil {
			return nil, fmt.Errorf("pg: scan %s: %w", c.name, err)
		}
		out = append(out, repository.Document(body))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pg: find %s: %w", c.name, err)
	}
	return out, nil
}

func (c *collection) FindOne(ctx context.Context, f repository.Filter) (repository.Document, error) {
	filter, err := filterJSON(f)
	if err != nil {
		return nil, err
	}
	var body map[string]any
	err = c.pool.QueryRow(ctx, `
		SELECT body FROM documents
		WHERE collection = $1 AND body @> $2::jsonb
		ORDER BY seq LIMIT 1`, c.name, filter).Scan(&body)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("pg: find one %s: %w", c.name, err)
	}
	return repository.Document(body), nil
}

func (c *collection) InsertOne(ctx context.Context, doc repository.Document) (repository.InsertResult, error) {
	nd := doc.Clone()
	id := nd.ID()
	if id == "" {
		id = primitive.NewObjectID().Hex()
	}
	nd[types.FieldID] = id

	if err := insert(ctx, c.pool, c.name, id, nd); err != nil {
		return repository.InsertResult{}, err
	}
	return repository.InsertResult{Acknowledged: true, InsertedID: id}, nil
}

func (c *collection) UpdateOne(ctx context.Context, f repository.Filter, set repository.Document, opts repository.UpdateOptions) (repository.UpdateResult, error) {
	filter, err := filterJSON(f)
	if err != nil {
		return repository.UpdateResult{}, err
	}

	fields := repository.Document{}
	for k, v := range set {
		if k != types.FieldID {
			fields[k] = v
		}
	}
	patch, err := json.Marshal(fields)
	if err != nil {
		return repository.UpdateResult{}, fmt.Errorf("pg: encode update: %w", err)
	}

	tx, err := c.pool.Begin(ctx)
	if err != nil {
		return repository.UpdateResult{}, fmt.Errorf("pg: begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var (
		seq  int64
		body map[string]any
	)
	err = tx.QueryRow(ctx, `
		SELECT seq, body FROM documents
		WHERE collection = $1 AND body @> $2::jsonb
		ORDER BY seq LIMIT 1
		FOR UPDATE`, c.name, filter).Scan(&seq, &body)

	switch {
	case err == nil:
		res := repository.UpdateResult{Acknowledged: true, MatchedCount: 1}
		if !contains(body, patch) {
			if _, err := tx.Exec(ctx, `
				UPDATE documents SET body = body || $2::jsonb, updated_at = now()
				WHERE seq = $1`, seq, patch); err != nil {
				return repository.UpdateResult{}, fmt.Errorf("pg: update %s: %w", c.name, err)
			}
			res.ModifiedCount = 1
		}
		if err := tx.Commit(ctx); err != nil {
			return repository.UpdateResult{}, fmt.Errorf("pg: commit: %w", err)
		}
		return res, nil

	case errors.Is(err, pgx.ErrNoRows):
		if !opts.Upsert {
			return repository.UpdateResult{Acknowledged: true}, nil
		}

	default:
		return repository.UpdateResult{}, fmt.Errorf("pg: update %s: %w", c.name, err)
	}

	// Upsert: documento nuevo = filtro + campos
	nd := repository.Document{}
	for k, v := range f {
		nd[k] = v
	}
	for k, v := range fields {
		nd[k] = v
	}
	id := nd.ID()
	if id == "" {
		id = primitive.NewObjectID().Hex()
		nd[types.FieldID] = id
	}
	if err := insert(ctx, tx, c.name, id, nd); err != nil {
		return repository.UpdateResult{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return repository.UpdateResult{}, fmt.Errorf("pg: commit: %w", err)
	}
	return repository.UpdateResult{Acknowledged: true, UpsertedCount: 1, UpsertedID: &id}, nil
}

func (c *collection) DeleteOne(ctx context.Context, f repository.Filter) (repository.DeleteResult, error) {
	filter, err := filterJSON(f)
	if err != nil {
		return repository.DeleteResult{}, err
	}
	tag, err := c.pool.Exec(ctx, `
		DELETE FROM documents WHERE seq = (
			SELECT seq FROM documents
			WHERE collection = $1 AND body @> $2::jsonb
			ORDER BY seq LIMIT 1
		)`, c.name, filter)
	if err != nil {
		return repository.DeleteResult{}, fmt.Errorf("pg: delete %s: %w", c.name, err)
	}
	return repository.DeleteResult{Acknowledged: true, DeletedCount: tag.RowsAffected()}, nil
}

// execer lo cumplen tanto el pool como una tx.
type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

func insert(ctx context.Context, db execer, coll, id string, doc repository.Document) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("pg: encode %s: %w", coll, err)
	}
	if _, err := db.Exec(ctx, `
		INSERT INTO documents (collection, id, body) VALUES ($1, $2, $3::jsonb)`,
		coll, id, body); err != nil {
		return fmt.Errorf("pg: insert %s: %w", coll, err)
	}
	return nil
}

// filterJSON serializa el filtro para containment. Valida el _id igual que mongo.
func filterJSON(f repository.Filter) ([]byte, error) {
	if v, ok := f[types.FieldID]; ok {
		s, ok := v.(string)
		if !ok {
			return nil, repository.ErrInvalidID
		}
		if _, err := primitive.ObjectIDFromHex(s); err != nil {
			return nil, repository.ErrInvalidID
		}
	}
	if f == nil {
		f = repository.Filter{}
	}
	b, err := json.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("pg: encode filter: %w", err)
	}
	return b, nil
}

// contains indica si aplicar patch no cambiaría body.
func contains(body map[string]any, patch []byte) bool {
	var p map[string]any
	if err := json.Unmarshal(patch, &p); err != nil {
		return false
	}
	for k, v := range p {
		old, ok := body[k]
		if !ok || !reflect.DeepEqual(old, v) {
			return false
		}
	}
	return true
}

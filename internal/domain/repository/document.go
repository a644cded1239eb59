package repository

import (
	"context"
	"fmt"

	"github.com/dropDatabas3/bestseller/internal/domain/types"
)

// Document es un registro tal como vive en el document store.
// Los bodies de los clientes se persisten sin schema, por eso no hay structs rígidos.
type Document map[string]any

// String retorna el campo como string ("" si no existe o no es string).
func (d Document) String(key string) string {
	if d == nil {
		return ""
	}
	s, _ := d[key].(string)
	return s
}

// Bool retorna el campo como bool (false si no existe).
func (d Document) Bool(key string) bool {
	if d == nil {
		return false
	}
	b, _ := d[key].(bool)
	return b
}

// ID retorna el _id como string hex, sea cual sea la representación del driver.
func (d Document) ID() string {
	if d == nil {
		return ""
	}
	switch v := d[types.FieldID].(type) {
	case string:
		return v
	case interface{ Hex() string }:
		return v.Hex()
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

// Clone hace una copia superficial.
func (d Document) Clone() Document {
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// Filter es un filtro por igualdad campo a campo (AND implícito).
// FieldID acepta el id como string hex; cada adapter lo traduce.
type Filter map[string]any

// ByID arma el filtro por _id.
func ByID(id string) Filter {
	return Filter{types.FieldID: id}
}

// UpdateOptions controla el comportamiento de UpdateOne.
type UpdateOptions struct {
	// Upsert inserta un documento nuevo (filtro + campos) si nada matchea.
	Upsert bool
}

// InsertResult refleja la respuesta cruda del store para un insert.
type InsertResult struct {
	Acknowledged bool   `json:"acknowledged"`
	InsertedID   string `json:"insertedId"`
}

// UpdateResult refleja la respuesta cruda del store para un update.
type UpdateResult struct {
	Acknowledged  bool    `json:"acknowledged"`
	MatchedCount  int64   `json:"matchedCount"`
	ModifiedCount int64   `json:"modifiedCount"`
	UpsertedCount int64   `json:"upsertedCount"`
	UpsertedID    *string `json:"upsertedId"`
}

// DeleteResult refleja la respuesta cruda del store para un delete.
type DeleteResult struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}

// DocumentCollection es una colección del document store.
// Cada operación es un round-trip independiente, sin transacciones.
type DocumentCollection interface {
	// Name retorna el nombre de la colección.
	Name() string

	// Find retorna todos los documentos que matchean (slice vacío si ninguno).
	Find(ctx context.Context, f Filter) ([]Document, error)

	// FindOne retorna el primer documento que matchea o ErrNotFound.
	FindOne(ctx context.Context, f Filter) (Document, error)

	// InsertOne inserta el documento asignando _id si no lo trae.
	InsertOne(ctx context.Context, doc Document) (InsertResult, error)

	// UpdateOne aplica $set de los campos dados al primer documento que matchea.
	UpdateOne(ctx context.Context, f Filter, set Document, opts UpdateOptions) (UpdateResult, error)

	// DeleteOne borra el primer documento que matchea.
	DeleteOne(ctx context.Context, f Filter) (DeleteResult, error)
}

// DataAccessLayer es el handle de larga vida al store: se abre al iniciar el
// proceso, se inyecta en los services y se cierra al terminar.
type DataAccessLayer interface {
	Driver() string
	Products() DocumentCollection
	Users() DocumentCollection
	Orders() DocumentCollection
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// Package store provee el registry de adaptadores del document store.
//
// Cada adapter se registra en init(); cmd/service importa
// internal/store/adapters/all para tenerlos disponibles.
package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/dropDatabas3/bestseller/internal/domain/repository"
)

// Adapter representa un driver capaz de abrir un DataAccessLayer.
type Adapter interface {
	// Name retorna el nombre del adapter ("mongo", "postgres", "memory").
	Name() string

	// Connect abre la conexión de larga vida.
	Connect(ctx context.Context, cfg AdapterConfig) (repository.DataAccessLayer, error)
}

// AdapterConfig configuración para conectar a un almacenamiento.
type AdapterConfig struct {
	// Name del adapter.
	Name string

	// DSN connection string (mongodb://..., postgres://...).
	DSN string

	// Database nombre de la base (mongo).
	Database string

	// MaxConns tamaño máximo del pool (0 = default del driver).
	MaxConns int

	// ConnectTimeout para el primer ping.
	ConnectTimeout time.Duration
}

// ─── Registry Global ───

var (
	registryMu sync.RWMutex
	adapters   = make(map[string]Adapter)
)

// RegisterAdapter registra un adapter. Llamar en init() de cada adapter.
func RegisterAdapter(a Adapter) {
	registryMu.Lock()
	defer registryMu.Unlock()

	name := a.Name()
	if _, exists := adapters[name]; exists {
		panic(fmt.Sprintf("adapter: %q already registered", name))
	}
	adapters[name] = a
}

// GetAdapter obtiene un adapter por nombre.
func GetAdapter(name string) (Adapter, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	a, ok := adapters[name]
	return a, ok
}

// ListAdapters retorna los nombres registrados, ordenados.
func ListAdapters() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(adapters))
	for name := range adapters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Open abre el DataAccessLayer usando el adapter indicado en la config.
func Open(ctx context.Context, cfg AdapterConfig) (repository.DataAccessLayer, error) {
	a, ok := GetAdapter(cfg.Name)
	if !ok {
		return nil, fmt.Errorf("adapter: %q not registered (available: %v)", cfg.Name, ListAdapters())
	}
	if cfg.ConnectTimeout <= 0 {
		cfg.ConnectTimeout = 10 * time.Second
	}
	dal, err := a.Connect(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("adapter %s: %w", cfg.Name, err)
	}
	return dal, nil
}

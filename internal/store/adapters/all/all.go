// Package all registra todos los adapters del document store.
// Importar con blank identifier desde cmd/service.
package all

import (
	_ "github.com/dropDatabas3/bestseller/internal/store/adapters/memory"
	_ "github.com/dropDatabas3/bestseller/internal/store/adapters/mongo"
	_ "github.com/dropDatabas3/bestseller/internal/store/adapters/pg"
)

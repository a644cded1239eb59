// Package repository define los contratos de persistencia del marketplace.
//
// El sistema es CRUD sobre tres colecciones de documentos (products, users,
// orders). Los bodies de los clientes se guardan sin schema, así que el
// contrato es una colección de documentos genérica con filtros de igualdad.
//
// Las implementaciones concretas viven en internal/store/adapters/:
//
//	┌─────────────────────────────────────────────────────┐
//	│           Services / Controllers                    │
//	└─────────────────────────────────────────────────────┘
//	                        │
//	                        ▼
//	┌─────────────────────────────────────────────────────┐
//	│   domain/repository (DataAccessLayer, Collection)   │
//	└─────────────────────────────────────────────────────┘
//	                        │
//	         ┌──────────────┼──────────────┐
//	         ▼              ▼              ▼
//	┌─────────────┐  ┌─────────────┐  ┌─────────────┐
//	│  adapters/  │  │  adapters/  │  │  adapters/  │
//	│    mongo    │  │     pg      │  │   memory    │
//	└─────────────┘  └─────────────┘  └─────────────┘
//
// Convenciones:
//   - Context siempre es el primer parámetro
//   - Errores de dominio están en errors.go
package repository

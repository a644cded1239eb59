// Package migrations embebe el schema SQL del adapter postgres.
package migrations

import "embed"

// DocumentsFS contiene las migraciones del document store sobre JSONB.
//
//go:embed documents/*.sql
var DocumentsFS embed.FS

// DocumentsDir es el directorio dentro de DocumentsFS.
const DocumentsDir = "documents"

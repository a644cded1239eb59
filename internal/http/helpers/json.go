// Package helpers contiene utilidades HTTP compartidas por los controllers.
package helpers

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"

	"github.com/dropDatabas3/bestseller/internal/domain/repository"
	"github.com/dropDatabas3/bestseller/internal/http/errors"
)

// MaxBodyBytes limita el body de cualquier request a 1MB.
const MaxBodyBytes = 1 << 20

// ReadDocument decodifica el body como un objeto JSON sin schema.
// Body vacío equivale a {}. No exige Content-Type: los clientes del
// marketplace históricamente no lo mandan siempre.
func ReadDocument(w http.ResponseWriter, r *http.Request) (repository.Document, error) {
	if r.Body == nil {
		return repository.Document{}, nil
	}
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	defer r.Body.Close()

	var doc map[string]any
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(&doc); err != nil {
		if stderrors.Is(err, io.EOF) {
			return repository.Document{}, nil
		}
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			return nil, errors.ErrBodyTooLarge
		}
		return nil, errors.ErrInvalidJSON.WithCause(err)
	}
	// null decodifica a map nil
	if doc == nil {
		return repository.Document{}, nil
	}
	return repository.Document(doc), nil
}

// WriteJSON escribe una respuesta JSON estándar.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteText escribe texto plano.
func WriteText(w http.ResponseWriter, status int, s string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, s)
}

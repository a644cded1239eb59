package repository

import "errors"

var (
	// ErrNotFound indica que el documento solicitado no existe.
	ErrNotFound = errors.New("not found")

	// ErrInvalidID indica un _id que el driver no puede interpretar.
	ErrInvalidID = errors.New("invalid id")

	// ErrInvalidInput indica que los datos de entrada son inválidos.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoDatabase indica que no hay store configurado.
	ErrNoDatabase = errors.New("no database configured")
)

// IsNotFound verifica si el error es ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsInvalidID verifica si el error es ErrInvalidID.
func IsInvalidID(err error) bool {
	return errors.Is(err, ErrInvalidID)
}

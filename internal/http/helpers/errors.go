package helpers

import (
	stderrors "errors"

	"github.com/dropDatabas3/bestseller/internal/domain/repository"
	"github.com/dropDatabas3/bestseller/internal/http/errors"
)

// MapStoreError traduce los errores de repository al catálogo HTTP.
// Los controllers lo usan como fallback de su propio mapError.
func MapStoreError(err error) *errors.AppError {
	var appErr *errors.AppError
	switch {
	case stderrors.As(err, &appErr):
		return appErr
	case stderrors.Is(err, repository.ErrInvalidID):
		return errors.ErrInvalidParameter.WithDetail("id inválido").WithCause(err)
	case stderrors.Is(err, repository.ErrNotFound):
		return errors.ErrNotFound.WithCause(err)
	case stderrors.Is(err, repository.ErrInvalidInput):
		return errors.ErrMissingFields.WithDetail(err.Error()).WithCause(err)
	case stderrors.Is(err, repository.ErrNoDatabase):
		return errors.ErrServiceUnavailable.WithCause(err)
	default:
		return errors.ErrInternalServerError.WithCause(err)
	}
}

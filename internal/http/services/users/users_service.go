// Package users contiene el service de usuarios: login upsert, roles y moderación.
package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/dropDatabas3/bestseller/internal/audit"
	"github.com/dropDatabas3/bestseller/internal/domain/repository"
	"github.com/dropDatabas3/bestseller/internal/domain/types"
	mw "github.com/dropDatabas3/bestseller/internal/http/middlewares"
	"github.com/dropDatabas3/bestseller/internal/observability/logger"
)

// TokenSigner emite el token de acceso para un email.
type TokenSigner interface {
	Sign(email string) (string, time.Time, error)
}

// LoginResult es el resultado del upsert más el token emitido.
type LoginResult struct {
	Result repository.UpdateResult
	Token  string
}

// UserService define las operaciones sobre usuarios.
type UserService interface {
	// Login hace upsert por email con los campos del body y emite un token.
	Login(ctx context.Context, email string, body repository.Document) (*LoginResult, error)
	// SetRole hace upsert del rol; body.role debe ser Buyer, Seller o Admin.
	SetRole(ctx context.Context, email string, body repository.Document) (repository.UpdateResult, error)
	Get(ctx context.Context, email string) (repository.Document, error)
	// CheckRole retorna el usuario si su rol es role, o un documento vacío.
	CheckRole(ctx context.Context, email string, role types.Role) (repository.Document, error)
	ListByRole(ctx context.Context, role types.Role) ([]repository.Document, error)
	Delete(ctx context.Context, id string) (repository.DeleteResult, error)
	Verify(ctx context.Context, id string) (repository.UpdateResult, error)
}

// Deps dependencias del service de usuarios.
type Deps struct {
	Users  repository.DocumentCollection
	Signer TokenSigner
	// InvalidateRole limpia el rol cacheado de un email. Opcional.
	InvalidateRole func(ctx context.Context, email string)
}

type userService struct {
	deps Deps
}

// NewUserService crea el service de usuarios.
func NewUserService(deps Deps) UserService {
	if deps.InvalidateRole == nil {
		deps.InvalidateRole = func(context.Context, string) {}
	}
	return &userService{deps: deps}
}

const componentUsers = "users"

func (s *userService) log(ctx context.Context, op string) *zap.Logger {
	return logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component(componentUsers),
		logger.Op(op),
	)
}

func (s *userService) Login(ctx context.Context, email string, body repository.Document) (*LoginResult, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, fmt.Errorf("%w: %s", repository.ErrInvalidInput, types.FieldEmail)
	}

	fields := body.Clone()
	delete(fields, types.FieldID)
	fields[types.FieldEmail] = email

	res, err := s.deps.Users.UpdateOne(ctx, repository.Filter{types.FieldEmail: email}, fields, repository.UpdateOptions{Upsert: true})
	if err != nil {
		return nil, err
	}
	// el body puede traer role
	s.deps.InvalidateRole(ctx, email)

	token, _, err := s.deps.Signer.Sign(email)
	if err != nil {
		return nil, fmt.Errorf("users: sign token: %w", err)
	}

	s.log(ctx, "Login").Info("user upserted",
		logger.Email(email),
		logger.Bool("created", res.UpsertedCount > 0),
	)
	return &LoginResult{Result: res, Token: token}, nil
}

func (s *userService) SetRole(ctx context.Context, email string, body repository.Document) (repository.UpdateResult, error) {
	email = strings.TrimSpace(email)
	raw, ok := body[types.FieldRole].(string)
	if email == "" || !ok || strings.TrimSpace(raw) == "" {
		return repository.UpdateResult{}, fmt.Errorf("%w: %s", repository.ErrInvalidInput, types.FieldRole)
	}
	role, err := types.ParseRole(raw)
	if err != nil {
		return repository.UpdateResult{}, err
	}

	res, err := s.deps.Users.UpdateOne(ctx, repository.Filter{types.FieldEmail: email},
		repository.Document{types.FieldRole: role.String()},
		repository.UpdateOptions{Upsert: true})
	if err != nil {
		return repository.UpdateResult{}, err
	}
	s.deps.InvalidateRole(ctx, email)

	audit.Log(ctx, audit.EventRoleChanged, mw.GetEmail(ctx), logger.Email(email), logger.Role(role.String()))
	return res, nil
}

func (s *userService) Get(ctx context.Context, email string) (repository.Document, error) {
	return s.deps.Users.FindOne(ctx, repository.Filter{types.FieldEmail: email})
}

func (s *userService) CheckRole(ctx context.Context, email string, role types.Role) (repository.Document, error) {
	doc, err := s.deps.Users.FindOne(ctx, repository.Filter{types.FieldEmail: email})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return repository.Document{}, nil
		}
		return nil, err
	}
	got, err := types.ParseRole(doc.String(types.FieldRole))
	if err != nil || got != role {
		return repository.Document{}, nil
	}
	return doc, nil
}

func (s *userService) ListByRole(ctx context.Context, role types.Role) ([]repository.Document, error) {
	return s.deps.Users.Find(ctx, repository.Filter{types.FieldRole: role.String()})
}

func (s *userService) Delete(ctx context.Context, id string) (repository.DeleteResult, error) {
	log := s.log(ctx, "Delete").With(logger.UserID(id))

	// email para invalidar el cache; si no existe, el delete igual devuelve 0
	email := ""
	doc, err := s.deps.Users.FindOne(ctx, repository.ByID(id))
	switch {
	case err == nil:
		email = doc.String(types.FieldEmail)
	case errors.Is(err, repository.ErrNotFound):
	default:
		return repository.DeleteResult{}, err
	}

	res, err := s.deps.Users.DeleteOne(ctx, repository.ByID(id))
	if err != nil {
		return repository.DeleteResult{}, err
	}
	if email != "" {
		s.deps.InvalidateRole(ctx, email)
	}
	if res.DeletedCount > 0 {
		audit.Log(ctx, audit.EventUserDeleted, mw.GetEmail(ctx), logger.UserID(id), logger.Email(email))
	} else {
		log.Debug("delete matched nothing")
	}
	return res, nil
}

func (s *userService) Verify(ctx context.Context, id string) (repository.UpdateResult, error) {
	res, err := s.deps.Users.UpdateOne(ctx, repository.ByID(id),
		repository.Document{types.FieldVerified: true},
		repository.UpdateOptions{})
	if err != nil {
		return repository.UpdateResult{}, err
	}
	if res.MatchedCount > 0 {
		audit.Log(ctx, audit.EventUserVerified, mw.GetEmail(ctx), logger.UserID(id))
	}
	return res, nil
}

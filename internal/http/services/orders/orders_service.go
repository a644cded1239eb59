// Package orders contiene el service de órdenes y la confirmación de pago.
package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dropDatabas3/bestseller/internal/domain/repository"
	"github.com/dropDatabas3/bestseller/internal/domain/types"
	"github.com/dropDatabas3/bestseller/internal/observability/logger"
)

// OrderService define las operaciones sobre órdenes.
type OrderService interface {
	ListByBuyer(ctx context.Context, email string) ([]repository.Document, error)
	Get(ctx context.Context, id string) (repository.Document, error)
	Create(ctx context.Context, body repository.Document) (repository.InsertResult, error)

	// ConfirmPayment marca la orden como pagada y luego, por separado, el
	// producto como vendido. Retorna el resultado del update de la orden.
	ConfirmPayment(ctx context.Context, id string, body repository.Document) (repository.UpdateResult, error)
}

// Deps dependencias del service de órdenes.
type Deps struct {
	Orders   repository.DocumentCollection
	Products repository.DocumentCollection

	// LegacyProductByName habilita resolver el producto por name == productName
	// cuando la orden no trae productId.
	LegacyProductByName bool
}

type orderService struct {
	deps Deps
}

// NewOrderService crea el service de órdenes.
func NewOrderService(deps Deps) OrderService {
	return &orderService{deps: deps}
}

const componentOrders = "orders"

func (s *orderService) ListByBuyer(ctx context.Context, email string) ([]repository.Document, error) {
	return s.deps.Orders.Find(ctx, repository.Filter{types.FieldEmail: email})
}

func (s *orderService) Get(ctx context.Context, id string) (repository.Document, error) {
	return s.deps.Orders.FindOne(ctx, repository.ByID(id))
}

func (s *orderService) Create(ctx context.Context, body repository.Document) (repository.InsertResult, error) {
	return s.deps.Orders.InsertOne(ctx, body)
}

func (s *orderService) ConfirmPayment(ctx context.Context, id string, body repository.Document) (repository.UpdateResult, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component(componentOrders),
		logger.Op("ConfirmPayment"),
		logger.OrderID(id),
	)

	txID, ok := body[types.FieldTransactionID]
	if !ok || txID == nil || txID == "" {
		return repository.UpdateResult{}, fmt.Errorf("%w: %s", repository.ErrInvalidInput, types.FieldTransactionID)
	}

	res, err := s.deps.Orders.UpdateOne(ctx, repository.ByID(id), repository.Document{
		types.FieldPaid:          true,
		types.FieldTransactionID: txID,
	}, repository.UpdateOptions{})
	if err != nil {
		return repository.UpdateResult{}, err
	}

	// Segunda escritura: sin transacción ni compensación.
	filter, err := s.productFilter(ctx, id, body)
	if err != nil {
		log.Error("resolve product failed", logger.Err(err))
		return repository.UpdateResult{}, fmt.Errorf("orders: resolve product: %w", err)
	}
	if filter == nil {
		log.Warn("order has no product reference, product left untouched")
		return res, nil
	}

	pres, err := s.deps.Products.UpdateOne(ctx, filter, repository.Document{
		types.FieldStatus: string(types.StatusSold),
	}, repository.UpdateOptions{})
	if err != nil {
		log.Error("mark product sold failed, order already paid", logger.Err(err))
		return repository.UpdateResult{}, fmt.Errorf("orders: mark product sold: %w", err)
	}
	log.Info("payment confirmed",
		logger.Int64("product_matched", pres.MatchedCount),
	)
	return res, nil
}

// productFilter decide cómo encontrar el producto de la orden:
// productId del body, productId guardado en la orden, o (legacy) por nombre.
// Retorna nil si no hay referencia utilizable.
func (s *orderService) productFilter(ctx context.Context, orderID string, body repository.Document) (repository.Filter, error) {
	if pid := strings.TrimSpace(body.String(types.FieldProductID)); pid != "" {
		return repository.ByID(pid), nil
	}

	productName := body.String(types.FieldProductName)

	order, err := s.deps.Orders.FindOne(ctx, repository.ByID(orderID))
	switch {
	case err == nil:
		if pid := strings.TrimSpace(order.String(types.FieldProductID)); pid != "" {
			return repository.ByID(pid), nil
		}
		if productName == "" {
			productName = order.String(types.FieldProductName)
		}
	case errors.Is(err, repository.ErrNotFound):
	default:
		return nil, err
	}

	if !s.deps.LegacyProductByName || productName == "" {
		return nil, nil
	}
	return repository.Filter{types.FieldName: productName}, nil
}

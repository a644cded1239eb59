// Package products contiene el service del catálogo de productos.
package products

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/dropDatabas3/bestseller/internal/domain/repository"
	"github.com/dropDatabas3/bestseller/internal/domain/types"
	"github.com/dropDatabas3/bestseller/internal/observability/logger"
)

// ProductService define las operaciones sobre productos.
// Los resultados de escritura son los del store, sin transformar.
type ProductService interface {
	ListAvailable(ctx context.Context) ([]repository.Document, error)
	Get(ctx context.Context, id string) (repository.Document, error)
	ListByCategory(ctx context.Context, category string) ([]repository.Document, error)
	ListAdvertised(ctx context.Context) ([]repository.Document, error)
	ListBySeller(ctx context.Context, sellerEmail string) ([]repository.Document, error)
	ListReported(ctx context.Context) ([]repository.Document, error)

	// Create inserta el body tal cual. Si owner no es vacío pisa sellerEmail.
	Create(ctx context.Context, body repository.Document, owner string) (repository.InsertResult, error)
	// Update hace upsert de los campos recibidos sobre el producto id.
	Update(ctx context.Context, id string, fields repository.Document) (repository.UpdateResult, error)

	MarkSold(ctx context.Context, id string) (repository.UpdateResult, error)
	MarkAvailable(ctx context.Context, id string) (repository.UpdateResult, error)
	Advertise(ctx context.Context, id string) (repository.UpdateResult, error)
	Report(ctx context.Context, id string) (repository.UpdateResult, error)
}

type productService struct {
	products repository.DocumentCollection
}

// NewProductService crea el service sobre la colección de productos.
func NewProductService(products repository.DocumentCollection) ProductService {
	return &productService{products: products}
}

const componentProducts = "products"

func (s *productService) log(ctx context.Context, op string) *zap.Logger {
	return logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component(componentProducts),
		logger.Op(op),
	)
}

func (s *productService) ListAvailable(ctx context.Context) ([]repository.Document, error) {
	return s.products.Find(ctx, repository.Filter{types.FieldStatus: string(types.StatusAvailable)})
}

func (s *productService) Get(ctx context.Context, id string) (repository.Document, error) {
	return s.products.FindOne(ctx, repository.ByID(id))
}

func (s *productService) ListByCategory(ctx context.Context, category string) ([]repository.Document, error) {
	return s.products.Find(ctx, repository.Filter{
		types.FieldCategory: category,
		types.FieldStatus:   string(types.StatusAvailable),
	})
}

func (s *productService) ListAdvertised(ctx context.Context) ([]repository.Document, error) {
	return s.products.Find(ctx, repository.Filter{types.FieldAdvertised: true})
}

func (s *productService) ListBySeller(ctx context.Context, sellerEmail string) ([]repository.Document, error) {
	return s.products.Find(ctx, repository.Filter{types.FieldSellerEmail: sellerEmail})
}

func (s *productService) ListReported(ctx context.Context) ([]repository.Document, error) {
	return s.products.Find(ctx, repository.Filter{types.FieldReport: true})
}

func (s *productService) Create(ctx context.Context, body repository.Document, owner string) (repository.InsertResult, error) {
	doc := body.Clone()
	if owner = strings.TrimSpace(owner); owner != "" {
		doc[types.FieldSellerEmail] = owner
	}

	res, err := s.products.InsertOne(ctx, doc)
	if err != nil {
		return repository.InsertResult{}, fmt.Errorf("products: insert: %w", err)
	}
	s.log(ctx, "Create").Info("product created",
		logger.ProductID(res.InsertedID),
		logger.Email(doc.String(types.FieldSellerEmail)),
	)
	return res, nil
}

func (s *productService) Update(ctx context.Context, id string, fields repository.Document) (repository.UpdateResult, error) {
	return s.products.UpdateOne(ctx, repository.ByID(id), fields, repository.UpdateOptions{Upsert: true})
}

// MarkSold saca además el producto de la lista de anunciados.
func (s *productService) MarkSold(ctx context.Context, id string) (repository.UpdateResult, error) {
	return s.setFields(ctx, "MarkSold", id, repository.Document{
		types.FieldStatus:     string(types.StatusSold),
		types.FieldAdvertised: false,
	})
}

// MarkAvailable solo toca status; advertised queda como lo dejó sold.
func (s *productService) MarkAvailable(ctx context.Context, id string) (repository.UpdateResult, error) {
	return s.setFields(ctx, "MarkAvailable", id, repository.Document{
		types.FieldStatus: string(types.StatusAvailable),
	})
}

func (s *productService) Advertise(ctx context.Context, id string) (repository.UpdateResult, error) {
	return s.setFields(ctx, "Advertise", id, repository.Document{types.FieldAdvertised: true})
}

func (s *productService) Report(ctx context.Context, id string) (repository.UpdateResult, error) {
	return s.setFields(ctx, "Report", id, repository.Document{types.FieldReport: true})
}

func (s *productService) setFields(ctx context.Context, op, id string, set repository.Document) (repository.UpdateResult, error) {
	res, err := s.products.UpdateOne(ctx, repository.ByID(id), set, repository.UpdateOptions{})
	if err != nil {
		return repository.UpdateResult{}, err
	}
	s.log(ctx, op).Debug("product updated",
		logger.ProductID(id),
		logger.Int64("matched", res.MatchedCount),
		logger.Int64("modified", res.ModifiedCount),
	)
	return res, nil
}

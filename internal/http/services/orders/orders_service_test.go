package orders

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/bestseller/internal/domain/repository"
	"github.com/dropDatabas3/bestseller/internal/store/adapters/memory"
)

func setup(t *testing.T, legacy bool) (*memory.DAL, OrderService) {
	t.Helper()
	dal := memory.New()
	return dal, NewOrderService(Deps{Orders: dal.Orders(), Products: dal.Products(), LegacyProductByName: legacy})
}

func insert(t *testing.T, c repository.DocumentCollection, d repository.Document) string {
	t.Helper()
	res, err := c.InsertOne(context.Background(), d)
	require.NoError(t, err)
	return res.InsertedID
}

func TestConfirmPayment_ByProductName(t *testing.T) {
	ctx := context.Background()
	dal, svc := setup(t, true)
	pid := insert(t, dal.Products(), repository.Document{"name": "Widget", "status": "available"})
	oid := insert(t, dal.Orders(), repository.Document{"email": "b@x.com", "productName": "Widget"})

	res, err := svc.ConfirmPayment(ctx, oid, repository.Document{"productName": "Widget", "transactionId": "tx1"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, res.MatchedCount)
	assert.EqualValues(t, 1, res.ModifiedCount)

	order, err := dal.Orders().FindOne(ctx, repository.ByID(oid))
	require.NoError(t, err)
	assert.True(t, order.Bool("paid"))
	assert.Equal(t, "tx1", order.String("transactionId"))

	product, err := dal.Products().FindOne(ctx, repository.ByID(pid))
	require.NoError(t, err)
	assert.Equal(t, "sold", product.String("status"))
}

func TestConfirmPayment_PrefersProductID(t *testing.T) {
	ctx := context.Background()
	dal, svc := setup(t, true)
	decoy := insert(t, dal.Products(), repository.Document{"name": "Widget", "status": "available"})
	target := insert(t, dal.Products(), repository.Document{"name": "Widget", "status": "available"})
	oid := insert(t, dal.Orders(), repository.Document{"productName": "Widget", "productId": target})

	_, err := svc.ConfirmPayment(ctx, oid, repository.Document{"transactionId": "tx2"})
	require.NoError(t, err)

	p, _ := dal.Products().FindOne(ctx, repository.ByID(target))
	assert.Equal(t, "sold", p.String("status"))
	d, _ := dal.Products().FindOne(ctx, repository.ByID(decoy))
	assert.Equal(t, "available", d.String("status"))
}

func TestConfirmPayment_LegacyOff(t *testing.T) {
	ctx := context.Background()
	dal, svc := setup(t, false)
	pid := insert(t, dal.Products(), repository.Document{"name": "Widget", "status": "available"})
	oid := insert(t, dal.Orders(), repository.Document{"productName": "Widget"})

	_, err := svc.ConfirmPayment(ctx, oid, repository.Document{"productName": "Widget", "transactionId": "tx1"})
	require.NoError(t, err)

	p, _ := dal.Products().FindOne(ctx, repository.ByID(pid))
	assert.Equal(t, "available", p.String("status"))
	o, _ := dal.Orders().FindOne(ctx, repository.ByID(oid))
	assert.True(t, o.Bool("paid"))
}

func TestConfirmPayment_NoMatchingProductIsNoop(t *testing.T) {
	dal, svc := setup(t, true)
	oid := insert(t, dal.Orders(), repository.Document{"productName": "Ghost"})
	_, err := svc.ConfirmPayment(context.Background(), oid, repository.Document{"transactionId": "tx"})
	require.NoError(t, err)
}

func TestConfirmPayment_Errors(t *testing.T) {
	dal, svc := setup(t, true)
	oid := insert(t, dal.Orders(), repository.Document{"productName": "Widget"})

	_, err := svc.ConfirmPayment(context.Background(), oid, repository.Document{})
	assert.ErrorIs(t, err, repository.ErrInvalidInput)

	_, err = svc.ConfirmPayment(context.Background(), "not-hex", repository.Document{"transactionId": "tx"})
	assert.ErrorIs(t, err, repository.ErrInvalidID)
}

func TestListByBuyer(t *testing.T) {
	dal, svc := setup(t, true)
	insert(t, dal.Orders(), repository.Document{"email": "a@x.com"})
	insert(t, dal.Orders(), repository.Document{"email": "b@x.com"})
	insert(t, dal.Orders(), repository.Document{"email": "a@x.com"})

	got, err := svc.ListByBuyer(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestCreateThenGet(t *testing.T) {
	ctx := context.Background()
	_, svc := setup(t, true)

	res, err := svc.Create(ctx, repository.Document{"email": "a@x.com", "productName": "Widget"})
	require.NoError(t, err)
	assert.True(t, res.Acknowledged)

	got, err := svc.Get(ctx, res.InsertedID)
	require.NoError(t, err)
	assert.Equal(t, "Widget", got.String("productName"))
	assert.False(t, got.Bool("paid"))

	_, err = svc.Get(ctx, "nope")
	assert.ErrorIs(t, err, repository.ErrInvalidID)
}

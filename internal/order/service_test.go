package order

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tiendalabs/tiendago/internal/domain"
)

func TestCreateOrderValidation(t *testing.T) {
	db := newTestDB(t)
	customers, products := seedStore(t, db)
	svc := NewService(NewGormRepository(db), nil)
	ctx := context.Background()

	_, err := svc.CreateOrder(ctx, 0, []CartLine{{ProductID: products[0].ID, Quantity: 1}})
	assert.ErrorIs(t, err, ErrMissingCustomer)

	_, err = svc.CreateOrder(ctx, customers[0].ID, nil)
	assert.ErrorIs(t, err, ErrEmptyOrder)

	_, err = svc.CreateOrder(ctx, customers[0].ID, []CartLine{{ProductID: products[0].ID, Quantity: 0}})
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = svc.CreateOrder(ctx, customers[0].ID, []CartLine{{ProductID: products[0].ID, Quantity: -3}})
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = svc.CreateOrder(ctx, customers[0].ID, []CartLine{{ProductID: 0, Quantity: 1}})
	assert.ErrorIs(t, err, ErrProductUnavailable)

	assert.True(t, IsValidation(err))

	var headers int64
	require.NoError(t, db.Model(&domain.Order{}).Count(&headers).Error)
	assert.Zero(t, headers, "rejected submissions must not persist anything")
}

func TestCreateOrderComposesResult(t *testing.T) {
	db := newTestDB(t)
	customers, products := seedStore(t, db)

	var published []interface{}
	svc := NewService(NewGormRepository(db), func(topic string, args ...interface{}) {
		published = append(published, topic)
		published = append(published, args...)
	})

	result, err := svc.CreateOrder(context.Background(), customers[0].ID, []CartLine{
		{ProductID: products[0].ID, Quantity: 2},
		{ProductID: products[2].ID, Quantity: 1},
	})
	require.NoError(t, err)

	assert.Equal(t, customers[0].ID, result.CustomerID)
	assert.Equal(t, domain.OrderStatusPending, result.Status)
	assert.Equal(t, 239.97, result.Total)
	assert.Equal(t, 2, result.LineCount)
	require.Len(t, result.Lines, 2)
	assert.Equal(t, products[0].ID, result.Lines[0].ProductID)
	assert.Equal(t, 2, result.Lines[0].Quantity)
	assert.Equal(t, products[2].ID, result.Lines[1].ProductID)
	assert.Equal(t, 1, result.Lines[1].Quantity)

	require.Len(t, published, 4)
	assert.Equal(t, TopicOrderCreated, published[0])
	assert.Equal(t, result.ID, published[1])
}

func TestListCustomerOrdersEmptyHistory(t *testing.T) {
	db := newTestDB(t)
	customers, _ := seedStore(t, db)
	svc := NewService(NewGormRepository(db), nil)

	orders, err := svc.ListCustomerOrders(context.Background(), customers[0].ID)
	require.NoError(t, err)
	assert.NotNil(t, orders)
	assert.Empty(t, orders)
}

func TestListCustomerOrdersRoundTrip(t *testing.T) {
	db := newTestDB(t)
	customers, products := seedStore(t, db)
	svc := NewService(NewGormRepository(db), nil)
	ctx := context.Background()

	createdResult, err := svc.CreateOrder(ctx, customers[0].ID, []CartLine{
		{ProductID: products[0].ID, Quantity: 2},
		{ProductID: products[2].ID, Quantity: 1},
	})
	require.NoError(t, err)

	orders, err := svc.ListCustomerOrders(ctx, customers[0].ID)
	require.NoError(t, err)
	require.Len(t, orders, 1)

	got := orders[0]
	assert.Equal(t, createdResult.ID, got.ID)
	assert.Equal(t, customers[0].ID, got.CustomerID)
	assert.Equal(t, domain.OrderStatusPending, got.Status)
	require.Len(t, got.Lines, 2)

	quantities := map[int64]int{}
	for _, line := range got.Lines {
		quantities[line.ProductID] = line.Quantity
		assert.NotEmpty(t, line.ProductName)
	}
	assert.Equal(t, map[int64]int{products[0].ID: 2, products[2].ID: 1}, quantities)
}

func TestListCustomerOrdersNewestFirst(t *testing.T) {
	db := newTestDB(t)
	customers, products := seedStore(t, db)
	svc := NewService(NewGormRepository(db), nil)
	ctx := context.Background()

	var ids []int64
	for i := 0; i < 3; i++ {
		result, err := svc.CreateOrder(ctx, customers[0].ID, []CartLine{
			{ProductID: products[1].ID, Quantity: 1},
		})
		require.NoError(t, err)
		ids = append(ids, result.ID)
	}

	orders, err := svc.ListCustomerOrders(ctx, customers[0].ID)
	require.NoError(t, err)
	require.Len(t, orders, 3)
	for i := range orders {
		assert.Equal(t, ids[len(ids)-1-i], orders[i].ID)
	}
}

func TestListCustomerOrdersIsCustomerScoped(t *testing.T) {
	db := newTestDB(t)
	customers, products := seedStore(t, db)
	svc := NewService(NewGormRepository(db), nil)
	ctx := context.Background()

	_, err := svc.CreateOrder(ctx, customers[1].ID, []CartLine{
		{ProductID: products[0].ID, Quantity: 1},
	})
	require.NoError(t, err)

	mine, err := svc.ListCustomerOrders(ctx, customers[0].ID)
	require.NoError(t, err)
	assert.Empty(t, mine, "customer A must not see customer B's orders")

	theirs, err := svc.ListCustomerOrders(ctx, customers[1].ID)
	require.NoError(t, err)
	require.Len(t, theirs, 1)
	assert.Equal(t, customers[1].ID, theirs[0].CustomerID)
}

package service

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/kdas/shopkart-backend/internal/app/model"
	"github.com/kdas/shopkart-backend/internal/app/repository"
	"github.com/kdas/shopkart-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupOrderServiceTest(t *testing.T) (*OrderService, repository.ProductRepository) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	productRepo := repository.NewProductRepository(testDB)
	orderRepo := repository.NewOrderRepository(testDB)
	return NewOrderService(orderRepo, productRepo), productRepo
}

func checkoutInputWith(items ...CheckoutItem) CheckoutInput {
	return CheckoutInput{
		FirstName: "Krishna",
		LastName:  "Das",
		Email:     "krishna@example.com",
		Phone:     "9876543210",
		Address:   "12 MG Road",
		City:      "Bengaluru",
		State:     "Karnataka",
		Zip:       "560001",
		Items:     items,
	}
}

func TestOrderService_Checkout(t *testing.T) {
	svc, productRepo := setupOrderServiceTest(t)

	bottle := &model.Product{Name: "Steel Bottle", Price: 299}
	kurta := &model.Product{Name: "Cotton Kurta", Price: 799}
	require.NoError(t, productRepo.Create(bottle))
	require.NoError(t, productRepo.Create(kurta))

	order, err := svc.Checkout(checkoutInputWith(
		CheckoutItem{ProductLegacyID: bottle.LegacyID, Quantity: 2},
		CheckoutItem{ProductLegacyID: kurta.LegacyID, Quantity: 1},
	))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(order.OrderID, "ORD-"))
	assert.Equal(t, "Krishna Das", order.CustomerFullName())
	assert.Equal(t, 299.0*2+799.0, order.Total)

	require.Len(t, order.Items, 2)
	assert.Equal(t, "Steel Bottle", order.Items[0].Name)
	assert.Equal(t, 299.0, order.Items[0].Price)
	assert.Equal(t, 2, order.Items[0].Quantity)
}

func TestOrderService_CheckoutSnapshotsFreezePrice(t *testing.T) {
	svc, productRepo := setupOrderServiceTest(t)

	bottle := &model.Product{Name: "Steel Bottle", Price: 299}
	require.NoError(t, productRepo.Create(bottle))

	order, err := svc.Checkout(checkoutInputWith(CheckoutItem{ProductLegacyID: bottle.LegacyID, Quantity: 1}))
	require.NoError(t, err)

	// Edit the product after checkout; the frozen snapshot must survive
	bottle.Name = "Steel Bottle XL"
	bottle.Price = 999
	require.NoError(t, productRepo.Update(bottle))

	fetched, err := svc.GetOrderByOrderID(order.OrderID)
	require.NoError(t, err)
	require.Len(t, fetched.Items, 1)
	assert.Equal(t, "Steel Bottle", fetched.Items[0].Name)
	assert.Equal(t, 299.0, fetched.Items[0].Price)
	assert.Equal(t, 299.0, fetched.Total)
}

func TestOrderService_CheckoutValidation(t *testing.T) {
	svc, productRepo := setupOrderServiceTest(t)

	bottle := &model.Product{Name: "Steel Bottle", Price: 299}
	require.NoError(t, productRepo.Create(bottle))

	t.Run("missing customer name", func(t *testing.T) {
		input := checkoutInputWith(CheckoutItem{ProductLegacyID: bottle.LegacyID, Quantity: 1})
		input.LastName = ""
		_, err := svc.Checkout(input)
		assert.ErrorIs(t, err, ErrCustomerMissing)
	})

	t.Run("no items", func(t *testing.T) {
		_, err := svc.Checkout(checkoutInputWith())
		assert.ErrorIs(t, err, ErrEmptyItems)
	})

	t.Run("zero quantity", func(t *testing.T) {
		_, err := svc.Checkout(checkoutInputWith(CheckoutItem{ProductLegacyID: bottle.LegacyID, Quantity: 0}))
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	})

	t.Run("unknown product", func(t *testing.T) {
		_, err := svc.Checkout(checkoutInputWith(CheckoutItem{ProductLegacyID: 999, Quantity: 1}))
		assert.ErrorIs(t, err, ErrProductNotFound)
	})
}

func TestOrderService_GetOrderByOrderID(t *testing.T) {
	svc, productRepo := setupOrderServiceTest(t)

	bottle := &model.Product{Name: "Steel Bottle", Price: 299}
	require.NoError(t, productRepo.Create(bottle))

	order, err := svc.Checkout(checkoutInputWith(CheckoutItem{ProductLegacyID: bottle.LegacyID, Quantity: 1}))
	require.NoError(t, err)

	fetched, err := svc.GetOrderByOrderID(order.OrderID)
	require.NoError(t, err)
	assert.Equal(t, order.OrderID, fetched.OrderID)
	require.Len(t, fetched.Items, 1)

	_, err = svc.GetOrderByOrderID("ORD-0")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestOrderService_ExportCSV(t *testing.T) {
	svc, productRepo := setupOrderServiceTest(t)

	bottle := &model.Product{Name: "Steel Bottle", Price: 299}
	kurta := &model.Product{Name: "Cotton Kurta", Price: 799}
	require.NoError(t, productRepo.Create(bottle))
	require.NoError(t, productRepo.Create(kurta))

	order, err := svc.Checkout(checkoutInputWith(
		CheckoutItem{ProductLegacyID: bottle.LegacyID, Quantity: 2},
		CheckoutItem{ProductLegacyID: kurta.LegacyID, Quantity: 1},
	))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, svc.ExportCSV(&buf))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)

	// Header plus one row per line item
	require.Len(t, records, 3)
	assert.Equal(t, "order_id", records[0][0])
	assert.Equal(t, order.OrderID, records[1][0])
	assert.Equal(t, "Steel Bottle", records[1][11])
	assert.Equal(t, "299.00", records[1][12])
	assert.Equal(t, "2", records[1][13])
	assert.Equal(t, "Cotton Kurta", records[2][11])
}

func TestOrderService_ExportCSVEmpty(t *testing.T) {
	svc, _ := setupOrderServiceTest(t)

	var buf bytes.Buffer
	require.NoError(t, svc.ExportCSV(&buf))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
}

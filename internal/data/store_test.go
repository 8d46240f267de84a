package data

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestStore opens a private in-memory database with foreign keys
// enforced, migrates the schema, and seeds the catalog.
func newTestStore(t *testing.T) *Store {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", name)
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, EnsureSchema(gdb))
	require.NoError(t, SeedCatalog(context.Background(), gdb))

	return NewStore(gdb, zerolog.Nop())
}

func countRows(t *testing.T, s *Store, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, s.db.Model(model).Count(&n).Error)
	return n
}

func TestUpsertCustomerInsertsThenUpdates(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first, err := s.UpsertCustomer(ctx, "Demo Customer", "demo@example.com", "555-0000")
	require.NoError(t, err)
	assert.NotZero(t, first.CustomerID)
	assert.Equal(t, "Demo Customer", first.Name)

	second, err := s.UpsertCustomer(ctx, "Renamed Customer", "demo@example.com", "555-9999")
	require.NoError(t, err)

	assert.Equal(t, first.CustomerID, second.CustomerID)
	assert.Equal(t, "Renamed Customer", second.Name)
	assert.Equal(t, "555-9999", second.Phone)
	assert.Equal(t, "demo@example.com", second.Email)
	assert.EqualValues(t, 1, countRows(t, s, &Customer{}))
}

func TestPlaceOrderUnknownCustomer(t *testing.T) {
	s := newTestStore(t)

	_, err := s.PlaceOrder(context.Background(), "ghost@example.com", "Engraved Tumbler 20oz", 1, ItemCustomization{})
	require.ErrorIs(t, err, ErrNotFound)

	// The failed lookup must not leave an order behind.
	assert.EqualValues(t, 0, countRows(t, s, &Order{}))
}

func TestPlaceOrderUnknownProduct(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.UpsertCustomer(ctx, "Demo Customer", "demo@example.com", "")
	require.NoError(t, err)

	_, err = s.PlaceOrder(ctx, "demo@example.com", "Holographic Mug", 1, ItemCustomization{})
	require.ErrorIs(t, err, ErrNotFound)
	assert.EqualValues(t, 0, countRows(t, s, &Order{}))
}

func TestPlaceOrderSnapshotsUnitPrice(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.UpsertCustomer(ctx, "Demo Customer", "demo@example.com", "")
	require.NoError(t, err)

	order, err := s.PlaceOrder(ctx, "demo@example.com", "Engraved Tumbler 20oz", 3, ItemCustomization{
		Text: "C&E", Font: "Montserrat", Color: "black",
	})
	require.NoError(t, err)
	assert.Equal(t, StatusPending, order.Status)
	assert.False(t, order.OrderDate.IsZero())

	var item OrderItem
	require.NoError(t, s.db.Where("order_id = ?", order.OrderID).First(&item).Error)
	assert.Equal(t, 3, item.Quantity)
	assert.Equal(t, "C&E", item.CustomText)
	assert.Contains(t, item.Specs, `"source":"demo"`)
	assert.True(t, item.UnitPrice.Equal(decimal.RequireFromString("28.50")),
		"unit price snapshot, got %s", item.UnitPrice)

	// A later catalog price change must not touch the stored snapshot.
	_, err = execStatement(s.db, `UPDATE products SET base_price = ? WHERE name = ?`,
		decimal.RequireFromString("99.99"), "Engraved Tumbler 20oz")
	require.NoError(t, err)

	var after OrderItem
	require.NoError(t, s.db.Where("order_id = ?", order.OrderID).First(&after).Error)
	assert.True(t, after.UnitPrice.Equal(decimal.RequireFromString("28.50")),
		"unit price changed retroactively, got %s", after.UnitPrice)
}

func TestUpdateOrderStatus(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.UpsertCustomer(ctx, "Demo Customer", "demo@example.com", "")
	require.NoError(t, err)
	order, err := s.PlaceOrder(ctx, "demo@example.com", "Custom Pet Tag", 1, ItemCustomization{})
	require.NoError(t, err)

	// Statuses are free-form strings; any value goes through.
	updated, err := s.UpdateOrderStatus(ctx, order.OrderID, "WAITING_ON_ARTWORK")
	require.NoError(t, err)
	assert.Equal(t, order.OrderID, updated.OrderID)
	assert.Equal(t, "WAITING_ON_ARTWORK", updated.Status)

	var stored Order
	require.NoError(t, s.db.First(&stored, order.OrderID).Error)
	assert.Equal(t, "WAITING_ON_ARTWORK", stored.Status)

	_, err = s.UpdateOrderStatus(ctx, order.OrderID+1000, "IN_PRODUCTION")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestRecordPayment(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.UpsertCustomer(ctx, "Demo Customer", "demo@example.com", "")
	require.NoError(t, err)
	order, err := s.PlaceOrder(ctx, "demo@example.com", "Walnut Plaque 8x10", 1, ItemCustomization{})
	require.NoError(t, err)

	payment, err := s.RecordPayment(ctx, order.OrderID, "30.00", "")
	require.NoError(t, err)
	assert.Equal(t, DefaultPaymentMethod, payment.Method)
	assert.True(t, payment.Amount.Equal(decimal.RequireFromString("30.00")))
	assert.False(t, payment.PaidAt.IsZero())

	_, err = s.RecordPayment(ctx, order.OrderID, "30.0.0", "cash")
	require.ErrorIs(t, err, ErrInvalidAmount)
	assert.EqualValues(t, 1, countRows(t, s, &Payment{}))

	// Payments reference an existing order; the store rejects the rest.
	_, err = s.RecordPayment(ctx, order.OrderID+1000, "5.00", "cash")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrInvalidAmount))
}

func TestDeleteCustomerCascades(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	cust, err := s.UpsertCustomer(ctx, "Demo Customer", "demo@example.com", "")
	require.NoError(t, err)
	order, err := s.PlaceOrder(ctx, "demo@example.com", "Slate Coaster Set", 2, ItemCustomization{})
	require.NoError(t, err)
	_, err = s.RecordPayment(ctx, order.OrderID, "10.00", "cash")
	require.NoError(t, err)

	deleted, err := s.DeleteCustomer(ctx, cust.CustomerID)
	require.NoError(t, err)
	assert.True(t, deleted)

	assert.EqualValues(t, 0, countRows(t, s, &Customer{}))
	assert.EqualValues(t, 0, countRows(t, s, &Order{}))
	assert.EqualValues(t, 0, countRows(t, s, &OrderItem{}))
	assert.EqualValues(t, 0, countRows(t, s, &Payment{}))

	deleted, err = s.DeleteCustomer(ctx, cust.CustomerID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestSeedCatalogIdempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, SeedCatalog(ctx, s.db))
	assert.EqualValues(t, len(catalog), countRows(t, s, &Product{}))

	// Re-seeding must not rewrite a price that orders may have
	// snapshotted from.
	_, err := execStatement(s.db, `UPDATE products SET base_price = ? WHERE name = ?`,
		decimal.RequireFromString("11.00"), "Anodized Keychain")
	require.NoError(t, err)
	require.NoError(t, SeedCatalog(ctx, s.db))

	var p Product
	require.NoError(t, s.db.Where("name = ?", "Anodized Keychain").First(&p).Error)
	assert.True(t, p.BasePrice.Equal(decimal.RequireFromString("11.00")))
}

// TestDemoScenario runs the scripted sequence end to end.
func TestDemoScenario(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	cust, err := s.UpsertCustomer(ctx, "Demo Customer", "demo@example.com", "555-0000")
	require.NoError(t, err)

	order, err := s.PlaceOrder(ctx, cust.Email, "Engraved Tumbler 20oz", 3, ItemCustomization{
		Text: "C&E", Font: "Montserrat", Color: "black",
	})
	require.NoError(t, err)

	_, err = s.UpdateOrderStatus(ctx, order.OrderID, "IN_PRODUCTION")
	require.NoError(t, err)
	_, err = s.RecordPayment(ctx, order.OrderID, "30.00", "cash")
	require.NoError(t, err)

	summaries, err := s.RecentOrderSummaries(ctx, 0)
	require.NoError(t, err)
	require.Len(t, summaries, 1)

	got := summaries[0]
	assert.Equal(t, order.OrderID, got.OrderID)
	assert.Equal(t, "IN_PRODUCTION", got.Status)
	assert.Equal(t, "Demo Customer", got.CustomerName)
	assert.True(t, got.OrderTotal.Equal(decimal.RequireFromString("85.50")),
		"3 x 28.50, got %s", got.OrderTotal)
}

package data

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// StatusPending is the status every new order starts in. Statuses are
// free-form strings; nothing validates transitions between them.
const StatusPending = "PENDING"

// ItemCustomization carries the optional engraving fields on an order
// item. Empty strings mean the field was not requested.
type ItemCustomization struct {
	Text  string
	Font  string
	Color string
}

// PlaceOrder creates a PENDING order for the customer with the given
// email and attaches one item for the named product, snapshotting the
// product's current base price as the item's unit price. Both lookups
// report ErrNotFound before anything is inserted; the order and item
// inserts run in one transaction so a failed item insert leaves no
// orphaned order behind.
func (s *Store) PlaceOrder(ctx context.Context, email, productName string, quantity int, custom ItemCustomization) (*Order, error) {
	tx := s.conn(ctx)

	var cust struct{ CustomerID uint }
	found, err := queryOne(tx, &cust, `SELECT customer_id FROM customers WHERE email = ?`, email)
	if err != nil {
		return nil, fmt.Errorf("look up customer: %w", err)
	}
	if !found {
		return nil, fmt.Errorf("customer %q: %w", email, ErrNotFound)
	}

	var prod struct {
		ProductID uint
		BasePrice decimal.Decimal
	}
	found, err = queryOne(tx, &prod, `SELECT product_id, base_price FROM products WHERE name = ?`, productName)
	if err != nil {
		return nil, fmt.Errorf("look up product: %w", err)
	}
	if !found {
		return nil, fmt.Errorf("product %q: %w", productName, ErrNotFound)
	}

	specs, err := json.Marshal(map[string]string{"source": "demo"})
	if err != nil {
		return nil, fmt.Errorf("encode item specs: %w", err)
	}

	var order Order
	err = tx.Transaction(func(tx *gorm.DB) error {
		ok, err := queryOne(tx, &order, `
			INSERT INTO orders (customer_id, status) VALUES (?, ?)
			RETURNING order_id, customer_id, status, order_date`,
			cust.CustomerID, StatusPending)
		if err != nil {
			return fmt.Errorf("insert order: %w", err)
		}
		if !ok {
			return fmt.Errorf("insert order: no row returned")
		}

		_, err = execStatement(tx, `
			INSERT INTO order_items (order_id, product_id, quantity, unit_price, custom_text, font, color, specs)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			order.OrderID, prod.ProductID, quantity, prod.BasePrice,
			custom.Text, custom.Font, custom.Color, string(specs))
		if err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Debug().
		Uint("order_id", order.OrderID).
		Str("product", productName).
		Int("quantity", quantity).
		Msg("order placed")
	return &order, nil
}

// UpdateOrderStatus overwrites the order's status with the given string.
// Any value is accepted; the only failure modes are a missing order and
// a store error.
func (s *Store) UpdateOrderStatus(ctx context.Context, orderID uint, status string) (*Order, error) {
	var order Order
	found, err := queryOne(s.conn(ctx), &order, `
		UPDATE orders SET status = ? WHERE order_id = ?
		RETURNING order_id, customer_id, status, order_date`,
		status, orderID)
	if err != nil {
		return nil, fmt.Errorf("update order status: %w", err)
	}
	if !found {
		return nil, fmt.Errorf("order %d: %w", orderID, ErrNotFound)
	}

	s.log.Debug().Uint("order_id", orderID).Str("status", status).Msg("order status updated")
	return &order, nil
}

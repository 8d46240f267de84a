package data

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

// DefaultPaymentMethod is used when the caller does not name one.
const DefaultPaymentMethod = "card"

// RecordPayment inserts a payment against an order. The amount string
// must parse as an exact decimal; binary floating point is never
// involved. No check relates the amount to the order's total, so
// partial and over-payments are accepted. A payment against a missing
// order fails on the foreign key and the store's error propagates.
func (s *Store) RecordPayment(ctx context.Context, orderID uint, amount, method string) (*Payment, error) {
	amt, err := decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("amount %q: %w", amount, ErrInvalidAmount)
	}
	if method == "" {
		method = DefaultPaymentMethod
	}

	var payment Payment
	found, err := queryOne(s.conn(ctx), &payment, `
		INSERT INTO payments (order_id, amount, method) VALUES (?, ?, ?)
		RETURNING payment_id, order_id, amount, method, paid_at`,
		orderID, amt, method)
	if err != nil {
		return nil, fmt.Errorf("record payment: %w", err)
	}
	if !found {
		return nil, fmt.Errorf("record payment for order %d: no row returned", orderID)
	}

	s.log.Debug().
		Uint("payment_id", payment.PaymentID).
		Uint("order_id", orderID).
		Str("amount", amt.StringFixed(2)).
		Str("method", method).
		Msg("payment recorded")
	return &payment, nil
}

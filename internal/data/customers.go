package data

import (
	"context"
	"fmt"
)

// UpsertCustomer inserts a customer or, when the email already exists,
// overwrites the existing row's name and phone. The resulting row is
// returned either way.
func (s *Store) UpsertCustomer(ctx context.Context, name, email, phone string) (*Customer, error) {
	var cust Customer
	found, err := queryOne(s.conn(ctx), &cust, `
		INSERT INTO customers (name, email, phone) VALUES (?, ?, ?)
		ON CONFLICT (email) DO UPDATE SET name = excluded.name, phone = excluded.phone
		RETURNING customer_id, name, email, phone`,
		name, email, phone)
	if err != nil {
		return nil, fmt.Errorf("upsert customer: %w", err)
	}
	if !found {
		return nil, fmt.Errorf("upsert customer %q: no row returned", email)
	}

	s.log.Debug().Uint("customer_id", cust.CustomerID).Str("email", cust.Email).Msg("customer upserted")
	return &cust, nil
}

// DeleteCustomer removes a customer row. The store's cascade rules take
// the customer's orders, order items, and payments with it. Returns
// whether a row was actually deleted.
func (s *Store) DeleteCustomer(ctx context.Context, customerID uint) (bool, error) {
	affected, err := execStatement(s.conn(ctx),
		`DELETE FROM customers WHERE customer_id = ?`, customerID)
	if err != nil {
		return false, fmt.Errorf("delete customer: %w", err)
	}

	s.log.Debug().Uint("customer_id", customerID).Bool("deleted", affected > 0).Msg("customer delete")
	return affected > 0, nil
}

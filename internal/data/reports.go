package data

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Report defaults, matching the demo script's arguments.
const (
	DefaultSummaryLimit   = 5
	DefaultRevenueMonths  = 6
	DefaultTopProductDays = 90
)

// OrderSummary is one row of the recent-orders report.
type OrderSummary struct {
	OrderID      uint
	Status       string
	CustomerName string
	OrderTotal   decimal.Decimal
}

// MonthRevenue is one row of the monthly revenue report. Month is the
// first instant of the month, UTC.
type MonthRevenue struct {
	Month   time.Time
	Revenue decimal.Decimal
}

// ProductSales is one row of the top-products report.
type ProductSales struct {
	ProductName string
	UnitsSold   int64
}

// RecentOrderSummaries returns at most limit orders, newest order id
// first, each with the customer name and the item total
// (sum of quantity x unit_price). limit <= 0 selects the default.
func (s *Store) RecentOrderSummaries(ctx context.Context, limit int) ([]OrderSummary, error) {
	if limit <= 0 {
		limit = DefaultSummaryLimit
	}

	var rows []OrderSummary
	err := queryAll(s.conn(ctx), &rows, `
		SELECT o.order_id, o.status, c.name AS customer_name,
		       SUM(oi.quantity * oi.unit_price) AS order_total
		FROM orders o
		JOIN customers c ON c.customer_id = o.customer_id
		JOIN order_items oi ON oi.order_id = o.order_id
		GROUP BY o.order_id, o.status, c.name
		ORDER BY o.order_id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("order summaries: %w", err)
	}
	return rows, nil
}

// RevenueByMonth sums payment amounts per calendar month over the
// trailing monthsBack window, oldest month first. Rows are fetched in a
// single round trip and the per-month sums are accumulated as exact
// decimals, which also keeps the month truncation independent of the
// store's SQL dialect.
func (s *Store) RevenueByMonth(ctx context.Context, monthsBack int) ([]MonthRevenue, error) {
	if monthsBack <= 0 {
		monthsBack = DefaultRevenueMonths
	}
	cutoff := time.Now().UTC().AddDate(0, -monthsBack, 0)

	var rows []struct {
		PaidAt time.Time
		Amount decimal.Decimal
	}
	err := queryAll(s.conn(ctx), &rows,
		`SELECT paid_at, amount FROM payments WHERE paid_at >= ?`, cutoff)
	if err != nil {
		return nil, fmt.Errorf("revenue by month: %w", err)
	}

	totals := make(map[time.Time]decimal.Decimal)
	for _, row := range rows {
		month := monthStart(row.PaidAt)
		totals[month] = totals[month].Add(row.Amount)
	}

	out := make([]MonthRevenue, 0, len(totals))
	for month, revenue := range totals {
		out = append(out, MonthRevenue{Month: month, Revenue: revenue})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month.Before(out[j].Month) })
	return out, nil
}

// TopProductsSince sums item quantities per product across orders placed
// in the trailing daysBack window, most units first, ties broken by
// product name.
func (s *Store) TopProductsSince(ctx context.Context, daysBack int) ([]ProductSales, error) {
	if daysBack <= 0 {
		daysBack = DefaultTopProductDays
	}
	cutoff := time.Now().UTC().AddDate(0, 0, -daysBack)

	var rows []ProductSales
	err := queryAll(s.conn(ctx), &rows, `
		SELECT p.name AS product_name, SUM(oi.quantity) AS units_sold
		FROM order_items oi
		JOIN orders o ON o.order_id = oi.order_id
		JOIN products p ON p.product_id = oi.product_id
		WHERE o.order_date >= ?
		GROUP BY p.name
		ORDER BY units_sold DESC, p.name ASC`, cutoff)
	if err != nil {
		return nil, fmt.Errorf("top products: %w", err)
	}
	return rows, nil
}

func monthStart(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), 1, 0, 0, 0, 0, time.UTC)
}

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/rs/zerolog"

	"laser-shop-orders/internal/config"
	"laser-shop-orders/internal/data"
	"laser-shop-orders/internal/db"
	"laser-shop-orders/internal/logger"
)

type options struct {
	skipSetup bool
	limit     int
	months    int
	days      int
	cleanup   bool
}

func main() {
	var opts options
	flag.BoolVar(&opts.skipSetup, "skip-setup", false, "assume the schema and product catalog already exist")
	flag.IntVar(&opts.limit, "limit", data.DefaultSummaryLimit, "rows in the recent-orders report")
	flag.IntVar(&opts.months, "months", data.DefaultRevenueMonths, "trailing window for the monthly revenue report")
	flag.IntVar(&opts.days, "days", data.DefaultTopProductDays, "trailing window for the top-products report")
	flag.BoolVar(&opts.cleanup, "cleanup", false, "delete the demo customer (cascading to its orders) at the end")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		return
	}
	log := logger.New(cfg.Env)

	// Single failure boundary: everything the sequence raises lands
	// here, gets logged, and the process still exits 0.
	if err := run(context.Background(), cfg, log, opts); err != nil {
		log.Error().Err(err).Msg("demo failed")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger, opts options) error {
	gdb, err := db.Open(cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}

	store := data.NewStore(gdb, log)

	if !opts.skipSetup {
		if err := data.EnsureSchema(gdb); err != nil {
			return fmt.Errorf("migrate schema: %w", err)
		}
		if err := data.SeedCatalog(ctx, gdb); err != nil {
			return fmt.Errorf("seed catalog: %w", err)
		}
	}

	log.Info().Msg("creating demo customer")
	cust, err := store.UpsertCustomer(ctx, "Demo Customer", "demo@example.com", "555-0000")
	if err != nil {
		return err
	}
	log.Info().Uint("customer_id", cust.CustomerID).Str("email", cust.Email).Msg("customer ready")

	log.Info().Msg("placing order with one item")
	order, err := store.PlaceOrder(ctx, cust.Email, "Engraved Tumbler 20oz", 3, data.ItemCustomization{
		Text:  "C&E",
		Font:  "Montserrat",
		Color: "black",
	})
	if err != nil {
		return err
	}
	log.Info().Uint("order_id", order.OrderID).Str("status", order.Status).Time("order_date", order.OrderDate).Msg("order created")

	order, err = store.UpdateOrderStatus(ctx, order.OrderID, "IN_PRODUCTION")
	if err != nil {
		return err
	}
	log.Info().Uint("order_id", order.OrderID).Str("status", order.Status).Msg("order moved to production")

	log.Info().Msg("paying partial balance")
	payment, err := store.RecordPayment(ctx, order.OrderID, "30.00", "cash")
	if err != nil {
		return err
	}
	log.Info().
		Uint("payment_id", payment.PaymentID).
		Str("amount", payment.Amount.StringFixed(2)).
		Str("method", payment.Method).
		Msg("payment recorded")

	if err := printReports(ctx, store, opts); err != nil {
		return err
	}

	if opts.cleanup {
		deleted, err := store.DeleteCustomer(ctx, cust.CustomerID)
		if err != nil {
			return err
		}
		log.Info().Bool("deleted", deleted).Msg("demo customer removed")
	}

	return nil
}

func printReports(ctx context.Context, store *data.Store, opts options) error {
	summaries, err := store.RecentOrderSummaries(ctx, opts.limit)
	if err != nil {
		return err
	}
	fmt.Println("\nLatest order summaries:")
	table := tablewriter.NewTable(os.Stdout)
	table.Header("ORDER", "STATUS", "CUSTOMER", "TOTAL")
	for _, row := range summaries {
		if err := table.Append([]string{
			strconv.FormatUint(uint64(row.OrderID), 10),
			row.Status,
			row.CustomerName,
			row.OrderTotal.StringFixed(2),
		}); err != nil {
			return err
		}
	}
	if err := table.Render(); err != nil {
		return err
	}

	revenue, err := store.RevenueByMonth(ctx, opts.months)
	if err != nil {
		return err
	}
	fmt.Printf("\nRevenue by month (last %d months):\n", opts.months)
	table = tablewriter.NewTable(os.Stdout)
	table.Header("MONTH", "REVENUE")
	for _, row := range revenue {
		if err := table.Append([]string{row.Month.Format("2006-01"), row.Revenue.StringFixed(2)}); err != nil {
			return err
		}
	}
	if err := table.Render(); err != nil {
		return err
	}

	top, err := store.TopProductsSince(ctx, opts.days)
	if err != nil {
		return err
	}
	fmt.Printf("\nTop products (last %d days):\n", opts.days)
	table = tablewriter.NewTable(os.Stdout)
	table.Header("PRODUCT", "UNITS SOLD")
	for _, row := range top {
		if err := table.Append([]string{row.ProductName, strconv.FormatInt(row.UnitsSold, 10)}); err != nil {
			return err
		}
	}
	return table.Render()
}

package data

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EnsureSchema applies the required database schema, including the
// cascade foreign keys from orders, order_items, and payments.
func EnsureSchema(gdb *gorm.DB) error {
	return gdb.AutoMigrate(&Customer{}, &Product{}, &Order{}, &OrderItem{}, &Payment{})
}

// catalog is the engraving product lineup the demo works against.
// Base prices stay exact decimals end to end.
var catalog = []Product{
	{Name: "Engraved Tumbler 20oz", BasePrice: decimal.RequireFromString("28.50")},
	{Name: "Custom Pet Tag", BasePrice: decimal.RequireFromString("9.75")},
	{Name: "Walnut Plaque 8x10", BasePrice: decimal.RequireFromString("42.00")},
	{Name: "Bamboo Cutting Board", BasePrice: decimal.RequireFromString("33.25")},
	{Name: "Slate Coaster Set", BasePrice: decimal.RequireFromString("21.00")},
	{Name: "Anodized Keychain", BasePrice: decimal.RequireFromString("7.25")},
}

// SeedCatalog inserts the product catalog if it is not already present.
// Existing rows are left untouched so re-running the demo never rewrites
// prices that orders may have snapshotted from.
func SeedCatalog(ctx context.Context, gdb *gorm.DB) error {
	var existing int64
	if err := gdb.WithContext(ctx).Model(&Product{}).Count(&existing).Error; err != nil {
		return err
	}
	if int(existing) >= len(catalog) {
		return nil
	}

	products := make([]Product, len(catalog))
	copy(products, catalog)

	return gdb.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).
		Create(&products).Error
}

// Package data implements the order store for the laser-engraving shop:
// gorm models for the relational schema, a Store façade whose named
// operations each execute one parameterized SQL statement, and the
// aggregate reports the demo driver prints.
package data

import (
	"context"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// Store executes the shop's business operations against a relational
// database. Every operation issues exactly one parameterized statement
// per round trip; errors from the store propagate to the caller
// unmodified apart from wrapping context.
type Store struct {
	db  *gorm.DB
	log zerolog.Logger
}

// NewStore wraps an open database handle.
func NewStore(gdb *gorm.DB, log zerolog.Logger) *Store {
	return &Store{db: gdb, log: log}
}

// queryOne runs a statement and scans the first row into dest. The
// second return reports whether a row was found.
func queryOne(tx *gorm.DB, dest any, query string, args ...any) (bool, error) {
	res := tx.Raw(query, args...).Scan(dest)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// queryAll runs a statement and scans every row into the slice dest.
func queryAll(tx *gorm.DB, dest any, query string, args ...any) error {
	return tx.Raw(query, args...).Scan(dest).Error
}

// execStatement runs a statement that returns no rows and reports how
// many rows it affected.
func execStatement(tx *gorm.DB, query string, args ...any) (int64, error) {
	res := tx.Exec(query, args...)
	return res.RowsAffected, res.Error
}

func (s *Store) conn(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

// internal/repository/db_executor.go
package repository

import (
	"context"
	"database/sql"
)

// DBExecutor is the set of database operations repositories need. Both
// *sqlx.DB and *sqlx.Tx implement it, so every repository method can run
// either standalone or inside a caller-owned transaction. All balance and
// pool mutation goes through a transaction executor; the plain DB handle
// is for reads.
type DBExecutor interface {
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// pkg/db/migrate.go
package db

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// schema is the logical state layout: reference data (issuers, users,
// wallets, credit definitions, merchants, policies), mutable shared state
// (balances, liquidity pools) and the immutable audit trail (ledger
// transactions, ledger entries, policy evaluation logs). All statements
// are idempotent so Migrate can run at every startup.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS issuers (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		slug TEXT NOT NULL UNIQUE,
		api_key TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		full_name TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS wallets (
		id TEXT PRIMARY KEY,
		user_id TEXT REFERENCES users(id),
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS credit_definitions (
		id TEXT PRIMARY KEY,
		issuer_id TEXT NOT NULL REFERENCES issuers(id),
		name TEXT NOT NULL,
		symbol TEXT NOT NULL,
		kind TEXT NOT NULL,
		decimals INT NOT NULL DEFAULT 2,
		rate_to_usd NUMERIC(20,4) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS balances (
		id TEXT PRIMARY KEY,
		wallet_id TEXT NOT NULL REFERENCES wallets(id),
		credit_def_id TEXT NOT NULL REFERENCES credit_definitions(id),
		amount NUMERIC(20,4) NOT NULL DEFAULT 0 CHECK (amount >= 0),
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL,
		UNIQUE (wallet_id, credit_def_id)
	)`,
	`CREATE TABLE IF NOT EXISTS ledger_transactions (
		id TEXT PRIMARY KEY,
		type TEXT NOT NULL,
		status TEXT NOT NULL,
		metadata TEXT NOT NULL DEFAULT '{}',
		created_at TIMESTAMPTZ NOT NULL,
		finalized_at TIMESTAMPTZ
	)`,
	`CREATE TABLE IF NOT EXISTS ledger_entries (
		id TEXT PRIMARY KEY,
		transaction_id TEXT NOT NULL REFERENCES ledger_transactions(id),
		wallet_id TEXT NOT NULL REFERENCES wallets(id),
		credit_def_id TEXT NOT NULL REFERENCES credit_definitions(id),
		direction TEXT NOT NULL CHECK (direction IN ('DEBIT', 'CREDIT')),
		amount NUMERIC(20,4) NOT NULL CHECK (amount > 0),
		balance_after NUMERIC(20,4) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_ledger_entries_wallet ON ledger_entries (wallet_id)`,
	`CREATE INDEX IF NOT EXISTS idx_ledger_entries_credit_def ON ledger_entries (credit_def_id)`,
	`CREATE TABLE IF NOT EXISTS liquidity_pools (
		id TEXT PRIMARY KEY,
		credit_def_id TEXT NOT NULL UNIQUE REFERENCES credit_definitions(id),
		balance NUMERIC(20,4) NOT NULL CHECK (balance >= 0),
		currency TEXT NOT NULL DEFAULT 'USD',
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS merchants (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		category TEXT NOT NULL DEFAULT '',
		discount_rate NUMERIC(6,4) NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS policies (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		rule_type TEXT NOT NULL,
		priority INT NOT NULL DEFAULT 0,
		issuer_id TEXT REFERENCES issuers(id),
		credit_def_id TEXT REFERENCES credit_definitions(id),
		parameters TEXT NOT NULL DEFAULT '{}',
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS policy_evaluation_logs (
		id TEXT PRIMARY KEY,
		transaction_id TEXT REFERENCES ledger_transactions(id),
		decision TEXT NOT NULL,
		results TEXT NOT NULL DEFAULT '{}',
		created_at TIMESTAMPTZ NOT NULL
	)`,
}

// Migrate applies the schema. Safe to call on every startup.
func Migrate(ctx context.Context, conn *sqlx.DB) error {
	for _, stmt := range schema {
		if _, err := conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

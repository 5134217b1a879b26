package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "open sqlite")
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func createUserTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE users (
		id TEXT PRIMARY KEY,
		username TEXT UNIQUE NOT NULL,
		email TEXT UNIQUE NOT NULL,
		wallet_address TEXT UNIQUE NOT NULL,
		name TEXT,
		image TEXT,
		twitter TEXT,
		website TEXT,
		is_admin BOOLEAN NOT NULL DEFAULT 0,
		status TEXT NOT NULL DEFAULT 'active',
		password_hash TEXT,
		email_verified BOOLEAN NOT NULL DEFAULT 0,
		verification_token TEXT,
		reset_password_token TEXT,
		reset_password_expires DATETIME,
		nonce TEXT,
		last_login DATETIME,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createOrderTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE orders (
		id TEXT PRIMARY KEY,
		order_no TEXT UNIQUE NOT NULL,
		owner TEXT NOT NULL,
		type TEXT NOT NULL,
		status TEXT NOT NULL,
		total TEXT NOT NULL,
		currency TEXT NOT NULL DEFAULT 'USD',
		payments TEXT,
		notes TEXT,
		client_name TEXT,
		client_email TEXT,
		client_wallet TEXT,
		items TEXT,
		subtotal TEXT,
		tax_rate TEXT,
		tax TEXT,
		discount TEXT,
		expiration_date DATETIME,
		terms TEXT,
		is_visible BOOLEAN,
		payroll_type TEXT,
		payment_cycle TEXT,
		recipients TEXT,
		gross_pay TEXT,
		net_pay TEXT,
		payment_date DATETIME,
		created_at DATETIME,
		updated_at DATETIME,
		paid_at DATETIME
	);`)
}

func createPaymentTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE payments (
		id TEXT PRIMARY KEY,
		payment_no TEXT UNIQUE NOT NULL,
		order_ref TEXT NOT NULL,
		type TEXT NOT NULL,
		amount TEXT NOT NULL,
		status TEXT NOT NULL,
		sender TEXT NOT NULL,
		recipient TEXT NOT NULL,
		mint_address TEXT,
		chain TEXT NOT NULL,
		network TEXT NOT NULL DEFAULT 'mainnet',
		currency TEXT NOT NULL,
		comments TEXT,
		"transaction" TEXT,
		refund_tx_hash TEXT,
		completed_at DATETIME,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

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

func createProducerTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE producers (
		producer_id TEXT PRIMARY KEY,
		linked_account_id TEXT,
		kyc_completed BOOLEAN NOT NULL DEFAULT 0,
		razorpay_account_status TEXT,
		razorpay_kyc_status TEXT,
		bank_account_number TEXT,
		bank_ifsc_code TEXT,
		bank_beneficiary_name TEXT,
		status_event_at INTEGER,
		version INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createReconciliationFailureTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE reconciliation_failures (
		id TEXT PRIMARY KEY,
		account_id TEXT,
		event_type TEXT NOT NULL,
		payload TEXT NOT NULL,
		error_message TEXT,
		attempts INTEGER NOT NULL DEFAULT 0,
		resolved_at DATETIME,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

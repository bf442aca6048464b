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
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open sqlite")
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func createBridgeTransactionTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE bridge_transactions (
		id TEXT PRIMARY KEY,
		type TEXT NOT NULL,
		status TEXT NOT NULL,
		amount TEXT NOT NULL,
		fee TEXT NOT NULL,
		fee_bps INTEGER NOT NULL,
		fee_type TEXT,
		source_network TEXT NOT NULL,
		destination_network TEXT NOT NULL,
		source_address TEXT NOT NULL,
		destination_address TEXT NOT NULL,
		source_tx_hash TEXT,
		dest_tx_hash TEXT,
		memo TEXT,
		failure_reason TEXT,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createFeeConfigTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE fee_configs (
		id TEXT PRIMARY KEY,
		base_fee_bps INTEGER NOT NULL,
		low_volume_fee_bps INTEGER NOT NULL,
		medium_volume_fee_bps INTEGER NOT NULL,
		high_volume_fee_bps INTEGER NOT NULL,
		volume_threshold1 INTEGER NOT NULL,
		volume_threshold2 INTEGER NOT NULL,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createDistributionWalletsTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE distribution_wallets (
		id TEXT PRIMARY KEY,
		dev TEXT NOT NULL,
		insurance_fund TEXT NOT NULL,
		staking_rewards TEXT NOT NULL,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

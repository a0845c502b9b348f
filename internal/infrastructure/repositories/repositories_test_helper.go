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

func createMerchantTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE merchants (
		id TEXT PRIMARY KEY,
		domain TEXT NOT NULL UNIQUE,
		business_name TEXT,
		phone TEXT,
		phones TEXT,
		away_message TEXT,
		sms_enabled BOOLEAN DEFAULT 0,
		sms_template TEXT,
		facebook_enabled BOOLEAN DEFAULT 0,
		twitter_enabled BOOLEAN DEFAULT 0,
		agent_enabled BOOLEAN DEFAULT 0,
		checkout_interval INTEGER DEFAULT 0,
		chat_enabled BOOLEAN DEFAULT 0,
		tiers0 TEXT,
		tiers1 TEXT,
		tiers2 TEXT,
		progress INTEGER NOT NULL DEFAULT 0,
		status TEXT NOT NULL DEFAULT 'new',
		package TEXT,
		pending_package TEXT,
		pending_since DATETIME,
		analysed_at DATETIME,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}

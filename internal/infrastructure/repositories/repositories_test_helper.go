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

func createUserTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE users (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		address TEXT,
		phone TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		roles TEXT NOT NULL,
		favorite_items TEXT,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createItemTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE items (
		id TEXT PRIMARY KEY,
		seller_id TEXT NOT NULL,
		name TEXT NOT NULL,
		price REAL NOT NULL,
		description TEXT NOT NULL,
		images TEXT NOT NULL,
		category TEXT NOT NULL,
		sub_category TEXT NOT NULL,
		location TEXT,
		condition TEXT,
		is_approved BOOLEAN NOT NULL DEFAULT 0,
		status TEXT NOT NULL DEFAULT 'PENDING',
		views INTEGER NOT NULL DEFAULT 0,
		embedding TEXT,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

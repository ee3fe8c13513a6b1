// Package dbtest opens throwaway in-memory databases for package tests.
package dbtest

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"techscreen-backend/db"
)

// New returns a migrated in-memory SQLite database private to the test.
func New(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := db.Connect(db.Settings{
		Driver:     db.DriverSqlite,
		SqlitePath: fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", uuid.NewString()),
		Migrate:    true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := conn.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return conn
}

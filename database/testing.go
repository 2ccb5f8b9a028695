package database

import (
	"testing"

	"vehicle-catalog-api/config"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// NewTestDB 创建已迁移的内存数据库
func NewTestDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := Open(config.DatabaseConfig{
		Driver:     config.DriverSQLite,
		SQLitePath: ":memory:",
		LogLevel:   "silent",
	})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

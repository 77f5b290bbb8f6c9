// Package repotest opens throwaway sqlite databases carrying the full schema.
package repotest

import (
	"fmt"
	"testing"

	"github.com/angelmondragon/voltmart-backend/pkg/db"
	"github.com/angelmondragon/voltmart-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// NewDB returns an isolated in-memory database migrated from the models.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	conn, err := db.Open(sqlite.Open(dsn))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(models.All()...); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}
	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatalf("sql handle: %v", err)
	}
	// shared-cache memory databases vanish once the last connection closes
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return conn
}

// NewClient wraps NewDB in a db.Client for code that needs transactions.
func NewClient(t testing.TB) *db.Client {
	t.Helper()
	return db.NewFromConn(NewDB(t))
}

package repository

import (
	"fmt"
	"testing"

	"asset-track-go/internal/model"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB 为每个测试创建一个独立的内存 SQLite 数据库。
// DSN 带上测试名以避免 cache=shared 在测试之间串库。
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Server{},
		&model.PimServer{},
		&model.PimUser{},
		&model.Tracker{},
		&model.TrackerHeader{},
		&model.TrackerRow{},
		&model.ActivityLog{},
	))
	return db
}

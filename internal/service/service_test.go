package service

import (
	"fmt"
	"os"
	"testing"

	"asset-track-go/internal/model"
	"asset-track-go/internal/repository"
	"asset-track-go/pkg/log"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	log.Init("error", "json", "")
	os.Exit(m.Run())
}

// newTestDB 为每个测试创建一个独立的内存 SQLite 数据库。
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:svc_%s?mode=memory&cache=shared", t.Name())
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

// newActivityService 返回一个落库到测试数据库的审计服务。
func newActivityService(db *gorm.DB) ActivityService {
	return NewActivityService(repository.NewActivityLogRepository(db))
}

package repository

import (
	"testing"

	"asset-track-go/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestHeaderRepositoryReplaceForTracker(t *testing.T) {
	db := newTestDB(t)
	trackerRepo := NewTrackerRepository(db)
	headerRepo := NewTrackerHeaderRepository(db)

	tracker := mustCreateTracker(t, trackerRepo, "Patch Review", nil)

	saved, err := headerRepo.ReplaceForTracker(tracker.ID, []model.TrackerHeader{
		{Key: "status", Label: "Status", Enabled: true, Order: 1},
		{Key: "owner", Label: "Owner", Enabled: true, Order: 2},
	})
	require.NoError(t, err)
	require.Len(t, saved, 2)
	assert.NotZero(t, saved[0].ID)

	// 第二次提交：更新第一列，丢弃第二列，新增第三列
	updatedLabel := saved[0]
	updatedLabel.Label = "Review Status"
	saved, err = headerRepo.ReplaceForTracker(tracker.ID, []model.TrackerHeader{
		updatedLabel,
		{Key: "due", Label: "Due Date", Enabled: false, Order: 3},
	})
	require.NoError(t, err)
	require.Len(t, saved, 2)

	all, err := headerRepo.FindByTrackerID(tracker.ID)
	require.NoError(t, err)
	require.Len(t, all, 2)

	byKey := map[string]model.TrackerHeader{}
	for _, h := range all {
		byKey[h.Key] = h
	}
	assert.Equal(t, "Review Status", byKey["status"].Label)
	assert.False(t, byKey["due"].Enabled)
	_, ownerKept := byKey["owner"]
	assert.False(t, ownerKept)
}

func TestHeaderRepositoryFindEnabledSorted(t *testing.T) {
	db := newTestDB(t)
	trackerRepo := NewTrackerRepository(db)
	headerRepo := NewTrackerHeaderRepository(db)

	tracker := mustCreateTracker(t, trackerRepo, "Patch Review", nil)
	_, err := headerRepo.ReplaceForTracker(tracker.ID, []model.TrackerHeader{
		{Key: "owner", Label: "Owner", Enabled: true, Order: 2},
		{Key: "hidden", Label: "Hidden", Enabled: false, Order: 1},
		{Key: "status", Label: "Status", Enabled: true, Order: 1},
	})
	require.NoError(t, err)

	enabled, err := headerRepo.FindEnabledByTrackerID(tracker.ID)
	require.NoError(t, err)
	require.Len(t, enabled, 2)
	assert.Equal(t, "status", enabled[0].Key)
	assert.Equal(t, "owner", enabled[1].Key)
}

func TestHeaderRepositoryReplaceRejectsForeignHeaderID(t *testing.T) {
	db := newTestDB(t)
	trackerRepo := NewTrackerRepository(db)
	headerRepo := NewTrackerHeaderRepository(db)

	first := mustCreateTracker(t, trackerRepo, "Patch Review", nil)
	second := mustCreateTracker(t, trackerRepo, "Backups", nil)

	saved, err := headerRepo.ReplaceForTracker(first.ID, []model.TrackerHeader{
		{Key: "status", Label: "Status", Enabled: true, Order: 1},
	})
	require.NoError(t, err)

	// 用属于其他 tracker 的列 ID 提交必须整体失败
	_, err = headerRepo.ReplaceForTracker(second.ID, []model.TrackerHeader{
		{ID: saved[0].ID, Key: "status", Label: "Stolen", Enabled: true, Order: 1},
	})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// 原 tracker 的列定义原样保留
	remaining, err := headerRepo.FindByTrackerID(first.ID)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, first.ID, remaining[0].TrackerID)
	assert.Equal(t, "Status", remaining[0].Label)

	// 事务回滚后目标 tracker 上也不产生任何列
	stolen, err := headerRepo.FindByTrackerID(second.ID)
	require.NoError(t, err)
	assert.Empty(t, stolen)
}

func TestHeaderRepositoryAllowsDuplicateKeys(t *testing.T) {
	db := newTestDB(t)
	trackerRepo := NewTrackerRepository(db)
	headerRepo := NewTrackerHeaderRepository(db)

	tracker := mustCreateTracker(t, trackerRepo, "Patch Review", nil)
	saved, err := headerRepo.ReplaceForTracker(tracker.ID, []model.TrackerHeader{
		{Key: "status", Label: "Status", Enabled: true, Order: 1},
		{Key: "status", Label: "Status (old)", Enabled: false, Order: 2},
	})
	require.NoError(t, err)
	assert.Len(t, saved, 2)
}

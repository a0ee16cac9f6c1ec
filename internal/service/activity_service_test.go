package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActivityServiceRecordAndList(t *testing.T) {
	db := newTestDB(t)
	svc := newActivityService(db)

	svc.Record("admin", "SERVER_CREATE", "创建服务器 'web-01'")
	svc.Record("admin", "SERVER_DELETE", "删除服务器 'web-01'")
	svc.Record("alice", "TRACKER_CREATE", "创建 tracker 分类 'Compliance'")

	result, err := svc.List(1, 10, "", "")
	require.NoError(t, err)
	assert.Equal(t, int64(3), result.TotalElements)

	entries, okEntries := result.Content.([]ActivityLogResponse)
	require.True(t, okEntries)
	require.Len(t, entries, 3)
	// 最新的记录排在最前
	assert.Equal(t, "TRACKER_CREATE", entries[0].Action)
}

func TestActivityServiceListFilterByUsername(t *testing.T) {
	db := newTestDB(t)
	svc := newActivityService(db)

	svc.Record("admin", "SERVER_CREATE", "创建服务器 'web-01'")
	svc.Record("alice", "TRACKER_CREATE", "创建 tracker 分类 'Compliance'")

	result, err := svc.List(1, 10, "", "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.TotalElements)

	entries := result.Content.([]ActivityLogResponse)
	require.Len(t, entries, 1)
	assert.Equal(t, "alice", entries[0].Username)
}

func TestActivityServiceListSearch(t *testing.T) {
	db := newTestDB(t)
	svc := newActivityService(db)

	svc.Record("admin", "SERVER_CREATE", "创建服务器 'web-01'")
	svc.Record("admin", "USER_CREATE", "创建用户 'alice'")

	result, err := svc.List(1, 10, "SERVER", "")
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.TotalElements)
}

func TestNormalizePage(t *testing.T) {
	page, size, offset := NormalizePage(0, 0)
	assert.Equal(t, 1, page)
	assert.Equal(t, 10, size)
	assert.Equal(t, 0, offset)

	page, size, offset = NormalizePage(3, 20)
	assert.Equal(t, 3, page)
	assert.Equal(t, 20, size)
	assert.Equal(t, 40, offset)
}

func TestNewPageResultTotalPages(t *testing.T) {
	result := NewPageResult(nil, 21, 1, 10)
	assert.Equal(t, 3, result.TotalPages)
	assert.Equal(t, int64(21), result.TotalElements)

	empty := NewPageResult(nil, 0, 1, 10)
	assert.Equal(t, 0, empty.TotalPages)
}

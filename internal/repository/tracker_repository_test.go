package repository

import (
	"testing"

	"asset-track-go/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustCreateTracker(t *testing.T, repo TrackerRepository, name string, parentID *uint) *model.Tracker {
	t.Helper()
	tracker := &model.Tracker{Name: name, ParentID: parentID}
	require.NoError(t, repo.Create(tracker))
	return tracker
}

func TestTrackerRepositoryRootsAndChildren(t *testing.T) {
	db := newTestDB(t)
	repo := NewTrackerRepository(db)

	root := mustCreateTracker(t, repo, "Compliance", nil)
	mustCreateTracker(t, repo, "Patch Review", &root.ID)
	mustCreateTracker(t, repo, "Access Review", &root.ID)
	mustCreateTracker(t, repo, "Backups", nil)

	roots, total, err := repo.FindRootsWithPagination(0, 10, "")
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, roots, 2)
	// 根节点按名称排序，子条目随根预加载
	assert.Equal(t, "Backups", roots[0].Name)
	assert.Equal(t, "Compliance", roots[1].Name)
	require.Len(t, roots[1].Items, 2)
	assert.Equal(t, "Access Review", roots[1].Items[0].Name)

	children, err := repo.FindChildren(root.ID)
	require.NoError(t, err)
	assert.Len(t, children, 2)
}

func TestTrackerRepositorySearchIsCaseInsensitive(t *testing.T) {
	db := newTestDB(t)
	repo := NewTrackerRepository(db)

	mustCreateTracker(t, repo, "Compliance", nil)
	mustCreateTracker(t, repo, "Backups", nil)

	roots, total, err := repo.FindRootsWithPagination(0, 10, "compli")
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, roots, 1)
	assert.Equal(t, "Compliance", roots[0].Name)
}

func TestTrackerRepositoryPagination(t *testing.T) {
	db := newTestDB(t)
	repo := NewTrackerRepository(db)

	mustCreateTracker(t, repo, "Alpha", nil)
	mustCreateTracker(t, repo, "Bravo", nil)
	mustCreateTracker(t, repo, "Charlie", nil)

	page1, total, err := repo.FindRootsWithPagination(0, 2, "")
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, page1, 2)

	page2, total, err := repo.FindRootsWithPagination(2, 2, "")
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, page2, 1)
	assert.Equal(t, "Charlie", page2[0].Name)
}

func TestTrackerRepositoryDeleteCascades(t *testing.T) {
	db := newTestDB(t)
	repo := NewTrackerRepository(db)
	headerRepo := NewTrackerHeaderRepository(db)
	rowRepo := NewTrackerRowRepository(db)

	root := mustCreateTracker(t, repo, "Compliance", nil)
	child := mustCreateTracker(t, repo, "Patch Review", &root.ID)
	other := mustCreateTracker(t, repo, "Backups", nil)

	_, err := headerRepo.ReplaceForTracker(child.ID, []model.TrackerHeader{
		{Key: "status", Label: "Status", Enabled: true, Order: 1},
	})
	require.NoError(t, err)
	require.NoError(t, rowRepo.Create(&model.TrackerRow{TrackerID: child.ID, Data: model.JSONMap{"status": "Open"}}))
	require.NoError(t, rowRepo.Create(&model.TrackerRow{TrackerID: other.ID, Data: model.JSONMap{"status": "Open"}}))

	require.NoError(t, repo.Delete(root.ID))

	// 根、子条目与子条目名下的 header、row 全部消失
	_, err = repo.FindByID(root.ID)
	assert.Error(t, err)
	_, err = repo.FindByID(child.ID)
	assert.Error(t, err)

	headers, err := headerRepo.FindByTrackerID(child.ID)
	require.NoError(t, err)
	assert.Empty(t, headers)

	rows, err := rowRepo.FindAllByTrackerID(child.ID)
	require.NoError(t, err)
	assert.Empty(t, rows)

	// 其他 tracker 不受影响
	remaining, err := rowRepo.FindAllByTrackerID(other.ID)
	require.NoError(t, err)
	assert.Len(t, remaining, 1)
}

func TestTrackerRepositoryUpdateReparent(t *testing.T) {
	db := newTestDB(t)
	repo := NewTrackerRepository(db)

	first := mustCreateTracker(t, repo, "Compliance", nil)
	second := mustCreateTracker(t, repo, "Backups", nil)
	item := mustCreateTracker(t, repo, "Patch Review", &first.ID)

	item.ParentID = &second.ID
	require.NoError(t, repo.Update(item))

	children, err := repo.FindChildren(second.ID)
	require.NoError(t, err)
	require.Len(t, children, 1)
	assert.Equal(t, "Patch Review", children[0].Name)

	orphaned, err := repo.FindChildren(first.ID)
	require.NoError(t, err)
	assert.Empty(t, orphaned)
}

package service

import (
	"bytes"
	"context"
	"testing"

	"asset-track-go/internal/model"
	"asset-track-go/internal/repository"
	"asset-track-go/pkg/excel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPimServiceForTest(t *testing.T) PimService {
	t.Helper()
	db := newTestDB(t)
	return NewPimService(
		repository.NewPimServerRepository(db),
		repository.NewPimUserRepository(db),
		newActivityService(db),
	)
}

func TestPimServiceServerCRUD(t *testing.T) {
	svc := newPimServiceForTest(t)

	created, err := svc.CreateServer(&model.PimServer{ServerName: "pim-01", Platform: "Linux"}, "admin")
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	level := "root"
	updated, err := svc.UpdateServer(created.ID, PimServerUpdate{AccessLevel: &level}, "admin")
	require.NoError(t, err)
	assert.Equal(t, "root", updated.AccessLevel)
	assert.Equal(t, "Linux", updated.Platform)

	require.NoError(t, svc.DeleteServer(created.ID, "admin"))
	_, err = svc.GetServer(created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPimServiceUserCRUD(t *testing.T) {
	svc := newPimServiceForTest(t)

	created, err := svc.CreateUser(&model.PimUser{Username: "alice", Department: "Infra"}, "admin")
	require.NoError(t, err)

	email := "alice@example.com"
	updated, err := svc.UpdateUser(created.ID, PimUserUpdate{Email: &email}, "admin")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", updated.Email)
	assert.Equal(t, "Infra", updated.Department)

	require.NoError(t, svc.DeleteUser(created.ID, "admin"))
	err = svc.DeleteUser(created.ID, "admin")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPimServiceImportServersRequiresName(t *testing.T) {
	svc := newPimServiceForTest(t)

	content, err := excel.BuildWorkbook(
		[]string{"Server Name", "Platform"},
		[][]string{
			{"pim-01", "Linux"},
			{"", "Windows"},
		},
	)
	require.NoError(t, err)

	summary, err := svc.ImportServers(context.Background(), "pim-servers.xlsx", content, "admin")
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Imported)
	assert.Equal(t, 1, summary.Failed)
}

func TestPimServiceImportUsersAndExportRoundTrip(t *testing.T) {
	svc := newPimServiceForTest(t)

	content, err := excel.BuildWorkbook(
		[]string{"Username", "Email", "Access Level"},
		[][]string{{"alice", "alice@example.com", "privileged"}},
	)
	require.NoError(t, err)

	summary, err := svc.ImportUsers(context.Background(), "pim-users.xlsx", content, "admin")
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Imported)

	data, fileName, err := svc.ExportUsers()
	require.NoError(t, err)
	assert.Equal(t, "pim-users.xlsx", fileName)

	headers, rows, err := excel.ParseWorkbook(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, pimUserColumns, headers)
	require.Len(t, rows, 1)
	assert.Equal(t, "alice", rows[0][0])
	assert.Equal(t, "privileged", rows[0][4])
}

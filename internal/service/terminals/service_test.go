package terminals

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TerminalService/internal/domain"
	terminalRepo "github.com/m04kA/SMC-TerminalService/internal/infra/storage/terminal"
	"github.com/m04kA/SMC-TerminalService/internal/service/terminals/models"
	"github.com/m04kA/SMC-TerminalService/pkg/ptr"
)

type fakeTerminalRepo struct {
	terminals map[uuid.UUID]*domain.Terminal
	nextID    int64

	occupancyUpdates map[int64]domain.TerminalStatus
	deleted          []int64
}

func newFakeTerminalRepo(terminals ...*domain.Terminal) *fakeTerminalRepo {
	r := &fakeTerminalRepo{
		terminals:        make(map[uuid.UUID]*domain.Terminal),
		occupancyUpdates: make(map[int64]domain.TerminalStatus),
		nextID:           100,
	}
	for _, t := range terminals {
		r.terminals[t.PublicID] = t
	}
	return r
}

func (r *fakeTerminalRepo) Create(_ context.Context, t *domain.Terminal) (*domain.Terminal, error) {
	r.nextID++
	t.ID = r.nextID
	r.terminals[t.PublicID] = t
	return t, nil
}

func (r *fakeTerminalRepo) GetByPublicID(_ context.Context, publicID uuid.UUID) (*domain.Terminal, error) {
	t, ok := r.terminals[publicID]
	if !ok {
		return nil, terminalRepo.ErrTerminalNotFound
	}
	return t, nil
}

func (r *fakeTerminalRepo) ListAll(_ context.Context) ([]*domain.Terminal, error) {
	out := make([]*domain.Terminal, 0, len(r.terminals))
	for _, t := range r.terminals {
		out = append(out, t)
	}
	return out, nil
}

func (r *fakeTerminalRepo) SetOccupancy(_ context.Context, id int64, status domain.TerminalStatus) error {
	r.occupancyUpdates[id] = status
	return nil
}

func (r *fakeTerminalRepo) Delete(_ context.Context, id int64) error {
	r.deleted = append(r.deleted, id)
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

const ownerID = int64(3)

func newFixture() (*Service, *fakeTerminalRepo, *domain.Terminal) {
	terminal := &domain.Terminal{
		ID:        42,
		PublicID:  uuid.New(),
		OwnerID:   ownerID,
		Latitude:  48.85,
		Longitude: 2.35,
		Status:    domain.TerminalStatusAvailable,
	}
	repo := newFakeTerminalRepo(terminal)
	return NewService(repo, nopLogger{}), repo, terminal
}

func TestCreate_DefaultsToAvailable(t *testing.T) {
	svc, repo, _ := newFixture()

	resp, err := svc.Create(context.Background(), &models.CreateTerminalRequest{
		OwnerID:   ownerID,
		Latitude:  45.76,
		Longitude: 4.83,
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.TerminalStatusAvailable), resp.Status)
	assert.False(t, resp.Occupied)
	assert.NotEqual(t, uuid.Nil, resp.PublicID)
	assert.Contains(t, repo.terminals, resp.PublicID)
}

func TestCreate_ExplicitStatus(t *testing.T) {
	svc, _, _ := newFixture()

	resp, err := svc.Create(context.Background(), &models.CreateTerminalRequest{
		OwnerID:   ownerID,
		Latitude:  45.76,
		Longitude: 4.83,
		Status:    ptr.Ptr(string(domain.TerminalStatusUnderRepair)),
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.TerminalStatusUnderRepair), resp.Status)
}

func TestCreate_Validation(t *testing.T) {
	svc, _, _ := newFixture()

	_, err := svc.Create(context.Background(), &models.CreateTerminalRequest{
		OwnerID:   0,
		Latitude:  45.76,
		Longitude: 4.83,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(context.Background(), &models.CreateTerminalRequest{
		OwnerID:   ownerID,
		Latitude:  91,
		Longitude: 4.83,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(context.Background(), &models.CreateTerminalRequest{
		OwnerID:   ownerID,
		Latitude:  45.76,
		Longitude: 4.83,
		Status:    ptr.Ptr("ACTIVE"),
	})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestGetByPublicID(t *testing.T) {
	svc, _, terminal := newFixture()

	resp, err := svc.GetByPublicID(context.Background(), terminal.PublicID)
	require.NoError(t, err)
	assert.Equal(t, terminal.PublicID, resp.PublicID)

	_, err = svc.GetByPublicID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrTerminalNotFound)
}

func TestUpdateStatus_OwnerSetsOccupied(t *testing.T) {
	svc, repo, terminal := newFixture()

	resp, err := svc.UpdateStatus(context.Background(), terminal.PublicID, &models.UpdateStatusRequest{
		UserID: ownerID,
		Status: string(domain.TerminalStatusOccupied),
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.TerminalStatusOccupied), resp.Status)
	assert.True(t, resp.Occupied)
	assert.Equal(t, domain.TerminalStatusOccupied, repo.occupancyUpdates[terminal.ID])
}

func TestUpdateStatus_AccessDenied(t *testing.T) {
	svc, repo, terminal := newFixture()

	_, err := svc.UpdateStatus(context.Background(), terminal.PublicID, &models.UpdateStatusRequest{
		UserID: 999,
		Status: string(domain.TerminalStatusOccupied),
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Empty(t, repo.occupancyUpdates)
}

func TestUpdateStatus_InvalidStatus(t *testing.T) {
	svc, _, terminal := newFixture()

	_, err := svc.UpdateStatus(context.Background(), terminal.PublicID, &models.UpdateStatusRequest{
		UserID: ownerID,
		Status: "BUSY",
	})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestDelete_OnlyOwner(t *testing.T) {
	svc, repo, terminal := newFixture()

	err := svc.Delete(context.Background(), terminal.PublicID, 999)
	assert.ErrorIs(t, err, ErrAccessDenied)

	err = svc.Delete(context.Background(), terminal.PublicID, ownerID)
	require.NoError(t, err)
	assert.Equal(t, []int64{terminal.ID}, repo.deleted)
}

package database

import (
	"context"
	"testing"
	"time"

	"davomat/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addDailyRequest(t *testing.T, db *DB, workerID int64, leaveDate, returnDate string) *models.Request {
	t.Helper()
	req := &models.Request{
		WorkerID:   workerID,
		Type:       models.RequestTypeDaily,
		Reason:     "family matters",
		LeaveDate:  leaveDate,
		ReturnDate: returnDate,
	}
	require.NoError(t, db.CreateRequest(context.Background(), req))
	return req
}

func TestCreateAndGetRequest(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	addUser(t, db, 10, models.RoleWorker, true, true)

	target := time.Date(2026, 3, 11, 16, 0, 0, 0, time.UTC)
	req := &models.Request{
		WorkerID:   10,
		Type:       models.RequestTypeHourly,
		HourlyKind: models.HourlyLeavingEarly,
		Reason:     "doctor appointment",
		TargetTime: &target,
	}
	require.NoError(t, db.CreateRequest(ctx, req))
	require.NotZero(t, req.ID)

	got, err := db.GetRequest(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, got.Status)
	assert.Equal(t, models.HourlyLeavingEarly, got.HourlyKind)
	assert.Equal(t, "User worker", got.WorkerName)
	require.NotNil(t, got.TargetTime)
	assert.Equal(t, target.Unix(), got.TargetTime.Unix())
}

func TestDecideRequest(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	addUser(t, db, 10, models.RoleWorker, true, true)

	req := addDailyRequest(t, db, 10, "2026-03-11", "")

	require.NoError(t, db.DecideRequest(ctx, req.ID, 1, models.StatusApproved, "ok"))

	got, err := db.GetRequest(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, got.Status)
	assert.Equal(t, int64(1), got.DeciderID)
	assert.Equal(t, "ok", got.DecisionComment)
	assert.NotNil(t, got.DecidedAt)

	// Второе решение по той же заявке не проходит, первое не затирается.
	err = db.DecideRequest(ctx, req.ID, 2, models.StatusRejected, "no")
	assert.ErrorIs(t, err, ErrAlreadyDecided)

	got, err = db.GetRequest(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, got.Status)
	assert.Equal(t, int64(1), got.DeciderID)

	assert.ErrorIs(t, db.DecideRequest(ctx, 9999, 1, models.StatusApproved, ""), ErrNotFound)
}

func TestGetPendingRequests(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	addUser(t, db, 10, models.RoleWorker, true, true)

	daily := addDailyRequest(t, db, 10, "2026-03-11", "")
	target := time.Now().Add(2 * time.Hour)
	hourly := &models.Request{
		WorkerID:   10,
		Type:       models.RequestTypeHourly,
		HourlyKind: models.HourlyComingLate,
		Reason:     "traffic",
		TargetTime: &target,
	}
	require.NoError(t, db.CreateRequest(ctx, hourly))
	require.NoError(t, db.DecideRequest(ctx, daily.ID, 1, models.StatusRejected, ""))

	pendingDaily, err := db.GetPendingRequests(ctx, models.RequestTypeDaily)
	require.NoError(t, err)
	assert.Empty(t, pendingDaily)

	pendingHourly, err := db.GetPendingRequests(ctx, models.RequestTypeHourly)
	require.NoError(t, err)
	require.Len(t, pendingHourly, 1)
	assert.Equal(t, hourly.ID, pendingHourly[0].ID)
}

func TestGetApprovedLeave(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	addUser(t, db, 10, models.RoleWorker, true, true)

	req := addDailyRequest(t, db, 10, "2026-03-10", "2026-03-12")

	// Пока заявка pending, отгул не действует.
	_, err := db.GetApprovedLeave(ctx, 10, "2026-03-11")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, db.DecideRequest(ctx, req.ID, 1, models.StatusApproved, ""))

	got, err := db.GetApprovedLeave(ctx, 10, "2026-03-11")
	require.NoError(t, err)
	assert.Equal(t, req.ID, got.ID)

	// Границы диапазона включительны.
	_, err = db.GetApprovedLeave(ctx, 10, "2026-03-12")
	assert.NoError(t, err)
	_, err = db.GetApprovedLeave(ctx, 10, "2026-03-13")
	assert.ErrorIs(t, err, ErrNotFound)

	// Однодневный отгул без return_date.
	single := addDailyRequest(t, db, 10, "2026-04-01", "")
	require.NoError(t, db.DecideRequest(ctx, single.ID, 1, models.StatusApproved, ""))
	_, err = db.GetApprovedLeave(ctx, 10, "2026-04-01")
	assert.NoError(t, err)
	_, err = db.GetApprovedLeave(ctx, 10, "2026-04-02")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetStalePendingRequests(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	addUser(t, db, 10, models.RoleWorker, true, true)

	addDailyRequest(t, db, 10, "2026-03-11", "")

	stale, err := db.GetStalePendingRequests(ctx, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.Empty(t, stale)

	stale, err = db.GetStalePendingRequests(ctx, time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.Len(t, stale, 1)
}

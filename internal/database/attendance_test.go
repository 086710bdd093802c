package database

import (
	"context"
	"testing"
	"time"

	"davomat/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckIn(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	addUser(t, db, 10, models.RoleWorker, true, true)

	now := time.Now().UTC()
	rec := &models.AttendanceRecord{WorkerID: 10, Day: "2026-03-11", CheckIn: &now}
	require.NoError(t, db.CheckIn(ctx, rec))

	got, err := db.GetAttendance(ctx, 10, "2026-03-11")
	require.NoError(t, err)
	require.NotNil(t, got.CheckIn)
	assert.Nil(t, got.CheckOut)
	assert.Equal(t, "User worker", got.WorkerName)

	// Повторный приход за тот же день отклоняется, время не меняется.
	later := now.Add(time.Hour)
	dup := &models.AttendanceRecord{WorkerID: 10, Day: "2026-03-11", CheckIn: &later}
	assert.ErrorIs(t, db.CheckIn(ctx, dup), ErrCheckInExists)

	got, err = db.GetAttendance(ctx, 10, "2026-03-11")
	require.NoError(t, err)
	assert.Equal(t, now.Unix(), got.CheckIn.Unix())

	// Следующий день — уже новая запись.
	next := &models.AttendanceRecord{WorkerID: 10, Day: "2026-03-12", CheckIn: &now}
	assert.NoError(t, db.CheckIn(ctx, next))
}

func TestCheckOut(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	addUser(t, db, 10, models.RoleWorker, true, true)

	now := time.Now().UTC()

	// Уход без прихода невозможен.
	out := &models.AttendanceRecord{WorkerID: 10, Day: "2026-03-11", CheckOut: &now}
	assert.ErrorIs(t, db.CheckOut(ctx, out), ErrCheckInRequired)

	in := &models.AttendanceRecord{WorkerID: 10, Day: "2026-03-11", CheckIn: &now}
	require.NoError(t, db.CheckIn(ctx, in))
	require.NoError(t, db.CheckOut(ctx, out))

	// Повторный уход отклоняется.
	assert.ErrorIs(t, db.CheckOut(ctx, out), ErrCheckOutExists)
}

func TestSetLateComment(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	addUser(t, db, 10, models.RoleWorker, true, true)

	// Комментарий без отметки прихода создает запись за день.
	now := time.Now().UTC()
	require.NoError(t, db.SetLateComment(ctx, 10, "2026-03-11", "traffic jam", now))

	got, err := db.GetAttendance(ctx, 10, "2026-03-11")
	require.NoError(t, err)
	assert.Equal(t, "traffic jam", got.LateComment)
	require.NotNil(t, got.LateCommentAt)
	assert.Nil(t, got.CheckIn)

	// Приход за тот же день попадает в ту же запись.
	require.NoError(t, db.CheckIn(ctx, &models.AttendanceRecord{WorkerID: 10, Day: "2026-03-11", CheckIn: &now}))
	later := now.Add(time.Hour)
	require.NoError(t, db.SetLateComment(ctx, 10, "2026-03-11", "bad traffic", later))

	got, err = db.GetAttendance(ctx, 10, "2026-03-11")
	require.NoError(t, err)
	assert.Equal(t, "bad traffic", got.LateComment)
	assert.NotNil(t, got.CheckIn)
	assert.Equal(t, later.Unix(), got.LateCommentAt.Unix())
}

func TestGetAttendanceRange(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	addUser(t, db, 10, models.RoleWorker, true, true)
	addUser(t, db, 11, models.RoleWorker, true, true)

	now := time.Now().UTC()
	for _, day := range []string{"2026-03-10", "2026-03-11", "2026-03-20"} {
		require.NoError(t, db.CheckIn(ctx, &models.AttendanceRecord{WorkerID: 10, Day: day, CheckIn: &now}))
	}
	require.NoError(t, db.CheckIn(ctx, &models.AttendanceRecord{WorkerID: 11, Day: "2026-03-11", CheckIn: &now}))

	records, err := db.GetAttendanceRange(ctx, "2026-03-10", "2026-03-11")
	require.NoError(t, err)
	assert.Len(t, records, 3)

	byDay, err := db.GetAttendanceByDay(ctx, "2026-03-11")
	require.NoError(t, err)
	assert.Len(t, byDay, 2)
}

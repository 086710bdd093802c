package worker

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"davomat/internal/database"
	"davomat/internal/models"
)

func TestProcessTaskSuccess(t *testing.T) {
	db := newTestDB(t)
	sheets := &fakeSheets{}
	w := NewSheetsWorker(db, sheets, nil, RetryPolicy{}, nil)

	now := time.Now()
	rec := &models.AttendanceRecord{ID: 1, WorkerID: 10, Day: "2026-08-30", CheckIn: &now, WorkerName: "tester"}

	ctx := context.Background()
	if err := w.EnqueueAttendance(ctx, rec); err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	task, ok := w.tryLocalQueue()
	if !ok {
		t.Fatalf("expected task in local queue")
	}
	w.processTask(ctx, &task)

	status, retryCount, nextRetry := loadTaskStatus(t, db, task.ID)
	if status != "completed" {
		t.Fatalf("expected status=completed, got %s", status)
	}
	if retryCount != 0 {
		t.Fatalf("expected retry_count=0, got %d", retryCount)
	}
	if nextRetry.Valid {
		t.Fatalf("expected next_retry_at NULL on success")
	}
	if sheets.attendanceCalls != 1 {
		t.Fatalf("expected 1 attendance upsert, got %d", sheets.attendanceCalls)
	}
}

func TestProcessTaskRetry(t *testing.T) {
	db := newTestDB(t)
	sheets := &fakeSheets{err: errors.New("boom")}
	w := NewSheetsWorker(db, sheets, nil, RetryPolicy{MaxRetries: 3, InitialDelay: time.Second}, nil)

	req := &models.Request{ID: 2, WorkerID: 10, Type: models.RequestTypeDaily, LeaveDate: "2026-09-01", Reason: "r"}

	ctx := context.Background()
	if err := w.EnqueueRequest(ctx, req); err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	task, ok := w.tryLocalQueue()
	if !ok {
		t.Fatalf("expected task in local queue")
	}
	w.processTask(ctx, &task)

	status, retryCount, nextRetry := loadTaskStatus(t, db, task.ID)
	if status != "retry" {
		t.Fatalf("expected status=retry, got %s", status)
	}
	if retryCount != 1 {
		t.Fatalf("expected retry_count=1, got %d", retryCount)
	}
	if !nextRetry.Valid || nextRetry.Time.Before(time.Now()) {
		t.Fatalf("expected next_retry_at in future, got %v", nextRetry)
	}
}

func TestProcessTaskFail(t *testing.T) {
	db := newTestDB(t)
	sheets := &fakeSheets{err: errors.New("fatal")}
	w := NewSheetsWorker(db, sheets, nil, RetryPolicy{MaxRetries: 1}, nil)

	req := &models.Request{ID: 3, WorkerID: 10, Type: models.RequestTypeHourly, HourlyKind: models.HourlyComingLate, Reason: "r"}

	ctx := context.Background()
	if err := w.EnqueueRequest(ctx, req); err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	task, _ := w.tryLocalQueue()
	w.processTask(ctx, &task)

	status, _, _ := loadTaskStatus(t, db, task.ID)
	if status != "failed" {
		t.Fatalf("expected status=failed, got %s", status)
	}
}

func TestHandleTask(t *testing.T) {
	sheets := &fakeSheets{}
	w := NewSheetsWorker(nil, sheets, nil, RetryPolicy{}, nil)
	ctx := context.Background()

	t.Run("Attendance", func(t *testing.T) {
		err := w.handleTask(ctx, models.SyncTaskAttendance, taskPayload{Attendance: &models.AttendanceRecord{WorkerID: 1}})
		if err != nil {
			t.Fatalf("handle: %v", err)
		}
		if sheets.attendanceCalls != 1 {
			t.Fatalf("expected 1 attendance call, got %d", sheets.attendanceCalls)
		}
	})

	t.Run("Request", func(t *testing.T) {
		err := w.handleTask(ctx, models.SyncTaskRequest, taskPayload{Request: &models.Request{ID: 1}})
		if err != nil {
			t.Fatalf("handle: %v", err)
		}
		if sheets.requestCalls != 1 {
			t.Fatalf("expected 1 request call, got %d", sheets.requestCalls)
		}
	})

	t.Run("MissingPayload", func(t *testing.T) {
		if err := w.handleTask(ctx, models.SyncTaskAttendance, taskPayload{}); err == nil {
			t.Fatalf("expected error for missing attendance payload")
		}
	})

	t.Run("UnknownType", func(t *testing.T) {
		if err := w.handleTask(ctx, "resync_everything", taskPayload{}); err == nil {
			t.Fatalf("expected error for unknown task type")
		}
	})
}

func TestEnqueueValidation(t *testing.T) {
	db := newTestDB(t)
	w := NewSheetsWorker(db, &fakeSheets{}, nil, RetryPolicy{}, nil)
	ctx := context.Background()

	if err := w.EnqueueAttendance(ctx, nil); err == nil {
		t.Fatalf("expected error for nil attendance")
	}
	if err := w.EnqueueRequest(ctx, &models.Request{}); err == nil {
		t.Fatalf("expected error for request without id")
	}
}

func TestRetryPolicyNextDelay(t *testing.T) {
	policy := RetryPolicy{InitialDelay: time.Second, BackoffFactor: 2, MaxDelay: 5 * time.Second}
	if d := policy.NextDelay(1); d != time.Second {
		t.Fatalf("attempt1 expected 1s, got %s", d)
	}
	if d := policy.NextDelay(2); d != 2*time.Second {
		t.Fatalf("attempt2 expected 2s, got %s", d)
	}
	if d := policy.NextDelay(5); d != 5*time.Second {
		t.Fatalf("attempt5 expected capped 5s, got %s", d)
	}
}

func TestRetryPolicyJitter(t *testing.T) {
	policy := RetryPolicy{InitialDelay: time.Second, BackoffFactor: 2, MaxDelay: time.Minute, Jitter: 0.25}
	for i := 0; i < 50; i++ {
		d := policy.NextDelay(2)
		if d < 1500*time.Millisecond || d > 2500*time.Millisecond {
			t.Fatalf("attempt2 expected 2s +/-25%%, got %s", d)
		}
	}
	// Кап действует и поверх разброса
	if d := policy.NextDelay(10); d != time.Minute {
		t.Fatalf("attempt10 expected capped 1m, got %s", d)
	}
}

func TestRetryPolicyDefaults(t *testing.T) {
	policy := RetryPolicy{}.withDefaults()
	if policy.MaxRetries != 5 || policy.InitialDelay != 2*time.Second ||
		policy.MaxDelay != time.Minute || policy.BackoffFactor != 2 {
		t.Fatalf("unexpected defaults: %+v", policy)
	}
}

func TestDecodePayload(t *testing.T) {
	w := NewSheetsWorker(nil, nil, nil, RetryPolicy{}, nil)

	decoded, err := w.decodePayload(`{"request":{"id":123,"status":"approved"}}`)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.Request == nil || decoded.Request.ID != 123 {
		t.Fatalf("unexpected decoded payload: %+v", decoded)
	}

	if _, err := w.decodePayload(`invalid json`); err == nil {
		t.Fatalf("expected error for invalid json")
	}
}

// Helpers

type fakeSheets struct {
	err             error
	attendanceCalls int
	requestCalls    int
}

func (f *fakeSheets) UpsertAttendance(ctx context.Context, rec *models.AttendanceRecord) error {
	f.attendanceCalls++
	return f.err
}

func (f *fakeSheets) UpsertRequest(ctx context.Context, req *models.Request) error {
	f.requestCalls++
	return f.err
}

func newTestDB(t *testing.T) *database.DB {
	t.Helper()
	db, err := database.NewDB(filepath.Join(t.TempDir(), "worker.db"))
	if err != nil {
		t.Fatalf("new db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func loadTaskStatus(t *testing.T, db *database.DB, id int64) (status string, retryCount int, nextRetry sql.NullTime) {
	t.Helper()
	row := db.QueryRowContext(context.Background(), `SELECT status, retry_count, next_retry_at FROM sync_queue WHERE id = ?`, id)
	if err := row.Scan(&status, &retryCount, &nextRetry); err != nil {
		t.Fatalf("scan task: %v", err)
	}
	return status, retryCount, nextRetry
}

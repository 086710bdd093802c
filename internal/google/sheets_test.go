package google

import (
	"testing"
	"time"

	"davomat/internal/models"
)

func TestAttendanceKey(t *testing.T) {
	rec := &models.AttendanceRecord{WorkerID: 42, Day: "2026-08-30"}
	if got := attendanceKey(rec); got != "42:2026-08-30" {
		t.Fatalf("unexpected key: %s", got)
	}
}

func TestAttendanceRowValues(t *testing.T) {
	checkIn := time.Date(2026, 8, 30, 9, 3, 0, 0, time.UTC)
	rec := &models.AttendanceRecord{
		WorkerID:    42,
		Day:         "2026-08-30",
		CheckIn:     &checkIn,
		WorkerName:  "Alisher Usmonov",
		LateComment: "traffic",
	}

	row := attendanceRowValues(rec)
	if len(row) != 7 {
		t.Fatalf("expected 7 columns, got %d", len(row))
	}
	if row[0] != "42:2026-08-30" {
		t.Fatalf("unexpected key cell: %v", row[0])
	}
	if row[4] != "2026-08-30 09:03:00" {
		t.Fatalf("unexpected check-in cell: %v", row[4])
	}
	if row[5] != "" {
		t.Fatalf("expected empty check-out cell, got %v", row[5])
	}
}

func TestRequestRowValues(t *testing.T) {
	created := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	req := &models.Request{
		ID:        7,
		WorkerID:  42,
		Type:      models.RequestTypeDaily,
		Status:    models.StatusApproved,
		LeaveDate: "2026-09-01",
		Reason:    "family",
		CreatedAt: created,
	}

	row := requestRowValues(req)
	if len(row) != 13 {
		t.Fatalf("expected 13 columns, got %d", len(row))
	}
	if row[0] != int64(7) || row[5] != models.StatusApproved {
		t.Fatalf("unexpected row: %v", row)
	}
	if row[12] != "2026-08-25 12:00:00" {
		t.Fatalf("unexpected created cell: %v", row[12])
	}
}

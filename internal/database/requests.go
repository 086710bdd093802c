package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"davomat/internal/models"
)

const requestColumns = `r.id, r.worker_id, r.type, COALESCE(r.hourly_kind, ''), r.status, r.reason,
        COALESCE(r.leave_date, ''), COALESCE(r.return_date, ''), r.target_time,
        COALESCE(r.decider_id, 0), COALESCE(r.decision_comment, ''), r.decided_at, r.created_at,
        COALESCE(u.full_name, '')`

func scanRequest(row interface{ Scan(...any) error }) (*models.Request, error) {
	var req models.Request
	err := row.Scan(
		&req.ID,
		&req.WorkerID,
		&req.Type,
		&req.HourlyKind,
		&req.Status,
		&req.Reason,
		&req.LeaveDate,
		&req.ReturnDate,
		&req.TargetTime,
		&req.DeciderID,
		&req.DecisionComment,
		&req.DecidedAt,
		&req.CreatedAt,
		&req.WorkerName,
	)
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// CreateRequest сохраняет новую заявку со статусом pending.
func (db *DB) CreateRequest(ctx context.Context, req *models.Request) error {
	query := `INSERT INTO requests (worker_id, type, hourly_kind, status, reason, leave_date, return_date, target_time, created_at)
              VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	now := time.Now()
	result, err := db.ExecContext(ctx, query,
		req.WorkerID,
		req.Type,
		nullString(req.HourlyKind),
		models.StatusPending,
		req.Reason,
		nullString(req.LeaveDate),
		nullString(req.ReturnDate),
		req.TargetTime,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	req.ID = id
	req.Status = models.StatusPending
	req.CreatedAt = now
	return nil
}

// GetRequest возвращает заявку с именем сотрудника.
func (db *DB) GetRequest(ctx context.Context, id int64) (*models.Request, error) {
	query := `SELECT ` + requestColumns + `
              FROM requests r LEFT JOIN users u ON u.id = r.worker_id
              WHERE r.id = ?`
	req, err := scanRequest(db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get request %d: %w", id, err)
	}
	return req, nil
}

// DecideRequest переводит заявку из pending в конечный статус. Условие по
// статусу в самом UPDATE гарантирует ровно одно решение: проигравший
// конкурентный менеджер получает ErrAlreadyDecided.
func (db *DB) DecideRequest(ctx context.Context, id, deciderID int64, status, comment string) error {
	query := `UPDATE requests
              SET status = ?, decider_id = ?, decision_comment = ?, decided_at = ?
              WHERE id = ? AND status = ?`
	result, err := db.ExecContext(ctx, query, status, deciderID, comment, time.Now(), id, models.StatusPending)
	if err != nil {
		return fmt.Errorf("failed to decide request %d: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		// Либо заявки нет, либо её уже решили.
		if _, getErr := db.GetRequest(ctx, id); errors.Is(getErr, ErrNotFound) {
			return ErrNotFound
		}
		return ErrAlreadyDecided
	}
	return nil
}

// GetPendingRequests возвращает нерешенные заявки данного типа, старые сверху.
func (db *DB) GetPendingRequests(ctx context.Context, requestType string) ([]models.Request, error) {
	query := `SELECT ` + requestColumns + `
              FROM requests r LEFT JOIN users u ON u.id = r.worker_id
              WHERE r.status = ? AND r.type = ?
              ORDER BY r.created_at`
	return db.queryRequests(ctx, query, models.StatusPending, requestType)
}

// GetStalePendingRequests возвращает заявки, висящие в pending дольше отсечки.
func (db *DB) GetStalePendingRequests(ctx context.Context, before time.Time) ([]models.Request, error) {
	query := `SELECT ` + requestColumns + `
              FROM requests r LEFT JOIN users u ON u.id = r.worker_id
              WHERE r.status = ? AND r.created_at < ?
              ORDER BY r.created_at`
	return db.queryRequests(ctx, query, models.StatusPending, before)
}

// GetWorkerRequests возвращает заявки сотрудника, свежие сверху.
func (db *DB) GetWorkerRequests(ctx context.Context, workerID int64, limit int) ([]models.Request, error) {
	query := `SELECT ` + requestColumns + `
              FROM requests r LEFT JOIN users u ON u.id = r.worker_id
              WHERE r.worker_id = ?
              ORDER BY r.created_at DESC LIMIT ?`
	return db.queryRequests(ctx, query, workerID, limit)
}

// GetApprovedLeave возвращает одобренную daily-заявку сотрудника,
// покрывающую указанный день, либо ErrNotFound.
func (db *DB) GetApprovedLeave(ctx context.Context, workerID int64, day string) (*models.Request, error) {
	query := `SELECT ` + requestColumns + `
              FROM requests r LEFT JOIN users u ON u.id = r.worker_id
              WHERE r.worker_id = ? AND r.type = ? AND r.status = ?
                AND r.leave_date <= ? AND COALESCE(r.return_date, r.leave_date) >= ?
              LIMIT 1`
	req, err := scanRequest(db.QueryRowContext(ctx, query,
		workerID, models.RequestTypeDaily, models.StatusApproved, day, day))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get approved leave: %w", err)
	}
	return req, nil
}

// GetRequestsByDateRange возвращает заявки, созданные в интервале дат
// (для выгрузок и синхронизации).
func (db *DB) GetRequestsByDateRange(ctx context.Context, from, to time.Time) ([]models.Request, error) {
	query := `SELECT ` + requestColumns + `
              FROM requests r LEFT JOIN users u ON u.id = r.worker_id
              WHERE r.created_at >= ? AND r.created_at < ?
              ORDER BY r.created_at`
	return db.queryRequests(ctx, query, from, to)
}

func (db *DB) queryRequests(ctx context.Context, query string, args ...any) ([]models.Request, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query requests: %w", err)
	}
	defer rows.Close()

	var requests []models.Request
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan request: %w", err)
		}
		requests = append(requests, *req)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return requests, nil
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

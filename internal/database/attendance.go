package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"davomat/internal/models"
)

const attendanceColumns = `a.id, a.worker_id, a.day, a.check_in, a.check_out, COALESCE(a.late_comment, ''),
        a.late_comment_at, COALESCE(u.full_name, '')`

func scanAttendance(row interface{ Scan(...any) error }) (*models.AttendanceRecord, error) {
	var rec models.AttendanceRecord
	err := row.Scan(
		&rec.ID,
		&rec.WorkerID,
		&rec.Day,
		&rec.CheckIn,
		&rec.CheckOut,
		&rec.LateComment,
		&rec.LateCommentAt,
		&rec.WorkerName,
	)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// CheckIn фиксирует приход. Повторная отметка за тот же день не проходит
// условие check_in IS NULL и возвращает ErrCheckInExists; гонка двух
// одновременных отметок разрешается на уровне UPDATE, без чтения перед
// записью.
func (db *DB) CheckIn(ctx context.Context, rec *models.AttendanceRecord) error {
	if _, err := db.ExecContext(ctx,
		`INSERT OR IGNORE INTO attendance (worker_id, day) VALUES (?, ?)`,
		rec.WorkerID, rec.Day); err != nil {
		return fmt.Errorf("failed to ensure attendance row: %w", err)
	}

	result, err := db.ExecContext(ctx,
		`UPDATE attendance SET check_in = ? WHERE worker_id = ? AND day = ? AND check_in IS NULL`,
		rec.CheckIn, rec.WorkerID, rec.Day)
	if err != nil {
		return fmt.Errorf("failed to record check-in: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return ErrCheckInExists
	}
	return nil
}

// CheckOut фиксирует уход. Требует отметки прихода за тот же день.
func (db *DB) CheckOut(ctx context.Context, rec *models.AttendanceRecord) error {
	result, err := db.ExecContext(ctx,
		`UPDATE attendance SET check_out = ?
         WHERE worker_id = ? AND day = ? AND check_in IS NOT NULL AND check_out IS NULL`,
		rec.CheckOut, rec.WorkerID, rec.Day)
	if err != nil {
		return fmt.Errorf("failed to record check-out: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected > 0 {
		return nil
	}

	// Ноль строк: различаем «нет прихода» и «уход уже отмечен».
	existing, err := db.GetAttendance(ctx, rec.WorkerID, rec.Day)
	if errors.Is(err, ErrNotFound) {
		return ErrCheckInRequired
	}
	if err != nil {
		return err
	}
	if existing.CheckIn == nil {
		return ErrCheckInRequired
	}
	return ErrCheckOutExists
}

// SetLateComment прикрепляет комментарий об опоздании к явке за день.
// Комментарий не требует отметки прихода: запись создается при отсутствии.
func (db *DB) SetLateComment(ctx context.Context, workerID int64, day, comment string, at time.Time) error {
	if _, err := db.ExecContext(ctx,
		`INSERT OR IGNORE INTO attendance (worker_id, day) VALUES (?, ?)`,
		workerID, day); err != nil {
		return fmt.Errorf("failed to ensure attendance row: %w", err)
	}

	if _, err := db.ExecContext(ctx,
		`UPDATE attendance SET late_comment = ?, late_comment_at = ? WHERE worker_id = ? AND day = ?`,
		comment, at, workerID, day); err != nil {
		return fmt.Errorf("failed to set late comment: %w", err)
	}
	return nil
}

// GetAttendance возвращает явку сотрудника за день.
func (db *DB) GetAttendance(ctx context.Context, workerID int64, day string) (*models.AttendanceRecord, error) {
	query := `SELECT ` + attendanceColumns + `
              FROM attendance a LEFT JOIN users u ON u.id = a.worker_id
              WHERE a.worker_id = ? AND a.day = ?`
	rec, err := scanAttendance(db.QueryRowContext(ctx, query, workerID, day))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get attendance: %w", err)
	}
	return rec, nil
}

// GetAttendanceByDay возвращает все явки за день (для вечерних напоминаний).
func (db *DB) GetAttendanceByDay(ctx context.Context, day string) ([]models.AttendanceRecord, error) {
	query := `SELECT ` + attendanceColumns + `
              FROM attendance a LEFT JOIN users u ON u.id = a.worker_id
              WHERE a.day = ?
              ORDER BY a.worker_id`
	return db.queryAttendance(ctx, query, day)
}

// GetAttendanceRange возвращает явки за диапазон дней включительно
// (для выгрузки в Excel и Sheets).
func (db *DB) GetAttendanceRange(ctx context.Context, fromDay, toDay string) ([]models.AttendanceRecord, error) {
	query := `SELECT ` + attendanceColumns + `
              FROM attendance a LEFT JOIN users u ON u.id = a.worker_id
              WHERE a.day BETWEEN ? AND ?
              ORDER BY a.day, u.full_name`
	return db.queryAttendance(ctx, query, fromDay, toDay)
}

func (db *DB) queryAttendance(ctx context.Context, query string, args ...any) ([]models.AttendanceRecord, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance: %w", err)
	}
	defer rows.Close()

	var records []models.AttendanceRecord
	for rows.Next() {
		rec, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, *rec)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

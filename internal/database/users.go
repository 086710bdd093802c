package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"davomat/internal/models"
)

const userColumns = `id, chat_id, full_name, COALESCE(username, ''), role, language, is_verified, is_active, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID,
		&user.ChatID,
		&user.FullName,
		&user.Username,
		&user.Role,
		&user.Language,
		&user.IsVerified,
		&user.IsActive,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateOrUpdateUser создает или обновляет пользователя по Telegram ID.
// Роль и флаги верификации при повторном /start не затираются.
func (db *DB) CreateOrUpdateUser(ctx context.Context, user *models.User) error {
	query := `
        INSERT INTO users (id, chat_id, full_name, username, role, language, is_verified, is_active, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT(id) DO UPDATE SET
            chat_id = excluded.chat_id,
            full_name = excluded.full_name,
            username = excluded.username,
            language = excluded.language,
            updated_at = excluded.updated_at
    `

	now := time.Now()
	_, err := db.ExecContext(ctx, query,
		user.ID,
		user.ChatID,
		user.FullName,
		user.Username,
		user.Role,
		user.Language,
		user.IsVerified,
		user.IsActive,
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert user: %w", err)
	}
	return nil
}

// GetUser возвращает пользователя по Telegram ID.
func (db *DB) GetUser(ctx context.Context, id int64) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`
	user, err := scanUser(db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user %d: %w", id, err)
	}
	return user, nil
}

// SetUserVerified помечает пользователя проверенным (или снимает отметку).
func (db *DB) SetUserVerified(ctx context.Context, id int64, verified bool) error {
	return db.updateUserFlag(ctx, id, "is_verified", verified)
}

// SetUserActive включает или выключает получение уведомлений.
func (db *DB) SetUserActive(ctx context.Context, id int64, active bool) error {
	return db.updateUserFlag(ctx, id, "is_active", active)
}

func (db *DB) updateUserFlag(ctx context.Context, id int64, column string, value bool) error {
	query := fmt.Sprintf(`UPDATE users SET %s = ?, updated_at = ? WHERE id = ?`, column)
	result, err := db.ExecContext(ctx, query, value, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update user %d: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// SetUserRole назначает роль (используется супер-админом при верификации менеджера).
func (db *DB) SetUserRole(ctx context.Context, id int64, role string) error {
	result, err := db.ExecContext(ctx,
		`UPDATE users SET role = ?, updated_at = ? WHERE id = ?`, role, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to set role for user %d: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// SetUserLanguage переключает язык интерфейса.
func (db *DB) SetUserLanguage(ctx context.Context, id int64, language string) error {
	result, err := db.ExecContext(ctx,
		`UPDATE users SET language = ?, updated_at = ? WHERE id = ?`, language, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to set language for user %d: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteUser удаляет пользователя (отклоненная регистрация).
func (db *DB) DeleteUser(ctx context.Context, id int64) error {
	_, err := db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user %d: %w", id, err)
	}
	return nil
}

// GetUsersByRole возвращает проверенных пользователей указанных ролей.
// При onlyActive отфильтровываются отключившие уведомления.
func (db *DB) GetUsersByRole(ctx context.Context, onlyActive bool, roles ...string) ([]models.User, error) {
	if len(roles) == 0 {
		return nil, nil
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE is_verified = 1 AND role IN (?` +
		repeatPlaceholder(len(roles)-1) + `)`
	args := make([]any, 0, len(roles))
	for _, r := range roles {
		args = append(args, r)
	}
	if onlyActive {
		query += ` AND is_active = 1`
	}
	query += ` ORDER BY full_name`

	return db.queryUsers(ctx, query, args...)
}

// GetUnverifiedUsers возвращает пользователей, ожидающих верификации.
func (db *DB) GetUnverifiedUsers(ctx context.Context) ([]models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE is_verified = 0 ORDER BY created_at`
	return db.queryUsers(ctx, query)
}

func (db *DB) queryUsers(ctx context.Context, query string, args ...any) ([]models.User, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, *user)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return users, nil
}

func repeatPlaceholder(n int) string {
	s := ""
	for i := 0; i < n; i++ {
		s += ", ?"
	}
	return s
}

package models

import "time"

// User — сотрудник или менеджер, привязанный к Telegram-аккаунту.
type User struct {
	ID         int64     `json:"id"` // telegram user id
	ChatID     int64     `json:"chat_id"`
	FullName   string    `json:"full_name"`
	Username   string    `json:"username,omitempty"`
	Role       string    `json:"role"`
	Language   string    `json:"language"`
	IsVerified bool      `json:"is_verified"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// IsManager сообщает, получает ли пользователь служебные уведомления.
func (u *User) IsManager() bool {
	return IsManagerRole(u.Role)
}

// CanDecide сообщает, уполномочен ли пользователь решать заявки данного типа.
func (u *User) CanDecide(requestType string) bool {
	return u.Role == DeciderRole(requestType)
}

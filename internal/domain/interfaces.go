// Package domain declares the interfaces that decouple the bot from
// storage, services and transport implementations.
package domain

import (
	"context"
	"time"

	"davomat/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Repository is the persistent storage surface used by the services.
type Repository interface {
	// users
	CreateOrUpdateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, id int64) (*models.User, error)
	SetUserVerified(ctx context.Context, id int64, verified bool) error
	SetUserActive(ctx context.Context, id int64, active bool) error
	SetUserRole(ctx context.Context, id int64, role string) error
	SetUserLanguage(ctx context.Context, id int64, language string) error
	DeleteUser(ctx context.Context, id int64) error
	GetUsersByRole(ctx context.Context, onlyActive bool, roles ...string) ([]models.User, error)
	GetUnverifiedUsers(ctx context.Context) ([]models.User, error)

	// requests
	CreateRequest(ctx context.Context, req *models.Request) error
	GetRequest(ctx context.Context, id int64) (*models.Request, error)
	DecideRequest(ctx context.Context, id, deciderID int64, status, comment string) error
	GetPendingRequests(ctx context.Context, requestType string) ([]models.Request, error)
	GetStalePendingRequests(ctx context.Context, before time.Time) ([]models.Request, error)
	GetWorkerRequests(ctx context.Context, workerID int64, limit int) ([]models.Request, error)
	GetApprovedLeave(ctx context.Context, workerID int64, day string) (*models.Request, error)
	GetRequestsByDateRange(ctx context.Context, from, to time.Time) ([]models.Request, error)

	// attendance
	CheckIn(ctx context.Context, rec *models.AttendanceRecord) error
	CheckOut(ctx context.Context, rec *models.AttendanceRecord) error
	SetLateComment(ctx context.Context, workerID int64, day, comment string, at time.Time) error
	GetAttendance(ctx context.Context, workerID int64, day string) (*models.AttendanceRecord, error)
	GetAttendanceByDay(ctx context.Context, day string) ([]models.AttendanceRecord, error)
	GetAttendanceRange(ctx context.Context, fromDay, toDay string) ([]models.AttendanceRecord, error)
}

// StateRepository stores dialogue states keyed by user.
type StateRepository interface {
	GetState(ctx context.Context, userID int64) (*models.UserState, error)
	SetState(ctx context.Context, state *models.UserState) error
	ClearState(ctx context.Context, userID int64) error
	CheckRateLimit(ctx context.Context, userID int64, limit int, window time.Duration) (bool, error)
}

// StateManager is the dialogue-state API used by the bot handlers.
type StateManager interface {
	Get(ctx context.Context, userID int64) (*models.UserState, error)
	Set(ctx context.Context, state *models.UserState) error
	SetStep(ctx context.Context, userID int64, step string) (*models.UserState, error)
	Clear(ctx context.Context, userID int64) error
	CheckRateLimit(ctx context.Context, userID int64, limit int, window time.Duration) (bool, error)
}

// EventPublisher publishes domain events to in-process subscribers.
type EventPublisher interface {
	PublishJSON(eventType string, payload interface{}) error
}

// TelegramSender is the subset of tgbotapi.BotAPI the service layer needs.
type TelegramSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// TelegramService wraps the Telegram transport.
type TelegramService interface {
	SendMessage(chatID int64, text string) error
	SendWithKeyboard(chatID int64, text string, keyboard tgbotapi.ReplyKeyboardMarkup) error
	SendWithInlineKeyboard(chatID int64, text string, keyboard tgbotapi.InlineKeyboardMarkup) error
	SendDocument(chatID int64, filePath, caption string) error
	EditMessage(chatID int64, messageID int, text string, keyboard *tgbotapi.InlineKeyboardMarkup) error
	AnswerCallback(callbackID, text string) error
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
}

// UserService manages registration, verification and user settings.
type UserService interface {
	Register(ctx context.Context, user *models.User) error
	Get(ctx context.Context, id int64) (*models.User, error)
	Verify(ctx context.Context, id int64, role string) error
	RejectRegistration(ctx context.Context, id int64) error
	SetActive(ctx context.Context, id int64, active bool) error
	SetLanguage(ctx context.Context, id int64, language string) error
	Managers(ctx context.Context, onlyActive bool, roles ...string) ([]models.User, error)
	Workers(ctx context.Context) ([]models.User, error)
	Unverified(ctx context.Context) ([]models.User, error)
}

// AttendanceService guards daily check-in/check-out invariants.
type AttendanceService interface {
	CheckIn(ctx context.Context, workerID int64) (*models.AttendanceRecord, error)
	CheckOut(ctx context.Context, workerID int64) (*models.AttendanceRecord, error)
	AddLateComment(ctx context.Context, workerID int64, comment string) error
	Today(ctx context.Context, workerID int64) (*models.AttendanceRecord, error)
	OnLeave(ctx context.Context, workerID int64, day string) (bool, error)
	Range(ctx context.Context, fromDay, toDay string) ([]models.AttendanceRecord, error)
}

// RequestService routes leave requests through their approval lifecycle.
type RequestService interface {
	Create(ctx context.Context, req *models.Request) error
	Get(ctx context.Context, id int64) (*models.Request, error)
	Decide(ctx context.Context, requestID int64, decider *models.User, verdict, comment string) (*models.Request, error)
	PendingForRole(ctx context.Context, role string) ([]models.Request, error)
	StalePending(ctx context.Context, olderThanDays int) ([]models.Request, error)
	WorkerHistory(ctx context.Context, workerID int64, limit int) ([]models.Request, error)
}

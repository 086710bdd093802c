package bot

import (
	"context"
	"testing"
	"time"

	"davomat/internal/config"
	"davomat/internal/models"
	"davomat/internal/repository"
	"davomat/internal/service"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockTelegramService struct {
	mock.Mock
}

func (m *mockTelegramService) SendMessage(chatID int64, text string) error {
	args := m.Called(chatID, text)
	return args.Error(0)
}

func (m *mockTelegramService) SendWithKeyboard(chatID int64, text string, keyboard tgbotapi.ReplyKeyboardMarkup) error {
	args := m.Called(chatID, text, keyboard)
	return args.Error(0)
}

func (m *mockTelegramService) SendWithInlineKeyboard(chatID int64, text string, keyboard tgbotapi.InlineKeyboardMarkup) error {
	args := m.Called(chatID, text, keyboard)
	return args.Error(0)
}

func (m *mockTelegramService) SendDocument(chatID int64, filePath, caption string) error {
	args := m.Called(chatID, filePath, caption)
	return args.Error(0)
}

func (m *mockTelegramService) EditMessage(chatID int64, messageID int, text string, keyboard *tgbotapi.InlineKeyboardMarkup) error {
	args := m.Called(chatID, messageID, text, keyboard)
	return args.Error(0)
}

func (m *mockTelegramService) AnswerCallback(callbackID, text string) error {
	args := m.Called(callbackID, text)
	return args.Error(0)
}

func (m *mockTelegramService) GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	args := m.Called(config)
	return args.Get(0).(tgbotapi.UpdatesChannel)
}

type mockUserService struct {
	mock.Mock
}

func (m *mockUserService) Register(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserService) Get(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserService) Verify(ctx context.Context, id int64, role string) error {
	return m.Called(ctx, id, role).Error(0)
}

func (m *mockUserService) RejectRegistration(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockUserService) SetActive(ctx context.Context, id int64, active bool) error {
	return m.Called(ctx, id, active).Error(0)
}

func (m *mockUserService) SetLanguage(ctx context.Context, id int64, language string) error {
	return m.Called(ctx, id, language).Error(0)
}

func (m *mockUserService) Managers(ctx context.Context, onlyActive bool, roles ...string) ([]models.User, error) {
	callArgs := make([]interface{}, 0, len(roles)+2)
	callArgs = append(callArgs, ctx, onlyActive)
	for _, r := range roles {
		callArgs = append(callArgs, r)
	}
	args := m.Called(callArgs...)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *mockUserService) Workers(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *mockUserService) Unverified(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

type mockAttendanceService struct {
	mock.Mock
}

func (m *mockAttendanceService) CheckIn(ctx context.Context, workerID int64) (*models.AttendanceRecord, error) {
	args := m.Called(ctx, workerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AttendanceRecord), args.Error(1)
}

func (m *mockAttendanceService) CheckOut(ctx context.Context, workerID int64) (*models.AttendanceRecord, error) {
	args := m.Called(ctx, workerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AttendanceRecord), args.Error(1)
}

func (m *mockAttendanceService) AddLateComment(ctx context.Context, workerID int64, comment string) error {
	return m.Called(ctx, workerID, comment).Error(0)
}

func (m *mockAttendanceService) Today(ctx context.Context, workerID int64) (*models.AttendanceRecord, error) {
	args := m.Called(ctx, workerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AttendanceRecord), args.Error(1)
}

func (m *mockAttendanceService) OnLeave(ctx context.Context, workerID int64, day string) (bool, error) {
	args := m.Called(ctx, workerID, day)
	return args.Bool(0), args.Error(1)
}

func (m *mockAttendanceService) Range(ctx context.Context, fromDay, toDay string) ([]models.AttendanceRecord, error) {
	args := m.Called(ctx, fromDay, toDay)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AttendanceRecord), args.Error(1)
}

type mockRequestService struct {
	mock.Mock
}

func (m *mockRequestService) Create(ctx context.Context, req *models.Request) error {
	return m.Called(ctx, req).Error(0)
}

func (m *mockRequestService) Get(ctx context.Context, id int64) (*models.Request, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Request), args.Error(1)
}

func (m *mockRequestService) Decide(ctx context.Context, requestID int64, decider *models.User, verdict, comment string) (*models.Request, error) {
	args := m.Called(ctx, requestID, decider, verdict, comment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Request), args.Error(1)
}

func (m *mockRequestService) PendingForRole(ctx context.Context, role string) ([]models.Request, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Request), args.Error(1)
}

func (m *mockRequestService) StalePending(ctx context.Context, olderThanDays int) ([]models.Request, error) {
	args := m.Called(ctx, olderThanDays)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Request), args.Error(1)
}

func (m *mockRequestService) WorkerHistory(ctx context.Context, workerID int64, limit int) ([]models.Request, error) {
	args := m.Called(ctx, workerID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Request), args.Error(1)
}

type botFixture struct {
	bot        *Bot
	tg         *mockTelegramService
	users      *mockUserService
	attendance *mockAttendanceService
	requests   *mockRequestService
}

func newBotFixture(t *testing.T) *botFixture {
	t.Helper()

	tg := &mockTelegramService{}
	users := &mockUserService{}
	attendance := &mockAttendanceService{}
	requests := &mockRequestService{}

	clk := testClock(t)
	logger := zerolog.Nop()

	cfg := &config.Config{}
	cfg.Bot.WorkDayStartHour = models.DefaultWorkDayStartHour
	cfg.Bot.WorkDayEndHour = models.DefaultWorkDayEndHour
	cfg.Bot.MorningReminderTime = models.DefaultMorningReminder
	cfg.Bot.EveningReminderTime = models.DefaultEveningReminder
	cfg.Bot.StaleThresholdDays = models.DefaultStaleThresholdDays
	cfg.Bot.PaginationSize = models.DefaultPaginationSize
	cfg.Bot.RateLimitMessages = models.DefaultRateLimitPerMinute
	cfg.Bot.RateLimitWindow = 60

	stateService := service.NewStateService(repository.NewMemoryStateRepository(time.Hour), &logger)

	b, err := NewBot(tg, cfg, clk, stateService, users, attendance, requests, nil, nil, &logger)
	require.NoError(t, err)

	return &botFixture{bot: b, tg: tg, users: users, attendance: attendance, requests: requests}
}

package bot

import (
	"context"
	"os"
	"sync"
	"time"

	"davomat/internal/clock"
	"davomat/internal/config"
	"davomat/internal/domain"
	"davomat/internal/events"
	"davomat/internal/logging"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type Bot struct {
	tgService         domain.TelegramService
	config            *config.Config
	clock             *clock.Clock
	stateService      domain.StateManager
	userService       domain.UserService
	attendanceService domain.AttendanceService
	requestService    domain.RequestService
	eventBus          domain.EventPublisher
	metrics           *Metrics
	logger            *zerolog.Logger

	// Мьютекс на пользователя: апдейты разных людей идут параллельно,
	// апдейты одного человека — строго по очереди.
	userLocks sync.Map
}

func NewBot(
	tgService domain.TelegramService,
	cfg *config.Config,
	clk *clock.Clock,
	stateService domain.StateManager,
	userService domain.UserService,
	attendanceService domain.AttendanceService,
	requestService domain.RequestService,
	eventBus domain.EventPublisher,
	metrics *Metrics,
	logger *zerolog.Logger,
) (*Bot, error) {
	if eventBus == nil {
		eventBus = events.NewEventBus()
	}

	if logger == nil {
		l := zerolog.New(os.Stdout).With().Timestamp().Logger()
		logger = &l
	}

	return &Bot{
		tgService:         tgService,
		config:            cfg,
		clock:             clk,
		stateService:      stateService,
		userService:       userService,
		attendanceService: attendanceService,
		requestService:    requestService,
		eventBus:          eventBus,
		metrics:           metrics,
		logger:            logger,
	}, nil
}

func (b *Bot) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.tgService.GetUpdatesChan(u)

	b.logger.Info().Msg("Bot started, listening for updates")

	for {
		select {
		case <-ctx.Done():
			b.logger.Info().Msg("Bot stopping...")
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			go b.processUpdate(ctx, update)
		}
	}
}

func (b *Bot) processUpdate(ctx context.Context, update tgbotapi.Update) {
	start := time.Now()
	defer func() {
		if b.metrics != nil {
			b.metrics.UpdateProcessingTime.Observe(time.Since(start).Seconds())
		}
	}()

	// Контекст на обработку одного обновления
	updateCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	var userID int64
	switch {
	case update.Message != nil:
		userID = update.Message.From.ID
	case update.CallbackQuery != nil:
		userID = update.CallbackQuery.From.ID
	}
	if userID == 0 {
		return
	}

	requestID := uuid.New().String()
	l := logging.WithUpdate(b.logger, requestID, userID)
	updateCtx = l.WithContext(updateCtx)

	b.withRecovery(func() {
		unlock := b.lockUser(userID)
		defer unlock()

		allowed, err := b.stateService.CheckRateLimit(updateCtx, userID,
			b.config.Bot.RateLimitMessages, time.Duration(b.config.Bot.RateLimitWindow)*time.Second)
		if err != nil {
			l.Error().Err(err).Msg("Rate limit check failed")
		} else if !allowed {
			l.Warn().Msg("Rate limit exceeded")
			if update.Message != nil {
				b.sendText(userID, update.Message.Chat.ID, "rate_limited")
			}
			return
		}

		if update.CallbackQuery != nil {
			if b.metrics != nil {
				b.metrics.UpdatesProcessed.WithLabelValues("callback").Inc()
			}
			b.handleCallbackQuery(updateCtx, update)
			return
		}

		if update.Message == nil {
			return
		}

		if b.metrics != nil {
			b.metrics.UpdatesProcessed.WithLabelValues("message").Inc()
		}
		b.handleMessage(updateCtx, update)
	})
}

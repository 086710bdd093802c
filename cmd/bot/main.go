package main

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"davomat/internal/api"
	"davomat/internal/bot"
	"davomat/internal/clock"
	"davomat/internal/config"
	"davomat/internal/database"
	"davomat/internal/events"
	"davomat/internal/google"
	"davomat/internal/i18n"
	"davomat/internal/logging"
	"davomat/internal/models"
	"davomat/internal/repository"
	"davomat/internal/service"
	"davomat/internal/worker"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	cfg, logger, closer, err := loadConfigAndLogger()
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer.Close()
	}

	if err := prepareDirectories(cfg, &logger); err != nil {
		return err
	}

	clk, err := clock.New(cfg.Bot.Timezone)
	if err != nil {
		logger.Error().Err(err).Msg("Ошибка загрузки часового пояса")
		return err
	}

	db, err := database.NewDB(cfg.Database.Path)
	if err != nil {
		logger.Error().Err(err).Msg("Ошибка инициализации базы данных")
		return err
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sheetsService := initGoogleSheets(ctx, cfg, &logger)
	redisClient, stateService := initStateService(ctx, cfg, &logger)

	// Воркер синхронизации Google Sheets
	var sheetsWorker *worker.SheetsWorker
	if sheetsService != nil {
		sheetsWorker = worker.NewSheetsWorker(db, sheetsService, redisClient, worker.RetryPolicy{}, &logger)
		go sheetsWorker.Start(ctx)
	}

	eventBus := events.NewEventBus()
	subscribeSyncEvents(ctx, eventBus, db, sheetsWorker, clk, &logger)

	userService := service.NewUserService(db, eventBus, cfg, &logger)
	attendanceService := service.NewAttendanceService(db, eventBus, clk, &logger)
	requestService := service.NewRequestService(db, eventBus, clk, &logger)
	metrics := bot.NewMetrics()

	if cfg.Monitoring.Enabled {
		opsServer := api.NewHTTPServer(cfg.Monitoring, db, &logger)
		go func() {
			if err := opsServer.Start(); err != nil {
				logger.Error().Err(err).Msg("Ops server error")
			}
		}()
		defer func() {
			_ = opsServer.Shutdown(context.Background())
		}()
	}

	return startBot(ctx, cfg, clk, stateService, userService, attendanceService, requestService, eventBus, metrics, &logger)
}

func loadConfigAndLogger() (*config.Config, zerolog.Logger, io.Closer, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, zerolog.Logger{}, nil, err
	}

	baseLogger, closer, err := logging.New(cfg.Logging, cfg.App)
	if err != nil {
		return nil, zerolog.Logger{}, nil, err
	}
	logger := baseLogger.With().Str("component", "bot-main").Logger()

	if cfg.Messages.OverridesFile != "" {
		if err := i18n.LoadOverrides(cfg.Messages.OverridesFile); err != nil {
			logger.Warn().Err(err).Str("file", cfg.Messages.OverridesFile).Msg("Не удалось загрузить переопределения текстов")
		}
	}

	return cfg, logger, closer, nil
}

func prepareDirectories(cfg *config.Config, logger *zerolog.Logger) error {
	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		logger.Error().Err(err).Msg("Ошибка создания директории для базы данных")
		return err
	}
	if err := os.MkdirAll(cfg.Exports.Path, 0o755); err != nil {
		logger.Error().Err(err).Msg("Ошибка создания директории для отчетов")
		return err
	}
	return nil
}

// initGoogleSheets поднимает клиент таблиц. Синхронизация опциональна,
// поэтому любая ошибка здесь не валит бота, а только отключает зеркало.
func initGoogleSheets(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) *google.SheetsService {
	if !cfg.Google.Enabled {
		return nil
	}

	sheetsSvc, err := google.NewSheetsService(
		cfg.Google.GoogleCredentialsFile,
		cfg.Google.AttendanceSpreadSheetID,
		cfg.Google.RequestsSpreadSheetID,
	)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to initialize Google Sheets service")
		return nil
	}

	if err := sheetsSvc.TestConnection(ctx); err != nil {
		logger.Warn().Err(err).Msg("Google Sheets connection test failed, sync disabled")
		return nil
	}

	logger.Info().Msg("Google Sheets service initialized successfully")
	return sheetsSvc
}

func initStateService(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) (*redis.Client, *service.StateService) {
	var redisClient *redis.Client
	if cfg.Redis.Address != "" {
		redisClient = repository.NewRedisClient(cfg.Redis)
		if errPing := repository.Ping(ctx, redisClient); errPing != nil {
			logger.Warn().Err(errPing).Msg("Redis unavailable")
		}
	}

	primaryRepo := repository.NewRedisStateRepository(redisClient, models.DefaultStateTTL)
	fallbackRepo := repository.NewMemoryStateRepository(models.DefaultStateTTL)
	stateRepo := repository.NewFailoverStateRepository(primaryRepo, fallbackRepo, logger)
	return redisClient, service.NewStateService(stateRepo, logger)
}

func startBot(
	ctx context.Context,
	cfg *config.Config,
	clk *clock.Clock,
	stateService *service.StateService,
	userService *service.UserService,
	attendanceService *service.AttendanceService,
	requestService *service.RequestService,
	eventBus *events.EventBus,
	metrics *bot.Metrics,
	logger *zerolog.Logger,
) error {
	botAPI, err := tgbotapi.NewBotAPI(cfg.Telegram.BotToken)
	if err != nil {
		logger.Error().Err(err).Msg("Ошибка создания BotAPI")
		return err
	}
	botAPI.Debug = cfg.Telegram.Debug

	tgService := service.NewTelegramService(botAPI, cfg.Bot.SendRatePerSecond)

	telegramBot, err := bot.NewBot(
		tgService, cfg, clk, stateService,
		userService, attendanceService, requestService,
		eventBus, metrics, logger,
	)
	if err != nil {
		logger.Error().Err(err).Msg("Ошибка создания бота")
		return err
	}

	logger.Info().Msg("Бот запущен...")
	go telegramBot.StartReminders(ctx)
	go telegramBot.StartDigest(ctx)
	telegramBot.Start(ctx)

	logger.Info().Msg("Shutdown complete.")
	return nil
}

// subscribeSyncEvents подписывает зеркало таблиц на доменные события:
// каждая отметка явки и каждое движение заявки уходят в очередь воркера.
func subscribeSyncEvents(
	ctx context.Context,
	bus *events.EventBus,
	db *database.DB,
	sheetsWorker *worker.SheetsWorker,
	clk *clock.Clock,
	logger *zerolog.Logger,
) {
	if bus == nil || sheetsWorker == nil || db == nil {
		return
	}

	attendanceHandler := func(ev *events.Event) error {
		var payload events.AttendanceEventPayload
		if err := json.Unmarshal(ev.Payload, &payload); err != nil {
			logger.Error().Err(err).Str("event", ev.Type).Msg("event bus: decode payload")
			return nil
		}

		rec, err := db.GetAttendance(ctx, payload.WorkerID, payload.Day)
		if err != nil {
			logger.Error().Err(err).Int64("worker_id", payload.WorkerID).Msg("event bus: load attendance")
			return nil
		}
		if err := sheetsWorker.EnqueueAttendance(ctx, rec); err != nil {
			logger.Error().Err(err).Int64("worker_id", payload.WorkerID).Msg("event bus: enqueue attendance")
		}
		return nil
	}

	requestHandler := func(ev *events.Event) error {
		var payload events.RequestEventPayload
		if err := json.Unmarshal(ev.Payload, &payload); err != nil {
			logger.Error().Err(err).Str("event", ev.Type).Msg("event bus: decode payload")
			return nil
		}

		req, err := db.GetRequest(ctx, payload.RequestID)
		if err != nil {
			logger.Error().Err(err).Int64("request_id", payload.RequestID).Msg("event bus: load request")
			return nil
		}
		if err := sheetsWorker.EnqueueRequest(ctx, req); err != nil {
			logger.Error().Err(err).Int64("request_id", payload.RequestID).Msg("event bus: enqueue request")
		}
		return nil
	}

	bus.Subscribe(events.EventAttendanceMark, attendanceHandler)
	bus.Subscribe(events.EventRequestCreated, requestHandler)
	bus.Subscribe(events.EventRequestDecided, requestHandler)
}

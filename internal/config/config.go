package config

import (
	"errors"
	"fmt"
	"os"

	"davomat/internal/models"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	App         AppConfig        `yaml:"app"`
	Telegram    TelegramConfig   `yaml:"telegram"`
	Database    DatabaseConfig   `yaml:"database"`
	Redis       RedisConfig      `yaml:"redis"`
	Monitoring  MonitoringConfig `yaml:"monitoring"`
	Logging     LoggingConfig    `yaml:"logging"`
	Bot         BotConfig        `yaml:"bot"`
	SuperAdmins []int64          `yaml:"super_admins"`
	Exports     ExportConfig     `yaml:"exports"`
	Google      GoogleConfig     `yaml:"google"`
	Messages    MessagesConfig   `yaml:"messages"`
}

type BotConfig struct {
	Timezone            string `yaml:"timezone"`
	WorkDayStartHour    int    `yaml:"work_day_start_hour"`
	WorkDayEndHour      int    `yaml:"work_day_end_hour"`
	MorningReminderTime string `yaml:"morning_reminder_time"`
	EveningReminderTime string `yaml:"evening_reminder_time"`
	DigestHour          int    `yaml:"digest_hour"`
	StaleThresholdDays  int    `yaml:"stale_threshold_days"`
	PaginationSize      int    `yaml:"pagination_size"`
	RateLimitMessages   int    `yaml:"rate_limit_messages"`
	RateLimitWindow     int    `yaml:"rate_limit_window"` // секунды
	SendRatePerSecond   int    `yaml:"send_rate_per_second"`
}

type ExportConfig struct {
	Path string `yaml:"path"`
}

type AppConfig struct {
	Name        string `yaml:"name"`
	Environment string `yaml:"environment"`
	Version     string `yaml:"version"`
}

type TelegramConfig struct {
	BotToken string `yaml:"bot_token"`
	Debug    bool   `yaml:"debug"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	PoolSize int    `yaml:"pool_size"`
}

type MonitoringConfig struct {
	Enabled   bool    `yaml:"enabled"`
	Port      int     `yaml:"port"`
	AuthToken string  `yaml:"auth_token"`
	RPS       float64 `yaml:"rps"`
	Burst     int     `yaml:"burst"`
}

type LoggingConfig struct {
	Level    string `yaml:"level"`
	Format   string `yaml:"format"`
	Output   string `yaml:"output"`
	FilePath string `yaml:"file_path"`
}

type GoogleConfig struct {
	Enabled                 bool   `yaml:"enabled"`
	GoogleCredentialsFile   string `yaml:"credentials_file"`
	AttendanceSpreadSheetID string `yaml:"attendance_spreadsheet_id"`
	RequestsSpreadSheetID   string `yaml:"requests_spreadsheet_id"`
}

// MessagesConfig указывает на файл с переопределениями текстов интерфейса.
type MessagesConfig struct {
	OverridesFile string `yaml:"overrides_file"`
}

func Load(configPath string) (*Config, error) {
	// .env не обязателен, при отсутствии просто идем дальше
	_ = godotenv.Load(".env")

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	// Предварительная замена переменных окружения в YAML
	expandedData := []byte(os.ExpandEnv(string(data)))

	var config Config
	if err := yaml.Unmarshal(expandedData, &config); err != nil {
		return nil, err
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

func (c *Config) Validate() error {
	if c.Telegram.BotToken == "" || c.Telegram.BotToken == "YOUR_BOT_TOKEN_HERE" {
		return errors.New("telegram bot token is required")
	}

	if c.Database.Path == "" {
		return errors.New("database path is required")
	}

	if c.Bot.WorkDayStartHour >= c.Bot.WorkDayEndHour {
		return fmt.Errorf("work day start hour %d must be before end hour %d",
			c.Bot.WorkDayStartHour, c.Bot.WorkDayEndHour)
	}

	if c.Google.Enabled {
		if c.Google.GoogleCredentialsFile == "" {
			return errors.New("google credentials file is required when sheets sync is enabled")
		}
		if c.Google.AttendanceSpreadSheetID == "" && c.Google.RequestsSpreadSheetID == "" {
			return errors.New("at least one google spreadsheet id is required when sheets sync is enabled")
		}
	}

	return nil
}

func (c *Config) applyDefaults() {
	if c.Bot.Timezone == "" {
		c.Bot.Timezone = models.DefaultTimezone
	}
	if c.Bot.WorkDayStartHour == 0 {
		c.Bot.WorkDayStartHour = models.DefaultWorkDayStartHour
	}
	if c.Bot.WorkDayEndHour == 0 {
		c.Bot.WorkDayEndHour = models.DefaultWorkDayEndHour
	}
	if c.Bot.MorningReminderTime == "" {
		c.Bot.MorningReminderTime = models.DefaultMorningReminder
	}
	if c.Bot.EveningReminderTime == "" {
		c.Bot.EveningReminderTime = models.DefaultEveningReminder
	}
	if c.Bot.DigestHour == 0 {
		c.Bot.DigestHour = models.DefaultDigestHour
	}
	if c.Bot.StaleThresholdDays == 0 {
		c.Bot.StaleThresholdDays = models.DefaultStaleThresholdDays
	}
	if c.Bot.PaginationSize == 0 {
		c.Bot.PaginationSize = models.DefaultPaginationSize
	}
	if c.Bot.RateLimitMessages == 0 {
		c.Bot.RateLimitMessages = models.DefaultRateLimitPerMinute
	}
	if c.Bot.RateLimitWindow == 0 {
		c.Bot.RateLimitWindow = 60
	}
	if c.Bot.SendRatePerSecond == 0 {
		c.Bot.SendRatePerSecond = 25
	}

	if c.Monitoring.Enabled && c.Monitoring.Port == 0 {
		c.Monitoring.Port = 9090
	}
	if c.Monitoring.RPS == 0 {
		c.Monitoring.RPS = 5
	}
	if c.Monitoring.Burst == 0 {
		c.Monitoring.Burst = 10
	}

	if c.Exports.Path == "" {
		c.Exports.Path = "exports"
	}
}

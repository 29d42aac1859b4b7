// Package config loads chanwatch settings from the environment and an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/raykavin/chanwatch/pkg/dialog"
	"github.com/raykavin/chanwatch/pkg/monitor"
	"github.com/spf13/viper"
	"github.com/xhit/go-str2duration/v2"
)

const (
	DefaultEnvFile     = ".env"
	DefaultSessionPath = "./chanwatch.session.json"
	DefaultLogLevel    = "info"
)

// AppConfig holds the application configuration.
type AppConfig struct {
	Telegram       TelegramConfig
	Notify         NotifyConfig
	Binance        BinanceConfig
	OutputPath     string
	DialogLimit    int
	SessionTimeout time.Duration
	LogLevel       string
}

// TelegramConfig identifies the MTProto application and the login.
type TelegramConfig struct {
	AppID       int
	AppHash     string
	Phone       string
	SessionPath string
}

// NotifyConfig enables the bot message sent after the list changes.
type NotifyConfig struct {
	Enabled bool
	Token   string
	Users   []int
}

// BinanceConfig holds Binance exchange credentials.
type BinanceConfig struct {
	APIKey     string
	SecretKey  string
	UseTestnet bool
}

// Load reads envFile when it exists and then the environment. Variables
// already set in the environment win over the file.
func Load(envFile string) (*AppConfig, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("TELEGRAM_SESSION_PATH", DefaultSessionPath)
	v.SetDefault("MONITORED_CHANNELS_PATH", monitor.DefaultPath)
	v.SetDefault("DIALOG_LIMIT", dialog.DefaultLimit)
	v.SetDefault("SESSION_TIMEOUT", "")
	v.SetDefault("LOG_LEVEL", DefaultLogLevel)
	v.SetDefault("TELEGRAM_NOTIFY_ENABLED", false)
	v.SetDefault("BINANCE_USE_TESTNET", false)

	timeout, err := ParseTimeout(v.GetString("SESSION_TIMEOUT"))
	if err != nil {
		return nil, err
	}

	users, err := parseUsers(v.GetString("TELEGRAM_NOTIFY_USERS"))
	if err != nil {
		return nil, err
	}

	return &AppConfig{
		Telegram: TelegramConfig{
			AppID:       v.GetInt("TELEGRAM_API_ID"),
			AppHash:     v.GetString("TELEGRAM_API_HASH"),
			Phone:       v.GetString("TELEGRAM_PHONE"),
			SessionPath: v.GetString("TELEGRAM_SESSION_PATH"),
		},
		Notify: NotifyConfig{
			Enabled: v.GetBool("TELEGRAM_NOTIFY_ENABLED"),
			Token:   v.GetString("TELEGRAM_BOT_TOKEN"),
			Users:   users,
		},
		Binance: BinanceConfig{
			APIKey:     v.GetString("BINANCE_API_KEY"),
			SecretKey:  v.GetString("BINANCE_SECRET_KEY"),
			UseTestnet: v.GetBool("BINANCE_USE_TESTNET"),
		},
		OutputPath:     v.GetString("MONITORED_CHANNELS_PATH"),
		DialogLimit:    v.GetInt("DIALOG_LIMIT"),
		SessionTimeout: timeout,
		LogLevel:       v.GetString("LOG_LEVEL"),
	}, nil
}

// ParseTimeout accepts Go durations plus day and week units ("1d12h").
// An empty string means no timeout.
func ParseTimeout(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}

	d, err := str2duration.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid session timeout %q: %w", s, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid session timeout %q: negative", s)
	}
	return d, nil
}

func parseUsers(s string) ([]int, error) {
	var users []int
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}

		id, err := strconv.Atoi(field)
		if err != nil {
			return nil, fmt.Errorf("invalid telegram user id %q: %w", field, err)
		}
		users = append(users, id)
	}
	return users, nil
}

package providers

import (
	"errors"
	"fmt"
	"path/filepath"
	"quranbot/internal/structures"
	"strings"

	"github.com/spf13/viper"
)

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	filename := filepath.Base(flags.ConfigPath)
	viper.AddConfigPath(filepath.Dir(flags.ConfigPath))
	viper.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	viper.SetConfigType("yaml")

	viper.SetDefault("twitter.baseUrl", "https://api.twitter.com")
	viper.SetDefault("twitter.timeout", "15s")
	viper.SetDefault("quran.baseUrl", "https://api.alquran.cloud/v1")
	viper.SetDefault("quran.edition", "en.sahih")
	viper.SetDefault("quran.timeout", "10s")
	viper.SetDefault("posting.monthlyLimit", 400)
	viper.SetDefault("posting.hourlyGate", false)
	viper.SetDefault("posting.minInterval", "1h")
	viper.SetDefault("persistence.filePath", "quran_bot_state.json")
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.mode", 0644)
	viper.SetDefault("logger.dir", "logs")
	viper.SetDefault("cache.enabled", false)
	viper.SetDefault("cache.size", 8)
	viper.SetDefault("cache.ttl", "24h")
	viper.SetDefault("metrics.enabled", false)
	viper.SetDefault("metrics.listen", "127.0.0.1:9100")

	viper.BindEnv("twitter.apiKey", "API_KEY")
	viper.BindEnv("twitter.apiSecret", "API_SECRET")
	viper.BindEnv("twitter.accessToken", "ACCESS_TOKEN")
	viper.BindEnv("twitter.accessTokenSecret", "ACCESS_TOKEN_SECRET")
	viper.BindEnv("twitter.bearerToken", "BEARER_TOKEN")
	viper.BindEnv("logger.level", "QURANBOT_LOG_LEVEL")
	viper.BindEnv("posting.monthlyLimit", "QURANBOT_MONTHLY_LIMIT")
	viper.BindEnv("posting.hourlyGate", "QURANBOT_HOURLY_GATE")
	viper.BindEnv("persistence.filePath", "QURANBOT_STATE_FILE")
	viper.BindEnv("cache.enabled", "QURANBOT_CACHE_ENABLED")
	viper.BindEnv("cache.size", "QURANBOT_CACHE_SIZE")

	// The config file is optional: credentials arrive via the environment
	// and everything else has a default, so a cron deployment can run with
	// no file at all.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	if err := viper.Unmarshal(&conf); err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	if err := cnfValidator.Validate(); err != nil {
		return nil, err
	}

	conf.AppName = "QuranBot"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode
	conf.Daemon = flags.Daemon
	conf.DryRun = flags.DryRun

	return &conf, nil
}

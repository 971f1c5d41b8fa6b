package structures

import "time"

type TwitterConfig struct {
	APIKey            string        `yaml:"apiKey" validate:"required"`
	APISecret         string        `yaml:"apiSecret" validate:"required"`
	AccessToken       string        `yaml:"accessToken" validate:"required"`
	AccessTokenSecret string        `yaml:"accessTokenSecret" validate:"required"`
	BearerToken       string        `yaml:"bearerToken"`
	BaseURL           string        `yaml:"baseUrl" validate:"required|fullUrl"`
	Timeout           time.Duration `yaml:"timeout" validate:"required|min:1"`
}

type QuranConfig struct {
	BaseURL string        `yaml:"baseUrl" validate:"required|fullUrl"`
	Edition string        `yaml:"edition" validate:"required"`
	Timeout time.Duration `yaml:"timeout" validate:"required|min:1"`
}

type PostingConfig struct {
	MonthlyLimit int           `yaml:"monthlyLimit" validate:"required|uint|min:1"`
	HourlyGate   bool          `yaml:"hourlyGate"`
	MinInterval  time.Duration `yaml:"minInterval" validate:"required|min:1"`
}

type Persistence struct {
	FilePath string `yaml:"filePath" validate:"required"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required"`
}

type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Size    int           `yaml:"size"`
	TTL     time.Duration `yaml:"ttl"`
}

type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Listen  string `yaml:"listen"`
}

type Config struct {
	AppName     string
	Debug       bool
	Daemon      bool
	DryRun      bool
	Path        string
	Twitter     TwitterConfig `yaml:"twitter"`
	Quran       QuranConfig   `yaml:"quran"`
	Posting     PostingConfig `yaml:"posting"`
	Persistence Persistence   `yaml:"persistence"`
	Logger      LoggerConfig  `yaml:"logger"`
	Cache       CacheConfig   `yaml:"cache"`
	Metrics     MetricsConfig `yaml:"metrics"`
}

package config

import (
	"fmt"
	"time"
)

type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Gemini      GeminiConfig      `yaml:"gemini"`
	TTS         TTSConfig         `yaml:"tts"`
	Audio       AudioConfig       `yaml:"audio"`
	Extract     ExtractConfig     `yaml:"extract"`
	Paths       PathsConfig       `yaml:"paths"`
	Watcher     WatcherConfig     `yaml:"watcher"`
	Logging     LoggingConfig     `yaml:"logging"`
	Performance PerformanceConfig `yaml:"performance"`
	Upstream    UpstreamConfig    `yaml:"upstream"`
}

type ServerConfig struct {
	Port         int           `yaml:"port"`
	Debug        bool          `yaml:"debug"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	RateLimit    float64       `yaml:"rate_limit"` // requests per second, 0 disables
	RateBurst    int           `yaml:"rate_burst"`
}

type GeminiConfig struct {
	Model     string `yaml:"model"`
	APIKeyEnv string `yaml:"api_key_env"`
	// APIKey is never read from YAML.
	APIKey string `yaml:"-"`
}

type TTSConfig struct {
	CredentialsFile string `yaml:"credentials_file"`
	LanguageCode    string `yaml:"language_code"`
	Gender          string `yaml:"gender"`
	Encoding        string `yaml:"encoding"`
}

type AudioConfig struct {
	PublicDir string `yaml:"public_dir"`
	FileName  string `yaml:"file_name"`
}

type ExtractConfig struct {
	MaxFileSize   int64  `yaml:"max_file_size"`
	PdftotextPath string `yaml:"pdftotext_path"`
}

type PathsConfig struct {
	Inbox    string `yaml:"inbox"`
	Output   string `yaml:"output"`
	Archived string `yaml:"archived"`
	Temp     string `yaml:"temp"`
}

type WatcherConfig struct {
	Enabled     bool          `yaml:"enabled"`
	SettleDelay time.Duration `yaml:"settle_delay"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type PerformanceConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"`
}

type UpstreamConfig struct {
	Timeout time.Duration `yaml:"timeout"`
}

func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	if c.Server.RateLimit < 0 {
		return fmt.Errorf("server.rate_limit must not be negative")
	}
	if c.Extract.MaxFileSize < 0 {
		return fmt.Errorf("extract.max_file_size must not be negative")
	}
	if c.Watcher.Enabled && c.Paths.Inbox == "" {
		return fmt.Errorf("paths.inbox is required when watcher is enabled")
	}
	switch c.Logging.Format {
	case "", "json", "text":
	default:
		return fmt.Errorf("logging.format must be json or text, got %q", c.Logging.Format)
	}

	if c.Server.Port == 0 {
		c.Server.Port = 3000
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 30 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 5 * time.Minute
	}
	if c.Server.RateLimit > 0 && c.Server.RateBurst == 0 {
		c.Server.RateBurst = int(c.Server.RateLimit) + 1
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.5-flash"
	}
	if c.Gemini.APIKeyEnv == "" {
		c.Gemini.APIKeyEnv = "GEMINI_API_TOKEN"
	}
	if c.TTS.CredentialsFile == "" {
		c.TTS.CredentialsFile = "googleservicekey.json"
	}
	if c.TTS.LanguageCode == "" {
		c.TTS.LanguageCode = "en-US"
	}
	if c.TTS.Gender == "" {
		c.TTS.Gender = "NEUTRAL"
	}
	if c.TTS.Encoding == "" {
		c.TTS.Encoding = "MP3"
	}
	if c.Audio.PublicDir == "" {
		c.Audio.PublicDir = "public"
	}
	if c.Audio.FileName == "" {
		c.Audio.FileName = "output.mp3"
	}
	if c.Extract.MaxFileSize == 0 {
		c.Extract.MaxFileSize = 50 << 20
	}
	if c.Paths.Inbox == "" {
		c.Paths.Inbox = "data/inbox"
	}
	if c.Paths.Output == "" {
		c.Paths.Output = "data/output"
	}
	if c.Paths.Archived == "" {
		c.Paths.Archived = "data/archived"
	}
	if c.Paths.Temp == "" {
		c.Paths.Temp = "data/temp"
	}
	if c.Watcher.SettleDelay == 0 {
		c.Watcher.SettleDelay = 500 * time.Millisecond
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 2
	}
	if c.Upstream.Timeout == 0 {
		c.Upstream.Timeout = 2 * time.Minute
	}

	return nil
}

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
)

// DefaultConfigPath is read when no --config flag is given
const DefaultConfigPath = "./config/settings.yaml"

// Transcription service selectors accepted by transcription.service
const (
	ServiceAuto   = "auto"
	ServiceOpenAI = "openai"
	ServiceAzure  = "azure"
	ServiceLocal  = "local"
	ServiceNative = "native"
)

var (
	once       sync.Once
	initErr    error
	configPath = DefaultConfigPath
)

// SetConfigFile overrides the settings file location. Call before Init.
func SetConfigFile(path string) {
	if path != "" {
		configPath = path
	}
}

// Init initializes the configuration system
// This should be called once at application startup
func Init() error {
	once.Do(func() {
		initErr = load()
	})

	return initErr
}

// Reset clears viper state so Init can run again (tests)
func Reset() {
	viper.Reset()
	once = sync.Once{}
	initErr = nil
	configPath = DefaultConfigPath
}

func load() error {
	setDefaults()

	// Environment overrides, e.g. SCRIPTIFY_OPENAI_API_KEY
	viper.SetEnvPrefix("SCRIPTIFY")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	path := filepath.Clean(configPath)
	viper.SetConfigFile(path)

	if err := viper.ReadInConfig(); err != nil {
		// A missing settings file means defaults and env vars only
		if !errors.Is(err, fs.ErrNotExist) {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return fmt.Errorf("error reading config file %s: %w", path, err)
			}
		}
	}

	if err := validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// GetConfig returns the current configuration as a struct
// Init() must be called before using this
func GetConfig() (*Config, error) {
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &config, nil
}

// Get returns a config value by key using Viper directly
func Get(key string) any {
	return viper.Get(key)
}

// GetString returns a string config value
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetDuration returns a time.Duration config value
func GetDuration(key string) time.Duration {
	return viper.GetDuration(key)
}

// Set overrides a config value at runtime (flags)
func Set(key string, value any) {
	viper.Set(key, value)
}

func validate() error {
	port := viper.GetInt("server.port")
	if port <= 0 || port > 65535 {
		return fmt.Errorf("invalid server port: %d", port)
	}

	if !validService(viper.GetString("transcription.service")) {
		return fmt.Errorf("unknown transcription service: %q", viper.GetString("transcription.service"))
	}

	if err := validateAPIKeys(); err != nil {
		return err
	}

	// Auto-correct a non-positive debounce to the observed 1s default
	if viper.GetDuration("autosave.debounce") <= 0 {
		viper.Set("autosave.debounce", time.Second)
	}

	if !validAutoSaveInterval(viper.GetInt("autosave.interval")) {
		viper.Set("autosave.interval", 0)
	}

	return nil
}

func validService(name string) bool {
	switch name {
	case ServiceAuto, ServiceOpenAI, ServiceAzure, ServiceLocal, ServiceNative:
		return true
	}
	return false
}

func validAutoSaveInterval(seconds int) bool {
	switch seconds {
	case 0, 30, 60, 300:
		return true
	}
	return false
}

// validateAPIKeys rejects placeholder credentials for a pinned remote service
func validateAPIKeys() error {
	env := viper.GetString("environment")
	isProduction := env == "production" || env == "prod"

	placeholders := []string{
		"YOUR_KEY_HERE",
		"YOUR_API_KEY",
		"changeme",
		"CHANGEME",
		"",
	}

	check := func(label, value string) error {
		for _, placeholder := range placeholders {
			if value == placeholder {
				if isProduction {
					return fmt.Errorf("invalid %s: cannot use placeholder values in production", label)
				}
				log.Printf("[WARN] %s is using a placeholder value", label)
				return nil
			}
		}
		return nil
	}

	switch viper.GetString("transcription.service") {
	case ServiceOpenAI:
		return check("OpenAI API key", viper.GetString("openai.api_key"))
	case ServiceAzure:
		if err := check("Azure subscription key", viper.GetString("azure.subscription_key")); err != nil {
			return err
		}
		if viper.GetString("azure.region") == "" {
			return fmt.Errorf("azure.region is required when transcription.service is azure")
		}
	}
	return nil
}

// Validate validates a Config struct (for testing)
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if !validService(c.Transcription.Service) {
		return fmt.Errorf("unknown transcription service: %q", c.Transcription.Service)
	}

	if c.Transcription.Service == ServiceAzure && c.Azure.Region == "" {
		return fmt.Errorf("azure.region is required when transcription.service is azure")
	}

	if c.AutoSave.Debounce <= 0 {
		c.AutoSave.Debounce = time.Second
	}

	return nil
}

func setDefaults() {
	viper.SetDefault("environment", "development")

	// Server defaults
	viper.SetDefault("server.host", "127.0.0.1")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", 30*time.Second)
	viper.SetDefault("server.write_timeout", 5*time.Minute)
	viper.SetDefault("server.shutdown_timeout", 10*time.Second)
	viper.SetDefault("server.max_header_bytes", 1048576)
	viper.SetDefault("server.max_upload_bytes", 100*1024*1024)

	// Database defaults
	viper.SetDefault("database.path", "./data/scriptify.db")
	viper.SetDefault("database.verbose", false)

	// Store defaults
	viper.SetDefault("store.name", "scriptify-store")

	// Transcription defaults
	viper.SetDefault("transcription.service", ServiceAuto)
	viper.SetDefault("transcription.language", "en")
	viper.SetDefault("transcription.model", "")
	viper.SetDefault("transcription.timeout", 10*time.Minute)

	// OpenAI backend
	viper.SetDefault("openai.api_url", "https://api.openai.com/v1/audio/transcriptions")
	viper.SetDefault("openai.api_key", "")
	viper.SetDefault("openai.model", "whisper-1")

	// Azure backend
	viper.SetDefault("azure.subscription_key", "")
	viper.SetDefault("azure.region", "")
	viper.SetDefault("azure.endpoint_template", "https://%s.stt.speech.microsoft.com/speech/recognition/conversation/cognitiveservices/v1")

	// Local server backend
	viper.SetDefault("local_server.url", "http://localhost:8000/transcribe")
	viper.SetDefault("local_server.model", "base")

	// Native bridge backend
	viper.SetDefault("native.desktop_host", false)
	viper.SetDefault("native.python_path", "python3")
	viper.SetDefault("native.script_path", "./python/whisper_transcribe.py")
	viper.SetDefault("native.model_size", "base")
	viper.SetDefault("native.temp_dir", "./tmp/native")

	// Processing defaults
	viper.SetDefault("processing.ffprobe_path", "ffprobe")
	viper.SetDefault("processing.probe_timeout", 15*time.Second)

	// Capture defaults
	viper.SetDefault("capture.sample_rate", 16000)
	viper.SetDefault("capture.channels", 1)
	viper.SetDefault("capture.frames_per_buffer", 1024)

	// Auto-save defaults
	viper.SetDefault("autosave.debounce", time.Second)
	viper.SetDefault("autosave.interval", 0)

	// Export defaults
	viper.SetDefault("export.output_dir", "./exports")
	viper.SetDefault("export.formats", []string{"txt", "srt", "vtt"})

	// Storage defaults
	viper.SetDefault("storage.temp_dir", "./tmp")
	viper.SetDefault("storage.max_temp_age", 24*time.Hour)
	viper.SetDefault("storage.cleanup_interval", time.Hour)

	// Rate limiting defaults
	viper.SetDefault("rate_limiting.enabled", true)
	viper.SetDefault("rate_limiting.transcribe_rps", 1)
	viper.SetDefault("rate_limiting.transcribe_burst", 3)
	viper.SetDefault("rate_limiting.default_rps", 10)
	viper.SetDefault("rate_limiting.default_burst", 20)

	// Logging defaults
	viper.SetDefault("logging.level", "info")
}

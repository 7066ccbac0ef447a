package config

import "time"

// Config represents the complete application configuration
type Config struct {
	Environment   string              `mapstructure:"environment"`
	Server        ServerConfig        `mapstructure:"server"`
	Database      DatabaseConfig      `mapstructure:"database"`
	Store         StoreConfig         `mapstructure:"store"`
	Transcription TranscriptionConfig `mapstructure:"transcription"`
	OpenAI        OpenAIConfig        `mapstructure:"openai"`
	Azure         AzureConfig         `mapstructure:"azure"`
	LocalServer   LocalServerConfig   `mapstructure:"local_server"`
	Native        NativeConfig        `mapstructure:"native"`
	Processing    ProcessingConfig    `mapstructure:"processing"`
	Capture       CaptureConfig       `mapstructure:"capture"`
	AutoSave      AutoSaveConfig      `mapstructure:"autosave"`
	Export        ExportConfig        `mapstructure:"export"`
	Storage       StorageConfig       `mapstructure:"storage"`
	RateLimiting  RateLimitConfig     `mapstructure:"rate_limiting"`
	Logging       LoggingConfig       `mapstructure:"logging"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxHeaderBytes  int           `mapstructure:"max_header_bytes"`
	MaxUploadBytes  int64         `mapstructure:"max_upload_bytes"`
}

// DatabaseConfig contains database settings
type DatabaseConfig struct {
	Path    string `mapstructure:"path"`
	Verbose bool   `mapstructure:"verbose"`
}

// StoreConfig names the persisted session store record
type StoreConfig struct {
	Name string `mapstructure:"name"`
}

// TranscriptionConfig selects and tunes the transcription backend. Model,
// when set, overrides every backend's own default model.
type TranscriptionConfig struct {
	Service  string        `mapstructure:"service"`
	Language string        `mapstructure:"language"`
	Model    string        `mapstructure:"model"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// OpenAIConfig contains the bearer-token speech API settings
type OpenAIConfig struct {
	APIKey string `mapstructure:"api_key"`
	APIURL string `mapstructure:"api_url"`
	Model  string `mapstructure:"model"`
}

// AzureConfig contains the subscription-key speech API settings
type AzureConfig struct {
	SubscriptionKey  string `mapstructure:"subscription_key"`
	Region           string `mapstructure:"region"`
	EndpointTemplate string `mapstructure:"endpoint_template"`
}

// LocalServerConfig points at a locally running transcription server
type LocalServerConfig struct {
	URL   string `mapstructure:"url"`
	Model string `mapstructure:"model"`
}

// NativeConfig describes the embedded helper routine used inside a desktop host
type NativeConfig struct {
	DesktopHost bool   `mapstructure:"desktop_host"`
	PythonPath  string `mapstructure:"python_path"`
	ScriptPath  string `mapstructure:"script_path"`
	ModelSize   string `mapstructure:"model_size"`
	TempDir     string `mapstructure:"temp_dir"`
}

// ProcessingConfig contains audio probing settings
type ProcessingConfig struct {
	FFprobePath  string        `mapstructure:"ffprobe_path"`
	ProbeTimeout time.Duration `mapstructure:"probe_timeout"`
}

// CaptureConfig contains microphone capture settings
type CaptureConfig struct {
	SampleRate      int `mapstructure:"sample_rate"`
	Channels        int `mapstructure:"channels"`
	FramesPerBuffer int `mapstructure:"frames_per_buffer"`
}

// AutoSaveConfig controls how transcript edits are coalesced before commit
type AutoSaveConfig struct {
	Debounce time.Duration `mapstructure:"debounce"`
	Interval int           `mapstructure:"interval"`
}

// ExportConfig contains export defaults
type ExportConfig struct {
	OutputDir string   `mapstructure:"output_dir"`
	Formats   []string `mapstructure:"formats"`
}

// StorageConfig contains temporary file settings
type StorageConfig struct {
	TempDir         string        `mapstructure:"temp_dir"`
	MaxTempAge      time.Duration `mapstructure:"max_temp_age"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
}

// RateLimitConfig contains per-client rate limits
type RateLimitConfig struct {
	Enabled         bool `mapstructure:"enabled"`
	TranscribeRPS   int  `mapstructure:"transcribe_rps"`
	TranscribeBurst int  `mapstructure:"transcribe_burst"`
	DefaultRPS      int  `mapstructure:"default_rps"`
	DefaultBurst    int  `mapstructure:"default_burst"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

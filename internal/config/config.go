package config

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/vango-dev/vrender/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "vrender.json"

	// DefaultPort is the default preview server port.
	DefaultPort = 4000

	// DefaultHost is the default preview server host.
	DefaultHost = "localhost"

	// DefaultHostAdapter is the host adapter used by render.
	DefaultHostAdapter = "html"

	// DefaultNamespace is the default Prometheus namespace.
	DefaultNamespace = "vrender"

	// DefaultTracerName is the default OpenTelemetry tracer name.
	DefaultTracerName = "github.com/vango-dev/vrender"
)

// HostAdapters lists the accepted values of Config.Host.
var HostAdapters = []string{"html", "term", "png"}

// Config represents the complete vrender.json configuration.
type Config struct {
	// Name is the project name.
	Name string `json:"name,omitempty"`

	// Version is the project version.
	Version string `json:"version,omitempty"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `json:"logLevel,omitempty"`

	// Host selects the host adapter: html, term or png.
	Host string `json:"host,omitempty"`

	// Preview contains preview server configuration.
	Preview PreviewConfig `json:"preview,omitempty"`

	// Metrics contains Prometheus configuration.
	Metrics MetricsConfig `json:"metrics,omitempty"`

	// Tracing contains OpenTelemetry configuration.
	Tracing TracingConfig `json:"tracing,omitempty"`

	// Publish contains object storage configuration.
	Publish PublishConfig `json:"publish,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// PreviewConfig contains preview server settings.
type PreviewConfig struct {
	// Host is the host to bind to.
	Host string `json:"host,omitempty"`

	// Port is the port to listen on.
	Port int `json:"port,omitempty"`

	// Pretty indents the served HTML.
	Pretty bool `json:"pretty,omitempty"`

	// Title is the page title. Defaults to the project name.
	Title string `json:"title,omitempty"`
}

// MetricsConfig contains Prometheus settings.
type MetricsConfig struct {
	// Namespace prefixes every metric name.
	Namespace string `json:"namespace,omitempty"`
}

// TracingConfig contains OpenTelemetry settings.
type TracingConfig struct {
	// Enabled turns on span creation for renders.
	Enabled bool `json:"enabled,omitempty"`

	// TracerName is the instrumentation scope name.
	TracerName string `json:"tracerName,omitempty"`
}

// PublishConfig contains object storage settings.
type PublishConfig struct {
	Bucket   string `json:"bucket,omitempty"`
	Region   string `json:"region,omitempty"`
	Endpoint string `json:"endpoint,omitempty"`
	Prefix   string `json:"prefix,omitempty"`
}

// Default creates a new Config with default values.
func Default() *Config {
	return &Config{
		Version:  "0.1.0",
		LogLevel: "info",
		Host:     DefaultHostAdapter,
		Preview: PreviewConfig{
			Host: DefaultHost,
			Port: DefaultPort,
		},
		Metrics: MetricsConfig{
			Namespace: DefaultNamespace,
		},
		Tracing: TracingConfig{
			TracerName: DefaultTracerName,
		},
	}
}

// Load reads configuration from the specified directory.
// It returns the defaults when dir has no vrender.json.
func Load(dir string) (*Config, error) {
	configPath := filepath.Join(dir, ConfigFileName)
	if !Exists(dir) {
		cfg := Default()
		cfg.applyDefaults()
		return cfg, nil
	}
	return LoadFile(configPath)
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("E060").WithDetail("Failed to read " + path).Wrap(err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("E060").
			WithDetail("Failed to parse " + path + ": " + err.Error()).
			WithSuggestion("Check that vrender.json is valid JSON")
	}

	cfg.configPath = path
	cfg.applyDefaults()

	return cfg, nil
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New("E060").Wrap(err)
	}

	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("E060").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Host == "" {
		c.Host = DefaultHostAdapter
	}
	if c.Preview.Host == "" {
		c.Preview.Host = DefaultHost
	}
	if c.Preview.Port == 0 {
		c.Preview.Port = DefaultPort
	}
	if c.Preview.Title == "" {
		c.Preview.Title = c.Name
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = DefaultNamespace
	}
	if c.Tracing.TracerName == "" {
		c.Tracing.TracerName = DefaultTracerName
	}
}

// ApplyEnv applies VRENDER_PORT and VRENDER_LOG_LEVEL from getenv.
// A nil getenv uses os.Getenv.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if getenv == nil {
		getenv = os.Getenv
	}
	if v := getenv("VRENDER_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return errors.New("E061").WithDetailf("VRENDER_PORT=%q is not a number", v)
		}
		c.Preview.Port = port
	}
	if v := getenv("VRENDER_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	return c.Validate()
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Preview.Port < 0 || c.Preview.Port > 65535 {
		return errors.New("E061").
			WithDetail("Port must be between 0 and 65535")
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if !validHost(c.Host) {
		return errors.New("E061").
			WithDetailf("Unknown host adapter %q", c.Host).
			WithSuggestion("Use one of: " + strings.Join(HostAdapters, ", "))
	}
	return nil
}

// Level returns the configured slog level, falling back to info.
func (c *Config) Level() slog.Level {
	level, err := ParseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

// PreviewAddress returns the address string for the preview server.
func (c *Config) PreviewAddress() string {
	return c.Preview.Host + ":" + strconv.Itoa(c.Preview.Port)
}

// PreviewURL returns the full URL for the preview server.
func (c *Config) PreviewURL() string {
	return "http://" + c.PreviewAddress()
}

// ParseLevel parses a log level name.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, errors.New("E061").
			WithDetailf("Unknown log level %q", s).
			WithSuggestion("Use one of: debug, info, warn, error")
	}
	return level, nil
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	path := filepath.Join(dir, ConfigFileName)
	_, err := os.Stat(path)
	return err == nil
}

func validHost(h string) bool {
	for _, name := range HostAdapters {
		if h == name {
			return true
		}
	}
	return false
}

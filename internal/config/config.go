package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var DefaultConfigYAML []byte

type Config struct {
	Sources     Sources     `yaml:"sources"`
	Output      Output      `yaml:"output"`
	Server      Server      `yaml:"server"`
	Proxy       Proxy       `yaml:"proxy"`
	Aggregation Aggregation `yaml:"aggregation"`
	Logging     Logging     `yaml:"logging"`
}

type Sources struct {
	Feeds []Feed `yaml:"feeds" validate:"dive"`
}

// Feed is an RSS or Atom feed whose items are imported as social posts of
// the given platform and author.
type Feed struct {
	URL      string `yaml:"url" validate:"required,url"`
	Name     string `yaml:"name"`
	Platform string `yaml:"platform" validate:"oneof=twitter facebook instagram linkedin email"`
	Author   string `yaml:"author" validate:"required"`
}

type Output struct {
	DataDir string `yaml:"data_dir"`
}

type Server struct {
	Port           int      `yaml:"port" validate:"min=1,max=65535"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// Proxy configures the upstream location-sentiment service.
type Proxy struct {
	UpstreamURL      string        `yaml:"upstream_url" validate:"omitempty,url"`
	Timeout          time.Duration `yaml:"timeout" validate:"min=0"`
	FailureThreshold uint32        `yaml:"failure_threshold" validate:"min=1"`
	MinRequests      uint32        `yaml:"min_requests"`
}

type Aggregation struct {
	LocationSentiment string `yaml:"location_sentiment" validate:"oneof=sum mean"`
	// PlaceRadius is the distance in metres within which visits count as
	// the same place.
	PlaceRadius float64 `yaml:"place_radius" validate:"gt=0"`
}

type Logging struct {
	Level string `yaml:"level" validate:"oneof=debug info warn error"`
}

// ConfigDir returns the XDG config directory for lifelens.
func ConfigDir() string {
	return filepath.Join(homeDir(), ".config", "lifelens")
}

// DataDir returns the XDG data directory for lifelens.
func DataDir() string {
	return filepath.Join(homeDir(), ".local", "share", "lifelens")
}

// ResolveConfigPath finds the config file following priority:
// explicit path > ~/.config/lifelens/config.yaml > ./config.yaml
func ResolveConfigPath(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file not found: %s", explicit)
		}
		return explicit, nil
	}

	xdgConfig := filepath.Join(ConfigDir(), "config.yaml")
	if _, err := os.Stat(xdgConfig); err == nil {
		return xdgConfig, nil
	}

	cwdConfig := "config.yaml"
	if _, err := os.Stat(cwdConfig); err == nil {
		return cwdConfig, nil
	}

	return "", fmt.Errorf(
		"no config file found; searched:\n  %s\n  ./config.yaml\n\nRun 'lifelens init' to create a default config",
		xdgConfig,
	)
}

// Load reads, parses and validates a config YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg, err := parse(data)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the embedded default configuration.
func Default() *Config {
	cfg, err := parse(DefaultConfigYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded default config: %v", err))
	}
	return cfg
}

// parse parses YAML bytes into a Config, applying defaults.
func parse(data []byte) (*Config, error) {
	cfg := &Config{
		Server: Server{
			Port:           8000,
			AllowedOrigins: []string{"http://localhost:8080"},
		},
		Proxy: Proxy{
			UpstreamURL:      "http://localhost:5000",
			Timeout:          10 * time.Second,
			FailureThreshold: 5,
			MinRequests:      3,
		},
		Aggregation: Aggregation{LocationSentiment: "sum", PlaceRadius: 150},
		Logging:     Logging{Level: "info"},
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.Logging.Level = strings.ToLower(cfg.Logging.Level)
	for i := range cfg.Sources.Feeds {
		if cfg.Sources.Feeds[i].Platform == "" {
			cfg.Sources.Feeds[i].Platform = "twitter"
		}
	}

	return cfg, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field rules and reports every violation in one error.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("invalid config: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

// GetDataDir returns the effective data directory from config or XDG default.
func (c *Config) GetDataDir() string {
	if c.Output.DataDir != "" {
		return c.Output.DataDir
	}
	return DataDir()
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Loader reads configuration from defaults, an optional YAML file and
// the environment, in that order of precedence (later wins).
type Loader struct {
	useDotEnv bool
	path      string
	lookupEnv func(string) (string, bool)
}

func NewLoader() *Loader {
	return &Loader{
		useDotEnv: true,
		lookupEnv: os.LookupEnv,
	}
}

// WithDotEnv toggles loading variables from a .env file before reading the environment.
func (l *Loader) WithDotEnv(enabled bool) *Loader {
	l.useDotEnv = enabled
	return l
}

// WithFile sets the YAML file to read. An empty path means no file.
func (l *Loader) WithFile(path string) *Loader {
	l.path = path
	return l
}

// WithEnv overrides the environment lookup (useful for tests).
func (l *Loader) WithEnv(lookup func(string) (string, bool)) *Loader {
	if lookup != nil {
		l.lookupEnv = lookup
	}
	return l
}

func (l *Loader) LoadClient() (*Client, error) {
	file, err := l.load()
	if err != nil {
		return nil, err
	}
	cfg := file.Client

	l.setString(&cfg.ServerURL, "FACEREC_SERVER")
	l.setString(&cfg.Endpoint, "FACEREC_ENDPOINT")
	l.setString(&cfg.LogLevel, "FACEREC_LOG_LEVEL")
	if err := l.setInt(&cfg.ImageSize, "FACEREC_IMAGE_SIZE"); err != nil {
		return nil, err
	}
	if err := l.setDuration(&cfg.Timeout, "FACEREC_TIMEOUT"); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (l *Loader) LoadServer() (*Server, error) {
	file, err := l.load()
	if err != nil {
		return nil, err
	}
	cfg := file.Server

	l.setString(&cfg.Port, "PORT")
	l.setString(&cfg.ModelPath, "FACEREC_MODEL_PATH")
	l.setString(&cfg.MetadataPath, "FACEREC_METADATA_PATH")
	l.setString(&cfg.LogLevel, "FACEREC_LOG_LEVEL")
	return &cfg, nil
}

func (l *Loader) load() (*File, error) {
	if l.useDotEnv {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load .env: %w", err)
		}
	}

	file := &File{
		Client: DefaultClient(),
		Server: DefaultServer(),
	}
	if l.path == "" {
		return file, nil
	}

	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, file); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", l.path, err)
	}
	return file, nil
}

func (l *Loader) setString(dst *string, key string) {
	if v, ok := l.lookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func (l *Loader) setInt(dst *int, key string) error {
	v, ok := l.lookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = n
	return nil
}

func (l *Loader) setDuration(dst *time.Duration, key string) error {
	v, ok := l.lookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = d
	return nil
}

package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Server contains HTTP listener settings.
type Server struct {
	Bind        string `toml:"bind"`
	PublicURL   string `toml:"public_url"`
	MaxUploadMB int    `toml:"max_upload_mb"`
}

// Session contains settings for per-browser merge sessions.
type Session struct {
	TTLMinutes int `toml:"ttl_minutes"`
}

// Merge paces merges across sessions.
type Merge struct {
	MinIntervalMS int `toml:"min_interval_ms"`
	Burst         int `toml:"burst"`
}

// Logging contains configuration for log output.
type Logging struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
	Dir    string `toml:"dir"`
}

// UI contains page settings.
type UI struct {
	Language string `toml:"language"`
}

// Config is the popmerge configuration. The canvas size and JPEG quality
// are fixed and deliberately absent.
type Config struct {
	Server  Server  `toml:"server"`
	Session Session `toml:"session"`
	Merge   Merge   `toml:"merge"`
	Logging Logging `toml:"logging"`
	UI      UI      `toml:"ui"`
}

// DefaultConfigPath returns the per-user configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/popmerge/config.toml")
}

// Load reads the configuration file if one exists, applies environment
// overrides, then normalizes and validates the result. It returns the
// resolved path and whether the file existed.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.applyEnv()

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}
	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		if _, err := os.Stat(expanded); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	projectPath, err := filepath.Abs("popmerge.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}
	return defaultPath, false, nil
}

// applyEnv lets the environment (or a .env file loaded earlier) override
// file values. PORT is honored for compatibility with PaaS-style launchers.
func (c *Config) applyEnv() {
	if port, ok := os.LookupEnv("PORT"); ok && strings.TrimSpace(port) != "" {
		host, _, err := net.SplitHostPort(c.Server.Bind)
		if err != nil {
			host = ""
		}
		c.Server.Bind = net.JoinHostPort(host, strings.TrimSpace(port))
	}
	if v, ok := os.LookupEnv("POPMERGE_BIND"); ok && strings.TrimSpace(v) != "" {
		c.Server.Bind = strings.TrimSpace(v)
	}
	if v, ok := os.LookupEnv("POPMERGE_PUBLIC_URL"); ok && strings.TrimSpace(v) != "" {
		c.Server.PublicURL = v
	}
	if v, ok := os.LookupEnv("POPMERGE_LOG_LEVEL"); ok && strings.TrimSpace(v) != "" {
		c.Logging.Level = v
	}
	if v, ok := os.LookupEnv("POPMERGE_LANGUAGE"); ok && strings.TrimSpace(v) != "" {
		c.UI.Language = v
	}
}

func (c *Config) normalize() error {
	c.Server.Bind = strings.TrimSpace(c.Server.Bind)
	c.Server.PublicURL = strings.TrimRight(strings.TrimSpace(c.Server.PublicURL), "/")
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	c.UI.Language = strings.ToLower(strings.TrimSpace(c.UI.Language))

	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	if strings.TrimSpace(c.Logging.Dir) != "" {
		dir, err := expandPath(c.Logging.Dir)
		if err != nil {
			return fmt.Errorf("logging.dir: %w", err)
		}
		c.Logging.Dir = dir
	}
	return nil
}

// MaxUploadBytes returns the per-image upload limit.
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.Server.MaxUploadMB) << 20
}

// SessionTTL returns the idle lifetime of a session.
func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.Session.TTLMinutes) * time.Minute
}

// MergeInterval returns the minimum spacing between merges.
func (c *Config) MergeInterval() time.Duration {
	return time.Duration(c.Merge.MinIntervalMS) * time.Millisecond
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	absolute, err := filepath.Abs(filepath.Clean(pathValue))
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", pathValue, err)
	}
	return absolute, nil
}

// CreateSample writes the sample configuration file to path.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

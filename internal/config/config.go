// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jonathan/cv-builder/internal/logger"
	"gopkg.in/yaml.v3"
)

// Artifact store kinds.
const (
	StoreFile  = "file"
	StoreMinIO = "minio"
)

// Config is the full runtime configuration. Values come from Defaults, then a JSON or YAML
// file, then the environment, then CLI flags.
type Config struct {
	Log logger.Config `json:"log" yaml:"log"`

	// Capture
	ChromePath     string   `json:"chrome_path,omitempty" yaml:"chrome_path"`         // Chrome binary; empty searches PATH
	CaptureScale   float64  `json:"capture_scale,omitempty" yaml:"capture_scale"`     // Device pixels per CSS pixel
	CaptureTimeout Duration `json:"capture_timeout,omitempty" yaml:"capture_timeout"` // e.g. "60s"

	// Artifacts
	OutputDir     string      `json:"output_dir,omitempty" yaml:"output_dir"`
	ArtifactStore string      `json:"artifact_store,omitempty" yaml:"artifact_store"` // file or minio
	MinIO         MinIOConfig `json:"minio" yaml:"minio"`

	// Sessions
	UserStoreDSN  string `json:"user_store_dsn,omitempty" yaml:"user_store_dsn"` // sqlite://path or postgres://...
	MaxPhotoBytes int64  `json:"max_photo_bytes,omitempty" yaml:"max_photo_bytes"`
	Port          int    `json:"port,omitempty" yaml:"port"`
}

// MinIOConfig holds the S3-compatible artifact store settings.
type MinIOConfig struct {
	Endpoint        string `json:"endpoint,omitempty" yaml:"endpoint"`
	AccessKeyID     string `json:"access_key_id,omitempty" yaml:"access_key_id"`
	SecretAccessKey string `json:"secret_access_key,omitempty" yaml:"secret_access_key"`
	UseSSL          bool   `json:"use_ssl,omitempty" yaml:"use_ssl"`
	Bucket          string `json:"bucket,omitempty" yaml:"bucket"`
	Location        string `json:"location,omitempty" yaml:"location"`
}

// Defaults returns the configuration used when nothing else is set.
func Defaults() Config {
	return Config{
		Log:            logger.Config{Level: "info", Format: "json"},
		CaptureScale:   2,
		CaptureTimeout: Duration{60 * time.Second},
		OutputDir:      ".",
		ArtifactStore:  StoreFile,
		MinIO:          MinIOConfig{Bucket: "cv-exports"},
		UserStoreDSN:   "sqlite://cv_builder.db",
		MaxPhotoBytes:  5 << 20,
		Port:           8080,
	}
}

// Load builds a Config from Defaults, the optional file at path and the environment, then
// validates it.
func Load(path string) (*Config, error) {
	cfg := Defaults()
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = *loaded
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadConfig reads a JSON or YAML file over Defaults. The format follows the extension:
// .yaml and .yml are YAML, anything else is JSON.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg := Defaults()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// ApplyEnv overlays environment variables onto c. Unset variables leave fields alone;
// malformed numbers are an error.
func (c *Config) ApplyEnv() error {
	c.Log.Level = getEnv("LOG_LEVEL", c.Log.Level)
	c.Log.Format = getEnv("LOG_FORMAT", c.Log.Format)
	c.ChromePath = getEnv("CHROME_PATH", c.ChromePath)
	c.OutputDir = getEnv("OUTPUT_DIR", c.OutputDir)
	c.ArtifactStore = getEnv("ARTIFACT_STORE", c.ArtifactStore)
	c.MinIO.Endpoint = getEnv("MINIO_ENDPOINT", c.MinIO.Endpoint)
	c.MinIO.AccessKeyID = getEnv("MINIO_ACCESS_KEY", c.MinIO.AccessKeyID)
	c.MinIO.SecretAccessKey = getEnv("MINIO_SECRET_KEY", c.MinIO.SecretAccessKey)
	c.MinIO.Bucket = getEnv("MINIO_BUCKET", c.MinIO.Bucket)
	c.MinIO.Location = getEnv("MINIO_LOCATION", c.MinIO.Location)
	c.UserStoreDSN = getEnv("USER_STORE_DSN", getEnv("DATABASE_URL", c.UserStoreDSN))

	var err error
	if c.CaptureScale, err = getEnvAsFloat("CAPTURE_SCALE", c.CaptureScale); err != nil {
		return err
	}
	if c.CaptureTimeout.Duration, err = getEnvAsDuration("CAPTURE_TIMEOUT", c.CaptureTimeout.Duration); err != nil {
		return err
	}
	if c.MaxPhotoBytes, err = getEnvAsInt64("MAX_PHOTO_BYTES", c.MaxPhotoBytes); err != nil {
		return err
	}
	port, err := getEnvAsInt64("PORT", int64(c.Port))
	if err != nil {
		return err
	}
	c.Port = int(port)
	if c.MinIO.UseSSL, err = getEnvAsBool("MINIO_USE_SSL", c.MinIO.UseSSL); err != nil {
		return err
	}
	return nil
}

// Validate checks that the configuration has usable values.
func (c *Config) Validate() error {
	if c.CaptureScale <= 0 || c.CaptureScale > 4 {
		return fmt.Errorf("config error: 'capture_scale' must be in (0, 4], got %g", c.CaptureScale)
	}
	if c.CaptureTimeout.Duration <= 0 {
		return fmt.Errorf("config error: 'capture_timeout' must be positive")
	}
	if c.MaxPhotoBytes <= 0 {
		return fmt.Errorf("config error: 'max_photo_bytes' must be positive")
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be 1-65535, got %d", c.Port)
	}
	switch c.Log.Format {
	case "", "json", "pretty":
	default:
		return fmt.Errorf("config error: 'log.format' must be json or pretty, got %q", c.Log.Format)
	}

	switch c.ArtifactStore {
	case StoreFile:
		if c.OutputDir == "" {
			return fmt.Errorf("config error: 'output_dir' is required for the file store")
		}
	case StoreMinIO:
		if c.MinIO.Endpoint == "" || c.MinIO.Bucket == "" {
			return fmt.Errorf("config error: 'minio.endpoint' and 'minio.bucket' are required for the minio store")
		}
	default:
		return fmt.Errorf("config error: unknown 'artifact_store' %q", c.ArtifactStore)
	}

	if c.UserStoreDSN == "" {
		return fmt.Errorf("config error: 'user_store_dsn' is required")
	}
	return nil
}

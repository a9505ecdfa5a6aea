// Package config loads stegtool settings from defaults, an optional YAML
// file and STEGTOOL_* environment variables, in that order of precedence.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/hasbyte1/go-stego-utils/imageio"
	"github.com/hasbyte1/go-stego-utils/kdf"
)

// ErrInvalidConfig is returned by [Config.Validate] and [Load].
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Environment variables that override file settings.
const (
	EnvLogLevel     = "STEGTOOL_LOG_LEVEL"
	EnvLogFormat    = "STEGTOOL_LOG_FORMAT"
	EnvOutputFormat = "STEGTOOL_OUTPUT_FORMAT"
	EnvKDF          = "STEGTOOL_KDF"

	// DefaultPasswordEnv names the variable read for the password when the
	// configuration does not name another.
	DefaultPasswordEnv = "STEGTOOL_PASSWORD"
)

// Key-derivation drivers selectable with [Config.KDF].
const (
	KDFPBKDF2   = "pbkdf2"
	KDFArgon2id = "argon2id"
)

// Config holds the CLI settings.  Key-derivation parameters belong to the
// token format and are not configurable; only the driver can be chosen.
type Config struct {
	// LogLevel is any level logrus.ParseLevel accepts.  Defaults to "warn".
	LogLevel string `yaml:"log_level"`

	// LogFormat is "text" (default) or "json".
	LogFormat string `yaml:"log_format"`

	// OutputFormat is used when an output path has no extension.  Must be
	// lossless: "png" (default), "bmp" or "tiff".
	OutputFormat string `yaml:"output_format"`

	// PasswordEnv names the environment variable holding the password.
	// When it is unset or empty the CLI prompts on the terminal.
	PasswordEnv string `yaml:"password_env"`

	// KDF selects the key-derivation driver: "pbkdf2" (default, readable by
	// any Fernet implementation) or "argon2id".  Hiding and revealing must
	// use the same driver.
	KDF string `yaml:"kdf"`
}

// DefaultConfig returns a [Config] populated with sensible defaults.
func DefaultConfig() Config {
	return Config{
		LogLevel:     "warn",
		LogFormat:    "text",
		OutputFormat: string(imageio.PNG),
		PasswordEnv:  DefaultPasswordEnv,
		KDF:          KDFPBKDF2,
	}
}

// Load returns the defaults overlaid with the YAML file at path (skipped
// when path is empty) and then the environment.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: %w", err)
		}
		if err := cfg.decode(data); err != nil {
			return Config{}, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
		}
	}
	cfg.applyEnv(os.LookupEnv)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) decode(data []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	set := func(dst *string, key string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	set(&c.LogLevel, EnvLogLevel)
	set(&c.LogFormat, EnvLogFormat)
	set(&c.OutputFormat, EnvOutputFormat)
	set(&c.KDF, EnvKDF)
}

// Validate checks every field.
func (c Config) Validate() error {
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log_level: %v", ErrInvalidConfig, err)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log_format %q: want text or json", ErrInvalidConfig, c.LogFormat)
	}
	f, err := imageio.ParseFormat(c.OutputFormat)
	if err != nil {
		return fmt.Errorf("%w: output_format: %v", ErrInvalidConfig, err)
	}
	if !f.Lossless() {
		return fmt.Errorf("%w: output_format %q is lossy", ErrInvalidConfig, c.OutputFormat)
	}
	if c.PasswordEnv == "" {
		return fmt.Errorf("%w: password_env is empty", ErrInvalidConfig)
	}
	if _, err := c.Deriver(); err != nil {
		return err
	}
	return nil
}

// Deriver returns the key-derivation driver named by KDF.
func (c Config) Deriver() (kdf.Deriver, error) {
	switch strings.ToLower(c.KDF) {
	case KDFPBKDF2:
		return kdf.Default(), nil
	case KDFArgon2id:
		return kdf.NewArgon2idDeriver(kdf.DefaultArgon2Options())
	default:
		return nil, fmt.Errorf("%w: kdf %q: want %s or %s", ErrInvalidConfig, c.KDF, KDFPBKDF2, KDFArgon2id)
	}
}

// Format returns the parsed output format.  Call [Config.Validate] first.
func (c Config) Format() imageio.Format {
	f, _ := imageio.ParseFormat(c.OutputFormat)
	return f
}

// NewLogger builds a logger writing to w at the configured level and format.
func (c Config) NewLogger(w io.Writer) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("%w: log_level: %v", ErrInvalidConfig, err)
	}
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(level)
	if strings.EqualFold(c.LogFormat, "json") {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	}
	return l, nil
}

// Password returns the password from the configured environment variable.
func (c Config) Password() (string, bool) {
	v, ok := os.LookupEnv(c.PasswordEnv)
	return v, ok && v != ""
}

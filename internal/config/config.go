// Package config loads tesseract settings from flags, environment, .env
// files and an optional YAML config file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	configName = "config"
	envPrefix  = "TESSERACT"
	dirName    = ".tesseract"
)

// Defaults
const (
	DefaultAPIURL     = "http://localhost:5000"
	DefaultAPITimeout = 30 * time.Second
	DefaultLogLevel   = "warn"
	DefaultLogFormat  = "text"
)

// Config represents the resolved tesseract configuration
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Storage StorageConfig `mapstructure:"storage"`
	Log     LogConfig     `mapstructure:"log"`

	// File is the config file that was read, empty when none was found.
	File string `mapstructure:"-"`
}

// APIConfig configures the missions backend.
type APIConfig struct {
	URL     string        `mapstructure:"url" validate:"required,url"`
	Timeout time.Duration `mapstructure:"timeout" validate:"gte=0"` // 0 disables the deadline
}

// StorageConfig configures local storage.
type StorageConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

// LogConfig configures diagnostic logging on stderr.
type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=text json"`
}

// Options selects the files Load reads. Empty fields use the defaults.
type Options struct {
	ConfigFile string // explicit config file, must exist when set
	EnvFile    string // dotenv file, default ".env"; missing files are ignored
}

var validate = validator.New()

// Dir returns the tesseract home directory, ~/.tesseract.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, dirName), nil
}

// Load resolves the configuration. Precedence, highest first: TESSERACT_*
// environment variables (including those set by the dotenv file), the
// config file, built-in defaults.
func Load(opts Options) (*Config, error) {
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	// Load .env file first if present
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read %s: %w", envFile, err)
	}

	dir, err := Dir()
	if err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetEnvPrefix(envPrefix)                          // e.g., TESSERACT_API_URL
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // api.url -> API_URL
	v.AutomaticEnv()

	v.SetDefault("api.url", DefaultAPIURL)
	v.SetDefault("api.timeout", DefaultAPITimeout)
	v.SetDefault("storage.path", filepath.Join(dir, "tesseract.db"))
	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("log.format", DefaultLogFormat)

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
	} else {
		v.AddConfigPath(dir)
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if opts.ConfigFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()
	cfg.Log.Level = strings.ToLower(cfg.Log.Level)
	cfg.Log.Format = strings.ToLower(cfg.Log.Format)
	cfg.Storage.Path = expandHome(cfg.Storage.Path, filepath.Dir(dir))

	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// WriteDefault writes a config file holding the built-in defaults to path.
// It refuses to overwrite an existing file.
func WriteDefault(path string) error {
	dir, err := Dir()
	if err != nil {
		return err
	}

	v := viper.New()
	v.Set("api.url", DefaultAPIURL)
	v.Set("api.timeout", DefaultAPITimeout.String())
	v.Set("storage.path", filepath.Join(dir, "tesseract.db"))
	v.Set("log.level", DefaultLogLevel)
	v.Set("log.format", DefaultLogFormat)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := v.SafeWriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// DefaultFile returns the config file searched when no --config flag is given.
func DefaultFile() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configName+".yaml"), nil
}

func expandHome(path, home string) string {
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	return path
}

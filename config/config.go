package config

import (
	"errors"
	"strings"

	"github.com/spanworks/nerd/internal"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// We're bootstrapping so avoid any imports from other packages
var log = logrus.New()

// Defaults match the reference deployment. All of these may be
// overridden via config file or NERD_* environment variables.
const (
	DefaultServerHost    = "0.0.0.0"
	DefaultServerPort    = 8000
	DefaultModelName     = "en-core-web-sm"
	DefaultMaxTextLength = 100000
	DefaultLogLevel      = "info"
)

// LoadConfig loads the config file and ENV variables into a Config struct
func LoadConfig(configFile string) (*Config, error) {
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetConfigType("yaml")

	viper.SetEnvPrefix("NERD")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		// A config file is optional; ENV and defaults suffice.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	// Environment variables take precedence over config file
	loadDotEnv()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("server.host", DefaultServerHost)
	viper.SetDefault("server.port", DefaultServerPort)
	viper.SetDefault("model.name", DefaultModelName)
	// An explicit empty default so AutomaticEnv picks up NERD_MODEL_PATH
	// during Unmarshal.
	viper.SetDefault("model.path", "")
	viper.SetDefault("model.max_text_length", DefaultMaxTextLength)
	viper.SetDefault("model.preload", true)
	viper.SetDefault("log.level", DefaultLogLevel)
}

// loadDotEnv loads environment variables from .env file
func loadDotEnv() {
	err := godotenv.Load()
	if err != nil {
		log.Debug(".env file not found or unable to load")
	}
}

// SetLogLevel sets the log level based on the config file. Defaults to INFO if not set or invalid
func SetLogLevel(cfg *Config) {
	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	internal.SetLogLevel(level)
	log.Info("Log level set to: ", level)
}

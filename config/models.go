package config

// Config holds the configuration of the application
// Use config.LoadConfig to create a new instance
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Model  ModelConfig  `mapstructure:"model"`
	Log    LogConfig    `mapstructure:"log"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// ModelConfig configures the NER model loaded by the extractor.
// Path, when set, points at a custom model directory produced by the
// trainer and takes precedence over the builtin model.
type ModelConfig struct {
	Name          string `mapstructure:"name"`
	Path          string `mapstructure:"path"`
	MaxTextLength int    `mapstructure:"max_text_length"`
	Preload       bool   `mapstructure:"preload"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

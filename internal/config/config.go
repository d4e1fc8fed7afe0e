// Package config loads runtime settings from configs/config.yml, the
// environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides, e.g. LEAFDOCTOR_MODEL_PATH.
const EnvPrefix = "LEAFDOCTOR"

// Config holds runtime settings for the server.
type Config struct {
	Port       string           `mapstructure:"port"`
	ClassNames string           `mapstructure:"class_names"`
	Log        LogConfig        `mapstructure:"log"`
	Model      ModelConfig      `mapstructure:"model"`
	Static     StaticConfig     `mapstructure:"static"`
	Preprocess PreprocessConfig `mapstructure:"preprocess"`
	Auth       AuthConfig       `mapstructure:"auth"`
	Upload     UploadConfig     `mapstructure:"upload"`
	Server     ServerConfig     `mapstructure:"server"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type ModelConfig struct {
	Path          string `mapstructure:"path"`
	SharedLibrary string `mapstructure:"shared_library"`
}

type StaticConfig struct {
	Dir string `mapstructure:"dir"`
}

type PreprocessConfig struct {
	Interpolation string `mapstructure:"interpolation"`
}

type AuthConfig struct {
	PasswordHasher string `mapstructure:"password_hasher"`
}

type UploadConfig struct {
	MaxMemoryBytes int64 `mapstructure:"max_memory_bytes"`
}

type ServerConfig struct {
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("class_names", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("model.path", "models/model.onnx")
	v.SetDefault("model.shared_library", "")
	v.SetDefault("static.dir", "static")
	v.SetDefault("preprocess.interpolation", "nearest")
	v.SetDefault("auth.password_hasher", "sha256")
	v.SetDefault("upload.max_memory_bytes", 32<<20)
	v.SetDefault("server.read_header_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 60*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
}

// LoadDotEnv loads .env into the process environment unless APP_ENV is
// "production". It reports whether a file was loaded.
func LoadDotEnv(files ...string) bool {
	if os.Getenv("APP_ENV") == "production" {
		return false
	}
	return godotenv.Load(files...) == nil
}

// Load reads config.yml from dir (a missing file is not an error), then
// applies environment overrides. CLASS_NAMES and PORT are honoured without
// the prefix.
func Load(dir string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("class_names", EnvPrefix+"_CLASS_NAMES", "CLASS_NAMES"); err != nil {
		return nil, fmt.Errorf("bind CLASS_NAMES: %w", err)
	}
	if err := v.BindEnv("port", EnvPrefix+"_PORT", "PORT"); err != nil {
		return nil, fmt.Errorf("bind PORT: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &cfg, nil
}

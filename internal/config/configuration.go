package config

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	// HTTP Configuration
	ListenAddr string `mapstructure:"LISTEN_ADDR"`

	// Storage Configuration
	DataDir string `mapstructure:"DATA_DIR" validate:"required"`

	// Render Configuration
	RenderWorkers int    `mapstructure:"RENDER_WORKERS" validate:"min=1,max=16"`
	OutputWidth   int    `mapstructure:"OUTPUT_WIDTH"`
	OutputHeight  int    `mapstructure:"OUTPUT_HEIGHT"`
	DefaultFormat string `mapstructure:"DEFAULT_FORMAT" validate:"oneof=mp4 webm gif"`

	// Extension Configuration
	ExtensionAllowedIDs string `mapstructure:"EXTENSION_ALLOWED_IDS"`

	// Encryption Configuration (64-char hex = 32 bytes)
	EncryptionKey    string `mapstructure:"ENCRYPTION_KEY" validate:"omitempty,len=64,hexadecimal"`
	EncryptionCipher string `mapstructure:"ENCRYPTION_CIPHER"`

	// S3 publish target (optional; local-only when bucket is empty)
	S3Bucket          string `mapstructure:"S3_BUCKET"`
	S3Region          string `mapstructure:"S3_REGION"`
	S3Endpoint        string `mapstructure:"S3_ENDPOINT"`
	S3AccessKeyID     string `mapstructure:"S3_ACCESS_KEY_ID"`
	S3SecretAccessKey string `mapstructure:"S3_SECRET_ACCESS_KEY"`

	// Logging
	LogLevel string `mapstructure:"LOG_LEVEL" validate:"oneof=debug info warn error"`
}

// use reflect to bind environment variables based on mapstructure tags
func bindEnv(c Config) {
	val := reflect.ValueOf(c)
	typ := val.Type()

	for i := 0; i < val.NumField(); i++ {
		field := typ.Field(i)
		fieldVal := val.Field(i)
		tag := field.Tag.Get("mapstructure")

		if tag != "" {
			viper.BindEnv(tag)
		}

		// Handle nested structs
		if field.Type.Kind() == reflect.Struct && tag == "" {
			nestedTyp := fieldVal.Type()
			for j := 0; j < fieldVal.NumField(); j++ {
				nestedField := nestedTyp.Field(j)
				nestedTag := nestedField.Tag.Get("mapstructure")
				if nestedTag != "" {
					viper.BindEnv(nestedTag)
				}
			}
		}
	}
	slog.Debug("Environment variables bound")
}

func LoadConfig(ctx context.Context) (*Config, error) {
	bindEnv(Config{})
	viper.AutomaticEnv()

	// Defaults
	viper.SetDefault("LISTEN_ADDR", "127.0.0.1:8750")
	viper.SetDefault("RENDER_WORKERS", 2)
	viper.SetDefault("OUTPUT_WIDTH", 1080)
	viper.SetDefault("OUTPUT_HEIGHT", 1920)
	viper.SetDefault("DEFAULT_FORMAT", "mp4")
	viper.SetDefault("ENCRYPTION_CIPHER", "chacha20-poly1305")
	viper.SetDefault("LOG_LEVEL", "info")

	cfg := Config{}
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	slog.Info("Loaded configuration",
		"listen_addr", cfg.ListenAddr,
		"data_dir", cfg.DataDir,
		"render_workers", cfg.RenderWorkers,
		"default_format", cfg.DefaultFormat,
		"s3_bucket", cfg.S3Bucket,
	)

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

// S3Enabled reports whether exports should also be published to S3.
func (c *Config) S3Enabled() bool {
	return c.S3Bucket != ""
}

package config

import (
	"context"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Success_Defaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	t.Setenv("DATA_DIR", "/var/lib/clipstudio")

	cfg, err := LoadConfig(context.Background())
	require.NoError(t, err)
	require.NotNil(t, cfg)
	require.Equal(t, "127.0.0.1:8750", cfg.ListenAddr)
	require.Equal(t, "/var/lib/clipstudio", cfg.DataDir)
	require.Equal(t, 2, cfg.RenderWorkers) // default
	require.Equal(t, 1080, cfg.OutputWidth)
	require.Equal(t, 1920, cfg.OutputHeight)
	require.Equal(t, "mp4", cfg.DefaultFormat)
	require.Equal(t, "info", cfg.LogLevel)
	require.False(t, cfg.S3Enabled())
}

func TestLoadConfig_ValidationError(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	// Missing DATA_DIR
	t.Setenv("LISTEN_ADDR", "127.0.0.1:9000")

	cfg, err := LoadConfig(context.Background())
	require.Error(t, err)
	require.Nil(t, cfg)
}

func TestLoadConfig_Overrides(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	t.Setenv("DATA_DIR", "/tmp/studio")
	t.Setenv("RENDER_WORKERS", "4")
	t.Setenv("DEFAULT_FORMAT", "webm")
	t.Setenv("S3_BUCKET", "clips")

	cfg, err := LoadConfig(context.Background())
	require.NoError(t, err)
	require.NotNil(t, cfg)
	require.Equal(t, 4, cfg.RenderWorkers)
	require.Equal(t, "webm", cfg.DefaultFormat)
	require.True(t, cfg.S3Enabled())
}

func TestLoadConfig_RejectsBadFormat(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	t.Setenv("DATA_DIR", "/tmp/studio")
	t.Setenv("DEFAULT_FORMAT", "avi")

	_, err := LoadConfig(context.Background())
	require.Error(t, err)
}

func TestLoadConfig_RejectsBadEncryptionKey(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	t.Setenv("DATA_DIR", "/tmp/studio")
	t.Setenv("ENCRYPTION_KEY", "tooshort")

	_, err := LoadConfig(context.Background())
	require.Error(t, err)
}

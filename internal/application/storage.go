package application

import (
	"path/filepath"

	"thirdcoast.systems/clipstudio/internal/config"
	"thirdcoast.systems/clipstudio/internal/storage"
)

// InitStorage builds the export storage backend: local disk always, wrapped
// with S3 publishing when a bucket is configured.
func InitStorage(conf *config.Config) (storage.Storage, error) {
	if !conf.S3Enabled() {
		return storage.NewLocalStorage(conf.DataDir)
	}
	return storage.NewS3Storage(conf.DataDir, storage.S3Config{
		Bucket:          conf.S3Bucket,
		Region:          conf.S3Region,
		Endpoint:        conf.S3Endpoint,
		AccessKeyID:     conf.S3AccessKeyID,
		SecretAccessKey: conf.S3SecretAccessKey,
	})
}

// DatabasePath returns the sqlite catalog location under the data dir.
func DatabasePath(conf *config.Config) string {
	return filepath.Join(conf.DataDir, "clipstudio.db")
}

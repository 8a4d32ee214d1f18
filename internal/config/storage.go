package config

import (
	"os"
	"strings"
	"sync"
)

const (
	BackendSupabase = "supabase"
	BackendPostgres = "postgres"
	BackendLocal    = "local"
)

// StorageConfig selects where rows and uploaded files live.
type StorageConfig struct {
	DataBackend   string
	FileBackend   string
	LocalDir      string
	SigningSecret string
}

var (
	storageConfig *StorageConfig
	storageOnce   sync.Once
)

func LoadStorageConfig() *StorageConfig {
	storageOnce.Do(func() {
		storageConfig = &StorageConfig{
			DataBackend:   strings.ToLower(envOrDefault("DATA_BACKEND", BackendSupabase)),
			FileBackend:   strings.ToLower(envOrDefault("FILE_BACKEND", BackendSupabase)),
			LocalDir:      envOrDefault("LOCAL_STORAGE_DIR", "./uploads"),
			SigningSecret: os.Getenv("FILE_SIGNING_SECRET"),
		}
	})
	return storageConfig
}

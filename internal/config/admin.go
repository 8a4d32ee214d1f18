package config

import (
	"os"
	"sync"
)

type AdminConfig struct {
	Password   string
	CookieName string
}

var (
	adminConfig *AdminConfig
	adminOnce   sync.Once
)

func LoadAdminConfig() *AdminConfig {
	adminOnce.Do(func() {
		adminConfig = &AdminConfig{
			Password:   os.Getenv("ADMIN_PASSWORD"),
			CookieName: envOrDefault("ADMIN_COOKIE_NAME", "admin_session"),
		}
	})
	return adminConfig
}

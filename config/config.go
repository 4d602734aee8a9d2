package config

import (
	"fmt"
	"os"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// EditPolicy controls who may update or delete an event.
const (
	EditPolicyCreator = "creator" // only the event creator (default)
	EditPolicyFamily  = "family"  // any family member
)

type Config struct {
	Port          string
	AllowedOrigin string
	// ReminderCron is the schedule for the daily reminder run.
	ReminderCron string
	EditPolicy   string
}

func Load() *Config {
	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		AllowedOrigin: getEnv("ALLOWED_ORIGIN", "http://localhost:3000"),
		ReminderCron:  getEnv("REMINDER_CRON", "0 9 * * *"),
		EditPolicy:    getEnv("EVENT_EDIT_POLICY", EditPolicyCreator),
	}
	if cfg.EditPolicy != EditPolicyCreator && cfg.EditPolicy != EditPolicyFamily {
		cfg.EditPolicy = EditPolicyCreator
	}
	return cfg
}

// InitDB opens the database connection. DB_DRIVER selects mysql (DSN built
// from DB_* vars) or sqlite (file at DB_PATH). Sqlite is the default so a
// fresh checkout runs without any setup.
func InitDB() (*gorm.DB, error) {
	driver := getEnv("DB_DRIVER", "sqlite")

	switch driver {
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			os.Getenv("DB_USER"),
			os.Getenv("DB_PASSWORD"),
			getEnv("DB_HOST", "127.0.0.1"),
			getEnv("DB_PORT", "3306"),
			getEnv("DB_NAME", "family_reminder"),
		)
		return gorm.Open(mysql.Open(dsn), &gorm.Config{})
	case "sqlite":
		return gorm.Open(sqlite.Open(getEnv("DB_PATH", "family.db")), &gorm.Config{})
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER: %s", driver)
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

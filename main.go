package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/famly-app/family-reminder/config"
	"github.com/famly-app/family-reminder/models"
	"github.com/famly-app/family-reminder/router"
	"github.com/famly-app/family-reminder/services"
	"github.com/famly-app/family-reminder/utils"
	"gorm.io/gorm"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading: %v", err)
	}

	utils.InitLogger()
}

func main() {
	cfg := config.Load()

	db, err := config.InitDB()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	autoMigrate(db)

	reminders := services.NewReminderService(db)

	// Daily reminder run; the manual /api/notifications/generate endpoint
	// calls the same generator.
	scheduler := services.NewReminderScheduler(reminders, cfg.ReminderCron)
	if err := scheduler.Start(); err != nil {
		utils.ErrorLogger.Fatalf("Failed to start reminder scheduler: %v", err)
	}
	defer scheduler.Stop()

	r := router.SetupRouter(db, reminders, cfg)

	r.SetTrustedProxies([]string{"127.0.0.1", "localhost"})

	utils.InfoLogger.Printf("Listening on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}

func autoMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.User{},
		&models.Event{},
		&models.Notification{},
	)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}
	utils.InfoLogger.Println("AutoMigrate completed.")
}

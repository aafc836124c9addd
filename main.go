package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/printdesk/printdesk/cache"
	"github.com/printdesk/printdesk/config"
	"github.com/printdesk/printdesk/database"
	"github.com/printdesk/printdesk/events"
	"github.com/printdesk/printdesk/models"
	"github.com/printdesk/printdesk/router"
	"github.com/printdesk/printdesk/services"
	"github.com/printdesk/printdesk/store"
	"github.com/printdesk/printdesk/utils"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}
	utils.InitLogger()
}

func main() {
	db, err := config.InitDB()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	autoMigrate(db)

	ctx := context.Background()
	remote := store.NewGorm(db)
	hub := events.NewHub()
	dataCache := cache.New(remote, hub)

	database.Seed(ctx, remote, "")
	dataCache.Load(ctx)

	refresher := services.NewCacheRefresher(dataCache, 5*time.Minute)
	refresher.Start()
	defer refresher.Stop()

	r := router.SetupRouter(db, dataCache, remote, hub)
	r.SetTrustedProxies([]string{"127.0.0.1", "localhost"})

	port := config.Port()
	utils.InfoLogger.Printf("Listening on port %s", port)
	if err := r.Run(":" + port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}

func autoMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.User{},
		&models.Settings{},
		&models.Customer{},
		&models.Order{},
		&models.InventoryItem{},
		&models.Invoice{},
		&models.Enquiry{},
		&models.Service{},
		&models.PortfolioItem{},
	)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}
	utils.InfoLogger.Println("AutoMigrate completed.")
}

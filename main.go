package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"achievement-review-system/config"
	"achievement-review-system/handlers"
	"achievement-review-system/models"
	"achievement-review-system/repository"
	"achievement-review-system/services"
	"achievement-review-system/storage"
	"achievement-review-system/utils"
	"achievement-review-system/workers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	cfg := config.Load()

	app := fiber.New(fiber.Config{
		// Certificates cap at 5MB; leave headroom for multipart framing and
		// the metadata fields.
		BodyLimit: 8 * 1024 * 1024,
	})

	app.Use(logger.New())
	app.Use(recover.New())

	allowedOriginsList := strings.Split(cfg.AllowedOrigins, ",")
	for i, origin := range allowedOriginsList {
		allowedOriginsList[i] = strings.TrimSpace(origin)
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(allowedOriginsList, ","),
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		// Needed so the unique-email violation surfaces as ErrDuplicatedKey.
		TranslateError: true,
	})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Achievement{},
	); err != nil {
		log.Fatal("failed to migrate database:", err)
	}

	blobs, err := buildBlobStore(cfg)
	if err != nil {
		log.Fatal("failed to initialize blob store:", err)
	}

	userRepo := repository.NewUserRepository(db)
	achievementRepo := repository.NewAchievementRepository(db)

	tokens := utils.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)
	authService := services.NewAuthService(userRepo, tokens)
	achievementService := services.NewAchievementService(achievementRepo, blobs)
	analyticsService := services.NewAnalyticsService(achievementRepo)

	handlers.SetupAuthRoutes(app, authService, tokens, userRepo)
	handlers.SetupAchievementRoutes(app, achievementService, analyticsService, tokens, userRepo)

	app.Get("/api/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	if cfg.StorageDriver == "local" {
		app.Static("/uploads", cfg.UploadDir)
	}

	reaper := workers.NewCertificateReaper(achievementRepo, blobs, cfg.ReaperInterval, cfg.ReaperMinAge)
	if err := reaper.Start(); err != nil {
		log.Fatal("failed to start certificate reaper:", err)
	}
	defer reaper.Stop()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := app.Listen(":" + cfg.AppPort); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("✅ Server running on http://localhost:%s", cfg.AppPort)
	log.Printf("✅ Blob storage driver: %s", cfg.StorageDriver)
	log.Printf("✅ Certificate reaper running (every %s, min age %s)", cfg.ReaperInterval, cfg.ReaperMinAge)

	<-ctx.Done()
	log.Println("Shutting down server...")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}

func buildBlobStore(cfg *config.Config) (storage.BlobStore, error) {
	switch cfg.StorageDriver {
	case "s3":
		return storage.NewS3Store(context.Background(), storage.S3Config{
			AccountID:       cfg.S3AccountID,
			AccessKeyID:     cfg.S3AccessKeyID,
			AccessKeySecret: cfg.S3AccessKeySecret,
			Bucket:          cfg.S3Bucket,
			CDNBaseURL:      cfg.CDNBaseURL,
		})
	default:
		return storage.NewLocalStore(cfg.UploadDir, cfg.PublicBaseURL)
	}
}

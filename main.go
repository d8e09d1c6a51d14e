package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"competition-service/config"
	"competition-service/engines"
	"competition-service/handlers"
	"competition-service/middleware"
	"competition-service/models"
	"competition-service/services"
	"competition-service/utils"
	"competition-service/workers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("failed to load configuration: ", err)
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 32 * 1024 * 1024, // photos only, nothing huge
	})

	// 🔐 GLOBAL: only gateway-forwarded requests are accepted
	app.Use(middleware.GatewayAuthMiddleware(cfg.ServiceToken))

	allowedOrigins := make([]string, 0)
	for _, origin := range strings.Split(cfg.AllowedOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			allowedOrigins = append(allowedOrigins, origin)
		}
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(allowedOrigins, ","),
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH,HEAD",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With, X-Request-ID, X-User-ID, X-User-Roles, X-Service-Token",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect to database: ", err)
	}

	if err := db.AutoMigrate(
		&models.Location{},
		&models.Tournament{},
		&models.TournamentRules{},
		&models.TournamentParticipant{},
		&models.TournamentPhoto{},
		&models.Match{},
		&models.MatchParticipant{},
		&models.MatchPart{},
		&models.MatchEvent{},
		&models.PlayerProfile{},
	); err != nil {
		log.Fatal("failed to migrate database: ", err)
	}

	uploadsEnabled := cfg.StorageConfigured()
	if uploadsEnabled {
		if err := utils.InitStorage(cfg.StorageAccountID, cfg.StorageAccessKey, cfg.StorageAccessSecret, cfg.StorageBucket, cfg.CDNBaseURL); err != nil {
			log.Fatal("failed to initialize object storage: ", err)
		}
	} else {
		log.Println("⚠️  Object storage not configured — photo upload disabled")
	}

	registry := engines.Default()
	matchService := services.NewMatchService(db, registry)
	tournamentService := services.NewTournamentService(db)
	participantService := services.NewParticipantService(db)
	locationService := services.NewLocationService(db)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.PlatformServiceURL != "" {
		syncWorker := workers.NewProfileSyncWorker(db, cfg.PlatformServiceURL, cfg.PlatformServicePath, cfg.ServiceToken)
		syncWorker.Start(ctx)
	} else {
		log.Println("⚠️  PLATFORM_SERVICE_URL not set — player profile sync disabled")
	}

	tournamentService.StartStatusScheduler()

	handlers.SetupMatchRoutes(app, matchService)
	handlers.SetupTournamentRoutes(app, tournamentService, participantService, uploadsEnabled)
	handlers.SetupLocationRoutes(app, locationService)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("✅ Competition service running on http://localhost:%s", cfg.Port)
	log.Printf("✅ Scoring engines registered: badminton")
	log.Println("✅ Gateway auth enforced globally — all requests must come from the gateway")

	<-ctx.Done()
	log.Println("Shutting down server...")
	_ = app.Shutdown()
}

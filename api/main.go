package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/terminalhome/ims-backend/internal/alerts"
	"github.com/terminalhome/ims-backend/internal/auth"
	"github.com/terminalhome/ims-backend/internal/config"
	"github.com/terminalhome/ims-backend/internal/db"
	"github.com/terminalhome/ims-backend/internal/forecast"
	ihttp "github.com/terminalhome/ims-backend/internal/http"
	"github.com/terminalhome/ims-backend/internal/http/handlers"
	rl "github.com/terminalhome/ims-backend/internal/http/rate_limiter"
	"github.com/terminalhome/ims-backend/internal/ledger"
	"github.com/terminalhome/ims-backend/internal/notify"
	"github.com/terminalhome/ims-backend/internal/redissvc"
	"github.com/terminalhome/ims-backend/internal/reorder"
	"github.com/terminalhome/ims-backend/internal/repo"
)

// @title Inventory Stock Ledger API
// @version 1.0
// @description REST API for inventory stock movements, reorder alerting and demand forecasting.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Could not load configuration: %v", err)
	}
	auth.SetSecret(cfg.JWTSecret)

	ctx := context.Background()
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("Could not connect to Redis: %v", err)
	}
	defer rdb.Close()

	redisService := redissvc.NewRedisService(rdb, ctx)
	handlers.SetRedisService(redisService)

	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("❌ Could not connect to database:", err)
	}
	defer database.Close()

	inventoryRepo := repo.NewPostgresInventoryRepository(database)
	movementRepo := repo.NewPostgresMovementRepository(database)
	alertRepo := repo.NewPostgresAlertRepository(database)
	ruleRepo := repo.NewPostgresRuleRepository(database)
	forecastRepo := repo.NewPostgresForecastRepository(database)
	orderRepo := repo.NewPostgresOrderRepository(database)

	alertEngine := alerts.NewEngine(alertRepo)
	digest := notify.NewDigest(redisService, notify.SMTPSettings{
		From:         cfg.AlertFrom,
		To:           cfg.AlertTo,
		Server:       cfg.SMTPServer,
		Port:         cfg.SMTPPort,
		User:         cfg.SMTPUser,
		Password:     cfg.SMTPPassword,
		AuthDisabled: cfg.SMTPAuthDisabled,
	})
	alertEngine.SetNotifier(digest)

	var forecaster forecast.Forecaster
	if cfg.OpenAIAPIKey != "" {
		forecaster = forecast.NewOpenAIForecaster(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	} else {
		log.Println("⚠️ OPENAI_API_KEY not set, forecasts will use the statistical fallback")
	}

	handlers.SetInventoryRepo(inventoryRepo)
	handlers.SetMovementRepo(movementRepo)
	handlers.SetStatsRepo(repo.NewPostgresStatsRepository(database))
	handlers.SetUserRepo(repo.NewPostgresUserRepository(database))
	handlers.SetLedger(ledger.New(movementRepo, alertEngine))
	handlers.SetAlertEngine(alertEngine)
	handlers.SetAdvisor(reorder.NewAdvisor(inventoryRepo, ruleRepo, alertEngine))
	handlers.SetOrchestrator(forecast.NewOrchestrator(inventoryRepo, orderRepo, forecastRepo, forecaster, cfg.ForecastTimeout))

	go digest.StartDailyDigestLoop(24 * time.Hour)
	go rl.StartVisitorCleanupLoop()

	r := ihttp.NewRouter()
	log.Printf("✅ Server running on %s", cfg.HTTPAddr)
	if err := http.ListenAndServe(cfg.HTTPAddr, r); err != nil {
		log.Fatal(err)
	}
}

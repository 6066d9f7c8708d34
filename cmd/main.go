package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"complaintdesk/backend/internal/api/handler"
	"complaintdesk/backend/internal/auth"
	"complaintdesk/backend/internal/cache"
	"complaintdesk/backend/internal/config"
	"complaintdesk/backend/internal/feed"
	"complaintdesk/backend/internal/hub"
	"complaintdesk/backend/internal/localization"
	"complaintdesk/backend/internal/models"
	"complaintdesk/backend/internal/storage"
	"complaintdesk/backend/internal/telegram"
)

func setupDependencies(cfg config.Config) (*gorm.DB, *redis.Client) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect PostgreSQL: %v", err)
	}

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Fatalf("Failed to connect Redis: %v", err)
		}
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Response{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Database connections established, migrations complete.")
	return db, rdb
}

func main() {
	log.Println("Starting Complaint Desk backend...")

	cfg := config.Load()
	db, rdb := setupDependencies(cfg)
	s := storage.NewStorageService(db, rdb)

	var store cache.Store
	if rdb != nil {
		store = cache.NewRedisStore(rdb)
	} else {
		log.Println("Warning: REDIS_ADDR not set, snapshot cache is in-memory only")
		store = cache.NewMemoryStore()
	}

	localizer, err := localization.NewLocalizer("internal/localization/locales")
	if err != nil {
		log.Fatalf("Failed to load localization: %v", err)
	}

	pushHub := hub.NewService()
	go pushHub.Run()

	syncer := feed.NewSyncer(feed.NewClient(cfg.FeedURL), store, s)
	syncer.Hub = pushHub

	if cfg.TelegramBotToken != "" && cfg.TelegramChatID != 0 {
		notifier, err := telegram.NewNotifierService(cfg.TelegramBotToken, cfg.TelegramChatID, localizer)
		if err != nil {
			log.Printf("Warning: Telegram notifier disabled: %v", err)
		} else {
			syncer.Notifier = notifier
		}
	}

	jwtSvc := auth.NewJWT(cfg.JWTSecret)
	verifier := auth.NewVerifier(s)
	h := handler.NewHandler(s, syncer, pushHub, jwtSvc, verifier, localizer)

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.POST("/auth/login", h.Login)
	r.GET("/ws", h.ServeWebSocket)

	authed := r.Group("/", handler.RequireAuth(jwtSvc))
	authed.GET("/complaints", h.ListComplaints)
	authed.POST("/complaints/refresh", h.RefreshComplaints)
	authed.GET("/complaints/:id/responses", h.ListResponses)
	authed.POST("/complaints/:id/responses", h.CreateResponse)
	authed.GET("/categories", h.ListCategories)

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	log.Printf("Listening on %s", cfg.HTTPAddr)
	log.Fatal(server.ListenAndServe())
}

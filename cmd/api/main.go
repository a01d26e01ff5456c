// server/cmd/api/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pr-tracker-api-server/config"
	"pr-tracker-api-server/internal/api/handlers"
	"pr-tracker-api-server/internal/api/routes"
	"pr-tracker-api-server/internal/auth"
	"pr-tracker-api-server/internal/cache"
	"pr-tracker-api-server/internal/database"
	"pr-tracker-api-server/internal/feed"
	"pr-tracker-api-server/internal/logger"
	"pr-tracker-api-server/internal/mirror"
	"pr-tracker-api-server/internal/models"
	"pr-tracker-api-server/internal/notify"
	"pr-tracker-api-server/internal/s3"
	"pr-tracker-api-server/internal/socket"
	"pr-tracker-api-server/internal/state"
	"pr-tracker-api-server/internal/supply"

	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	cfg, err := config.LoadConfig("./config")
	if err != nil {
		log.Fatalf("Could not load config: %v", err)
	}

	appLogger := logger.New(cfg.Server.Environment)
	defer appLogger.Sync()

	ctx := context.Background()

	// 2. MongoDB and seed data
	client, db, err := database.Connect(ctx, cfg.Mongo)
	if err != nil {
		appLogger.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer client.Disconnect(context.Background())

	if err := database.SeedSuperAdmin(ctx, db, appLogger); err != nil {
		appLogger.Fatal("Failed to seed super admin", zap.Error(err))
	}
	requestCollection := db.Collection(cfg.Mongo.PurchaseRequestCollection)
	if cfg.Mongo.SeedFixtures {
		if err := database.SeedPurchaseRequests(ctx, requestCollection, time.Now(), appLogger); err != nil {
			appLogger.Fatal("Failed to seed purchase requests", zap.Error(err))
		}
	}

	supplyStore := supply.NewMongoStore(db, cfg.Mongo.SupplyInputCollection)
	if err := supplyStore.EnsureIndexes(ctx); err != nil {
		appLogger.Fatal("Failed to prepare supply input collection", zap.Error(err))
	}

	// 3. Shared state, owned here and injected
	requests := state.NewValue([]models.PurchaseRequest{})
	loading := state.NewValue(false)
	notifier := notify.NewChannel(state.NewValue(models.Notification{}))

	// 4. Push channel to UI clients, one ordered queue for all events
	hub := socket.NewHub(appLogger)
	events := socket.NewBroadcaster(hub, 256, appLogger)
	eventsCtx, stopEvents := context.WithCancel(context.Background())
	defer stopEvents()
	go events.Run(eventsCtx)

	notifier.Subscribe(func(n models.Notification) {
		events.Publish(socket.Event{Event: socket.EventNotification, Payload: n})
	})

	viewCache := cache.NewCache(cfg.Redis, appLogger)

	// 5. Purchase request mirror
	prMirror := mirror.New(feed.NewMongoFeed(requestCollection, appLogger), requests, loading, notifier, appLogger)
	prMirror.OnChange(func(revision uint64, prs []models.PurchaseRequest) {
		events.Publish(socket.Event{
			Event:   socket.EventPurchaseRequestsUpdated,
			Payload: map[string]interface{}{"revision": revision, "count": len(prs)},
		})
		if revision > 1 {
			go evictViews(viewCache, appLogger, prMirror.Epoch(), revision-1)
		}
	})
	unsubscribe := prMirror.Start()
	defer unsubscribe()

	// 6. Optional infrastructure
	issuer, err := auth.NewIssuer(cfg.JWT.Secret, cfg.JWT.Expiration)
	if err != nil {
		appLogger.Fatal("Invalid JWT configuration", zap.Error(err))
	}

	var exporter handlers.Exporter
	if cfg.S3.Bucket != "" {
		uploader, err := s3.NewUploader(cfg.S3)
		if err != nil {
			appLogger.Fatal("Failed to create S3 uploader", zap.Error(err))
		}
		exporter = uploader
	} else {
		appLogger.Info("S3 bucket not configured, view export disabled")
	}

	router, err := routes.SetupRouter(routes.Deps{
		Config:   cfg,
		Logger:   appLogger,
		Issuer:   issuer,
		Users:    database.NewUserRepository(db),
		Source:   prMirror,
		Notifier: notifier,
		Supply:   supply.NewService(supplyStore, time.Duration(cfg.Supply.SimulatedLatencyMs)*time.Millisecond, appLogger),
		Cache:    viewCache,
		Exporter: exporter,
		Hub:      hub,
	})
	if err != nil {
		appLogger.Fatal("Failed to set up router", zap.Error(err))
	}

	// 7. Start server
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}
	go func() {
		appLogger.Info("Starting API server", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("Failed to run server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := handlers.PurgeViews(shutdownCtx, viewCache, prMirror.Epoch()); err != nil {
		appLogger.Warn("Failed to purge cached views", zap.Error(err))
	}
}

func evictViews(c cache.Cache, logger *zap.Logger, epoch string, revision uint64) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := handlers.EvictViews(ctx, c, epoch, revision); err != nil {
		logger.Warn("Failed to evict cached views", zap.Uint64("revision", revision), zap.Error(err))
	}
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/firestore"
	fbapp "firebase.google.com/go/v4"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"google.golang.org/api/option"

	"bookswap/internal/adapter/api"
	"bookswap/internal/adapter/api/handler"
	apimiddleware "bookswap/internal/adapter/api/middleware"
	"bookswap/internal/adapter/api/router"
	"bookswap/internal/adapter/repository"
	"bookswap/internal/adapter/repository/cache"
	"bookswap/internal/domain/service"
	"bookswap/internal/infrastructure/cloudinary"
	"bookswap/internal/infrastructure/firebase"
	"bookswap/internal/infrastructure/messaging"
	natspub "bookswap/internal/infrastructure/messaging/nats"
	"bookswap/internal/infrastructure/metrics"
	"bookswap/internal/infrastructure/ratelimit"
	"bookswap/internal/infrastructure/storage"
	"bookswap/internal/infrastructure/websocket"
	"bookswap/internal/usecase"
	"bookswap/pkg/config"
	"bookswap/pkg/logger"
	"bookswap/pkg/response"
)

const metricsNamespace = "bookswap"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration: %v", err)
	}

	logger.Init(cfg.LogLevel, cfg.LogEncoding)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var opts []option.ClientOption
	switch {
	case cfg.FirebaseServiceAccountJSON != "":
		logger.Info("Using Firebase service account from environment variable")
		opts = append(opts, option.WithCredentialsJSON([]byte(cfg.FirebaseServiceAccountJSON)))
	case cfg.FirebaseServiceAccountPath != "":
		if _, err := os.Stat(cfg.FirebaseServiceAccountPath); os.IsNotExist(err) {
			logger.Fatal("Service account file does not exist: %s", cfg.FirebaseServiceAccountPath)
		}
		logger.Info("Using Firebase service account from file: %s", cfg.FirebaseServiceAccountPath)
		opts = append(opts, option.WithCredentialsFile(cfg.FirebaseServiceAccountPath))
	default:
		logger.Info("Using application default credentials")
	}

	firebaseApp, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: cfg.FirebaseProject}, opts...)
	if err != nil {
		logger.Fatal("Failed to initialize Firebase: %v", err)
	}

	authClient, err := firebaseApp.Auth(ctx)
	if err != nil {
		logger.Fatal("Failed to initialize Firebase Auth: %v", err)
	}

	firestoreClient, err := firestore.NewClient(ctx, cfg.FirebaseProject, opts...)
	if err != nil {
		logger.Fatal("Failed to create Firestore client: %v", err)
	}
	defer firestoreClient.Close()

	var imageStore service.ImageStore
	switch cfg.ImageStore {
	case config.ImageStoreGCS:
		gcs, err := storage.NewCloudStorageClient(ctx, cfg.StorageBucket, cfg.CloudinaryFolder, opts...)
		if err != nil {
			logger.Fatal("Failed to initialize Cloud Storage: %v", err)
		}
		defer gcs.Close()
		imageStore = gcs
	default:
		imageStore, err = cloudinary.NewImageStore(cfg.CloudinaryName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret, cfg.CloudinaryFolder)
		if err != nil {
			logger.Fatal("Failed to initialize Cloudinary: %v", err)
		}
	}
	logger.With("store", cfg.ImageStore, "folder", cfg.CloudinaryFolder).Info("image store ready")

	listingRepo := repository.NewFirestoreListingRepository(firestoreClient)
	if cfg.RedisAddr != "" {
		redisClient, err := cache.NewClient(ctx, cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			logger.Warn("Redis unavailable at %s, serving without cache: %v", cfg.RedisAddr, err)
		} else {
			defer redisClient.Close()
			listingRepo = cache.NewCachedListingRepository(listingRepo, redisClient, cfg.CacheTTL)
			logger.Info("Book cache enabled (ttl %s)", cfg.CacheTTL)
		}
	}

	hub := websocket.NewHub()
	hub.Start(ctx)

	publishers := []service.ListingEventPublisher{hub}
	if cfg.NatsURL != "" {
		natsPublisher, err := natspub.NewPublisher(cfg.NatsURL)
		if err != nil {
			logger.Warn("NATS unavailable at %s, events stay local: %v", cfg.NatsURL, err)
		} else {
			defer natsPublisher.Close()
			publishers = append(publishers, natsPublisher)
		}
	}

	identityProvider := firebase.NewFirebaseAuthClient(authClient)
	imageMetrics := metrics.NewImageMetrics(metricsNamespace, prometheus.DefaultRegisterer)

	sessionUseCase := usecase.NewSessionUseCase(identityProvider, cfg.SessionExpiry)
	imageManager := usecase.NewImageManager(imageStore, imageMetrics)
	listingUseCase := usecase.NewListingUseCase(listingRepo, imageManager, messaging.NewMultiPublisher(publishers...))
	accountUseCase := usecase.NewAccountUseCase(identityProvider)

	loginLimiter := ratelimit.NewRateLimiter(cfg.LoginRatePerMinute)
	loginLimiter.StartCleanupRoutine(ctx)

	handlers := &handler.Handlers{
		Listing: handler.NewListingHandler(listingUseCase, cfg.MaxUploadBytes),
		Session: handler.NewSessionHandler(sessionUseCase, cfg.SessionCookieName, cfg.CookieSecure),
		Account: handler.NewAccountHandler(accountUseCase),
		Health:  handler.NewHealthHandler(),
		Feed:    handler.NewFeedHandler(hub),
	}

	e := echo.New()
	e.HideBanner = true
	e.Debug = cfg.IsDevelopment()
	e.HTTPErrorHandler = response.HTTPErrorHandler
	e.Validator = api.NewValidator()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(echoprometheus.NewMiddleware(metricsNamespace))
	e.GET("/metrics", echoprometheus.NewHandler())

	authMiddleware := apimiddleware.NewAuthMiddleware(sessionUseCase, cfg.SessionCookieName)
	router.Setup(e, handlers, authMiddleware, loginLimiter)

	go func() {
		logger.Info("Starting server on port %s...", cfg.ServerPort)
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server stopped: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed: %v", err)
	}
}

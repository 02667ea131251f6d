package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storefront-backend-go/internal/api"
	"storefront-backend-go/internal/cache"
	"storefront-backend-go/internal/config"
	"storefront-backend-go/internal/core"
	"storefront-backend-go/internal/db"
	"storefront-backend-go/internal/events"
	"storefront-backend-go/internal/mailer"
	"storefront-backend-go/internal/middleware"
)

func main() {
	// --- 1. Initialize Logger (Zap) ---
	zapLogger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("CRITICAL_ERROR: Failed to initialize Zap logger: %v", err)
	}
	defer zapLogger.Sync()
	zapLogger.Info("Zap logger initialized successfully.")

	// --- 2. Load Application Configuration ---
	appConfig, err := config.LoadConfig()
	if err != nil {
		zapLogger.Fatal("CRITICAL_ERROR: Failed to load application configuration", zap.Error(err))
	}
	zapLogger.Info("Application configuration loaded successfully.")

	// --- 3. Initialize Firebase Admin SDK (includes Firestore and Auth clients) ---
	initCtx, cancelInitCtx := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelInitCtx()
	if err := db.InitFirestore(initCtx, appConfig); err != nil {
		zapLogger.Fatal("CRITICAL_ERROR: Failed to initialize Firestore and Firebase Admin SDK", zap.Error(err))
	}
	zapLogger.Info("Firebase Admin SDK (Firestore, Auth) initialized successfully.")

	firestoreClient := db.GetFirestoreClient()
	if firestoreClient == nil {
		zapLogger.Fatal("CRITICAL_ERROR: Firestore client is nil after initialization. Application cannot start.")
	}
	if db.GetFirebaseAuthClient() == nil {
		zapLogger.Fatal("CRITICAL_ERROR: Firebase Auth client is nil after initialization. Application cannot start.")
	}

	// --- 4. Initialize Optional Infrastructure ---
	// Redis, RabbitMQ and SMTP all degrade gracefully when unconfigured:
	// no caching, no events, no mail.
	var redisCache cache.Cache
	if appConfig.RedisAddr != "" {
		redisCache, err = cache.NewRedisCache(cache.NewRedisCacheConfig{
			Address:  appConfig.RedisAddr,
			Password: appConfig.RedisPassword,
			DB:       appConfig.RedisDB,
		})
		if err != nil {
			zapLogger.Warn("Redis cache disabled: connection failed.", zap.Error(err))
			redisCache = nil
		} else {
			zapLogger.Info("Redis cache enabled", zap.String("addr", appConfig.RedisAddr))
		}
	} else {
		zapLogger.Warn("Redis cache disabled: REDIS_ADDR is not configured.")
	}

	var publisher events.Publisher
	if appConfig.AMQPURL != "" {
		publisher, err = events.NewRabbitMQPublisher(events.NewRabbitMQPublisherConfig{
			URL:      appConfig.AMQPURL,
			Exchange: appConfig.AMQPExchange,
		})
		if err != nil {
			zapLogger.Warn("Event publishing disabled: RabbitMQ connection failed.", zap.Error(err))
			publisher = nil
		} else {
			defer publisher.Close()
			zapLogger.Info("Event publishing enabled", zap.String("exchange", appConfig.AMQPExchange))
		}
	} else {
		zapLogger.Warn("Event publishing disabled: AMQP_URL is not configured.")
	}

	leadMailer := mailer.New(appConfig.SMTPHost, appConfig.SMTPPort, appConfig.SMTPUsername, appConfig.SMTPPassword)
	if leadMailer == nil {
		zapLogger.Warn("Lead notifications disabled: SMTP_HOST is not configured.")
	}

	// --- 5. Initialize Repositories ---
	productRepo := db.NewFirestoreProductRepository(firestoreClient)
	serviceRepo := db.NewFirestoreServiceRepository(firestoreClient)
	contentRepo := db.NewFirestoreContentRepository(firestoreClient)
	cartRepo := db.NewFirestoreCartRepository(firestoreClient)
	orderRepo := db.NewFirestoreOrderRepository(firestoreClient)
	addressRepo := db.NewFirestoreAddressRepository(firestoreClient)
	leadRepo := db.NewFirestoreLeadRepository(firestoreClient)
	userRepo := db.NewFirestoreUserRepository(firestoreClient)
	zapLogger.Info("Repositories initialized successfully.")

	// --- 6. Initialize Services ---
	cacheTTL := time.Duration(appConfig.CacheTTLSeconds) * time.Second
	gateway := core.NewRazorpayGateway(appConfig.RazorpayKeyID, appConfig.RazorpayKeySecret)
	httpClient := &http.Client{Timeout: 10 * time.Second}

	catalogService := core.NewCatalogService(productRepo, serviceRepo, redisCache, cacheTTL, zapLogger)
	contentService := core.NewContentService(contentRepo, redisCache, cacheTTL, zapLogger)
	searchService := core.NewSearchService(productRepo, redisCache, cacheTTL, zapLogger)
	cartService := core.NewCartService(cartRepo, publisher, zapLogger)
	checkoutService := core.NewCheckoutService(orderRepo, cartRepo, gateway, publisher, zapLogger)
	leadService := core.NewLeadService(leadRepo, leadMailer, appConfig.LeadNotifyFrom, appConfig.LeadNotifyTo, publisher, zapLogger)
	geocodeService := core.NewGeocodeService(httpClient, appConfig.GeocodeProxyURL, appConfig.NominatimBaseURL, zapLogger)
	accountService := core.NewAccountService(userRepo, addressRepo, zapLogger)
	zapLogger.Info("Core services initialized successfully.")

	// --- 7. Setup Gin HTTP Engine ---
	if strings.ToLower(appConfig.GinMode) == "release" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}
	router := gin.New()

	// --- 8. Apply Global Middleware (Order is important) ---
	router.Use(middleware.RequestLogger(zapLogger))
	router.Use(middleware.RecoveryMiddleware(zapLogger))
	router.Use(middleware.CORSMiddleware(appConfig.ClientURL))

	// --- 9. Setup API Routes ---
	api.SetupRoutes(
		router,
		zapLogger,
		catalogService,
		contentService,
		searchService,
		cartService,
		checkoutService,
		leadService,
		geocodeService,
		accountService,
	)

	// --- 10. Configure and Start HTTP Server ---
	serverAddr := fmt.Sprintf(":%s", appConfig.Port)
	httpServer := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	zapLogger.Info("Starting HTTP server...", zap.String("address", serverAddr), zap.String("ginMode", gin.Mode()))

	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("Failed to start HTTP server", zap.Error(err))
		}
	}()

	// --- 11. Graceful Shutdown Handling ---
	quitChannel := make(chan os.Signal, 1)
	signal.Notify(quitChannel, syscall.SIGINT, syscall.SIGTERM)

	sig := <-quitChannel
	zapLogger.Info("Received shutdown signal", zap.String("signal", sig.String()))

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	zapLogger.Info("Attempting graceful shutdown of HTTP server...")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLogger.Fatal("Server forced to shutdown due to error during graceful shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exiting gracefully.")
}

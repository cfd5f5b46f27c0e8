package main

import (
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"leadcapture/pkg/api"
	"leadcapture/pkg/clients/subscribe"
	"leadcapture/pkg/config"
	"leadcapture/pkg/middleware"
	"leadcapture/pkg/pages"
	"leadcapture/pkg/services"
	"leadcapture/pkg/storage"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Info("no .env file, using environment only")
	}

	// Initialize configuration
	cfg := config.LoadConfig()

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.WithError(err).Warn("unknown log level, falling back to info")
		level = log.InfoLevel
	}
	log.SetLevel(level)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	// Initialize API clients
	subscribeClient := subscribe.NewClient(cfg.SubscribeEndpoint, cfg.SubscribeTimeout)

	// Initialize services
	subscriptionService := services.NewSubscriptionService(subscribeClient, cfg.SubscribeTimeout)

	cookies := storage.NewCookieBackend(storage.CookieOptions{
		Domain:   cfg.CookieDomain,
		HashKey:  []byte(cfg.CookieHashKey),
		BlockKey: []byte(cfg.CookieBlockKey),
	})

	landing, err := pages.Load(cfg.LandingPage)
	if err != nil {
		log.WithError(err).Fatal("unable to load landing page")
	}

	gin.SetMode(cfg.GinMode)

	// Create a new Gin router with default middleware
	router := gin.Default()
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS(cfg.AllowedOrigins...))

	// Initialize handlers
	handlers := api.NewHandlers(subscriptionService, cookies, landing, api.Options{
		DoneURL:              cfg.DoneURL,
		AllowedRedirectHosts: cfg.AllowedRedirectHosts,
		CookieTTLDays:        cfg.CookieTTLDays,
	})

	// Register routes
	handlers.Register(router)

	// Start the server
	log.Infof("Server starting on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.WithError(err).Fatal("error starting server")
	}
}

package server

import (
	"fmt"
	"net/http"
	"time"

	"proffee/internal/catalog"
	"proffee/internal/config"
	"proffee/internal/database"
	custommiddleware "proffee/internal/middleware"
	"proffee/internal/storage"
	"proffee/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Server struct {
	*http.Server
	config *config.Config
	logger *zap.Logger
	db     *database.Service
	redis  *redis.Client
}

func NewServer(cfg *config.Config, logger *zap.Logger, db *database.Service, redisClient *redis.Client, cat *catalog.Catalog) *Server {
	// Create router
	router := chi.NewRouter()

	// Add basic middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(custommiddleware.CORSMiddleware(nil, cfg.Server.Env != "production"))
	router.Use(custommiddleware.LoggingMiddleware(logger, transport.SessionCookieName))
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))

	// Health check endpoint
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		custommiddleware.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
			"status":   "ok",
			"database": db.Health(),
		})
	})

	// Cart persistence over Redis
	cartStorage := storage.NewRedisCartStorage(redisClient, cfg.Cart.KeyPrefix, cfg.Cart.TTL)

	shippingFee, err := decimal.NewFromString(cfg.Cart.ShippingFee)
	if err != nil {
		logger.Warn("Invalid shipping fee in config, using default",
			zap.String("shipping_fee", cfg.Cart.ShippingFee),
		)
		shippingFee = decimal.NewFromInt(60)
	}

	// Initialize handlers
	catalogHandler := transport.NewCatalogHandler(cat, logger)
	cartHandler := transport.NewCartHandler(cat, cartStorage, logger, shippingFee)

	// Rate limit cart mutations per session
	rateLimit := custommiddleware.RateLimitMiddleware(redisClient, custommiddleware.RateLimitConfig{
		RequestsPerWindow: 60,
		Window:            time.Minute,
		KeyPrefix:         "proffee:ratelimit",
		SessionCookie:     transport.SessionCookieName,
	}, logger)

	// Register routes
	catalogHandler.RegisterRoutes(router)
	cartHandler.RegisterRoutes(router, rateLimit)

	server := &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		config: cfg,
		logger: logger,
		db:     db,
		redis:  redisClient,
	}

	return server
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Error("Failed to close Redis connection", zap.Error(err))
		}
	}

	// Close database connection
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.logger.Error("Failed to close database connection", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}

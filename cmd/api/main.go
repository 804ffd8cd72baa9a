package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/NYTimes/gziphandler"
	"golang.org/x/time/rate"

	"geeta-backend/config"
	"geeta-backend/internal/delivery/http/middleware"
	v1 "geeta-backend/internal/delivery/http/v1"
	"geeta-backend/internal/infrastructure/cache"
	"geeta-backend/internal/repository/pgrepo"
	"geeta-backend/internal/rulecache"
	"geeta-backend/internal/usecase"
	"geeta-backend/pkg/logger"
	"geeta-backend/pkg/utils"
)

func main() {
	cfg := config.LoadConfig()
	utils.SetSecret(cfg.JWTSecret)

	// Initialize Logger
	logger.Init(cfg.Env, cfg.LogLevel)
	log := logger.Get()

	// Initialize Database
	pgxPool, err := pgrepo.NewPgxPool(context.Background(), cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	log.Info().Msg("Successfully connected to PostgreSQL")

	// Initialize Repositories
	giftRuleRepo := pgrepo.NewGiftRuleRepository(pgxPool)
	productRepo := pgrepo.NewProductRepository(pgxPool)

	// Initialize Cache (In-Memory) and the rule snapshot layer.
	// Default expiration 30m, cleanup every 60m.
	memCache := cache.NewMemoryCache(30*time.Minute, 60*time.Minute)
	ruleCache := rulecache.New(giftRuleRepo, memCache, cfg.CacheRuleTTL)

	// Warm the snapshot so the first cart evaluation doesn't pay the
	// database round-trip. A cold start with the DB briefly down is
	// fine: the first read will retry the refresh.
	if _, err := ruleCache.Refresh(context.Background()); err != nil {
		log.Warn().Err(err).Msg("Initial gift rule snapshot refresh failed")
	}

	// Set up Router
	mux := http.NewServeMux()

	// --- Modules Initialization ---

	giftRuleUC := usecase.NewGiftRuleUsecase(giftRuleRepo, productRepo, ruleCache)
	adminGiftRuleHandler := v1.NewAdminGiftRuleHandler(giftRuleUC)

	eligibilityUC := usecase.NewEligibilityUsecase(ruleCache)
	giftRuleHandler := v1.NewGiftRuleHandler(eligibilityUC)

	// Gift rules (Public)
	mux.HandleFunc("GET /api/v1/gift-rules", giftRuleHandler.GetActiveGiftRules)
	mux.HandleFunc("GET /api/v1/cart/gift-eligibility", giftRuleHandler.GetGiftEligibility)

	// Admin (Protected)
	adminMiddleware := func(h http.HandlerFunc) http.Handler {
		return middleware.AuthMiddleware(middleware.AdminMiddleware(h))
	}

	mux.Handle("GET /api/v1/admin/gift-rules", adminMiddleware(adminGiftRuleHandler.ListGiftRules))
	mux.Handle("POST /api/v1/admin/gift-rules", adminMiddleware(adminGiftRuleHandler.CreateGiftRule))
	mux.Handle("GET /api/v1/admin/gift-rules/{id}", adminMiddleware(adminGiftRuleHandler.GetGiftRule))
	mux.Handle("PUT /api/v1/admin/gift-rules/{id}", adminMiddleware(adminGiftRuleHandler.UpdateGiftRule))
	mux.Handle("DELETE /api/v1/admin/gift-rules/{id}", adminMiddleware(adminGiftRuleHandler.DeleteGiftRule))

	// Health Check
	healthHandler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "ok", "db": "connected"}`))
	}
	mux.HandleFunc("GET /api/v1/health", healthHandler)
	mux.HandleFunc("GET /health", healthHandler) // Support root health check for Load Balancers

	addr := fmt.Sprintf(":%s", cfg.Port)

	// Initialize Rate Limiter with lifecycle management
	rateLimiter := middleware.NewRateLimiter(
		context.Background(),
		rate.Limit(cfg.RateLimitPerSecond),
		cfg.RateLimitBurst,
		time.Minute,   // cleanup period
		3*time.Minute, // client TTL
	)

	// Apply CORS (with config injection), Request Logger, Rate Limit, and Gzip
	handler := middleware.NewCORSMiddleware(cfg)(mux)
	handler = middleware.RequestLogger(handler)
	handler = rateLimiter.Middleware()(handler)
	handler = gziphandler.GzipHandler(handler)

	srv := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	// Graceful Shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	log.Info().Msgf("Server starting on %s", addr)

	// Wait for interrupt signal via channel
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Server shutting down...")

	rateLimiter.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	pgxPool.Close()
	log.Info().Msg("Server exited properly")
}

package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"salonmarket-backend/cache"
	"salonmarket-backend/config"
	"salonmarket-backend/repository"
	"salonmarket-backend/routes"
	"salonmarket-backend/services"
	"salonmarket-backend/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := config.NewLogger(cfg)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := config.ConnectDB(cfg, logger)
	if err != nil {
		logger.Fatal("failed to connect database", zap.Error(err))
	}
	if err := config.Migrate(db); err != nil {
		logger.Fatal("failed to migrate database", zap.Error(err))
	}
	store := repository.New(db)

	tokens, err := utils.NewTokenService(cfg.JWTSecret, cfg.JWTExpiry())
	if err != nil {
		logger.Fatal("failed to create token service", zap.Error(err))
	}

	var slotCache *cache.SlotCache
	rdb, err := config.ConnectRedis(cfg)
	switch {
	case err != nil:
		logger.Warn("redis unavailable, slot cache disabled", zap.Error(err))
	case rdb != nil:
		defer rdb.Close()
		slotCache = cache.NewSlotCache(rdb, cfg.SlotCacheTTL(), logger)
	}

	var notifier services.Notifier
	if cfg.TwilioConfigured() {
		notifier = services.NewTwilioNotifier(services.TwilioConfig{
			AccountSID:     cfg.TwilioAccountSID,
			AuthToken:      cfg.TwilioAuthToken,
			PhoneNumber:    cfg.TwilioPhoneNumber,
			WhatsAppNumber: cfg.TwilioWhatsAppNumber,
		}, logger)
	} else {
		logger.Info("twilio not configured, notifications are only logged")
		notifier = services.NewLogNotifier(logger)
	}

	reminders := services.NewReminderService(store, notifier, logger, cfg.ReminderCron)
	if err := reminders.StartScheduler(); err != nil {
		logger.Fatal("failed to start reminder scheduler", zap.Error(err))
	}
	defer reminders.StopScheduler()

	r := routes.SetupRouter(routes.Deps{
		Config:         cfg,
		Logger:         logger,
		Store:          store,
		Tokens:         tokens,
		Slots:          services.NewSlotCalculator(cfg.SlotStep()),
		SlotCache:      slotCache,
		Notifier:       reminders,
		BookingLimiter: utils.NewRateLimiter(cfg.BookingRatePerMin, 3),
	})
	if cfg.IsDevelopment() {
		printRoutes(r)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// graceful shutdown
	idleConnsClosed := make(chan struct{})
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit

		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("http server shutdown", zap.Error(err))
		}
		close(idleConnsClosed)
	}()

	logger.Info("starting salonmarket-backend", zap.String("addr", srv.Addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("listen", zap.Error(err))
	}

	<-idleConnsClosed
	logger.Info("server stopped")
}

func printRoutes(r *gin.Engine) {
	for _, route := range r.Routes() {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}

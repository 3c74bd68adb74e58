package main

import (
	"context"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"room-booking/cache"
	"room-booking/config"
	"room-booking/controllers"
	"room-booking/routes"
	"room-booking/services"
	"room-booking/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := utils.NewLogger(cfg.IsProduction())
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := config.ConnectDatabase(cfg.Database, logger, !cfg.IsProduction())
	if err != nil {
		logger.Fatal("database connect failed", zap.Error(err))
	}
	logger.Info("database connection established", zap.String("driver", cfg.Database.Driver))

	roomSvc := services.NewRoomService(db)
	bookingSvc := services.NewBookingService(db)

	var (
		rooms    controllers.RoomStore    = roomSvc
		bookings controllers.BookingStore = bookingSvc
	)
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		defer client.Close()
		listCache := cache.NewRedisCache(client, time.Duration(cfg.Redis.CacheTTLSeconds)*time.Second)
		if err := listCache.Ping(context.Background()); err != nil {
			logger.Warn("redis unreachable, list cache will fall back to the database", zap.Error(err))
		}
		rooms = services.NewCachedRooms(roomSvc, listCache, logger)
		bookings = services.NewCachedBookings(bookingSvc, listCache, logger)
		logger.Info("list cache enabled", zap.String("addr", cfg.Redis.Addr))
	}

	roomController := controllers.NewRoomController(rooms)
	bookingController := controllers.NewBookingController(bookings, roomSvc)

	router := routes.SetupRouter(roomController, bookingController, routes.Options{
		APIPrefix:       cfg.APIPrefix,
		AllowedOrigins:  cfg.AllowedOrigins(),
		RateLimitPerMin: cfg.RateLimitPerMin,
		Logger:          logger,
		Health: func(ctx context.Context) error {
			return config.Ping(ctx, db)
		},
	})

	srv := &http.Server{
		Addr:              net.JoinHostPort("", cfg.Port),
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Info("shutdown signal received, shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}
	logger.Info("server stopped gracefully")
}

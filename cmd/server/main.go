package main // Entry point package

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/coach-seat-reservation/internal/booking"
	"github.com/iliyamo/coach-seat-reservation/internal/config"
	"github.com/iliyamo/coach-seat-reservation/internal/database"
	"github.com/iliyamo/coach-seat-reservation/internal/handler"
	"github.com/iliyamo/coach-seat-reservation/internal/queue"
	"github.com/iliyamo/coach-seat-reservation/internal/repository"
	"github.com/iliyamo/coach-seat-reservation/internal/router"
	"github.com/iliyamo/coach-seat-reservation/internal/service"
)

func main() {
	config.LoadDotEnv()
	cfg := config.Load()
	coachCfg := config.LoadCoachConfig()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := database.Migrate(ctx, db); err != nil {
		log.Fatalf("database: %v", err)
	}
	coaches := repository.NewCoachRepo(db)
	if err := coaches.EnsureCoach(ctx, booking.NewEmptyCoach(coachCfg.ID, coachCfg.TotalSeats, coachCfg.RowWidth)); err != nil {
		log.Fatalf("seed coach %d: %v", coachCfg.ID, err)
	}

	rdb := config.NewRedisClient(config.LoadRedisConfig())
	if rdb == nil {
		log.Printf("redis unavailable: response cache and rate limiting disabled")
	} else {
		defer rdb.Close()
	}

	go func() {
		if err := queue.NewConsumer().Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("booking-consumer: stopped: %v", err)
		}
	}()

	e := echo.New()
	e.HideBanner = true
	router.RegisterRoutes(e, router.Deps{
		Coach:     handler.NewCoachHandler(coaches, service.NewBookingPublisher(), coachCfg),
		Auth:      handler.NewAuthHandler(cfg),
		JWTSecret: cfg.JWTSecret,
		Redis:     rdb,
		Cache:     config.LoadCacheConfig(),
		Limit:     config.LoadBookingLimitConfig(),
		CORS:      config.LoadCORSConfig(),
	})

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s, coach=%d, %d seats x %d per row)",
		addr, cfg.Env, coachCfg.ID, coachCfg.TotalSeats, coachCfg.RowWidth)
	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("server forced to shutdown: %v", err)
	}
}

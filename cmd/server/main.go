package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/becca-afk/first-class-perfume/internal/auth"
	"github.com/becca-afk/first-class-perfume/internal/events"
	"github.com/becca-afk/first-class-perfume/internal/httpserver"
	"github.com/becca-afk/first-class-perfume/internal/mpesa"
	"github.com/becca-afk/first-class-perfume/internal/repo"
	"github.com/becca-afk/first-class-perfume/internal/service"
	"github.com/becca-afk/first-class-perfume/pkg/config"
	pkgdb "github.com/becca-afk/first-class-perfume/pkg/db"
	"github.com/becca-afk/first-class-perfume/pkg/logging"
	loggingmw "github.com/becca-afk/first-class-perfume/pkg/middleware/logging"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: could not load .env: %v", err)
	}

	cfg := config.Load()

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := pkgdb.Open(ctx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db open: %v", err)
	}

	store := &repo.GormRepo{DB: db}
	if err := store.Migrate(); err != nil {
		log.Fatalf("db migrate: %v", err)
	}

	var publisher events.Publisher = events.NoopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		publisher = events.NewKafkaPublisher(cfg.KafkaBrokers)
	}
	defer publisher.Close()

	gateway := mpesa.NewClient(cfg.Mpesa)
	if gateway.Configured() {
		config.MustNonEmpty(cfg.Mpesa.CallbackURL, "MPESA_CALLBACK_URL")
	} else {
		logger.Warn("mpesa credentials missing, payment prompts will be simulated")
	}

	orderSvc := &service.OrderService{Repo: store, Gateway: gateway, Events: publisher}
	catalogSvc := &service.CatalogService{Repo: store}

	verifier, err := auth.NewEnvCredentials(cfg.SiteUser, cfg.SitePassword)
	if err != nil {
		log.Fatalf("credentials: %v", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(echomw.CORS())

	httpserver.Register(e, &httpserver.Deps{
		OrderHandler:   &httpserver.OrderHTTP{Svc: orderSvc},
		PaymentHandler: &httpserver.PaymentHTTP{Svc: orderSvc, Gateway: gateway},
		CatalogHandler: &httpserver.CatalogHTTP{Svc: catalogSvc},
		Verifier:       verifier,
	})

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.ServerPort),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
	}

	go func() {
		log.Printf("server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	_ = srv.Shutdown(shutdownCtx)

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}

	log.Println("server stopped")
}

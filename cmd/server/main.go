package main

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
	"github.com/labstack/echo/v4/middleware"

	"github.com/sharmaketan/shopkart/internal/audit"
	"github.com/sharmaketan/shopkart/internal/config"
	"github.com/sharmaketan/shopkart/internal/database"
	"github.com/sharmaketan/shopkart/internal/es"
	"github.com/sharmaketan/shopkart/internal/events"
	"github.com/sharmaketan/shopkart/internal/handlers"
	"github.com/sharmaketan/shopkart/internal/logging"
	logmw "github.com/sharmaketan/shopkart/internal/middleware/logging"
	"github.com/sharmaketan/shopkart/internal/search"
	"github.com/sharmaketan/shopkart/internal/service/order"
	"github.com/sharmaketan/shopkart/internal/service/review"
	httpserver "github.com/sharmaketan/shopkart/internal/transport/http"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(cfg.LOG_LEVEL)

	db, err := database.Open(context.Background(), cfg)
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}

	var producer *events.Producer
	if cfg.KAFKA_ADDRESS != "" {
		producer, err = events.NewProducer([]string{cfg.KAFKA_ADDRESS})
		if err != nil {
			log.Fatalf("kafka init error: %v", err)
		}
	} else {
		logger.Warn("kafka disabled, audit events will not be published")
	}

	deps := &httpserver.Deps{
		JWTSecret: []byte(cfg.JWT_SECRET),
	}

	recorder := &audit.Recorder{DB: db, Producer: producer}
	orderSvc := &order.Service{DB: db}
	reviewSvc := &review.Service{DB: db}

	var indexer *search.Indexer
	if cfg.ES_URL != "" {
		esClient, err := es.NewClient(cfg)
		if err != nil {
			log.Fatalf("elasticsearch init error: %v", err)
		}
		indexer = &search.Indexer{ES: esClient, Index: es.ProductIndex}
		deps.SearchHandler = &handlers.SearchHandler{ES: esClient, Index: es.ProductIndex}
	} else {
		logger.Warn("elasticsearch disabled, product search unavailable")
	}

	deps.AuthHandler = &handlers.AuthHandler{DB: db, JWTSecret: []byte(cfg.JWT_SECRET), Audit: recorder}
	deps.UserHandler = &handlers.UserHandler{DB: db, Audit: recorder}
	deps.ProductHandler = &handlers.ProductHandler{DB: db, Audit: recorder, Indexer: indexer, Reviews: reviewSvc}
	deps.CategoryHandler = &handlers.CategoryHandler{DB: db}
	deps.CartHandler = &handlers.CartHandler{DB: db, Audit: recorder}
	deps.OrderHandler = &handlers.OrderHandler{Svc: orderSvc, Audit: recorder}
	deps.LogsHandler = &handlers.LogsHandler{DB: db}

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), logmw.RequestID(), logmw.RequestLogger(logger))

	httpserver.Register(e, deps)

	srv := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logger.Error("db close error", "error", err)
		}
	}

	if err := producer.Close(); err != nil {
		logger.Error("kafka close error", "error", err)
	}

	logger.Info("shutdown complete")
}

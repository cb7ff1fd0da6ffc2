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

	"github.com/fazrilrizki/simple-pos/internal/config"
	"github.com/fazrilrizki/simple-pos/internal/es"
	"github.com/fazrilrizki/simple-pos/internal/events"
	"github.com/fazrilrizki/simple-pos/internal/httpserver"
	"github.com/fazrilrizki/simple-pos/internal/models"
	"github.com/fazrilrizki/simple-pos/internal/repo"
	"github.com/fazrilrizki/simple-pos/internal/search"
	"github.com/fazrilrizki/simple-pos/internal/service"
	"github.com/fazrilrizki/simple-pos/internal/xendit"
	pkgdb "github.com/fazrilrizki/simple-pos/pkg/db"
	"github.com/fazrilrizki/simple-pos/pkg/logging"
	loggingmw "github.com/fazrilrizki/simple-pos/pkg/middleware/logging"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env: %v", err)
	}

	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := pkgdb.Open(ctx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db open: %v", err)
	}

	if err := db.AutoMigrate(&models.Category{}, &models.Product{}, &models.Order{}, &models.OrderItem{}); err != nil {
		log.Fatalf("db migrate: %v", err)
	}

	logger := logging.New(os.Getenv("LOG_LEVEL")).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	gormRepo := &repo.GormRepo{DB: db}
	gateway := xendit.NewClient(cfg.XenditBaseURL, cfg.XenditAPIKey)

	var producer *events.Producer
	if len(cfg.KafkaBrokers) > 0 {
		producer = events.NewProducer(cfg.KafkaBrokers)
	}

	var searchHandler *httpserver.SearchHTTP
	var indexer service.ProductIndexer
	if cfg.ESURL != "" {
		esClient, err := es.NewClient(cfg.Config)
		if err != nil {
			log.Fatalf("elasticsearch: %v", err)
		}
		searchClient := &search.Client{ES: esClient, Index: "product"}
		searchHandler = &httpserver.SearchHTTP{Client: searchClient}
		indexer = searchClient
	}

	orderSvc := &service.OrderService{Repo: gormRepo, Gateway: gateway, Events: eventPublisher(producer)}
	catalogSvc := &service.CatalogService{Repo: gormRepo, Events: eventPublisher(producer), Indexer: indexer}

	e := echo.New()
	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(echomw.CORS())

	httpserver.Register(e, &httpserver.Deps{
		OrderHandler: &httpserver.OrderHTTP{
			Svc:               orderSvc,
			CallbackToken:     cfg.XenditCallbackToken,
			SimulationEnabled: !cfg.IsProduction(),
		},
		CatalogHandler: &httpserver.CatalogHTTP{Svc: catalogSvc},
		SearchHandler:  searchHandler,
		JWTSecret:      cfg.JWTAccessSecret,
	})

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.ServerPort),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
	}

	go func() {
		log.Printf("pos listening on %s", srv.Addr)
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

	if producer != nil {
		if err := producer.Close(); err != nil {
			log.Printf("kafka close error: %v", err)
		}
	}

	log.Println("pos stopped")
}

// a nil *events.Producer must become a nil interface, not a typed nil
func eventPublisher(p *events.Producer) service.EventPublisher {
	if p == nil {
		return nil
	}
	return p
}

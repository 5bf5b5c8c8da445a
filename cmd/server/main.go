package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"docdesk/internal/config"
	"docdesk/internal/domain"
	"docdesk/internal/handler"
	"docdesk/internal/logger"
	"docdesk/internal/normalize"
	"docdesk/internal/port"
	"docdesk/internal/repository/memory"
	"docdesk/internal/repository/postgres"
	"docdesk/internal/router"
	"docdesk/internal/service"
	s3storage "docdesk/internal/storage/s3"
	"docdesk/internal/validator"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

type repositories struct {
	documents      port.DocumentRepository
	counterparties port.CounterpartyRepository
	inventory      port.InventoryRepository
	health         handler.Pinger
	close          func() error
}

func openRepositories(cfg *config.Config, l zerolog.Logger) (*repositories, error) {
	if cfg.Storage.Driver != config.StoragePostgres {
		l.Warn().Msg("using in-memory storage; data is lost on restart")
		return &repositories{
			documents:      memory.NewDocumentRepo(),
			counterparties: memory.NewCounterpartyRepo(),
			inventory:      memory.NewInventoryRepo(),
			close:          func() error { return nil },
		}, nil
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return &repositories{
		documents:      postgres.NewDocumentRepo(db),
		counterparties: postgres.NewCounterpartyRepo(db),
		inventory:      postgres.NewInventoryRepo(db),
		health:         db,
		close:          db.Close,
	}, nil
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.Setup(cfg.Log.Logger())
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, err := openRepositories(cfg, l)
	if err != nil {
		return err
	}
	defer repos.close()

	// Object storage is optional; without it archive requests return 503.
	var storage port.ObjectStorage
	if cfg.S3.Enabled() {
		storage, err = s3storage.NewS3Client(ctx, &cfg.S3)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 client: %w", err)
		}
	}

	// Initialize services
	rules := cfg.Tax.Rules()
	normalizer := normalize.New(normalize.Options{
		Company:         cfg.Company,
		Rules:           rules,
		RoundOffToRupee: cfg.Tax.RoundOffToRupee,
	}, l)
	engine := validator.NewDefaultEngine(rules.SellerStateCode, l)

	documentSvc := service.NewDocumentService(repos.documents, normalizer, engine, l)
	counterpartySvc := service.NewCounterpartyService(repos.counterparties, l)
	inventorySvc := service.NewInventoryService(repos.inventory, l)
	exportSvc := service.NewExportService(documentSvc, inventorySvc, storage, cfg.S3.PresignExpiry, l)

	// Initialize handlers. The health handler takes a nil Pinger for memory storage.
	healthH := handler.NewHealthHandler(nil)
	if repos.health != nil {
		healthH = handler.NewHealthHandler(repos.health)
	}

	r := router.Setup(router.Handlers{
		Health:    healthH,
		Documents: handler.NewDocumentHandler(documentSvc, exportSvc),
		Tools:     handler.NewToolsHandler(documentSvc, normalizer.Rules()),
		Clients:   handler.NewCounterpartyHandler(counterpartySvc, domain.CounterpartyClient),
		Vendors:   handler.NewCounterpartyHandler(counterpartySvc, domain.CounterpartyVendor),
		Inventory: handler.NewInventoryHandler(inventorySvc, exportSvc),
	}, cfg.CORS.AllowedOrigins, l)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		l.Info().
			Str("addr", cfg.Server.Port).
			Str("storage", cfg.Storage.Driver).
			Bool("archive", storage != nil).
			Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	l.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}

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

	"go.uber.org/zap"

	"gstkit/internal/config"
	"gstkit/internal/handler"
	"gstkit/internal/logger"
	"gstkit/internal/port"
	"gstkit/internal/repository/postgres"
	"gstkit/internal/repository/rediscache"
	"gstkit/internal/router"
	"gstkit/internal/service"
	s3storage "gstkit/internal/storage/s3"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	zl, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = zl.Sync() }()

	ctx := context.Background()

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	redisClient, err := rediscache.NewClient(ctx, &cfg.Redis)
	if err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	if redisClient != nil {
		defer redisClient.Close()
		zl.Info("settings cache enabled", zap.String("addr", cfg.Redis.Addr))
	}
	cache := rediscache.New(redisClient, cfg.Redis.TTL, zl.Named("cache"))

	// Initialize repositories
	addressRepo := postgres.NewAddressRepo(db)
	invoiceRepo := postgres.NewInvoiceRepo(db)
	templateRepo := postgres.NewTaxTemplateRepo(db)
	settingsRepo := rediscache.NewGSTSettingsRepo(postgres.NewGSTSettingsRepo(db), cache)
	payrollRepo := rediscache.NewPayrollRepo(postgres.NewPayrollRepo(db), cache)
	previewer := postgres.NewStructurePreviewer(db)

	// Initialize storage
	var archive port.ObjectStorage
	if cfg.GST.ArchiveEWayBills {
		archive, err = s3storage.NewS3Client(ctx, &cfg.S3)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 client: %w", err)
		}
	}

	// Initialize services
	authSvc := service.NewAuthService(service.AuthConfig{
		Secret:      cfg.JWT.Secret,
		Issuer:      cfg.JWT.Issuer,
		TokenExpiry: cfg.JWT.TokenExpiry,
	})
	gstSvc := service.NewGSTService(addressRepo, templateRepo, invoiceRepo, zl.Named("gst"))
	hraSvc := service.NewHRAService(payrollRepo, previewer, zl.Named("hra"))
	ewaySvc := service.NewEWayBillService(invoiceRepo, addressRepo, settingsRepo, archive, service.EWayBillOptions{
		Version:             cfg.GST.EWayBillVersion,
		DisableRoundedTotal: cfg.GST.DisableRoundedTotal,
		Archive:             cfg.GST.ArchiveEWayBills,
		Bucket:              cfg.S3.Bucket,
		PresignExpiry:       cfg.S3.PresignExpiry,
	}, zl.Named("ewaybill"))

	// Setup router
	r := router.Setup(authSvc, router.Handlers{
		GST:      handler.NewGSTHandler(gstSvc),
		HRA:      handler.NewHRAHandler(hraSvc),
		EWayBill: handler.NewEWayBillHandler(ewaySvc),
		Health:   handler.NewHealthHandler(db),
	}, cfg.CORS.AllowedOrigins, zl)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		zl.Info("server starting", zap.String("addr", cfg.Server.Port), zap.String("env", cfg.Server.Environment))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-quit:
		zl.Info("shutting down", zap.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return nil
}

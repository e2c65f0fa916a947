// Command ewaybill writes the e-Way Bill JSON file for submitted sales
// invoices straight from the database.
// Usage: go run ./cmd/ewaybill -out ./out SINV-0001 SINV-0002
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"gstkit/internal/config"
	"gstkit/internal/domain"
	"gstkit/internal/logger"
	"gstkit/internal/repository/postgres"
	"gstkit/internal/repository/rediscache"
	"gstkit/internal/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	outDir := flag.String("out", ".", "directory to write the JSON file to")
	flag.Parse()
	names := flag.Args()
	if len(names) == 0 {
		return fmt.Errorf("usage: ewaybill [-out DIR] INVOICE [INVOICE...]")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	zl, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	defer func() { _ = zl.Sync() }()

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer func() { _ = db.Close() }()

	ctx := context.Background()
	redisClient, err := rediscache.NewClient(ctx, &cfg.Redis)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer func() { _ = redisClient.Close() }()
	}
	cache := rediscache.New(redisClient, cfg.Redis.TTL, zl)

	svc := service.NewEWayBillService(
		postgres.NewInvoiceRepo(db),
		postgres.NewAddressRepo(db),
		rediscache.NewGSTSettingsRepo(postgres.NewGSTSettingsRepo(db), cache),
		nil,
		service.EWayBillOptions{
			Version:             cfg.GST.EWayBillVersion,
			DisableRoundedTotal: cfg.GST.DisableRoundedTotal,
		},
		zl,
	)

	file, err := svc.Generate(ctx, domain.DocTypeSalesInvoice, names)
	if err != nil {
		return fmt.Errorf("generating e-way bill: %w", err)
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	path := filepath.Join(*outDir, file.FileName)
	if err := os.WriteFile(path, file.Content, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	zl.Info("e-way bill written", zap.String("path", path), zap.Int("bills", len(file.Envelope.BillLists)))
	return nil
}

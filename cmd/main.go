package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/YelzhanWeb/daily-orders/internal/adapter/logger"
	"github.com/YelzhanWeb/daily-orders/internal/adapter/memory"
	"github.com/YelzhanWeb/daily-orders/internal/adapter/pdf"
	"github.com/YelzhanWeb/daily-orders/internal/adapter/postgres"
	"github.com/YelzhanWeb/daily-orders/internal/adapter/rabbitmq"
	"github.com/YelzhanWeb/daily-orders/internal/adapter/raster"
	"github.com/YelzhanWeb/daily-orders/internal/adapter/spreadsheet"
	"github.com/YelzhanWeb/daily-orders/internal/adapter/sqlite"
	"github.com/YelzhanWeb/daily-orders/internal/app/export"
	"github.com/YelzhanWeb/daily-orders/internal/app/order"
	"github.com/YelzhanWeb/daily-orders/internal/app/surface"
	"github.com/YelzhanWeb/daily-orders/internal/config"
	"github.com/YelzhanWeb/daily-orders/internal/interfaces"
	"github.com/YelzhanWeb/daily-orders/internal/menu"

	amqpAdapter "github.com/YelzhanWeb/daily-orders/internal/adapter/amqp"
	httpAdapter "github.com/YelzhanWeb/daily-orders/internal/adapter/http"
)

func main() {
	mode := flag.String("mode", "server", "Run mode: server, export, day-close-subscriber")
	configPath := flag.String("config", "config.yaml", "Path to the YAML config file")
	port := flag.Int("port", 0, "HTTP port (overrides config)")
	outDir := flag.String("out", ".", "Output directory (export mode)")
	format := flag.String("format", "pdf", "Export format: pdf or xlsx (export mode)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}

	lgr := logger.NewWithWriter(*mode, logger.ParseLevel(cfg.Log.Level), os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch *mode {
	case "server":
		err = runServer(ctx, cfg, lgr)
	case "export":
		err = runExport(ctx, cfg, lgr, *outDir, *format)
	case "day-close-subscriber":
		err = runDayCloseSubscriber(ctx, cfg, lgr)
	default:
		log.Fatalf("Invalid mode: %s", *mode)
	}

	if err != nil && ctx.Err() == nil {
		lgr.Error("fatal", "Stopped with error", "runtime", nil, err)
		stop()
		os.Exit(1)
	}
}

// buildSurface assembles storage, the order store, the exporter and the
// optional day-close publisher. The returned cleanup closes what was opened.
func buildSurface(ctx context.Context, cfg *config.Config, lgr logger.Logger) (*surface.Service, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	catalog, err := menu.Load(cfg.Catalog.File)
	if err != nil {
		return nil, cleanup, err
	}

	kv, closeKV, err := openStorage(ctx, cfg, lgr)
	if err != nil {
		return nil, cleanup, err
	}
	closers = append(closers, closeKV)

	repo := order.NewRepository(kv, catalog, time.Now, lgr)
	store := order.NewStore(catalog, repo.Load(ctx), nil)
	store.Subscribe(order.WriteThrough(repo, lgr))

	exporter := export.NewService(
		export.NewDocument(),
		raster.NewCapturer(raster.DefaultScale),
		pdf.NewWriter(),
		spreadsheet.NewWriter(),
		lgr,
		export.Options{PaintDelay: cfg.Export.PaintDelay(), Title: cfg.Export.Title},
	)

	var publisher interfaces.DayClosePublisher
	if cfg.RabbitMQ.Enabled {
		mqConn, err := rabbitmq.Connect(cfg.RabbitMQ)
		if err != nil {
			// the counter keeps working without day-close reports
			lgr.Error("rabbitmq_connect_failed", "Failed to connect to RabbitMQ, day-close reports disabled", "startup", nil, err)
		} else {
			closers = append(closers, func() { _ = mqConn.Close() })
			publisher = rabbitmq.NewPublisher(mqConn)
			lgr.Info("rabbitmq_connected", "Connected to RabbitMQ", "startup", map[string]interface{}{
				"host": cfg.RabbitMQ.Host,
			})
		}
	}

	svc := surface.NewService(ctx, store, exporter, kv, publisher, lgr, surface.Options{
		ModalSettle: cfg.Export.ModalSettle(),
	})

	lgr.Info("catalog_loaded", fmt.Sprintf("Serving %d menu items", catalog.Len()), "startup", map[string]interface{}{
		"storage": cfg.Storage.Driver,
	})

	return svc, cleanup, nil
}

func openStorage(ctx context.Context, cfg *config.Config, lgr logger.Logger) (interfaces.KeyValueStore, func(), error) {
	switch cfg.Storage.Driver {
	case "memory":
		return memory.NewKeyValueStore(), func() {}, nil

	case "postgres":
		db, err := postgres.Connect(ctx, cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		if err := postgres.EnsureSchema(ctx, db); err != nil {
			db.Close()
			return nil, nil, err
		}
		lgr.Info("db_connected", "Connected to PostgreSQL database", "startup", map[string]interface{}{
			"host": cfg.Database.Host,
			"db":   cfg.Database.Database,
		})
		return postgres.NewKeyValueStore(db), db.Close, nil

	default:
		db, err := sqlite.Open(cfg.Storage.Path)
		if err != nil {
			return nil, nil, err
		}
		lgr.Info("db_connected", "Opened local SQLite database", "startup", map[string]interface{}{
			"path": cfg.Storage.Path,
		})
		return sqlite.NewKeyValueStore(db), func() { _ = sqlite.Close(db) }, nil
	}
}

func runServer(ctx context.Context, cfg *config.Config, lgr logger.Logger) error {
	svc, cleanup, err := buildSurface(ctx, cfg, lgr)
	defer cleanup()
	if err != nil {
		return err
	}

	images := httpAdapter.NewImageHandler(cfg.Server.AssetsDir, lgr)
	handler, err := httpAdapter.NewRouter(svc, images, lgr)
	if err != nil {
		return err
	}

	return httpAdapter.NewServer(cfg.Server.Port, handler, lgr).Run(ctx)
}

// runExport writes today's summary once and exits.
func runExport(ctx context.Context, cfg *config.Config, lgr logger.Logger, outDir, format string) error {
	svc, cleanup, err := buildSurface(ctx, cfg, lgr)
	defer cleanup()
	if err != nil {
		return err
	}

	var file *interfaces.ExportFile
	switch format {
	case "pdf":
		file, err = svc.ExportPDF(ctx, true)
	case "xlsx":
		file, err = svc.ExportSpreadsheet(ctx)
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
	if err != nil {
		return err
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", outDir, err)
	}
	path := filepath.Join(outDir, file.Name)
	if err := os.WriteFile(path, file.Data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	lgr.Info("export_written", fmt.Sprintf("Wrote %s", path), "", map[string]interface{}{
		"bytes": len(file.Data),
	})
	return nil
}

func runDayCloseSubscriber(ctx context.Context, cfg *config.Config, lgr logger.Logger) error {
	mqConn, err := rabbitmq.Connect(cfg.RabbitMQ)
	if err != nil {
		return err
	}
	defer mqConn.Close()

	consumer := rabbitmq.NewConsumer(mqConn, 1, lgr)
	handler := amqpAdapter.NewDayClosedHandler(lgr, os.Stdout)

	lgr.Info("service_started", "Day-close subscriber started", "startup", map[string]interface{}{
		"host": cfg.RabbitMQ.Host,
	})

	err = consumer.ConsumeDayClosed(ctx, handler.HandleDayClosed)

	lgr.Info("shutdown_initiated", "Shutting down day-close subscriber", "shutdown", nil)
	return err
}

package main

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/andresuchdata/kopik/backend-go/internal/config"
	"github.com/andresuchdata/kopik/backend-go/internal/domain"
	"github.com/andresuchdata/kopik/backend-go/internal/repository/postgres"
	"github.com/andresuchdata/kopik/backend-go/internal/seed"
	"github.com/andresuchdata/kopik/backend-go/internal/service"
	"github.com/andresuchdata/kopik/backend-go/internal/stock"
	"github.com/andresuchdata/kopik/backend-go/internal/storage"
	"github.com/andresuchdata/kopik/backend-go/pkg/logger"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/urfave/cli/v2"
)

func newDBURLFlag(cfg *config.Config) *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "db-url",
		Usage:   "Database connection string",
		Value:   cfg.Database.URL(),
		EnvVars: []string{"DATABASE_URL"},
	}
}

// openDB connects through the pgx driver and wraps the handle for the repositories.
func openDB(c *cli.Context, cfg *config.Config) (*postgres.DB, error) {
	raw, err := sql.Open("pgx", c.String("db-url"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := raw.PingContext(c.Context); err != nil {
		raw.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return postgres.Wrap(sqlx.NewDb(raw, "pgx"), cfg.Database.MaxConcurrency), nil
}

// openStorage returns nil when object storage is disabled.
func openStorage(c *cli.Context, cfg *config.Config) (storage.ObjectStorage, error) {
	if !cfg.Storage.Enabled {
		return nil, nil
	}
	client, err := storage.NewMinioClient(c.Context, cfg.Storage)
	if err != nil {
		return nil, err
	}
	return client, nil
}

func newInventoryService(db *postgres.DB, cfg *config.Config) *service.InventoryService {
	classifier := stock.NewClassifier(stock.Options{
		Thresholds:  stock.Thresholds{Critical: cfg.Rules.CriticalDays, Low: cfg.Rules.LowDays},
		FloorDays:   cfg.Rules.FloorDays,
		LowStockPct: cfg.Rules.LowStockPct,
	})
	return service.NewInventoryService(postgres.NewStore(db).Inventory, classifier, nil, nil)
}

func main() {
	cfg := config.Load()
	logger.SetLevel(cfg.App.LogLevel)

	app := &cli.App{
		Name:  "seed",
		Usage: "Manage the kopik database",
		Flags: []cli.Flag{newDBURLFlag(cfg)},
		Commands: []*cli.Command{
			{
				Name:  "schema",
				Usage: "Create tables and indexes",
				Action: func(c *cli.Context) error {
					db, err := openDB(c, cfg)
					if err != nil {
						return err
					}
					defer db.Close()

					if err := postgres.EnsureSchema(c.Context, db); err != nil {
						return err
					}
					logger.Log.Info().Msg("Schema applied")
					return nil
				},
			},
			{
				Name:  "seed",
				Usage: "Load the demo café dataset",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "skip-recommendations",
						Usage: "Leave the recommendation set untouched",
					},
				},
				Action: func(c *cli.Context) error {
					db, err := openDB(c, cfg)
					if err != nil {
						return err
					}
					defer db.Close()

					if err := postgres.EnsureSchema(c.Context, db); err != nil {
						return err
					}
					data := seed.Demo(time.Now())
					if c.Bool("skip-recommendations") {
						data.Recommendations = nil
					}
					return seed.Load(c.Context, postgres.NewStore(db), data)
				},
			},
			{
				Name:  "export",
				Usage: "Write the inventory report, uploading it when storage is enabled",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "out",
						Usage: "Output directory",
						Value: cfg.App.DataDir,
					},
				},
				Action: func(c *cli.Context) error {
					db, err := openDB(c, cfg)
					if err != nil {
						return err
					}
					defer db.Close()

					objectStorage, err := openStorage(c, cfg)
					if err != nil {
						return err
					}

					inventory := newInventoryService(db, cfg)
					result, err := service.NewReportService(inventory, objectStorage, c.String("out")).InventoryReport(c.Context)
					if err != nil {
						return err
					}
					fmt.Printf("wrote %d rows to %s\n", result.Rows, result.Path)
					if result.ObjectKey != "" {
						fmt.Printf("uploaded to %s\n", result.ObjectKey)
					}
					return nil
				},
			},
			{
				Name:  "import",
				Usage: "Load inventory items from a CSV file or from object storage",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "file",
						Usage: "Local CSV file to import; storage is used when empty",
					},
					&cli.StringFlag{
						Name:  "prefix",
						Usage: "Object prefix to list CSV files under",
						Value: "imports",
					},
					&cli.StringFlag{
						Name:  "key",
						Usage: "Single object key to import instead of listing the prefix",
					},
					&cli.StringFlag{
						Name:  "download-dir",
						Usage: "Directory downloaded objects are written to",
						Value: filepath.Join(cfg.App.DataDir, "tmp", "imports"),
					},
				},
				Action: func(c *cli.Context) error {
					db, err := openDB(c, cfg)
					if err != nil {
						return err
					}
					defer db.Close()

					objectStorage, err := openStorage(c, cfg)
					if err != nil {
						return err
					}
					imports := service.NewImportService(newInventoryService(db, cfg), objectStorage)

					var result *domain.ImportResult
					if path := c.String("file"); path != "" {
						file, err := os.Open(path)
						if err != nil {
							return err
						}
						defer file.Close()
						result, err = imports.ImportInventoryCSV(c.Context, file)
						if err != nil {
							return err
						}
					} else {
						result, err = imports.ImportFromStorage(c.Context, c.String("prefix"), c.String("key"), c.String("download-dir"))
						if err != nil {
							return err
						}
					}

					for _, msg := range result.Errors {
						logger.Log.Warn().Msg(msg)
					}
					fmt.Printf("created %d, replaced %d, skipped %d\n", result.Created, result.Replaced, result.Skipped)
					return nil
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Log.Fatal().Err(err).Msg("seed command failed")
	}
}

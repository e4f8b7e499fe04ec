package main

import (
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/compressorworks/crm/internal/cli"
	"github.com/compressorworks/crm/internal/config"
	"github.com/compressorworks/crm/internal/db"
	"github.com/compressorworks/crm/internal/logger"
	"github.com/compressorworks/crm/internal/repository"
	"github.com/compressorworks/crm/internal/service"
	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", cli.UserMessage(err))
		os.Exit(1)
	}
}

// resources holds what PersistentPreRunE opens so run can release it.
type resources struct {
	cfg      config.Config
	database *sql.DB
	logOut   io.WriteCloser
	registry *prometheus.Registry
}

func (r *resources) close() error {
	var firstErr error
	if r.registry != nil && r.cfg.Metrics.File != "" {
		if err := prometheus.WriteToTextfile(r.cfg.Metrics.File, r.registry); err != nil {
			firstErr = fmt.Errorf("writing metrics: %w", err)
		}
	}
	if r.database != nil {
		if err := r.database.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("closing database: %w", err)
		}
	}
	if r.logOut != nil {
		r.logOut.Close()
	}
	return firstErr
}

func run() error {
	// A missing .env file is fine; it only pre-populates CRM_* variables.
	_ = godotenv.Load()

	app := &cli.App{
		IsInteractive: func() bool {
			return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
		},
	}
	res := &resources{}

	root := cli.NewRootCmd(app)
	config.BindFlags(root.PersistentFlags())
	root.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		return res.wire(cmd, app)
	}

	err := root.Execute()
	if cerr := res.close(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}

// wire loads configuration and connects every service to the database.
func (r *resources) wire(cmd *cobra.Command, app *cli.App) error {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return err
	}
	r.cfg = cfg

	r.logOut, err = logger.OpenFile(cfg.Log.File)
	if err != nil {
		return err
	}
	log, err := logger.New(cfg.Log.Level, cfg.Log.Format, r.logOut)
	if err != nil {
		return err
	}
	slog.SetDefault(log)

	r.database, err = db.OpenDB(cfg.DB.Path)
	if err != nil {
		return err
	}

	r.registry = prometheus.NewRegistry()
	metrics, err := service.NewMetricsObserver(r.registry)
	if err != nil {
		return err
	}
	observer := service.MultiObserver(service.NewLogUseCaseObserver(log), metrics)

	uow := db.NewSQLiteUnitOfWork(r.database)
	app.Quotations = service.NewQuotationService(repository.NewSQLiteQuotationRepo(r.database), uow,
		service.QuotationSettings{Currency: cfg.Quote.Currency, ValidityDays: cfg.Quote.ValidityDays},
		observer)
	app.Clients = service.NewClientService(repository.NewSQLiteClientRepo(r.database), uow, observer)
	app.Catalog = service.NewCatalogService(repository.NewSQLiteProductRepo(r.database), uow, observer)
	app.Users = service.NewUserService(repository.NewSQLiteUserRepo(r.database), observer)

	log.Debug("crm ready", "db", cfg.DB.Path, "currency", cfg.Quote.Currency)
	return nil
}

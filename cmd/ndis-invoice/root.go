package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jesses-code-adventures/ndis-invoice/internal/config"
	"github.com/jesses-code-adventures/ndis-invoice/internal/database"
	"github.com/jesses-code-adventures/ndis-invoice/internal/service"
	"github.com/jesses-code-adventures/ndis-invoice/internal/utils"
)

// application is built after flag parsing so --db and --driver can feed
// config.Load. Tests set svc and kv up front and setup leaves them alone.
type application struct {
	dbURL    string
	dbDriver string

	kv     database.KV
	logger *zap.Logger
	svc    *service.InvoiceService
}

func (a *application) setup(ctx context.Context) error {
	if a.svc != nil {
		return nil
	}

	cfg, err := config.Load(a.dbURL, a.dbDriver)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := utils.NewLogger(utils.LoggerConfig{Level: cfg.LogLevel, Format: cfg.LogFormat})
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	kv, err := database.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	svc, err := service.NewInvoiceService(kv, cfg, logger)
	if err != nil {
		kv.Close()
		return err
	}

	a.kv, a.logger, a.svc = kv, logger, svc
	return nil
}

func (a *application) close() {
	if a.kv != nil {
		a.kv.Close()
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

func newRootCmd(app *application) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ndis-invoice",
		Short: "Build NDIS support work invoices",
		Long: `Fill in a support worker's invoice one day at a time and export it as a PDF.
Each day becomes a service line (hours x hourly rate) and a travel line (km x km rate).
Your seller details are saved once and reused for every invoice.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.setup(cmd.Context())
		},
	}

	rootCmd.PersistentFlags().StringVar(&app.dbURL, "db", "", "Database URL or file (overrides DATABASE_URL)")
	rootCmd.PersistentFlags().StringVar(&app.dbDriver, "driver", "", "Database driver: sqlite3, libsql or memory (overrides DATABASE_DRIVER)")

	rootCmd.AddCommand(
		newProfileCmd(app),
		newDraftCmd(app),
		newStatusCmd(app),
		newGenerateCmd(app),
		newPreviewCmd(app),
		newExportCmd(app),
		newSessionCmd(app),
		newDbResetCmd(app),
	)

	return rootCmd
}

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"invoicer/internal/config"
	"invoicer/internal/invoice"
	"invoicer/internal/logger"
	"invoicer/internal/store"
	"invoicer/internal/workspace"
	"invoicer/pkg/models"
)

var version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:   "invoicer",
	Short: "Invoicer - create, check and export itemized invoices",
	Long: `Invoicer keeps one draft invoice on this device and lets you edit it,
preview its totals and export it as a PDF or PNG file.

Invoice numbers have the form INV-YYYY-NNNN and are handed out per calendar
year. The draft, the bank details and the yearly counters are saved after
every change.

Required environment variables:
  BUSINESS_NAME  - Business name printed on every invoice
  BUSINESS_PHONE - Contact phone printed on every invoice

Optional environment variables:
  BUSINESS_EMAIL, BUSINESS_SOCIAL - Extra contact lines
  INVOICER_STORE_DSN  - SQLite file (default invoicer.db) or a postgres:// URL
  INVOICER_OUTPUT_DIR - Default export directory (default .)`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return showPreview(cmd, false)
	},
}

func Execute() {
	log := logger.WithComponent("cmd")

	if err := rootCmd.Execute(); err != nil {
		log.Debug().
			Err(err).
			Msg("Command execution failed")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print version information")
}

// session is the state every command works on: configuration, the open
// store and the workspace built on top of it.
type session struct {
	cfg *config.Config
	ws  *workspace.Workspace
	inv *models.Invoice
	log zerolog.Logger

	closeStore func() error
}

// openSession loads configuration, opens the store and restores the draft.
// When the store cannot be opened the session runs on memory and nothing is
// kept after the command ends.
func openSession(ctx context.Context, component string) (*session, error) {
	log := logger.WithComponent(component)

	cfg, err := config.Load()
	if err != nil {
		log.Error().Err(err).Msg("Configuration invalid")
		return nil, fmt.Errorf("invalid configuration. Please check your .env file:\n"+
			"  BUSINESS_NAME - business name printed on the invoice\n"+
			"  BUSINESS_PHONE - contact phone printed on the invoice\n"+
			"Original error: %w", err)
	}

	var kv store.KV
	closeStore := func() error { return nil }
	db, err := store.Open(cfg.StoreDSN)
	if err != nil {
		log.Warn().
			Err(err).
			Bool("postgres", store.IsPostgres(store.NormalizeDSN(cfg.StoreDSN))).
			Msg("Failed to open store, changes will not be saved")
		kv = store.NewMemoryStore()
	} else {
		kv = db
		closeStore = db.Close
	}

	ws := workspace.New(kv, cfg.GetBusinessProfile(), nil)
	s := &session{
		cfg:        cfg,
		ws:         ws,
		inv:        ws.Load(ctx),
		log:        log,
		closeStore: closeStore,
	}
	return s, nil
}

// save persists the draft after a change.
func (s *session) save(ctx context.Context) {
	s.ws.Save(ctx, s.inv)
}

func (s *session) close() {
	if err := s.closeStore(); err != nil {
		s.log.Warn().Err(err).Msg("Failed to close store")
	}
}

// withSession runs fn on an open session and closes it afterwards.
func withSession(cmd *cobra.Command, component string, fn func(ctx context.Context, s *session) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	s, err := openSession(ctx, component)
	if err != nil {
		return err
	}
	defer s.close()
	return fn(ctx, s)
}

// friendlyError maps document editing errors to messages for the terminal.
func friendlyError(err error) error {
	var itemErr *invoice.ItemError
	switch {
	case errors.Is(err, invoice.ErrLastItem):
		return fmt.Errorf("an invoice needs at least one item; update it instead of removing it")
	case errors.As(err, &itemErr) && errors.Is(err, invoice.ErrItemIndex):
		return fmt.Errorf("there is no item %d. Run 'invoicer show' to see the item numbers", itemErr.Position)
	case errors.Is(err, invoice.ErrInvalidDate):
		return fmt.Errorf("invalid date. Use YYYY-MM-DD")
	case errors.Is(err, invoice.ErrInvalidDiscountType):
		return fmt.Errorf("invalid discount type. Use amount or percent")
	default:
		return err
	}
}

package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/shatwik/finassist/internal/auth"
	"github.com/shatwik/finassist/internal/config"
	"github.com/shatwik/finassist/internal/database"
	"github.com/shatwik/finassist/internal/database/repository"
	"github.com/shatwik/finassist/internal/ledger"
	"github.com/shatwik/finassist/internal/razorpay"
	"github.com/shatwik/finassist/internal/tui"
)

func main() {
	// .env is optional; real env vars win either way
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		log.Fatalf("create data dir: %v", err)
	}
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()
	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("run migrations: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	authSvc := &auth.Service{Users: repository.NewUserRepo(db)}
	if err := authSvc.EnsureDefault(ctx); err != nil {
		log.Fatalf("provision default account: %v", err)
	}

	txs, source := loadLedger(cfg)

	loc, err := time.LoadLocation(cfg.UI.Timezone)
	if err != nil {
		log.Printf("unknown timezone %q, using local", cfg.UI.Timezone)
		loc = time.Local
	}

	startPoller(ctx, cfg, db)

	app := tui.New(ctx, cfg, authSvc, txs, source, loc)
	if _, err := tea.NewProgram(app, tea.WithAltScreen()).Run(); err != nil {
		log.Fatalf("run tui: %v", err)
	}
}

// loadLedger reads the configured CSV, falling back to the bundled
// sample dataset when no path is set or the file is unusable.
func loadLedger(cfg config.Config) ([]ledger.Transaction, string) {
	if cfg.Data.LedgerPath == "" {
		return ledger.DefaultDataset(), "default dataset"
	}
	res, err := ledger.LoadFile(cfg.Data.LedgerPath)
	if err != nil {
		log.Printf("load ledger %s: %v (using default dataset)", cfg.Data.LedgerPath, err)
		return ledger.DefaultDataset(), "default dataset"
	}
	if res.Skipped > 0 {
		log.Printf("load ledger: skipped %d bad row(s)", res.Skipped)
	}
	return res.Transactions, cfg.Data.LedgerPath
}

// startPoller launches the background payment poller when credentials
// are present. Without them the dashboard simply runs without live
// payment capture.
func startPoller(ctx context.Context, cfg config.Config, db *sql.DB) {
	keyID := os.Getenv(cfg.Razorpay.KeyIDEnv)
	keySecret := os.Getenv(cfg.Razorpay.KeySecretEnv)
	if keyID == "" || keySecret == "" {
		log.Printf("razorpay credentials not set, payment polling disabled")
		return
	}
	poller := &razorpay.Poller{
		Client:   razorpay.NewClient(cfg.Razorpay.BaseURL, keyID, keySecret),
		Seen:     repository.NewSeenPaymentRepo(db),
		CSVPath:  cfg.Data.PaymentsPath,
		Interval: cfg.Razorpay.PollInterval,
	}
	go poller.Run(ctx)
}

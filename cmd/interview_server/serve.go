package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jasonlvhit/gocron"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/interview-prep/internal/config"
	"github.com/jonathan/interview-prep/internal/db"
	"github.com/jonathan/interview-prep/internal/interview"
	"github.com/jonathan/interview-prep/internal/llm"
	"github.com/jonathan/interview-prep/internal/logger"
	"github.com/jonathan/interview-prep/internal/questions"
	"github.com/jonathan/interview-prep/internal/reminder"
	"github.com/jonathan/interview-prep/internal/scoring"
	"github.com/jonathan/interview-prep/internal/server"
)

var (
	servePort    int
	serveConfig  string
	serveVerbose bool
	serveLogJSON bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start the HTTP server exposing the interview lifecycle, scheduling, admin and webhook endpoints, plus the reminder sweep for scheduled mocks.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveCmd.Flags().StringVar(&serveConfig, "config", "", "Path to a JSON config file")
	serveCmd.Flags().BoolVar(&serveVerbose, "verbose", false, "Enable debug logging")
	serveCmd.Flags().BoolVar(&serveLogJSON, "log-json", false, "Emit JSON logs")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg := config.FromEnv()
	if serveConfig != "" {
		fileCfg, err := config.Load(serveConfig)
		if err != nil {
			return err
		}
		cfg = fileCfg.MergeWithDefaults(cfg)
	}
	cfg = (&cfg).MergeWithDefaults(config.Config{Port: servePort})
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}
	if cfg.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}

	log, err := logger.New(serveLogJSON || cfg.LogJSON, serveVerbose || cfg.Verbose)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer log.Sync() //nolint:errcheck // stderr sync failures are unactionable

	ctx := context.Background()
	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	client, err := llm.NewClient(ctx, llm.DefaultConfig(), cfg.APIKey)
	if err != nil {
		return fmt.Errorf("failed to create model client: %w", err)
	}
	defer client.Close() //nolint:errcheck // process is exiting

	admin, err := config.NewAdminCredential(cfg.AdminTokenHash)
	if err != nil {
		return fmt.Errorf("invalid admin token hash: %w", err)
	}

	generator := questions.NewGenerator(client, questions.NewThrottle(time.Second), log)
	scorer := scoring.New(client, log)
	quota := interview.NewQuotaPolicy(database, database, cfg.FreeMonthlyLimit, log)
	interviews := interview.NewService(database, quota, generator, scorer, log)

	srv, err := server.New(server.Config{
		Port:       cfg.Port,
		DB:         database,
		Interviews: interviews,
		Admin:      admin,
		Logger:     log,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	sweeper := reminder.NewSweeper(database, &reminder.LogNotifier{Log: log}, log)
	go func() {
		_ = gocron.Every(1).Minute().Do(func() {
			if err := sweeper.Sweep(context.Background()); err != nil {
				log.Error("reminder sweep failed", zap.Error(err))
			}
		})
		<-gocron.Start()
	}()

	return srv.Start()
}

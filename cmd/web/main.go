package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/de-tools/carbon-atlas/pkg/server"
	"github.com/de-tools/carbon-atlas/pkg/services/auth"
	"github.com/de-tools/carbon-atlas/pkg/services/config"
	"github.com/de-tools/carbon-atlas/pkg/services/emissions"
	"github.com/de-tools/carbon-atlas/pkg/services/source"
	"github.com/de-tools/carbon-atlas/pkg/services/workflow"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web server for Carbon Atlas",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "",
		"Path to the YAML configuration file (defaults and CARBON_* variables apply without one)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.Log.Level, err)
	}
	zerolog.SetGlobalLevel(level)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logger.WithContext(ctx)

	loader, err := source.DefaultRegistry().Create(ctx, cfg.Source)
	if err != nil {
		return fmt.Errorf("failed to create dataset loader: %w", err)
	}

	ds, err := loader.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}
	logger.Info().
		Str("source", ds.Source).
		Int("records", ds.Len()).
		Msg("dataset loaded")

	snapshot := emissions.NewSnapshot(ds)
	deps := server.Dependencies{
		Emissions: emissions.NewService(snapshot, cfg.Budget.Domain()),
		Logger:    logger,
	}

	if cfg.Auth.Enabled {
		verifier, issuer, err := newAuth(cfg.Auth)
		if err != nil {
			return err
		}
		deps.Verifier = verifier
		deps.Tokens = issuer
		logger.Info().Msg("authentication enabled for per-user views")
	}

	webAPI := server.NewWebAPI(server.Config{
		Addr:            cfg.Server.Addr(),
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		Dependencies:    deps,
	})
	runner := workflow.NewRunner(loader, snapshot, workflow.RunnerConfig{
		Interval: cfg.Source.ReloadInterval,
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return webAPI.Start(gctx)
	})
	g.Go(func() error {
		runner.Run(gctx)
		return nil
	})
	g.Go(func() error {
		for progress := range runner.Progress() {
			logger.Debug().
				Int("records", progress.Records).
				Time("loaded_at", progress.LoadedAt).
				Msg("snapshot swapped")
		}
		return nil
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func newAuth(cfg config.AuthConfig) (auth.Verifier, *auth.Issuer, error) {
	issuer, err := auth.NewIssuer(cfg.Secret, cfg.TokenTTL)
	if err != nil {
		return nil, nil, err
	}

	if cfg.CredentialsFile != "" {
		verifier, err := auth.NewINIVerifier(cfg.CredentialsFile)
		if err != nil {
			return nil, nil, err
		}
		return verifier, issuer, nil
	}
	return auth.NewSharedPasswordVerifier(cfg.DefaultPassword), issuer, nil
}

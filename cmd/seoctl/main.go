package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kumar045/seo-website/internal/config"
	"github.com/kumar045/seo-website/internal/jobs"
	"github.com/kumar045/seo-website/internal/logging"
	"github.com/kumar045/seo-website/internal/pipeline"
	"github.com/kumar045/seo-website/internal/provider"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app carries what every subcommand needs once flags are parsed.
type app struct {
	configPath string
	jsonOut    bool

	cfg    *config.Config
	logger *zap.Logger
}

func newRootCommand() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "seoctl",
		Short:         "seoctl - AI-assisted SEO content for a small site",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if skipSetup(cmd) {
				return nil
			}
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "Configuration file path (TOML)")
	rootCmd.PersistentFlags().BoolVar(&a.jsonOut, "json", false, "Print results as JSON")

	rootCmd.AddCommand(newServerCommand(a))
	rootCmd.AddCommand(newGenerateCommand(a))
	rootCmd.AddCommand(newKeywordCommand(a))
	rootCmd.AddCommand(newCompetitorCommand(a))
	rootCmd.AddCommand(newEnqueueCommand(a))
	rootCmd.AddCommand(newConfigCommand())

	return rootCmd
}

// skipSetup reports whether cmd runs without configuration, such as the
// sample config printer.
func skipSetup(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations["skip-setup"] == "true" {
			return true
		}
	}
	return false
}

func (a *app) setup() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logger
	return nil
}

// newPipeline builds the provider adapter and the pipeline on top of it.
// Callers close the adapter.
func (a *app) newPipeline() (*pipeline.Pipeline, *provider.Adapter, error) {
	adapter, err := provider.NewAdapter(a.cfg, a.logger)
	if err != nil {
		return nil, nil, fmt.Errorf("init providers: %w", err)
	}
	pl := pipeline.New(adapter, adapter, adapter, pipeline.Options{
		Rand:   pipeline.NewRand(a.cfg.Heuristics.Seed),
		Logger: a.logger,
	})
	return pl, adapter, nil
}

// openQueue connects to Redis when an address is configured and falls back
// to the in-process queue otherwise.
func (a *app) openQueue(ctx context.Context) (jobs.Queue, error) {
	if strings.TrimSpace(a.cfg.Redis.Addr) == "" {
		a.logger.Info("Redis not configured, using in-process job queue")
		return jobs.NewMemoryQueue(100), nil
	}
	dialCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	q, err := jobs.NewRedisQueue(dialCtx, a.cfg.Redis.Addr)
	if err != nil {
		return nil, err
	}
	return q, nil
}

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

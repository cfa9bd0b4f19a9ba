// Package cli implements the feargreed command line.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"FearGreed/internal/collector"
	"FearGreed/internal/config"
	"FearGreed/internal/render"
)

// All linker flags may be set at build time.
var version = "dev"

const defaultConfigPath = "configs/config.yaml"

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "feargreed",
		Short:         "Fetch, classify and chart the CNN Fear & Greed index.",
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		Run: func(cmd *cobra.Command, _ []string) {
			_ = cmd.Help()
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $CONFIG_PATH or "+defaultConfigPath+")")

	load := func() (*config.Config, error) {
		return loadConfig(configPath)
	}
	root.AddCommand(
		newServeCmd(load),
		newFetchCmd(load),
		newRenderCmd(load),
		newRecordedCmd(load),
	)
	return root
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		path = defaultConfigPath
		if v := os.Getenv("CONFIG_PATH"); v != "" {
			path = v
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

type configLoader func() (*config.Config, error)

// checkDays enforces the same 1..max_days window the HTTP API does.
func checkDays(days, maxDays int) error {
	if days < 1 || days > maxDays {
		return fmt.Errorf("--days must be between 1 and %d, got %d", maxDays, days)
	}
	return nil
}

func newSource(cfg *config.Config) *collector.CNNSource {
	return collector.NewCNNSource(cfg.Provider.URL, cfg.Provider.UserAgent, cfg.Proxy, cfg.Provider.Timeout)
}

func newRenderer(cfg *config.Config) (*render.Renderer, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	style := render.DefaultStyle()
	style.Location = loc
	style.ChartWidth = cfg.Render.ChartWidth
	style.ChartHeight = cfg.Render.ChartHeight
	style.GaugeSize = cfg.Render.GaugeSize
	return render.NewRenderer(style)
}

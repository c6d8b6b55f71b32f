package main

import (
	"fmt"
	"os"

	"github.com/elC0mpa/aws-rate-genie/config"
	"github.com/elC0mpa/aws-rate-genie/logging"
	"github.com/elC0mpa/aws-rate-genie/model"
	"github.com/elC0mpa/aws-rate-genie/service/app"
	"github.com/elC0mpa/aws-rate-genie/utils"
	"github.com/spf13/cobra"
)

var (
	cfgFile  string
	region   string
	profile  string
	output   string
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "genie",
	Short: "Find AWS rate reduction opportunities",
	Long: `Rate Genie ranks the most expensive on-demand RDS and EC2 instance types of an
AWS account, prices their reserved equivalents, finds idle databases and computes
the optimal hourly reservation from a usage report.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $GENIE_CONFIG, otherwise none)")
	rootCmd.PersistentFlags().StringVar(&region, "region", "", "AWS region")
	rootCmd.PersistentFlags().StringVar(&profile, "profile", "", "AWS profile")
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "", "output format: table, json, yaml or csv")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info or error")
}

func getConfigPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	return os.Getenv("GENIE_CONFIG")
}

// loadConfig loads the configuration and applies the persistent flags on top.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(getConfigPath())
	if err != nil {
		return nil, err
	}

	if region != "" {
		if cfg.Pricing.Location == cfg.AWS.Region {
			cfg.Pricing.Location = region
		}
		cfg.AWS.Region = region
	}
	if profile != "" {
		cfg.AWS.Profile = profile
	}
	if output != "" {
		cfg.Output = output
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// run wires the application and executes one workflow.
func run(cmd *cobra.Command, flags model.Flags) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log, err := logging.New(cfg.LogLevel, os.Stderr)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if cfg.Output == utils.FormatTable {
		utils.DrawBanner(out)
		utils.StartSpinner(os.Stderr, "Consulting the genie...")
		defer utils.StopSpinner()
	}

	a, err := app.New(cmd.Context(), cfg, out, log)
	if err != nil {
		return err
	}
	defer a.Close()

	return a.Orchestrator.Orchestrate(cmd.Context(), flags)
}

package main

import (
	"fmt"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jiaming2012/options-analyzer/src/optionmodels"
	"github.com/jiaming2012/options-analyzer/src/services"
	"github.com/jiaming2012/options-analyzer/src/sweeps"
)

type RunArgs struct {
	ConfigFile string
	Kind       string
	Strategy   string
	OutDir     string
}

var runCmd = &cobra.Command{
	Use:   "go run src/cmd/compare_strategies/main.go --config config/strategies.json --kind price",
	Short: "Compare option configurations side by side across one sweep dimension",
	Run: func(cmd *cobra.Command, args []string) {
		configFile, err := cmd.Flags().GetString("config")
		if err != nil {
			log.Fatalf("error getting config: %v", err)
		}

		kind, err := cmd.Flags().GetString("kind")
		if err != nil {
			log.Fatalf("error getting kind: %v", err)
		}

		strategy, err := cmd.Flags().GetString("strategy")
		if err != nil {
			log.Fatalf("error getting strategy: %v", err)
		}

		outDir, err := cmd.Flags().GetString("outDir")
		if err != nil {
			log.Fatalf("error getting outDir: %v", err)
		}

		if err := Run(RunArgs{
			ConfigFile: configFile,
			Kind:       kind,
			Strategy:   strategy,
			OutDir:     outDir,
		}); err != nil {
			log.Fatalf("Error: %v", err)
		}
	},
}

func Run(args RunArgs) error {
	configs, err := services.LoadOptionConfigs(args.ConfigFile)
	if err != nil {
		return fmt.Errorf("failed to load configs: %w", err)
	}

	if args.Strategy != "" {
		configs, err = services.CreateStrategyConfigs(configs[0], args.Strategy)
		if err != nil {
			return fmt.Errorf("failed to derive strategy configs: %w", err)
		}
	}

	now := time.Now()

	cfgs := make([]optionmodels.NormalizedConfig, 0, len(configs))
	for i, config := range configs {
		cfg, err := config.Normalize(now)
		if err != nil {
			return fmt.Errorf("config %d: %w", i+1, err)
		}
		cfgs = append(cfgs, cfg)
	}

	records, err := sweeps.CompareStrategies(cfgs, sweeps.SweepKind(args.Kind), now)
	if err != nil {
		return err
	}

	log.Infof("compared %d configurations over %s, %d records", len(cfgs), args.Kind, len(records))

	priceStats, err := services.ComputeColumnStats(records, "option_price")
	if err != nil {
		return err
	}

	log.Infof("option price across strategies: min $%.2f, max $%.2f, mean $%.2f", priceStats.Min, priceStats.Max, priceStats.Mean)

	if args.OutDir != "" {
		outPath := filepath.Join(args.OutDir, fmt.Sprintf("strategy_comparison_%s.csv", args.Kind))
		if _, err := services.ExportCSV(records, outPath, true); err != nil {
			return err
		}
	}

	return nil
}

func main() {
	runCmd.PersistentFlags().String("config", "", "JSON or YAML config file with one or more configurations.")
	runCmd.MarkPersistentFlagRequired("config")
	runCmd.PersistentFlags().String("kind", "price", "Sweep dimension: time, price, or volatility.")
	runCmd.PersistentFlags().String("strategy", "", "Derive legs from the first config: straddle, strangle, or spread.")
	runCmd.PersistentFlags().String("outDir", "", "The directory to write the comparison CSV to.")

	runCmd.Execute()
}

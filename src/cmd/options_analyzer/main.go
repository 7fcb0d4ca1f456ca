package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jiaming2012/options-analyzer/src/optionmodels"
	"github.com/jiaming2012/options-analyzer/src/quotes"
	"github.com/jiaming2012/options-analyzer/src/services"
	"github.com/jiaming2012/options-analyzer/src/utils"
)

type RunArgs struct {
	ConfigFile   string
	Live         bool
	Ticker       string
	DaysToExpiry int
	OutDir       string
	Formats      []string
	PlotDir      string
}

var runCmd = &cobra.Command{
	Use:   "go run src/cmd/options_analyzer/main.go --config config/example_options.json",
	Short: "Price European options and run Black-Scholes sweep analyses",
	Run: func(cmd *cobra.Command, args []string) {
		configFile, err := cmd.Flags().GetString("config")
		if err != nil {
			log.Fatalf("error getting config: %v", err)
		}

		live, err := cmd.Flags().GetBool("live")
		if err != nil {
			log.Fatalf("error getting live: %v", err)
		}

		ticker, err := cmd.Flags().GetString("ticker")
		if err != nil {
			log.Fatalf("error getting ticker: %v", err)
		}

		daysToExpiry, err := cmd.Flags().GetInt("daysToExpiry")
		if err != nil {
			log.Fatalf("error getting daysToExpiry: %v", err)
		}

		outDir, err := cmd.Flags().GetString("outDir")
		if err != nil {
			log.Fatalf("error getting outDir: %v", err)
		}

		formats, err := cmd.Flags().GetStringSlice("formats")
		if err != nil {
			log.Fatalf("error getting formats: %v", err)
		}

		plotDir, err := cmd.Flags().GetString("plotDir")
		if err != nil {
			log.Fatalf("error getting plotDir: %v", err)
		}

		if err := Run(RunArgs{
			ConfigFile:   configFile,
			Live:         live,
			Ticker:       ticker,
			DaysToExpiry: daysToExpiry,
			OutDir:       outDir,
			Formats:      formats,
			PlotDir:      plotDir,
		}); err != nil {
			log.Fatalf("Error: %v", err)
		}
	},
}

func fetchLiveConfigs(args RunArgs) ([]optionmodels.OptionConfig, error) {
	if args.Ticker == "" {
		return nil, fmt.Errorf("ticker is required in live mode")
	}

	if err := utils.InitEnvironmentVariables(); err != nil {
		return nil, fmt.Errorf("error loading environment variables: %v", err)
	}

	quotesURL := os.Getenv("MARKET_QUOTES_URL")
	if quotesURL == "" {
		return nil, fmt.Errorf("missing MARKET_QUOTES_URL environment variable")
	}

	quotesBearerToken := os.Getenv("MARKET_QUOTES_BEARER_TOKEN")
	if quotesBearerToken == "" {
		return nil, fmt.Errorf("missing MARKET_QUOTES_BEARER_TOKEN environment variable")
	}

	client := quotes.NewClient(quotesURL, quotesBearerToken)

	return client.BuildLiveConfigs(args.Ticker, args.DaysToExpiry, time.Now())
}

func Run(args RunArgs) error {
	var configs []optionmodels.OptionConfig
	var err error

	if args.Live {
		configs, err = fetchLiveConfigs(args)
		if err != nil {
			return fmt.Errorf("failed to fetch live configs: %w", err)
		}
	} else if args.ConfigFile != "" {
		configs, err = services.LoadOptionConfigs(args.ConfigFile)
		if err != nil {
			return fmt.Errorf("failed to load configs: %w", err)
		}
	} else {
		return fmt.Errorf("either --config or --live must be specified")
	}

	now := time.Now()

	for _, config := range configs {
		analyzer, err := services.NewAnalyzer(config, now)
		if err != nil {
			return err
		}

		summary, err := analyzer.Summary()
		if err != nil {
			return err
		}

		fmt.Println(summary.String())

		results, err := analyzer.RunFullAnalysis()
		if err != nil {
			return err
		}

		priceStats, err := services.ComputeColumnStats(results.PriceScenarios, "option_price")
		if err != nil {
			return err
		}

		log.Infof("price scenarios for %s: min $%.2f, max $%.2f, mean $%.2f", analyzer.Config().DisplayName(), priceStats.Min, priceStats.Max, priceStats.Mean)

		if args.OutDir != "" {
			exportDir, err := services.CreateExportDirectory(args.OutDir, analyzer.Config())
			if err != nil {
				return err
			}

			if _, err := services.BulkExport(results, analyzer.Config(), exportDir, args.Formats); err != nil {
				return err
			}

			log.Infof("analysis complete, results saved to: %s", exportDir)
		}

		if args.PlotDir != "" {
			output, err := services.ExecPlotSweep(args.PlotDir, services.PlotInput{
				Title:   fmt.Sprintf("%s time decay", analyzer.Config().DisplayName()),
				Columns: []string{"days_to_expiration", "option_price", "time_value"},
				Records: results.TimeAnalysis,
				OutPath: filepath.Join(args.PlotDir, fmt.Sprintf("%s_time_decay.png", analyzer.Config().DisplayName())),
			})
			if err != nil {
				return fmt.Errorf("failed to plot time decay: %w", err)
			}

			log.Info(output)
		}
	}

	return nil
}

func main() {
	runCmd.PersistentFlags().String("config", "", "JSON or YAML config file (single config, list, or document with a configurations key).")
	runCmd.PersistentFlags().Bool("live", false, "Fetch configs from live market data instead of a file.")
	runCmd.PersistentFlags().String("ticker", "", "Ticker symbol for live mode.")
	runCmd.PersistentFlags().Int("daysToExpiry", 30, "Target days to expiry for live mode.")
	runCmd.PersistentFlags().String("outDir", "", "The directory to write exports to.")
	runCmd.PersistentFlags().StringSlice("formats", []string{"csv"}, "Export formats: csv, json.")
	runCmd.PersistentFlags().String("plotDir", "", "Directory containing plot_sweep.py and its env virtualenv. When set, a time decay chart is rendered there.")

	runCmd.Execute()
}

package services

import (
	"fmt"
	"strings"

	"github.com/jiaming2012/options-analyzer/src/optionmodels"
)

func tickerOrDefault(cfg optionmodels.OptionConfig) string {
	if cfg.Ticker != "" {
		return cfg.Ticker
	}

	return "Stock"
}

// CreateStrategyConfigs derives the two-leg configurations for a common
// option strategy from a single base configuration.
func CreateStrategyConfigs(base optionmodels.OptionConfig, strategyType string) ([]optionmodels.OptionConfig, error) {
	underlyingPrice := base.CurrentPrice

	switch strings.ToLower(strategyType) {
	case "straddle":
		// long straddle: buy call and put at the same strike
		callConfig := base
		callConfig.OptionType = string(optionmodels.Call)
		callConfig.Name = fmt.Sprintf("Straddle Call - %s", tickerOrDefault(base))

		putConfig := base
		putConfig.OptionType = string(optionmodels.Put)
		putConfig.Name = fmt.Sprintf("Straddle Put - %s", tickerOrDefault(base))

		return []optionmodels.OptionConfig{callConfig, putConfig}, nil

	case "strangle":
		// long strangle: buy 5% OTM call and 5% OTM put
		callConfig := base
		callConfig.OptionType = string(optionmodels.Call)
		callConfig.StrikePrice = underlyingPrice * 1.05
		callConfig.Name = fmt.Sprintf("Strangle Call - %s", tickerOrDefault(base))

		putConfig := base
		putConfig.OptionType = string(optionmodels.Put)
		putConfig.StrikePrice = underlyingPrice * 0.95
		putConfig.Name = fmt.Sprintf("Strangle Put - %s", tickerOrDefault(base))

		return []optionmodels.OptionConfig{callConfig, putConfig}, nil

	case "spread":
		// bull call spread: buy slightly ITM, sell OTM
		longConfig := base
		longConfig.OptionType = string(optionmodels.Call)
		longConfig.StrikePrice = underlyingPrice * 0.98
		longConfig.Name = fmt.Sprintf("Spread Long Call - %s", tickerOrDefault(base))

		shortConfig := base
		shortConfig.OptionType = string(optionmodels.Call)
		shortConfig.StrikePrice = underlyingPrice * 1.05
		shortConfig.Name = fmt.Sprintf("Spread Short Call - %s", tickerOrDefault(base))

		return []optionmodels.OptionConfig{longConfig, shortConfig}, nil

	default:
		return nil, fmt.Errorf("CreateStrategyConfigs: unknown strategy type %s: %w", strategyType, optionmodels.InvalidConfigErr)
	}
}

package sweeps

import (
	"fmt"
	"time"

	"github.com/jiaming2012/options-analyzer/src/optionmodels"
)

type SweepKind string

const (
	SweepOverTime       SweepKind = "time"
	SweepOverPrice      SweepKind = "price"
	SweepOverVolatility SweepKind = "volatility"
)

func (k SweepKind) Validate() error {
	if k != SweepOverTime && k != SweepOverPrice && k != SweepOverVolatility {
		return fmt.Errorf("SweepKind: Validate: found %s: %w", k, optionmodels.UnknownSweepKindErr)
	}

	return nil
}

// CompareStrategies runs the selected sweep strategy once per configuration
// with the default point counts, tags every record with the configuration's
// name (or a 1-based Strategy_N fallback), and concatenates the results in
// configuration order. An unknown kind fails before any sweep runs.
func CompareStrategies(cfgs []optionmodels.NormalizedConfig, kind SweepKind, now time.Time) ([]optionmodels.SweepRecord, error) {
	if err := kind.Validate(); err != nil {
		return nil, err
	}

	var combined []optionmodels.SweepRecord

	for i, cfg := range cfgs {
		label := cfg.Name
		if label == "" {
			label = fmt.Sprintf("Strategy_%d", i+1)
		}

		var records []optionmodels.SweepRecord
		var err error

		switch kind {
		case SweepOverTime:
			records, err = OverTime(cfg, DefaultTimePoints, now)
		case SweepOverPrice:
			records, err = OverPrice(cfg, nil, DefaultPricePoints)
		case SweepOverVolatility:
			records, err = OverVolatility(cfg, nil, DefaultVolatilityPoints)
		}

		if err != nil {
			return nil, fmt.Errorf("CompareStrategies: %s sweep for %s failed: %w", kind, label, err)
		}

		for j := range records {
			records[j].Strategy = label
		}

		combined = append(combined, records...)
	}

	return combined, nil
}

package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/montanaflynn/stats"
	log "github.com/sirupsen/logrus"

	"github.com/jiaming2012/options-analyzer/src/optionmodels"
	"github.com/jiaming2012/options-analyzer/src/pricing"
	"github.com/jiaming2012/options-analyzer/src/sweeps"
)

const (
	analysisTimePoints       = 20
	analysisPricePoints      = 25
	analysisVolatilityPoints = 15

	atmMoneynessBand = 0.02
)

// Analyzer is the high-level entry point for a single configuration: it
// normalizes the config once and serves summaries and full sweep analyses
// from the resulting ParameterSet.
type Analyzer struct {
	RunID uuid.UUID

	cfg optionmodels.NormalizedConfig
	now time.Time
}

func NewAnalyzer(cfg optionmodels.OptionConfig, now time.Time) (*Analyzer, error) {
	normalized, err := cfg.Normalize(now)
	if err != nil {
		return nil, fmt.Errorf("NewAnalyzer: %w", err)
	}

	return &Analyzer{
		RunID: uuid.New(),
		cfg:   normalized,
		now:   now,
	}, nil
}

func (a *Analyzer) Config() optionmodels.NormalizedConfig {
	return a.cfg
}

type Summary struct {
	Ticker               string                    `json:"ticker"`
	OptionType           optionmodels.OptionType   `json:"option_type"`
	StrikePrice          float64                   `json:"strike_price"`
	CurrentStockPrice    float64                   `json:"current_stock_price"`
	DaysToExpiry         int                       `json:"days_to_expiry"`
	MoneynessStatus      string                    `json:"moneyness_status"`
	MoneynessRatio       float64                   `json:"moneyness_ratio"`
	OptionPrice          float64                   `json:"option_price"`
	IntrinsicValue       float64                   `json:"intrinsic_value"`
	TimeValue            float64                   `json:"time_value"`
	Greeks               optionmodels.GreeksResult `json:"greeks"`
	ImpliedVolatilityPct float64                   `json:"implied_volatility_pct"`
}

func (a *Analyzer) Summary() (Summary, error) {
	eval, err := pricing.Evaluate(a.cfg.Params)
	if err != nil {
		return Summary{}, fmt.Errorf("Summary: %w", err)
	}

	moneyness := a.cfg.Params.UnderlyingPrice / a.cfg.Params.StrikePrice
	status := moneynessStatus(moneyness, a.cfg.Params.OptionType)

	ticker := a.cfg.Ticker
	if ticker == "" {
		ticker = "N/A"
	}

	return Summary{
		Ticker:               ticker,
		OptionType:           a.cfg.Params.OptionType,
		StrikePrice:          a.cfg.Params.StrikePrice,
		CurrentStockPrice:    a.cfg.Params.UnderlyingPrice,
		DaysToExpiry:         optionmodels.DaysBetween(a.now, a.cfg.Expiration),
		MoneynessStatus:      status,
		MoneynessRatio:       moneyness,
		OptionPrice:          eval.Price,
		IntrinsicValue:       eval.Intrinsic,
		TimeValue:            eval.TimeValue,
		Greeks:               eval.Greeks,
		ImpliedVolatilityPct: a.cfg.Params.Volatility * 100,
	}, nil
}

func moneynessStatus(moneyness float64, optionType optionmodels.OptionType) string {
	if moneyness > 1-atmMoneynessBand && moneyness < 1+atmMoneynessBand {
		return "ATM"
	}

	itm := moneyness > 1
	if optionType == optionmodels.Put {
		itm = moneyness < 1
	}

	if itm {
		return "ITM"
	}

	return "OTM"
}

type AnalysisResults struct {
	TimeAnalysis        []optionmodels.SweepRecord `json:"time_analysis"`
	PriceScenarios      []optionmodels.SweepRecord `json:"price_scenarios"`
	VolatilityScenarios []optionmodels.SweepRecord `json:"volatility_scenarios"`
}

// Tables returns the result tables keyed by the names used for export
// files.
func (r AnalysisResults) Tables() map[string][]optionmodels.SweepRecord {
	return map[string][]optionmodels.SweepRecord{
		"time_analysis":        r.TimeAnalysis,
		"price_scenarios":      r.PriceScenarios,
		"volatility_scenarios": r.VolatilityScenarios,
	}
}

// RunFullAnalysis runs all three sweep strategies with the standard
// analysis grids.
func (a *Analyzer) RunFullAnalysis() (AnalysisResults, error) {
	log.Infof("run %s: analyzing time decay for %s", a.RunID, a.cfg.DisplayName())
	timeAnalysis, err := sweeps.OverTime(a.cfg, analysisTimePoints, a.now)
	if err != nil {
		return AnalysisResults{}, fmt.Errorf("RunFullAnalysis: time sweep: %w", err)
	}

	log.Infof("run %s: analyzing price scenarios for %s", a.RunID, a.cfg.DisplayName())
	priceScenarios, err := sweeps.OverPrice(a.cfg, nil, analysisPricePoints)
	if err != nil {
		return AnalysisResults{}, fmt.Errorf("RunFullAnalysis: price sweep: %w", err)
	}

	log.Infof("run %s: analyzing volatility scenarios for %s", a.RunID, a.cfg.DisplayName())
	volatilityScenarios, err := sweeps.OverVolatility(a.cfg, nil, analysisVolatilityPoints)
	if err != nil {
		return AnalysisResults{}, fmt.Errorf("RunFullAnalysis: volatility sweep: %w", err)
	}

	return AnalysisResults{
		TimeAnalysis:        timeAnalysis,
		PriceScenarios:      priceScenarios,
		VolatilityScenarios: volatilityScenarios,
	}, nil
}

type ColumnStats struct {
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
}

// ComputeColumnStats summarizes one flattened column of a sweep table.
func ComputeColumnStats(records []optionmodels.SweepRecord, column string) (ColumnStats, error) {
	if len(records) == 0 {
		return ColumnStats{}, fmt.Errorf("ComputeColumnStats: no records")
	}

	values := make([]float64, 0, len(records))
	for _, record := range records {
		value, found := record.Flatten()[column]
		if !found {
			return ColumnStats{}, fmt.Errorf("ComputeColumnStats: unknown column: %s", column)
		}

		values = append(values, value)
	}

	min, err := stats.Min(values)
	if err != nil {
		return ColumnStats{}, fmt.Errorf("ComputeColumnStats: failed to calculate min: %v", err)
	}

	max, err := stats.Max(values)
	if err != nil {
		return ColumnStats{}, fmt.Errorf("ComputeColumnStats: failed to calculate max: %v", err)
	}

	mean, err := stats.Mean(values)
	if err != nil {
		return ColumnStats{}, fmt.Errorf("ComputeColumnStats: failed to calculate mean: %v", err)
	}

	stdDev, err := stats.StandardDeviation(values)
	if err != nil {
		return ColumnStats{}, fmt.Errorf("ComputeColumnStats: failed to calculate the standard deviation: %v", err)
	}

	return ColumnStats{
		Min:    min,
		Max:    max,
		Mean:   mean,
		StdDev: stdDev,
	}, nil
}

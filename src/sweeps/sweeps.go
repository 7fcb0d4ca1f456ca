package sweeps

import (
	"fmt"
	"time"

	"github.com/jiaming2012/options-analyzer/src/optionmodels"
	"github.com/jiaming2012/options-analyzer/src/pricing"
)

// Range bounds one sweep dimension, endpoints inclusive.
type Range struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

const (
	DefaultTimePoints       = 20
	DefaultPricePoints      = 20
	DefaultVolatilityPoints = 10
)

var DefaultVolatilityRange = Range{Low: 0.10, High: 0.80}

// DefaultPriceRange spans 70% to 130% of the configured underlying price.
func DefaultPriceRange(cfg optionmodels.NormalizedConfig) Range {
	return Range{
		Low:  cfg.Params.UnderlyingPrice * 0.7,
		High: cfg.Params.UnderlyingPrice * 1.3,
	}
}

// linspace returns numPoints evenly spaced values with both endpoints
// included. numPoints <= 0 yields an empty grid; numPoints == 1 yields just
// the low endpoint.
func linspace(low, high float64, numPoints int) []float64 {
	if numPoints <= 0 {
		return nil
	}

	if numPoints == 1 {
		return []float64{low}
	}

	points := make([]float64, numPoints)
	step := (high - low) / float64(numPoints-1)
	for i := range points {
		points[i] = low + step*float64(i)
	}
	points[numPoints-1] = high

	return points
}

func evaluationDates(start, end time.Time, numPoints int) []time.Time {
	if numPoints <= 0 {
		return nil
	}

	if numPoints == 1 {
		return []time.Time{start}
	}

	dates := make([]time.Time, numPoints)
	step := end.Sub(start) / time.Duration(numPoints-1)
	for i := range dates {
		dates[i] = start.Add(step * time.Duration(i))
	}
	dates[numPoints-1] = end

	return dates
}

func newRecord(p optionmodels.ParameterSet, eval pricing.Evaluation) optionmodels.SweepRecord {
	return optionmodels.SweepRecord{
		TimeToExpirationYears: p.TimeToExpiration,
		UnderlyingPrice:       p.UnderlyingPrice,
		Moneyness:             p.UnderlyingPrice / p.StrikePrice,
		ImpliedVolatility:     p.Volatility,
		OptionPrice:           eval.Price,
		IntrinsicValue:        eval.Intrinsic,
		TimeValue:             eval.TimeValue,
		Delta:                 eval.Greeks.Delta,
		Gamma:                 eval.Greeks.Gamma,
		Theta:                 eval.Greeks.Theta,
		Vega:                  eval.Greeks.Vega,
		Rho:                   eval.Greeks.Rho,
	}
}

// OverTime re-evaluates the option at numPoints dates evenly spaced between
// now and the configured expiration, ascending. The final grid point lands
// on the expiration itself, so the last record reflects the intrinsic-value
// boundary.
func OverTime(cfg optionmodels.NormalizedConfig, numPoints int, now time.Time) ([]optionmodels.SweepRecord, error) {
	return OverTimeDates(cfg, evaluationDates(now, cfg.Expiration, numPoints))
}

// OverTimeDates evaluates at explicit caller-supplied dates, preserving
// their order.
func OverTimeDates(cfg optionmodels.NormalizedConfig, dates []time.Time) ([]optionmodels.SweepRecord, error) {
	records := make([]optionmodels.SweepRecord, 0, len(dates))

	for _, date := range dates {
		params := cfg.Params.WithTimeToExpiration(optionmodels.YearFraction(date, cfg.Expiration))

		eval, err := pricing.Evaluate(params)
		if err != nil {
			return nil, fmt.Errorf("OverTimeDates: evaluation at %s failed: %w", date.Format(optionmodels.SweepDateLayout), err)
		}

		record := newRecord(params, eval)
		record.Date = date.Format(optionmodels.SweepDateLayout)
		record.DaysToExpiration = optionmodels.DaysBetween(date, cfg.Expiration)

		records = append(records, record)
	}

	return records, nil
}

// OverPrice re-evaluates the option across numPoints underlying prices.
// A nil rng defaults to 70%-130% of the configured underlying price. Time
// to expiration stays fixed at the normalized config's value.
func OverPrice(cfg optionmodels.NormalizedConfig, rng *Range, numPoints int) ([]optionmodels.SweepRecord, error) {
	if rng == nil {
		defaultRange := DefaultPriceRange(cfg)
		rng = &defaultRange
	}

	prices := linspace(rng.Low, rng.High, numPoints)
	records := make([]optionmodels.SweepRecord, 0, len(prices))

	for _, underlyingPrice := range prices {
		params := cfg.Params.WithUnderlyingPrice(underlyingPrice)

		eval, err := pricing.Evaluate(params)
		if err != nil {
			return nil, fmt.Errorf("OverPrice: evaluation at underlying price %v failed: %w", underlyingPrice, err)
		}

		records = append(records, newRecord(params, eval))
	}

	return records, nil
}

// OverVolatility re-evaluates the option across numPoints volatility
// levels. A nil rng defaults to [0.10, 0.80].
func OverVolatility(cfg optionmodels.NormalizedConfig, rng *Range, numPoints int) ([]optionmodels.SweepRecord, error) {
	if rng == nil {
		rng = &DefaultVolatilityRange
	}

	volatilities := linspace(rng.Low, rng.High, numPoints)
	records := make([]optionmodels.SweepRecord, 0, len(volatilities))

	for _, volatility := range volatilities {
		params := cfg.Params.WithVolatility(volatility)

		eval, err := pricing.Evaluate(params)
		if err != nil {
			return nil, fmt.Errorf("OverVolatility: evaluation at volatility %v failed: %w", volatility, err)
		}

		records = append(records, newRecord(params, eval))
	}

	return records, nil
}

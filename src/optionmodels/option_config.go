package optionmodels

import (
	"fmt"
	"strings"
	"time"
)

const ExpirationDateLayout = "2006-01-02"

// DefaultRiskFreeRate is applied when a configuration omits risk_free_rate.
const DefaultRiskFreeRate = 0.045

// OptionConfig is the loosely-typed mapping supplied by the outside world:
// a JSON or YAML file, an HTTP request body, or a live quote fetch.
// Volatility may arrive under either implied_volatility or volatility; the
// alias is resolved exactly once, in Normalize.
type OptionConfig struct {
	Name              string   `json:"name,omitempty" yaml:"name,omitempty"`
	Ticker            string   `json:"ticker,omitempty" yaml:"ticker,omitempty"`
	CurrentPrice      float64  `json:"current_price" yaml:"current_price"`
	StrikePrice       float64  `json:"strike_price" yaml:"strike_price"`
	ExpirationDate    string   `json:"expiration_date" yaml:"expiration_date"`
	OptionType        string   `json:"option_type" yaml:"option_type"`
	ImpliedVolatility *float64 `json:"implied_volatility,omitempty" yaml:"implied_volatility,omitempty"`
	Volatility        *float64 `json:"volatility,omitempty" yaml:"volatility,omitempty"`
	RiskFreeRate      *float64 `json:"risk_free_rate,omitempty" yaml:"risk_free_rate,omitempty"`
	Notes             string   `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// NormalizedConfig is the strict, fully validated form of an OptionConfig.
// Params.TimeToExpiration is fixed at normalization time from the evaluation
// clock passed to Normalize.
type NormalizedConfig struct {
	Name       string
	Ticker     string
	Expiration time.Time
	Params     ParameterSet
}

func (c NormalizedConfig) DisplayName() string {
	if c.Name != "" {
		return c.Name
	}

	ticker := c.Ticker
	if ticker == "" {
		ticker = "option"
	}

	return fmt.Sprintf("%s %s $%.2f", ticker, c.Params.OptionType, c.Params.StrikePrice)
}

func (c OptionConfig) resolveVolatility() (float64, error) {
	if c.ImpliedVolatility != nil && c.Volatility != nil && *c.ImpliedVolatility != *c.Volatility {
		return 0, fmt.Errorf("OptionConfig: Normalize: implied_volatility %v conflicts with volatility %v: %w", *c.ImpliedVolatility, *c.Volatility, InvalidConfigErr)
	}

	if c.ImpliedVolatility != nil {
		return *c.ImpliedVolatility, nil
	}

	if c.Volatility != nil {
		return *c.Volatility, nil
	}

	return 0, fmt.Errorf("OptionConfig: Normalize: missing required field implied_volatility: %w", InvalidConfigErr)
}

// Normalize validates every field and resolves aliases and defaults,
// producing the typed ParameterSet downstream components consume. It fails
// before any evaluation can begin; nothing downstream ever sees a partially
// valid configuration.
func (c OptionConfig) Normalize(now time.Time) (NormalizedConfig, error) {
	if c.CurrentPrice <= 0 {
		return NormalizedConfig{}, fmt.Errorf("OptionConfig: Normalize: current_price must be a positive number, found %v: %w", c.CurrentPrice, InvalidConfigErr)
	}

	if c.StrikePrice <= 0 {
		return NormalizedConfig{}, fmt.Errorf("OptionConfig: Normalize: strike_price must be a positive number, found %v: %w", c.StrikePrice, InvalidConfigErr)
	}

	volatility, err := c.resolveVolatility()
	if err != nil {
		return NormalizedConfig{}, err
	}

	if volatility <= 0 {
		return NormalizedConfig{}, fmt.Errorf("OptionConfig: Normalize: implied_volatility must be a positive number, found %v: %w", volatility, InvalidConfigErr)
	}

	optionType := OptionType(strings.ToLower(c.OptionType))
	if err := optionType.Validate(); err != nil {
		return NormalizedConfig{}, fmt.Errorf("OptionConfig: Normalize: %w", err)
	}

	if c.ExpirationDate == "" {
		return NormalizedConfig{}, fmt.Errorf("OptionConfig: Normalize: missing required field expiration_date: %w", InvalidConfigErr)
	}

	expiration, err := time.Parse(ExpirationDateLayout, c.ExpirationDate)
	if err != nil {
		return NormalizedConfig{}, fmt.Errorf("OptionConfig: Normalize: expiration_date must be in YYYY-MM-DD format, found %s: %w", c.ExpirationDate, InvalidConfigErr)
	}

	if !expiration.After(now) {
		return NormalizedConfig{}, fmt.Errorf("OptionConfig: Normalize: expiration_date %s must be in the future: %w", c.ExpirationDate, InvalidConfigErr)
	}

	riskFreeRate := DefaultRiskFreeRate
	if c.RiskFreeRate != nil {
		riskFreeRate = *c.RiskFreeRate
	}

	return NormalizedConfig{
		Name:       c.Name,
		Ticker:     c.Ticker,
		Expiration: expiration,
		Params: ParameterSet{
			UnderlyingPrice:  c.CurrentPrice,
			StrikePrice:      c.StrikePrice,
			TimeToExpiration: YearFraction(now, expiration),
			RiskFreeRate:     riskFreeRate,
			Volatility:       volatility,
			OptionType:       optionType,
		},
	}, nil
}

// DaysBetween counts whole days from one instant to another, floored at
// zero once the target has passed.
func DaysBetween(from, to time.Time) int {
	days := int(to.Sub(from).Hours() / 24)
	if days < 0 {
		return 0
	}

	return days
}

func YearFraction(from, to time.Time) float64 {
	return float64(DaysBetween(from, to)) / 365.0
}

package optionmodels

import "fmt"

// ParameterSet holds the scalar inputs for a single Black-Scholes
// evaluation. Values are copied, never mutated in place: the sweep engine
// derives a fresh ParameterSet per grid point via the With* helpers.
type ParameterSet struct {
	UnderlyingPrice  float64
	StrikePrice      float64
	TimeToExpiration float64 // in years; 0 means the option has expired
	RiskFreeRate     float64
	Volatility       float64
	OptionType       OptionType
}

func (p ParameterSet) Validate() error {
	if p.UnderlyingPrice <= 0 {
		return fmt.Errorf("ParameterSet: Validate: underlying price must be positive, found %v: %w", p.UnderlyingPrice, InvalidConfigErr)
	}

	if p.StrikePrice <= 0 {
		return fmt.Errorf("ParameterSet: Validate: strike price must be positive, found %v: %w", p.StrikePrice, InvalidConfigErr)
	}

	if p.TimeToExpiration < 0 {
		return fmt.Errorf("ParameterSet: Validate: time to expiration must not be negative, found %v: %w", p.TimeToExpiration, InvalidConfigErr)
	}

	if p.Volatility <= 0 {
		return fmt.Errorf("ParameterSet: Validate: volatility must be positive, found %v: %w", p.Volatility, InvalidConfigErr)
	}

	return p.OptionType.Validate()
}

func (p ParameterSet) WithUnderlyingPrice(underlyingPrice float64) ParameterSet {
	p.UnderlyingPrice = underlyingPrice
	return p
}

func (p ParameterSet) WithTimeToExpiration(timeToExpiration float64) ParameterSet {
	p.TimeToExpiration = timeToExpiration
	return p
}

func (p ParameterSet) WithVolatility(volatility float64) ParameterSet {
	p.Volatility = volatility
	return p
}

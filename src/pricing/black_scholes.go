package pricing

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/jiaming2012/options-analyzer/src/optionmodels"
)

var stdNormal = distuv.UnitNormal

// D1D2 computes the two standard-normal arguments shared by the price and
// Greeks formulas. Keeping a single implementation guarantees the two stay
// numerically consistent. Both values are zero at or past expiration.
func D1D2(p optionmodels.ParameterSet) (float64, float64) {
	if p.TimeToExpiration <= 0 {
		return 0, 0
	}

	sqrtT := math.Sqrt(p.TimeToExpiration)
	d1 := (math.Log(p.UnderlyingPrice/p.StrikePrice) + (p.RiskFreeRate+0.5*p.Volatility*p.Volatility)*p.TimeToExpiration) / (p.Volatility * sqrtT)
	d2 := d1 - p.Volatility*sqrtT

	return d1, d2
}

func checkDomain(p optionmodels.ParameterSet) error {
	if p.UnderlyingPrice <= 0 {
		return fmt.Errorf("pricing: underlying price must be positive, found %v: %w", p.UnderlyingPrice, optionmodels.NumericDomainErr)
	}

	if p.StrikePrice <= 0 {
		return fmt.Errorf("pricing: strike price must be positive, found %v: %w", p.StrikePrice, optionmodels.NumericDomainErr)
	}

	if p.TimeToExpiration < 0 {
		return fmt.Errorf("pricing: time to expiration must not be negative, found %v: %w", p.TimeToExpiration, optionmodels.NumericDomainErr)
	}

	if p.TimeToExpiration > 0 && p.Volatility <= 0 {
		return fmt.Errorf("pricing: volatility must be positive before expiration, found %v: %w", p.Volatility, optionmodels.NumericDomainErr)
	}

	return p.OptionType.Validate()
}

// Price returns the Black-Scholes fair value of a European option. At
// expiration (TimeToExpiration <= 0) the price is the intrinsic value
// exactly, not a limit of the closed form.
func Price(p optionmodels.ParameterSet) (float64, error) {
	if err := checkDomain(p); err != nil {
		return 0, err
	}

	if p.TimeToExpiration <= 0 {
		return IntrinsicValue(p.UnderlyingPrice, p.StrikePrice, p.OptionType), nil
	}

	d1, d2 := D1D2(p)
	discount := math.Exp(-p.RiskFreeRate * p.TimeToExpiration)

	if p.OptionType == optionmodels.Call {
		return p.UnderlyingPrice*stdNormal.CDF(d1) - p.StrikePrice*discount*stdNormal.CDF(d2), nil
	}

	return p.StrikePrice*discount*stdNormal.CDF(-d2) - p.UnderlyingPrice*stdNormal.CDF(-d1), nil
}

// Greeks returns all five sensitivities. Theta is per calendar day; Vega
// and Rho are scaled to a one percentage-point move.
//
// At expiration Delta is 1.0 only for an in-the-money call and 0.0 in every
// other case, including in-the-money puts. Tests pin that asymmetry.
func Greeks(p optionmodels.ParameterSet) (optionmodels.GreeksResult, error) {
	if err := checkDomain(p); err != nil {
		return optionmodels.GreeksResult{}, err
	}

	if p.TimeToExpiration <= 0 {
		if p.OptionType == optionmodels.Call && p.UnderlyingPrice > p.StrikePrice {
			return optionmodels.GreeksResult{Delta: 1.0}, nil
		}

		return optionmodels.GreeksResult{}, nil
	}

	d1, d2 := D1D2(p)
	pdfD1 := stdNormal.Prob(d1)
	sqrtT := math.Sqrt(p.TimeToExpiration)
	discount := math.Exp(-p.RiskFreeRate * p.TimeToExpiration)

	var delta, theta, rho float64
	if p.OptionType == optionmodels.Call {
		delta = stdNormal.CDF(d1)
		theta = (-(p.UnderlyingPrice*pdfD1*p.Volatility)/(2*sqrtT) - p.RiskFreeRate*p.StrikePrice*discount*stdNormal.CDF(d2)) / 365
		rho = p.StrikePrice * p.TimeToExpiration * discount * stdNormal.CDF(d2) / 100
	} else {
		delta = stdNormal.CDF(d1) - 1
		theta = (-(p.UnderlyingPrice*pdfD1*p.Volatility)/(2*sqrtT) + p.RiskFreeRate*p.StrikePrice*discount*stdNormal.CDF(-d2)) / 365
		rho = -p.StrikePrice * p.TimeToExpiration * discount * stdNormal.CDF(-d2) / 100
	}

	return optionmodels.GreeksResult{
		Delta: delta,
		Gamma: pdfD1 / (p.UnderlyingPrice * p.Volatility * sqrtT),
		Theta: theta,
		Vega:  p.UnderlyingPrice * pdfD1 * sqrtT / 100,
		Rho:   rho,
	}, nil
}

// IntrinsicValue is the immediate-exercise payoff. It does not depend on
// the pricer.
func IntrinsicValue(underlyingPrice, strikePrice float64, optionType optionmodels.OptionType) float64 {
	if optionType == optionmodels.Call {
		return math.Max(underlyingPrice-strikePrice, 0)
	}

	return math.Max(strikePrice-underlyingPrice, 0)
}

// Evaluation bundles every output of a single grid-point evaluation.
type Evaluation struct {
	Price     float64
	Intrinsic float64
	TimeValue float64
	Greeks    optionmodels.GreeksResult
}

func Evaluate(p optionmodels.ParameterSet) (Evaluation, error) {
	price, err := Price(p)
	if err != nil {
		return Evaluation{}, err
	}

	greeks, err := Greeks(p)
	if err != nil {
		return Evaluation{}, err
	}

	intrinsic := IntrinsicValue(p.UnderlyingPrice, p.StrikePrice, p.OptionType)

	return Evaluation{
		Price:     price,
		Intrinsic: intrinsic,
		TimeValue: price - intrinsic,
		Greeks:    greeks,
	}, nil
}

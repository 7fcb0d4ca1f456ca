package optionmodels

const SweepDateLayout = "2006-01-02 15:04:05"

// SweepRecord is one row of a sweep table. Every sweep strategy fills the
// three model dimensions it knows (underlying price, time, volatility) plus
// the evaluation outputs; Date and DaysToExpiration are only set by time
// sweeps, and Strategy only by the comparator.
type SweepRecord struct {
	Strategy              string  `json:"strategy,omitempty" csv:"strategy"`
	Date                  string  `json:"date,omitempty" csv:"date"`
	DaysToExpiration      int     `json:"days_to_expiration" csv:"days_to_expiration"`
	TimeToExpirationYears float64 `json:"time_to_expiration_years" csv:"time_to_expiration_years"`
	UnderlyingPrice       float64 `json:"underlying_price" csv:"underlying_price"`
	Moneyness             float64 `json:"moneyness" csv:"moneyness"`
	ImpliedVolatility     float64 `json:"implied_volatility" csv:"implied_volatility"`
	OptionPrice           float64 `json:"option_price" csv:"option_price"`
	IntrinsicValue        float64 `json:"intrinsic_value" csv:"intrinsic_value"`
	TimeValue             float64 `json:"time_value" csv:"time_value"`
	Delta                 float64 `json:"delta" csv:"delta"`
	Gamma                 float64 `json:"gamma" csv:"gamma"`
	Theta                 float64 `json:"theta" csv:"theta"`
	Vega                  float64 `json:"vega" csv:"vega"`
	Rho                   float64 `json:"rho" csv:"rho"`
}

// Flatten returns the numeric columns keyed by their csv/json names, for
// column-oriented consumers such as plotting and summary statistics.
func (r SweepRecord) Flatten() map[string]float64 {
	return map[string]float64{
		"days_to_expiration":       float64(r.DaysToExpiration),
		"time_to_expiration_years": r.TimeToExpirationYears,
		"underlying_price":         r.UnderlyingPrice,
		"moneyness":                r.Moneyness,
		"implied_volatility":       r.ImpliedVolatility,
		"option_price":             r.OptionPrice,
		"intrinsic_value":          r.IntrinsicValue,
		"time_value":               r.TimeValue,
		"delta":                    r.Delta,
		"gamma":                    r.Gamma,
		"theta":                    r.Theta,
		"vega":                     r.Vega,
		"rho":                      r.Rho,
	}
}

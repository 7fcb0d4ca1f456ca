package optionmodels

// GreeksResult holds the five first- and second-order sensitivities of an
// option's price. Theta is per calendar day; Vega and Rho are per one
// percentage point change in volatility and rate respectively.
type GreeksResult struct {
	Delta float64 `json:"delta"`
	Gamma float64 `json:"gamma"`
	Theta float64 `json:"theta"`
	Vega  float64 `json:"vega"`
	Rho   float64 `json:"rho"`
}

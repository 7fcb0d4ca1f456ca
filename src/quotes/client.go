package quotes

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/montanaflynn/stats"
	log "github.com/sirupsen/logrus"

	"github.com/jiaming2012/options-analyzer/src/optionmodels"
)

const tradingDaysPerYear = 252

// Client fetches quotes, close history, and option chains from a
// Tradier-compatible market data API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *Client) fetch(endpoint string, query url.Values, out interface{}) error {
	requestURL := fmt.Sprintf("%s%s?%s", c.baseURL, endpoint, query.Encode())

	req, err := http.NewRequest(http.MethodGet, requestURL, nil)
	if err != nil {
		return fmt.Errorf("fetch: failed to create request: %w", err)
	}

	req.Header.Add("Accept", "application/json")
	req.Header.Add("Authorization", fmt.Sprintf("Bearer %s", c.token))

	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("fetch: failed to fetch %s: %w", endpoint, err)
	}

	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch: failed to fetch %s: %s", endpoint, res.Status)
	}

	bytes, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("fetch: failed to read response body: %w", err)
	}

	if err := json.Unmarshal(bytes, out); err != nil {
		return fmt.Errorf("fetch: failed to parse response: %w", err)
	}

	return nil
}

type quoteDTO struct {
	Symbol string  `json:"symbol"`
	Last   float64 `json:"last"`
}

type quotesResponseDTO struct {
	Quotes struct {
		Quote []quoteDTO `json:"quote"`
	} `json:"quotes"`
}

func (c *Client) FetchQuote(symbol string) (float64, error) {
	query := url.Values{}
	query.Set("symbols", symbol)

	var response quotesResponseDTO
	if err := c.fetch("/v1/markets/quotes", query, &response); err != nil {
		return 0, fmt.Errorf("FetchQuote: %w", err)
	}

	if len(response.Quotes.Quote) == 0 {
		return 0, fmt.Errorf("FetchQuote: no quote returned for %s", symbol)
	}

	return response.Quotes.Quote[0].Last, nil
}

type historyDayDTO struct {
	Date  string  `json:"date"`
	Close float64 `json:"close"`
}

type historyResponseDTO struct {
	History struct {
		Day []historyDayDTO `json:"day"`
	} `json:"history"`
}

// FetchHistoricalVolatility estimates annualized volatility from the
// standard deviation of daily close-to-close returns over the window
// between start and end.
func (c *Client) FetchHistoricalVolatility(symbol string, start, end time.Time) (float64, error) {
	query := url.Values{}
	query.Set("symbol", symbol)
	query.Set("interval", "daily")
	query.Set("start", start.Format(optionmodels.ExpirationDateLayout))
	query.Set("end", end.Format(optionmodels.ExpirationDateLayout))

	var response historyResponseDTO
	if err := c.fetch("/v1/markets/history", query, &response); err != nil {
		return 0, fmt.Errorf("FetchHistoricalVolatility: %w", err)
	}

	days := response.History.Day
	if len(days) < 2 {
		return 0, fmt.Errorf("FetchHistoricalVolatility: not enough history for %s, found %d days", symbol, len(days))
	}

	returns := make([]float64, 0, len(days)-1)
	for i := 1; i < len(days); i++ {
		if days[i-1].Close == 0 {
			continue
		}
		returns = append(returns, days[i].Close/days[i-1].Close-1)
	}

	sd, err := stats.StandardDeviation(returns)
	if err != nil {
		return 0, fmt.Errorf("FetchHistoricalVolatility: failed to caculate the standard deviation: %v", err)
	}

	return sd * math.Sqrt(tradingDaysPerYear), nil
}

type expirationsResponseDTO struct {
	Expirations struct {
		Date []string `json:"date"`
	} `json:"expirations"`
}

func (c *Client) FetchExpirations(symbol string) ([]string, error) {
	query := url.Values{}
	query.Set("symbol", symbol)

	var response expirationsResponseDTO
	if err := c.fetch("/v1/markets/options/expirations", query, &response); err != nil {
		return nil, fmt.Errorf("FetchExpirations: %w", err)
	}

	return response.Expirations.Date, nil
}

type chainOptionDTO struct {
	Strike     float64 `json:"strike"`
	OptionType string  `json:"option_type"`
}

type chainResponseDTO struct {
	Options struct {
		Option []chainOptionDTO `json:"option"`
	} `json:"options"`
}

func (c *Client) FetchCallStrikes(symbol, expiration string) ([]float64, error) {
	query := url.Values{}
	query.Set("symbol", symbol)
	query.Set("expiration", expiration)

	var response chainResponseDTO
	if err := c.fetch("/v1/markets/options/chains", query, &response); err != nil {
		return nil, fmt.Errorf("FetchCallStrikes: %w", err)
	}

	seen := map[float64]bool{}
	var strikes []float64
	for _, option := range response.Options.Option {
		if optionmodels.OptionType(option.OptionType) != optionmodels.Call {
			continue
		}
		if seen[option.Strike] {
			continue
		}
		seen[option.Strike] = true
		strikes = append(strikes, option.Strike)
	}

	sort.Float64s(strikes)
	return strikes, nil
}

// selectExpiration picks the listed expiration within a week of the target
// horizon, falling back to the nearest listed date.
func selectExpiration(expirations []string, daysToExpiry int, now time.Time) (string, error) {
	for _, expiration := range expirations {
		expirationDate, err := time.Parse(optionmodels.ExpirationDateLayout, expiration)
		if err != nil {
			return "", fmt.Errorf("selectExpiration: failed to parse expiration %s: %w", expiration, err)
		}

		days := optionmodels.DaysBetween(now, expirationDate)
		if days-daysToExpiry <= 7 && daysToExpiry-days <= 7 {
			return expiration, nil
		}
	}

	return expirations[0], nil
}

// BuildLiveConfigs assembles ready-to-normalize option configurations for
// the four call strikes bracketing the current spot price, using historical
// volatility as the volatility input.
func (c *Client) BuildLiveConfigs(ticker string, daysToExpiry int, now time.Time) ([]optionmodels.OptionConfig, error) {
	spot, err := c.FetchQuote(ticker)
	if err != nil {
		return nil, fmt.Errorf("BuildLiveConfigs: %w", err)
	}

	if spot <= 0 {
		return nil, fmt.Errorf("BuildLiveConfigs: no price available for %s", ticker)
	}

	volatility, err := c.FetchHistoricalVolatility(ticker, now.AddDate(0, 0, -60), now)
	if err != nil {
		return nil, fmt.Errorf("BuildLiveConfigs: %w", err)
	}

	expirations, err := c.FetchExpirations(ticker)
	if err != nil {
		return nil, fmt.Errorf("BuildLiveConfigs: %w", err)
	}

	if len(expirations) == 0 {
		return nil, fmt.Errorf("BuildLiveConfigs: no options for %s", ticker)
	}

	expiration, err := selectExpiration(expirations, daysToExpiry, now)
	if err != nil {
		return nil, fmt.Errorf("BuildLiveConfigs: %w", err)
	}

	strikes, err := c.FetchCallStrikes(ticker, expiration)
	if err != nil {
		return nil, fmt.Errorf("BuildLiveConfigs: %w", err)
	}

	if len(strikes) == 0 {
		return nil, fmt.Errorf("BuildLiveConfigs: no call strikes for %s at %s", ticker, expiration)
	}

	closest := 0
	for i, strike := range strikes {
		if math.Abs(strike-spot) < math.Abs(strikes[closest]-spot) {
			closest = i
		}
	}

	low := closest - 2
	if low < 0 {
		low = 0
	}
	high := closest + 2
	if high > len(strikes) {
		high = len(strikes)
	}

	log.Infof("building %d live configs for %s expiring %s", high-low, ticker, expiration)

	var configs []optionmodels.OptionConfig
	for _, strike := range strikes[low:high] {
		vol := volatility
		configs = append(configs, optionmodels.OptionConfig{
			Name:              fmt.Sprintf("%s Call $%.2f", ticker, strike),
			Ticker:            ticker,
			CurrentPrice:      spot,
			StrikePrice:       strike,
			ExpirationDate:    expiration,
			OptionType:        string(optionmodels.Call),
			ImpliedVolatility: &vol,
		})
	}

	return configs, nil
}

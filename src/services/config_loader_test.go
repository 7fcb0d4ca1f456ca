package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempConfig(t *testing.T, name, contents string) string {
	t.Helper()

	filePath := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(filePath, []byte(contents), 0644))
	return filePath
}

func TestLoadOptionConfigs(t *testing.T) {
	t.Run("json single object", func(t *testing.T) {
		filePath := writeTempConfig(t, "config.json", `{
			"ticker": "AAPL",
			"current_price": 175,
			"strike_price": 180,
			"expiration_date": "2025-04-15",
			"option_type": "call",
			"implied_volatility": 0.25
		}`)

		configs, err := LoadOptionConfigs(filePath)
		require.NoError(t, err)
		require.Len(t, configs, 1)
		assert.Equal(t, "AAPL", configs[0].Ticker)
		assert.Equal(t, 175.0, configs[0].CurrentPrice)
		require.NotNil(t, configs[0].ImpliedVolatility)
		assert.Equal(t, 0.25, *configs[0].ImpliedVolatility)
	})

	t.Run("json list", func(t *testing.T) {
		filePath := writeTempConfig(t, "configs.json", `[
			{"ticker": "AAPL", "current_price": 175, "strike_price": 180, "expiration_date": "2025-04-15", "option_type": "call", "implied_volatility": 0.25},
			{"ticker": "MSFT", "current_price": 410, "strike_price": 400, "expiration_date": "2025-04-15", "option_type": "put", "volatility": 0.22}
		]`)

		configs, err := LoadOptionConfigs(filePath)
		require.NoError(t, err)
		require.Len(t, configs, 2)
		assert.Equal(t, "MSFT", configs[1].Ticker)
		require.NotNil(t, configs[1].Volatility)
		assert.Equal(t, 0.22, *configs[1].Volatility)
	})

	t.Run("json configurations document", func(t *testing.T) {
		filePath := writeTempConfig(t, "doc.json", `{
			"configurations": [
				{"ticker": "SPY", "current_price": 500, "strike_price": 505, "expiration_date": "2025-06-20", "option_type": "call", "implied_volatility": 0.15}
			]
		}`)

		configs, err := LoadOptionConfigs(filePath)
		require.NoError(t, err)
		require.Len(t, configs, 1)
		assert.Equal(t, "SPY", configs[0].Ticker)
	})

	t.Run("yaml configurations document", func(t *testing.T) {
		filePath := writeTempConfig(t, "doc.yaml", `configurations:
  - name: Alpha
    ticker: AAPL
    current_price: 175
    strike_price: 180
    expiration_date: "2025-04-15"
    option_type: call
    implied_volatility: 0.25
  - ticker: TSLA
    current_price: 250
    strike_price: 240
    expiration_date: "2025-04-15"
    option_type: put
    volatility: 0.45
`)

		configs, err := LoadOptionConfigs(filePath)
		require.NoError(t, err)
		require.Len(t, configs, 2)
		assert.Equal(t, "Alpha", configs[0].Name)
		assert.Equal(t, "TSLA", configs[1].Ticker)
	})

	t.Run("missing file fails", func(t *testing.T) {
		_, err := LoadOptionConfigs(filepath.Join(t.TempDir(), "missing.json"))
		assert.ErrorContains(t, err, "failed to read")
	})

	t.Run("malformed file fails", func(t *testing.T) {
		filePath := writeTempConfig(t, "broken.json", `{not json`)

		_, err := LoadOptionConfigs(filePath)
		assert.ErrorContains(t, err, "failed to parse")
	})
}

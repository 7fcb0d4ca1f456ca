package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jiaming2012/options-analyzer/src/optionmodels"
)

func TestCreateStrategyConfigs(t *testing.T) {
	base := testOptionConfig()

	t.Run("straddle shares the strike across both legs", func(t *testing.T) {
		configs, err := CreateStrategyConfigs(base, "straddle")
		require.NoError(t, err)
		require.Len(t, configs, 2)

		assert.Equal(t, string(optionmodels.Call), configs[0].OptionType)
		assert.Equal(t, string(optionmodels.Put), configs[1].OptionType)
		assert.Equal(t, base.StrikePrice, configs[0].StrikePrice)
		assert.Equal(t, base.StrikePrice, configs[1].StrikePrice)
		assert.Equal(t, "Straddle Call - AAPL", configs[0].Name)
		assert.Equal(t, "Straddle Put - AAPL", configs[1].Name)
	})

	t.Run("strangle moves both strikes 5 percent out of the money", func(t *testing.T) {
		configs, err := CreateStrategyConfigs(base, "strangle")
		require.NoError(t, err)
		require.Len(t, configs, 2)

		assert.Equal(t, string(optionmodels.Call), configs[0].OptionType)
		assert.InDelta(t, base.CurrentPrice*1.05, configs[0].StrikePrice, 1e-9)
		assert.Equal(t, string(optionmodels.Put), configs[1].OptionType)
		assert.InDelta(t, base.CurrentPrice*0.95, configs[1].StrikePrice, 1e-9)
	})

	t.Run("spread builds a bull call spread", func(t *testing.T) {
		configs, err := CreateStrategyConfigs(base, "SPREAD")
		require.NoError(t, err)
		require.Len(t, configs, 2)

		assert.Equal(t, string(optionmodels.Call), configs[0].OptionType)
		assert.Equal(t, string(optionmodels.Call), configs[1].OptionType)
		assert.InDelta(t, base.CurrentPrice*0.98, configs[0].StrikePrice, 1e-9)
		assert.InDelta(t, base.CurrentPrice*1.05, configs[1].StrikePrice, 1e-9)
	})

	t.Run("unnamed ticker falls back to Stock", func(t *testing.T) {
		anonymous := base
		anonymous.Ticker = ""

		configs, err := CreateStrategyConfigs(anonymous, "straddle")
		require.NoError(t, err)
		assert.Equal(t, "Straddle Call - Stock", configs[0].Name)
	})

	t.Run("unknown strategy fails", func(t *testing.T) {
		_, err := CreateStrategyConfigs(base, "butterfly")
		assert.ErrorIs(t, err, optionmodels.InvalidConfigErr)
	})
}

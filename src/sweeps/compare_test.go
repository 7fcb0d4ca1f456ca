package sweeps

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jiaming2012/options-analyzer/src/optionmodels"
)

func TestSweepKindValidate(t *testing.T) {
	assert.NoError(t, SweepOverTime.Validate())
	assert.NoError(t, SweepOverPrice.Validate())
	assert.NoError(t, SweepOverVolatility.Validate())
	assert.ErrorIs(t, SweepKind("strike").Validate(), optionmodels.UnknownSweepKindErr)
}

func TestCompareStrategies(t *testing.T) {
	alpha := newTestConfig(t, "Alpha")
	unnamed := newTestConfig(t, "")

	t.Run("price comparison tags and concatenates in config order", func(t *testing.T) {
		records, err := CompareStrategies([]optionmodels.NormalizedConfig{alpha, unnamed}, SweepOverPrice, testNow)
		require.NoError(t, err)
		require.Len(t, records, 2*DefaultPricePoints)

		for i := 0; i < DefaultPricePoints; i++ {
			assert.Equal(t, "Alpha", records[i].Strategy)
		}
		for i := DefaultPricePoints; i < 2*DefaultPricePoints; i++ {
			assert.Equal(t, "Strategy_2", records[i].Strategy)
		}

		// internal order of each strategy's sweep is preserved
		assert.InDelta(t, 70.0, records[0].UnderlyingPrice, equalityThreshold)
		assert.InDelta(t, 130.0, records[DefaultPricePoints-1].UnderlyingPrice, equalityThreshold)
	})

	t.Run("time comparison uses the time grid", func(t *testing.T) {
		records, err := CompareStrategies([]optionmodels.NormalizedConfig{alpha}, SweepOverTime, testNow)
		require.NoError(t, err)
		require.Len(t, records, DefaultTimePoints)
		assert.NotEmpty(t, records[0].Date)
	})

	t.Run("volatility comparison uses the volatility grid", func(t *testing.T) {
		records, err := CompareStrategies([]optionmodels.NormalizedConfig{alpha, unnamed}, SweepOverVolatility, testNow)
		require.NoError(t, err)
		require.Len(t, records, 2*DefaultVolatilityPoints)
	})

	t.Run("unknown kind fails before any sweep runs", func(t *testing.T) {
		_, err := CompareStrategies([]optionmodels.NormalizedConfig{alpha}, SweepKind("strike"), testNow)
		assert.ErrorIs(t, err, optionmodels.UnknownSweepKindErr)
	})

	t.Run("no configs produce no records", func(t *testing.T) {
		records, err := CompareStrategies(nil, SweepOverPrice, testNow)
		require.NoError(t, err)
		assert.Empty(t, records)
	})
}

package optionmodels

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParameterSetValidate(t *testing.T) {
	valid := ParameterSet{
		UnderlyingPrice:  100,
		StrikePrice:      100,
		TimeToExpiration: 0.25,
		RiskFreeRate:     0.045,
		Volatility:       0.2,
		OptionType:       Call,
	}

	assert.NoError(t, valid.Validate())

	assert.ErrorIs(t, valid.WithUnderlyingPrice(0).Validate(), InvalidConfigErr)
	assert.ErrorIs(t, valid.WithVolatility(-0.2).Validate(), InvalidConfigErr)
	assert.ErrorIs(t, valid.WithTimeToExpiration(-1).Validate(), InvalidConfigErr)

	invalidType := valid
	invalidType.OptionType = "swaption"
	assert.ErrorIs(t, invalidType.Validate(), InvalidConfigErr)
}

func TestParameterSetCopies(t *testing.T) {
	base := ParameterSet{
		UnderlyingPrice:  100,
		StrikePrice:      100,
		TimeToExpiration: 0.25,
		RiskFreeRate:     0.045,
		Volatility:       0.2,
		OptionType:       Call,
	}

	derived := base.WithUnderlyingPrice(120).WithVolatility(0.3).WithTimeToExpiration(0.5)

	assert.Equal(t, 120.0, derived.UnderlyingPrice)
	assert.Equal(t, 0.3, derived.Volatility)
	assert.Equal(t, 0.5, derived.TimeToExpiration)

	// the base set is untouched
	assert.Equal(t, 100.0, base.UnderlyingPrice)
	assert.Equal(t, 0.2, base.Volatility)
	assert.Equal(t, 0.25, base.TimeToExpiration)
}

func TestOptionTypeValidate(t *testing.T) {
	assert.NoError(t, Call.Validate())
	assert.NoError(t, Put.Validate())
	assert.ErrorIs(t, OptionType("vertical_call").Validate(), InvalidConfigErr)
}

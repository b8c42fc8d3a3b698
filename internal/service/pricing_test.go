package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCostComputation(t *testing.T) {
	price := PriceFor("o4-mini")

	inputCost := price.InputCost(1000)
	outputCost := price.OutputCost(500)

	assert.True(t, inputCost.Equal(decimal.RequireFromString("0.0011")),
		"input cost = %s", inputCost)
	assert.True(t, outputCost.Equal(decimal.RequireFromString("0.0022")),
		"output cost = %s", outputCost)
}

func TestCostZeroTokens(t *testing.T) {
	price := PriceFor("gpt-4.1-mini")
	assert.True(t, price.InputCost(0).IsZero())
	assert.True(t, price.OutputCost(0).IsZero())
}

func TestUnknownModelPricesAtZero(t *testing.T) {
	price := PriceFor("some-future-model")
	assert.True(t, price.InputCost(123456).IsZero())
	assert.True(t, price.OutputCost(654321).IsZero())
}

package service

import "github.com/shopspring/decimal"

// ModelPrice holds per-million-token rates in USD.
type ModelPrice struct {
	Input  decimal.Decimal
	Output decimal.Decimal
}

var million = decimal.NewFromInt(1_000_000)

// priceTable is the static price list, loaded once at process start.
// Rates are dollars per 1M tokens.
var priceTable = map[string]ModelPrice{
	"o4-mini": {
		Input:  decimal.NewFromFloat(1.10),
		Output: decimal.NewFromFloat(4.40),
	},
	"gpt-4.1-mini": {
		Input:  decimal.NewFromFloat(0.40),
		Output: decimal.NewFromFloat(1.60),
	},
	"gpt-4.1-nano": {
		Input:  decimal.NewFromFloat(0.10),
		Output: decimal.NewFromFloat(0.40),
	},
}

// PriceFor returns the rates for a model. Unknown models price at zero,
// so an unpriced model never blocks a dispatch.
func PriceFor(model string) ModelPrice {
	return priceTable[model]
}

func (p ModelPrice) InputCost(tokens int) decimal.Decimal {
	return decimal.NewFromInt(int64(tokens)).Div(million).Mul(p.Input)
}

func (p ModelPrice) OutputCost(tokens int) decimal.Decimal {
	return decimal.NewFromInt(int64(tokens)).Div(million).Mul(p.Output)
}

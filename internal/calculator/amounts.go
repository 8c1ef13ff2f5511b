package calculator

import (
	"fmt"

	"github.com/govalues/decimal"
)

// TipAmount computes billTotal × tipPercentage.
func TipAmount(billTotal, tipPercentage decimal.Decimal) (decimal.Decimal, error) {
	tip, err := billTotal.Mul(tipPercentage)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("failed to compute tip: %w", err)
	}
	return tip, nil
}

// TotalAmount computes billTotal + billTotal × tipPercentage.
func TotalAmount(billTotal, tipPercentage decimal.Decimal) (decimal.Decimal, error) {
	tip, err := TipAmount(billTotal, tipPercentage)
	if err != nil {
		return decimal.Decimal{}, err
	}
	total, err := billTotal.Add(tip)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("failed to compute total: %w", err)
	}
	return total, nil
}

// Package engine implements the pure line-item value calculator.
//
// ComputeLineValue is side-effect free: given an immutable product snapshot
// and the line's pricing inputs it derives the per-unit value and the value
// per unit area. All rounding to 2 decimal places happens once, at the
// return boundary, so intermediate steps never compound rounding error.
package engine

import (
	"github.com/shopspring/decimal"

	"github.com/construsol/proposal-service/internal/domain/errs"
	"github.com/construsol/proposal-service/internal/domain/model"
	"github.com/construsol/proposal-service/internal/formula"
)

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

// LineValue is the derived pricing of one line item.
type LineValue struct {
	// UnitValue is the price of one consumption unit of the product.
	UnitValue decimal.Decimal
	// ValuePerUnitArea is the line's cost contribution per m².
	ValuePerUnitArea decimal.Decimal
}

// ComputeLineValue derives a line item's values from the product snapshot,
// the consumption rate, the breakage percentage, the correction factor and
// the calculation mode.
//
// In yield mode the consumption input deliberately does not participate:
// yield-based pricing is per package coverage, not per consumed unit.
func ComputeLineValue(
	product model.ProductRecord,
	consumption decimal.Decimal,
	breakagePct decimal.Decimal,
	factor decimal.Decimal,
	mode model.CalcMode,
	customFormula string,
) (LineValue, error) {
	unitValue := perUnitPrice(product)
	breakageMultiplier := one.Add(breakagePct.Div(hundred))

	var valuePerArea decimal.Decimal
	switch mode {
	case model.CalcModeDirect:
		valuePerArea = consumption.Mul(unitValue).Mul(breakageMultiplier).Mul(factor)

	case model.CalcModeYield:
		valuePerArea = unitValue.Mul(breakageMultiplier).Mul(factor)

	case model.CalcModeCustom:
		if customFormula == "" {
			return LineValue{}, &errs.FormulaError{Formula: customFormula, Reason: "custom mode requires a formula"}
		}
		result, err := formula.Evaluate(customFormula, map[string]float64{
			formula.VarPreco:      product.UnitPrice.InexactFloat64(),
			formula.VarConsumo:    consumption.InexactFloat64(),
			formula.VarQuebra:     breakagePct.InexactFloat64(),
			formula.VarFator:      factor.InexactFloat64(),
			formula.VarRendimento: product.PackageSize.InexactFloat64(),
		})
		if err != nil {
			return LineValue{}, err
		}
		valuePerArea = result

	default:
		return LineValue{}, &errs.FormulaError{Formula: string(mode), Reason: "unknown calculation mode"}
	}

	return LineValue{
		UnitValue:        unitValue.Round(2),
		ValuePerUnitArea: valuePerArea.Round(2),
	}, nil
}

// perUnitPrice divides the package price by the package size. A package
// size of zero or less falls back to the raw unit price; that is a defined
// tolerance for catalog records without packaging info, not a fault.
func perUnitPrice(product model.ProductRecord) decimal.Decimal {
	if product.PackageSize.IsPositive() {
		return product.UnitPrice.Div(product.PackageSize)
	}
	return product.UnitPrice
}

// Package model defines the core domain entities for the proposal service.
package model

import "github.com/shopspring/decimal"

// ProductRecord is an immutable snapshot of a catalog product used by the
// pricing engine. The engine never mutates it; price changes are picked up
// only by recomputing against a fresh snapshot.
//
// @Description Catalog product snapshot with pricing and packaging info
type ProductRecord struct {
	// Code uniquely identifies the product in the catalog.
	Code string `json:"code" example:"OSB-11"`
	// Description is the human-readable product name.
	Description string `json:"description" example:"Placa OSB 11mm 1,20x2,40m"`
	// UnitPrice is the sale price of one sellable unit (package).
	UnitPrice decimal.Decimal `json:"unit_price" swaggertype:"number" example:"45.00"`
	// PackageSize is the quantity contained in one sellable unit
	// (m² per roll, units per box, kg per bag). Must be > 0 for a
	// purchasable product; 0 is tolerated by the calculator.
	PackageSize decimal.Decimal `json:"package_size" swaggertype:"number" example:"1"`
	// UnitOfMeasure is the sales unit label (pc, m², rolo, balde).
	UnitOfMeasure string `json:"unit_of_measure" example:"pc"`
	// Category groups products for quantitative output (ESTRUTURA, FIXACAO...).
	Category string `json:"category" example:"ESTRUTURA"`
}

// CalcMode selects how a line item's value per unit area is derived.
type CalcMode string

const (
	// CalcModeDirect multiplies consumption by the per-unit price.
	CalcModeDirect CalcMode = "direct"
	// CalcModeYield divides the package price by its coverage; consumption
	// does not participate. Yield-based pricing is per package, which is why
	// the consumption input is ignored in this mode.
	CalcModeYield CalcMode = "yield"
	// CalcModeCustom evaluates a user-authored arithmetic formula.
	CalcModeCustom CalcMode = "custom"
)

// Valid reports whether the mode is one of the known calculation modes.
func (m CalcMode) Valid() bool {
	switch m {
	case CalcModeDirect, CalcModeYield, CalcModeCustom:
		return true
	}
	return false
}

package model

import (
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SyncTolerance is the maximum drift between a composition's cached total
// and the sum of its items before the composition is considered stale.
var SyncTolerance = decimal.NewFromFloat(0.01)

// CompositionLineItem is one priced material line inside a composition.
// UnitValue and ValuePerUnitArea are derived: they must always equal the
// pure calculator output for the stored inputs at the time of the last
// recompute. Staleness is surfaced, never silently tolerated.
type CompositionLineItem struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CompositionID primitive.ObjectID `bson:"composition_id" json:"composition_id"`
	// ProductCode references the catalog product by code.
	ProductCode string `bson:"product_code" json:"product_code"`
	// ConsumptionPerUnitArea is the material usage per m². Must be > 0.
	ConsumptionPerUnitArea decimal.Decimal `bson:"consumption_per_unit_area" json:"consumption_per_unit_area" swaggertype:"number"`
	// BreakagePercent is the waste surcharge, 0–50.
	BreakagePercent decimal.Decimal `bson:"breakage_percent" json:"breakage_percent" swaggertype:"number"`
	// CorrectionFactor is a project-condition multiplier, 0.1–10.
	CorrectionFactor decimal.Decimal `bson:"correction_factor" json:"correction_factor" swaggertype:"number"`
	// CalculationMode selects the pricing derivation.
	CalculationMode CalcMode `bson:"calculation_mode" json:"calculation_mode"`
	// CustomFormula holds the user formula; required iff mode is custom.
	CustomFormula string `bson:"custom_formula,omitempty" json:"custom_formula,omitempty"`
	// Order defines display priority. Unique per composition; gaps are
	// allowed after removals.
	Order int `bson:"order" json:"order"`
	// UnitValue is the derived per-unit price. Never hand-edited.
	UnitValue decimal.Decimal `bson:"unit_value" json:"unit_value" swaggertype:"number"`
	// ValuePerUnitArea is the derived cost contribution per m².
	ValuePerUnitArea decimal.Decimal `bson:"value_per_unit_area" json:"value_per_unit_area" swaggertype:"number"`
	CreatedAt        time.Time       `bson:"created_at" json:"created_at"`
	UpdatedAt        time.Time       `bson:"updated_at" json:"updated_at"`
}

// Composition is a named, ordered assembly of priced line items whose
// values roll up to a per-unit-area price (one wall type, one roof build).
// Items are exclusively owned: deleting the composition deletes them.
type Composition struct {
	ID   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name string             `bson:"name" json:"name"`
	// TotalValuePerUnitArea is the cached roll-up of item values. It is
	// authoritative only after a recompute; the Synchronized check exists
	// to surface staleness to the UI.
	TotalValuePerUnitArea decimal.Decimal `bson:"total_value_per_unit_area" json:"total_value_per_unit_area" swaggertype:"number"`
	CreatedAt             time.Time       `bson:"created_at" json:"created_at"`
	UpdatedAt             time.Time       `bson:"updated_at" json:"updated_at"`
}

// ItemsTotal sums the per-unit-area values of the given items.
func ItemsTotal(items []CompositionLineItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.ValuePerUnitArea)
	}
	return total
}

// Synchronized reports whether the cached total still agrees with the sum
// of the given items within SyncTolerance. It never corrects the cached
// value; only RecomputeTotal does that.
func (c Composition) Synchronized(items []CompositionLineItem) bool {
	return ItemsTotal(items).Sub(c.TotalValuePerUnitArea).Abs().LessThan(SyncTolerance)
}

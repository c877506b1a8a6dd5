// Package composition implements the composition aggregator: an ordered
// list of priced line items per composition, with add/edit/remove/reorder
// operations, catalog-driven recomputation and a rolled-up total per unit
// area.
package composition

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/construsol/proposal-service/internal/catalog"
	"github.com/construsol/proposal-service/internal/domain/errs"
	"github.com/construsol/proposal-service/internal/domain/model"
	"github.com/construsol/proposal-service/internal/engine"
	"github.com/construsol/proposal-service/internal/metrics"
	"github.com/construsol/proposal-service/internal/repository"
)

// Input bounds for line item fields.
var (
	maxBreakage = decimal.NewFromInt(50)
	minFactor   = decimal.NewFromFloat(0.1)
	maxFactor   = decimal.NewFromInt(10)
)

// refreshTolerance is the minimum value drift before a catalog refresh
// persists an item. Smaller deltas are rounding noise, not price changes.
var refreshTolerance = decimal.NewFromFloat(0.01)

// ItemInput carries the user-editable fields of a new line item.
type ItemInput struct {
	ProductCode            string
	ConsumptionPerUnitArea decimal.Decimal
	BreakagePercent        decimal.Decimal
	CorrectionFactor       decimal.Decimal
	CalculationMode        model.CalcMode
	CustomFormula          string
	// Order, when nil, is assigned as max existing order plus one.
	Order *int
}

// ItemPatch carries the fields of an edit; nil fields keep their value.
type ItemPatch struct {
	ProductCode            *string
	ConsumptionPerUnitArea *decimal.Decimal
	BreakagePercent        *decimal.Decimal
	CorrectionFactor       *decimal.Decimal
	CalculationMode        *model.CalcMode
	CustomFormula          *string
}

// View is a composition together with its items and the staleness check
// against the cached total.
type View struct {
	Composition  model.Composition          `json:"composition"`
	Items        []model.CompositionLineItem `json:"items"`
	Synchronized bool                       `json:"synchronized"`
}

// Aggregator owns composition line items: every structural change or
// catalog price change flows through here so the derived values and the
// cached total stay recomputed, never hand-edited.
type Aggregator struct {
	repo    repository.CompositionsRepositoryInterface
	catalog catalog.Catalog
}

// NewAggregator creates an aggregator over the given repository and catalog.
func NewAggregator(repo repository.CompositionsRepositoryInterface, cat catalog.Catalog) *Aggregator {
	return &Aggregator{repo: repo, catalog: cat}
}

// Create creates an empty composition.
func (a *Aggregator) Create(ctx context.Context, name string) (*model.Composition, error) {
	if name == "" {
		verr := &errs.ValidationError{}
		return nil, verr.Add("name", "must not be empty")
	}
	comp, err := a.repo.CreateComposition(ctx, name)
	if err == nil {
		metrics.RecordCompositionOperation("create", "success")
	}
	return comp, err
}

// Get returns the composition, its items and whether the cached total is
// still synchronized with them.
func (a *Aggregator) Get(ctx context.Context, id primitive.ObjectID) (*View, error) {
	comp, err := a.repo.GetComposition(ctx, id)
	if err != nil {
		return nil, err
	}
	items, err := a.repo.ListItems(ctx, id)
	if err != nil {
		return nil, err
	}
	return &View{
		Composition:  *comp,
		Items:        items,
		Synchronized: comp.Synchronized(items),
	}, nil
}

// List returns all compositions.
func (a *Aggregator) List(ctx context.Context) ([]model.Composition, error) {
	return a.repo.ListCompositions(ctx)
}

// Delete removes a composition and, through exclusive ownership, every
// item in it.
func (a *Aggregator) Delete(ctx context.Context, id primitive.ObjectID) error {
	if err := a.repo.DeleteComposition(ctx, id); err != nil {
		return err
	}
	metrics.RecordCompositionOperation("delete", "success")
	return nil
}

// AddItem validates the input, prices it against the current catalog and
// persists it. The composition total is recomputed afterwards. A catalog
// lookup failure aborts the whole operation with nothing persisted.
func (a *Aggregator) AddItem(ctx context.Context, compositionID primitive.ObjectID, input ItemInput) (*model.CompositionLineItem, error) {
	if err := validateFields(input.ProductCode, input.ConsumptionPerUnitArea, input.BreakagePercent,
		input.CorrectionFactor, input.CalculationMode, input.CustomFormula); err != nil {
		metrics.RecordCompositionOperation("add_item", "validation_error")
		return nil, err
	}

	product, err := a.catalog.GetProduct(ctx, input.ProductCode)
	if err != nil {
		metrics.RecordCompositionOperation("add_item", "catalog_lookup_error")
		return nil, err
	}

	value, err := engine.ComputeLineValue(product, input.ConsumptionPerUnitArea, input.BreakagePercent,
		input.CorrectionFactor, input.CalculationMode, input.CustomFormula)
	if err != nil {
		metrics.RecordCompositionOperation("add_item", "formula_error")
		return nil, err
	}

	order := 0
	if input.Order != nil {
		order = *input.Order
	} else {
		maxOrder, err := a.repo.MaxOrder(ctx, compositionID)
		if err != nil {
			return nil, err
		}
		order = maxOrder + 1
	}

	now := time.Now().UTC()
	item := &model.CompositionLineItem{
		CompositionID:          compositionID,
		ProductCode:            product.Code,
		ConsumptionPerUnitArea: input.ConsumptionPerUnitArea,
		BreakagePercent:        input.BreakagePercent,
		CorrectionFactor:       input.CorrectionFactor,
		CalculationMode:        input.CalculationMode,
		CustomFormula:          input.CustomFormula,
		Order:                  order,
		UnitValue:              value.UnitValue,
		ValuePerUnitArea:       value.ValuePerUnitArea,
		CreatedAt:              now,
		UpdatedAt:              now,
	}

	inserted, err := a.repo.InsertItem(ctx, item)
	if err != nil {
		return nil, err
	}
	if _, err := a.RecomputeTotal(ctx, compositionID); err != nil {
		return nil, err
	}
	metrics.RecordCompositionOperation("add_item", "success")
	return inserted, nil
}

// EditItem merges the patch into the stored item and reprices it against
// the current catalog price, not the price at creation time. The
// composition total is recomputed afterwards.
func (a *Aggregator) EditItem(ctx context.Context, itemID primitive.ObjectID, patch ItemPatch) (*model.CompositionLineItem, error) {
	item, err := a.repo.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	applyPatch(item, patch)

	if err := validateFields(item.ProductCode, item.ConsumptionPerUnitArea, item.BreakagePercent,
		item.CorrectionFactor, item.CalculationMode, item.CustomFormula); err != nil {
		metrics.RecordCompositionOperation("edit_item", "validation_error")
		return nil, err
	}

	product, err := a.catalog.GetProduct(ctx, item.ProductCode)
	if err != nil {
		metrics.RecordCompositionOperation("edit_item", "catalog_lookup_error")
		return nil, err
	}

	value, err := engine.ComputeLineValue(product, item.ConsumptionPerUnitArea, item.BreakagePercent,
		item.CorrectionFactor, item.CalculationMode, item.CustomFormula)
	if err != nil {
		metrics.RecordCompositionOperation("edit_item", "formula_error")
		return nil, err
	}
	item.UnitValue = value.UnitValue
	item.ValuePerUnitArea = value.ValuePerUnitArea
	item.UpdatedAt = time.Now().UTC()

	if err := a.repo.UpdateItem(ctx, item); err != nil {
		return nil, err
	}
	if _, err := a.RecomputeTotal(ctx, item.CompositionID); err != nil {
		return nil, err
	}
	metrics.RecordCompositionOperation("edit_item", "success")
	return item, nil
}

// RemoveItem deletes the item and recomputes the composition total.
// Remaining orders are not renumbered; gaps are allowed.
func (a *Aggregator) RemoveItem(ctx context.Context, itemID primitive.ObjectID) error {
	item, err := a.repo.GetItem(ctx, itemID)
	if err != nil {
		return err
	}
	if err := a.repo.DeleteItem(ctx, itemID); err != nil {
		return err
	}
	if _, err := a.RecomputeTotal(ctx, item.CompositionID); err != nil {
		return err
	}
	metrics.RecordCompositionOperation("remove_item", "success")
	return nil
}

// Reorder bulk-assigns new order values. Values are not recomputed; order
// does not participate in pricing.
func (a *Aggregator) Reorder(ctx context.Context, compositionID primitive.ObjectID, assignments []repository.OrderAssignment) error {
	if len(assignments) == 0 {
		return nil
	}

	verr := &errs.ValidationError{}
	seen := make(map[int]bool, len(assignments))
	for _, asn := range assignments {
		if seen[asn.Order] {
			verr.Add("order", "duplicate order value in reorder")
			break
		}
		seen[asn.Order] = true
	}
	if verr.HasViolations() {
		return verr
	}

	if err := a.repo.UpdateOrders(ctx, compositionID, assignments); err != nil {
		return err
	}
	metrics.RecordCompositionOperation("reorder", "success")
	return nil
}

// RefreshFromCatalog reprices every item against live catalog prices and
// persists only the items whose value moved by more than the tolerance.
// It returns the number of items actually changed. The total is recomputed
// when at least one item changed.
func (a *Aggregator) RefreshFromCatalog(ctx context.Context, compositionID primitive.ObjectID) (int, error) {
	items, err := a.repo.ListItems(ctx, compositionID)
	if err != nil {
		return 0, err
	}

	changed := 0
	for i := range items {
		item := &items[i]

		product, err := a.catalog.GetProduct(ctx, item.ProductCode)
		if err != nil {
			metrics.RecordCompositionOperation("refresh", "catalog_lookup_error")
			return changed, err
		}
		value, err := engine.ComputeLineValue(product, item.ConsumptionPerUnitArea, item.BreakagePercent,
			item.CorrectionFactor, item.CalculationMode, item.CustomFormula)
		if err != nil {
			metrics.RecordCompositionOperation("refresh", "formula_error")
			return changed, err
		}

		if value.ValuePerUnitArea.Sub(item.ValuePerUnitArea).Abs().LessThanOrEqual(refreshTolerance) &&
			value.UnitValue.Sub(item.UnitValue).Abs().LessThanOrEqual(refreshTolerance) {
			continue
		}

		item.UnitValue = value.UnitValue
		item.ValuePerUnitArea = value.ValuePerUnitArea
		item.UpdatedAt = time.Now().UTC()
		if err := a.repo.UpdateItem(ctx, item); err != nil {
			return changed, err
		}
		changed++
	}

	if changed > 0 {
		if _, err := a.RecomputeTotal(ctx, compositionID); err != nil {
			return changed, err
		}
	}
	metrics.RecordCompositionOperation("refresh", "success")
	return changed, nil
}

// RecomputeTotal sums the items' per-unit-area values and persists the
// result as the composition's cached total. The returned value is the
// authoritative total as of this call.
func (a *Aggregator) RecomputeTotal(ctx context.Context, compositionID primitive.ObjectID) (decimal.Decimal, error) {
	items, err := a.repo.ListItems(ctx, compositionID)
	if err != nil {
		return decimal.Zero, err
	}
	total := model.ItemsTotal(items)
	if err := a.repo.UpdateTotal(ctx, compositionID, total); err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

func applyPatch(item *model.CompositionLineItem, patch ItemPatch) {
	if patch.ProductCode != nil {
		item.ProductCode = *patch.ProductCode
	}
	if patch.ConsumptionPerUnitArea != nil {
		item.ConsumptionPerUnitArea = *patch.ConsumptionPerUnitArea
	}
	if patch.BreakagePercent != nil {
		item.BreakagePercent = *patch.BreakagePercent
	}
	if patch.CorrectionFactor != nil {
		item.CorrectionFactor = *patch.CorrectionFactor
	}
	if patch.CalculationMode != nil {
		item.CalculationMode = *patch.CalculationMode
	}
	if patch.CustomFormula != nil {
		item.CustomFormula = *patch.CustomFormula
	}
}

// validateFields accumulates every violated constraint so the caller can
// show all problems at once.
func validateFields(productCode string, consumption, breakage, factor decimal.Decimal, mode model.CalcMode, customFormula string) error {
	verr := &errs.ValidationError{}

	if productCode == "" {
		verr.Add("product_code", "must not be empty")
	}
	if !consumption.IsPositive() {
		verr.Add("consumption_per_unit_area", "must be greater than zero")
	}
	if breakage.IsNegative() || breakage.GreaterThan(maxBreakage) {
		verr.Add("breakage_percent", "must be between 0 and 50")
	}
	if factor.LessThan(minFactor) || factor.GreaterThan(maxFactor) {
		verr.Add("correction_factor", "must be between 0.1 and 10")
	}
	if !mode.Valid() {
		verr.Add("calculation_mode", "must be direct, yield or custom")
	}
	if mode == model.CalcModeCustom && customFormula == "" {
		verr.Add("custom_formula", "required for custom calculation mode")
	}
	if mode != model.CalcModeCustom && customFormula != "" {
		verr.Add("custom_formula", "only allowed for custom calculation mode")
	}

	if verr.HasViolations() {
		return verr
	}
	return nil
}

package pipeline

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/construsol/proposal-service/internal/catalog"
	"github.com/construsol/proposal-service/internal/domain/errs"
	"github.com/construsol/proposal-service/internal/domain/model"
	"github.com/construsol/proposal-service/internal/metrics"
)

// MaxDimension is the sanity ceiling for any single dimension (m or m²).
var MaxDimension = decimal.NewFromInt(10000)

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

// Pipeline computes quantitative bills of materials. It is stateless and
// safe for concurrent use; all mutable state lives in the orchestrator.
type Pipeline struct {
	catalog  catalog.Catalog
	registry *Registry
}

// New creates a pipeline over the given catalog and system registry.
func New(cat catalog.Catalog, registry *Registry) *Pipeline {
	return &Pipeline{catalog: cat, registry: registry}
}

// ComputeQuantities validates the request, resolves the material system,
// derives candidate line items, deduplicates them, rounds quantities to
// purchasable packages and returns the categorized result.
//
// An empty item list from a successful computation is a valid result and
// is tagged as such, distinct from any error.
func (p *Pipeline) ComputeQuantities(ctx context.Context, req model.CalculationRequest) (model.QuoteResult, error) {
	norm := req.Normalize()

	if err := p.validate(norm); err != nil {
		return model.QuoteResult{}, err
	}

	system, _ := p.registry.Resolve(norm.Sistema)

	candidates, err := p.deriveCandidates(ctx, norm, system)
	if err != nil {
		return model.QuoteResult{}, err
	}

	items, warnings := dedupe(candidates)

	for i := range items {
		packageAndPrice(&items[i])
	}

	sort.SliceStable(items, func(a, b int) bool {
		if items[a].Category != items[b].Category {
			return items[a].Category < items[b].Category
		}
		return items[a].SortOrder < items[b].SortOrder
	})

	return model.NewQuoteResult(system.ProposalType, items, warnings), nil
}

// ValidateRequest checks the request shape without computing. Used by the
// orchestrator to reject bad requests before touching any of its state.
func (p *Pipeline) ValidateRequest(req model.CalculationRequest) error {
	return p.validate(req.Normalize())
}

// validate accumulates every violated field instead of stopping at the
// first, so the caller can surface all problems at once.
func (p *Pipeline) validate(req model.CalculationRequest) error {
	verr := &errs.ValidationError{}

	area := decimal.NewFromFloat(req.AreaTelhado)
	if !area.IsPositive() {
		verr.Add("area_telhado", "must be greater than 0")
	} else if area.GreaterThan(MaxDimension) {
		verr.Add("area_telhado", fmt.Sprintf("must not exceed %s m²", MaxDimension))
	}

	lengths := []struct {
		field string
		value float64
	}{
		{"comprimento_cumeeira", req.ComprimentoCumeeira},
		{"comprimento_espigao", req.ComprimentoEspigao},
		{"comprimento_agua_furtada", req.ComprimentoAguaFurtada},
		{"perimetro", req.Perimetro},
	}
	for _, l := range lengths {
		v := decimal.NewFromFloat(l.value)
		if v.IsNegative() {
			verr.Add(l.field, "must not be negative")
		} else if v.GreaterThan(MaxDimension) {
			verr.Add(l.field, fmt.Sprintf("must not exceed %s m", MaxDimension))
		}
	}

	if _, ok := p.registry.Resolve(req.Sistema); !ok {
		verr.Add("sistema", fmt.Sprintf("unknown material system %q", req.Sistema))
	}

	if verr.HasViolations() {
		return verr
	}
	return nil
}

// deriveCandidates fans out to the catalog and produces the raw candidate
// list. The same product can legitimately appear more than once here (an
// accessory required by both a ridge rule and a perimeter rule); dedupe
// resolves that downstream.
func (p *Pipeline) deriveCandidates(ctx context.Context, req model.CalculationRequest, system System) ([]model.QuantitativeItem, error) {
	candidates := make([]model.QuantitativeItem, 0, len(system.Rules))

	for _, rule := range system.Rules {
		basisValue := basisValue(req, rule.Basis)
		if rule.Basis != BasisFixed && !basisValue.IsPositive() {
			continue
		}

		product, err := p.catalog.GetProduct(ctx, rule.ProductCode)
		if err != nil {
			metrics.RecordCatalogLookup("error")
			return nil, err
		}
		metrics.RecordCatalogLookup("success")

		net := netQuantity(rule, basisValue)
		withBreakage := net.Mul(one.Add(rule.BreakagePct.Div(hundred)))

		candidates = append(candidates, model.QuantitativeItem{
			Code:                 product.Code,
			Description:          product.Description,
			Category:             product.Category,
			NetQuantity:          net,
			QuantityWithBreakage: withBreakage,
			SalesUnit:            product.UnitOfMeasure,
			PackageSize:          product.PackageSize,
			UnitPrice:            product.UnitPrice,
			SortOrder:            rule.SortOrder,
			// PackageCount, BreakagePercent and LineTotal are filled in
			// after deduplication.
		})
	}

	return candidates, nil
}

func basisValue(req model.CalculationRequest, basis QuantityBasis) decimal.Decimal {
	switch basis {
	case BasisArea:
		return decimal.NewFromFloat(req.AreaTelhado)
	case BasisRidge:
		return decimal.NewFromFloat(req.ComprimentoCumeeira)
	case BasisHip:
		return decimal.NewFromFloat(req.ComprimentoEspigao)
	case BasisValley:
		return decimal.NewFromFloat(req.ComprimentoAguaFurtada)
	case BasisPerimeter:
		return decimal.NewFromFloat(req.Perimetro)
	case BasisFixed:
		return one
	}
	return decimal.Zero
}

// netQuantity turns a basis value into the net quantity of material needed.
// Coverage rules carry the basis value through unchanged: it is already in
// the unit the product's PackageSize covers (m² of roof), and packageAndPrice
// performs the one ceil-division into whole packages.
func netQuantity(rule DerivationRule, basisValue decimal.Decimal) decimal.Decimal {
	switch rule.Derivation {
	case DeriveCoverage:
		return basisValue
	default:
		if rule.Basis == BasisFixed {
			return rule.Consumption
		}
		return basisValue.Mul(rule.Consumption)
	}
}

// dedupe removes candidates sharing a (code, category) key, keeping the
// one with the lowest sort order. Discards are reported, not swallowed:
// a dropped duplicate can hide a genuinely double-counted accessory.
func dedupe(candidates []model.QuantitativeItem) ([]model.QuantitativeItem, []model.DedupWarning) {
	kept := make(map[model.DedupKey]int, len(candidates))
	items := make([]model.QuantitativeItem, 0, len(candidates))
	var warnings []model.DedupWarning

	for _, cand := range candidates {
		idx, seen := kept[cand.Key()]
		if !seen {
			kept[cand.Key()] = len(items)
			items = append(items, cand)
			continue
		}

		if cand.SortOrder < items[idx].SortOrder {
			warnings = append(warnings, model.DedupWarning{
				Code:               cand.Code,
				Category:           cand.Category,
				KeptSortOrder:      cand.SortOrder,
				DiscardedSortOrder: items[idx].SortOrder,
			})
			items[idx] = cand
		} else {
			warnings = append(warnings, model.DedupWarning{
				Code:               cand.Code,
				Category:           cand.Category,
				KeptSortOrder:      items[idx].SortOrder,
				DiscardedSortOrder: cand.SortOrder,
			})
		}
	}

	return items, warnings
}

// packageAndPrice rounds the surviving item up to whole sellable packages
// and derives its display breakage from net vs with-breakage quantities
// rather than echoing the input, since breakage can be applied upstream in
// more than one place.
func packageAndPrice(item *model.QuantitativeItem) {
	if item.NetQuantity.IsPositive() {
		item.BreakagePercent = item.QuantityWithBreakage.Sub(item.NetQuantity).
			Div(item.NetQuantity).Mul(hundred).Round(2)
	} else {
		item.BreakagePercent = decimal.Zero
	}

	// A catalog record without packaging info sells by single units.
	packageSize := one
	if item.PackageSize.IsPositive() {
		packageSize = item.PackageSize
	}

	item.PackageCount = item.QuantityWithBreakage.Div(packageSize).Ceil().IntPart()
	item.LineTotal = decimal.NewFromInt(item.PackageCount).Mul(item.UnitPrice).Round(2)
	item.NetQuantity = item.NetQuantity.Round(2)
	item.QuantityWithBreakage = item.QuantityWithBreakage.Round(2)
}

// Package pipeline implements the quantitative computation pipeline: it
// turns a set of building dimensions plus a material system choice into a
// deduplicated, package-rounded, categorized bill of materials.
package pipeline

import (
	"sort"
	"sync"

	"github.com/shopspring/decimal"
)

// QuantityBasis names the dimension a derivation rule draws from.
type QuantityBasis string

const (
	// BasisArea uses the roof area (m²).
	BasisArea QuantityBasis = "area"
	// BasisRidge uses the ridge (cumeeira) length (m).
	BasisRidge QuantityBasis = "cumeeira"
	// BasisHip uses the hip (espigão) length (m).
	BasisHip QuantityBasis = "espigao"
	// BasisValley uses the valley (água furtada) length (m).
	BasisValley QuantityBasis = "agua_furtada"
	// BasisPerimeter uses the roof perimeter (m).
	BasisPerimeter QuantityBasis = "perimetro"
	// BasisFixed ignores dimensions and emits a flat quantity.
	BasisFixed QuantityBasis = "fixed"
)

// Derivation selects how a rule turns its basis value into a net quantity.
type Derivation string

const (
	// DeriveConsumption multiplies the basis value by the consumption rate.
	DeriveConsumption Derivation = "consumption"
	// DeriveCoverage treats the basis value as the surface to cover; the
	// product's package coverage (rendimento), e.g. m² of roof per bundle,
	// converts it to whole packages at packaging time.
	DeriveCoverage Derivation = "coverage"
)

// DerivationRule binds one catalog product to a quantity derivation.
// Rules are data: adding a material system means adding rules, not code.
type DerivationRule struct {
	// ProductCode is the catalog product this rule emits.
	ProductCode string
	// Basis selects the input dimension.
	Basis QuantityBasis
	// Derivation selects the quantity math. Defaults to DeriveConsumption.
	Derivation Derivation
	// Consumption is the usage per basis unit (or the flat quantity for
	// BasisFixed). Ignored by DeriveCoverage.
	Consumption decimal.Decimal
	// BreakagePct is the waste surcharge applied to the net quantity.
	BreakagePct decimal.Decimal
	// SortOrder orders output lines and decides dedup priority; lower wins.
	SortOrder int
}

// System describes one sellable material system: which proposal type it
// resolves to and which derivation rules produce its bill of materials.
type System struct {
	// Code is the request-facing system identifier.
	Code string
	// Name is the display name.
	Name string
	// ProposalType is the tag the pipeline resolves this system to.
	ProposalType string
	// Rules is the ordered derivation rule set.
	Rules []DerivationRule
}

// Registry maps material system codes to their definitions. Adding or
// replacing a system at runtime is supported so new systems are
// configuration, not pipeline branches.
type Registry struct {
	mu      sync.RWMutex
	systems map[string]System
}

// NewRegistry creates a registry preloaded with the given systems.
func NewRegistry(systems ...System) *Registry {
	r := &Registry{systems: make(map[string]System, len(systems))}
	for _, s := range systems {
		r.systems[s.Code] = s
	}
	return r
}

// Register adds or replaces a system definition.
func (r *Registry) Register(s System) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.systems[s.Code] = s
}

// Resolve returns the system registered under the given code.
func (r *Registry) Resolve(code string) (System, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.systems[code]
	return s, ok
}

// Codes returns the registered system codes in sorted order.
func (r *Registry) Codes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	codes := make([]string, 0, len(r.systems))
	for c := range r.systems {
		codes = append(codes, c)
	}
	sort.Strings(codes)
	return codes
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// DefaultRegistry returns the built-in material systems. Product codes
// reference the seeded catalog; deployments with their own catalogs inject
// their own registry instead.
func DefaultRegistry() *Registry {
	return NewRegistry(
		System{
			Code:         "shingle-supreme",
			Name:         "Telhado Shingle Supreme",
			ProposalType: "telhado-shingle",
			Rules: []DerivationRule{
				{ProductCode: "OSB-11", Basis: BasisArea, Derivation: DeriveConsumption, Consumption: dec("0.347"), BreakagePct: dec("10"), SortOrder: 1},
				{ProductCode: "MANTA-ASF", Basis: BasisArea, Derivation: DeriveCoverage, BreakagePct: dec("5"), SortOrder: 2},
				{ProductCode: "TELHA-SUP", Basis: BasisArea, Derivation: DeriveCoverage, BreakagePct: dec("10"), SortOrder: 3},
				{ProductCode: "CUM-SUP", Basis: BasisRidge, Derivation: DeriveConsumption, Consumption: dec("1.05"), BreakagePct: dec("10"), SortOrder: 4},
				{ProductCode: "PREGO-17X27", Basis: BasisArea, Derivation: DeriveConsumption, Consumption: dec("0.12"), BreakagePct: dec("0"), SortOrder: 5},
				{ProductCode: "GRAMPO-80", Basis: BasisRidge, Derivation: DeriveConsumption, Consumption: dec("0.08"), BreakagePct: dec("0"), SortOrder: 6},
				{ProductCode: "FITA-AUTO", Basis: BasisValley, Derivation: DeriveConsumption, Consumption: dec("1.1"), BreakagePct: dec("5"), SortOrder: 7},
				{ProductCode: "RUFO-GALV", Basis: BasisPerimeter, Derivation: DeriveConsumption, Consumption: dec("0.5"), BreakagePct: dec("5"), SortOrder: 8},
			},
		},
		System{
			Code:         "shingle-duration",
			Name:         "Telhado Shingle Duration",
			ProposalType: "telhado-shingle-premium",
			Rules: []DerivationRule{
				{ProductCode: "OSB-11", Basis: BasisArea, Derivation: DeriveConsumption, Consumption: dec("0.347"), BreakagePct: dec("10"), SortOrder: 1},
				{ProductCode: "MANTA-ASF", Basis: BasisArea, Derivation: DeriveCoverage, BreakagePct: dec("5"), SortOrder: 2},
				{ProductCode: "TELHA-DUR", Basis: BasisArea, Derivation: DeriveCoverage, BreakagePct: dec("10"), SortOrder: 3},
				{ProductCode: "CUM-DUR", Basis: BasisRidge, Derivation: DeriveConsumption, Consumption: dec("1.05"), BreakagePct: dec("10"), SortOrder: 4},
				{ProductCode: "PREGO-17X27", Basis: BasisArea, Derivation: DeriveConsumption, Consumption: dec("0.14"), BreakagePct: dec("0"), SortOrder: 5},
				{ProductCode: "FITA-AUTO", Basis: BasisValley, Derivation: DeriveConsumption, Consumption: dec("1.1"), BreakagePct: dec("5"), SortOrder: 6},
				{ProductCode: "RUFO-GALV", Basis: BasisPerimeter, Derivation: DeriveConsumption, Consumption: dec("0.5"), BreakagePct: dec("5"), SortOrder: 7},
			},
		},
		System{
			Code:         "ceramica-portuguesa",
			Name:         "Telha Cerâmica Portuguesa",
			ProposalType: "telhado-ceramico",
			Rules: []DerivationRule{
				{ProductCode: "TELHA-PORT", Basis: BasisArea, Derivation: DeriveConsumption, Consumption: dec("17"), BreakagePct: dec("5"), SortOrder: 1},
				{ProductCode: "CUM-CERAM", Basis: BasisRidge, Derivation: DeriveConsumption, Consumption: dec("3"), BreakagePct: dec("5"), SortOrder: 2},
				{ProductCode: "RIPA-5X2", Basis: BasisArea, Derivation: DeriveConsumption, Consumption: dec("3.2"), BreakagePct: dec("10"), SortOrder: 3},
				{ProductCode: "CAIBRO-5X6", Basis: BasisArea, Derivation: DeriveConsumption, Consumption: dec("1.4"), BreakagePct: dec("10"), SortOrder: 4},
				{ProductCode: "PREGO-18X30", Basis: BasisArea, Derivation: DeriveConsumption, Consumption: dec("0.15"), BreakagePct: dec("0"), SortOrder: 5},
			},
		},
	)
}

package model

import "github.com/shopspring/decimal"

// QuantitativeItem is one priced line of a computed bill of materials.
// It is a computation output, not a persisted entity.
//
// @Description One priced line of a quantitative bill of materials
type QuantitativeItem struct {
	// Code is the catalog product code.
	Code string `json:"code" example:"OSB-11"`
	// Description is the catalog product description.
	Description string `json:"description" example:"Placa OSB 11mm 1,20x2,40m"`
	// Category groups items in the output (ESTRUTURA, FIXACAO...).
	Category string `json:"category" example:"ESTRUTURA"`
	// NetQuantity is the raw computed quantity before breakage.
	NetQuantity decimal.Decimal `json:"net_quantity" swaggertype:"number" example:"100"`
	// BreakagePercent is derived from net vs with-breakage quantities,
	// not echoed from input, since breakage can be applied upstream in
	// more than one place.
	BreakagePercent decimal.Decimal `json:"breakage_percent" swaggertype:"number" example:"10"`
	// QuantityWithBreakage is the quantity after the waste surcharge.
	QuantityWithBreakage decimal.Decimal `json:"quantity_with_breakage" swaggertype:"number" example:"110"`
	// SalesUnit is the sellable unit label.
	SalesUnit string `json:"sales_unit" example:"pc"`
	// PackageSize is the quantity per sellable unit, from the catalog.
	PackageSize decimal.Decimal `json:"package_size" swaggertype:"number" example:"1"`
	// PackageCount is the number of whole sellable units to purchase:
	// ceil(quantity_with_breakage / package_size).
	PackageCount int64 `json:"package_count" example:"110"`
	// UnitPrice is the price of one sellable unit.
	UnitPrice decimal.Decimal `json:"unit_price" swaggertype:"number" example:"45.00"`
	// LineTotal = package_count × unit_price.
	LineTotal decimal.Decimal `json:"line_total" swaggertype:"number" example:"4950.00"`
	// SortOrder orders items within a category; lower is higher priority.
	SortOrder int `json:"sort_order" example:"1"`
}

// DedupKey identifies a quantitative item for deduplication purposes.
type DedupKey struct {
	Code     string
	Category string
}

// Key returns the item's deduplication identity.
func (q QuantitativeItem) Key() DedupKey {
	return DedupKey{Code: q.Code, Category: q.Category}
}

// DedupWarning records a duplicate candidate dropped during deduplication.
// The lowest sort order wins; the discarded derivation is reported so a
// caller can audit potentially double-counted accessories.
type DedupWarning struct {
	Code               string `json:"code" example:"PREGO-1"`
	Category           string `json:"category" example:"FIXACAO"`
	KeptSortOrder      int    `json:"kept_sort_order" example:"3"`
	DiscardedSortOrder int    `json:"discarded_sort_order" example:"7"`
}

// QuoteResult is the tagged output of the quantitative pipeline. An empty
// item list after a successful computation is a legitimate result and is
// distinguishable from an error through the Empty tag.
//
// @Description Result of a quantitative computation
type QuoteResult struct {
	// ProposalType is the tag the material system resolved to.
	ProposalType string `json:"proposal_type" example:"telhado-shingle"`
	// Items is the deduplicated, packaged, sorted bill of materials.
	Items []QuantitativeItem `json:"items"`
	// Warnings lists duplicates discarded during deduplication.
	Warnings []DedupWarning `json:"warnings,omitempty"`
	// Total is the sum of all line totals.
	Total decimal.Decimal `json:"total" swaggertype:"number" example:"4950.00"`
	// Empty is set when the computation succeeded but priced nothing.
	Empty bool `json:"empty,omitempty"`
}

// NewQuoteResult builds a tagged result from the finished item list.
func NewQuoteResult(proposalType string, items []QuantitativeItem, warnings []DedupWarning) QuoteResult {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.LineTotal)
	}
	if items == nil {
		items = []QuantitativeItem{}
	}
	return QuoteResult{
		ProposalType: proposalType,
		Items:        items,
		Warnings:     warnings,
		Total:        total,
		Empty:        len(items) == 0,
	}
}

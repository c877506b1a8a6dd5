// Package dto defines Data Transfer Objects for HTTP request and response handling.
//
// DTOs are used to decouple the HTTP layer from the domain model,
// providing validation and serialization for API communication.
package dto

// QuoteRequest represents the JSON request body for the quote endpoints.
//
// Numeric fields are kept optional at the binding layer: the pipeline
// performs accumulating validation and reports every violation at once,
// which a binding:"required" tag would preempt with a single-field error.
type QuoteRequest struct {
	// AreaTelhado is the roof area in m². Must be > 0.
	AreaTelhado float64 `json:"area_telhado" example:"100"`
	// ComprimentoCumeeira is the ridge length in meters.
	ComprimentoCumeeira float64 `json:"comprimento_cumeeira" example:"8.5"`
	// ComprimentoEspigao is the hip length in meters.
	ComprimentoEspigao float64 `json:"comprimento_espigao" example:"0"`
	// ComprimentoAguaFurtada is the valley length in meters.
	ComprimentoAguaFurtada float64 `json:"comprimento_agua_furtada" example:"0"`
	// Perimetro is the roof perimeter in meters.
	Perimetro float64 `json:"perimetro" example:"42"`
	// Sistema selects the material system. Defaults to the registry's
	// default system when empty.
	Sistema string `json:"sistema" example:"shingle-supreme"`
} // @name QuoteRequest

// CreateCompositionRequest represents the JSON request body for creating
// a composition.
type CreateCompositionRequest struct {
	// Name identifies the composition (one wall type, one roof build).
	Name string `json:"name" binding:"required"`
} // @name CreateCompositionRequest

// CompositionItemRequest represents the JSON request body for adding a
// line item to a composition.
type CompositionItemRequest struct {
	// ProductCode references the catalog product by code.
	ProductCode string `json:"product_code" binding:"required" example:"OSB-11MM"`
	// ConsumptionPerUnitArea is the material usage per m². Must be > 0.
	ConsumptionPerUnitArea float64 `json:"consumption_per_unit_area" example:"1.05"`
	// BreakagePercent is the waste surcharge, 0 to 50.
	BreakagePercent float64 `json:"breakage_percent" example:"10"`
	// CorrectionFactor is a project-condition multiplier, 0.1 to 10.
	CorrectionFactor float64 `json:"correction_factor" example:"1"`
	// CalculationMode selects the pricing derivation.
	CalculationMode string `json:"calculation_mode" example:"direct"`
	// CustomFormula holds the user formula; required when the mode is custom.
	CustomFormula string `json:"custom_formula,omitempty"`
	// Order defines display priority. When omitted the item is appended.
	Order *int `json:"order,omitempty" example:"1"`
} // @name CompositionItemRequest

// CompositionItemPatchRequest represents the JSON request body for editing
// a line item. Absent fields keep their stored value.
type CompositionItemPatchRequest struct {
	ProductCode            *string  `json:"product_code,omitempty"`
	ConsumptionPerUnitArea *float64 `json:"consumption_per_unit_area,omitempty"`
	BreakagePercent        *float64 `json:"breakage_percent,omitempty"`
	CorrectionFactor       *float64 `json:"correction_factor,omitempty"`
	CalculationMode        *string  `json:"calculation_mode,omitempty"`
	CustomFormula          *string  `json:"custom_formula,omitempty"`
} // @name CompositionItemPatchRequest

// OrderAssignmentRequest pairs a line item with its new display order.
type OrderAssignmentRequest struct {
	ItemID string `json:"item_id" binding:"required"`
	Order  int    `json:"order"`
} // @name OrderAssignmentRequest

// ReorderItemsRequest represents the JSON request body for reordering the
// items of a composition in one write.
type ReorderItemsRequest struct {
	Orders []OrderAssignmentRequest `json:"orders" binding:"required,min=1"`
} // @name ReorderItemsRequest

// UpsertProductRequest represents the JSON request body for creating or
// replacing a catalog product.
type UpsertProductRequest struct {
	Code        string `json:"code" binding:"required" example:"OSB-11"`
	Description string `json:"description" binding:"required" example:"Placa OSB 11mm 1,20x2,40m"`
	// UnitPrice is the sale price of one sellable unit, in BRL.
	UnitPrice float64 `json:"unit_price" example:"45.00"`
	// PackageSize is the quantity contained in one sellable unit.
	PackageSize float64 `json:"package_size" example:"1"`
	// UnitOfMeasure is the sales unit label (pc, m², rolo, balde).
	UnitOfMeasure string `json:"unit_of_measure" example:"pc"`
	// Category groups products for quantitative output.
	Category string `json:"category" example:"ESTRUTURA"`
} // @name UpsertProductRequest

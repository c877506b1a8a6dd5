package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/construsol/proposal-service/internal/composition"
	"github.com/construsol/proposal-service/internal/domain/dto"
	"github.com/construsol/proposal-service/internal/domain/model"
	"github.com/construsol/proposal-service/internal/i18n"
	"github.com/construsol/proposal-service/internal/repository"
)

// CompositionsHandler provides HTTP handlers for composition management.
type CompositionsHandler struct {
	aggregator *composition.Aggregator
}

// NewCompositionsHandler creates a new CompositionsHandler instance.
func NewCompositionsHandler(agg *composition.Aggregator) *CompositionsHandler {
	return &CompositionsHandler{aggregator: agg}
}

// parseObjectID reads a path parameter as a Mongo ObjectID, rendering a
// 400 when it does not parse. The bool reports success.
func parseObjectID(c *gin.Context, builder *ResponseBuilder, param string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(param))
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequest, err)
		return primitive.NilObjectID, false
	}
	return id, true
}

// renderCompositionError routes aggregator failures: not-found becomes a
// 404, everything else goes through the error taxonomy middleware.
func renderCompositionError(c *gin.Context, builder *ResponseBuilder, err error) {
	if errors.Is(err, repository.ErrCompositionNotFound) {
		builder.Error(http.StatusNotFound, i18n.ErrKeyNotFound, err)
		return
	}
	_ = c.Error(err)
}

// CreateComposition handles POST /api/compositions requests.
//
// @Summary      Create a composition
// @Tags         Compositions
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateCompositionRequest true "Composition name"
// @Success      201 {object} dto.SuccessResponse "Created composition"
// @Failure      400 {object} dto.ErrorResponse "Invalid input"
// @Router       /api/compositions [post]
func (h *CompositionsHandler) CreateComposition(c *gin.Context) {
	builder := NewResponseBuilder(c)

	var req dto.CreateCompositionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}

	comp, err := h.aggregator.Create(c.Request.Context(), req.Name)
	if err != nil {
		renderCompositionError(c, builder, err)
		return
	}

	builder.SuccessCreated(comp)
}

// ListCompositions handles GET /api/compositions requests.
//
// @Summary      List compositions
// @Tags         Compositions
// @Produce      json
// @Success      200 {object} dto.SuccessResponse "All compositions"
// @Router       /api/compositions [get]
func (h *CompositionsHandler) ListCompositions(c *gin.Context) {
	builder := NewResponseBuilder(c)

	comps, err := h.aggregator.List(c.Request.Context())
	if err != nil {
		renderCompositionError(c, builder, err)
		return
	}

	builder.SuccessOK(gin.H{"compositions": comps, "count": len(comps)})
}

// GetComposition handles GET /api/compositions/:id requests.
//
// The response carries the items and a synchronized flag telling the UI
// whether the cached total still matches the item sum.
//
// @Summary      Get a composition with its items
// @Tags         Compositions
// @Produce      json
// @Param        id path string true "Composition ID"
// @Success      200 {object} dto.SuccessResponse "Composition view"
// @Failure      404 {object} dto.ErrorResponse "Composition not found"
// @Router       /api/compositions/{id} [get]
func (h *CompositionsHandler) GetComposition(c *gin.Context) {
	builder := NewResponseBuilder(c)

	id, ok := parseObjectID(c, builder, "id")
	if !ok {
		return
	}

	view, err := h.aggregator.Get(c.Request.Context(), id)
	if err != nil {
		renderCompositionError(c, builder, err)
		return
	}

	builder.SuccessOK(view)
}

// DeleteComposition handles DELETE /api/compositions/:id requests.
//
// @Summary      Delete a composition and all of its items
// @Tags         Compositions
// @Produce      json
// @Param        id path string true "Composition ID"
// @Success      200 {object} dto.SuccessResponse "Deleted"
// @Failure      404 {object} dto.ErrorResponse "Composition not found"
// @Router       /api/compositions/{id} [delete]
func (h *CompositionsHandler) DeleteComposition(c *gin.Context) {
	builder := NewResponseBuilder(c)

	id, ok := parseObjectID(c, builder, "id")
	if !ok {
		return
	}

	if err := h.aggregator.Delete(c.Request.Context(), id); err != nil {
		renderCompositionError(c, builder, err)
		return
	}

	builder.SuccessOK(gin.H{"deleted": true})
}

// AddItem handles POST /api/compositions/:id/items requests.
//
// @Summary      Add a priced line item
// @Tags         Compositions
// @Accept       json
// @Produce      json
// @Param        id path string true "Composition ID"
// @Param        request body dto.CompositionItemRequest true "Line item fields"
// @Success      201 {object} dto.SuccessResponse "Created item with derived values"
// @Failure      400 {object} dto.ErrorResponse "Invalid input"
// @Failure      404 {object} dto.ErrorResponse "Composition or product not found"
// @Router       /api/compositions/{id}/items [post]
func (h *CompositionsHandler) AddItem(c *gin.Context) {
	builder := NewResponseBuilder(c)

	id, ok := parseObjectID(c, builder, "id")
	if !ok {
		return
	}

	var req dto.CompositionItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}

	input := composition.ItemInput{
		ProductCode:            req.ProductCode,
		ConsumptionPerUnitArea: decimal.NewFromFloat(req.ConsumptionPerUnitArea),
		BreakagePercent:        decimal.NewFromFloat(req.BreakagePercent),
		CorrectionFactor:       decimal.NewFromFloat(req.CorrectionFactor),
		CalculationMode:        model.CalcMode(req.CalculationMode),
		CustomFormula:          req.CustomFormula,
		Order:                  req.Order,
	}

	item, err := h.aggregator.AddItem(c.Request.Context(), id, input)
	if err != nil {
		renderCompositionError(c, builder, err)
		return
	}

	builder.SuccessCreated(item)
}

// EditItem handles PATCH /api/compositions/items/:itemId requests.
//
// @Summary      Edit a line item
// @Description  Applies a partial update and reprices the item against the current catalog price.
// @Tags         Compositions
// @Accept       json
// @Produce      json
// @Param        itemId path string true "Item ID"
// @Param        request body dto.CompositionItemPatchRequest true "Fields to change"
// @Success      200 {object} dto.SuccessResponse "Updated item"
// @Failure      400 {object} dto.ErrorResponse "Invalid input"
// @Failure      404 {object} dto.ErrorResponse "Item not found"
// @Router       /api/compositions/items/{itemId} [patch]
func (h *CompositionsHandler) EditItem(c *gin.Context) {
	builder := NewResponseBuilder(c)

	itemID, ok := parseObjectID(c, builder, "itemId")
	if !ok {
		return
	}

	var req dto.CompositionItemPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}

	patch := composition.ItemPatch{
		ProductCode:   req.ProductCode,
		CustomFormula: req.CustomFormula,
	}
	if req.ConsumptionPerUnitArea != nil {
		d := decimal.NewFromFloat(*req.ConsumptionPerUnitArea)
		patch.ConsumptionPerUnitArea = &d
	}
	if req.BreakagePercent != nil {
		d := decimal.NewFromFloat(*req.BreakagePercent)
		patch.BreakagePercent = &d
	}
	if req.CorrectionFactor != nil {
		d := decimal.NewFromFloat(*req.CorrectionFactor)
		patch.CorrectionFactor = &d
	}
	if req.CalculationMode != nil {
		mode := model.CalcMode(*req.CalculationMode)
		patch.CalculationMode = &mode
	}

	item, err := h.aggregator.EditItem(c.Request.Context(), itemID, patch)
	if err != nil {
		renderCompositionError(c, builder, err)
		return
	}

	builder.SuccessOK(item)
}

// RemoveItem handles DELETE /api/compositions/items/:itemId requests.
//
// @Summary      Remove a line item
// @Tags         Compositions
// @Produce      json
// @Param        itemId path string true "Item ID"
// @Success      200 {object} dto.SuccessResponse "Removed"
// @Failure      404 {object} dto.ErrorResponse "Item not found"
// @Router       /api/compositions/items/{itemId} [delete]
func (h *CompositionsHandler) RemoveItem(c *gin.Context) {
	builder := NewResponseBuilder(c)

	itemID, ok := parseObjectID(c, builder, "itemId")
	if !ok {
		return
	}

	if err := h.aggregator.RemoveItem(c.Request.Context(), itemID); err != nil {
		renderCompositionError(c, builder, err)
		return
	}

	builder.SuccessOK(gin.H{"deleted": true})
}

// ReorderItems handles PUT /api/compositions/:id/items/order requests.
//
// @Summary      Reorder the items of a composition
// @Tags         Compositions
// @Accept       json
// @Produce      json
// @Param        id path string true "Composition ID"
// @Param        request body dto.ReorderItemsRequest true "New order assignments"
// @Success      200 {object} dto.SuccessResponse "Reordered"
// @Failure      400 {object} dto.ErrorResponse "Duplicate orders or bad IDs"
// @Router       /api/compositions/{id}/items/order [put]
func (h *CompositionsHandler) ReorderItems(c *gin.Context) {
	builder := NewResponseBuilder(c)

	id, ok := parseObjectID(c, builder, "id")
	if !ok {
		return
	}

	var req dto.ReorderItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}

	assignments := make([]repository.OrderAssignment, 0, len(req.Orders))
	for _, o := range req.Orders {
		itemID, err := primitive.ObjectIDFromHex(o.ItemID)
		if err != nil {
			builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequest, err)
			return
		}
		assignments = append(assignments, repository.OrderAssignment{ItemID: itemID, Order: o.Order})
	}

	if err := h.aggregator.Reorder(c.Request.Context(), id, assignments); err != nil {
		renderCompositionError(c, builder, err)
		return
	}

	builder.SuccessOK(gin.H{"reordered": len(assignments)})
}

// RefreshFromCatalog handles POST /api/compositions/:id/refresh requests.
//
// @Summary      Reprice items against current catalog prices
// @Description  Recomputes every item at the current catalog price and persists only the ones whose values actually changed.
// @Tags         Compositions
// @Produce      json
// @Param        id path string true "Composition ID"
// @Success      200 {object} dto.SuccessResponse "Number of repriced items"
// @Failure      404 {object} dto.ErrorResponse "Composition not found"
// @Router       /api/compositions/{id}/refresh [post]
func (h *CompositionsHandler) RefreshFromCatalog(c *gin.Context) {
	builder := NewResponseBuilder(c)

	id, ok := parseObjectID(c, builder, "id")
	if !ok {
		return
	}

	changed, err := h.aggregator.RefreshFromCatalog(c.Request.Context(), id)
	if err != nil {
		renderCompositionError(c, builder, err)
		return
	}

	builder.SuccessOK(gin.H{"changed": changed})
}

// RecomputeTotal handles POST /api/compositions/:id/recompute requests.
//
// @Summary      Recompute the cached total from the stored items
// @Tags         Compositions
// @Produce      json
// @Param        id path string true "Composition ID"
// @Success      200 {object} dto.SuccessResponse "Recomputed total"
// @Failure      404 {object} dto.ErrorResponse "Composition not found"
// @Router       /api/compositions/{id}/recompute [post]
func (h *CompositionsHandler) RecomputeTotal(c *gin.Context) {
	builder := NewResponseBuilder(c)

	id, ok := parseObjectID(c, builder, "id")
	if !ok {
		return
	}

	total, err := h.aggregator.RecomputeTotal(c.Request.Context(), id)
	if err != nil {
		renderCompositionError(c, builder, err)
		return
	}

	builder.SuccessOK(gin.H{"total_value_per_unit_area": total})
}

package http

import (
	"github.com/gin-gonic/gin"
)

var _ RouteGroup = (*ProposalRoutes)(nil)

// ProposalRoutes registers the quote, composition and catalog routes.
type ProposalRoutes struct {
	quotes       *Handler
	compositions *CompositionsHandler
	catalog      *CatalogHandler
}

// NewProposalRoutes creates a new ProposalRoutes instance. Composition and
// catalog handlers are optional; their routes are skipped when nil.
func NewProposalRoutes(quotes *Handler, compositions *CompositionsHandler, catalog *CatalogHandler) *ProposalRoutes {
	return &ProposalRoutes{
		quotes:       quotes,
		compositions: compositions,
		catalog:      catalog,
	}
}

// RegisterRoutes registers all proposal routes to the given group.
func (r *ProposalRoutes) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/quote", r.quotes.ComputeQuote)
	rg.POST("/quote/direct", r.quotes.ComputeQuoteDirect)
	rg.GET("/systems", r.quotes.ListSystems)
	rg.GET("/quotes/history", r.quotes.QuoteHistory)

	if r.compositions != nil {
		rg.POST("/compositions", r.compositions.CreateComposition)
		rg.GET("/compositions", r.compositions.ListCompositions)
		rg.GET("/compositions/:id", r.compositions.GetComposition)
		rg.DELETE("/compositions/:id", r.compositions.DeleteComposition)
		rg.POST("/compositions/:id/items", r.compositions.AddItem)
		rg.PUT("/compositions/:id/items/order", r.compositions.ReorderItems)
		rg.POST("/compositions/:id/refresh", r.compositions.RefreshFromCatalog)
		rg.POST("/compositions/:id/recompute", r.compositions.RecomputeTotal)
		rg.PATCH("/compositions/items/:itemId", r.compositions.EditItem)
		rg.DELETE("/compositions/items/:itemId", r.compositions.RemoveItem)
	}

	if r.catalog != nil {
		rg.GET("/products", r.catalog.ListProducts)
		rg.GET("/products/:code", r.catalog.GetProduct)
		rg.PUT("/products", r.catalog.UpsertProduct)
	}
}

// GetHandler returns the underlying quote handler.
func (r *ProposalRoutes) GetHandler() *Handler {
	return r.quotes
}

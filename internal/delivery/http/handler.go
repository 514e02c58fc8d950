package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/YK12321/Budgeteer/internal/domain"
	"github.com/YK12321/Budgeteer/internal/infrastructure/catalog"
	"github.com/YK12321/Budgeteer/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	catalog *catalog.Store
	shopper *usecase.Shopper
}

// NewHandler creates a new HTTP handler
func NewHandler(store *catalog.Store, shopper *usecase.Shopper) *Handler {
	return &Handler{catalog: store, shopper: shopper}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "budgeteer-backend",
		"items":   h.catalog.Count(),
	})
}

// GetItems returns catalog items, optionally filtered by store, category,
// or price range query parameters.
func (h *Handler) GetItems(c *gin.Context) {
	if store := c.Query("store"); store != "" {
		itemsResponse(c, h.catalog.ItemsByStore(store))
		return
	}
	if category := c.Query("category"); category != "" {
		itemsResponse(c, h.catalog.ItemsByCategory(category))
		return
	}
	minRaw, maxRaw := c.Query("min"), c.Query("max")
	if minRaw != "" || maxRaw != "" {
		min, err1 := strconv.ParseFloat(minRaw, 64)
		max, err2 := strconv.ParseFloat(maxRaw, 64)
		if err1 != nil || err2 != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid price range"})
			return
		}
		itemsResponse(c, h.catalog.ItemsByPriceRange(min, max))
		return
	}
	itemsResponse(c, h.catalog.AllItems())
}

// GetItemByID returns all records sharing a product id
func (h *Handler) GetItemByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid item id"})
		return
	}

	items := h.catalog.ItemsByID(id)
	if len(items) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Item not found"})
		return
	}
	itemsResponse(c, items)
}

// GetItemStats returns price statistics for a product id
func (h *Handler) GetItemStats(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid item id"})
		return
	}

	if len(h.catalog.ItemsByID(id)) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Item not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"item_id": id,
		"statistics": gin.H{
			"average_price": h.catalog.AveragePrice(id),
			"min_price":     h.catalog.MinPrice(id),
			"max_price":     h.catalog.MaxPrice(id),
		},
	})
}

// SearchItems runs the fuzzy catalog search
func (h *Handler) SearchItems(c *gin.Context) {
	itemsResponse(c, h.catalog.Search(c.Query("q")))
}

// GetStores returns the deduplicated store names
func (h *Handler) GetStores(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "stores": h.catalog.Stores()})
}

// GetCategories returns the deduplicated category tags
func (h *Handler) GetCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "categories": h.catalog.Categories()})
}

type queryRequest struct {
	Query string `json:"query" binding:"required"`
	Mode  string `json:"mode"`
}

// ProcessQuery resolves a natural-language query into formatted text
func (h *Handler) ProcessQuery(c *gin.Context) {
	var req queryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "query is required"})
		return
	}

	response := h.shopper.ProcessQuery(c.Request.Context(), req.Query, usecase.ParseMode(req.Mode))
	c.JSON(http.StatusOK, gin.H{"success": true, "response": response})
}

type shoppingListRequest struct {
	Prompt string  `json:"prompt" binding:"required"`
	Budget float64 `json:"budget"`
}

// GenerateShoppingList assembles a shopping list for a free-text request
func (h *Handler) GenerateShoppingList(c *gin.Context) {
	var req shoppingListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "prompt is required"})
		return
	}

	items, err := h.shopper.GenerateShoppingList(c.Request.Context(), req.Prompt, req.Budget)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	total := 0.0
	for _, item := range items {
		total += item.CurrentPrice
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"shopping_list": gin.H{
			"items":      items,
			"total_cost": total,
		},
		"insight": h.shopper.Insight(items),
	})
}

func itemsResponse(c *gin.Context, items []domain.Item) {
	if items == nil {
		items = []domain.Item{}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(items), "items": items})
}

package handler

import (
	"errors"
	"net/http"

	"apartment-search/internal/model"
	"apartment-search/internal/service"

	"github.com/gin-gonic/gin"
)

// SearchHandler handles search-related HTTP requests
type SearchHandler struct {
	searchService *service.SearchService
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(searchService *service.SearchService) *SearchHandler {
	return &SearchHandler{searchService: searchService}
}

// Search handles POST /api/search/apartments
func (h *SearchHandler) Search(c *gin.Context) {
	var req model.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	result, err := h.searchService.Search(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrEmptyQuery) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search apartments"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// Recommendations handles GET /api/search/recommendations/:searchId
func (h *SearchHandler) Recommendations(c *gin.Context) {
	searchID := c.Param("searchId")

	recommendations, err := h.searchService.RecommendationsFor(c.Request.Context(), searchID)
	if err != nil {
		if errors.Is(err, service.ErrSearchNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Search history not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate recommendations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"recommendations": recommendations})
}

// History handles GET /api/search/history
func (h *SearchHandler) History(c *gin.Context) {
	var userID *string
	if v := c.Query("user_id"); v != "" {
		userID = &v
	}

	history, err := h.searchService.History(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve search history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"history": history})
}

// Popular handles GET /api/search/popular
func (h *SearchHandler) Popular(c *gin.Context) {
	popular, err := h.searchService.PopularSearches(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve popular searches"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"popular_searches": popular})
}

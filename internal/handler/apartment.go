package handler

import (
	"net/http"

	"apartment-search/internal/model"
	"apartment-search/internal/service"

	"github.com/gin-gonic/gin"
)

// ApartmentHandler handles apartment CRUD HTTP requests
type ApartmentHandler struct {
	apartments *service.ApartmentService
}

// NewApartmentHandler creates a new apartment handler
func NewApartmentHandler(apartments *service.ApartmentService) *ApartmentHandler {
	return &ApartmentHandler{apartments: apartments}
}

// List handles GET /api/apartments. With filter query parameters present it
// runs the filter plan, otherwise it returns all available apartments.
func (h *ApartmentHandler) List(c *gin.Context) {
	if len(c.Request.URL.Query()) > 0 {
		var params model.SearchParameters
		if err := c.ShouldBindQuery(&params); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid search parameters: " + err.Error()})
			return
		}

		apartments, err := h.apartments.Search(c.Request.Context(), params)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve apartments"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"apartments": apartments})
		return
	}

	apartments, err := h.apartments.FindAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve apartments"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"apartments": apartments})
}

// Get handles GET /api/apartments/:id
func (h *ApartmentHandler) Get(c *gin.Context) {
	apartment, err := h.apartments.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve apartment"})
		return
	}
	if apartment == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Apartment not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"apartment": apartment})
}

// Create handles POST /api/apartments
func (h *ApartmentHandler) Create(c *gin.Context) {
	var listing model.Listing
	if err := c.ShouldBindJSON(&listing); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	if listing.Title == "" || listing.Price < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title is required and price must not be negative"})
		return
	}

	if err := h.apartments.Create(c.Request.Context(), &listing); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create apartment"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"apartment": listing})
}

// Update handles PUT /api/apartments/:id
func (h *ApartmentHandler) Update(c *gin.Context) {
	var upd model.ListingUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	apartment, err := h.apartments.Update(c.Request.Context(), c.Param("id"), upd)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update apartment"})
		return
	}
	if apartment == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Apartment not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"apartment": apartment})
}

// Delete handles DELETE /api/apartments/:id
func (h *ApartmentHandler) Delete(c *gin.Context) {
	deleted, err := h.apartments.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete apartment"})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "Apartment not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Apartment deleted successfully",
	})
}

package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"reviewhub/internal/http-api/dto"
	"reviewhub/internal/http-api/middleware"
	"reviewhub/internal/http-api/service"
)

type CategoryHandler struct {
	categoryService service.CategoryService
}

func NewCategoryHandler(categoryService service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// RegisterRoutes registers category routes: reads are public, writes are
// admin only. Writes sit behind optional auth so an anonymous write is
// forbidden (403), not unauthenticated.
func (h *CategoryHandler) RegisterRoutes(router *gin.RouterGroup, authService service.AuthService) {
	categories := router.Group("/categories")
	{
		categories.GET("", h.List)
		categories.GET("/:slug", h.Get)
	}

	admin := categories.Group("", middleware.OptionalAuthMiddleware(authService), middleware.RequireAdmin())
	{
		admin.POST("", h.Create)
		admin.PATCH("/:slug", h.Update)
		admin.DELETE("/:slug", h.Delete)
	}
}

// List retrieves categories with optional name search
// GET /api/v1/categories?search=...&page=1&page_size=20
func (h *CategoryHandler) List(c *gin.Context) {
	page, pageSize := parsePagination(c)

	categories, err := h.categoryService.List(c.Query("search"), page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, categories)
}

// Get retrieves a category by slug
// GET /api/v1/categories/:slug
func (h *CategoryHandler) Get(c *gin.Context) {
	category, err := h.categoryService.Get(c.Param("slug"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, category)
}

// Create adds a category
// POST /api/v1/categories
func (h *CategoryHandler) Create(c *gin.Context) {
	var req dto.CreateCategoryDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, err := h.categoryService.Create(req)
	if err != nil {
		if errors.Is(err, service.ErrSlugInUse) {
			c.JSON(http.StatusBadRequest, gin.H{"slug": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, category)
}

// Update renames a category
// PATCH /api/v1/categories/:slug
func (h *CategoryHandler) Update(c *gin.Context) {
	var req dto.UpdateCategoryDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, err := h.categoryService.Update(c.Param("slug"), req)
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, category)
}

// Delete removes a category; its titles survive with no category
// DELETE /api/v1/categories/:slug
func (h *CategoryHandler) Delete(c *gin.Context) {
	if err := h.categoryService.Delete(c.Param("slug")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "category deleted successfully"})
}

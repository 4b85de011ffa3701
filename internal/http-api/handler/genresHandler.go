package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"reviewhub/internal/http-api/dto"
	"reviewhub/internal/http-api/middleware"
	"reviewhub/internal/http-api/service"
)

type GenreHandler struct {
	genreService service.GenreService
}

func NewGenreHandler(genreService service.GenreService) *GenreHandler {
	return &GenreHandler{genreService: genreService}
}

// RegisterRoutes registers genre routes: reads are public, writes are admin only.
func (h *GenreHandler) RegisterRoutes(router *gin.RouterGroup, authService service.AuthService) {
	genres := router.Group("/genres")
	{
		genres.GET("", h.List)
		genres.GET("/:slug", h.Get)
	}

	admin := genres.Group("", middleware.OptionalAuthMiddleware(authService), middleware.RequireAdmin())
	{
		admin.POST("", h.Create)
		admin.PATCH("/:slug", h.Update)
		admin.DELETE("/:slug", h.Delete)
	}
}

// List retrieves genres with optional name search
// GET /api/v1/genres?search=...&page=1&page_size=20
func (h *GenreHandler) List(c *gin.Context) {
	page, pageSize := parsePagination(c)

	genres, err := h.genreService.List(c.Query("search"), page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, genres)
}

// Get retrieves a genre by slug
// GET /api/v1/genres/:slug
func (h *GenreHandler) Get(c *gin.Context) {
	genre, err := h.genreService.Get(c.Param("slug"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, genre)
}

// Create adds a genre
// POST /api/v1/genres
func (h *GenreHandler) Create(c *gin.Context) {
	var req dto.CreateGenreDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	genre, err := h.genreService.Create(req)
	if err != nil {
		if errors.Is(err, service.ErrSlugInUse) {
			c.JSON(http.StatusBadRequest, gin.H{"slug": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, genre)
}

// Update renames a genre
// PATCH /api/v1/genres/:slug
func (h *GenreHandler) Update(c *gin.Context) {
	var req dto.UpdateGenreDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	genre, err := h.genreService.Update(c.Param("slug"), req)
	if err != nil {
		if errors.Is(err, service.ErrGenreNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, genre)
}

// Delete removes a genre
// DELETE /api/v1/genres/:slug
func (h *GenreHandler) Delete(c *gin.Context) {
	if err := h.genreService.Delete(c.Param("slug")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "genre deleted successfully"})
}

package dto

import (
	"reviewhub/internal/http-api/models"
)

// CreateGenreDTO used for POST /api/v1/genres
type CreateGenreDTO struct {
	Name string  `json:"name" binding:"required,max=256"`
	Slug *string `json:"slug,omitempty" binding:"omitempty,max=50"` // optional client slug
}

// UpdateGenreDTO used for PATCH /api/v1/genres/:slug
type UpdateGenreDTO struct {
	Name string `json:"name" binding:"required,max=256"`
}

// GenreResponse for returning genre information
type GenreResponse struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// FromModelToGenreResponse converts a Genre model to GenreResponse DTO
func FromModelToGenreResponse(genre *models.Genre) *GenreResponse {
	return &GenreResponse{
		Name: genre.Name,
		Slug: genre.Slug,
	}
}

// PaginatedGenreResponse for returning paginated genres
type PaginatedGenreResponse struct {
	Data       []GenreResponse `json:"data"`
	Page       int             `json:"page"`
	PageSize   int             `json:"page_size"`
	Total      int64           `json:"total"`
	TotalPages int             `json:"total_pages"`
}

// NewPaginatedGenreResponse creates a paginated genre response
func NewPaginatedGenreResponse(data []GenreResponse, total int64, page, pageSize int) *PaginatedGenreResponse {
	totalPages := int(total) / pageSize
	if int(total)%pageSize != 0 {
		totalPages++
	}

	return &PaginatedGenreResponse{
		Data:       data,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}

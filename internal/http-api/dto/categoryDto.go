package dto

import (
	"reviewhub/internal/http-api/models"
)

// CreateCategoryDTO used for POST /api/v1/categories
type CreateCategoryDTO struct {
	Name string  `json:"name" binding:"required,max=256"`
	Slug *string `json:"slug,omitempty" binding:"omitempty,max=50"` // optional client slug
}

// UpdateCategoryDTO used for PATCH /api/v1/categories/:slug
// The slug is the immutable identifier, only the name can change.
type UpdateCategoryDTO struct {
	Name string `json:"name" binding:"required,max=256"`
}

// CategoryResponse for returning category information
type CategoryResponse struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// FromModelToCategoryResponse converts a Category model to CategoryResponse DTO
func FromModelToCategoryResponse(category *models.Category) *CategoryResponse {
	return &CategoryResponse{
		Name: category.Name,
		Slug: category.Slug,
	}
}

// PaginatedCategoryResponse for returning paginated categories
type PaginatedCategoryResponse struct {
	Data       []CategoryResponse `json:"data"`
	Page       int                `json:"page"`
	PageSize   int                `json:"page_size"`
	Total      int64              `json:"total"`
	TotalPages int                `json:"total_pages"`
}

// NewPaginatedCategoryResponse creates a paginated category response
func NewPaginatedCategoryResponse(data []CategoryResponse, total int64, page, pageSize int) *PaginatedCategoryResponse {
	totalPages := int(total) / pageSize
	if int(total)%pageSize != 0 {
		totalPages++
	}

	return &PaginatedCategoryResponse{
		Data:       data,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}

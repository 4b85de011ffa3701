package dto

import (
	"reviewhub/internal/http-api/models"
)

// CreateTitleDTO used for POST /api/v1/titles
// Category and genres are referenced by slug on writes.
type CreateTitleDTO struct {
	Name        string   `json:"name" binding:"required,max=256"`
	Year        int      `json:"year" binding:"required"`
	Description *string  `json:"description,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Genre       []string `json:"genre,omitempty"`
}

// UpdateTitleDTO used for PATCH /api/v1/titles/:id (partial updates allowed)
type UpdateTitleDTO struct {
	Name        *string   `json:"name,omitempty" binding:"omitempty,max=256"`
	Year        *int      `json:"year,omitempty"`
	Description *string   `json:"description,omitempty"`
	Category    *string   `json:"category,omitempty"`
	Genre       *[]string `json:"genre,omitempty"`
}

// TitleResponse for read endpoints: nested category/genre objects plus the
// derived average rating (null until the first review lands).
type TitleResponse struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	Year        int               `json:"year"`
	Rating      *float64          `json:"rating"`
	Description string            `json:"description"`
	Category    *CategoryResponse `json:"category"`
	Genre       []GenreResponse   `json:"genre"`
}

// FromModelToTitleResponse converts a Title model plus its computed rating to a TitleResponse DTO
func FromModelToTitleResponse(title *models.Title, rating *float64) *TitleResponse {
	resp := &TitleResponse{
		ID:          title.ID,
		Name:        title.Name,
		Year:        title.Year,
		Rating:      rating,
		Description: title.Description,
		Genre:       make([]GenreResponse, 0, len(title.Genres)),
	}
	if title.Category != nil {
		resp.Category = FromModelToCategoryResponse(title.Category)
	}
	for i := range title.Genres {
		resp.Genre = append(resp.Genre, *FromModelToGenreResponse(&title.Genres[i]))
	}
	return resp
}

// PaginatedTitleResponse for returning paginated titles
type PaginatedTitleResponse struct {
	Data       []TitleResponse `json:"data"`
	Page       int             `json:"page"`
	PageSize   int             `json:"page_size"`
	Total      int64           `json:"total"`
	TotalPages int             `json:"total_pages"`
}

// NewPaginatedTitleResponse creates a paginated title response
func NewPaginatedTitleResponse(data []TitleResponse, total int64, page, pageSize int) *PaginatedTitleResponse {
	totalPages := int(total) / pageSize
	if int(total)%pageSize != 0 {
		totalPages++
	}

	return &PaginatedTitleResponse{
		Data:       data,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}

package dto

import (
	"reviewhub/internal/http-api/models"
)

// CreateUserDTO used for POST /api/v1/users (admin only)
type CreateUserDTO struct {
	Username  string       `json:"username" binding:"required,max=150"`
	Email     string       `json:"email" binding:"required,email,max=254"`
	FirstName *string      `json:"first_name,omitempty" binding:"omitempty,max=150"`
	LastName  *string      `json:"last_name,omitempty" binding:"omitempty,max=150"`
	Bio       *string      `json:"bio,omitempty"`
	Role      *models.Role `json:"role,omitempty"`
}

// UpdateUserDTO used for PATCH on a user record (partial updates allowed)
type UpdateUserDTO struct {
	Email     *string      `json:"email,omitempty" binding:"omitempty,email,max=254"`
	FirstName *string      `json:"first_name,omitempty" binding:"omitempty,max=150"`
	LastName  *string      `json:"last_name,omitempty" binding:"omitempty,max=150"`
	Bio       *string      `json:"bio,omitempty"`
	Role      *models.Role `json:"role,omitempty"`
}

// ApplyTo copies the set fields onto the model. The role field is handled
// separately by the service because of the self-service overwrite rule.
func (d UpdateUserDTO) ApplyTo(u *models.User) {
	if d.Email != nil {
		u.Email = *d.Email
	}
	if d.FirstName != nil {
		u.FirstName = *d.FirstName
	}
	if d.LastName != nil {
		u.LastName = *d.LastName
	}
	if d.Bio != nil {
		u.Bio = *d.Bio
	}
}

// UserResponse for returning user information
type UserResponse struct {
	Username  string      `json:"username"`
	Email     string      `json:"email"`
	FirstName string      `json:"first_name"`
	LastName  string      `json:"last_name"`
	Bio       string      `json:"bio"`
	Role      models.Role `json:"role"`
}

// FromModelToUserResponse converts a User model to UserResponse DTO
func FromModelToUserResponse(user *models.User) *UserResponse {
	return &UserResponse{
		Username:  user.Username,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Bio:       user.Bio,
		Role:      user.Role,
	}
}

// PaginatedUserResponse for returning paginated users
type PaginatedUserResponse struct {
	Data       []UserResponse `json:"data"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	Total      int64          `json:"total"`
	TotalPages int            `json:"total_pages"`
}

// NewPaginatedUserResponse creates a paginated user response
func NewPaginatedUserResponse(data []UserResponse, total int64, page, pageSize int) *PaginatedUserResponse {
	totalPages := int(total) / pageSize
	if int(total)%pageSize != 0 {
		totalPages++
	}

	return &PaginatedUserResponse{
		Data:       data,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}

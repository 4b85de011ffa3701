package repository

import (
	"reviewhub/internal/http-api/models"

	"gorm.io/gorm"
)

type CommentRepository interface {
	Create(comment *models.Comment) error
	Update(comment *models.Comment) error
	Delete(id int64) error
	GetByReviewAndID(reviewID, id int64) (*models.Comment, error)
	ListByReview(reviewID int64, page, pageSize int) ([]models.Comment, int64, error)
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

// Create a new comment
func (r *commentRepository) Create(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

// Update an existing comment
func (r *commentRepository) Update(comment *models.Comment) error {
	return r.db.Save(comment).Error
}

// Delete a comment by id
func (r *commentRepository) Delete(id int64) error {
	result := r.db.Delete(&models.Comment{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// GetByReviewAndID retrieves a comment scoped to its parent review
func (r *commentRepository) GetByReviewAndID(reviewID, id int64) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.Where("review_id = ?", reviewID).
		Preload("Author").
		First(&comment, id).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListByReview retrieves comments for a review ordered by publication time ascending
func (r *commentRepository) ListByReview(reviewID int64, page, pageSize int) ([]models.Comment, int64, error) {
	var comments []models.Comment
	var total int64

	if err := r.db.Model(&models.Comment{}).Where("review_id = ?", reviewID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := r.db.Where("review_id = ?", reviewID).
		Preload("Author").
		Order("pub_date ASC").
		Limit(pageSize).
		Offset(offset).
		Find(&comments).Error
	if err != nil {
		return nil, 0, err
	}

	return comments, total, nil
}

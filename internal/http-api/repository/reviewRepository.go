package repository

import (
	"reviewhub/internal/http-api/models"

	"gorm.io/gorm"
)

type ReviewRepository interface {
	Create(review *models.Review) error
	Update(review *models.Review) error
	Delete(id int64) error
	GetByID(id int64) (*models.Review, error)
	GetByTitleAndID(titleID, id int64) (*models.Review, error)
	ExistsByTitleAndAuthor(titleID int64, authorID string) (bool, error)
	ListByTitle(titleID int64, page, pageSize int) ([]models.Review, int64, error)
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

// Create a new review. The composite unique index on (title_id, author_id)
// closes the race between concurrent duplicate submissions; the resulting
// gorm.ErrDuplicatedKey is translated by the service layer.
func (r *reviewRepository) Create(review *models.Review) error {
	return r.db.Create(review).Error
}

// Update an existing review
func (r *reviewRepository) Update(review *models.Review) error {
	return r.db.Save(review).Error
}

// Delete a review and its comments
func (r *reviewRepository) Delete(id int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("review_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Review{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// GetByID retrieves a review with its author preloaded
func (r *reviewRepository) GetByID(id int64) (*models.Review, error) {
	var review models.Review
	if err := r.db.Preload("Author").First(&review, id).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

// GetByTitleAndID retrieves a review scoped to its parent title
func (r *reviewRepository) GetByTitleAndID(titleID, id int64) (*models.Review, error) {
	var review models.Review
	err := r.db.Where("title_id = ?", titleID).
		Preload("Author").
		First(&review, id).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// ExistsByTitleAndAuthor reports whether the author already reviewed the title
func (r *reviewRepository) ExistsByTitleAndAuthor(titleID int64, authorID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Review{}).
		Where("title_id = ? AND author_id = ?", titleID, authorID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListByTitle retrieves reviews for a title ordered by publication time ascending
func (r *reviewRepository) ListByTitle(titleID int64, page, pageSize int) ([]models.Review, int64, error) {
	var reviews []models.Review
	var total int64

	if err := r.db.Model(&models.Review{}).Where("title_id = ?", titleID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := r.db.Where("title_id = ?", titleID).
		Preload("Author").
		Order("pub_date ASC").
		Limit(pageSize).
		Offset(offset).
		Find(&reviews).Error
	if err != nil {
		return nil, 0, err
	}

	return reviews, total, nil
}

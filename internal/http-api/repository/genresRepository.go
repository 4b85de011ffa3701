package repository

import (
	"reviewhub/internal/http-api/models"

	"gorm.io/gorm"
)

type GenreRepository interface {
	Create(genre *models.Genre) error
	Update(genre *models.Genre) error
	Delete(slug string) error
	FindBySlug(slug string) (*models.Genre, error)
	FindBySlugs(slugs []string) ([]models.Genre, error)
	List(search string, page, pageSize int) ([]models.Genre, int64, error)
}

type genreRepository struct {
	db *gorm.DB
}

func NewGenreRepository(db *gorm.DB) GenreRepository {
	return &genreRepository{db: db}
}

// Create a new genre
func (r *genreRepository) Create(genre *models.Genre) error {
	return r.db.Create(genre).Error
}

// Update an existing genre
func (r *genreRepository) Update(genre *models.Genre) error {
	return r.db.Save(genre).Error
}

// Delete a genre by slug; join rows go with it
func (r *genreRepository) Delete(slug string) error {
	genre, err := r.FindBySlug(slug)
	if err != nil {
		return err
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("genre_id = ?", genre.ID).Delete(&models.TitleGenre{}).Error; err != nil {
			return err
		}
		return tx.Delete(genre).Error
	})
}

// FindBySlug retrieves a genre by its slug
func (r *genreRepository) FindBySlug(slug string) (*models.Genre, error) {
	var genre models.Genre
	if err := r.db.Where("slug = ?", slug).First(&genre).Error; err != nil {
		return nil, err
	}
	return &genre, nil
}

// FindBySlugs retrieves all genres matching the given slugs
func (r *genreRepository) FindBySlugs(slugs []string) ([]models.Genre, error) {
	var genres []models.Genre
	if len(slugs) == 0 {
		return genres, nil
	}
	if err := r.db.Where("slug IN ?", slugs).Find(&genres).Error; err != nil {
		return nil, err
	}
	return genres, nil
}

// List retrieves genres with optional name substring search and pagination
func (r *genreRepository) List(search string, page, pageSize int) ([]models.Genre, int64, error) {
	var genres []models.Genre
	var total int64

	query := r.db.Model(&models.Genre{})
	if search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Order("name ASC").
		Limit(pageSize).
		Offset(offset).
		Find(&genres).Error
	if err != nil {
		return nil, 0, err
	}

	return genres, total, nil
}

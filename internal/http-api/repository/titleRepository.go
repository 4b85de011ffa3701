package repository

import (
	"reviewhub/internal/http-api/models"

	"gorm.io/gorm"
)

// TitleFilter narrows the title list endpoint.
type TitleFilter struct {
	Category string // category slug
	Genre    string // genre slug
	Name     string // name substring
	Year     *int
}

type TitleRepository interface {
	Create(title *models.Title) error
	Update(title *models.Title) error
	ReplaceGenres(title *models.Title, genres []models.Genre) error
	Delete(id int64) error
	GetByID(id int64) (*models.Title, error)
	List(filter TitleFilter, page, pageSize int) ([]models.Title, int64, error)
	AverageRating(titleID int64) (*float64, error)
	AverageRatings(titleIDs []int64) (map[int64]float64, error)
}

type titleRepository struct {
	db *gorm.DB
}

func NewTitleRepository(db *gorm.DB) TitleRepository {
	return &titleRepository{db: db}
}

// Create a new title along with its genre links
func (r *titleRepository) Create(title *models.Title) error {
	return r.db.Create(title).Error
}

// Update an existing title (associations are replaced separately)
func (r *titleRepository) Update(title *models.Title) error {
	return r.db.Omit("Genres", "Category").Save(title).Error
}

// ReplaceGenres swaps the full genre set of a title
func (r *titleRepository) ReplaceGenres(title *models.Title, genres []models.Genre) error {
	return r.db.Model(title).Association("Genres").Replace(genres)
}

// Delete a title; reviews and comments cascade away with it
func (r *titleRepository) Delete(id int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var reviewIDs []int64
		if err := tx.Model(&models.Review{}).
			Where("title_id = ?", id).
			Pluck("id", &reviewIDs).Error; err != nil {
			return err
		}
		if len(reviewIDs) > 0 {
			if err := tx.Where("review_id IN ?", reviewIDs).Delete(&models.Comment{}).Error; err != nil {
				return err
			}
			if err := tx.Where("title_id = ?", id).Delete(&models.Review{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("title_id = ?", id).Delete(&models.TitleGenre{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Title{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// GetByID retrieves a title with its category and genres preloaded
func (r *titleRepository) GetByID(id int64) (*models.Title, error) {
	var title models.Title
	err := r.db.Preload("Category").
		Preload("Genres").
		First(&title, id).Error
	if err != nil {
		return nil, err
	}
	return &title, nil
}

// List retrieves titles matching the filter, ordered by name, with pagination
func (r *titleRepository) List(filter TitleFilter, page, pageSize int) ([]models.Title, int64, error) {
	var titles []models.Title
	var total int64

	query := r.db.Model(&models.Title{})
	if filter.Name != "" {
		query = query.Where("titles.name LIKE ?", "%"+filter.Name+"%")
	}
	if filter.Year != nil {
		query = query.Where("titles.year = ?", *filter.Year)
	}
	if filter.Category != "" {
		query = query.Joins("JOIN categories ON categories.id = titles.category_id").
			Where("categories.slug = ?", filter.Category)
	}
	if filter.Genre != "" {
		query = query.Joins("JOIN title_genres ON title_genres.title_id = titles.id").
			Joins("JOIN genres ON genres.id = title_genres.genre_id").
			Where("genres.slug = ?", filter.Genre)
	}

	if err := query.Distinct("titles.id").Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Distinct().
		Preload("Category").
		Preload("Genres").
		Order("titles.name ASC").
		Limit(pageSize).
		Offset(offset).
		Find(&titles).Error
	if err != nil {
		return nil, 0, err
	}

	return titles, total, nil
}

// AverageRating computes the mean review score for one title, nil when unreviewed
func (r *titleRepository) AverageRating(titleID int64) (*float64, error) {
	ratings, err := r.AverageRatings([]int64{titleID})
	if err != nil {
		return nil, err
	}
	if avg, ok := ratings[titleID]; ok {
		return &avg, nil
	}
	return nil, nil
}

// AverageRatings computes mean review scores for a batch of titles in one query.
// Titles without reviews are absent from the result map.
func (r *titleRepository) AverageRatings(titleIDs []int64) (map[int64]float64, error) {
	ratings := make(map[int64]float64, len(titleIDs))
	if len(titleIDs) == 0 {
		return ratings, nil
	}

	var rows []struct {
		TitleID int64
		Average float64
	}
	err := r.db.Model(&models.Review{}).
		Select("title_id, AVG(score) as average").
		Where("title_id IN ?", titleIDs).
		Group("title_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		ratings[row.TitleID] = row.Average
	}
	return ratings, nil
}

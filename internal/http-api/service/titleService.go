package service

import (
	"errors"
	"time"

	"reviewhub/internal/http-api/dto"
	"reviewhub/internal/http-api/models"
	"reviewhub/internal/http-api/repository"
)

var (
	ErrTitleNotFound   = errors.New("title not found")
	ErrYearInFuture    = errors.New("year must not exceed the current year")
	ErrUnknownCategory = errors.New("unknown category slug")
	ErrUnknownGenre    = errors.New("unknown genre slug")
)

type TitleService interface {
	List(filter repository.TitleFilter, page, pageSize int) (*dto.PaginatedTitleResponse, error)
	Get(id int64) (*dto.TitleResponse, error)
	Create(req dto.CreateTitleDTO) (*dto.TitleResponse, error)
	Update(id int64, req dto.UpdateTitleDTO) (*dto.TitleResponse, error)
	Delete(id int64) error
}

type titleService struct {
	titleRepo    repository.TitleRepository
	categoryRepo repository.CategoryRepository
	genreRepo    repository.GenreRepository
}

func NewTitleService(
	titleRepo repository.TitleRepository,
	categoryRepo repository.CategoryRepository,
	genreRepo repository.GenreRepository,
) TitleService {
	return &titleService{
		titleRepo:    titleRepo,
		categoryRepo: categoryRepo,
		genreRepo:    genreRepo,
	}
}

// validateYear rejects release years from the future. The bound is the current
// calendar year, recomputed on every call. There is no lower bound.
func validateYear(year int) error {
	if year > time.Now().Year() {
		return ErrYearInFuture
	}
	return nil
}

// List retrieves titles matching the filter, each with its derived rating.
func (s *titleService) List(filter repository.TitleFilter, page, pageSize int) (*dto.PaginatedTitleResponse, error) {
	titles, total, err := s.titleRepo.List(filter, page, pageSize)
	if err != nil {
		return nil, err
	}

	titleIDs := make([]int64, 0, len(titles))
	for i := range titles {
		titleIDs = append(titleIDs, titles[i].ID)
	}
	ratings, err := s.titleRepo.AverageRatings(titleIDs)
	if err != nil {
		return nil, err
	}

	titleResponses := make([]dto.TitleResponse, 0, len(titles))
	for i := range titles {
		var rating *float64
		if avg, ok := ratings[titles[i].ID]; ok {
			avg := avg
			rating = &avg
		}
		titleResponses = append(titleResponses, *dto.FromModelToTitleResponse(&titles[i], rating))
	}

	return dto.NewPaginatedTitleResponse(titleResponses, total, page, pageSize), nil
}

// Get retrieves a single title with its derived rating.
func (s *titleService) Get(id int64) (*dto.TitleResponse, error) {
	title, err := s.titleRepo.GetByID(id)
	if err != nil {
		return nil, ErrTitleNotFound
	}

	rating, err := s.titleRepo.AverageRating(id)
	if err != nil {
		return nil, err
	}

	return dto.FromModelToTitleResponse(title, rating), nil
}

// Create adds a title, resolving its category and genres by slug.
func (s *titleService) Create(req dto.CreateTitleDTO) (*dto.TitleResponse, error) {
	if err := validateYear(req.Year); err != nil {
		return nil, err
	}

	title := &models.Title{
		Name: req.Name,
		Year: req.Year,
	}
	if req.Description != nil {
		title.Description = *req.Description
	}

	if req.Category != nil && *req.Category != "" {
		category, err := s.categoryRepo.FindBySlug(*req.Category)
		if err != nil {
			return nil, ErrUnknownCategory
		}
		title.CategoryID = &category.ID
	}

	genres, err := s.resolveGenres(req.Genre)
	if err != nil {
		return nil, err
	}
	title.Genres = genres

	if err := s.titleRepo.Create(title); err != nil {
		return nil, err
	}

	return s.Get(title.ID)
}

// Update applies a partial update to a title.
func (s *titleService) Update(id int64, req dto.UpdateTitleDTO) (*dto.TitleResponse, error) {
	title, err := s.titleRepo.GetByID(id)
	if err != nil {
		return nil, ErrTitleNotFound
	}

	if req.Name != nil {
		title.Name = *req.Name
	}
	if req.Year != nil {
		if err := validateYear(*req.Year); err != nil {
			return nil, err
		}
		title.Year = *req.Year
	}
	if req.Description != nil {
		title.Description = *req.Description
	}
	if req.Category != nil {
		if *req.Category == "" {
			title.CategoryID = nil
		} else {
			category, err := s.categoryRepo.FindBySlug(*req.Category)
			if err != nil {
				return nil, ErrUnknownCategory
			}
			title.CategoryID = &category.ID
		}
	}

	if err := s.titleRepo.Update(title); err != nil {
		return nil, err
	}

	if req.Genre != nil {
		genres, err := s.resolveGenres(*req.Genre)
		if err != nil {
			return nil, err
		}
		if err := s.titleRepo.ReplaceGenres(title, genres); err != nil {
			return nil, err
		}
	}

	return s.Get(id)
}

// Delete removes a title, cascading to its reviews and comments.
func (s *titleService) Delete(id int64) error {
	if err := s.titleRepo.Delete(id); err != nil {
		return ErrTitleNotFound
	}
	return nil
}

func (s *titleService) resolveGenres(slugs []string) ([]models.Genre, error) {
	// repeated slugs collapse to one mention so the count check below only
	// fails for slugs that genuinely don't exist
	unique := make([]string, 0, len(slugs))
	seen := make(map[string]struct{}, len(slugs))
	for _, slug := range slugs {
		if _, ok := seen[slug]; ok {
			continue
		}
		seen[slug] = struct{}{}
		unique = append(unique, slug)
	}

	genres, err := s.genreRepo.FindBySlugs(unique)
	if err != nil {
		return nil, err
	}
	if len(genres) != len(unique) {
		return nil, ErrUnknownGenre
	}
	return genres, nil
}

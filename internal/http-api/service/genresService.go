package service

import (
	"errors"

	gslug "github.com/gosimple/slug"

	"reviewhub/internal/http-api/dto"
	"reviewhub/internal/http-api/models"
	"reviewhub/internal/http-api/repository"
)

var ErrGenreNotFound = errors.New("genre not found")

type GenreService interface {
	List(search string, page, pageSize int) (*dto.PaginatedGenreResponse, error)
	Get(slug string) (*dto.GenreResponse, error)
	Create(req dto.CreateGenreDTO) (*dto.GenreResponse, error)
	Update(slug string, req dto.UpdateGenreDTO) (*dto.GenreResponse, error)
	Delete(slug string) error
}

type genreService struct {
	genreRepo repository.GenreRepository
}

func NewGenreService(genreRepo repository.GenreRepository) GenreService {
	return &genreService{genreRepo: genreRepo}
}

func (s *genreService) List(search string, page, pageSize int) (*dto.PaginatedGenreResponse, error) {
	genres, total, err := s.genreRepo.List(search, page, pageSize)
	if err != nil {
		return nil, err
	}

	genreResponses := make([]dto.GenreResponse, 0, len(genres))
	for i := range genres {
		genreResponses = append(genreResponses, *dto.FromModelToGenreResponse(&genres[i]))
	}

	return dto.NewPaginatedGenreResponse(genreResponses, total, page, pageSize), nil
}

func (s *genreService) Get(slug string) (*dto.GenreResponse, error) {
	genre, err := s.genreRepo.FindBySlug(slug)
	if err != nil {
		return nil, ErrGenreNotFound
	}
	return dto.FromModelToGenreResponse(genre), nil
}

// Create adds a genre. When the client omits the slug it is derived from the name.
func (s *genreService) Create(req dto.CreateGenreDTO) (*dto.GenreResponse, error) {
	genreSlug := gslug.Make(req.Name)
	if req.Slug != nil && *req.Slug != "" {
		genreSlug = *req.Slug
	}

	if _, err := s.genreRepo.FindBySlug(genreSlug); err == nil {
		return nil, ErrSlugInUse
	}

	genre := &models.Genre{Name: req.Name, Slug: genreSlug}
	if err := s.genreRepo.Create(genre); err != nil {
		return nil, err
	}
	return dto.FromModelToGenreResponse(genre), nil
}

// Update renames a genre; the slug stays fixed.
func (s *genreService) Update(slug string, req dto.UpdateGenreDTO) (*dto.GenreResponse, error) {
	genre, err := s.genreRepo.FindBySlug(slug)
	if err != nil {
		return nil, ErrGenreNotFound
	}

	genre.Name = req.Name
	if err := s.genreRepo.Update(genre); err != nil {
		return nil, err
	}
	return dto.FromModelToGenreResponse(genre), nil
}

func (s *genreService) Delete(slug string) error {
	if err := s.genreRepo.Delete(slug); err != nil {
		return ErrGenreNotFound
	}
	return nil
}

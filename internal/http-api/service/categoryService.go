package service

import (
	"errors"

	gslug "github.com/gosimple/slug"

	"reviewhub/internal/http-api/dto"
	"reviewhub/internal/http-api/models"
	"reviewhub/internal/http-api/repository"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrSlugInUse        = errors.New("slug already in use")
)

type CategoryService interface {
	List(search string, page, pageSize int) (*dto.PaginatedCategoryResponse, error)
	Get(slug string) (*dto.CategoryResponse, error)
	Create(req dto.CreateCategoryDTO) (*dto.CategoryResponse, error)
	Update(slug string, req dto.UpdateCategoryDTO) (*dto.CategoryResponse, error)
	Delete(slug string) error
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
}

func NewCategoryService(categoryRepo repository.CategoryRepository) CategoryService {
	return &categoryService{categoryRepo: categoryRepo}
}

func (s *categoryService) List(search string, page, pageSize int) (*dto.PaginatedCategoryResponse, error) {
	categories, total, err := s.categoryRepo.List(search, page, pageSize)
	if err != nil {
		return nil, err
	}

	categoryResponses := make([]dto.CategoryResponse, 0, len(categories))
	for i := range categories {
		categoryResponses = append(categoryResponses, *dto.FromModelToCategoryResponse(&categories[i]))
	}

	return dto.NewPaginatedCategoryResponse(categoryResponses, total, page, pageSize), nil
}

func (s *categoryService) Get(slug string) (*dto.CategoryResponse, error) {
	category, err := s.categoryRepo.FindBySlug(slug)
	if err != nil {
		return nil, ErrCategoryNotFound
	}
	return dto.FromModelToCategoryResponse(category), nil
}

// Create adds a category. When the client omits the slug it is derived from the name.
func (s *categoryService) Create(req dto.CreateCategoryDTO) (*dto.CategoryResponse, error) {
	categorySlug := gslug.Make(req.Name)
	if req.Slug != nil && *req.Slug != "" {
		categorySlug = *req.Slug
	}

	if _, err := s.categoryRepo.FindBySlug(categorySlug); err == nil {
		return nil, ErrSlugInUse
	}

	category := &models.Category{Name: req.Name, Slug: categorySlug}
	if err := s.categoryRepo.Create(category); err != nil {
		return nil, err
	}
	return dto.FromModelToCategoryResponse(category), nil
}

// Update renames a category; the slug stays fixed.
func (s *categoryService) Update(slug string, req dto.UpdateCategoryDTO) (*dto.CategoryResponse, error) {
	category, err := s.categoryRepo.FindBySlug(slug)
	if err != nil {
		return nil, ErrCategoryNotFound
	}

	category.Name = req.Name
	if err := s.categoryRepo.Update(category); err != nil {
		return nil, err
	}
	return dto.FromModelToCategoryResponse(category), nil
}

func (s *categoryService) Delete(slug string) error {
	if err := s.categoryRepo.Delete(slug); err != nil {
		return ErrCategoryNotFound
	}
	return nil
}

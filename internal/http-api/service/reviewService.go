package service

import (
	"errors"

	"gorm.io/gorm"

	"reviewhub/internal/http-api/dto"
	"reviewhub/internal/http-api/models"
	"reviewhub/internal/http-api/repository"
)

var (
	ErrReviewNotFound  = errors.New("review not found")
	ErrDuplicateReview = errors.New("you have already reviewed this title")
	ErrInvalidScore    = errors.New("score must be between 1 and 10")
	ErrForbidden       = errors.New("you don't have permission to modify this content")
)

// canModifyContent is the moderation rule for reviews and comments: the
// original author, a moderator, or an admin.
func canModifyContent(actor Actor, authorID string) bool {
	return actor.ID == authorID || actor.Role.CanModerate()
}

type ReviewService interface {
	ListByTitle(titleID int64, page, pageSize int) (*dto.PaginatedReviewResponse, error)
	Get(titleID, reviewID int64) (*dto.ReviewResponse, error)
	Create(actor Actor, titleID int64, req dto.CreateReviewDTO) (*dto.ReviewResponse, error)
	Update(actor Actor, titleID, reviewID int64, req dto.UpdateReviewDTO) (*dto.ReviewResponse, error)
	Delete(actor Actor, titleID, reviewID int64) error
}

type reviewService struct {
	reviewRepo repository.ReviewRepository
	titleRepo  repository.TitleRepository
}

func NewReviewService(reviewRepo repository.ReviewRepository, titleRepo repository.TitleRepository) ReviewService {
	return &reviewService{
		reviewRepo: reviewRepo,
		titleRepo:  titleRepo,
	}
}

// ListByTitle retrieves a title's reviews ordered by publication time.
func (s *reviewService) ListByTitle(titleID int64, page, pageSize int) (*dto.PaginatedReviewResponse, error) {
	if _, err := s.titleRepo.GetByID(titleID); err != nil {
		return nil, ErrTitleNotFound
	}

	reviews, total, err := s.reviewRepo.ListByTitle(titleID, page, pageSize)
	if err != nil {
		return nil, err
	}

	reviewResponses := make([]dto.ReviewResponse, 0, len(reviews))
	for i := range reviews {
		reviewResponses = append(reviewResponses, *dto.FromModelToReviewResponse(&reviews[i]))
	}

	return dto.NewPaginatedReviewResponse(reviewResponses, total, page, pageSize), nil
}

func (s *reviewService) Get(titleID, reviewID int64) (*dto.ReviewResponse, error) {
	review, err := s.reviewRepo.GetByTitleAndID(titleID, reviewID)
	if err != nil {
		return nil, ErrReviewNotFound
	}
	return dto.FromModelToReviewResponse(review), nil
}

// Create posts a review. One review per author per title: the pre-check gives
// a readable error, the unique index backs it up under concurrency.
func (s *reviewService) Create(actor Actor, titleID int64, req dto.CreateReviewDTO) (*dto.ReviewResponse, error) {
	if _, err := s.titleRepo.GetByID(titleID); err != nil {
		return nil, ErrTitleNotFound
	}
	if req.Score < 1 || req.Score > 10 {
		return nil, ErrInvalidScore
	}

	exists, err := s.reviewRepo.ExistsByTitleAndAuthor(titleID, actor.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateReview
	}

	review := &models.Review{
		TitleID:  titleID,
		AuthorID: actor.ID,
		Text:     req.Text,
		Score:    req.Score,
	}
	if err := s.reviewRepo.Create(review); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateReview
		}
		return nil, err
	}

	// reload with author data
	created, err := s.reviewRepo.GetByID(review.ID)
	if err != nil {
		return nil, err
	}
	return dto.FromModelToReviewResponse(created), nil
}

// Update edits a review; only the author, a moderator, or an admin may do so.
func (s *reviewService) Update(actor Actor, titleID, reviewID int64, req dto.UpdateReviewDTO) (*dto.ReviewResponse, error) {
	review, err := s.reviewRepo.GetByTitleAndID(titleID, reviewID)
	if err != nil {
		return nil, ErrReviewNotFound
	}
	if !canModifyContent(actor, review.AuthorID) {
		return nil, ErrForbidden
	}

	if req.Text != nil {
		review.Text = *req.Text
	}
	if req.Score != nil {
		if *req.Score < 1 || *req.Score > 10 {
			return nil, ErrInvalidScore
		}
		review.Score = *req.Score
	}

	if err := s.reviewRepo.Update(review); err != nil {
		return nil, err
	}
	return dto.FromModelToReviewResponse(review), nil
}

// Delete removes a review; only the author, a moderator, or an admin may do so.
func (s *reviewService) Delete(actor Actor, titleID, reviewID int64) error {
	review, err := s.reviewRepo.GetByTitleAndID(titleID, reviewID)
	if err != nil {
		return ErrReviewNotFound
	}
	if !canModifyContent(actor, review.AuthorID) {
		return ErrForbidden
	}
	return s.reviewRepo.Delete(review.ID)
}

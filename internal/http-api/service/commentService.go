package service

import (
	"errors"

	"reviewhub/internal/http-api/dto"
	"reviewhub/internal/http-api/models"
	"reviewhub/internal/http-api/repository"
)

var ErrCommentNotFound = errors.New("comment not found")

type CommentService interface {
	ListByReview(titleID, reviewID int64, page, pageSize int) (*dto.PaginatedCommentResponse, error)
	Get(titleID, reviewID, commentID int64) (*dto.CommentResponse, error)
	Create(actor Actor, titleID, reviewID int64, req dto.CreateCommentDTO) (*dto.CommentResponse, error)
	Update(actor Actor, titleID, reviewID, commentID int64, req dto.UpdateCommentDTO) (*dto.CommentResponse, error)
	Delete(actor Actor, titleID, reviewID, commentID int64) error
}

type commentService struct {
	commentRepo repository.CommentRepository
	reviewRepo  repository.ReviewRepository
}

func NewCommentService(commentRepo repository.CommentRepository, reviewRepo repository.ReviewRepository) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		reviewRepo:  reviewRepo,
	}
}

// parentReview resolves the review under its title, so a comment is only ever
// reachable through the right /titles/{id}/reviews/{id}/ chain.
func (s *commentService) parentReview(titleID, reviewID int64) (*models.Review, error) {
	review, err := s.reviewRepo.GetByTitleAndID(titleID, reviewID)
	if err != nil {
		return nil, ErrReviewNotFound
	}
	return review, nil
}

// ListByReview retrieves a review's comments ordered by publication time.
func (s *commentService) ListByReview(titleID, reviewID int64, page, pageSize int) (*dto.PaginatedCommentResponse, error) {
	if _, err := s.parentReview(titleID, reviewID); err != nil {
		return nil, err
	}

	comments, total, err := s.commentRepo.ListByReview(reviewID, page, pageSize)
	if err != nil {
		return nil, err
	}

	commentResponses := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		commentResponses = append(commentResponses, *dto.FromModelToCommentResponse(&comments[i]))
	}

	return dto.NewPaginatedCommentResponse(commentResponses, total, page, pageSize), nil
}

func (s *commentService) Get(titleID, reviewID, commentID int64) (*dto.CommentResponse, error) {
	if _, err := s.parentReview(titleID, reviewID); err != nil {
		return nil, err
	}
	comment, err := s.commentRepo.GetByReviewAndID(reviewID, commentID)
	if err != nil {
		return nil, ErrCommentNotFound
	}
	return dto.FromModelToCommentResponse(comment), nil
}

// Create posts a comment under a review.
func (s *commentService) Create(actor Actor, titleID, reviewID int64, req dto.CreateCommentDTO) (*dto.CommentResponse, error) {
	if _, err := s.parentReview(titleID, reviewID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		ReviewID: reviewID,
		AuthorID: actor.ID,
		Text:     req.Text,
	}
	if err := s.commentRepo.Create(comment); err != nil {
		return nil, err
	}

	// reload with author data
	created, err := s.commentRepo.GetByReviewAndID(reviewID, comment.ID)
	if err != nil {
		return nil, err
	}
	return dto.FromModelToCommentResponse(created), nil
}

// Update edits a comment; only the author, a moderator, or an admin may do so.
func (s *commentService) Update(actor Actor, titleID, reviewID, commentID int64, req dto.UpdateCommentDTO) (*dto.CommentResponse, error) {
	if _, err := s.parentReview(titleID, reviewID); err != nil {
		return nil, err
	}
	comment, err := s.commentRepo.GetByReviewAndID(reviewID, commentID)
	if err != nil {
		return nil, ErrCommentNotFound
	}
	if !canModifyContent(actor, comment.AuthorID) {
		return nil, ErrForbidden
	}

	comment.Text = req.Text
	if err := s.commentRepo.Update(comment); err != nil {
		return nil, err
	}
	return dto.FromModelToCommentResponse(comment), nil
}

// Delete removes a comment; only the author, a moderator, or an admin may do so.
func (s *commentService) Delete(actor Actor, titleID, reviewID, commentID int64) error {
	if _, err := s.parentReview(titleID, reviewID); err != nil {
		return err
	}
	comment, err := s.commentRepo.GetByReviewAndID(reviewID, commentID)
	if err != nil {
		return ErrCommentNotFound
	}
	if !canModifyContent(actor, comment.AuthorID) {
		return ErrForbidden
	}
	return s.commentRepo.Delete(comment.ID)
}

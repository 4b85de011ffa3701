package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"reviewhub/internal/http-api/dto"
	"reviewhub/internal/http-api/models"
)

func storedComment() *models.Comment {
	return &models.Comment{
		ID:       21,
		ReviewID: 11,
		AuthorID: reviewAuthor.ID,
		Text:     "agreed",
		Author:   models.User{ID: reviewAuthor.ID, Username: reviewAuthor.Username},
	}
}

func TestCreateComment_Success(t *testing.T) {
	mockCommentRepo := new(MockCommentRepository)
	mockReviewRepo := new(MockReviewRepository)

	mockReviewRepo.On("GetByTitleAndID", int64(1), int64(11)).Return(storedReview(), nil)
	mockCommentRepo.On("Create", mock.AnythingOfType("*models.Comment")).Run(func(args mock.Arguments) {
		args.Get(0).(*models.Comment).ID = 21
	}).Return(nil)
	mockCommentRepo.On("GetByReviewAndID", int64(11), int64(21)).Return(storedComment(), nil)
	commentService := NewCommentService(mockCommentRepo, mockReviewRepo)

	resp, err := commentService.Create(reviewAuthor, 1, 11, dto.CreateCommentDTO{Text: "agreed"})

	require.NoError(t, err)
	assert.Equal(t, int64(21), resp.ID)
	assert.Equal(t, "author", resp.Author)
}

func TestCreateComment_ReviewNotUnderTitle(t *testing.T) {
	mockReviewRepo := new(MockReviewRepository)
	// review 11 belongs to title 1, the request came in under title 2
	mockReviewRepo.On("GetByTitleAndID", int64(2), int64(11)).Return(nil, gorm.ErrRecordNotFound)
	commentService := NewCommentService(new(MockCommentRepository), mockReviewRepo)

	_, err := commentService.Create(reviewAuthor, 2, 11, dto.CreateCommentDTO{Text: "lost"})

	assert.ErrorIs(t, err, ErrReviewNotFound)
}

func TestGetComment_NotFound(t *testing.T) {
	mockCommentRepo := new(MockCommentRepository)
	mockReviewRepo := new(MockReviewRepository)
	mockReviewRepo.On("GetByTitleAndID", int64(1), int64(11)).Return(storedReview(), nil)
	mockCommentRepo.On("GetByReviewAndID", int64(11), int64(404)).Return(nil, gorm.ErrRecordNotFound)
	commentService := NewCommentService(mockCommentRepo, mockReviewRepo)

	_, err := commentService.Get(1, 11, 404)

	assert.ErrorIs(t, err, ErrCommentNotFound)
}

func TestUpdateComment_Permissions(t *testing.T) {
	for _, tc := range []struct {
		name    string
		actor   Actor
		allowed bool
	}{
		{"author", reviewAuthor, true},
		{"stranger", stranger, false},
		{"moderator", moderator, true},
		{"admin", siteAdmin, true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			mockCommentRepo := new(MockCommentRepository)
			mockReviewRepo := new(MockReviewRepository)
			mockReviewRepo.On("GetByTitleAndID", int64(1), int64(11)).Return(storedReview(), nil)
			mockCommentRepo.On("GetByReviewAndID", int64(11), int64(21)).Return(storedComment(), nil)
			mockCommentRepo.On("Update", mock.AnythingOfType("*models.Comment")).Return(nil)
			commentService := NewCommentService(mockCommentRepo, mockReviewRepo)

			resp, err := commentService.Update(tc.actor, 1, 11, 21, dto.UpdateCommentDTO{Text: "reworded"})
			if tc.allowed {
				require.NoError(t, err)
				assert.Equal(t, "reworded", resp.Text)
			} else {
				assert.ErrorIs(t, err, ErrForbidden)
				mockCommentRepo.AssertNotCalled(t, "Update")
			}
		})
	}
}

func TestDeleteComment_StrangerForbidden(t *testing.T) {
	mockCommentRepo := new(MockCommentRepository)
	mockReviewRepo := new(MockReviewRepository)
	mockReviewRepo.On("GetByTitleAndID", int64(1), int64(11)).Return(storedReview(), nil)
	mockCommentRepo.On("GetByReviewAndID", int64(11), int64(21)).Return(storedComment(), nil)
	commentService := NewCommentService(mockCommentRepo, mockReviewRepo)

	err := commentService.Delete(stranger, 1, 11, 21)

	assert.ErrorIs(t, err, ErrForbidden)
	mockCommentRepo.AssertNotCalled(t, "Delete")
}

func TestDeleteComment_ModeratorAllowed(t *testing.T) {
	mockCommentRepo := new(MockCommentRepository)
	mockReviewRepo := new(MockReviewRepository)
	mockReviewRepo.On("GetByTitleAndID", int64(1), int64(11)).Return(storedReview(), nil)
	mockCommentRepo.On("GetByReviewAndID", int64(11), int64(21)).Return(storedComment(), nil)
	mockCommentRepo.On("Delete", int64(21)).Return(nil)
	commentService := NewCommentService(mockCommentRepo, mockReviewRepo)

	err := commentService.Delete(moderator, 1, 11, 21)

	assert.NoError(t, err)
	mockCommentRepo.AssertExpectations(t)
}

func TestListComments_ParentScoped(t *testing.T) {
	mockReviewRepo := new(MockReviewRepository)
	mockReviewRepo.On("GetByTitleAndID", int64(2), int64(11)).Return(nil, gorm.ErrRecordNotFound)
	commentService := NewCommentService(new(MockCommentRepository), mockReviewRepo)

	_, err := commentService.ListByReview(2, 11, 1, 20)

	assert.ErrorIs(t, err, ErrReviewNotFound)
}

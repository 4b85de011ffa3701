package handler

import (
	"github.com/stretchr/testify/mock"

	"reviewhub/internal/http-api/dto"
	"reviewhub/internal/http-api/models"
	"reviewhub/internal/http-api/repository"
	"reviewhub/internal/http-api/service"
)

// MockAuthService mocks the service.AuthService interface
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Signup(username, email string) (*models.User, string, error) {
	args := m.Called(username, email)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*models.User), args.String(1), args.Error(2)
}

func (m *MockAuthService) IssueToken(username, confirmationCode string) (string, error) {
	args := m.Called(username, confirmationCode)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) ValidateToken(tokenString string) (*service.Claims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Claims), args.Error(1)
}

// MockTitleService mocks the service.TitleService interface
type MockTitleService struct {
	mock.Mock
}

func (m *MockTitleService) List(filter repository.TitleFilter, page, pageSize int) (*dto.PaginatedTitleResponse, error) {
	args := m.Called(filter, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PaginatedTitleResponse), args.Error(1)
}

func (m *MockTitleService) Get(id int64) (*dto.TitleResponse, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TitleResponse), args.Error(1)
}

func (m *MockTitleService) Create(req dto.CreateTitleDTO) (*dto.TitleResponse, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TitleResponse), args.Error(1)
}

func (m *MockTitleService) Update(id int64, req dto.UpdateTitleDTO) (*dto.TitleResponse, error) {
	args := m.Called(id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TitleResponse), args.Error(1)
}

func (m *MockTitleService) Delete(id int64) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockReviewService mocks the service.ReviewService interface
type MockReviewService struct {
	mock.Mock
}

func (m *MockReviewService) ListByTitle(titleID int64, page, pageSize int) (*dto.PaginatedReviewResponse, error) {
	args := m.Called(titleID, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PaginatedReviewResponse), args.Error(1)
}

func (m *MockReviewService) Get(titleID, reviewID int64) (*dto.ReviewResponse, error) {
	args := m.Called(titleID, reviewID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ReviewResponse), args.Error(1)
}

func (m *MockReviewService) Create(actor service.Actor, titleID int64, req dto.CreateReviewDTO) (*dto.ReviewResponse, error) {
	args := m.Called(actor, titleID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ReviewResponse), args.Error(1)
}

func (m *MockReviewService) Update(actor service.Actor, titleID, reviewID int64, req dto.UpdateReviewDTO) (*dto.ReviewResponse, error) {
	args := m.Called(actor, titleID, reviewID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ReviewResponse), args.Error(1)
}

func (m *MockReviewService) Delete(actor service.Actor, titleID, reviewID int64) error {
	args := m.Called(actor, titleID, reviewID)
	return args.Error(0)
}

// recordingMailer captures the last dispatched confirmation code.
type recordingMailer struct {
	email string
	code  string
}

func (m *recordingMailer) SendConfirmationCode(email, code string) {
	m.email = email
	m.code = code
}

package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reviewhub/internal/http-api/models"
	"reviewhub/internal/http-api/service"
	"reviewhub/internal/limiter"
)

func setupAuthRouter(authService service.AuthService, m *recordingMailer, l *limiter.Limiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	if l == nil {
		l = limiter.New(nil, 100, time.Minute)
	}
	r := gin.New()
	v1 := r.Group("/api/v1")
	NewAuthHandler(authService, m, l).RegisterRoutes(v1)
	return r
}

func TestSignup_SendsCode(t *testing.T) {
	mockAuthService := new(MockAuthService)
	mockAuthService.On("Signup", "reader", "reader@example.com").Return(
		&models.User{ID: "u1", Username: "reader", Email: "reader@example.com", Role: models.RoleUser},
		"abc123.code", nil,
	)
	mailbox := &recordingMailer{}
	router := setupAuthRouter(mockAuthService, mailbox, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/signup",
		strings.NewReader(`{"username":"reader","email":"reader@example.com"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"username":"reader"`)
	assert.NotContains(t, w.Body.String(), "abc123.code", "the code travels by mail, not in the response")
	assert.Equal(t, "reader@example.com", mailbox.email)
	assert.Equal(t, "abc123.code", mailbox.code)
}

func TestSignup_ReservedUsername(t *testing.T) {
	mockAuthService := new(MockAuthService)
	mockAuthService.On("Signup", "me", "me@example.com").Return(nil, "", service.ErrReservedUsername)
	router := setupAuthRouter(mockAuthService, &recordingMailer{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/signup",
		strings.NewReader(`{"username":"me","email":"me@example.com"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"username"`)
}

func TestSignup_DuplicateEmail(t *testing.T) {
	mockAuthService := new(MockAuthService)
	mockAuthService.On("Signup", "reader", "taken@example.com").Return(nil, "", service.ErrEmailInUse)
	router := setupAuthRouter(mockAuthService, &recordingMailer{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/signup",
		strings.NewReader(`{"username":"reader","email":"taken@example.com"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"email"`)
}

func TestSignup_InvalidEmailRejectedByBinding(t *testing.T) {
	mockAuthService := new(MockAuthService)
	router := setupAuthRouter(mockAuthService, &recordingMailer{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/signup",
		strings.NewReader(`{"username":"reader","email":"not-an-email"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockAuthService.AssertNotCalled(t, "Signup")
}

func TestSignup_RateLimited(t *testing.T) {
	mockAuthService := new(MockAuthService)
	mockAuthService.On("Signup", "reader", "reader@example.com").Return(
		&models.User{ID: "u1", Username: "reader", Email: "reader@example.com"}, "code", nil,
	)
	router := setupAuthRouter(mockAuthService, &recordingMailer{}, limiter.New(nil, 1, time.Hour))

	body := `{"username":"reader","email":"reader@example.com"}`
	first := httptest.NewRequest(http.MethodPost, "/api/v1/auth/signup", strings.NewReader(body))
	first.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, first)
	require.Equal(t, http.StatusOK, w.Code)

	second := httptest.NewRequest(http.MethodPost, "/api/v1/auth/signup", strings.NewReader(body))
	second.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, second)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestToken_Success(t *testing.T) {
	mockAuthService := new(MockAuthService)
	mockAuthService.On("IssueToken", "reader", "abc123.code").Return("signed-jwt", nil)
	router := setupAuthRouter(mockAuthService, &recordingMailer{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/token",
		strings.NewReader(`{"username":"reader","confirmation_code":"abc123.code"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"token":"signed-jwt"`)
}

func TestToken_UnknownUser(t *testing.T) {
	mockAuthService := new(MockAuthService)
	mockAuthService.On("IssueToken", "ghost", "whatever").Return("", service.ErrUserNotFound)
	router := setupAuthRouter(mockAuthService, &recordingMailer{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/token",
		strings.NewReader(`{"username":"ghost","confirmation_code":"whatever"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestToken_WrongCode(t *testing.T) {
	mockAuthService := new(MockAuthService)
	mockAuthService.On("IssueToken", "reader", "wrong").Return("", service.ErrInvalidConfirmationCode)
	router := setupAuthRouter(mockAuthService, &recordingMailer{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/token",
		strings.NewReader(`{"username":"reader","confirmation_code":"wrong"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"confirmation_code"`)
}

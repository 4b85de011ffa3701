package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"reviewhub/internal/http-api/dto"
	"reviewhub/internal/http-api/service"
	"reviewhub/internal/limiter"
	"reviewhub/internal/mailer"
)

type AuthHandler struct {
	authService service.AuthService
	mailer      mailer.Mailer
	limiter     *limiter.Limiter
}

func NewAuthHandler(authService service.AuthService, m mailer.Mailer, l *limiter.Limiter) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		mailer:      m,
		limiter:     l,
	}
}

// RegisterRoutes registers the signup and token-exchange endpoints
func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	{
		auth.POST("/signup", h.Signup)
		auth.POST("/token", h.Token)
	}
}

// Signup registers a user and dispatches a confirmation code by mail.
// POST /api/v1/auth/signup/
func (h *AuthHandler) Signup(c *gin.Context) {
	if !h.limiter.Allow(c.Request.Context(), "signup:"+c.ClientIP()) {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many signup attempts"})
		return
	}

	var req dto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, code, err := h.authService.Signup(req.Username, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrReservedUsername), errors.Is(err, service.ErrNameInUse):
			c.JSON(http.StatusBadRequest, gin.H{"username": err.Error()})
		case errors.Is(err, service.ErrEmailInUse):
			c.JSON(http.StatusBadRequest, gin.H{"email": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	// fire-and-forget: mail trouble never fails the signup
	h.mailer.SendConfirmationCode(user.Email, code)

	c.JSON(http.StatusOK, dto.SignupResponse{
		Email:    user.Email,
		Username: user.Username,
	})
}

// Token exchanges a confirmation code for an access token.
// POST /api/v1/auth/token/
func (h *AuthHandler) Token(c *gin.Context) {
	if !h.limiter.Allow(c.Request.Context(), "token:"+c.ClientIP()) {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many token attempts"})
		return
	}

	var req dto.TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := h.authService.IssueToken(req.Username, req.ConfirmationCode)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrInvalidConfirmationCode):
			c.JSON(http.StatusBadRequest, gin.H{"confirmation_code": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, dto.TokenResponse{Token: token})
}

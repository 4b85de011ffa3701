package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"reviewhub/internal/auth"
	"reviewhub/internal/config"
	"reviewhub/internal/http-api/models"
	"reviewhub/internal/http-api/repository"
)

var (
	ErrNameInUse               = errors.New("username already in use")
	ErrEmailInUse              = errors.New("email already in use")
	ErrReservedUsername        = errors.New(`username "me" is reserved`)
	ErrUserNotFound            = errors.New("user not found")
	ErrInvalidConfirmationCode = errors.New("invalid confirmation code")
	ErrInvalidToken            = errors.New("invalid token")
	ErrExpiredToken            = errors.New("token has expired")
)

// reservedUsername collides with the /users/me/ path segment, matched exactly
// and case-sensitively.
const reservedUsername = "me"

// Claims carried by every access token.
type Claims struct {
	UserID   string      `json:"user_id"`
	Username string      `json:"username"`
	Role     models.Role `json:"role"`
	jwt.RegisteredClaims
}

// Actor is the authenticated principal a request acts as. Services take it as
// an explicit parameter instead of reading any ambient request state.
type Actor struct {
	ID       string
	Username string
	Role     models.Role
}

func (c *Claims) Actor() Actor {
	return Actor{ID: c.UserID, Username: c.Username, Role: c.Role}
}

type AuthService interface {
	Signup(username, email string) (user *models.User, confirmationCode string, err error)
	IssueToken(username, confirmationCode string) (accessToken string, err error)
	ValidateToken(tokenString string) (*Claims, error)
}

type authService struct {
	userRepo        repository.UserRepository
	jwtSecret       string
	accessTokenTTL  time.Duration
	confirmationTTL time.Duration
}

func NewAuthService(userRepo repository.UserRepository, cfg *config.Config) AuthService {
	return &authService{
		userRepo:        userRepo,
		jwtSecret:       cfg.JWTSecret,
		accessTokenTTL:  cfg.AccessTokenTTL,
		confirmationTTL: cfg.ConfirmationTTL,
	}
}

// Signup registers a new user and issues a confirmation code bound to the
// freshly created record. The code is returned to the caller for out-of-band
// delivery and only its bcrypt hash is persisted.
func (s *authService) Signup(username, email string) (*models.User, string, error) {
	if username == reservedUsername {
		return nil, "", ErrReservedUsername
	}

	// Check if user exists
	if _, err := s.userRepo.FindByUsername(username); err == nil {
		return nil, "", ErrNameInUse
	}

	// Check if email exists
	if _, err := s.userRepo.FindByEmail(email); err == nil {
		return nil, "", ErrEmailInUse
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Role:     models.RoleUser,
	}
	if err := s.userRepo.Create(user); err != nil {
		// a concurrent signup can slip past the pre-checks; the unique
		// indexes catch it and the violation maps back to the same errors
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if _, lookupErr := s.userRepo.FindByUsername(username); lookupErr == nil {
				return nil, "", ErrNameInUse
			}
			return nil, "", ErrEmailInUse
		}
		return nil, "", err
	}

	code := auth.MakeConfirmationCode(s.jwtSecret, user, time.Now())
	hashedCode, err := auth.HashCode(code)
	if err != nil {
		return nil, "", err
	}
	user.ConfirmationCode = hashedCode
	if err := s.userRepo.Update(user); err != nil {
		return nil, "", err
	}

	return user, code, nil
}

// IssueToken exchanges a valid confirmation code for a signed access token.
// The code must match the stored hash, still sign the user's current state,
// and be inside its validity window. It is consumed on success.
func (s *authService) IssueToken(username, confirmationCode string) (string, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		return "", ErrUserNotFound
	}

	if user.ConfirmationCode == "" {
		return "", ErrInvalidConfirmationCode
	}
	if err := auth.VerifyCode(user.ConfirmationCode, confirmationCode); err != nil {
		return "", ErrInvalidConfirmationCode
	}
	if !auth.CheckConfirmationCode(s.jwtSecret, user, confirmationCode, s.confirmationTTL, time.Now()) {
		return "", ErrInvalidConfirmationCode
	}

	// single use: burn the stored hash before handing out the token
	user.ConfirmationCode = ""
	if err := s.userRepo.Update(user); err != nil {
		return "", err
	}

	return s.generateAccessToken(user)
}

func (s *authService) generateAccessToken(user *models.User) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

// ValidateToken parses and verifies a bearer token, returning its claims.
func (s *authService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if !claims.Role.Valid() {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

package service

import (
	"errors"

	"gorm.io/gorm"

	"reviewhub/internal/http-api/dto"
	"reviewhub/internal/http-api/models"
	"reviewhub/internal/http-api/repository"
)

var ErrInvalidRole = errors.New("invalid role")

type UserService interface {
	List(search string, page, pageSize int) (*dto.PaginatedUserResponse, error)
	Get(username string) (*dto.UserResponse, error)
	Create(actor Actor, req dto.CreateUserDTO) (*dto.UserResponse, error)
	Update(actor Actor, username string, req dto.UpdateUserDTO) (*dto.UserResponse, error)
	Delete(username string) error
	GetSelf(actorID string) (*dto.UserResponse, error)
	UpdateSelf(actorID string, req dto.UpdateUserDTO) (*dto.UserResponse, error)
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

// List retrieves users with optional username search
func (s *userService) List(search string, page, pageSize int) (*dto.PaginatedUserResponse, error) {
	users, total, err := s.userRepo.List(search, page, pageSize)
	if err != nil {
		return nil, err
	}

	userResponses := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		userResponses = append(userResponses, *dto.FromModelToUserResponse(&users[i]))
	}

	return dto.NewPaginatedUserResponse(userResponses, total, page, pageSize), nil
}

// Get retrieves a single user by username
func (s *userService) Get(username string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		return nil, ErrUserNotFound
	}
	return dto.FromModelToUserResponse(user), nil
}

// Create registers a user on behalf of an admin; the admin may assign any valid role.
func (s *userService) Create(actor Actor, req dto.CreateUserDTO) (*dto.UserResponse, error) {
	if req.Username == reservedUsername {
		return nil, ErrReservedUsername
	}
	if _, err := s.userRepo.FindByUsername(req.Username); err == nil {
		return nil, ErrNameInUse
	}
	if _, err := s.userRepo.FindByEmail(req.Email); err == nil {
		return nil, ErrEmailInUse
	}

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		Role:     models.RoleUser,
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.Role != nil {
		if !req.Role.Valid() {
			return nil, ErrInvalidRole
		}
		if actor.Role.IsAdmin() {
			user.Role = *req.Role
		}
	}

	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if _, lookupErr := s.userRepo.FindByUsername(req.Username); lookupErr == nil {
				return nil, ErrNameInUse
			}
			return nil, ErrEmailInUse
		}
		return nil, err
	}
	return dto.FromModelToUserResponse(user), nil
}

// Update applies a partial update to the named user record.
func (s *userService) Update(actor Actor, username string, req dto.UpdateUserDTO) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		return nil, ErrUserNotFound
	}
	return s.applyUpdate(actor, user, req)
}

// Delete removes a user by username
func (s *userService) Delete(username string) error {
	if err := s.userRepo.Delete(username); err != nil {
		return ErrUserNotFound
	}
	return nil
}

// GetSelf retrieves the acting user's own record
func (s *userService) GetSelf(actorID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(actorID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	return dto.FromModelToUserResponse(user), nil
}

// UpdateSelf applies a partial update to the acting user's own record. A role
// field in the payload is silently overwritten back to the actor's current
// role unless the actor is an admin.
func (s *userService) UpdateSelf(actorID string, req dto.UpdateUserDTO) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(actorID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	actor := Actor{ID: user.ID, Username: user.Username, Role: user.Role}
	return s.applyUpdate(actor, user, req)
}

func (s *userService) applyUpdate(actor Actor, user *models.User, req dto.UpdateUserDTO) (*dto.UserResponse, error) {
	if req.Email != nil && *req.Email != user.Email {
		if _, err := s.userRepo.FindByEmail(*req.Email); err == nil {
			return nil, ErrEmailInUse
		}
	}
	req.ApplyTo(user)

	if req.Role != nil && actor.Role.IsAdmin() {
		if !req.Role.Valid() {
			return nil, ErrInvalidRole
		}
		user.Role = *req.Role
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return dto.FromModelToUserResponse(user), nil
}

package services

import (
	"fmt"

	"mboaconnect/internal/models"
	"mboaconnect/internal/repositories"

	"golang.org/x/crypto/bcrypt"
)

// UserService handles profile and account management. Registration and
// credentials live in AuthService.
type UserService struct {
	repo repositories.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(repo repositories.UserRepository) *UserService {
	return &UserService{
		repo: repo,
	}
}

// GetAllUsers retrieves all users.
func (s *UserService) GetAllUsers() ([]models.User, error) {
	return s.repo.GetAll()
}

// GetUserByID retrieves a single user by ID.
func (s *UserService) GetUserByID(id string) (*models.User, error) {
	return s.repo.GetByID(id)
}

// UpdateProfileRequest carries the profile fields a user may change. Nil
// fields are left untouched.
type UpdateProfileRequest struct {
	FirstName   *string `json:"first_name"`
	LastName    *string `json:"last_name"`
	PhoneNumber *string `json:"phone_number"`
	Address     *string `json:"address"`
	City        *string `json:"city"`
	Country     *string `json:"country"`
	Password    *string `json:"password"`
}

// UpdateProfile applies the provided fields to the user. A new password is
// re-hashed before storage.
func (s *UserService) UpdateProfile(id string, req UpdateProfileRequest) (*models.User, error) {
	user, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.PhoneNumber != nil {
		user.PhoneNumber = *req.PhoneNumber
	}
	if req.Address != nil {
		user.Address = *req.Address
	}
	if req.City != nil {
		user.City = *req.City
	}
	if req.Country != nil {
		user.Country = *req.Country
	}
	if req.Password != nil {
		if len(*req.Password) < 6 {
			return nil, NewValidationError("password must be at least 6 characters")
		}
		hashed, hashErr := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if hashErr != nil {
			return nil, fmt.Errorf("failed to hash password: %w", hashErr)
		}
		user.Password = string(hashed)
	}

	if err := s.repo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update user %s: %w", id, err)
	}
	return user, nil
}

// SetAdmin grants or revokes administrator rights.
func (s *UserService) SetAdmin(id string, isAdmin bool) (*models.User, error) {
	user, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	user.IsAdmin = isAdmin
	if err := s.repo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update admin flag for user %s: %w", id, err)
	}
	return user, nil
}

// DeleteUser removes a user account. Their orders are kept for bookkeeping.
func (s *UserService) DeleteUser(id string) error {
	return s.repo.Delete(id)
}

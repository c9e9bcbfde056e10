package service

import (
	"errors"

	"github.com/shopims/shopims-backend/internal/model"
	"github.com/shopims/shopims-backend/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserService manages staff accounts for the admin console.
type UserService interface {
	CreateUser(req *model.User, password, actorID string) error
	UpdateUser(id uuid.UUID, req *model.User, actorID string) (*model.User, error)
	ListUsers() ([]model.UserResponse, error)
	DeactivateUser(id uuid.UUID, actorID string) error
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) CreateUser(req *model.User, password, actorID string) error {
	if err := validateStruct(req); err != nil {
		return err
	}
	if password == "" {
		return &ValidationError{Field: "User.Password", Tag: "required"}
	}

	if req.Role == "" {
		req.Role = model.RoleStaff
	}
	if err := req.SetPassword(password); err != nil {
		return err
	}
	req.IsActive = true
	req.CreatedBy = actorID
	req.UpdatedBy = actorID

	return s.userRepo.Create(req)
}

func (s *userService) UpdateUser(id uuid.UUID, req *model.User, actorID string) (*model.User, error) {
	existing, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	existing.FullName = req.FullName
	existing.Email = req.Email
	if req.Role != "" {
		existing.Role = req.Role
	}
	existing.IsActive = req.IsActive
	existing.UpdatedBy = actorID

	if err := validateStruct(existing); err != nil {
		return nil, err
	}
	if err := s.userRepo.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *userService) ListUsers() ([]model.UserResponse, error) {
	users, err := s.userRepo.FindAll()
	if err != nil {
		return nil, err
	}

	out := make([]model.UserResponse, len(users))
	for i := range users {
		out[i] = users[i].ToResponse()
	}
	return out, nil
}

func (s *userService) DeactivateUser(id uuid.UUID, actorID string) error {
	existing, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	existing.IsActive = false
	existing.UpdatedBy = actorID
	return s.userRepo.Update(existing)
}

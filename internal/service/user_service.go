package service

import (
	"errors"
	"fmt"

	"github.com/sr-oliveiraa/smartcaixa/internal/model"
	"github.com/sr-oliveiraa/smartcaixa/internal/repository"
	"github.com/sr-oliveiraa/smartcaixa/pkg/validator"

	"github.com/google/uuid"
)

var (
	ErrUsernameExists  = errors.New("nome de usuario ja cadastrado")
	ErrPasswordTooWeak = errors.New("senha deve ter pelo menos 6 caracteres")
)

type CreateUserRequest struct {
	Username    string `json:"usuario" validate:"required"`
	Password    string `json:"senha" validate:"required"`
	AccessLevel string `json:"nivel_acesso"`
	IsAdmin     bool   `json:"is_admin"`
}

// UserService handles the admin-only operator management screen
type UserService interface {
	CreateUser(req *CreateUserRequest, creatorID string) (*model.UserResponse, error)
	GetUsers() ([]model.UserResponse, error)
	DeleteUser(id uuid.UUID) error
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) CreateUser(req *CreateUserRequest, creatorID string) (*model.UserResponse, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("dados invalidos: campo '%s' falhou na regra '%s'", firstErr.Field, firstErr.Tag)
	}
	if len(req.Password) < 6 {
		return nil, ErrPasswordTooWeak
	}

	existing, _ := s.userRepo.FindByUsername(req.Username)
	if existing != nil {
		return nil, ErrUsernameExists
	}

	user := &model.User{
		Username:    req.Username,
		AccessLevel: req.AccessLevel,
		IsAdmin:     req.IsAdmin,
		IsActive:    true,
	}
	user.CreatedBy = creatorID
	user.UpdatedBy = creatorID

	if err := user.SetPassword(req.Password); err != nil {
		return nil, err
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	response := user.ToResponse()
	return &response, nil
}

func (s *userService) GetUsers() ([]model.UserResponse, error) {
	users, err := s.userRepo.FindAll()
	if err != nil {
		return nil, err
	}

	responses := make([]model.UserResponse, len(users))
	for i, user := range users {
		responses[i] = user.ToResponse()
	}
	return responses, nil
}

func (s *userService) DeleteUser(id uuid.UUID) error {
	if _, err := s.userRepo.FindByID(id); err != nil {
		return ErrUserNotFound
	}
	return s.userRepo.Delete(id)
}

package service

import (
	"errors"

	"github.com/sr-oliveiraa/smartcaixa/internal/model"
	"github.com/sr-oliveiraa/smartcaixa/internal/repository"
	"github.com/sr-oliveiraa/smartcaixa/pkg/jwt"

	"github.com/google/uuid"
)

var (
	ErrInvalidCredentials = errors.New("usuario ou senha invalidos")
	ErrUserNotFound       = errors.New("usuario nao encontrado")
	ErrUserInactive       = errors.New("usuario desativado")
)

type AuthService interface {
	Login(username, password string) (*LoginResponse, error)
	Logout(userID uuid.UUID) error
}

// LoginResponse bundles the token with the shift the login opened, so the
// POS screen knows its abertura without another round trip.
type LoginResponse struct {
	Token string             `json:"token"`
	User  model.UserResponse `json:"user"`
	Shift *model.Shift       `json:"shift"`
}

type authService struct {
	userRepo     repository.UserRepository
	shiftService ShiftService
}

func NewAuthService(userRepo repository.UserRepository, shiftService ShiftService) AuthService {
	return &authService{
		userRepo:     userRepo,
		shiftService: shiftService,
	}
}

// Login authenticates the operator and opens (or resumes) their shift
func (s *authService) Login(username, password string) (*LoginResponse, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, ErrUserInactive
	}

	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}

	shift, err := s.shiftService.EnsureOpen(user.ID)
	if err != nil {
		return nil, err
	}

	token, err := jwt.GenerateToken(user.ID, user.Username, user.AccessLevel, user.IsAdmin)
	if err != nil {
		return nil, errors.New("failed to generate token")
	}

	return &LoginResponse{
		Token: token,
		User:  user.ToResponse(),
		Shift: shift,
	}, nil
}

// Logout abandons any open shift; the token simply expires client-side
func (s *authService) Logout(userID uuid.UUID) error {
	return s.shiftService.Abandon(userID)
}

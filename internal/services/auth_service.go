package services

import (
	"context"
	"fmt"

	"github.com/Daud2712/E-Commerce-sub000/internal/auth"
	"github.com/Daud2712/E-Commerce-sub000/internal/domain"
	"github.com/Daud2712/E-Commerce-sub000/internal/repository"
)

type RegisterInput struct {
	Name               string
	Email              string
	Password           string
	Phone              string
	Role               domain.Role
	RegistrationNumber string
}

type AuthService struct {
	users  repository.UserRepository
	tokens *auth.TokenService
}

func NewAuthService(users repository.UserRepository, tokens *auth.TokenService) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// Register creates an account. Buyers are usable immediately; sellers
// and riders wait for admin approval. Admin accounts are provisioned
// out of band, never through this endpoint.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	switch in.Role {
	case domain.RoleBuyer, domain.RoleSeller, domain.RoleRider:
	default:
		return nil, fmt.Errorf("%w: role must be buyer, seller or rider", domain.ErrInvalidInput)
	}
	if in.Name == "" || in.Email == "" {
		return nil, fmt.Errorf("%w: name and email are required", domain.ErrInvalidInput)
	}
	if len(in.Password) < 8 {
		return nil, fmt.Errorf("%w: password must be at least 8 characters", domain.ErrInvalidInput)
	}

	existing, err := s.users.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailTaken
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	u := &domain.User{
		Name:               in.Name,
		Email:              in.Email,
		PasswordHash:       hash,
		Phone:              in.Phone,
		Role:               in.Role,
		Approved:           in.Role == domain.RoleBuyer,
		RegistrationNumber: in.RegistrationNumber,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}
	if u == nil || !auth.CheckPassword(u.PasswordHash, password) {
		return "", nil, fmt.Errorf("%w: invalid credentials", domain.ErrNotAuthenticated)
	}

	token, err := s.tokens.Issue(u)
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}

package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Daud2712/E-Commerce-sub000/internal/auth"
	"github.com/Daud2712/E-Commerce-sub000/internal/domain"
	"github.com/Daud2712/E-Commerce-sub000/internal/mocks"
)

func testTokens() *auth.TokenService {
	return auth.NewTokenService("test-secret", "test", time.Hour)
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name         string
		input        RegisterInput
		existing     *domain.User
		wantErr      error
		wantApproved bool
	}{
		{
			name:         "buyer is approved immediately",
			input:        RegisterInput{Name: "Amina", Email: "amina@example.com", Password: "s3cret-pass", Role: domain.RoleBuyer},
			wantApproved: true,
		},
		{
			name:  "seller waits for approval",
			input: RegisterInput{Name: "Bol", Email: "bol@example.com", Password: "s3cret-pass", Role: domain.RoleSeller},
		},
		{
			name:  "rider waits for approval",
			input: RegisterInput{Name: "Chep", Email: "chep@example.com", Password: "s3cret-pass", Role: domain.RoleRider},
		},
		{
			name:    "admin cannot self-register",
			input:   RegisterInput{Name: "Eve", Email: "eve@example.com", Password: "s3cret-pass", Role: domain.RoleAdmin},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name:    "short password is rejected",
			input:   RegisterInput{Name: "Amina", Email: "amina@example.com", Password: "short", Role: domain.RoleBuyer},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name:     "duplicate email is rejected",
			input:    RegisterInput{Name: "Amina", Email: "amina@example.com", Password: "s3cret-pass", Role: domain.RoleBuyer},
			existing: &domain.User{ID: 1, Email: "amina@example.com"},
			wantErr:  domain.ErrEmailTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(mocks.MockUserRepository)
			users.On("FindByEmail", mock.Anything, tt.input.Email).Return(tt.existing, nil).Maybe()
			users.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil).Maybe()
			svc := NewAuthService(users, testTokens())

			u, err := svc.Register(context.Background(), tt.input)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantApproved, u.Approved)
			assert.NotEqual(t, tt.input.Password, u.PasswordHash)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	hash, err := auth.HashPassword("s3cret-pass")
	require.NoError(t, err)
	stored := &domain.User{ID: 7, Email: "amina@example.com", PasswordHash: hash, Role: domain.RoleBuyer, Approved: true}

	t.Run("valid credentials yield a verifiable token", func(t *testing.T) {
		users := new(mocks.MockUserRepository)
		users.On("FindByEmail", mock.Anything, "amina@example.com").Return(stored, nil)
		tokens := testTokens()
		svc := NewAuthService(users, tokens)

		raw, u, err := svc.Login(context.Background(), "amina@example.com", "s3cret-pass")

		require.NoError(t, err)
		assert.Equal(t, uint64(7), u.ID)

		actor, err := tokens.Verify(raw)
		require.NoError(t, err)
		assert.Equal(t, domain.Actor{ID: 7, Role: domain.RoleBuyer, Approved: true}, actor)
	})

	t.Run("wrong password is rejected", func(t *testing.T) {
		users := new(mocks.MockUserRepository)
		users.On("FindByEmail", mock.Anything, "amina@example.com").Return(stored, nil)
		svc := NewAuthService(users, testTokens())

		_, _, err := svc.Login(context.Background(), "amina@example.com", "wrong-pass")

		assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
	})

	t.Run("unknown email is rejected the same way", func(t *testing.T) {
		users := new(mocks.MockUserRepository)
		users.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, nil)
		svc := NewAuthService(users, testTokens())

		_, _, err := svc.Login(context.Background(), "ghost@example.com", "s3cret-pass")

		assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
	})
}

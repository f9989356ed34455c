package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Daud2712/E-Commerce-sub000/internal/domain"
)

var ErrInvalidToken = errors.New("invalid token")

type Claims struct {
	Role     domain.Role `json:"role"`
	Approved bool        `json:"approved"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256 tokens carrying the actor's
// id, role and approval flag.
type TokenService struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

func NewTokenService(secret, issuer string, ttl time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), issuer: issuer, ttl: ttl}
}

func (s *TokenService) Issue(u *domain.User) (string, error) {
	now := time.Now()
	claims := Claims{
		Role:     u.Role,
		Approved: u.Approved,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(u.ID, 10),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *TokenService) Verify(raw string) (domain.Actor, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithIssuer(s.issuer), jwt.WithLeeway(30*time.Second))
	if err != nil || !token.Valid {
		return domain.Actor{}, ErrInvalidToken
	}

	uid, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return domain.Actor{}, ErrInvalidToken
	}
	return domain.Actor{ID: uid, Role: claims.Role, Approved: claims.Approved}, nil
}

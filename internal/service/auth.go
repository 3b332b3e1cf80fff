package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"tasks-api/internal/errs"
	"tasks-api/internal/models"
	"tasks-api/internal/repository"
	"tasks-api/pkg/logger"
)

// UserFinder looks accounts up by username.
type UserFinder interface {
	FindByUsername(ctx context.Context, username string) (models.User, error)
}

// Claims are the JWT claims issued at login.
type Claims struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// AuthService verifies credentials and issues and validates bearer tokens.
type AuthService struct {
	users  UserFinder
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewAuthService(users UserFinder, secret string, ttl time.Duration) *AuthService {
	return &AuthService{users: users, secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Login checks the password against the stored hash and returns a signed token.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if errors.Is(err, repository.ErrNotFound) {
		logger.Debug(ctx, "Login for unknown user", "username", username)
		return "", errs.Unauthorized("Invalid credentials")
	}
	if err != nil {
		return "", fmt.Errorf("login: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		logger.Debug(ctx, "Login password mismatch", "username", username)
		return "", errs.Unauthorized("Invalid credentials")
	}
	return s.IssueToken(models.AuthPayload{UserID: user.ID, Username: user.Username})
}

// IssueToken signs an HS256 token for p that expires after the configured TTL.
func (s *AuthService) IssueToken(p models.AuthPayload) (string, error) {
	now := s.now()
	claims := Claims{
		UserID:   p.UserID,
		Username: p.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// VerifyToken validates signature, algorithm and expiry and returns the identity.
func (s *AuthService) VerifyToken(token string) (models.AuthPayload, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid || claims.UserID == "" {
		return models.AuthPayload{}, errs.Unauthorized("Invalid or expired token")
	}
	return models.AuthPayload{UserID: claims.UserID, Username: claims.Username}, nil
}

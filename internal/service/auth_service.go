package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"carlog/internal/models"
	"carlog/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Sessions are cleared by logout, not by expiry, so the token TTL is long.
const tokenTTL = 30 * 24 * time.Hour

const minPasswordLen = 4

// ChangePasswordParams carries the three fields of the change-password form.
type ChangePasswordParams struct {
	CurrentPassword string
	NewPassword     string
	ConfirmPassword string
}

// AuthService handles user accounts and session tokens.
//
// Passwords are stored and compared as the user typed them, so the user
// table stays interchangeable with data migrated from earlier deployments
// that kept credentials in plain text. Hashing would orphan those rows.
type AuthService struct {
	users      repository.Users
	sessions   repository.Sessions
	signingKey []byte
}

func NewAuthService(users repository.Users, sessions repository.Sessions, signingKey string) *AuthService {
	return &AuthService{users: users, sessions: sessions, signingKey: []byte(signingKey)}
}

// Claims defines JWT claims. The registered ID (jti) doubles as the key of
// the persisted session row.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
}

// Register creates a new account and signs it in.
// Usernames are unique case-insensitively across all users.
func (s *AuthService) Register(ctx context.Context, name, username, password string) (string, *models.User, error) {
	username = strings.TrimSpace(username)

	existing, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return "", nil, err
	}
	if existing != nil {
		return "", nil, ErrDuplicateUsername
	}

	u := models.User{
		ID:       uuid.NewString(),
		Name:     name,
		Username: username,
		Password: password,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return "", nil, err
	}

	token, err := s.openSession(ctx, u.ID)
	if err != nil {
		return "", nil, err
	}
	return token, &u, nil
}

// Login matches the username case-insensitively and the password exactly.
// "User not found" and "wrong password" are deliberately indistinguishable.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *models.User, error) {
	u, err := s.users.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return "", nil, err
	}
	if u == nil || u.Password != password {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.openSession(ctx, u.ID)
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}

// ChangePassword validates the form guards in order: current password,
// confirmation match, minimum length.
func (s *AuthService) ChangePassword(ctx context.Context, userID string, p ChangePasswordParams) error {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if u == nil {
		return ErrInvalidToken
	}

	if p.CurrentPassword != u.Password {
		return ErrWrongCurrentPassword
	}
	if p.NewPassword != p.ConfirmPassword {
		return ErrPasswordMismatch
	}
	if utf8.RuneCountInString(p.NewPassword) < minPasswordLen {
		return ErrPasswordTooShort
	}

	return s.users.UpdatePassword(ctx, userID, p.NewPassword)
}

// Logout revokes the presented token by deleting its session row. Idempotent.
func (s *AuthService) Logout(ctx context.Context, accessToken string) error {
	claims, err := s.parseToken(accessToken)
	if err != nil {
		// An unparseable token has no session to clear.
		return nil
	}
	return s.sessions.Delete(ctx, claims.ID)
}

// Authenticate parses the token and checks the session row still exists.
func (s *AuthService) Authenticate(ctx context.Context, accessToken string) (string, error) {
	claims, err := s.parseToken(accessToken)
	if err != nil {
		return "", ErrInvalidToken
	}

	ok, err := s.sessions.Exists(ctx, claims.ID)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrInvalidToken
	}
	return claims.UserID, nil
}

func (s *AuthService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	return s.users.GetByID(ctx, userID)
}

// openSession issues a signed JWT and persists its session row.
func (s *AuthService) openSession(ctx context.Context, userID string) (string, error) {
	now := time.Now()
	tokenID := uuid.NewString()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenID,
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID: userID,
	})
	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	if err := s.sessions.Create(ctx, models.Session{TokenID: tokenID, UserID: userID}); err != nil {
		return "", err
	}
	return signed, nil
}

func (s *AuthService) parseToken(accessToken string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(accessToken, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Ensure HMAC signing is used
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.signingKey, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

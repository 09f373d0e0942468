package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/MrJamesThe3rd/gastrack/internal/apperror"
)

var (
	ErrNotFound      = errors.New("user not found")
	ErrDuplicateUser = errors.New("username already taken")
)

type User struct {
	ID           uuid.UUID
	Username     string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}

//go:generate mockgen -source=auth.go -destination=repository_mock.go -package=auth
type Repository interface {
	CreateUser(ctx context.Context, u *User) error
	GetUserByUsername(ctx context.Context, username string) (*User, error)
}

type Service struct {
	repo   Repository
	tokens *TokenManager
}

func NewService(repo Repository, tokens *TokenManager) *Service {
	return &Service{repo: repo, tokens: tokens}
}

type Session struct {
	Token     string
	ExpiresAt time.Time
	User      *User
}

// Login verifies credentials and issues a token. Unknown users and wrong
// passwords are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, username, password string) (*Session, error) {
	u, err := s.repo.GetUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, apperror.Unauthenticated("invalid credentials")
		}

		return nil, apperror.Wrap("login", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, apperror.Unauthenticated("invalid credentials")
	}

	token, expiresAt, err := s.tokens.Issue(Identity{UserID: u.ID, Role: u.Role})
	if err != nil {
		return nil, apperror.Wrap("issue token", err)
	}

	return &Session{Token: token, ExpiresAt: expiresAt, User: u}, nil
}

type CreateUserParams struct {
	Username string
	Password string
	Role     Role
}

func (s *Service) CreateUser(ctx context.Context, params CreateUserParams) (*User, error) {
	username := strings.TrimSpace(params.Username)
	if username == "" {
		return nil, apperror.Validation("username is required")
	}

	if len(params.Password) < 8 {
		return nil, apperror.Validation("password must be at least 8 characters")
	}

	if !params.Role.Valid() {
		return nil, apperror.Validation("role must be worker or admin (got %q)", params.Role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperror.Wrap("hash password", err)
	}

	u := &User{Username: username, PasswordHash: string(hash), Role: params.Role}
	if err := s.repo.CreateUser(ctx, u); err != nil {
		if errors.Is(err, ErrDuplicateUser) {
			return nil, apperror.ValidationIDs([]string{username}, "username %s is already taken", username)
		}

		return nil, apperror.Wrap("create user", err)
	}

	return u, nil
}

// EnsureAdmin creates the bootstrap admin account when it does not exist yet.
func (s *Service) EnsureAdmin(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return nil
	}

	_, err := s.repo.GetUserByUsername(ctx, username)
	if err == nil {
		return nil
	}

	if !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("looking up admin: %w", err)
	}

	if _, err := s.CreateUser(ctx, CreateUserParams{Username: username, Password: password, Role: RoleAdmin}); err != nil {
		return fmt.Errorf("creating admin: %w", err)
	}

	slog.Info("bootstrap admin created", "username", username)

	return nil
}

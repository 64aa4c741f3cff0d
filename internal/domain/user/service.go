package user

import (
	"context"
	"errors"
	"net/mail"
	"strconv"
	"strings"
	"time"

	mailpkg "github.com/crisprlt/HabitFlow-sub000/pkg/mail"
	"github.com/crisprlt/HabitFlow-sub000/pkg/security/auth"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidInput       = errors.New("invalid input")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
	ErrResetTokenInvalid  = errors.New("reset token is invalid or expired")
)

const resetTokenTTL = 1 * time.Hour

type Service interface {
	Register(ctx context.Context, input RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, input LoginInput) (*AuthResult, error)
	GetUser(ctx context.Context, id uint) (*User, error)
	UpdateProfile(ctx context.Context, id uint, input UpdateProfileInput) (*User, error)
	ChangePassword(ctx context.Context, input ChangePasswordInput) error
	RequestPasswordReset(ctx context.Context, email string) error
	ConfirmPasswordReset(ctx context.Context, token, newPassword string) error
	LoginWithGitHub(ctx context.Context, gh *auth.GitHubUser) (*AuthResult, error)
}

type service struct {
	repo   Repository
	jwt    *auth.JWTService
	mailer mailpkg.Mailer
	logger *zap.Logger
}

func NewService(repo Repository, jwt *auth.JWTService, mailer mailpkg.Mailer, logger *zap.Logger) Service {
	return &service{repo: repo, jwt: jwt, mailer: mailer, logger: logger}
}

func (s *service) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	email := normalizeEmail(input.Email)
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, ErrInvalidInput
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrInvalidInput
	}
	if len(input.Password) < 8 {
		return nil, ErrWeakPassword
	}

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &User{
		Email:        email,
		Name:         input.Name,
		PasswordHash: string(hash),
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	s.logger.Info("user registered", zap.Uint("user_id", u.ID))
	return s.issueToken(u)
}

func (s *service) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	u, err := s.repo.FindByEmail(ctx, normalizeEmail(input.Email))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if u.PasswordHash == "" {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return s.issueToken(u)
}

func (s *service) GetUser(ctx context.Context, id uint) (*User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) UpdateProfile(ctx context.Context, id uint, input UpdateProfileInput) (*User, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, ErrInvalidInput
		}
		u.Name = *input.Name
	}
	if input.Email != nil {
		email := normalizeEmail(*input.Email)
		if _, err := mail.ParseAddress(email); err != nil {
			return nil, ErrInvalidInput
		}
		if email != u.Email {
			if existing, err := s.repo.FindByEmail(ctx, email); err == nil && existing.ID != u.ID {
				return nil, ErrEmailTaken
			} else if err != nil && !errors.Is(err, ErrUserNotFound) {
				return nil, err
			}
			u.Email = email
		}
	}

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *service) ChangePassword(ctx context.Context, input ChangePasswordInput) error {
	u, err := s.repo.FindByID(ctx, input.UserID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(input.CurrentPassword)); err != nil {
		return ErrInvalidCredentials
	}
	if len(input.NewPassword) < 8 {
		return ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return s.repo.Update(ctx, u)
}

// RequestPasswordReset issues a single-use token and mails it. An unknown
// email succeeds silently so the endpoint cannot be used to probe accounts.
func (s *service) RequestPasswordReset(ctx context.Context, email string) error {
	u, err := s.repo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil
		}
		return err
	}

	reset := &PasswordReset{
		UserID:    u.ID,
		Token:     uuid.NewString(),
		ExpiresAt: time.Now().UTC().Add(resetTokenTTL),
	}
	if err := s.repo.CreatePasswordReset(ctx, reset); err != nil {
		return err
	}

	if err := s.mailer.SendPasswordReset(ctx, u.Email, reset.Token); err != nil {
		s.logger.Error("failed to send password reset mail",
			zap.Uint("user_id", u.ID), zap.Error(err))
		return err
	}
	return nil
}

func (s *service) ConfirmPasswordReset(ctx context.Context, token, newPassword string) error {
	if len(newPassword) < 8 {
		return ErrWeakPassword
	}

	reset, err := s.repo.FindPasswordReset(ctx, token)
	if err != nil {
		if errors.Is(err, ErrTokenNotFound) {
			return ErrResetTokenInvalid
		}
		return err
	}
	if reset.UsedAt != nil || time.Now().UTC().After(reset.ExpiresAt) {
		return ErrResetTokenInvalid
	}

	u, err := s.repo.FindByID(ctx, reset.UserID)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	if err := s.repo.Update(ctx, u); err != nil {
		return err
	}
	return s.repo.MarkPasswordResetUsed(ctx, reset.ID)
}

// LoginWithGitHub finds or creates the account matching the provider
// identity. An existing account with the same email is linked rather than
// duplicated.
func (s *service) LoginWithGitHub(ctx context.Context, gh *auth.GitHubUser) (*AuthResult, error) {
	providerID := strconv.FormatInt(gh.ID, 10)
	u, err := s.repo.FindByProvider(ctx, "github", providerID)
	if err == nil {
		return s.issueToken(u)
	}
	if !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	email := normalizeEmail(gh.Email)
	u, err = s.repo.FindByEmail(ctx, email)
	if err == nil {
		u.Provider = "github"
		u.ProviderID = providerID
		if err := s.repo.Update(ctx, u); err != nil {
			return nil, err
		}
		return s.issueToken(u)
	}
	if !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	name := gh.Name
	if name == "" {
		name = gh.Login
	}
	u = &User{
		Email:      email,
		Name:       name,
		Provider:   "github",
		ProviderID: providerID,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	s.logger.Info("user created via oauth",
		zap.Uint("user_id", u.ID), zap.String("provider", "github"))
	return s.issueToken(u)
}

func (s *service) issueToken(u *User) (*AuthResult, error) {
	token, err := s.jwt.GenerateToken(u.ID, u.Email)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: u, Token: token}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

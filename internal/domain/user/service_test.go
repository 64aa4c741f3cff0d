package user

import (
	"context"
	"testing"
	"time"

	"github.com/crisprlt/HabitFlow-sub000/pkg/config"
	"github.com/crisprlt/HabitFlow-sub000/pkg/security/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type mockRepository struct {
	users  map[uint]*User
	resets map[string]*PasswordReset
	nextID uint
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		users:  make(map[uint]*User),
		resets: make(map[string]*PasswordReset),
	}
}

func (m *mockRepository) Create(ctx context.Context, user *User) error {
	m.nextID++
	user.ID = m.nextID
	m.users[user.ID] = user
	return nil
}

func (m *mockRepository) FindByID(ctx context.Context, id uint) (*User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (m *mockRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, ErrUserNotFound
}

func (m *mockRepository) FindByProvider(ctx context.Context, provider, providerID string) (*User, error) {
	for _, u := range m.users {
		if u.Provider == provider && u.ProviderID == providerID {
			return u, nil
		}
	}
	return nil, ErrUserNotFound
}

func (m *mockRepository) Update(ctx context.Context, user *User) error {
	m.users[user.ID] = user
	return nil
}

func (m *mockRepository) CreatePasswordReset(ctx context.Context, reset *PasswordReset) error {
	m.nextID++
	reset.ID = m.nextID
	m.resets[reset.Token] = reset
	return nil
}

func (m *mockRepository) FindPasswordReset(ctx context.Context, token string) (*PasswordReset, error) {
	reset, ok := m.resets[token]
	if !ok {
		return nil, ErrTokenNotFound
	}
	return reset, nil
}

func (m *mockRepository) MarkPasswordResetUsed(ctx context.Context, id uint) error {
	now := time.Now().UTC()
	for _, reset := range m.resets {
		if reset.ID == id {
			reset.UsedAt = &now
		}
	}
	return nil
}

type mockMailer struct {
	sent []string // reset tokens, in send order
}

func (m *mockMailer) SendPasswordReset(ctx context.Context, to, token string) error {
	m.sent = append(m.sent, token)
	return nil
}

func newTestService(repo *mockRepository, mailer *mockMailer) Service {
	cfg := &config.Config{}
	cfg.Auth.JWTSecret = "test-secret"
	cfg.Auth.JWTExpiryHours = 1
	return NewService(repo, auth.NewJWTService(cfg), mailer, zap.NewNop())
}

func TestRegisterAndLogin(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo, &mockMailer{})
	ctx := context.Background()

	result, err := svc.Register(ctx, RegisterInput{
		Email:    "Ana@Example.com",
		Name:     "Ana",
		Password: "correcthorse",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, "ana@example.com", result.User.Email)

	login, err := svc.Login(ctx, LoginInput{Email: "ana@example.com", Password: "correcthorse"})
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, login.User.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo, &mockMailer{})
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Email: "ana@example.com", Name: "Ana", Password: "correcthorse"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterInput{Email: "ANA@example.com", Name: "Ana Two", Password: "correcthorse"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegisterValidation(t *testing.T) {
	svc := newTestService(newMockRepository(), &mockMailer{})
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Email: "not-an-email", Name: "X", Password: "correcthorse"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Register(ctx, RegisterInput{Email: "a@b.com", Name: "X", Password: "short"})
	assert.ErrorIs(t, err, ErrWeakPassword)
}

func TestLoginWrongPassword(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo, &mockMailer{})
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Email: "ana@example.com", Name: "Ana", Password: "correcthorse"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, LoginInput{Email: "ana@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, LoginInput{Email: "nobody@example.com", Password: "whatever"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestChangePassword(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo, &mockMailer{})
	ctx := context.Background()

	result, err := svc.Register(ctx, RegisterInput{Email: "ana@example.com", Name: "Ana", Password: "correcthorse"})
	require.NoError(t, err)

	err = svc.ChangePassword(ctx, ChangePasswordInput{
		UserID:          result.User.ID,
		CurrentPassword: "wrong",
		NewPassword:     "newpassword",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	err = svc.ChangePassword(ctx, ChangePasswordInput{
		UserID:          result.User.ID,
		CurrentPassword: "correcthorse",
		NewPassword:     "newpassword",
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, LoginInput{Email: "ana@example.com", Password: "newpassword"})
	assert.NoError(t, err)
}

func TestPasswordResetFlow(t *testing.T) {
	repo := newMockRepository()
	mailer := &mockMailer{}
	svc := newTestService(repo, mailer)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Email: "ana@example.com", Name: "Ana", Password: "correcthorse"})
	require.NoError(t, err)

	require.NoError(t, svc.RequestPasswordReset(ctx, "ana@example.com"))
	require.Len(t, mailer.sent, 1)
	token := mailer.sent[0]

	require.NoError(t, svc.ConfirmPasswordReset(ctx, token, "brandnewpass"))

	_, err = svc.Login(ctx, LoginInput{Email: "ana@example.com", Password: "brandnewpass"})
	assert.NoError(t, err)

	// Token is single-use.
	err = svc.ConfirmPasswordReset(ctx, token, "anotherpass1")
	assert.ErrorIs(t, err, ErrResetTokenInvalid)
}

func TestPasswordResetUnknownEmailIsSilent(t *testing.T) {
	mailer := &mockMailer{}
	svc := newTestService(newMockRepository(), mailer)

	assert.NoError(t, svc.RequestPasswordReset(context.Background(), "ghost@example.com"))
	assert.Empty(t, mailer.sent)
}

func TestPasswordResetExpiredToken(t *testing.T) {
	repo := newMockRepository()
	mailer := &mockMailer{}
	svc := newTestService(repo, mailer)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Email: "ana@example.com", Name: "Ana", Password: "correcthorse"})
	require.NoError(t, err)
	require.NoError(t, svc.RequestPasswordReset(ctx, "ana@example.com"))

	token := mailer.sent[0]
	repo.resets[token].ExpiresAt = time.Now().UTC().Add(-time.Minute)

	err = svc.ConfirmPasswordReset(ctx, token, "brandnewpass")
	assert.ErrorIs(t, err, ErrResetTokenInvalid)
}

func TestLoginWithGitHub(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo, &mockMailer{})
	ctx := context.Background()

	gh := &auth.GitHubUser{ID: 42, Login: "ana-dev", Name: "Ana", Email: "ana@example.com"}

	// First login creates the account.
	first, err := svc.LoginWithGitHub(ctx, gh)
	require.NoError(t, err)
	assert.Equal(t, "github", first.User.Provider)
	assert.Equal(t, "42", first.User.ProviderID)

	// Second login reuses it.
	second, err := svc.LoginWithGitHub(ctx, gh)
	require.NoError(t, err)
	assert.Equal(t, first.User.ID, second.User.ID)
	assert.Len(t, repo.users, 1)
}

func TestLoginWithGitHubLinksExistingEmail(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo, &mockMailer{})
	ctx := context.Background()

	registered, err := svc.Register(ctx, RegisterInput{Email: "ana@example.com", Name: "Ana", Password: "correcthorse"})
	require.NoError(t, err)

	result, err := svc.LoginWithGitHub(ctx, &auth.GitHubUser{ID: 42, Login: "ana-dev", Email: "ana@example.com"})
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, result.User.ID)
	assert.Equal(t, "github", result.User.Provider)

	// The original password still works after linking.
	hash := repo.users[registered.User.ID].PasswordHash
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("correcthorse")))
}

package auth

import (
	"context"
	"testing"
	"time"

	"github.com/emberlink/emberlink-backend/internal/domain"
	"github.com/emberlink/emberlink-backend/internal/repository/repositorytest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newAuthFixture() (*AuthUseCase, *repositorytest.UserRepo) {
	users := repositorytest.NewUserRepo()
	return NewAuthUseCase(users, testSecret, 60), users
}

func registerReq(email string) *RegisterRequest {
	return &RegisterRequest{
		Email:     email,
		Password:  "hunter2hunter2",
		Name:      "alice",
		BirthDate: time.Now().AddDate(-24, 0, 0),
		Gender:    "female",
	}
}

func TestRegisterAndLogin(t *testing.T) {
	uc, _ := newAuthFixture()

	result, err := uc.Register(context.Background(), registerReq("alice@example.com"))
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, "alice@example.com", result.User.Email)
	// The hash never leaves the server in a serialized form, but it must
	// not equal the raw password either.
	assert.NotEqual(t, "hunter2hunter2", result.User.PasswordHash)

	login, err := uc.Login(context.Background(), &LoginRequest{
		Email:    "alice@example.com",
		Password: "hunter2hunter2",
	})
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, login.User.ID)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	uc, _ := newAuthFixture()

	_, err := uc.Register(context.Background(), registerReq("alice@example.com"))
	require.NoError(t, err)

	_, err = uc.Register(context.Background(), registerReq("alice@example.com"))
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestLogin_WrongPassword(t *testing.T) {
	uc, _ := newAuthFixture()

	_, err := uc.Register(context.Background(), registerReq("alice@example.com"))
	require.NoError(t, err)

	_, err = uc.Login(context.Background(), &LoginRequest{
		Email:    "alice@example.com",
		Password: "not-the-password",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	uc, _ := newAuthFixture()

	_, err := uc.Login(context.Background(), &LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestVerifyToken_RoundTrip(t *testing.T) {
	uc, _ := newAuthFixture()

	result, err := uc.Register(context.Background(), registerReq("alice@example.com"))
	require.NoError(t, err)

	userID, err := uc.VerifyToken(result.Token)
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, userID)
}

func TestVerifyToken_Garbage(t *testing.T) {
	uc, _ := newAuthFixture()

	_, err := uc.VerifyToken("not.a.token")
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestVerifyToken_WrongSecret(t *testing.T) {
	uc, users := newAuthFixture()

	result, err := uc.Register(context.Background(), registerReq("alice@example.com"))
	require.NoError(t, err)

	other := NewAuthUseCase(users, "ffffffffffffffffffffffffffffffff", 60)
	_, err = other.VerifyToken(result.Token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

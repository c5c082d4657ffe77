package admin

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"activehub/internal/activity"
	"activehub/internal/auth"
	"activehub/internal/logger"
)

const testSecret = "test-secret"

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) FindByEmail(ctx context.Context, email string) (*Admin, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Admin), args.Error(1)
}

func (m *MockRepository) FindByID(ctx context.Context, id int) (*Admin, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Admin), args.Error(1)
}

func (m *MockRepository) UpdatePassword(ctx context.Context, id int, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)
	return args.Error(0)
}

func (m *MockRepository) UpdateProfile(ctx context.Context, id int, req UpdateProfileRequest) (*Admin, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Admin), args.Error(1)
}

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendPasswordReset(ctx context.Context, email, name, resetLink string) error {
	args := m.Called(ctx, email, name, resetLink)
	return args.Error(0)
}

type nopRecorder struct{}

func (nopRecorder) Record(ctx context.Context, entry activity.Entry) {}

func testAdmin(t *testing.T, password string) *Admin {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	return &Admin{
		ID:           1,
		Username:     "owner1",
		Email:        "owner@example.com",
		GymName:      "Iron Temple",
		Role:         auth.RoleOwner,
		PasswordHash: hash,
	}
}

func TestSignIn(t *testing.T) {
	t.Run("Successful sign in", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, nopRecorder{}, new(MockMailer), testSecret, "http://localhost:5173")

		mockRepo.On("FindByEmail", mock.Anything, "owner@example.com").
			Return(testAdmin(t, "correct-horse"), nil)

		resp, err := svc.SignIn(context.Background(), SignInRequest{
			Email:    "owner@example.com",
			Password: "correct-horse",
		}, ClientMeta{IPAddress: "10.0.0.1"})

		require.NoError(t, err)
		assert.NotEmpty(t, resp.Token)
		assert.NotEmpty(t, resp.RefreshToken)
		assert.Equal(t, "owner1", resp.User.Username)

		claims, err := auth.ValidateToken(resp.Token, testSecret)
		require.NoError(t, err)
		assert.Equal(t, auth.RoleOwner, claims.Role)
	})

	t.Run("Unknown email", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, nopRecorder{}, new(MockMailer), testSecret, "http://localhost:5173")

		mockRepo.On("FindByEmail", mock.Anything, "nobody@example.com").
			Return(nil, errors.New("sql: no rows in result set"))

		_, err := svc.SignIn(context.Background(), SignInRequest{
			Email:    "nobody@example.com",
			Password: "whatever",
		}, ClientMeta{})

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("Wrong password", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, nopRecorder{}, new(MockMailer), testSecret, "http://localhost:5173")

		mockRepo.On("FindByEmail", mock.Anything, "owner@example.com").
			Return(testAdmin(t, "correct-horse"), nil)

		_, err := svc.SignIn(context.Background(), SignInRequest{
			Email:    "owner@example.com",
			Password: "wrong",
		}, ClientMeta{})

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestRefresh(t *testing.T) {
	t.Run("Valid refresh token mints a new access token", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, nopRecorder{}, new(MockMailer), testSecret, "http://localhost:5173")

		_, refreshToken, err := auth.GenerateTokens(1, "owner@example.com", auth.RoleOwner, testSecret, testSecret)
		require.NoError(t, err)

		mockRepo.On("FindByID", mock.Anything, 1).Return(testAdmin(t, "pw"), nil)

		resp, err := svc.Refresh(context.Background(), refreshToken)
		require.NoError(t, err)

		claims, err := auth.ValidateToken(resp.Token, testSecret)
		require.NoError(t, err)
		assert.Equal(t, "access", claims.TokenType)
		assert.Equal(t, auth.RoleOwner, claims.Role)
	})

	t.Run("Access token cannot be used as refresh token", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, nopRecorder{}, new(MockMailer), testSecret, "http://localhost:5173")

		accessToken, _, err := auth.GenerateTokens(1, "owner@example.com", auth.RoleOwner, testSecret, testSecret)
		require.NoError(t, err)

		_, err = svc.Refresh(context.Background(), accessToken)
		assert.ErrorIs(t, err, ErrInvalidRefreshToken)
	})

	t.Run("Member refresh token rejected", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, nopRecorder{}, new(MockMailer), testSecret, "http://localhost:5173")

		_, refreshToken, err := auth.GenerateTokens(1, "member@example.com", auth.RoleMember, testSecret, testSecret)
		require.NoError(t, err)

		_, err = svc.Refresh(context.Background(), refreshToken)
		assert.ErrorIs(t, err, ErrInvalidRefreshToken)
		mockRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("Deleted account rejected", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, nopRecorder{}, new(MockMailer), testSecret, "http://localhost:5173")

		_, refreshToken, err := auth.GenerateTokens(9, "gone@example.com", auth.RoleAdmin, testSecret, testSecret)
		require.NoError(t, err)

		mockRepo.On("FindByID", mock.Anything, 9).Return(nil, errors.New("sql: no rows in result set"))

		_, err = svc.Refresh(context.Background(), refreshToken)
		assert.ErrorIs(t, err, ErrInvalidRefreshToken)
	})
}

func TestForgotPassword(t *testing.T) {
	t.Run("Known email queues reset link", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockMailer := new(MockMailer)
		svc := NewService(mockRepo, nopRecorder{}, mockMailer, testSecret, "http://localhost:5173")

		mockRepo.On("FindByEmail", mock.Anything, "owner@example.com").
			Return(testAdmin(t, "pw"), nil)
		mockMailer.On("SendPasswordReset", mock.Anything, "owner@example.com", "owner1",
			mock.MatchedBy(func(link string) bool {
				return strings.HasPrefix(link, "http://localhost:5173/reset-password/1/")
			})).Return(nil)

		err := svc.ForgotPassword(context.Background(), "owner@example.com")
		assert.NoError(t, err)
		mockMailer.AssertExpectations(t)
	})

	t.Run("Unknown email still succeeds and sends nothing", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockMailer := new(MockMailer)
		svc := NewService(mockRepo, nopRecorder{}, mockMailer, testSecret, "http://localhost:5173")

		mockRepo.On("FindByEmail", mock.Anything, "nobody@example.com").
			Return(nil, errors.New("sql: no rows in result set"))

		err := svc.ForgotPassword(context.Background(), "nobody@example.com")
		assert.NoError(t, err)
		mockMailer.AssertNotCalled(t, "SendPasswordReset", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestResetPassword(t *testing.T) {
	t.Run("Mismatched passwords rejected before anything else", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, nopRecorder{}, new(MockMailer), testSecret, "http://localhost:5173")

		err := svc.ResetPassword(context.Background(), 1, "irrelevant", ResetPasswordRequest{
			NewPassword:     "newpass1",
			ConfirmPassword: "newpass2",
		})

		assert.ErrorIs(t, err, ErrPasswordMismatch)
		mockRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
		mockRepo.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Valid token updates password", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, nopRecorder{}, new(MockMailer), testSecret, "http://localhost:5173")

		token, err := auth.GenerateResetToken(1, "owner@example.com", auth.RoleOwner, testSecret)
		require.NoError(t, err)

		mockRepo.On("FindByID", mock.Anything, 1).Return(testAdmin(t, "old"), nil)
		mockRepo.On("UpdatePassword", mock.Anything, 1, mock.MatchedBy(func(hash string) bool {
			return auth.CheckPassword(hash, "newpass123")
		})).Return(nil)

		err = svc.ResetPassword(context.Background(), 1, token, ResetPasswordRequest{
			NewPassword:     "newpass123",
			ConfirmPassword: "newpass123",
		})

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Token for different admin rejected", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, nopRecorder{}, new(MockMailer), testSecret, "http://localhost:5173")

		token, err := auth.GenerateResetToken(2, "other@example.com", auth.RoleAdmin, testSecret)
		require.NoError(t, err)

		err = svc.ResetPassword(context.Background(), 1, token, ResetPasswordRequest{
			NewPassword:     "newpass123",
			ConfirmPassword: "newpass123",
		})

		assert.ErrorIs(t, err, ErrInvalidResetToken)
	})

	t.Run("Member token with matching id cannot reset an admin", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, nopRecorder{}, new(MockMailer), testSecret, "http://localhost:5173")

		// Member id 1 collides with admin id 1; the role on the token
		// has to decide which table it unlocks.
		token, err := auth.GenerateResetToken(1, "member@example.com", auth.RoleMember, testSecret)
		require.NoError(t, err)

		err = svc.ResetPassword(context.Background(), 1, token, ResetPasswordRequest{
			NewPassword:     "newpass123",
			ConfirmPassword: "newpass123",
		})

		assert.ErrorIs(t, err, ErrInvalidResetToken)
		mockRepo.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Access token rejected as reset token", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, nopRecorder{}, new(MockMailer), testSecret, "http://localhost:5173")

		token, err := auth.GenerateAccessToken(1, "owner@example.com", auth.RoleOwner, testSecret)
		require.NoError(t, err)

		err = svc.ResetPassword(context.Background(), 1, token, ResetPasswordRequest{
			NewPassword:     "newpass123",
			ConfirmPassword: "newpass123",
		})

		assert.ErrorIs(t, err, ErrInvalidResetToken)
	})
}

func TestGetProfile(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, nopRecorder{}, new(MockMailer), testSecret, "http://localhost:5173")

		mockRepo.On("FindByID", mock.Anything, 1).Return(testAdmin(t, "pw"), nil)

		admin, err := svc.GetProfile(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, "Iron Temple", admin.GymName)
	})

	t.Run("Not found", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, nopRecorder{}, new(MockMailer), testSecret, "http://localhost:5173")

		mockRepo.On("FindByID", mock.Anything, 99).Return(nil, errors.New("sql: no rows in result set"))

		_, err := svc.GetProfile(context.Background(), 99)
		assert.ErrorIs(t, err, ErrAdminNotFound)
	})
}

func TestUpdateProfile(t *testing.T) {
	mockRepo := new(MockRepository)
	svc := NewService(mockRepo, nopRecorder{}, new(MockMailer), testSecret, "http://localhost:5173")

	req := UpdateProfileRequest{Username: "owner1", Email: "owner@example.com", GymName: "Iron Temple II"}
	updated := testAdmin(t, "pw")
	updated.GymName = "Iron Temple II"

	mockRepo.On("UpdateProfile", mock.Anything, 1, req).Return(updated, nil)

	admin, err := svc.UpdateProfile(context.Background(), 1, req)
	require.NoError(t, err)
	assert.Equal(t, "Iron Temple II", admin.GymName)
	mockRepo.AssertExpectations(t)
}

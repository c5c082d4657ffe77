package admin

import (
	"context"
	"errors"
	"fmt"

	"activehub/internal/activity"
	"activehub/internal/auth"
	"activehub/internal/logger"
	"activehub/internal/metrics"
)

var (
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrAdminNotFound       = errors.New("admin not found")
	ErrPasswordMismatch    = errors.New("passwords do not match")
	ErrInvalidResetToken   = errors.New("invalid or expired reset token")
	ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")
)

// ResetMailer is the slice of the email service the auth flows need.
type ResetMailer interface {
	SendPasswordReset(ctx context.Context, email, name, resetLink string) error
}

// Recorder is the slice of the activity service this package writes to.
type Recorder interface {
	Record(ctx context.Context, entry activity.Entry)
}

type Service interface {
	SignIn(ctx context.Context, req SignInRequest, meta ClientMeta) (*SignInResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*RefreshResponse, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, id int, token string, req ResetPasswordRequest) error
	GetProfile(ctx context.Context, id int) (*Admin, error)
	UpdateProfile(ctx context.Context, id int, req UpdateProfileRequest) (*Admin, error)
}

type service struct {
	repo        Repository
	activities  Recorder
	mailer      ResetMailer
	jwtSecret   string
	frontendURL string
}

func NewService(repo Repository, activities Recorder, mailer ResetMailer, jwtSecret, frontendURL string) Service {
	return &service{
		repo:        repo,
		activities:  activities,
		mailer:      mailer,
		jwtSecret:   jwtSecret,
		frontendURL: frontendURL,
	}
}

func (s *service) SignIn(ctx context.Context, req SignInRequest, meta ClientMeta) (*SignInResponse, error) {
	admin, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		metrics.RecordLogin(auth.RoleAdmin, "failure")
		return nil, ErrInvalidCredentials
	}

	if !auth.CheckPassword(admin.PasswordHash, req.Password) {
		metrics.RecordLogin(auth.RoleAdmin, "failure")
		return nil, ErrInvalidCredentials
	}

	accessToken, refreshToken, err := auth.GenerateTokens(
		admin.ID,
		admin.Email,
		admin.Role,
		s.jwtSecret,
		s.jwtSecret,
	)
	if err != nil {
		return nil, err
	}

	metrics.RecordLogin(admin.Role, "success")
	s.activities.Record(ctx, activity.Entry{
		AdminID:    admin.ID,
		Action:     "login",
		IPAddress:  meta.IPAddress,
		DeviceInfo: meta.DeviceInfo,
	})

	return &SignInResponse{
		Token:        accessToken,
		RefreshToken: refreshToken,
		User:         *admin,
	}, nil
}

// Refresh mints a new access token from a still-valid refresh token. The
// account is re-checked so tokens for deleted admins stop working within
// one access-token lifetime.
func (s *service) Refresh(ctx context.Context, refreshToken string) (*RefreshResponse, error) {
	accessToken, claims, err := auth.RefreshAccessToken(refreshToken, s.jwtSecret, s.jwtSecret)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}

	if claims.Role != auth.RoleOwner && claims.Role != auth.RoleAdmin {
		return nil, ErrInvalidRefreshToken
	}

	if _, err := s.repo.FindByID(ctx, claims.UserID); err != nil {
		return nil, ErrInvalidRefreshToken
	}

	return &RefreshResponse{Token: accessToken}, nil
}

// ForgotPassword always succeeds from the caller's point of view so the
// endpoint does not reveal which emails have accounts.
func (s *service) ForgotPassword(ctx context.Context, email string) error {
	admin, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		logger.Debug("Forgot-password for unknown email", "email", email)
		return nil
	}

	token, err := auth.GenerateResetToken(admin.ID, admin.Email, admin.Role, s.jwtSecret)
	if err != nil {
		return err
	}

	resetLink := fmt.Sprintf("%s/reset-password/%d/%s", s.frontendURL, admin.ID, token)
	if err := s.mailer.SendPasswordReset(ctx, admin.Email, admin.Username, resetLink); err != nil {
		return err
	}

	s.activities.Record(ctx, activity.Entry{
		AdminID: admin.ID,
		Action:  "forgot_password",
	})

	return nil
}

func (s *service) ResetPassword(ctx context.Context, id int, token string, req ResetPasswordRequest) error {
	// Mismatch is rejected before the token or the account is touched.
	if req.NewPassword != req.ConfirmPassword {
		return ErrPasswordMismatch
	}

	claims, err := auth.ValidateResetToken(token, s.jwtSecret, id)
	if err != nil {
		return ErrInvalidResetToken
	}

	// Member and trainer reset tokens carry ids from other tables; only
	// tokens issued for an admin account may touch the admins table.
	if claims.Role != auth.RoleOwner && claims.Role != auth.RoleAdmin {
		return ErrInvalidResetToken
	}

	admin, err := s.repo.FindByID(ctx, claims.UserID)
	if err != nil {
		return ErrAdminNotFound
	}

	passwordHash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}

	if err := s.repo.UpdatePassword(ctx, admin.ID, passwordHash); err != nil {
		return err
	}

	metrics.RecordPasswordReset(admin.Role)
	s.activities.Record(ctx, activity.Entry{
		AdminID: admin.ID,
		Action:  "password_reset",
	})

	return nil
}

func (s *service) GetProfile(ctx context.Context, id int) (*Admin, error) {
	admin, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrAdminNotFound
	}
	return admin, nil
}

// UpdateProfile is last-write-wins; the client refetches after saving.
func (s *service) UpdateProfile(ctx context.Context, id int, req UpdateProfileRequest) (*Admin, error) {
	admin, err := s.repo.UpdateProfile(ctx, id, req)
	if err != nil {
		return nil, err
	}

	s.activities.Record(ctx, activity.Entry{
		AdminID: admin.ID,
		Action:  "profile_update",
	})

	return admin, nil
}

package member

import (
	"context"
	"errors"
	"fmt"

	"activehub/internal/auth"
	"activehub/internal/metrics"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrInvalidSetupToken  = errors.New("invalid or expired setup token")
	ErrPasswordNotSet     = errors.New("password not set")
	ErrEmailTaken         = errors.New("email already registered")
)

// InviteMailer is the slice of the email service the invite flow needs.
type InviteMailer interface {
	SendMemberInvite(ctx context.Context, email, name, gymName, setPasswordLink string) error
}

type Service interface {
	Invite(ctx context.Context, req InviteRequest) (*Member, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	SetPassword(ctx context.Context, id int, token string, req SetPasswordRequest) error
}

type service struct {
	repo        Repository
	mailer      InviteMailer
	jwtSecret   string
	frontendURL string
}

func NewService(repo Repository, mailer InviteMailer, jwtSecret, frontendURL string) Service {
	return &service{
		repo:        repo,
		mailer:      mailer,
		jwtSecret:   jwtSecret,
		frontendURL: frontendURL,
	}
}

// Invite creates the member without a password and emails a set-password
// link. The account cannot log in until the link is used.
func (s *service) Invite(ctx context.Context, req InviteRequest) (*Member, error) {
	membershipType := req.MembershipType
	if membershipType == "" {
		membershipType = "basic"
	}

	m, err := s.repo.Create(ctx, &Member{
		GymID:            req.GymID,
		TrainerID:        req.TrainerID,
		Name:             req.Name,
		Email:            req.Email,
		Phone:            req.Phone,
		MembershipType:   membershipType,
		MembershipStatus: StatusActive,
	})
	if err != nil {
		return nil, err
	}

	token, err := auth.GenerateResetToken(m.ID, m.Email, auth.RoleMember, s.jwtSecret)
	if err != nil {
		return nil, err
	}

	gymName, err := s.repo.GymName(ctx, m.GymID)
	if err != nil {
		return nil, err
	}

	setPasswordLink := fmt.Sprintf("%s/set-password/%d/%s", s.frontendURL, m.ID, token)
	if err := s.mailer.SendMemberInvite(ctx, m.Email, m.Name, gymName, setPasswordLink); err != nil {
		return nil, err
	}

	return m, nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	m, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		metrics.RecordLogin(auth.RoleMember, "failure")
		return nil, ErrInvalidCredentials
	}

	// An invited member who never set a password cannot log in yet.
	if m.PasswordHash == nil {
		metrics.RecordLogin(auth.RoleMember, "failure")
		return nil, ErrPasswordNotSet
	}

	if !auth.CheckPassword(*m.PasswordHash, req.Password) {
		metrics.RecordLogin(auth.RoleMember, "failure")
		return nil, ErrInvalidCredentials
	}

	token, err := auth.GenerateAccessToken(m.ID, m.Email, auth.RoleMember, s.jwtSecret)
	if err != nil {
		return nil, err
	}

	metrics.RecordLogin(auth.RoleMember, "success")

	return &LoginResponse{
		Token: token,
		User:  *m,
	}, nil
}

// SetPassword handles the first-time setup link from the invite email.
func (s *service) SetPassword(ctx context.Context, id int, token string, req SetPasswordRequest) error {
	if req.Password != req.ConfirmPassword {
		return ErrPasswordMismatch
	}

	claims, err := auth.ValidateResetToken(token, s.jwtSecret, id)
	if err != nil {
		return ErrInvalidSetupToken
	}
	if claims.Role != auth.RoleMember {
		return ErrInvalidSetupToken
	}

	if _, err := s.repo.FindByID(ctx, claims.UserID); err != nil {
		return ErrInvalidSetupToken
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return err
	}

	if err := s.repo.UpdatePassword(ctx, claims.UserID, passwordHash); err != nil {
		return err
	}

	metrics.RecordPasswordReset(auth.RoleMember)
	return nil
}

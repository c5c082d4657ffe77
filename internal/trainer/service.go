package trainer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"activehub/internal/auth"
	"activehub/internal/listing"
	"activehub/internal/member"
	"activehub/internal/metrics"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")
	ErrMemberNotFound     = errors.New("member not found")
	ErrAlreadyMarked      = errors.New("attendance already marked today")
	ErrEmailTaken         = errors.New("email already registered")
)

// InviteMailer is the slice of the email service the invite flow needs.
type InviteMailer interface {
	SendTrainerInvite(ctx context.Context, email, name, gymName, setPasswordLink string) error
}

var MemberListOptions = listing.Options{
	DefaultSortBy:  "name",
	DefaultSortDir: listing.Asc,
	PageSize:       15,
	FilterKeys:     []string{"membershipStatus"},
}

const rosterSnapshotTTL = 2 * time.Minute

type Service interface {
	Invite(ctx context.Context, req InviteRequest) (*Trainer, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	ResetPassword(ctx context.Context, token string, req ResetPasswordRequest) error
	ListMembers(ctx context.Context, trainerID int, p listing.Params) (listing.Result[member.Member], error)
	MarkAttendance(ctx context.Context, trainerID, memberID int, now time.Time) (*member.Member, error)
}

type service struct {
	repo        Repository
	snaps       *listing.Snapshots
	mailer      InviteMailer
	jwtSecret   string
	frontendURL string
}

func NewService(repo Repository, snaps *listing.Snapshots, mailer InviteMailer, jwtSecret, frontendURL string) Service {
	return &service{
		repo:        repo,
		snaps:       snaps,
		mailer:      mailer,
		jwtSecret:   jwtSecret,
		frontendURL: frontendURL,
	}
}

// Invite creates the trainer without a password and emails a link to the
// reset-password page. The link carries only the token; the id comes from
// its claims.
func (s *service) Invite(ctx context.Context, req InviteRequest) (*Trainer, error) {
	t, err := s.repo.Create(ctx, &Trainer{
		GymID:     req.GymID,
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Specialty: req.Specialty,
	})
	if err != nil {
		return nil, err
	}

	token, err := auth.GenerateResetToken(t.ID, t.Email, auth.RoleTrainer, s.jwtSecret)
	if err != nil {
		return nil, err
	}

	gymName, err := s.repo.GymName(ctx, t.GymID)
	if err != nil {
		return nil, err
	}

	setPasswordLink := fmt.Sprintf("%s/trainers/reset-password/%s", s.frontendURL, token)
	if err := s.mailer.SendTrainerInvite(ctx, t.Email, t.Name, gymName, setPasswordLink); err != nil {
		return nil, err
	}

	return t, nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	t, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		metrics.RecordLogin(auth.RoleTrainer, "failure")
		return nil, ErrInvalidCredentials
	}

	if t.PasswordHash == nil || !auth.CheckPassword(*t.PasswordHash, req.Password) {
		metrics.RecordLogin(auth.RoleTrainer, "failure")
		return nil, ErrInvalidCredentials
	}

	token, err := auth.GenerateAccessToken(t.ID, t.Email, auth.RoleTrainer, s.jwtSecret)
	if err != nil {
		return nil, err
	}

	metrics.RecordLogin(auth.RoleTrainer, "success")

	return &LoginResponse{Token: token, User: *t}, nil
}

// ResetPassword sets the password from the emailed link. Unlike the admin
// flow, the trainer link carries only the token; the id comes from its
// claims.
func (s *service) ResetPassword(ctx context.Context, token string, req ResetPasswordRequest) error {
	if req.Password != req.ConfirmPassword {
		return ErrPasswordMismatch
	}

	claims, err := auth.ValidateResetToken(token, s.jwtSecret, 0)
	if err != nil {
		return ErrInvalidResetToken
	}
	if claims.Role != auth.RoleTrainer {
		return ErrInvalidResetToken
	}

	if _, err := s.repo.FindByID(ctx, claims.UserID); err != nil {
		return ErrInvalidResetToken
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return err
	}

	if err := s.repo.UpdatePassword(ctx, claims.UserID, passwordHash); err != nil {
		return err
	}

	metrics.RecordPasswordReset(auth.RoleTrainer)
	return nil
}

// ListMembers serves the trainer's roster through the shared pipeline:
// one snapshot per trainer, search on name/email, status filter, 15 per page.
func (s *service) ListMembers(ctx context.Context, trainerID int, p listing.Params) (listing.Result[member.Member], error) {
	key := listing.Key("trainer_members", trainerID)

	members, err := listing.Fetch(s.snaps, key, p.Refresh, rosterSnapshotTTL, func() ([]member.Member, error) {
		metrics.RecordSnapshotLoad("trainer_members", "db")
		return s.repo.ListMembers(ctx, trainerID)
	})
	if err != nil {
		return listing.Result[member.Member]{}, err
	}

	search := p.Search
	status := p.Filters["membershipStatus"]
	match := func(m member.Member) bool {
		if search != "" && !listing.ContainsFold(m.Name, search) && !listing.ContainsFold(m.Email, search) {
			return false
		}
		if status != "" && m.MembershipStatus != status {
			return false
		}
		return true
	}

	return listing.Apply(members, p, match, rosterComparators()), nil
}

// MarkAttendance stamps lastAttendance on the member. Marking twice on the
// same calendar day is rejected so a double-tap does not double-count.
func (s *service) MarkAttendance(ctx context.Context, trainerID, memberID int, now time.Time) (*member.Member, error) {
	m, err := s.repo.GetMember(ctx, trainerID, memberID)
	if err != nil {
		return nil, ErrMemberNotFound
	}

	if m.LastAttendance != nil && sameDay(*m.LastAttendance, now) {
		return nil, ErrAlreadyMarked
	}

	if err := s.repo.MarkAttendance(ctx, trainerID, memberID, now); err != nil {
		return nil, fmt.Errorf("mark attendance: %w", err)
	}

	s.snaps.Invalidate(listing.Key("trainer_members", trainerID))
	metrics.RecordAttendanceMark()

	m.LastAttendance = &now
	return m, nil
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func rosterComparators() map[string]listing.Comparator[member.Member] {
	return map[string]listing.Comparator[member.Member]{
		"name":  func(a, b member.Member) int { return listing.CompareString(a.Name, b.Name) },
		"email": func(a, b member.Member) int { return listing.CompareString(a.Email, b.Email) },
		"membershipType": func(a, b member.Member) int {
			return listing.CompareString(a.MembershipType, b.MembershipType)
		},
		"membershipStatus": func(a, b member.Member) int {
			return listing.CompareString(a.MembershipStatus, b.MembershipStatus)
		},
		"lastAttendance": func(a, b member.Member) int {
			return listing.CompareTime(timeOrZero(a.LastAttendance), timeOrZero(b.LastAttendance))
		},
	}
}

func timeOrZero(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}

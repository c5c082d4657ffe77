package member

import "time"

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
	StatusExpired  = "expired"
)

type Member struct {
	ID               int        `db:"id" json:"id"`
	GymID            int        `db:"gym_id" json:"gymId"`
	TrainerID        *int       `db:"trainer_id" json:"trainerId,omitempty"`
	Name             string     `db:"name" json:"name"`
	Email            string     `db:"email" json:"email"`
	Phone            string     `db:"phone" json:"phone"`
	MembershipType   string     `db:"membership_type" json:"membershipType"`
	MembershipStatus string     `db:"membership_status" json:"membershipStatus"`
	LastAttendance   *time.Time `db:"last_attendance" json:"lastAttendance,omitempty"`
	ProfileImage     *string    `db:"profile_image" json:"profileImage,omitempty"`
	PasswordHash     *string    `db:"password_hash" json:"-"`
	CreatedAt        time.Time  `db:"created_at" json:"createdAt"`
}

type InviteRequest struct {
	Name           string `json:"name" binding:"required"`
	Email          string `json:"email" binding:"required,email"`
	Phone          string `json:"phone"`
	GymID          int    `json:"gymId" binding:"required"`
	TrainerID      *int   `json:"trainerId"`
	MembershipType string `json:"membershipType"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string `json:"token"`
	User  Member `json:"user"`
}

type SetPasswordRequest struct {
	Password        string `json:"password" binding:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" binding:"required"`
}

package trainer

import "time"

type Trainer struct {
	ID           int       `db:"id" json:"id"`
	GymID        int       `db:"gym_id" json:"gymId"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	Phone        string    `db:"phone" json:"phone"`
	Specialty    string    `db:"specialty" json:"specialty"`
	PasswordHash *string   `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}

type InviteRequest struct {
	Name      string `json:"name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone"`
	Specialty string `json:"specialty"`
	GymID     int    `json:"gymId" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string  `json:"token"`
	User  Trainer `json:"user"`
}

type ResetPasswordRequest struct {
	Password        string `json:"password" binding:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" binding:"required"`
}

type MarkAttendanceRequest struct {
	MemberID int `json:"memberId" binding:"required"`
}

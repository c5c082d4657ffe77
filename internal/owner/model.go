package owner

import "time"

const (
	StatusActive   = "active"
	StatusTrial    = "trial"
	StatusGrace    = "grace"
	StatusExpired  = "expired"
	StatusInactive = "inactive"
)

// Subscription is the billing state of one gym, denormalized onto the gym
// row for the dashboard.
type Subscription struct {
	Status      string     `json:"status"`
	MemberCount int        `json:"memberCount"`
	Plan        string     `json:"plan"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
	TrialEndsAt *time.Time `json:"trialEndsAt"`
	Amount      float64    `json:"amount"`
}

type Gym struct {
	ID           int          `json:"id"`
	AdminID      int          `json:"-"`
	Name         string       `json:"name"`
	Email        string       `json:"email"`
	Phone        string       `json:"phone"`
	CreatedAt    time.Time    `json:"createdAt"`
	TotalRevenue float64      `json:"totalRevenue"`
	Subscription Subscription `json:"subscription"`
}

// Stats is the owner dashboard payload: pure reductions over the gym
// collection plus a month-over-month growth figure.
type Stats struct {
	TotalGyms           int     `json:"totalGyms"`
	ActiveSubscriptions int     `json:"activeSubscriptions"`
	TrialGyms           int     `json:"trialGyms"`
	GraceGyms           int     `json:"graceGyms"`
	ExpiredGyms         int     `json:"expiredGyms"`
	InactiveGyms        int     `json:"inactiveGyms"`
	TotalRevenue        float64 `json:"totalRevenue"`
	TotalMembers        int     `json:"totalMembers"`
	GymGrowthPct        float64 `json:"gymGrowthPct"`
}

package activity

import "time"

// AdminRef is the slice of the admin record embedded in each log entry.
// The JSON key keeps the shape the dashboard consumes.
type AdminRef struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	GymName  string `json:"gymName"`
}

// Location is resolved upstream; null when the resolver had nothing.
type Location struct {
	City    string  `json:"city"`
	Region  string  `json:"region"`
	Country string  `json:"country"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

type Log struct {
	ID         int       `json:"id"`
	AdminID    int       `json:"-"`
	Admin      AdminRef  `json:"adminId"`
	Action     string    `json:"action"`
	Timestamp  time.Time `json:"timestamp"`
	IPAddress  string    `json:"ipAddress"`
	DeviceInfo string    `json:"deviceInfo"`
	Location   *Location `json:"location"`
}

// Entry is what callers record; admin identity is joined in on read.
type Entry struct {
	AdminID    int
	Action     string
	IPAddress  string
	DeviceInfo string
	Location   *Location
}

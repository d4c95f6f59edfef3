package dto

import "time"

type RegisterRequest struct {
	Username        string `json:"username"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	Phone           string `json:"phone"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type UpdateUserRequest struct {
	Phone       string `json:"phone"`
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

type CreateOrderRequest struct {
	SessionIDs []uint `json:"session_ids"`
}

type TemplateRequest struct {
	CourtName string  `json:"court_name"`
	StartTime string  `json:"start_time"`
	Price     float64 `json:"price"`
	IsActive  bool    `json:"is_active"`
	Note      string  `json:"note"`
}

type SessionRequest struct {
	CourtName string    `json:"court_name"`
	StartTime time.Time `json:"start_time"`
	Price     float64   `json:"price"`
	IsActive  bool      `json:"is_active"`
	IsBooked  bool      `json:"is_booked"`
	Note      string    `json:"note"`
}

package models

import "time"

// Session is a single concrete, dated, priced bookable slot for one court.
// Inactive sessions stay visible (they carry closure notes) but are never
// bookable. A session is reserved by at most one order at a time.
type Session struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CourtName string    `gorm:"type:varchar(10);not null" json:"court_name"`
	StartTime time.Time `gorm:"not null" json:"start_time"`
	Price     float64   `gorm:"not null" json:"price"`
	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	IsBooked  bool      `gorm:"not null;default:false" json:"is_booked"`
	Note      string    `gorm:"type:text" json:"note"`
}

package models

// SessionTemplate is a recurring slot definition used to stamp out the next
// day's sessions. StartTime is a time of day in "15:04" form; editing a
// template never touches sessions that were already generated from it.
type SessionTemplate struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	CourtName string  `gorm:"type:varchar(10);not null" json:"court_name"`
	StartTime string  `gorm:"type:varchar(5);not null" json:"start_time"`
	Price     float64 `gorm:"not null" json:"price"`
	IsActive  bool    `gorm:"not null;default:true" json:"is_active"`
	Note      string  `gorm:"type:text" json:"note"`
}

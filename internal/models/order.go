package models

import "time"

type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusCompleted OrderStatus = "completed"
	StatusCancelled OrderStatus = "cancelled"
)

// Order is a user's reservation of one or more sessions. Status moves only
// forward: pending → completed on verification, pending → cancelled on
// cancellation.
type Order struct {
	ID         uint        `gorm:"primaryKey" json:"id"`
	UserID     uint        `gorm:"not null" json:"user_id"`
	TotalPrice float64     `gorm:"not null" json:"total_price"`
	CreateTime time.Time   `gorm:"not null" json:"create_time"`
	VerifyTime *time.Time  `json:"verify_time,omitempty"`
	VerifyCode string      `gorm:"type:varchar(36);not null" json:"verify_code"`
	Status     OrderStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
}

// OrderSession is an immutable copy of a session's booking-relevant fields
// taken at order time, so later edits or deletion of the session do not
// corrupt order history.
type OrderSession struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	OrderID   uint      `gorm:"not null;index" json:"order_id"`
	CourtName string    `gorm:"type:varchar(10);not null" json:"court_name"`
	StartTime time.Time `gorm:"not null" json:"start_time"`
	Price     float64   `gorm:"not null" json:"price"`
}

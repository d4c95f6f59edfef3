package dto

import (
	"time"

	"github.com/sportvenue/booking-service/internal/models"
	"github.com/sportvenue/booking-service/internal/service"
)

type UserResponse struct {
	ID       uint        `json:"id"`
	Username string      `json:"username"`
	Phone    string      `json:"phone"`
	Role     models.Role `json:"role"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type OrderResponse struct {
	OrderID    uint               `json:"order_id"`
	TotalPrice float64            `json:"total_price"`
	Status     models.OrderStatus `json:"status"`
	VerifyCode string             `json:"verify_code"`
	CreateTime time.Time          `json:"create_time"`
}

type OrderSessionInfo struct {
	CourtName string    `json:"court_name"`
	StartTime time.Time `json:"start_time"`
	Price     float64   `json:"price"`
}

type OrderUserInfo struct {
	Username string `json:"username"`
	Phone    string `json:"phone"`
}

// OrderDetailResponse is the verification payload: what the admin sees when
// scanning an order's QR code, and one entry of a user's order history.
type OrderDetailResponse struct {
	OrderNo    uint               `json:"order_no"`
	TotalPrice float64            `json:"total_price"`
	CreateTime time.Time          `json:"create_time"`
	VerifyTime *time.Time         `json:"verify_time,omitempty"`
	VerifyCode string             `json:"verify_code"`
	Status     models.OrderStatus `json:"status"`
	User       OrderUserInfo      `json:"user"`
	Sessions   []OrderSessionInfo `json:"sessions"`
}

type GenerateResponse struct {
	Created int `json:"created"`
}

type ClearExpiredResponse struct {
	Deleted int64 `json:"deleted"`
}

type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func ToUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:       u.ID,
		Username: u.Username,
		Phone:    u.Phone,
		Role:     u.Role,
	}
}

func ToOrderResponse(o *models.Order) OrderResponse {
	return OrderResponse{
		OrderID:    o.ID,
		TotalPrice: o.TotalPrice,
		Status:     o.Status,
		VerifyCode: o.VerifyCode,
		CreateTime: o.CreateTime,
	}
}

func ToOrderDetailResponse(d *service.OrderDetail) OrderDetailResponse {
	sessions := make([]OrderSessionInfo, len(d.Sessions))
	for i, s := range d.Sessions {
		sessions[i] = OrderSessionInfo{
			CourtName: s.CourtName,
			StartTime: s.StartTime,
			Price:     s.Price,
		}
	}
	return OrderDetailResponse{
		OrderNo:    d.Order.ID,
		TotalPrice: d.Order.TotalPrice,
		CreateTime: d.Order.CreateTime,
		VerifyTime: d.Order.VerifyTime,
		VerifyCode: d.Order.VerifyCode,
		Status:     d.Order.Status,
		User:       OrderUserInfo{Username: d.Username, Phone: d.Phone},
		Sessions:   sessions,
	}
}

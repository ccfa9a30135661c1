package models

import "time"

const (
	OrderStatusPending = "pending"
	OrderStatusPaid    = "paid" // set by a later payment flow, never here
)

type Order struct {
	ID uint `gorm:"primaryKey" json:"id"`
	// Nullable so guest orders carry no owner. Deleting the owning user
	// guest-ifies the order instead of erasing history.
	UserID      *uint       `gorm:"index" json:"user_id,omitempty"`
	User        *User       `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"-"`
	TotalAmount float64     `gorm:"type:decimal(10,2);not null;default:0.00" json:"total_amount"`
	Status      string      `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	CreatedAt   time.Time   `gorm:"not null" json:"created_at"`
	Lines       []OrderLine `gorm:"foreignKey:OrderID" json:"lines"`
}

package models

import "time"

// Inquiry is a customer message about a listed vehicle (or the dealership in
// general when VehicleID is nil).
type Inquiry struct {
	ID            string    `json:"id" gorm:"primaryKey;size:36"`
	CustomerName  string    `json:"customer_name" gorm:"not null;size:100"`
	CustomerEmail string    `json:"customer_email" gorm:"not null;size:255"`
	CustomerPhone *string   `json:"customer_phone,omitempty" gorm:"size:30"`
	Message       *string   `json:"message,omitempty" gorm:"type:text"`
	Status        string    `json:"status" gorm:"size:20;default:'new'"`
	VehicleID     *string   `json:"vehicle_id,omitempty" gorm:"size:36;index"`
	CreatedAt     time.Time `json:"created_at" gorm:"index"`
}

package model

import (
	"time"

	"github.com/google/uuid"
)

// Feedback is a customer-service entry submitted from the contact form
// or recorded by staff.
// Type: "Quality" | "Service" | "Delivery" | "Price" | "Other"
type Feedback struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Phone       string    `json:"phone,omitempty"`
	Type        string    `gorm:"type:varchar(20);not null" json:"type"`
	Description string    `gorm:"not null" json:"description"`
	CreatedAt   time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Customer is a known in-store customer shown in the customer-service view.
type Customer struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Phone     string    `gorm:"uniqueIndex" json:"phone,omitempty"`
	Gender    *string   `gorm:"type:varchar(10)" json:"gender,omitempty"`
	AgeGroup  string    `json:"ageGroup,omitempty"` // e.g. 20-25
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

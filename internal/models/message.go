package models

import "time"

// Message is an enquiry submitted through the public contact form.
// Rows are append-only.
type Message struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id" csv:"id"`
	Name        string    `gorm:"not null" json:"name" csv:"name"`
	Email       string    `gorm:"not null" json:"email" csv:"email"`
	ProductType string    `gorm:"not null" json:"productType" csv:"product_type"`
	Quantity    string    `gorm:"not null" json:"quantity" csv:"quantity"`
	Destination string    `gorm:"not null" json:"destination" csv:"destination"`
	Message     *string   `json:"message" csv:"message"`
	CreatedAt   time.Time `gorm:"index" json:"createdAt" csv:"created_at"`
}

package domain

import "time"

// Contact is a CRM contact as last observed from the bridge.
type Contact struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Email     string    `json:"email"`
	Firstname string    `json:"firstname"`
	Lastname  string    `json:"lastname"`
	CompanyID string    `json:"company_id" gorm:"index"` // soft reference, never validated
	LastSeen  time.Time `json:"last_seen"`
}

package domain

import "time"

// Deal is a CRM deal as last observed from the bridge.
type Deal struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	DealName  string    `json:"dealname"`
	Amount    float64   `json:"amount"`
	Stage     string    `json:"stage"`
	CompanyID string    `json:"company_id" gorm:"index"` // soft reference, never validated
	LastSeen  time.Time `json:"last_seen"`
}

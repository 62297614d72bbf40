package domain

import "time"

// Ticket is a support ticket as last observed from the bridge.
// CreatedAt carries the upstream creation date and is preserved across
// re-fetches; LastSeen is the start time of the sync cycle that most
// recently observed the record.
type Ticket struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Subject   string    `json:"subject"`
	Content   string    `json:"content"`
	Stage     string    `json:"stage"`
	CompanyID string    `json:"company_id" gorm:"index"` // soft reference, never validated
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime:false"`
	LastSeen  time.Time `json:"last_seen"`
}

// StageClosed is the ticket stage treated as resolved.
const StageClosed = "closed"

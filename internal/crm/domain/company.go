package domain

import "time"

// Company is a CRM company as last observed from the bridge.
type Company struct {
	ID       string    `json:"id" gorm:"primaryKey"`
	Name     string    `json:"name"`
	Domain   string    `json:"domain"`
	LastSeen time.Time `json:"last_seen"`
}

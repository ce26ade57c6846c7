package model

import "time"

// Plan is a purchasable subscription tier.
// Price is in major currency units; the gateway is billed Price × 100
// minor units (paise for INR).
type Plan struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Price        int64     `json:"price"`
	Currency     string    `json:"currency"`
	DurationDays int       `json:"duration_days"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

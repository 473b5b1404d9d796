package models

import "time"

// UserPreference is the persisted timezone preference of one Telegram user.
// Nil pointers mean the value is unset.
type UserPreference struct {
	ExternalID int64     `json:"external_id"`
	FirstName  string    `json:"first_name"`
	LastName   *string   `json:"last_name"`
	Username   *string   `json:"username"`
	Timezone   *string   `json:"timezone"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

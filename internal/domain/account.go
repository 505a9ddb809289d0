package domain

import "time"

// Account is the identity every entity is owned by
type Account struct {
	ID        string    `json:"id"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
}

package pantry

import "time"

// Item is one pantry row owned by a user. Items are created by manual
// entry, receipt ingestion or bulk import.
type Item struct {
	ID             int64     `json:"id"`
	UserID         string    `json:"-"`
	Name           string    `json:"name"`
	Quantity       string    `json:"quantity"`
	ExpirationDate string    `json:"expiration_date"`
	Category       string    `json:"category"`
	CreatedAt      time.Time `json:"created_at"`
}

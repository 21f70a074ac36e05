package models

import "time"

// Page is the snapshot of one page load: the profiles fetched for it, in
// API order. Every interaction on that page resolves against these profiles.
type Page struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Profiles  []Profile `json:"profiles"`
}

package models

import "time"

// Image records a stored picture: its external URL plus the storage key
// needed to delete it later.
type Image struct {
	ID       int    `json:"img_id" db:"img_id"`
	Title    string `json:"img_title" db:"img_title"`
	URL      string `json:"img_url" db:"img_url"`
	PublicID string `json:"img_public_id" db:"img_public_id"`
}

// CollectionEntry links a user to a bird they have discovered, together with
// the picture that triggered the discovery. At most one entry may exist per
// (user, bird) pair.
type CollectionEntry struct {
	ID        int       `json:"collection_id" db:"collection_id"`
	UserID    int       `json:"user_id" db:"user_id"`
	BirdID    int       `json:"bird_id" db:"bird_id"`
	ImageID   int       `json:"img_id" db:"img_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

package models

import "time"

// Bird is immutable reference data describing a species the classifier can
// label. Name matching is exact after case-folding.
type Bird struct {
	ID             int       `json:"bird_id" db:"bird_id"`
	Name           string    `json:"name" db:"name"`
	ScientificName string    `json:"scientific_name,omitempty" db:"scientific_name"`
	FunFact        string    `json:"fun_fact,omitempty" db:"fun_fact"`
	RareTypeID     int       `json:"rare_type_id" db:"rare_type_id"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

// RareType is the rarity tier of a bird and the points it is worth.
type RareType struct {
	ID    int    `json:"rare_type_id" db:"rare_type_id"`
	Label string `json:"rare_type" db:"rare_type"`
	Score int    `json:"score" db:"score"`
}

// BirdSummary is a bird joined with its rarity for listing endpoints.
type BirdSummary struct {
	ID       int    `json:"bird_id"`
	Name     string `json:"name"`
	RareType string `json:"rare_type"`
	Score    int    `json:"score"`
}

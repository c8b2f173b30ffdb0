package models

import (
	"time"
)

// QuotaLimit is the maximum number of classification calls a user may make.
const QuotaLimit = 20

// User represents an account in Bird Quest
type User struct {
	ID             int        `json:"user_id" db:"user_id"`
	Email          string     `json:"email" db:"email"`
	Name           string     `json:"name" db:"name"`
	PasswordHash   string     `json:"-" db:"password"`
	UserTypeID     int        `json:"user_type_id" db:"user_type_id"`
	ImageID        *int       `json:"img_id,omitempty" db:"img_id"`
	APIConsumption int        `json:"api_consumption" db:"api_consumption"`
	Score          int        `json:"score" db:"score"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at,omitempty" db:"updated_at"`
}

// UserListing is the admin view of an account, joined with its user type.
type UserListing struct {
	ID        int       `json:"user_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	UserType  string    `json:"user_type"`
	CreatedAt time.Time `json:"created_at"`
}

// UserConsumption reports how many audited requests a user has made.
type UserConsumption struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Requests int    `json:"requests"`
}

// LoginForm represents credentials posted to the login endpoint
type LoginForm struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate validates the login form data
func (f *LoginForm) Validate() []string {
	var errors []string

	if f.Email == "" {
		errors = append(errors, "Email is required")
	}

	if f.Password == "" {
		errors = append(errors, "Password is required")
	}

	return errors
}

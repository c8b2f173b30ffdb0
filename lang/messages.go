// Package lang holds the user-facing English message strings returned by the
// API, mirrored in one place so controllers and middleware stay consistent.
package lang

import "fmt"

const (
	Welcome = "Hello world!"

	UserNotFound       = "User not found"
	Unauthorized       = "Unauthorized"
	NoImageFile        = "No image file provided"
	APILimitReached    = "API limit reached"
	FailedToLogRequest = "Failed to log request"

	BirdAlreadyFound       = "You already found this bird."
	BirdNotFoundInDatabase = "Bird not found in database."
	InternalServerError    = "Internal server error"
	SuccessRetrieveBirds   = "Successfully retrieved birds"
	SuccessRetrieveUsers   = "Successfully retrieved users"
	SuccessUploadedPicture = "Successfully uploaded profile picture"
	FailUploadingPicture   = "Failed to update profile picture"
	InvalidCredentials     = "Invalid email or password"
	SuccessAuthentication  = "Successfully authenticated"
	SuccessLogout          = "Successfully logged out"
	ClassifierUnavailable  = "Bird classification service unavailable"
	ClassificationTimedOut = "Bird classification timed out"
	ErrorUploadingImage    = "Error uploading image"
)

// BirdDiscovered builds the congratulation message for a new discovery.
func BirdDiscovered(rareType string) string {
	if rareType == "" {
		return "Congratulations! You discovered a new bird!"
	}
	return fmt.Sprintf("Congratulations! You discovered a new bird (%s)!", rareType)
}

// ModelAPIError describes a non-success response from the classifier model.
func ModelAPIError(status int, body string) string {
	return fmt.Sprintf("Model API returned %d: %s", status, body)
}

package userctx

import "context"

// Context key type
type contextKey string

const userIDKey contextKey = "user_id"
const userEmailKey contextKey = "user_email"

// SetUserID adds the resolved user ID to the request context
func SetUserID(ctx context.Context, id int) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}

// GetUserID retrieves the resolved user ID from the request context.
// Returns 0 if no user has been resolved.
func GetUserID(ctx context.Context) int {
	if id, ok := ctx.Value(userIDKey).(int); ok {
		return id
	}
	return 0
}

// SetUserEmail adds the user email to the request context
func SetUserEmail(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, userEmailKey, email)
}

// GetUserEmail retrieves the user email from the request context
func GetUserEmail(ctx context.Context) string {
	email, ok := ctx.Value(userEmailKey).(string)
	if !ok {
		return ""
	}
	return email
}

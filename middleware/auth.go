package middleware

import (
	"errors"
	"net/http"

	"gitea.com/go-chi/session"

	"github.com/birdquest/birdquest/lang"
	"github.com/birdquest/birdquest/repositories"
	"github.com/birdquest/birdquest/userctx"
)

// RequireUser resolves the request's authentication evidence to a durable
// user ID and stores it in the request context.
//
// A verified principal already attached upstream wins; otherwise the session
// must carry the authenticated flag and an email that maps to an account. A
// session email with no matching account means the session is stale — the
// caller gets 404 and should sign the user out.
func RequireUser(userRepo repositories.UserRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			if userctx.GetUserID(ctx) != 0 {
				next.ServeHTTP(w, r)
				return
			}

			sess := session.GetSession(r)
			authenticated, _ := sess.Get("authenticated").(bool)
			email, _ := sess.Get("email").(string)

			if !authenticated || email == "" {
				writeError(w, http.StatusUnauthorized, lang.Unauthorized)
				return
			}

			user, err := userRepo.GetByEmail(ctx, email)
			if errors.Is(err, repositories.ErrUserNotFound) {
				writeError(w, http.StatusNotFound, lang.UserNotFound)
				return
			}
			if err != nil {
				writeError(w, http.StatusInternalServerError, lang.InternalServerError)
				return
			}

			ctx = userctx.SetUserID(ctx, user.ID)
			ctx = userctx.SetUserEmail(ctx, user.Email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

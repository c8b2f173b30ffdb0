package middleware

import (
	"log"
	"net/http"

	"github.com/birdquest/birdquest/lang"
	"github.com/birdquest/birdquest/repositories"
	"github.com/birdquest/birdquest/userctx"
)

// AuditLogger records one append-only request row for every gated call:
// get-or-create the method row, get-or-create the (method, endpoint) row,
// append the request with the resolved user. Must run after RequireUser.
//
// A failure to log fails the whole request with 500; the audit trail is part
// of the service's contract, not an optional extra.
func AuditLogger(auditRepo repositories.AuditRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			userID := userctx.GetUserID(ctx)

			methodID, err := auditRepo.GetOrCreateMethod(ctx, r.Method)
			if err != nil {
				log.Printf("Failed to get or create method: %v", err)
				writeError(w, http.StatusInternalServerError, lang.FailedToLogRequest)
				return
			}

			endpointID, err := auditRepo.GetOrCreateEndpoint(ctx, methodID, r.URL.Path)
			if err != nil {
				log.Printf("Failed to get or create endpoint: %v", err)
				writeError(w, http.StatusInternalServerError, lang.FailedToLogRequest)
				return
			}

			if err := auditRepo.LogRequest(ctx, endpointID, userID); err != nil {
				log.Printf("Failed to log request: %v", err)
				writeError(w, http.StatusInternalServerError, lang.FailedToLogRequest)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"gitea.com/go-chi/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/birdquest/birdquest/models"
	"github.com/birdquest/birdquest/repositories"
	"github.com/birdquest/birdquest/repositories/mocks"
	"github.com/birdquest/birdquest/userctx"
)

// captureHandler records whether the chain reached the handler and what
// identity the context carried
type captureHandler struct {
	called bool
	userID int
	email  string
}

func (h *captureHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.called = true
	h.userID = userctx.GetUserID(r.Context())
	h.email = userctx.GetUserEmail(r.Context())
	w.WriteHeader(http.StatusOK)
}

func TestRequireUserContextPrincipal(t *testing.T) {
	userRepo := mocks.NewMockUserRepository()
	next := &captureHandler{}
	handler := RequireUser(userRepo)(next)

	req := httptest.NewRequest(http.MethodGet, "/api/birds", nil)
	ctx := userctx.SetUserID(req.Context(), 7)
	ctx = userctx.SetUserEmail(ctx, "carol@example.com")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req.WithContext(ctx))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, next.called)
	assert.Equal(t, 7, next.userID)
	// No repository lookup when a principal is already attached
	userRepo.AssertNotCalled(t, "GetByEmail", context.Background(), "carol@example.com")
}

func TestRequireUserNoEvidence(t *testing.T) {
	userRepo := mocks.NewMockUserRepository()
	next := &captureHandler{}
	handler := RequireUser(userRepo)(next)

	req := httptest.NewRequest(http.MethodGet, "/api/birds", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, next.called)
	assert.Contains(t, rec.Body.String(), "Unauthorized")
}

func TestAuditLoggerSuccess(t *testing.T) {
	auditRepo := mocks.NewMockAuditRepository()
	next := &captureHandler{}
	handler := AuditLogger(auditRepo)(next)

	req := httptest.NewRequest(http.MethodPost, "/api/analyze-bird", nil)
	ctx := userctx.SetUserID(req.Context(), 7)
	rec := httptest.NewRecorder()

	auditRepo.On("GetOrCreateMethod", ctx, "POST").Return(1, nil)
	auditRepo.On("GetOrCreateEndpoint", ctx, 1, "/api/analyze-bird").Return(2, nil)
	auditRepo.On("LogRequest", ctx, 2, 7).Return(nil)

	handler.ServeHTTP(rec, req.WithContext(ctx))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, next.called)
	auditRepo.AssertExpectations(t)
}

func TestAuditLoggerFailureBlocksRequest(t *testing.T) {
	auditRepo := mocks.NewMockAuditRepository()
	next := &captureHandler{}
	handler := AuditLogger(auditRepo)(next)

	req := httptest.NewRequest(http.MethodPost, "/api/analyze-bird", nil)
	ctx := userctx.SetUserID(req.Context(), 7)
	rec := httptest.NewRecorder()

	auditRepo.On("GetOrCreateMethod", ctx, "POST").Return(0, assert.AnError)

	handler.ServeHTTP(rec, req.WithContext(ctx))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.False(t, next.called)
	assert.Contains(t, rec.Body.String(), "Failed to log request")
}

func TestAuditLoggerLogRequestFailure(t *testing.T) {
	auditRepo := mocks.NewMockAuditRepository()
	next := &captureHandler{}
	handler := AuditLogger(auditRepo)(next)

	req := httptest.NewRequest(http.MethodGet, "/api/birds", nil)
	ctx := userctx.SetUserID(req.Context(), 7)
	rec := httptest.NewRecorder()

	auditRepo.On("GetOrCreateMethod", ctx, "GET").Return(1, nil)
	auditRepo.On("GetOrCreateEndpoint", ctx, 1, "/api/birds").Return(2, nil)
	auditRepo.On("LogRequest", ctx, 2, 7).Return(assert.AnError)

	handler.ServeHTTP(rec, req.WithContext(ctx))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.False(t, next.called)
}

// sessionChain wraps a handler in the session middleware plus RequireUser,
// with a /seed route that writes the given session values
func sessionChain(t *testing.T, userRepo *mocks.MockUserRepository, next http.Handler, authenticated bool, email string) http.Handler {
	sessioner, err := session.Sessioner(session.Options{
		Provider:   "memory",
		CookieName: "test_session",
	})
	if err != nil {
		t.Fatalf("Failed to initialize session middleware: %v", err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/seed", func(w http.ResponseWriter, r *http.Request) {
		sess := session.GetSession(r)
		sess.Set("authenticated", authenticated)
		sess.Set("email", email)
		w.WriteHeader(http.StatusOK)
	})
	mux.Handle("/api/birds", RequireUser(userRepo)(next))
	return sessioner(mux)
}

// seedSession performs the seeding request and returns the session cookie
func seedSession(t *testing.T, handler http.Handler) *http.Cookie {
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/seed", nil))
	cookies := rec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("Expected a session cookie from the seed request")
	}
	return cookies[0]
}

func TestRequireUserSessionResolved(t *testing.T) {
	userRepo := mocks.NewMockUserRepository()
	userRepo.On("GetByEmail", mock.Anything, "alice@example.com").
		Return(&models.User{ID: 3, Email: "alice@example.com"}, nil)
	next := &captureHandler{}
	handler := sessionChain(t, userRepo, next, true, "alice@example.com")

	cookie := seedSession(t, handler)

	req := httptest.NewRequest(http.MethodGet, "/api/birds", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, next.called)
	assert.Equal(t, 3, next.userID)
	assert.Equal(t, "alice@example.com", next.email)
}

func TestRequireUserStaleSession(t *testing.T) {
	// A session email with no matching account means the session outlived the
	// user; the caller gets 404 and should sign out
	userRepo := mocks.NewMockUserRepository()
	userRepo.On("GetByEmail", mock.Anything, "gone@example.com").
		Return(nil, repositories.ErrUserNotFound)
	next := &captureHandler{}
	handler := sessionChain(t, userRepo, next, true, "gone@example.com")

	cookie := seedSession(t, handler)

	req := httptest.NewRequest(http.MethodGet, "/api/birds", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, next.called)
	assert.Contains(t, rec.Body.String(), "User not found")
}

func TestRequireUserUnauthenticatedSession(t *testing.T) {
	userRepo := mocks.NewMockUserRepository()
	next := &captureHandler{}
	handler := sessionChain(t, userRepo, next, false, "alice@example.com")

	cookie := seedSession(t, handler)

	req := httptest.NewRequest(http.MethodGet, "/api/birds", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, next.called)
}

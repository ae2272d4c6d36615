package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Silveira-k7/PragmaL/internal/assistant"
	"github.com/Silveira-k7/PragmaL/internal/auth"
	"github.com/Silveira-k7/PragmaL/internal/facilities"
	"github.com/Silveira-k7/PragmaL/internal/reservations"
	"github.com/Silveira-k7/PragmaL/internal/webchat"
)

const testSecret = "router-test-secret"

type stubConversation struct{}

func (stubConversation) HandleTurn(_ context.Context, sessionID, _ string) (*assistant.TurnResult, error) {
	if sessionID == "" {
		sessionID = "session-1"
	}
	return &assistant.TurnResult{SessionID: sessionID, Reply: "ok", State: assistant.StateCollecting}, nil
}

func (stubConversation) Greeting() string { return "Olá!" }

func testRouter(t *testing.T) http.Handler {
	t.Helper()
	// Handlers are wired with nil repositories: the auth tests below are
	// rejected by middleware before any handler runs.
	return New(&Config{
		ChatHandler:         webchat.NewHandler(stubConversation{}, nil),
		FacilitiesHandler:   facilities.NewHandler(nil, nil),
		ReservationsHandler: reservations.NewHandler(nil, nil, nil),
		JWTSecret:           testSecret,
	})
}

func token(t *testing.T, role auth.Role) string {
	t.Helper()
	claims := auth.Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func TestHealthIsPublic(t *testing.T) {
	r := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}

func TestChatIsPublic(t *testing.T) {
	r := testRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"text":"oi"}`))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAPIRequiresToken(t *testing.T) {
	r := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/reservations", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminRoutesRejectUserRole(t *testing.T) {
	r := testRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/blocks", nil)
	req.Header.Set("Authorization", "Bearer "+token(t, auth.RoleUser))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

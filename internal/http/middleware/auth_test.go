package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/Nikhil-Govula/ProgrammingProject-2024-SP3-Team4/domain"
	"github.com/Nikhil-Govula/ProgrammingProject-2024-SP3-Team4/internal/mocks"
)

func TestRequireKind(t *testing.T) {
	gin.SetMode(gin.TestMode)

	sessions := mocks.NewMockSessionStore()
	sessions.ValidateFunc = func(ctx context.Context, sessionID string) (*domain.Session, error) {
		switch sessionID {
		case "sess-seeker":
			return &domain.Session{ID: sessionID, IdentityID: "jane@example.com", IdentityKind: domain.KindSeeker}, nil
		case "sess-expired":
			return nil, domain.ErrSessionExpired
		}
		return nil, domain.ErrSessionNotFound
	}

	router := gin.New()
	router.GET("/guarded", RequireKind(sessions, domain.KindSeeker), func(c *gin.Context) {
		identityID, kind, ok := IdentityFromContext(c)
		if !ok {
			t.Error("expected the identity in the context")
		}
		c.JSON(http.StatusOK, gin.H{"identity_id": identityID, "kind": string(kind)})
	})

	tests := []struct {
		name           string
		cookie         string
		expectedStatus int
	}{
		{name: "valid session of an allowed kind", cookie: "sess-seeker", expectedStatus: http.StatusOK},
		{name: "no cookie", cookie: "", expectedStatus: http.StatusUnauthorized},
		{name: "unknown session", cookie: "sess-bogus", expectedStatus: http.StatusUnauthorized},
		{name: "expired session", cookie: "sess-expired", expectedStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: tt.cookie})
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d", tt.expectedStatus, w.Code)
			}
		})
	}
}

func TestRequireKind_KindMismatch(t *testing.T) {
	gin.SetMode(gin.TestMode)

	sessions := mocks.NewMockSessionStore()
	sessions.ValidateFunc = func(ctx context.Context, sessionID string) (*domain.Session, error) {
		return &domain.Session{ID: sessionID, IdentityID: "root@example.com", IdentityKind: domain.KindAdmin}, nil
	}

	router := gin.New()
	router.GET("/guarded", RequireKind(sessions, domain.KindSeeker, domain.KindEmployer), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "sess-admin"})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for a kind not on the route, got %d", w.Code)
	}
}

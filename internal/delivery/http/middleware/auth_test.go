package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

type fakeVerifier struct {
	userID string
	roles  []string
	err    error
}

func (f *fakeVerifier) Verify(token string) (string, []string, error) {
	if f.err != nil {
		return "", nil, f.err
	}
	return f.userID, f.roles, nil
}

func TestRequireAuth(t *testing.T) {
	tests := []struct {
		name       string
		authHeader string
		verifier   *fakeVerifier
		wantStatus int
		wantNext   bool
	}{
		{
			name:       "missing header",
			authHeader: "",
			verifier:   &fakeVerifier{userID: "u1"},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "wrong scheme",
			authHeader: "Basic abc",
			verifier:   &fakeVerifier{userID: "u1"},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "empty token",
			authHeader: "Bearer ",
			verifier:   &fakeVerifier{userID: "u1"},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "invalid token",
			authHeader: "Bearer bad",
			verifier:   &fakeVerifier{err: errors.New("expired")},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "valid token",
			authHeader: "Bearer good",
			verifier:   &fakeVerifier{userID: "u1", roles: []string{"admin"}},
			wantStatus: http.StatusOK,
			wantNext:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nextCalled := false
			handler := RequireAuth(tt.verifier)(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				if id, ok := UserIDFromContext(r.Context()); !ok || id != "u1" {
					t.Fatalf("user id not set in context")
				}
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			w := httptest.NewRecorder()
			handler(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if nextCalled != tt.wantNext {
				t.Fatalf("next called = %v, want %v", nextCalled, tt.wantNext)
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name       string
		roles      []string
		allowed    []string
		authed     bool
		wantStatus int
	}{
		{
			name:       "role allowed",
			roles:      []string{"checkin_staff"},
			allowed:    []string{"admin", "checkin_staff"},
			authed:     true,
			wantStatus: http.StatusOK,
		},
		{
			name:       "role denied",
			roles:      []string{"viewer"},
			allowed:    []string{"admin"},
			authed:     true,
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "no identity",
			allowed:    []string{"admin"},
			authed:     false,
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := RequireRole(tt.allowed...)(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodPost, "/", nil)
			if tt.authed {
				req = req.WithContext(SetIdentity(req.Context(), "u1", tt.roles))
			}
			w := httptest.NewRecorder()
			handler(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantStatus)
			}
		})
	}
}

package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-EventLedger/internal/service/users"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeAuth map[string]string

func (f fakeAuth) Authenticate(_ context.Context, token string) (string, error) {
	if token == "boom" {
		return "", errors.New("redis down")
	}
	if id, ok := f[token]; ok {
		return id, nil
	}
	return "", users.ErrUnauthorized
}

func TestAuth(t *testing.T) {
	var seenUser, seenToken string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenUser, _ = GetUserID(r.Context())
		seenToken, _ = GetToken(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})
	h := Auth(fakeAuth{"good": "user-1"}, nopLogger{})(next)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"valid token", "Bearer good", http.StatusNoContent},
		{"lower-case scheme", "bearer good", http.StatusNoContent},
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic good", http.StatusUnauthorized},
		{"unknown token", "Bearer stale", http.StatusUnauthorized},
		{"store failure", "Bearer boom", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seenUser, seenToken = "", ""
			req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Code)
			if tt.want == http.StatusNoContent {
				assert.Equal(t, "user-1", seenUser)
				assert.Equal(t, "good", seenToken)
			} else {
				assert.Empty(t, seenUser)
			}
		})
	}
}

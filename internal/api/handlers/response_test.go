package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondError(t *testing.T) {
	rec := httptest.NewRecorder()

	RespondConflict(rec, "занято")

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error": "занято"}`, rec.Body.String())
}

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"valid", `{"name": "Alice"}`, false},
		{"unknown field", `{"name": "Alice", "role": "admin"}`, true},
		{"trailing object", `{"name": "Alice"} {"name": "Bob"}`, true},
		{"not json", `name=Alice`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var p payload
			err := DecodeJSON(req, &p)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Alice", p.Name)
		})
	}
}

func TestParseDateTime(t *testing.T) {
	want := time.Date(2025, 10, 15, 18, 30, 0, 0, time.UTC)

	got, err := ParseDateTime("2025-10-15T18:30")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	got, err = ParseDateTime("2025-10-15T20:30:00+02:00")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = ParseDateTime("15.10.2025 18:30")
	assert.Error(t, err)
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("")
	require.NoError(t, err)
	assert.True(t, got.IsZero())

	got, err = ParseDate("2025-02-28")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC), got)
}

func TestErrorDetail(t *testing.T) {
	sentinel := errors.New("pkg: invalid input data")
	err := fmt.Errorf("%w: amount must be positive", sentinel)

	assert.Equal(t, "amount must be positive", ErrorDetail(err, sentinel))
	assert.Equal(t, "other", ErrorDetail(errors.New("other"), sentinel))
}

func TestOptionalQuery(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?status=%20Pending%20&empty=", nil)

	status := OptionalQuery(req, "status")
	require.NotNil(t, status)
	assert.Equal(t, "Pending", *status)
	assert.Nil(t, OptionalQuery(req, "empty"))
	assert.Nil(t, OptionalQuery(req, "missing"))
}

package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/handson-platform/handson-backend/internal/apperror"
)

func TestSignUpSendsCredentialsAndMetadata(t *testing.T) {
	var gotPath, gotAPIKey string
	var gotBody map[string]interface{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAPIKey = r.Header.Get("apikey")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"access_token": "token-abc",
			"token_type":   "bearer",
			"expires_in":   3600,
			"user": map[string]interface{}{
				"id":    "uuid-1",
				"email": "vol@example.com",
			},
		})
	}))
	defer srv.Close()

	provider := NewGoTrueProvider(srv.URL, "anon-key")
	session, err := provider.SignUp(context.Background(), "vol@example.com", "secret123", map[string]interface{}{
		"name": "Vol Unteer",
	})
	require.NoError(t, err)

	assert.Equal(t, "/auth/v1/signup", gotPath)
	assert.Equal(t, "anon-key", gotAPIKey)
	assert.Equal(t, "vol@example.com", gotBody["email"])
	assert.Equal(t, "secret123", gotBody["password"])
	meta, ok := gotBody["data"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Vol Unteer", meta["name"])

	assert.Equal(t, "token-abc", session.AccessToken)
	assert.Equal(t, "uuid-1", session.User.ID)
}

func TestSignInUsesPasswordGrant(t *testing.T) {
	var gotQuery string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"access_token": "token-xyz",
		})
	}))
	defer srv.Close()

	provider := NewGoTrueProvider(srv.URL, "anon-key")
	session, err := provider.SignIn(context.Background(), "vol@example.com", "secret123")
	require.NoError(t, err)

	assert.Equal(t, "grant_type=password", gotQuery)
	assert.Equal(t, "token-xyz", session.AccessToken)
}

func TestProviderErrorMapping(t *testing.T) {
	cases := []struct {
		name    string
		status  int
		body    string
		wantErr error
		wantMsg string
	}{
		{"invalid credentials", http.StatusUnauthorized,
			`{"error_description":"Invalid login credentials"}`,
			apperror.ErrUnauthenticated, "Invalid login credentials"},
		{"weak password", http.StatusUnprocessableEntity,
			`{"msg":"Password should be at least 6 characters"}`,
			apperror.ErrValidation, "Password should be at least 6 characters"},
		{"unlabeled 400", http.StatusBadRequest, `{}`,
			apperror.ErrValidation, "status 400"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			provider := NewGoTrueProvider(srv.URL, "anon-key")
			_, err := provider.SignIn(context.Background(), "vol@example.com", "bad")
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.wantErr)
			assert.Contains(t, err.Error(), tc.wantMsg)
		})
	}
}

func TestServerErrorIsNotAValidationError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	provider := NewGoTrueProvider(srv.URL, "anon-key")
	_, err := provider.SignIn(context.Background(), "vol@example.com", "secret")
	require.Error(t, err)
	assert.NotErrorIs(t, err, apperror.ErrValidation)
	assert.NotErrorIs(t, err, apperror.ErrUnauthenticated)
}

package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/handson-platform/handson-backend/internal/apperror"
)

// Provider is the hosted identity service. Credential storage and token
// issuance live entirely on the provider side; this backend only
// consumes sessions and verifies their tokens locally.
type Provider interface {
	SignUp(ctx context.Context, email, password string, metadata map[string]interface{}) (*Session, error)
	SignIn(ctx context.Context, email, password string) (*Session, error)
}

// GoTrueProvider talks to a GoTrue-compatible auth endpoint (Supabase).
type GoTrueProvider struct {
	baseURL string
	anonKey string
	client  *http.Client
}

func NewGoTrueProvider(baseURL, anonKey string) *GoTrueProvider {
	return &GoTrueProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		anonKey: anonKey,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// ===========================
// Sign Up - POST /auth/v1/signup
func (p *GoTrueProvider) SignUp(ctx context.Context, email, password string, metadata map[string]interface{}) (*Session, error) {
	body := map[string]interface{}{
		"email":    email,
		"password": password,
	}
	if len(metadata) > 0 {
		body["data"] = metadata
	}
	return p.post(ctx, "/auth/v1/signup", body)
}

// ===========================
// Sign In - POST /auth/v1/token?grant_type=password
func (p *GoTrueProvider) SignIn(ctx context.Context, email, password string) (*Session, error) {
	return p.post(ctx, "/auth/v1/token?grant_type=password", map[string]interface{}{
		"email":    email,
		"password": password,
	})
}

func (p *GoTrueProvider) post(ctx context.Context, path string, body map[string]interface{}) (*Session, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", p.anonKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("auth provider unreachable: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= 400 {
		return nil, providerError(resp.StatusCode, raw)
	}

	var session Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, fmt.Errorf("unexpected auth provider response: %w", err)
	}
	return &session, nil
}

// providerError surfaces the provider's message under the right kind.
func providerError(status int, raw []byte) error {
	var parsed struct {
		Msg              string `json:"msg"`
		Message          string `json:"message"`
		ErrorDescription string `json:"error_description"`
	}
	_ = json.Unmarshal(raw, &parsed)

	message := parsed.Msg
	if message == "" {
		message = parsed.ErrorDescription
	}
	if message == "" {
		message = parsed.Message
	}
	if message == "" {
		message = fmt.Sprintf("auth provider rejected the request (status %d)", status)
	}

	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return apperror.Unauthenticated(message)
	case status >= 400 && status < 500:
		return apperror.ValidationFailed("credentials", message)
	default:
		return fmt.Errorf("auth provider error: %s", message)
	}
}

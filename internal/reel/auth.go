package reel

import (
	"context"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	msgLoginFailed  = "Login failed"
	msgSignupFailed = "Signup failed"
)

// Authenticator is the thin client for the external authentication
// collaborator. It produces the identity the SessionStore holds; it
// never touches review state.
type Authenticator struct {
	baseURL    string
	httpClient *http.Client
	log        *zap.Logger
}

func NewAuthenticator(baseURL string, log *zap.Logger) *Authenticator {
	return &Authenticator{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		log: log.With(zap.String("client", "auth")),
	}
}

type authPayload struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges credentials for an identity and session token.
func (a *Authenticator) Login(ctx context.Context, email, password string) (*User, string, error) {
	if email == "" || password == "" {
		return nil, "", newValidationError("email and password are required")
	}

	payload, err := a.post(ctx, "/api/login", loginRequest{Email: email, Password: password}, msgLoginFailed)
	if err != nil {
		return nil, "", err
	}

	a.log.Info("Logged in", zap.String("user_id", payload.User.ID))
	return &payload.User, payload.Token, nil
}

// Register creates an account and signs it in.
func (a *Authenticator) Register(ctx context.Context, username, email, password string) (*User, string, error) {
	if username == "" {
		return nil, "", newValidationError("username is required")
	}
	if email == "" {
		return nil, "", newValidationError("email is required")
	}
	if password == "" {
		return nil, "", newValidationError("password is required")
	}

	req := registerRequest{Username: username, Email: email, Password: password}
	payload, err := a.post(ctx, "/api/register", req, msgSignupFailed)
	if err != nil {
		return nil, "", err
	}

	a.log.Info("Registered", zap.String("user_id", payload.User.ID))
	return &payload.User, payload.Token, nil
}

// Logout revokes the session token server-side. A best-effort call: the
// local identity slot is cleared regardless by the facade.
func (a *Authenticator) Logout(ctx context.Context, token string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/api/logout", nil)
	if err != nil {
		return newFailure("Logout failed")
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return newFailure("Logout failed")
	}
	defer resp.Body.Close()

	return nil
}

func (a *Authenticator) post(ctx context.Context, path string, body any, defaultMsg string) (*authPayload, error) {
	data, status, err := doJSON(ctx, a.httpClient, http.MethodPost, a.baseURL+path, body, nil, defaultMsg)
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		return nil, newFailure(errorMessage(data, defaultMsg))
	}

	var payload authPayload
	if err := decodePayload(data, &payload); err != nil {
		a.log.Error("Failed to decode auth response", zap.Error(err))
		return nil, newFailure(defaultMsg)
	}
	if payload.User.ID == "" {
		return nil, newFailure(defaultMsg)
	}

	return &payload, nil
}

package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"

	"github.com/eventnow/eventnow_backend/models"
)

const signInEndpoint = "https://identitytoolkit.googleapis.com/v1/accounts:signInWithPassword"

// FirebaseIdentityService authenticates operators against Firebase Auth.
// Password sign-in goes through the Identity Toolkit REST API (the Admin
// SDK deliberately has no password check); sign-out revokes the user's
// refresh tokens through the Admin SDK.
type FirebaseIdentityService struct {
	apiKey     string
	authClient *auth.Client
	httpClient *http.Client
}

func NewFirebaseIdentityService(app *firebase.App, apiKey string) (*FirebaseIdentityService, error) {
	authClient, err := app.Auth(context.Background())
	if err != nil {
		return nil, fmt.Errorf("initializing firebase auth client: %w", err)
	}

	return &FirebaseIdentityService{
		apiKey:     apiKey,
		authClient: authClient,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}, nil
}

type signInRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type signInResponse struct {
	LocalID string `json:"localId"`
	Email   string `json:"email"`
	Error   struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (s *FirebaseIdentityService) SignInWithPassword(ctx context.Context, email, password string) (*Session, error) {
	body, err := json.Marshal(signInRequest{Email: email, Password: password, ReturnSecureToken: true})
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s?key=%s", signInEndpoint, s.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrUnavailable, err)
	}

	var result signInResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, mapSignInError(resp.StatusCode, result.Error.Message)
	}

	return &Session{UserID: result.LocalID, Email: result.Email}, nil
}

// SignOut revokes all refresh tokens for the user, forcing every device
// to re-authenticate.
func (s *FirebaseIdentityService) SignOut(ctx context.Context, userID string) error {
	return s.authClient.RevokeRefreshTokens(ctx, userID)
}

// mapSignInError folds the Identity Toolkit error codes into the backend
// taxonomy. Wrong email and wrong password are reported identically.
func mapSignInError(status int, message string) error {
	switch {
	case strings.HasPrefix(message, "EMAIL_NOT_FOUND"),
		strings.HasPrefix(message, "INVALID_PASSWORD"),
		strings.HasPrefix(message, "INVALID_LOGIN_CREDENTIALS"),
		strings.HasPrefix(message, "USER_DISABLED"):
		return models.ErrInvalidCredentials
	case status >= 500:
		return models.ErrUnavailable
	}
	return fmt.Errorf("firebase sign-in failed: %s", message)
}

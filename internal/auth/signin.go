package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const identityToolkitURL = "https://identitytoolkit.googleapis.com/v1"

// Login failures, each with the message shown on the login screen.
var (
	ErrInvalidCredentials = errors.New("Invalid email or password.")
	ErrTooManyAttempts    = errors.New("Too many attempts. Please try again later.")
	ErrSignInFailed       = errors.New("Failed to sign in. Please check your connection.")
)

// Session is a successful password sign-in.
type Session struct {
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    string `json:"expiresIn"`
	UID          string `json:"localId"`
	Email        string `json:"email"`
}

// SignInClient signs users in with email and password through the Identity
// Toolkit REST API.
type SignInClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewSignInClient(apiKey string) *SignInClient {
	return &SignInClient{
		apiKey:  apiKey,
		baseURL: identityToolkitURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// WithBaseURL points the client at another endpoint, such as the emulator.
func (s *SignInClient) WithBaseURL(baseURL string) *SignInClient {
	s.baseURL = strings.TrimRight(baseURL, "/")
	return s
}

type signInRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type signInError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// SignIn returns one of ErrInvalidCredentials, ErrTooManyAttempts or
// ErrSignInFailed on failure, wrapping the provider's reason.
func (s *SignInClient) SignIn(ctx context.Context, email, password string) (*Session, error) {
	if s.apiKey == "" {
		return nil, fmt.Errorf("%w: FIREBASE_WEB_API_KEY is not set", ErrSignInFailed)
	}

	jsonData, err := json.Marshal(signInRequest{Email: email, Password: password, ReturnSecureToken: true})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to marshal request: %v", ErrSignInFailed, err)
	}

	url := fmt.Sprintf("%s/accounts:signInWithPassword?key=%s", s.baseURL, s.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrSignInFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSignInFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", ErrSignInFailed, err)
	}

	if resp.StatusCode != http.StatusOK {
		var e signInError
		_ = json.Unmarshal(body, &e)
		return nil, fmt.Errorf("%w: %s", classifySignInError(e.Error.Message), e.Error.Message)
	}

	var session Session
	if err := json.Unmarshal(body, &session); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrSignInFailed, err)
	}
	return &session, nil
}

// classifySignInError maps provider reason codes to login failures.
func classifySignInError(reason string) error {
	code := reason
	if i := strings.IndexAny(code, " :"); i >= 0 {
		code = code[:i]
	}
	switch code {
	case "INVALID_LOGIN_CREDENTIALS", "INVALID_PASSWORD", "EMAIL_NOT_FOUND", "INVALID_EMAIL", "USER_DISABLED":
		return ErrInvalidCredentials
	case "TOO_MANY_ATTEMPTS_TRY_LATER":
		return ErrTooManyAttempts
	default:
		return ErrSignInFailed
	}
}

// LoginMessage is the user-facing text for a SignIn error.
func LoginMessage(err error) string {
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return ErrInvalidCredentials.Error()
	case errors.Is(err, ErrTooManyAttempts):
		return ErrTooManyAttempts.Error()
	default:
		return ErrSignInFailed.Error()
	}
}

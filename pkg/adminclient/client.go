// Package adminclient is the console-side counterpart of the auth service:
// it logs in, stores the bearer token, and gates protected views through a
// fail-closed verification round trip.
package adminclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

const defaultVerifyTimeout = 10 * time.Second

// ErrInvalidCredentials is returned by Login when the server rejects the
// email/password pair.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AdminInfo mirrors the admin object returned by the service.
type AdminInfo struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	Role  string `json:"role,omitempty"`
}

// Client talks to the auth service and owns the local session state.
type Client struct {
	baseURL       string
	httpClient    *http.Client
	store         TokenStore
	verifyTimeout time.Duration
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient overrides the transport.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithVerifyTimeout overrides the verification round-trip timeout. A timeout
// counts as a verification failure.
func WithVerifyTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.verifyTimeout = d
		}
	}
}

// New builds a client against the service base URL.
func New(baseURL string, store TokenStore, opts ...Option) *Client {
	c := &Client{
		baseURL:       baseURL,
		httpClient:    &http.Client{},
		store:         store,
		verifyTimeout: defaultVerifyTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Success bool      `json:"success"`
	Token   string    `json:"token"`
	Admin   AdminInfo `json:"admin"`
	Message string    `json:"message"`
}

// Login authenticates and persists the returned token and email in the
// store. The password is not retained client-side.
func (c *Client) Login(ctx context.Context, email, password string) (*AdminInfo, error) {
	payload, err := json.Marshal(loginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/admin/login", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var body loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}

	switch {
	case resp.StatusCode == http.StatusOK && body.Token != "":
		c.store.Save(body.Token, body.Admin.Email)
		admin := body.Admin
		return &admin, nil
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, ErrInvalidCredentials
	default:
		return nil, fmt.Errorf("login failed: %s", body.Message)
	}
}

// Logout erases the local session state. The token string itself stays valid
// until it expires; the server keeps no record to invalidate.
func (c *Client) Logout() {
	c.store.Clear()
}

package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"storefront/internal/model"
)

// ErrMalformedLogin is returned when a login or register response decodes
// but is missing the token or the user record.
var ErrMalformedLogin = errors.New("malformed login response from backend")

// AuthAPI wraps the authentication endpoints.
type AuthAPI struct {
	client *Client
}

// NewAuthAPI creates an AuthAPI on top of the authenticated client.
func NewAuthAPI(client *Client) *AuthAPI {
	return &AuthAPI{client: client}
}

// Login exchanges credentials for a user record and a bearer token.
func (a *AuthAPI) Login(ctx context.Context, creds model.Credentials) (*model.LoginResponse, error) {
	body, err := a.client.Post(ctx, "/auth/login", creds)
	if err != nil {
		return nil, err
	}
	return decodeLoginResponse(body)
}

// Register creates an account and returns the same payload as Login.
func (a *AuthAPI) Register(ctx context.Context, data model.RegisterData) (*model.LoginResponse, error) {
	body, err := a.client.Post(ctx, "/auth/register", data)
	if err != nil {
		return nil, err
	}
	return decodeLoginResponse(body)
}

// Me fetches the current profile.
func (a *AuthAPI) Me(ctx context.Context) (*model.User, error) {
	body, err := a.client.Get(ctx, "/auth/me", nil)
	if err != nil {
		return nil, err
	}
	var user model.User
	if err := json.Unmarshal(unwrapData(body), &user); err != nil {
		return nil, fmt.Errorf("failed to decode profile: %w", err)
	}
	return &user, nil
}

func decodeLoginResponse(body []byte) (*model.LoginResponse, error) {
	var resp model.LoginResponse
	if err := json.Unmarshal(unwrapData(body), &resp); err != nil {
		return nil, fmt.Errorf("failed to decode login response: %w", err)
	}
	// A session is never half-populated: reject responses missing either part.
	if resp.AccessToken == "" || resp.User.ID == 0 {
		return nil, ErrMalformedLogin
	}
	return &resp, nil
}

// Copyright 2026 The Taskboard Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/taskboard-foundation/taskboard/lib/schema"
	"github.com/taskboard-foundation/taskboard/lib/secret"
)

// loginRequest is the JSON body for POST users/login.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates with email and password. On success the issued
// token and username are persisted into the session store, so
// subsequent requests from this client (and future processes sharing
// the session file) carry the bearer token.
//
// The password buffer is read but not closed — the caller retains
// ownership. Login responses are never cached.
func (c *Client) Login(ctx context.Context, email string, password *secret.Buffer) (*schema.AuthResponse, error) {
	if email == "" {
		return nil, &ValidationError{Field: "email", Reason: "required for login"}
	}
	if password == nil || password.Len() == 0 {
		return nil, &ValidationError{Field: "password", Reason: "required for login"}
	}

	// The password is converted to string at the JSON boundary; the
	// heap copy is short-lived.
	var auth schema.AuthResponse
	err := c.doJSON(ctx, http.MethodPost, "users/login", nil, loginRequest{
		Email:    email,
		Password: password.String(),
	}, &auth)
	if err != nil {
		return nil, fmt.Errorf("api: login: %w", err)
	}
	if auth.Token == "" {
		return nil, fmt.Errorf("api: login response carried no token")
	}

	if err := c.session.Set(auth.Token, auth.User.Username); err != nil {
		return nil, fmt.Errorf("api: persisting session: %w", err)
	}

	c.logger.Info("logged in", "username", auth.User.Username)
	return &auth, nil
}

// CreateAccountRequest holds the fields for registration. Username,
// Email, and Password are required; the rest are optional profile
// data.
type CreateAccountRequest struct {
	Username          string
	Email             string
	Password          *secret.Buffer
	ProfilePictureURL string
	TeamID            int
}

// CreateAccount registers a new user. On success the issued token and
// username are persisted exactly as for Login, and every cached
// user-derived query is invalidated.
func (c *Client) CreateAccount(ctx context.Context, request CreateAccountRequest) (*schema.AuthResponse, error) {
	if request.Username == "" {
		return nil, &ValidationError{Field: "username", Reason: "required for account creation"}
	}
	if request.Email == "" {
		return nil, &ValidationError{Field: "email", Reason: "required for account creation"}
	}
	if request.Password == nil || request.Password.Len() == 0 {
		return nil, &ValidationError{Field: "password", Reason: "required for account creation"}
	}

	var auth schema.AuthResponse
	err := c.doJSON(ctx, http.MethodPost, "users", nil, schema.User{
		Username:          request.Username,
		Email:             request.Email,
		Password:          request.Password.String(),
		ProfilePictureURL: request.ProfilePictureURL,
		TeamID:            request.TeamID,
	}, &auth)
	if err != nil {
		return nil, fmt.Errorf("api: create account: %w", err)
	}
	if auth.Token == "" {
		return nil, fmt.Errorf("api: create account response carried no token")
	}

	c.cache.Invalidate(usersTag())

	if err := c.session.Set(auth.Token, auth.User.Username); err != nil {
		return nil, fmt.Errorf("api: persisting session: %w", err)
	}

	c.logger.Info("created account", "username", auth.User.Username)
	return &auth, nil
}

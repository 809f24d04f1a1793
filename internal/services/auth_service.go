// auth_service.go
//
// A multi-tenant CRM data service for customers, deals and tasks
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of jam-build-crm.
// jam-build-crm is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// jam-build-crm is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with jam-build-crm.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	authorizer "github.com/localnerve/authorizer-go"
	"github.com/localnerve/jam-build-crm/internal/config"
	"github.com/localnerve/jam-build-crm/internal/utils"
	"github.com/sirupsen/logrus"
)

// SessionCookie is the cookie Authorizer sets for a signed-in browser
const SessionCookie = "cookie_session"

// SessionUser is the identity behind a valid session
type SessionUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// SessionProvider is the hosted identity service
type SessionProvider interface {
	ValidateSession(ctx context.Context, cookie string) (*SessionUser, error)
	Logout(ctx context.Context, cookie string) error
	ForgotPassword(ctx context.Context, email string) error
	UpdatePassword(ctx context.Context, cookie string, change PasswordChange) error
}

// PasswordChange is a signed-in user's request to replace their password
type PasswordChange struct {
	OldPassword        string `json:"old_password" validate:"required"`
	NewPassword        string `json:"new_password" validate:"required,min=6"`
	ConfirmNewPassword string `json:"confirm_new_password" validate:"required,eqfield=NewPassword"`
}

// Validate reports a missing field or a confirmation that does not match
func (in PasswordChange) Validate() error {
	return validateStruct(in)
}

// AuthorizerProvider talks to Authorizer. The client is created on first use
// so the server can start before Authorizer is reachable.
type AuthorizerProvider struct {
	cfg *config.Config

	mu     sync.Mutex
	client *authorizer.AuthorizerClient
}

// NewAuthorizerProvider returns a provider for the configured Authorizer
func NewAuthorizerProvider(cfg *config.Config) *AuthorizerProvider {
	return &AuthorizerProvider{cfg: cfg}
}

// Initialized reports whether the Authorizer client has been created
func (p *AuthorizerProvider) Initialized() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.client != nil
}

func (p *AuthorizerProvider) getClient(ctx context.Context) (*authorizer.AuthorizerClient, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.client != nil {
		return p.client, nil
	}

	// Ping the Authorizer service first
	if err := utils.PingAuthorizer(ctx, p.cfg.AuthzURL); err != nil {
		return nil, fmt.Errorf("authorizer ping failed: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"authorizer_url": p.cfg.AuthzURL,
		"client_id":      p.cfg.AuthzClientID,
		"redirect_url":   p.cfg.AppURL,
	}).Info("Initializing Authorizer")

	client, err := authorizer.NewAuthorizerClient(p.cfg.AuthzClientID, p.cfg.AuthzURL, p.cfg.AppURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create authorizer client: %w", err)
	}
	p.client = client
	return client, nil
}

// ValidateSession validates a session cookie and returns its user
func (p *AuthorizerProvider) ValidateSession(ctx context.Context, cookie string) (*SessionUser, error) {
	client, err := p.getClient(ctx)
	if err != nil {
		return nil, err
	}

	res, err := client.ValidateSession(&authorizer.ValidateSessionInput{
		Cookie: cookie,
	})
	if err != nil {
		return nil, fmt.Errorf("session validation failed: %w", err)
	}
	if res == nil || !res.IsValid || res.User == nil {
		return nil, fmt.Errorf("session is not valid")
	}

	// Decode through JSON so only id and email are relied on
	raw, err := json.Marshal(res.User)
	if err != nil {
		return nil, fmt.Errorf("failed to read session user: %w", err)
	}
	var user SessionUser
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil, fmt.Errorf("failed to read session user: %w", err)
	}
	if user.ID == "" {
		return nil, fmt.Errorf("session has no user id")
	}
	return &user, nil
}

// Logout ends the session identified by cookie
func (p *AuthorizerProvider) Logout(ctx context.Context, cookie string) error {
	client, err := p.getClient(ctx)
	if err != nil {
		return err
	}

	if _, err := client.Logout(map[string]string{
		"Cookie": SessionCookie + "=" + cookie,
	}); err != nil {
		return fmt.Errorf("logout failed: %w", err)
	}
	return nil
}

// ForgotPassword asks Authorizer to send a password reset e-mail
func (p *AuthorizerProvider) ForgotPassword(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if err := validateStruct(struct {
		Email string `json:"email" validate:"required,email"`
	}{email}); err != nil {
		return err
	}

	client, err := p.getClient(ctx)
	if err != nil {
		return err
	}

	if _, err := client.ForgotPassword(&authorizer.ForgotPasswordInput{
		Email: email,
	}); err != nil {
		return fmt.Errorf("password reset failed: %w", err)
	}
	return nil
}

// UpdatePassword changes the password of the user signed in with cookie
func (p *AuthorizerProvider) UpdatePassword(ctx context.Context, cookie string, change PasswordChange) error {
	if err := change.Validate(); err != nil {
		return err
	}

	client, err := p.getClient(ctx)
	if err != nil {
		return err
	}

	if _, err := client.UpdateProfile(&authorizer.UpdateProfileInput{
		OldPassword:        &change.OldPassword,
		NewPassword:        &change.NewPassword,
		ConfirmNewPassword: &change.ConfirmNewPassword,
	}, map[string]string{
		"Cookie": SessionCookie + "=" + cookie,
	}); err != nil {
		return fmt.Errorf("password update failed: %w", err)
	}
	return nil
}

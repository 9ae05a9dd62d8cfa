package controller

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"appdownloader/internal/api"
	"appdownloader/internal/models"
	"appdownloader/internal/session"
)

const (
	msgInvalidCredentials = "Invalid credentials"
	msgLoginFailed        = "Login failed. Please try again later."
	msgMissingCredentials = "Username and password are required"
	msgSignupSucceeded    = "Signup successful. Please login."
	msgSignupFailed       = "Signup failed. Please try again."
)

// RestoreSession resolves the initial state from the session store. A stored session is
// re-validated with a profile fetch; if the service refuses it the session is cleared,
// LoginForm is shown and an error wrapping ErrSessionRejected is returned.
func (c *Controller) RestoreSession(ctx context.Context) error {
	token, identity, err := c.store.Load()
	if err != nil {
		if !errors.Is(err, session.ErrNoSession) {
			c.log.Sugar().Warnf("Discarding stored session: %s", err)
			c.clearSession()
		}
		c.showForm(ViewLoginForm)
		return nil
	}

	c.token = token
	c.identity = &identity
	if err := c.RefreshProfile(ctx); err != nil {
		c.clearSession()
		c.showForm(ViewLoginForm)
		return fmt.Errorf("%w: %v", ErrSessionRejected, err)
	}

	if err := c.Home(ctx); err != nil {
		c.log.Sugar().Errorf("Failed to load home view: %s", err)
	}
	return nil
}

// Login authenticates with the remote service. On success the session is persisted and the
// role home view is shown; on failure the controller stays on LoginForm with no identity.
func (c *Controller) Login(ctx context.Context, username, password string) error {
	if c.identity != nil {
		return ErrAlreadyAuthenticated
	}
	if strings.TrimSpace(username) == "" || password == "" {
		c.notify(LevelError, msgMissingCredentials)
		return ErrMissingCredentials
	}

	resp, err := c.api.Login(ctx, username, password)
	if err != nil {
		c.log.Sugar().Errorf("Login error: %s", err)
		var statusErr *api.StatusError
		if errors.As(err, &statusErr) {
			c.notify(LevelError, msgInvalidCredentials)
		} else {
			c.notify(LevelError, msgLoginFailed)
		}
		c.showForm(ViewLoginForm)
		return err
	}

	identity := models.NewIdentity(resp.User)
	c.token = resp.Token
	c.identity = &identity
	c.persist()

	if err := c.Home(ctx); err != nil {
		c.log.Sugar().Errorf("Failed to load home view: %s", err)
	}
	return nil
}

// Signup creates a non-staff account and returns to LoginForm with a confirmation.
// On failure the controller stays on SignupForm.
func (c *Controller) Signup(ctx context.Context, username, password string) error {
	if c.identity != nil {
		return ErrAlreadyAuthenticated
	}
	if strings.TrimSpace(username) == "" || password == "" {
		c.notify(LevelError, msgMissingCredentials)
		return ErrMissingCredentials
	}

	if err := c.api.Signup(ctx, username, password); err != nil {
		c.log.Sugar().Errorf("Signup error: %s", err)
		c.notify(LevelError, msgSignupFailed)
		c.showForm(ViewSignupForm)
		return err
	}

	c.notify(LevelInfo, msgSignupSucceeded)
	c.showForm(ViewLoginForm)
	return nil
}

// Logout forgets the session and shows LoginForm. It is safe to call when logged out.
func (c *Controller) Logout() {
	c.clearSession()
	c.showForm(ViewLoginForm)
}

// ShowLogin switches to LoginForm.
func (c *Controller) ShowLogin() error {
	if c.identity != nil {
		return ErrAlreadyAuthenticated
	}
	c.showForm(ViewLoginForm)
	return nil
}

// ShowSignup switches to SignupForm.
func (c *Controller) ShowSignup() error {
	if c.identity != nil {
		return ErrAlreadyAuthenticated
	}
	c.showForm(ViewSignupForm)
	return nil
}

// RefreshProfile fetches the profile and merges it into the identity, re-persisting it.
func (c *Controller) RefreshProfile(ctx context.Context) error {
	if err := c.requireSession(); err != nil {
		return err
	}
	profile, err := c.api.GetProfile(ctx, c.token)
	if err != nil {
		c.log.Sugar().Errorf("Error fetching user profile: %s", err)
		return err
	}
	c.identity.MergeProfile(*profile)
	c.persist()
	return nil
}

func (c *Controller) showForm(view View) {
	c.view = view
	c.render(Screen{})
}

func (c *Controller) clearSession() {
	c.token = ""
	c.identity = nil
	if err := c.store.Clear(); err != nil {
		c.log.Sugar().Errorf("Failed to clear session store: %s", err)
	}
}

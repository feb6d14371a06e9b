package backend

import (
	"context"

	"github.com/sbenmansour/cessiondesk/internal/app/models"
)

type signInPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signUpPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
}

// SignIn exchanges credentials for a token and stores the resulting
// session.
func (c *Client) SignIn(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	err := c.postPublicJSON(ctx, "/v1/auth/signin", signInPayload{Email: email, Password: password}, &resp)
	if err != nil {
		return nil, err
	}

	c.session.Set(resp.Token, &models.User{
		ID:       resp.ID,
		Email:    resp.Email,
		FullName: resp.FullName,
		Role:     resp.Role,
	})
	return &resp, nil
}

// SignUp registers a new operator account. The backend signs the new
// account in directly, so the session is stored like after SignIn.
func (c *Client) SignUp(ctx context.Context, email, password, fullName string) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	err := c.postPublicJSON(ctx, "/api/v1/auth/signup", signUpPayload{
		Email:    email,
		Password: password,
		FullName: fullName,
	}, &resp)
	if err != nil {
		return nil, err
	}

	if resp.Token != "" {
		c.session.Set(resp.Token, &models.User{
			ID:       resp.ID,
			Email:    resp.Email,
			FullName: resp.FullName,
			Role:     resp.Role,
		})
	}
	return &resp, nil
}

// Validate asks the backend whether the stored token is still good and
// refreshes the cached user profile. Any failure invalidates the
// stored session: a token the backend cannot vouch for is not kept.
// Auth rejections have already run the expiry protocol; other failures
// clear quietly, without a notification or redirect.
func (c *Client) Validate(ctx context.Context) (*models.User, error) {
	var resp models.ValidateResponse
	if err := c.getJSON(ctx, "/api/v1/auth/validate", nil, &resp); err != nil {
		c.session.Clear()
		c.cache.Flush()
		return nil, err
	}
	if resp.User != nil {
		c.session.Set(c.session.Token(), resp.User)
	}
	return resp.User, nil
}

// SignOut drops the session locally. The backend keeps no server-side
// session state to invalidate.
func (c *Client) SignOut() {
	c.session.Clear()
	c.cache.Flush()
}

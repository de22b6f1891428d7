package profile

import (
	"context"

	"github.com/healthtrack/healthtrack/internal/platform/rest"
)

// Client exposes the user profile endpoints of the backend.
type Client struct {
	api *rest.Client
}

func NewClient(api *rest.Client) *Client {
	return &Client{api: api}
}

func (c *Client) Me(ctx context.Context) (*User, error) {
	var u User
	if err := c.api.Get(ctx, "/api/users/me", nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// UpdateProfile patches the editable fields and returns the updated user.
func (c *Client) UpdateProfile(ctx context.Context, patch ProfilePatch) (*User, error) {
	var u User
	if err := c.api.Patch(ctx, "/api/users/me/profile", patch, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

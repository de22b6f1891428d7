package notification

import (
	"context"
	"fmt"
	"net/url"

	"github.com/google/uuid"

	"github.com/healthtrack/healthtrack/internal/platform/rest"
	"github.com/healthtrack/healthtrack/pkg/pagination"
)

// Client exposes the notification endpoints of the backend.
type Client struct {
	api *rest.Client
}

func NewClient(api *rest.Client) *Client {
	return &Client{api: api}
}

// Filter narrows a notification listing.
type Filter struct {
	UnreadOnly bool
	Page       pagination.Params
}

func (c *Client) List(ctx context.Context, f Filter) ([]Notification, int, error) {
	q := url.Values{}
	if f.UnreadOnly {
		q.Set("unread", "true")
	}
	var page pagination.Page[Notification]
	if err := c.api.Get(ctx, "/api/notifications", f.Page.Apply(q), &page); err != nil {
		return nil, 0, err
	}
	return page.Data, page.Total, nil
}

func (c *Client) Create(ctx context.Context, n *Notification) error {
	if n.Title == "" {
		return fmt.Errorf("title is required")
	}
	if n.Severity == "" {
		n.Severity = SeverityInfo
	}
	if !ValidSeverity(n.Severity) {
		return fmt.Errorf("invalid severity: %s", n.Severity)
	}
	return c.api.Post(ctx, "/api/notifications", n, n)
}

func (c *Client) Stats(ctx context.Context) (*Stats, error) {
	var stats Stats
	if err := c.api.Get(ctx, "/api/notifications/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// MarkRead flags the given notifications as read.
func (c *Client) MarkRead(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return fmt.Errorf("no notification ids given")
	}
	body := map[string][]uuid.UUID{"ids": ids}
	return c.api.Post(ctx, "/api/notifications/mark-read", body, nil)
}

func (c *Client) MarkAllRead(ctx context.Context) error {
	return c.api.Post(ctx, "/api/notifications/mark-all-read", nil, nil)
}

func (c *Client) Delete(ctx context.Context, id uuid.UUID) error {
	return c.api.Delete(ctx, "/api/notifications/"+id.String())
}

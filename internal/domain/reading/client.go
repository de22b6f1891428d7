package reading

import (
	"context"
	"fmt"
	"net/url"

	"github.com/healthtrack/healthtrack/internal/platform/rest"
	"github.com/healthtrack/healthtrack/pkg/pagination"
)

// Client exposes the health-reading endpoints of the backend.
type Client struct {
	api *rest.Client
}

func NewClient(api *rest.Client) *Client {
	return &Client{api: api}
}

// Filter narrows a reading listing.
type Filter struct {
	Type string
	Page pagination.Params
}

func (c *Client) List(ctx context.Context, f Filter) ([]Reading, int, error) {
	q := url.Values{}
	if f.Type != "" {
		if !ValidType(f.Type) {
			return nil, 0, fmt.Errorf("invalid reading type filter: %s", f.Type)
		}
		q.Set("type", f.Type)
	}
	var page pagination.Page[Reading]
	if err := c.api.Get(ctx, "/api/health_readings", f.Page.Apply(q), &page); err != nil {
		return nil, 0, err
	}
	return page.Data, page.Total, nil
}

func (c *Client) Create(ctx context.Context, r *Reading) error {
	if !ValidType(r.Type) {
		return fmt.Errorf("invalid reading type: %s", r.Type)
	}
	if r.Type == TypeBloodPressure {
		if r.Systolic == nil || r.Diastolic == nil {
			return fmt.Errorf("blood pressure requires systolic and diastolic values")
		}
	} else if r.Value == nil {
		return fmt.Errorf("value is required for %s", r.Type)
	}
	if r.Unit == "" {
		r.Unit = DefaultUnit(r.Type)
	}
	return c.api.Post(ctx, "/api/health_readings", r, r)
}

package medication

import (
	"context"
	"fmt"
	"net/url"

	"github.com/google/uuid"

	"github.com/healthtrack/healthtrack/internal/platform/rest"
	"github.com/healthtrack/healthtrack/pkg/pagination"
)

// Client exposes the medication endpoints of the backend.
type Client struct {
	api *rest.Client
}

func NewClient(api *rest.Client) *Client {
	return &Client{api: api}
}

// Filter narrows a medication listing.
type Filter struct {
	Status string
	Page   pagination.Params
}

func (c *Client) List(ctx context.Context, f Filter) ([]Medication, int, error) {
	q := url.Values{}
	if f.Status != "" {
		if !ValidStatus(f.Status) {
			return nil, 0, fmt.Errorf("invalid status filter: %s", f.Status)
		}
		q.Set("status", f.Status)
	}
	var page pagination.Page[Medication]
	if err := c.api.Get(ctx, "/api/medications", f.Page.Apply(q), &page); err != nil {
		return nil, 0, err
	}
	return page.Data, page.Total, nil
}

func (c *Client) Get(ctx context.Context, id uuid.UUID) (*Medication, error) {
	var m Medication
	if err := c.api.Get(ctx, "/api/medications/"+id.String(), nil, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (c *Client) Create(ctx context.Context, m *Medication) error {
	if err := validate(m); err != nil {
		return err
	}
	return c.api.Post(ctx, "/api/medications", m, m)
}

func (c *Client) Update(ctx context.Context, m *Medication) error {
	if m.ID == uuid.Nil {
		return fmt.Errorf("id is required")
	}
	if err := validate(m); err != nil {
		return err
	}
	return c.api.Put(ctx, "/api/medications/"+m.ID.String(), m, m)
}

func (c *Client) Delete(ctx context.Context, id uuid.UUID) error {
	return c.api.Delete(ctx, "/api/medications/"+id.String())
}

func validate(m *Medication) error {
	if m.Name == "" {
		return fmt.Errorf("name is required")
	}
	if m.Status == "" {
		m.Status = StatusActive
	}
	if !ValidStatus(m.Status) {
		return fmt.Errorf("invalid status: %s", m.Status)
	}
	if m.Frequency != "" && !ValidFrequency(m.Frequency) {
		return fmt.Errorf("invalid frequency: %s", m.Frequency)
	}
	return nil
}

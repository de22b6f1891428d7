package symptom

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/google/uuid"

	"github.com/healthtrack/healthtrack/internal/platform/rest"
	"github.com/healthtrack/healthtrack/pkg/pagination"
)

// Client exposes the symptom endpoints of the backend. Unlike the other
// resources these routes are not mounted under /api; the backend serves
// them at the root.
type Client struct {
	api *rest.Client
}

func NewClient(api *rest.Client) *Client {
	return &Client{api: api}
}

// Filter narrows a symptom listing.
type Filter struct {
	Severity string
	Page     pagination.Params
}

func (c *Client) List(ctx context.Context, f Filter) ([]Symptom, int, error) {
	q := url.Values{}
	if f.Severity != "" {
		if !ValidSeverity(f.Severity) {
			return nil, 0, fmt.Errorf("invalid severity filter: %s", f.Severity)
		}
		q.Set("severity", f.Severity)
	}
	var page pagination.Page[Symptom]
	if err := c.api.Get(ctx, "/symptoms", f.Page.Apply(q), &page); err != nil {
		return nil, 0, err
	}
	return page.Data, page.Total, nil
}

func (c *Client) Get(ctx context.Context, id uuid.UUID) (*Symptom, error) {
	var s Symptom
	if err := c.api.Get(ctx, "/symptoms/"+id.String(), nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *Client) Create(ctx context.Context, s *Symptom) error {
	if err := validate(s); err != nil {
		return err
	}
	return c.api.Post(ctx, "/symptoms", s, s)
}

func (c *Client) Update(ctx context.Context, s *Symptom) error {
	if s.ID == uuid.Nil {
		return fmt.Errorf("id is required")
	}
	if err := validate(s); err != nil {
		return err
	}
	return c.api.Put(ctx, "/symptoms/"+s.ID.String(), s, s)
}

func (c *Client) Delete(ctx context.Context, id uuid.UUID) error {
	return c.api.Delete(ctx, "/symptoms/"+id.String())
}

// StatsOverview fetches aggregate counts for the tracker header.
func (c *Client) StatsOverview(ctx context.Context) (*Stats, error) {
	var stats Stats
	if err := c.api.Get(ctx, "/symptoms/stats/overview", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// Recent lists symptoms logged within the past days.
func (c *Client) Recent(ctx context.Context, days int) ([]Symptom, error) {
	if days <= 0 {
		return nil, fmt.Errorf("days must be positive, got %d", days)
	}
	var items []Symptom
	if err := c.api.Get(ctx, "/symptoms/recent/"+strconv.Itoa(days), nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// BulkCreate logs several symptoms in one request and returns the created
// records.
func (c *Client) BulkCreate(ctx context.Context, symptoms []Symptom) ([]Symptom, error) {
	if len(symptoms) == 0 {
		return nil, fmt.Errorf("no symptoms to create")
	}
	for i := range symptoms {
		if err := validate(&symptoms[i]); err != nil {
			return nil, fmt.Errorf("symptom %d: %w", i, err)
		}
	}
	var created []Symptom
	if err := c.api.Post(ctx, "/symptoms/bulk", symptoms, &created); err != nil {
		return nil, err
	}
	return created, nil
}

func validate(s *Symptom) error {
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if s.Severity == "" {
		s.Severity = SeverityMild
	}
	if !ValidSeverity(s.Severity) {
		return fmt.Errorf("invalid severity: %s", s.Severity)
	}
	return nil
}

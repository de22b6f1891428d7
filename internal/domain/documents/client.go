package documents

import (
	"context"
	"fmt"
	"io"
	"net/url"

	"github.com/google/uuid"

	"github.com/healthtrack/healthtrack/internal/platform/rest"
	"github.com/healthtrack/healthtrack/pkg/pagination"
)

// Client exposes the document endpoints of the backend.
type Client struct {
	api *rest.Client
}

func NewClient(api *rest.Client) *Client {
	return &Client{api: api}
}

// Filter narrows a document listing.
type Filter struct {
	Type   string
	Status string
	Page   pagination.Params
}

func (f Filter) query() url.Values {
	q := url.Values{}
	if f.Type != "" {
		q.Set("type", f.Type)
	}
	if f.Status != "" {
		q.Set("status", f.Status)
	}
	return f.Page.Apply(q)
}

func (c *Client) List(ctx context.Context, f Filter) ([]Document, int, error) {
	var page pagination.Page[Document]
	if err := c.api.Get(ctx, "/api/documents", f.query(), &page); err != nil {
		return nil, 0, err
	}
	return page.Data, page.Total, nil
}

func (c *Client) Get(ctx context.Context, id uuid.UUID) (*Document, error) {
	var doc Document
	if err := c.api.Get(ctx, "/api/documents/"+id.String(), nil, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (c *Client) Create(ctx context.Context, doc *Document) error {
	if doc.Filename == "" {
		return fmt.Errorf("filename is required")
	}
	if doc.Type != "" && !ValidType(doc.Type) {
		return fmt.Errorf("invalid document type: %s", doc.Type)
	}
	return c.api.Post(ctx, "/api/documents", doc, doc)
}

// UpdateMetadata patches editable fields and returns the updated record.
func (c *Client) UpdateMetadata(ctx context.Context, id uuid.UUID, meta Metadata) (*Document, error) {
	if meta.Type != nil && !ValidType(*meta.Type) {
		return nil, fmt.Errorf("invalid document type: %s", *meta.Type)
	}
	var doc Document
	if err := c.api.Patch(ctx, "/api/documents/"+id.String()+"/metadata", meta, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (c *Client) Delete(ctx context.Context, id uuid.UUID) error {
	return c.api.Delete(ctx, "/api/documents/"+id.String())
}

// Upload sends the file as multipart form data. The backend extracts text
// and metadata asynchronously; the returned record starts in status pending.
func (c *Client) Upload(ctx context.Context, filename string, file io.Reader, docType string) (*Document, error) {
	if docType != "" && !ValidType(docType) {
		return nil, fmt.Errorf("invalid document type: %s", docType)
	}
	fields := map[string]string{}
	if docType != "" {
		fields["type"] = docType
	}
	var doc Document
	if err := c.api.PostMultipart(ctx, "/api/documents/upload", "file", filename, file, fields, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (c *Client) Search(ctx context.Context, queryText string, pg pagination.Params) ([]Document, int, error) {
	q := url.Values{}
	q.Set("q", queryText)
	var page pagination.Page[Document]
	if err := c.api.Get(ctx, "/api/documents/search", pg.Apply(q), &page); err != nil {
		return nil, 0, err
	}
	return page.Data, page.Total, nil
}

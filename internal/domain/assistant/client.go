// Package assistant wraps the natural-language query endpoint. The model
// runs server-side; this client only carries the question and the typed
// answer.
package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/healthtrack/healthtrack/internal/platform/rest"
)

// Query is the request body of POST /api/query.
type Query struct {
	Query string `json:"query"`
}

// SourceRef points at the record an answer was grounded on.
type SourceRef struct {
	Kind string    `json:"kind"`
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// Answer is the typed response of POST /api/query.
type Answer struct {
	Answer  string      `json:"answer"`
	Sources []SourceRef `json:"sources,omitempty"`
}

type Client struct {
	api *rest.Client
}

func NewClient(api *rest.Client) *Client {
	return &Client{api: api}
}

func (c *Client) Ask(ctx context.Context, question string) (*Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, fmt.Errorf("question is empty")
	}
	var ans Answer
	if err := c.api.Post(ctx, "/api/query", Query{Query: question}, &ans); err != nil {
		return nil, err
	}
	return &ans, nil
}

// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package cms is the HTTP client for the third-party headless CMS that
// serves all site content. The client is constructed once at startup and
// passed to every component that needs it — no ambient package-level
// instance. Calls are single attempts with no retry; callers convert
// failures into safe empty results.
package cms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Collections the site reads. The CMS addresses content by collection name.
const (
	CollectionPosts        = "blog-posts"
	CollectionHospitals    = "hospitals"
	CollectionTestimonials = "testimonials"
	CollectionTeam         = "team-members"
	CollectionFAQs         = "faqs"
	CollectionTreatments   = "treatment-costs"
)

// Record is one raw CMS item. Field names vary across collections and
// across editor versions, so records stay loosely typed until the mapping
// layer in mapping.go resolves them into typed structs.
type Record map[string]any

// Filter is one predicate in a content query.
type Filter struct {
	Field string `json:"field"`
	Op    string `json:"op"` // "eq", "contains", "hasSome"
	Value any    `json:"value"`
}

// QueryOptions parameterize a listing call.
type QueryOptions struct {
	Offset        int
	Limit         int
	SortField     string
	SortDirection string // "asc" or "desc"
	Filters       []Filter
}

// QueryResult is one page of records plus the collection's total count at
// the time of the call.
type QueryResult struct {
	Items      []Record `json:"items"`
	TotalCount int      `json:"totalCount"`
}

// Client talks to the CMS content API.
type Client struct {
	baseURL string
	apiKey  string
	siteID  string
	client  *http.Client
}

// New creates a CMS client for the given API base URL and credentials.
func New(baseURL, apiKey, siteID string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		siteID:  siteID,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// queryRequest is the wire shape of a content-listing call.
type queryRequest struct {
	Offset  int        `json:"offset"`
	Limit   int        `json:"limit"`
	Sort    *querySort `json:"sort,omitempty"`
	Filters []Filter   `json:"filters,omitempty"`
}

type querySort struct {
	Field     string `json:"field"`
	Direction string `json:"direction"`
}

// Query fetches one page of a collection. A non-2xx status or transport
// error is returned as-is; there is no retry or backoff.
func (c *Client) Query(ctx context.Context, collection string, opts QueryOptions) (*QueryResult, error) {
	if opts.Limit <= 0 {
		opts.Limit = 12
	}

	body := queryRequest{
		Offset:  opts.Offset,
		Limit:   opts.Limit,
		Filters: opts.Filters,
	}
	if opts.SortField != "" {
		dir := opts.SortDirection
		if dir == "" {
			dir = "asc"
		}
		body.Sort = &querySort{Field: opts.SortField, Direction: dir}
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("cms marshal query: %w", err)
	}

	url := fmt.Sprintf("%s/v1/collections/%s/query", c.baseURL, collection)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("cms request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("X-Site-ID", c.siteID)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cms http: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("cms read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cms API error (status %d) for %s", resp.StatusCode, collection)
	}

	var result QueryResult
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("cms unmarshal: %w", err)
	}
	return &result, nil
}

// FindBySlug fetches a single record by its slug field. Returns nil when
// no record matches.
func (c *Client) FindBySlug(ctx context.Context, collection, slug string) (Record, error) {
	result, err := c.Query(ctx, collection, QueryOptions{
		Limit:   1,
		Filters: []Filter{{Field: "slug", Op: "eq", Value: slug}},
	})
	if err != nil {
		return nil, err
	}
	if len(result.Items) == 0 {
		return nil, nil
	}
	return result.Items[0], nil
}

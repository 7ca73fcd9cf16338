// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package listing accumulates paged result sets from the content API.
// A Controller owns the offset bookkeeping for one listing view: it
// fetches sequentially (one page in flight at a time), appends pages to a
// running list in arrival order, and rebuilds the list from offset zero
// whenever the filter or sort key changes.
package listing

import (
	"context"
	"sync"

	"medivisor/internal/cms"
)

// DefaultPageSize is the page size used when none is configured.
const DefaultPageSize = 12

// Fetcher retrieves one page of records. internal/cms satisfies this via
// FetchCollection; tests substitute fakes.
type Fetcher func(ctx context.Context, opts cms.QueryOptions) (*cms.QueryResult, error)

// Controller tracks offset/cursor state for one listing. It has two
// states: idle and fetching. A LoadMore call while a fetch is in flight is
// dropped, not queued, which also guarantees pages apply in request order.
type Controller struct {
	fetch  Fetcher
	limit  int
	filter []cms.Filter
	sort   string
	dir    string

	mu       sync.Mutex
	fetching bool
	items    []cms.Record
	offset   int
	total    int
	hasMore  bool
	loaded   bool
	err      error
}

// Option configures a Controller at construction.
type Option func(*Controller)

// WithPageSize sets the page size.
func WithPageSize(n int) Option {
	return func(c *Controller) {
		if n > 0 {
			c.limit = n
		}
	}
}

// WithOffset starts the running list at a given offset instead of zero.
// Used by the load-more API endpoint, which serves one page per request.
func WithOffset(n int) Option {
	return func(c *Controller) {
		if n > 0 {
			c.offset = n
		}
	}
}

// WithSort sets the sort field and direction.
func WithSort(field, direction string) Option {
	return func(c *Controller) {
		c.sort = field
		c.dir = direction
	}
}

// WithFilter sets the initial filter predicates.
func WithFilter(filters ...cms.Filter) Option {
	return func(c *Controller) {
		c.filter = filters
	}
}

// New creates a Controller. Nothing is fetched until Load or LoadMore.
func New(fetch Fetcher, opts ...Option) *Controller {
	c := &Controller{
		fetch:   fetch,
		limit:   DefaultPageSize,
		hasMore: true,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load fetches the first page at the current offset, replacing any
// accumulated items.
func (c *Controller) Load(ctx context.Context) error {
	c.mu.Lock()
	if c.fetching {
		c.mu.Unlock()
		return nil
	}
	c.fetching = true
	c.items = nil
	c.loaded = false
	offset := c.offset
	opts := c.queryOptions(offset)
	c.mu.Unlock()

	return c.apply(c.fetch(ctx, opts))
}

// LoadMore fetches the next page and appends it. It is a no-op when a
// fetch is already in flight or when the collection is exhausted; it
// reports whether a fetch was actually issued.
func (c *Controller) LoadMore(ctx context.Context) (bool, error) {
	c.mu.Lock()
	if c.fetching || (c.loaded && !c.hasMore) {
		c.mu.Unlock()
		return false, nil
	}
	c.fetching = true
	opts := c.queryOptions(c.offset)
	c.mu.Unlock()

	return true, c.apply(c.fetch(ctx, opts))
}

// SetFilter replaces the filter predicates, discards the accumulated
// items, and refetches from offset zero.
func (c *Controller) SetFilter(ctx context.Context, filters ...cms.Filter) error {
	c.mu.Lock()
	c.filter = filters
	c.offset = 0
	c.mu.Unlock()
	return c.Load(ctx)
}

// SetSort replaces the sort key, discards the accumulated items, and
// refetches from offset zero.
func (c *Controller) SetSort(ctx context.Context, field, direction string) error {
	c.mu.Lock()
	c.sort = field
	c.dir = direction
	c.offset = 0
	c.mu.Unlock()
	return c.Load(ctx)
}

// apply folds a fetch result into the running state. On error the page is
// treated as empty and hasMore turns false; the error is kept for display
// but there is no automatic retry.
func (c *Controller) apply(result *cms.QueryResult, err error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.fetching = false
	c.loaded = true

	if err != nil {
		c.hasMore = false
		c.err = err
		return err
	}

	c.err = nil
	// Arrival order, no dedup: a record shifted across page boundaries by
	// a concurrent edit may appear twice. Accepted eventual-consistency gap.
	c.items = append(c.items, result.Items...)
	c.total = result.TotalCount
	// hasMore uses this page's total, which may drift if the collection
	// changes between pages. Not corrected.
	c.hasMore = c.offset+c.limit < result.TotalCount
	c.offset += c.limit
	return nil
}

func (c *Controller) queryOptions(offset int) cms.QueryOptions {
	return cms.QueryOptions{
		Offset:        offset,
		Limit:         c.limit,
		SortField:     c.sort,
		SortDirection: c.dir,
		Filters:       c.filter,
	}
}

// Items returns a snapshot of the running list.
func (c *Controller) Items() []cms.Record {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]cms.Record, len(c.items))
	copy(out, c.items)
	return out
}

// HasMore reports whether another page is expected.
func (c *Controller) HasMore() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hasMore
}

// TotalCount returns the collection total reported by the last page.
func (c *Controller) TotalCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.total
}

// Err returns the error from the most recent fetch, if any.
func (c *Controller) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// FetchCollection adapts a cms.Client collection to the Fetcher interface.
func FetchCollection(client *cms.Client, collection string) Fetcher {
	return func(ctx context.Context, opts cms.QueryOptions) (*cms.QueryResult, error) {
		return client.Query(ctx, collection, opts)
	}
}

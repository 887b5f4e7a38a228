// Package page provides a generic controller that decouples page-based
// data retrieval and navigation bookkeeping from any specific list view.
package page

import (
	"context"
	"sync"

	"github.com/pawansuthar6813/url-shortener/internal/model"
)

// DefaultSize is the page size used when none is configured.
const DefaultSize = 10

// FetchFunc retrieves one page from the backend.
type FetchFunc[T any] func(ctx context.Context, page, size int) (model.Page[T], error)

// State is a snapshot of the controller. Invariant:
// 0 <= CurrentPage < max(TotalPages, 1).
type State[T any] struct {
	Data          []T
	CurrentPage   int
	TotalPages    int
	TotalElements int64
	Loading       bool
	Error         string
}

// Controller tracks pagination state for one fetch function. It does not
// cache pages and does not guard against overlapping fetches: the last
// response to arrive wins, and callers are expected to hold navigation
// while Loading is true.
type Controller[T any] struct {
	fetch FetchFunc[T]
	size  int

	mu    sync.Mutex
	state State[T]
}

// Option customizes a Controller.
type Option func(page, size *int)

// WithInitialPage sets the page fetched first (default 0).
func WithInitialPage(p int) Option { return func(page, _ *int) { *page = p } }

// WithPageSize sets the page size (default 10).
func WithPageSize(s int) Option { return func(_, size *int) { *size = s } }

// NewController binds a controller to one fetch function.
func NewController[T any](fetch FetchFunc[T], opts ...Option) *Controller[T] {
	initial, size := 0, DefaultSize
	for _, o := range opts {
		o(&initial, &size)
	}
	if initial < 0 {
		initial = 0
	}
	if size <= 0 {
		size = DefaultSize
	}
	return &Controller[T]{fetch: fetch, size: size, state: State[T]{CurrentPage: initial}}
}

// State returns a snapshot of the current pagination state.
func (c *Controller[T]) State() State[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// FetchData fetches the current page with the configured size.
func (c *Controller[T]) FetchData(ctx context.Context) error {
	c.mu.Lock()
	p := c.state.CurrentPage
	c.mu.Unlock()
	return c.fetchAt(ctx, p)
}

// NextPage advances one page if not already on the last one.
func (c *Controller[T]) NextPage(ctx context.Context) error {
	c.mu.Lock()
	p, tp := c.state.CurrentPage, c.state.TotalPages
	c.mu.Unlock()
	if p >= tp-1 {
		return nil
	}
	return c.fetchAt(ctx, p+1)
}

// PrevPage steps back one page if not on the first one.
func (c *Controller[T]) PrevPage(ctx context.Context) error {
	c.mu.Lock()
	p := c.state.CurrentPage
	c.mu.Unlock()
	if p <= 0 {
		return nil
	}
	return c.fetchAt(ctx, p-1)
}

// GoToPage jumps to an absolute page. Out-of-range requests are a silent
// no-op, not an error.
func (c *Controller[T]) GoToPage(ctx context.Context, p int) error {
	c.mu.Lock()
	tp := c.state.TotalPages
	c.mu.Unlock()
	if p < 0 || p >= tp {
		return nil
	}
	return c.fetchAt(ctx, p)
}

// Refresh re-fetches the current page.
func (c *Controller[T]) Refresh(ctx context.Context) error { return c.FetchData(ctx) }

// fetchAt performs the fetch and applies the result. A failed fetch keeps
// the previous rows and records the error; Loading is cleared either way.
func (c *Controller[T]) fetchAt(ctx context.Context, page int) error {
	c.mu.Lock()
	c.state.Loading = true
	c.state.Error = ""
	c.mu.Unlock()

	res, err := c.fetch(ctx, page, c.size)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Loading = false
	if err != nil {
		c.state.Error = err.Error()
		return err
	}

	c.state.Data = res.Content
	// Non-paginated endpoints omit paging metadata; fall back to a single
	// page holding the whole response.
	c.state.CurrentPage = page
	if res.Number != 0 {
		c.state.CurrentPage = res.Number
	}
	c.state.TotalPages = res.TotalPages
	if c.state.TotalPages == 0 {
		c.state.TotalPages = 1
	}
	c.state.TotalElements = res.TotalElements
	if c.state.TotalElements == 0 {
		c.state.TotalElements = int64(len(res.Content))
	}
	return nil
}

// Package search keeps course filter state and refetches the course list
// after the filters have been quiet for a short delay.
package search

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/wolfeidau/coursekit/internal/lms"
)

// DefaultDelay is the quiet period before a fetch is issued.
const DefaultDelay = 300 * time.Millisecond

// FetchFunc loads the courses matching filters.
type FetchFunc func(ctx context.Context, filters lms.CourseFilters) ([]lms.Course, error)

// Result is delivered to the sink after every fetch. Filters are the ones the
// fetch was issued with.
type Result struct {
	Filters lms.CourseFilters
	Courses []lms.Course
	Err     error
}

// Sink receives fetch results. It is called from the goroutine that ran the
// fetch.
type Sink func(Result)

// Timer is a pending call that can be cancelled.
type Timer interface {
	Stop() bool
}

// AfterFuncFunc schedules f to run once after d.
type AfterFuncFunc func(d time.Duration, f func()) Timer

func realAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Option configures a Controller.
type Option func(*Controller)

// WithDelay overrides DefaultDelay.
func WithDelay(d time.Duration) Option {
	return func(c *Controller) {
		c.delay = d
	}
}

// WithAfterFunc replaces the timer source, mainly for tests.
func WithAfterFunc(fn AfterFuncFunc) Option {
	return func(c *Controller) {
		c.afterFunc = fn
	}
}

// Controller owns the filter state. Each change that alters a value restarts
// the quiet period; only the last change in a burst produces a fetch.
type Controller struct {
	fetch     FetchFunc
	sink      Sink
	delay     time.Duration
	afterFunc AfterFuncFunc

	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	filters lms.CourseFilters
	pending Timer
	gen     uint64
	closed  bool
}

// New creates a controller with empty filters sorted by lms.DefaultSort.
func New(fetch FetchFunc, sink Sink, opts ...Option) *Controller {
	c := &Controller{
		fetch:     fetch,
		sink:      sink,
		delay:     DefaultDelay,
		afterFunc: realAfterFunc,
		filters:   lms.CourseFilters{Sort: lms.DefaultSort},
	}
	c.ctx, c.cancel = context.WithCancel(context.Background())

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Filters returns the current filter state.
func (c *Controller) Filters() lms.CourseFilters {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filters
}

// Start fetches once with the current filters, without waiting for the
// quiet period. Later debounced fetches run under ctx.
func (c *Controller) Start(ctx context.Context) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.cancel()
	c.ctx, c.cancel = context.WithCancel(ctx)
	runCtx := c.ctx
	filters := c.filters
	c.mu.Unlock()

	c.run(runCtx, filters)
}

// SetQuery changes the free text search.
func (c *Controller) SetQuery(q string) {
	c.update(func(f *lms.CourseFilters) { f.Search = q })
}

// SetCategory changes the category filter. Zero means any category.
func (c *Controller) SetCategory(id int64) {
	c.update(func(f *lms.CourseFilters) { f.Category = id })
}

// SetDifficulty changes the difficulty filter. Empty means any difficulty.
func (c *Controller) SetDifficulty(d string) {
	c.update(func(f *lms.CourseFilters) { f.Difficulty = d })
}

// SetPriceRange changes both price bounds. Empty strings are unbounded.
func (c *Controller) SetPriceRange(minPrice, maxPrice string) {
	c.update(func(f *lms.CourseFilters) {
		f.MinPrice = minPrice
		f.MaxPrice = maxPrice
	})
}

// SetSort changes the sort key. Empty restores lms.DefaultSort.
func (c *Controller) SetSort(sort string) {
	if sort == "" {
		sort = lms.DefaultSort
	}
	c.update(func(f *lms.CourseFilters) { f.Sort = sort })
}

// Clear resets every filter and the sort, then schedules a fetch.
func (c *Controller) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.filters = lms.CourseFilters{Sort: lms.DefaultSort}
	c.scheduleLocked()
}

// Close cancels any pending fetch. Changes made afterwards are ignored.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	c.gen++
	if c.pending != nil {
		c.pending.Stop()
		c.pending = nil
	}
	c.cancel()
}

func (c *Controller) update(mutate func(*lms.CourseFilters)) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}

	next := c.filters
	mutate(&next)
	if next == c.filters {
		return
	}
	c.filters = next
	c.scheduleLocked()
}

func (c *Controller) scheduleLocked() {
	if c.pending != nil {
		c.pending.Stop()
	}
	c.gen++
	gen := c.gen
	c.pending = c.afterFunc(c.delay, func() { c.fire(gen) })
}

// fire runs when a quiet period ends. A timer that was superseded after it
// started firing finds a newer generation and does nothing.
func (c *Controller) fire(gen uint64) {
	c.mu.Lock()
	if c.closed || gen != c.gen {
		c.mu.Unlock()
		return
	}
	c.pending = nil
	runCtx := c.ctx
	filters := c.filters
	c.mu.Unlock()

	c.run(runCtx, filters)
}

func (c *Controller) run(ctx context.Context, filters lms.CourseFilters) {
	courses, err := c.fetch(ctx, filters)
	if err != nil {
		log.Debug().Err(err).Str("search", filters.Search).Msg("course search failed")
	}

	c.sink(Result{Filters: filters, Courses: courses, Err: err})
}

// Package catalog holds the client-side state of the listing site: the
// fetched property list and its filtered, searched or sorted view, the edit
// flow for a single property, and the details page with its reviews.
//
// The types here never touch a page. They publish State snapshots to
// subscribers and a presentation layer decides where the fragments go.
package catalog

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/aoideee/estate-listings/internal/data"
	"github.com/aoideee/estate-listings/internal/render"
)

// ErrStaleLoad is returned by Load when a newer load was issued while the
// request was in flight. The response is dropped and state is untouched.
var ErrStaleLoad = errors.New("catalog: load superseded by a newer request")

// Fetcher is the network collaborator for properties.
type Fetcher interface {
	ListProperties(ctx context.Context) ([]*data.Property, error)
	GetProperty(ctx context.Context, id string) (*data.Property, error)
	CreateProperty(ctx context.Context, in data.PropertyInput) (*data.Property, error)
	UpdateProperty(ctx context.Context, id string, in data.PropertyInput) (*data.Property, error)
	DeleteProperty(ctx context.Context, id string) error
}

// Peeker is implemented by fetchers that can read a property without the
// read counting as a view.
type Peeker interface {
	PeekProperty(ctx context.Context, id string) (*data.Property, error)
}

// peek reads one property through f, skipping the view count when f is a
// Peeker.
func peek(ctx context.Context, f Fetcher, id string) (*data.Property, error) {
	if p, ok := f.(Peeker); ok {
		return p.PeekProperty(ctx, id)
	}
	return f.GetProperty(ctx, id)
}

// Renderer turns the derived view into a fragment.
type Renderer interface {
	Listing(properties []*data.Property) render.Fragment
	Message(text string) render.Fragment
}

// Status is the state of a Catalog.
type Status int

const (
	StatusEmpty Status = iota
	StatusLoading
	StatusLoaded
	StatusFiltered
	StatusSearched
	StatusSorted
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusEmpty:
		return "empty"
	case StatusLoading:
		return "loading"
	case StatusLoaded:
		return "loaded"
	case StatusFiltered:
		return "filtered"
	case StatusSearched:
		return "searched"
	case StatusSorted:
		return "sorted"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// State is a snapshot published after every transition. View is a copy and
// may be kept by the subscriber.
type State struct {
	Status   Status
	View     []*data.Property
	Fragment render.Fragment
	Message  string // Set in StatusFailed
}

// Criteria selects properties from the source list. Zero values apply no
// constraint; the remaining fields combine with AND.
type Criteria struct {
	City         string // Case-insensitive substring
	Type         string
	Availability string
	MinPrice     float64
	MaxPrice     float64
	MinBedrooms  int
}

// Match reports whether p satisfies every set criterion. Price bounds are
// inclusive.
func (c Criteria) Match(p *data.Property) bool {
	if c.City != "" && !containsFold(p.City, c.City) {
		return false
	}
	if c.Type != "" && p.Type != c.Type {
		return false
	}
	if c.Availability != "" && p.Availability != c.Availability {
		return false
	}
	if c.MinPrice != 0 && p.Price < c.MinPrice {
		return false
	}
	if c.MaxPrice != 0 && p.Price > c.MaxPrice {
		return false
	}
	if c.MinBedrooms != 0 && p.Bedrooms < c.MinBedrooms {
		return false
	}
	return true
}

// SortKey names an ordering of the derived view.
type SortKey string

const (
	SortNewest    SortKey = "newest"
	SortOldest    SortKey = "oldest"
	SortPriceLow  SortKey = "price-low"
	SortPriceHigh SortKey = "price-high"
)

var comparators = map[SortKey]func(a, b *data.Property) int{
	SortNewest:    func(a, b *data.Property) int { return b.CreatedAt.Compare(a.CreatedAt) },
	SortOldest:    func(a, b *data.Property) int { return a.CreatedAt.Compare(b.CreatedAt) },
	SortPriceLow:  func(a, b *data.Property) int { return compareFloat(a.Price, b.Price) },
	SortPriceHigh: func(a, b *data.Property) int { return compareFloat(b.Price, a.Price) },
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Catalog owns the source list fetched from the API and the derived view
// shown to the user. Filter, Search and Sort only ever change the view;
// the source list is replaced wholesale by a successful Load.
type Catalog struct {
	fetcher  Fetcher
	renderer Renderer
	logger   *slog.Logger

	mu          sync.Mutex
	status      Status
	source      []*data.Property
	view        []*data.Property
	message     string
	fragment    render.Fragment
	loadSeq     uint64
	subscribers []func(State)
}

// New returns an empty Catalog. A nil logger discards log output.
func New(fetcher Fetcher, renderer Renderer, logger *slog.Logger) *Catalog {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Catalog{
		fetcher:  fetcher,
		renderer: renderer,
		logger:   logger.With(slog.String("component", "catalog")),
	}
}

// Subscribe registers fn to receive every State published from now on.
func (c *Catalog) Subscribe(fn func(State)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subscribers = append(c.subscribers, fn)
}

// State returns the current snapshot.
func (c *Catalog) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Source returns a copy of the source list.
func (c *Catalog) Source() []*data.Property {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.source)
}

func (c *Catalog) snapshotLocked() State {
	return State{
		Status:   c.status,
		View:     slices.Clone(c.view),
		Fragment: c.fragment,
		Message:  c.message,
	}
}

// publishLocked takes a snapshot and returns a func that hands it to the
// subscribers. The caller runs it after releasing the lock.
func (c *Catalog) publishLocked() func() State {
	state := c.snapshotLocked()
	subs := slices.Clone(c.subscribers)
	return func() State {
		for _, fn := range subs {
			fn(state)
		}
		return state
	}
}

// Load fetches the full list. On success both the source list and the view
// are replaced and rendered. On failure the catalog shows the listing error
// message and keeps its previous source list.
func (c *Catalog) Load(ctx context.Context) error {
	c.mu.Lock()
	c.loadSeq++
	seq := c.loadSeq
	c.status = StatusLoading
	c.message = ""
	publish := c.publishLocked()
	c.mu.Unlock()
	publish()

	properties, err := c.fetcher.ListProperties(ctx)

	c.mu.Lock()
	if seq != c.loadSeq {
		c.mu.Unlock()
		c.logger.Debug("discarding stale load", slog.Uint64("seq", seq))
		return ErrStaleLoad
	}
	if err != nil {
		c.status = StatusFailed
		c.message = render.ListingErrorMessage
		c.fragment = c.renderer.Message(render.ListingErrorMessage)
		publish = c.publishLocked()
		c.mu.Unlock()
		c.logger.Error("loading properties", slog.String("error", err.Error()))
		publish()
		return err
	}
	c.source = properties
	c.view = slices.Clone(properties)
	c.status = StatusLoaded
	publish = c.renderLocked()
	c.mu.Unlock()
	publish()
	return nil
}

// Filter recomputes the view from the source list, keeping the records that
// match every set criterion.
func (c *Catalog) Filter(criteria Criteria) State {
	c.mu.Lock()
	view := make([]*data.Property, 0, len(c.source))
	for _, p := range c.source {
		if criteria.Match(p) {
			view = append(view, p)
		}
	}
	c.view = view
	c.status = StatusFiltered
	publish := c.renderLocked()
	c.mu.Unlock()
	return publish()
}

// Search replaces the view with the source records whose title,
// description, city or address contain query, ignoring case. An empty query
// restores the full source list.
func (c *Catalog) Search(query string) State {
	c.mu.Lock()
	if query == "" {
		c.view = slices.Clone(c.source)
		c.status = StatusLoaded
	} else {
		view := make([]*data.Property, 0, len(c.source))
		for _, p := range c.source {
			if containsFold(p.Title, query) || containsFold(p.Description, query) ||
				containsFold(p.City, query) || containsFold(p.Address, query) {
				view = append(view, p)
			}
		}
		c.view = view
		c.status = StatusSearched
	}
	publish := c.renderLocked()
	c.mu.Unlock()
	return publish()
}

// Sort reorders the current view in place. Ties keep their relative order.
// An unknown key leaves the order as it is.
func (c *Catalog) Sort(key SortKey) State {
	c.mu.Lock()
	if cmp, ok := comparators[key]; ok {
		slices.SortStableFunc(c.view, cmp)
		c.status = StatusSorted
	}
	publish := c.renderLocked()
	c.mu.Unlock()
	return publish()
}

// Render re-renders the current view and publishes it.
func (c *Catalog) Render() State {
	c.mu.Lock()
	publish := c.renderLocked()
	c.mu.Unlock()
	return publish()
}

func (c *Catalog) renderLocked() func() State {
	c.message = ""
	c.fragment = c.renderer.Listing(c.view)
	return c.publishLocked()
}

// Create validates in locally, posts it and reloads the list. Validation
// failures are returned as data.ValidationErrors before any request is made.
func (c *Catalog) Create(ctx context.Context, in data.PropertyInput) (*data.Property, error) {
	if _, err := data.Validate(in, now()); err != nil {
		return nil, err
	}
	created, err := c.fetcher.CreateProperty(ctx, in)
	if err != nil {
		c.logger.Error("creating property", slog.String("error", err.Error()))
		return nil, err
	}
	if err := c.Load(ctx); err != nil && !errors.Is(err, ErrStaleLoad) {
		c.logger.Warn("reloading after create", slog.String("error", err.Error()))
	}
	return created, nil
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

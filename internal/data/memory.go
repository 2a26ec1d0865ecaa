package data

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"
)

// MemoryPropertyModel keeps listings in a map guarded by a mutex. It backs
// the "memory" driver used for local development and tests.
type MemoryPropertyModel struct {
	mu    sync.RWMutex
	items map[string]*Property
	order []string // Insertion order, used as the final tie-break
}

// NewMemoryPropertyModel returns an empty in-memory listing store.
func NewMemoryPropertyModel() *MemoryPropertyModel {
	return &MemoryPropertyModel{items: make(map[string]*Property)}
}

func cloneProperty(p *Property) *Property {
	c := *p
	c.Images = slices.Clone(p.Images)
	c.Amenities = slices.Clone(p.Amenities)
	if p.YearBuilt != nil {
		year := *p.YearBuilt
		c.YearBuilt = &year
	}
	return &c
}

// Insert assigns a new identifier to p and stores a copy of it.
func (m *MemoryPropertyModel) Insert(_ context.Context, p *Property) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	p.ID = uuid.NewString()
	m.items[p.ID] = cloneProperty(p)
	m.order = append(m.order, p.ID)
	return nil
}

// Get returns a copy of the listing with the given id.
func (m *MemoryPropertyModel) Get(_ context.Context, id string) (*Property, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.items[id]
	if !ok {
		return nil, ErrRecordNotFound
	}
	return cloneProperty(p), nil
}

// GetAll returns copies of every listing matching filters in the requested order.
func (m *MemoryPropertyModel) GetAll(_ context.Context, filters Filters) ([]*Property, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	properties := []*Property{}
	for _, id := range m.order {
		if p := m.items[id]; filters.matches(p) {
			properties = append(properties, cloneProperty(p))
		}
	}

	column, desc := filters.sortColumn(), filters.sortDirection() == "DESC"
	slices.SortStableFunc(properties, func(a, b *Property) int {
		var c int
		switch column {
		case "price":
			c = cmp.Compare(a.Price, b.Price)
		default:
			c = a.CreatedAt.Compare(b.CreatedAt)
		}
		if desc {
			return -c
		}
		return c
	})
	return properties, nil
}

// Update replaces the stored copy of p.
func (m *MemoryPropertyModel) Update(_ context.Context, p *Property) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.items[p.ID]; !ok {
		return ErrRecordNotFound
	}
	m.items[p.ID] = cloneProperty(p)
	return nil
}

// Delete removes the listing with the given id.
func (m *MemoryPropertyModel) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.items[id]; !ok {
		return ErrRecordNotFound
	}
	delete(m.items, id)
	m.order = slices.DeleteFunc(m.order, func(s string) bool { return s == id })
	return nil
}

// IncrementViews bumps the view counter by one without touching UpdatedAt.
func (m *MemoryPropertyModel) IncrementViews(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.items[id]
	if !ok {
		return ErrRecordNotFound
	}
	p.Views++
	return nil
}

// MemoryReviewModel keeps reviews in process memory.
type MemoryReviewModel struct {
	mu      sync.RWMutex
	reviews []*Review
}

// NewMemoryReviewModel returns an empty in-memory review store.
func NewMemoryReviewModel() *MemoryReviewModel {
	return &MemoryReviewModel{}
}

// Insert assigns a new identifier to r and stores a copy of it.
func (m *MemoryReviewModel) Insert(_ context.Context, r *Review) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	r.ID = uuid.NewString()
	c := *r
	m.reviews = append(m.reviews, &c)
	return nil
}

// GetForProperty returns the reviews of one listing, newest first.
func (m *MemoryReviewModel) GetForProperty(_ context.Context, propertyID string) ([]*Review, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	reviews := []*Review{}
	for i := len(m.reviews) - 1; i >= 0; i-- {
		if r := m.reviews[i]; r.PropertyID == propertyID {
			c := *r
			reviews = append(reviews, &c)
		}
	}
	slices.SortStableFunc(reviews, func(a, b *Review) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return reviews, nil
}

// internal/data/models.go
package data

import (
	"context"
	"database/sql"
	"errors"
	"slices"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/aoideee/estate-listings/internal/validator"
)

// ErrRecordNotFound is returned when a lookup finds no matching record.
var ErrRecordNotFound = errors.New("record not found")

// PropertyStore is the persistence contract for listings. The API server
// talks only to this interface, so PostgreSQL, MongoDB and the in-memory
// store are interchangeable.
type PropertyStore interface {
	Insert(ctx context.Context, p *Property) error
	Get(ctx context.Context, id string) (*Property, error)
	GetAll(ctx context.Context, filters Filters) ([]*Property, error)
	Update(ctx context.Context, p *Property) error
	Delete(ctx context.Context, id string) error
	IncrementViews(ctx context.Context, id string) error
}

// ReviewStore is the persistence contract for reviews.
type ReviewStore interface {
	Insert(ctx context.Context, r *Review) error
	GetForProperty(ctx context.Context, propertyID string) ([]*Review, error)
}

// Models groups the stores handed to the HTTP handlers.
type Models struct {
	Properties PropertyStore
	Reviews    ReviewStore
}

// NewModels wires the PostgreSQL stores to the given connection pool.
func NewModels(db *sql.DB) Models {
	return Models{
		Properties: PostgresPropertyModel{DB: db},
		Reviews:    PostgresReviewModel{DB: db},
	}
}

// NewMongoModels wires the MongoDB stores to the given database.
func NewMongoModels(db *mongo.Database) Models {
	return Models{
		Properties: MongoPropertyModel{Collection: db.Collection("properties")},
		Reviews:    MongoReviewModel{Collection: db.Collection("reviews")},
	}
}

// NewMemoryModels returns stores that keep everything in process memory.
func NewMemoryModels() Models {
	return Models{
		Properties: NewMemoryPropertyModel(),
		Reviews:    NewMemoryReviewModel(),
	}
}

// PropertySortSafeList holds the sort values GetAll accepts.
var PropertySortSafeList = []string{"created_at", "price", "-created_at", "-price"}

// Filters holds the optional list constraints read from the query string.
// Empty fields apply no constraint.
type Filters struct {
	Type         string
	Availability string
	Featured     *bool
	Sort         string   // Column name to sort by (prefix with "-" for DESC)
	SortSafeList []string // Allowed sort values
}

// sortColumn returns the validated column name, defaulting to created_at.
func (f Filters) sortColumn() string {
	if slices.Contains(f.SortSafeList, f.Sort) {
		return strings.TrimPrefix(f.Sort, "-")
	}
	return "created_at"
}

// sortDirection returns "ASC" or "DESC" based on the Sort prefix.
// The default ordering is newest first.
func (f Filters) sortDirection() string {
	if !slices.Contains(f.SortSafeList, f.Sort) || strings.HasPrefix(f.Sort, "-") {
		return "DESC"
	}
	return "ASC"
}

// matches reports whether p satisfies the equality constraints of f.
func (f Filters) matches(p *Property) bool {
	if f.Type != "" && p.Type != f.Type {
		return false
	}
	if f.Availability != "" && p.Availability != f.Availability {
		return false
	}
	if f.Featured != nil && p.Featured != *f.Featured {
		return false
	}
	return true
}

// ValidateFilters checks the query-string constraints of a list request.
func ValidateFilters(v *validator.Validator, f Filters) {
	if f.Type != "" {
		v.Check(validator.In(f.Type, PropertyTypes...), "type", f.Type+" is not a valid property type")
	}
	if f.Availability != "" {
		v.Check(validator.In(f.Availability, AvailabilityValues...), "availability", f.Availability+" is not a valid availability")
	}
	v.Check(validator.In(f.Sort, f.SortSafeList...), "sort", "invalid sort value")
}

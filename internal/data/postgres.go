package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// PostgresPropertyModel wraps a *sql.DB connection pool and stores listings
// in the "properties" table.
type PostgresPropertyModel struct {
	DB *sql.DB
}

const propertyColumns = `id, title, description, type, price, location, address, city, state, zip_code,
	bedrooms, bathrooms, area, images, amenities, year_built, parking, featured, availability, views,
	agent_name, agent_phone, agent_email, created_at, updated_at`

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanProperty(row rowScanner) (*Property, error) {
	var p Property
	var yearBuilt sql.NullInt64

	err := row.Scan(
		&p.ID,
		&p.Title,
		&p.Description,
		&p.Type,
		&p.Price,
		&p.Location,
		&p.Address,
		&p.City,
		&p.State,
		&p.ZipCode,
		&p.Bedrooms,
		&p.Bathrooms,
		&p.Area,
		pq.Array(&p.Images),
		pq.Array(&p.Amenities),
		&yearBuilt,
		&p.Parking,
		&p.Featured,
		&p.Availability,
		&p.Views,
		&p.Agent.Name,
		&p.Agent.Phone,
		&p.Agent.Email,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if yearBuilt.Valid {
		year := int(yearBuilt.Int64)
		p.YearBuilt = &year
	}
	if p.Images == nil {
		p.Images = []string{}
	}
	if p.Amenities == nil {
		p.Amenities = []string{}
	}
	return &p, nil
}

func nullYear(year *int) sql.NullInt64 {
	if year == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*year), Valid: true}
}

// Insert assigns a new identifier to p and adds it to the database.
func (m PostgresPropertyModel) Insert(ctx context.Context, p *Property) error {
	query := `
		INSERT INTO properties (id, title, description, type, price, location, address, city, state, zip_code,
			bedrooms, bathrooms, area, images, amenities, year_built, parking, featured, availability, views,
			agent_name, agent_phone, agent_email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20,
			$21, $22, $23, $24, $25)`

	p.ID = uuid.NewString()

	args := []any{
		p.ID, p.Title, p.Description, p.Type, p.Price, p.Location, p.Address, p.City, p.State, p.ZipCode,
		p.Bedrooms, p.Bathrooms, p.Area, pq.Array(p.Images), pq.Array(p.Amenities), nullYear(p.YearBuilt),
		p.Parking, p.Featured, p.Availability, p.Views,
		p.Agent.Name, p.Agent.Phone, p.Agent.Email, p.CreatedAt, p.UpdatedAt,
	}

	_, err := m.DB.ExecContext(ctx, query, args...)
	return err
}

// Get retrieves a single listing by id.
// Returns ErrRecordNotFound if no listing with the given id exists.
func (m PostgresPropertyModel) Get(ctx context.Context, id string) (*Property, error) {
	if uuid.Validate(id) != nil {
		return nil, ErrRecordNotFound
	}

	query := `SELECT ` + propertyColumns + ` FROM properties WHERE id = $1`

	p, err := scanProperty(m.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return p, nil
}

// GetAll returns every listing matching filters in the requested order.
func (m PostgresPropertyModel) GetAll(ctx context.Context, filters Filters) ([]*Property, error) {
	// Empty strings disable the equality checks; a NULL featured does the same.
	query := fmt.Sprintf(`
		SELECT %s
		FROM properties
		WHERE ($1 = '' OR type = $1)
		AND ($2 = '' OR availability = $2)
		AND ($3::boolean IS NULL OR featured = $3)
		ORDER BY %s %s, id ASC`, propertyColumns, filters.sortColumn(), filters.sortDirection())

	var featured sql.NullBool
	if filters.Featured != nil {
		featured = sql.NullBool{Bool: *filters.Featured, Valid: true}
	}

	rows, err := m.DB.QueryContext(ctx, query, filters.Type, filters.Availability, featured)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	properties := []*Property{}
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, err
		}
		properties = append(properties, p)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return properties, nil
}

// Update saves every mutable column of p. updated_at is taken from p, which
// Property.Apply has already refreshed.
func (m PostgresPropertyModel) Update(ctx context.Context, p *Property) error {
	query := `
		UPDATE properties
		SET title = $1, description = $2, type = $3, price = $4, location = $5, address = $6, city = $7,
			state = $8, zip_code = $9, bedrooms = $10, bathrooms = $11, area = $12, images = $13,
			amenities = $14, year_built = $15, parking = $16, featured = $17, availability = $18,
			agent_name = $19, agent_phone = $20, agent_email = $21, updated_at = $22
		WHERE id = $23`

	args := []any{
		p.Title, p.Description, p.Type, p.Price, p.Location, p.Address, p.City,
		p.State, p.ZipCode, p.Bedrooms, p.Bathrooms, p.Area, pq.Array(p.Images),
		pq.Array(p.Amenities), nullYear(p.YearBuilt), p.Parking, p.Featured, p.Availability,
		p.Agent.Name, p.Agent.Phone, p.Agent.Email, p.UpdatedAt,
		p.ID,
	}

	result, err := m.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	return requireOneRow(result)
}

// Delete removes the listing with the given id.
// Returns ErrRecordNotFound if no matching record exists.
func (m PostgresPropertyModel) Delete(ctx context.Context, id string) error {
	if uuid.Validate(id) != nil {
		return ErrRecordNotFound
	}

	result, err := m.DB.ExecContext(ctx, `DELETE FROM properties WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireOneRow(result)
}

// IncrementViews bumps the view counter by one without touching updated_at.
func (m PostgresPropertyModel) IncrementViews(ctx context.Context, id string) error {
	if uuid.Validate(id) != nil {
		return ErrRecordNotFound
	}

	result, err := m.DB.ExecContext(ctx, `UPDATE properties SET views = views + 1 WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireOneRow(result)
}

func requireOneRow(result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// PostgresReviewModel stores reviews in the "reviews" table.
type PostgresReviewModel struct {
	DB *sql.DB
}

// Insert assigns a new identifier to r and adds it to the database.
func (m PostgresReviewModel) Insert(ctx context.Context, r *Review) error {
	query := `
		INSERT INTO reviews (id, property_id, user_name, user_email, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	r.ID = uuid.NewString()
	_, err := m.DB.ExecContext(ctx, query, r.ID, r.PropertyID, r.UserName, r.UserEmail, r.Rating, r.Comment, r.CreatedAt)
	return err
}

// GetForProperty returns the reviews of one listing, newest first.
func (m PostgresReviewModel) GetForProperty(ctx context.Context, propertyID string) ([]*Review, error) {
	if uuid.Validate(propertyID) != nil {
		return []*Review{}, nil
	}

	query := `
		SELECT id, property_id, user_name, user_email, rating, comment, created_at
		FROM reviews
		WHERE property_id = $1
		ORDER BY created_at DESC, id ASC`

	rows, err := m.DB.QueryContext(ctx, query, propertyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviews := []*Review{}
	for rows.Next() {
		var r Review
		err := rows.Scan(&r.ID, &r.PropertyID, &r.UserName, &r.UserEmail, &r.Rating, &r.Comment, &r.CreatedAt)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, &r)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return reviews, nil
}

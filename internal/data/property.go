// Package data provides the data models, validation rules and storage logic
// for the listing site.
package data

import (
	"math"
	"time"
)

// Property types accepted by the type field.
const (
	TypeHouse     = "House"
	TypeApartment = "Apartment"
	TypeVilla     = "Villa"
	TypeCondo     = "Condo"
	TypeTownhouse = "Townhouse"
	TypeStudio    = "Studio"
	TypePenthouse = "Penthouse"
)

// Availability values accepted by the availability field.
const (
	AvailabilityAvailable = "Available"
	AvailabilitySold      = "Sold"
	AvailabilityRented    = "Rented"
	AvailabilityPending   = "Pending"
)

// PropertyTypes lists every accepted type in display order.
var PropertyTypes = []string{TypeHouse, TypeApartment, TypeVilla, TypeCondo, TypeTownhouse, TypeStudio, TypePenthouse}

// AvailabilityValues lists every accepted availability in display order.
var AvailabilityValues = []string{AvailabilityAvailable, AvailabilitySold, AvailabilityRented, AvailabilityPending}

// Agent is the contact sub-record attached to a listing.
type Agent struct {
	Name  string `json:"name" bson:"name"`
	Phone string `json:"phone" bson:"phone"`
	Email string `json:"email" bson:"email"` // Always stored lower-cased
}

// Property represents a single real-estate listing.
// The ID is assigned by the store on insert and never changes afterwards.
type Property struct {
	ID           string    `json:"_id" bson:"_id"`
	Title        string    `json:"title" bson:"title"`
	Description  string    `json:"description" bson:"description"`
	Type         string    `json:"type" bson:"type"`
	Price        float64   `json:"price" bson:"price"`
	Location     string    `json:"location" bson:"location"`
	Address      string    `json:"address" bson:"address"`
	City         string    `json:"city" bson:"city"`
	State        string    `json:"state" bson:"state"`
	ZipCode      string    `json:"zipCode" bson:"zipCode"`
	Bedrooms     int       `json:"bedrooms" bson:"bedrooms"`
	Bathrooms    float64   `json:"bathrooms" bson:"bathrooms"` // Halves allowed
	Area         float64   `json:"area" bson:"area"`           // Square feet
	Images       []string  `json:"images" bson:"images"`
	Amenities    []string  `json:"amenities" bson:"amenities"`
	YearBuilt    *int      `json:"yearBuilt,omitempty" bson:"yearBuilt,omitempty"`
	Parking      int       `json:"parking" bson:"parking"`
	Featured     bool      `json:"featured" bson:"featured"`
	Availability string    `json:"availability" bson:"availability"`
	Views        int64     `json:"views" bson:"views"`
	Agent        Agent     `json:"agent" bson:"agent"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt" bson:"updatedAt"`
}

// PricePerArea returns the price per square foot rounded to the nearest
// whole number, or 0 when the area is not positive.
func (p *Property) PricePerArea() int64 {
	if p.Area > 0 {
		return int64(math.Round(p.Price / p.Area))
	}
	return 0
}

// PropertyInput carries the client-supplied fields for a create or a
// partial update. Every field is a pointer so "not provided" (nil) can be
// told apart from "set to the zero value".
type PropertyInput struct {
	Title        *string     `json:"title"`
	Description  *string     `json:"description"`
	Type         *string     `json:"type"`
	Price        *float64    `json:"price"`
	Location     *string     `json:"location"`
	Address      *string     `json:"address"`
	City         *string     `json:"city"`
	State        *string     `json:"state"`
	ZipCode      *string     `json:"zipCode"`
	Bedrooms     *int        `json:"bedrooms"`
	Bathrooms    *float64    `json:"bathrooms"`
	Area         *float64    `json:"area"`
	Images       []string    `json:"images"`
	Amenities    []string    `json:"amenities"`
	YearBuilt    *int        `json:"yearBuilt"`
	Parking      *int        `json:"parking"`
	Featured     *bool       `json:"featured"`
	Availability *string     `json:"availability"`
	Agent        *AgentInput `json:"agent"`
}

// AgentInput is the optional agent contact block of a PropertyInput.
type AgentInput struct {
	Name  *string `json:"name"`
	Phone *string `json:"phone"`
	Email *string `json:"email"`
}

// Apply copies every supplied field of in onto p and refreshes UpdatedAt.
// The input is expected to have passed ValidatePatch already. UpdatedAt never
// moves behind CreatedAt, even if the clock does.
func (p *Property) Apply(in PropertyInput, now time.Time) {
	in = in.normalized()

	setString(&p.Title, in.Title)
	setString(&p.Description, in.Description)
	setString(&p.Type, in.Type)
	setString(&p.Location, in.Location)
	setString(&p.Address, in.Address)
	setString(&p.City, in.City)
	setString(&p.State, in.State)
	setString(&p.ZipCode, in.ZipCode)
	setString(&p.Availability, in.Availability)

	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.Bedrooms != nil {
		p.Bedrooms = *in.Bedrooms
	}
	if in.Bathrooms != nil {
		p.Bathrooms = *in.Bathrooms
	}
	if in.Area != nil {
		p.Area = *in.Area
	}
	if in.Images != nil {
		p.Images = in.Images
	}
	if in.Amenities != nil {
		p.Amenities = in.Amenities
	}
	if in.YearBuilt != nil {
		year := *in.YearBuilt
		p.YearBuilt = &year
	}
	if in.Parking != nil {
		p.Parking = *in.Parking
	}
	if in.Featured != nil {
		p.Featured = *in.Featured
	}
	if in.Agent != nil {
		setString(&p.Agent.Name, in.Agent.Name)
		setString(&p.Agent.Phone, in.Agent.Phone)
		setString(&p.Agent.Email, in.Agent.Email)
	}

	p.Touch(now)
}

// Touch refreshes UpdatedAt, keeping it at or after CreatedAt.
func (p *Property) Touch(now time.Time) {
	if now.Before(p.CreatedAt) {
		now = p.CreatedAt
	}
	p.UpdatedAt = now
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

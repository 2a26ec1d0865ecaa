package data

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/aoideee/estate-listings/internal/validator"
)

// fieldRule declares the constraints for one PropertyInput field. Validate
// and ValidatePatch walk the table in order, so the table is the single
// place where property validation is defined.
type fieldRule struct {
	field    string
	required string // Message when the field is absent or blank; empty means optional

	minLen, maxLen       int // Applied to trimmed strings when non-zero
	minLenMsg, maxLenMsg string

	min, max       *float64 // Inclusive numeric bounds
	minMsg, maxMsg string

	enum    []string // Exact, case-sensitive membership
	enumMsg string   // %s is replaced with the rejected value
}

func bound(f float64) *float64 { return &f }

// propertyRules returns the rule table. yearBuilt's upper bound moves with
// the calendar, so the table is built for a given instant.
func propertyRules(now time.Time) []fieldRule {
	return []fieldRule{
		{
			field:     "title",
			required:  "Property title is required",
			minLen:    5,
			minLenMsg: "Title must be at least 5 characters long",
			maxLen:    200,
			maxLenMsg: "Title cannot exceed 200 characters",
		},
		{
			field:     "description",
			required:  "Property description is required",
			minLen:    20,
			minLenMsg: "Description must be at least 20 characters long",
			maxLen:    2000,
			maxLenMsg: "Description cannot exceed 2000 characters",
		},
		{
			field:    "type",
			required: "Property type is required",
			enum:     PropertyTypes,
			enumMsg:  "%s is not a valid property type",
		},
		{
			field:    "price",
			required: "Price is required",
			min:      bound(0),
			minMsg:   "Price cannot be negative",
		},
		{
			field:    "location",
			required: "Location is required",
		},
		{
			field:    "bedrooms",
			required: "Number of bedrooms is required",
			min:      bound(0),
			minMsg:   "Bedrooms cannot be negative",
			max:      bound(50),
			maxMsg:   "Bedrooms cannot exceed 50",
		},
		{
			field:    "bathrooms",
			required: "Number of bathrooms is required",
			min:      bound(0),
			minMsg:   "Bathrooms cannot be negative",
			max:      bound(50),
			maxMsg:   "Bathrooms cannot exceed 50",
		},
		{
			field:    "area",
			required: "Property area is required",
			min:      bound(1),
			minMsg:   "Area must be at least 1 sqft",
		},
		{
			field:  "yearBuilt",
			min:    bound(1800),
			minMsg: "Year built must be after 1800",
			max:    bound(float64(now.Year() + 5)),
			maxMsg: "Year built cannot be too far in the future",
		},
		{
			field:  "parking",
			min:    bound(0),
			minMsg: "Parking spaces cannot be negative",
		},
		{
			field:   "availability",
			enum:    AvailabilityValues,
			enumMsg: "%s is not a valid availability",
		},
	}
}

// ValidationErrors is the list of field errors produced when a record is
// rejected at the boundary.
type ValidationErrors []validator.FieldError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, fe := range e {
		msgs[i] = fe.Message
	}
	return strings.Join(msgs, "; ")
}

// Validate checks a create request against the rule table. On success it
// returns a new Property with every unset optional field defaulted and both
// timestamps set to now. The ID is left for the store to assign.
func Validate(in PropertyInput, now time.Time) (*Property, error) {
	in = in.normalized()

	v := validator.New()
	checkRules(v, in.values(), propertyRules(now), true)
	checkAgentEmail(v, in)
	if !v.Valid() {
		return nil, ValidationErrors(v.Errors)
	}

	p := &Property{
		Images:       []string{},
		Amenities:    []string{},
		Availability: AvailabilityAvailable,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	p.Apply(in, now)
	return p, nil
}

// ValidatePatch checks only the fields supplied in a partial update.
func ValidatePatch(in PropertyInput, now time.Time) error {
	in = in.normalized()

	v := validator.New()
	checkRules(v, in.values(), propertyRules(now), false)
	checkAgentEmail(v, in)
	if !v.Valid() {
		return ValidationErrors(v.Errors)
	}
	return nil
}

func checkRules(v *validator.Validator, values map[string]any, rules []fieldRule, create bool) {
	for _, r := range rules {
		value, ok := values[r.field]
		if !ok {
			if create && r.required != "" {
				v.AddError(r.field, r.required)
			}
			continue
		}

		switch value := value.(type) {
		case string:
			if r.required != "" && value == "" {
				v.AddError(r.field, r.required)
				continue
			}
			length := len([]rune(value))
			if r.minLen > 0 {
				v.Check(length >= r.minLen, r.field, r.minLenMsg)
			}
			if r.maxLen > 0 {
				v.Check(length <= r.maxLen, r.field, r.maxLenMsg)
			}
			if r.enum != nil {
				v.Check(validator.In(value, r.enum...), r.field, fmt.Sprintf(r.enumMsg, value))
			}
		case float64:
			if math.IsNaN(value) || math.IsInf(value, 0) {
				v.AddError(r.field, fmt.Sprintf("%s must be a finite number", r.field))
				continue
			}
			if r.min != nil {
				v.Check(value >= *r.min, r.field, r.minMsg)
			}
			if r.max != nil {
				v.Check(value <= *r.max, r.field, r.maxMsg)
			}
		}
	}
}

func checkAgentEmail(v *validator.Validator, in PropertyInput) {
	if in.Agent == nil || in.Agent.Email == nil || *in.Agent.Email == "" {
		return
	}
	v.Check(validator.Matches(*in.Agent.Email, validator.EmailRX), "agent.email", "Agent email must be a valid email address")
}

// values flattens the supplied fields into the shape the rule table reads:
// strings stay strings, every number becomes a float64.
func (in PropertyInput) values() map[string]any {
	m := make(map[string]any)
	putString := func(key string, s *string) {
		if s != nil {
			m[key] = *s
		}
	}
	putString("title", in.Title)
	putString("description", in.Description)
	putString("type", in.Type)
	putString("location", in.Location)
	putString("address", in.Address)
	putString("city", in.City)
	putString("state", in.State)
	putString("zipCode", in.ZipCode)
	putString("availability", in.Availability)

	if in.Price != nil {
		m["price"] = *in.Price
	}
	if in.Bedrooms != nil {
		m["bedrooms"] = float64(*in.Bedrooms)
	}
	if in.Bathrooms != nil {
		m["bathrooms"] = *in.Bathrooms
	}
	if in.Area != nil {
		m["area"] = *in.Area
	}
	if in.YearBuilt != nil {
		m["yearBuilt"] = float64(*in.YearBuilt)
	}
	if in.Parking != nil {
		m["parking"] = float64(*in.Parking)
	}
	return m
}

// normalized returns a copy of in with strings trimmed, the agent email
// lower-cased, and blank or duplicate list entries dropped.
func (in PropertyInput) normalized() PropertyInput {
	out := in
	trim := func(s *string) *string {
		if s == nil {
			return nil
		}
		t := strings.TrimSpace(*s)
		return &t
	}

	out.Title = trim(in.Title)
	out.Location = trim(in.Location)
	out.Address = trim(in.Address)
	out.City = trim(in.City)
	out.State = trim(in.State)
	out.ZipCode = trim(in.ZipCode)
	out.Description = trim(in.Description)
	out.Type = trim(in.Type)
	out.Availability = trim(in.Availability)
	out.Images = cleanList(in.Images, false)
	out.Amenities = cleanList(in.Amenities, true)

	if in.Agent != nil {
		agent := AgentInput{
			Name:  trim(in.Agent.Name),
			Phone: trim(in.Agent.Phone),
			Email: trim(in.Agent.Email),
		}
		if agent.Email != nil {
			lower := strings.ToLower(*agent.Email)
			agent.Email = &lower
		}
		out.Agent = &agent
	}
	return out
}

// cleanList trims every entry and drops blanks. Images keep their order and
// duplicates; amenities behave like a set.
func cleanList(list []string, unique bool) []string {
	if list == nil {
		return nil
	}
	out := make([]string, 0, len(list))
	seen := make(map[string]bool, len(list))
	for _, item := range list {
		item = strings.TrimSpace(item)
		if item == "" || (unique && seen[item]) {
			continue
		}
		seen[item] = true
		out = append(out, item)
	}
	return out
}

// cmd/web/forms.go
// Conversions from posted forms and query strings to the request types the
// catalog package works with.
package main

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/aoideee/estate-listings/internal/catalog"
	"github.com/aoideee/estate-listings/internal/data"
)

// formString returns the trimmed value of key.
func formString(form url.Values, key string) string {
	return strings.TrimSpace(form.Get(key))
}

// formFloat parses key as a number, returning 0 when it is empty or
// malformed.
func formFloat(form url.Values, key string) float64 {
	f, err := strconv.ParseFloat(formString(form, key), 64)
	if err != nil {
		return 0
	}
	return f
}

func formInt(form url.Values, key string) int {
	return int(formFloat(form, key))
}

// formOptionalInt returns nil when key is empty or not a number.
func formOptionalInt(form url.Values, key string) *int {
	i, err := strconv.Atoi(formString(form, key))
	if err != nil {
		return nil
	}
	return &i
}

// availabilityFromStatus maps the add form's status choice onto the stored
// availability values. Listings for sale and for rent are both available.
func availabilityFromStatus(status string) string {
	if status == "Sold" {
		return data.AvailabilitySold
	}
	return data.AvailabilityAvailable
}

// splitList splits s on sep, trimming entries and dropping blank ones.
func splitList(s, sep string) []string {
	out := []string{}
	for _, part := range strings.Split(s, sep) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// propertyInputFromForm builds a create request from the add-property form.
// The location falls back from city to street address. Amenities are comma
// separated and image URLs one per line.
func propertyInputFromForm(form url.Values) data.PropertyInput {
	address := formString(form, "address")
	city := formString(form, "city")
	location := city
	if location == "" {
		location = address
	}

	title := formString(form, "title")
	description := formString(form, "description")
	typ := formString(form, "type")
	availability := availabilityFromStatus(formString(form, "status"))
	state := formString(form, "state")
	zip := formString(form, "zipCode")
	price := formFloat(form, "price")
	bedrooms := formInt(form, "bedrooms")
	bathrooms := formFloat(form, "bathrooms")
	area := formFloat(form, "area")
	parking := formInt(form, "parking")

	in := data.PropertyInput{
		Title:        &title,
		Description:  &description,
		Type:         &typ,
		Price:        &price,
		Availability: &availability,
		Address:      &address,
		City:         &city,
		State:        &state,
		ZipCode:      &zip,
		Location:     &location,
		Bedrooms:     &bedrooms,
		Bathrooms:    &bathrooms,
		Area:         &area,
		Parking:      &parking,
		YearBuilt:    formOptionalInt(form, "yearBuilt"),
		Amenities:    splitList(form.Get("amenities"), ","),
		Images:       splitList(form.Get("images"), "\n"),
	}

	name, phone, email := formString(form, "agentName"), formString(form, "agentPhone"), formString(form, "agentEmail")
	if name != "" || phone != "" || email != "" {
		in.Agent = &data.AgentInput{Name: &name, Phone: &phone, Email: &email}
	}
	return in
}

// editFormFromValues reads the fields managed by the edit form.
func editFormFromValues(form url.Values) catalog.Form {
	return catalog.Form{
		Title:        formString(form, "title"),
		Description:  formString(form, "description"),
		Price:        formFloat(form, "price"),
		Type:         formString(form, "type"),
		Availability: formString(form, "availability"),
		City:         formString(form, "city"),
		State:        formString(form, "state"),
		Bedrooms:     formInt(form, "bedrooms"),
		Bathrooms:    formFloat(form, "bathrooms"),
		Area:         formFloat(form, "area"),
	}
}

// criteriaFromQuery reads the listing filter controls. Blank or malformed
// numbers apply no constraint.
func criteriaFromQuery(qs url.Values) catalog.Criteria {
	return catalog.Criteria{
		City:         formString(qs, "city"),
		Type:         formString(qs, "propertyType"),
		Availability: formString(qs, "status"),
		MinPrice:     formFloat(qs, "minPrice"),
		MaxPrice:     formFloat(qs, "maxPrice"),
		MinBedrooms:  formInt(qs, "bedrooms"),
	}
}

// reviewInputFromForm reads the review form for propertyID.
func reviewInputFromForm(propertyID string, form url.Values) data.ReviewInput {
	return data.ReviewInput{
		PropertyID: propertyID,
		UserName:   formString(form, "userName"),
		UserEmail:  formString(form, "userEmail"),
		Rating:     formInt(form, "rating"),
		Comment:    formString(form, "comment"),
	}
}

// cmd/web/templates.go
// Page layouts. The fragments inside them come from internal/render.
package main

import (
	"fmt"
	"html/template"
	"net/url"
	"strconv"

	"github.com/aoideee/estate-listings/internal/catalog"
	"github.com/aoideee/estate-listings/internal/data"
	"github.com/aoideee/estate-listings/internal/render"
)

// templateData carries everything a page may show. Content and Reviews are
// fragments published by the state holders.
type templateData struct {
	Title       string
	Flash       string
	FlashError  bool
	Content     render.Fragment
	Reviews     render.Fragment
	Count       int
	ID          string
	Query       url.Values
	Form        catalog.Form
	Values      url.Values
	FieldErrors map[string]string
	Types       []string
	Statuses    []string
	SortKeys    []catalog.SortKey
}

func newTemplateData(title string) *templateData {
	return &templateData{
		Title:       title,
		Query:       url.Values{},
		Values:      url.Values{},
		FieldErrors: map[string]string{},
		Types:       data.PropertyTypes,
		Statuses:    data.AvailabilityValues,
		SortKeys:    []catalog.SortKey{catalog.SortNewest, catalog.SortOldest, catalog.SortPriceLow, catalog.SortPriceHigh},
	}
}

const baseTemplate = `{{define "base"}}<!DOCTYPE html>
<html lang="en">
<head>
	<meta charset="utf-8">
	<meta name="viewport" content="width=device-width, initial-scale=1">
	<title>{{.Title}} - Estate Listings</title>
</head>
<body>
	<nav class="navbar">
		<a href="/" class="logo">Estate Listings</a>
		<a href="/listings">Listings</a>
		<a href="/manage">Manage</a>
		<a href="/add-property">Add Property</a>
	</nav>
	<main class="container">{{with .Flash}}
		<div class="form-message {{if $.FlashError}}error{{else}}success{{end}}">{{.}}</div>{{end}}
		{{template "page" .}}
	</main>
</body>
</html>{{end}}

{{define "type-options"}}{{$selected := .Selected}}{{range .Options}}
	<option value="{{.}}"{{if eq . $selected}} selected{{end}}>{{.}}</option>{{end}}{{end}}
`

var pageTemplates = map[string]string{
	"home": `{{define "page"}}<section class="hero">
	<h1>Find your next home</h1>
	<form id="quickSearchForm" action="/listings" method="get">
		<input type="text" name="city" placeholder="City">
		<select name="propertyType"><option value="">Any type</option>{{template "type-options" (options .Types "")}}</select>
		<input type="number" name="maxPrice" placeholder="Max price" min="0">
		<input type="number" name="bedrooms" placeholder="Bedrooms" min="0">
		<button type="submit" class="btn btn-primary">Search</button>
	</form>
</section>
<section class="featured">
	<h2>Featured Properties</h2>
	{{if .Count}}{{.Content}}{{else}}<p>No properties available at the moment.</p>{{end}}
</section>{{end}}`,

	"listings": `{{define "page"}}<h1>Property Listings</h1>
<form id="searchForm" action="/listings" method="get">
	<input type="text" id="searchInput" name="q" value="{{.Query.Get "q"}}" placeholder="Search by title, description, city or address">
	<button type="submit" class="btn btn-primary">Search</button>
</form>
<form id="filterForm" action="/listings" method="get">
	<input type="text" name="city" value="{{.Query.Get "city"}}" placeholder="City">
	<select name="propertyType"><option value="">All types</option>{{template "type-options" (options .Types (.Query.Get "propertyType"))}}</select>
	<select name="status"><option value="">All statuses</option>{{template "type-options" (options .Statuses (.Query.Get "status"))}}</select>
	<input type="number" name="minPrice" value="{{.Query.Get "minPrice"}}" placeholder="Min price" min="0">
	<input type="number" name="maxPrice" value="{{.Query.Get "maxPrice"}}" placeholder="Max price" min="0">
	<input type="number" name="bedrooms" value="{{.Query.Get "bedrooms"}}" placeholder="Min bedrooms" min="0">
	<select name="sort"><option value="">Sort by</option>{{$sort := .Query.Get "sort"}}{{range .SortKeys}}
		<option value="{{.}}"{{if eq (print .) $sort}} selected{{end}}>{{.}}</option>{{end}}
	</select>
	<button type="submit" class="btn btn-primary">Apply</button>
	<a href="/listings" id="resetFilters" class="btn">Reset</a>
</form>
<p class="results-count">{{.Count}} properties</p>
<div id="propertiesContainer">{{.Content}}</div>{{end}}`,

	"details": `{{define "page"}}{{.Content}}{{if .ID}}
<section class="reviews-section">
	<h2>Reviews</h2>
	<div id="reviewsContainer">{{.Reviews}}</div>
	<form id="reviewForm" action="/property/{{.ID}}/reviews" method="post">
		<input type="text" name="userName" value="{{.Values.Get "userName"}}" placeholder="Your name" required>
		<input type="email" name="userEmail" value="{{.Values.Get "userEmail"}}" placeholder="Your email">
		<select name="rating">{{range $r := (seq 5)}}
			<option value="{{$r}}">{{stars $r}}</option>{{end}}
		</select>
		<textarea name="comment" rows="4" placeholder="Your review" required>{{.Values.Get "comment"}}</textarea>
		<button type="submit" class="btn btn-primary">Submit Review</button>
	</form>
</section>{{end}}{{end}}`,

	"manage": `{{define "page"}}<h1>Manage Properties</h1>
<div id="managementContainer">{{.Content}}</div>{{end}}`,

	"edit": `{{define "page"}}<h1>Edit Property</h1>
<form id="editPropertyForm" action="/manage/{{.ID}}/edit" method="post">
	<label>Property Title * <input type="text" name="title" value="{{.Form.Title}}" required></label>{{with .FieldErrors.title}}<span class="field-error">{{.}}</span>{{end}}
	<label>Description * <textarea name="description" rows="5" required>{{.Form.Description}}</textarea></label>{{with .FieldErrors.description}}<span class="field-error">{{.}}</span>{{end}}
	<label>Price ($) * <input type="number" name="price" value="{{num .Form.Price}}" step="any" required></label>{{with .FieldErrors.price}}<span class="field-error">{{.}}</span>{{end}}
	<label>Property Type * <select name="type" required>{{template "type-options" (options .Types .Form.Type)}}</select></label>
	<label>Availability * <select name="availability" required>{{template "type-options" (options .Statuses .Form.Availability)}}</select></label>
	<label>City <input type="text" name="city" value="{{.Form.City}}"></label>
	<label>State <input type="text" name="state" value="{{.Form.State}}"></label>
	<label>Bedrooms * <input type="number" name="bedrooms" value="{{.Form.Bedrooms}}" min="0" required></label>{{with .FieldErrors.bedrooms}}<span class="field-error">{{.}}</span>{{end}}
	<label>Bathrooms * <input type="number" name="bathrooms" value="{{num .Form.Bathrooms}}" min="0" step="0.5" required></label>{{with .FieldErrors.bathrooms}}<span class="field-error">{{.}}</span>{{end}}
	<label>Area (sq ft) * <input type="number" name="area" value="{{num .Form.Area}}" min="1" required></label>{{with .FieldErrors.area}}<span class="field-error">{{.}}</span>{{end}}
	<button type="submit" class="btn btn-primary">Save Changes</button>
	<a href="/manage" class="btn">Cancel</a>
</form>{{end}}`,

	"delete": `{{define "page"}}<h1>Delete Property</h1>
<p>Are you sure you want to delete this property?</p>
<form action="/manage/{{.ID}}/delete" method="post">
	<input type="hidden" name="confirm" value="yes">
	<button type="submit" class="btn btn-danger">Delete</button>
	<a href="/manage" class="btn">Cancel</a>
</form>{{end}}`,

	"add": `{{define "page"}}<h1>Add Property</h1>
<form id="addPropertyForm" action="/add-property" method="post">
	<label>Property Title * <input type="text" name="title" value="{{.Values.Get "title"}}" required></label>
	<label>Description * <textarea name="description" rows="5" required>{{.Values.Get "description"}}</textarea></label>
	<label>Property Type * <select name="type" required>{{template "type-options" (options .Types (.Values.Get "type"))}}</select></label>
	<label>Status * <select name="status" required>{{template "type-options" (options (statusChoices) (.Values.Get "status"))}}</select></label>
	<label>Price ($) * <input type="number" name="price" value="{{.Values.Get "price"}}" min="0" step="any" required></label>
	<label>Address <input type="text" name="address" value="{{.Values.Get "address"}}"></label>
	<label>City <input type="text" name="city" value="{{.Values.Get "city"}}"></label>
	<label>State <input type="text" name="state" value="{{.Values.Get "state"}}"></label>
	<label>ZIP Code <input type="text" name="zipCode" value="{{.Values.Get "zipCode"}}"></label>
	<label>Bedrooms * <input type="number" name="bedrooms" value="{{.Values.Get "bedrooms"}}" min="0" required></label>
	<label>Bathrooms * <input type="number" name="bathrooms" value="{{.Values.Get "bathrooms"}}" min="0" step="0.5" required></label>
	<label>Area (sq ft) * <input type="number" name="area" value="{{.Values.Get "area"}}" min="1" required></label>
	<label>Parking Spaces <input type="number" name="parking" value="{{.Values.Get "parking"}}" min="0"></label>
	<label>Year Built <input type="number" name="yearBuilt" value="{{.Values.Get "yearBuilt"}}"></label>
	<label>Features (comma separated) <input type="text" name="amenities" value="{{.Values.Get "amenities"}}"></label>
	<label>Image URLs (one per line) <textarea name="images" rows="3">{{.Values.Get "images"}}</textarea></label>
	<label>Agent Name <input type="text" name="agentName" value="{{.Values.Get "agentName"}}"></label>
	<label>Agent Phone <input type="text" name="agentPhone" value="{{.Values.Get "agentPhone"}}"></label>
	<label>Agent Email <input type="email" name="agentEmail" value="{{.Values.Get "agentEmail"}}"></label>
	<button type="submit" class="btn btn-primary">Add Property</button>
</form>{{end}}`,

	"error": `{{define "page"}}{{.Content}}{{end}}`,
}

// statusChoices are the status options offered on the add form.
var statusChoices = []string{"For Sale", "For Rent", "Sold"}

type selectOptions struct {
	Options  []string
	Selected string
}

var pageFuncs = template.FuncMap{
	"options": func(opts []string, selected string) selectOptions {
		return selectOptions{Options: opts, Selected: selected}
	},
	"statusChoices": func() []string { return statusChoices },
	"stars":         render.Stars,
	"num": func(f float64) string {
		return strconv.FormatFloat(f, 'f', -1, 64)
	},
	"seq": func(n int) []int {
		out := make([]int, n)
		for i := range out {
			out[i] = n - i
		}
		return out
	},
}

// newTemplateCache parses the layout once per page so each page can define
// its own "page" block.
func newTemplateCache() (map[string]*template.Template, error) {
	cache := make(map[string]*template.Template, len(pageTemplates))
	for name, src := range pageTemplates {
		ts, err := template.New(name).Funcs(pageFuncs).Parse(baseTemplate)
		if err != nil {
			return nil, err
		}
		ts, err = ts.Parse(src)
		if err != nil {
			return nil, fmt.Errorf("parsing %s page: %w", name, err)
		}
		cache[name] = ts
	}
	return cache, nil
}

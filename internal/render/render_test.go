package render

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/aoideee/estate-listings/internal/data"
)

func sampleProperty() *data.Property {
	year := 2015
	return &data.Property{
		ID:           "p-1",
		Title:        "Garden flat",
		Description:  "Quiet street.",
		Type:         data.TypeApartment,
		Price:        250000,
		Address:      "3 Rue Neuve",
		City:         "Lyon",
		State:        "ARA",
		Bedrooms:     2,
		Bathrooms:    1.5,
		Area:         1000,
		Images:       []string{"https://img.example.com/a.jpg", "https://img.example.com/b.jpg"},
		Amenities:    []string{"Garden", "Lift"},
		YearBuilt:    &year,
		Parking:      2,
		Availability: "For Sale",
	}
}

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{0, "$0"},
		{999, "$999"},
		{250000, "$250,000"},
		{1234567.8, "$1,234,568"},
		{-1500, "-$1,500"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatCurrency(tt.amount))
	}
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "March 4, 2026", FormatDate(time.Date(2026, time.March, 4, 23, 0, 0, 0, time.UTC)))
}

func TestStatusClass(t *testing.T) {
	assert.Equal(t, "status-available", StatusClass("Available"))
	assert.Equal(t, "status-for-sale", StatusClass("For Sale"))
	assert.Equal(t, "status-under-offer now", StatusClass("Under Offer Now"))
}

func TestStars(t *testing.T) {
	assert.Equal(t, "⭐⭐⭐☆☆", Stars(3))
	assert.Equal(t, "⭐⭐⭐⭐⭐", Stars(5))
	assert.Equal(t, "☆☆☆☆☆", Stars(0))
	assert.Equal(t, "⭐⭐⭐⭐⭐", Stars(9))
	assert.Equal(t, "☆☆☆☆☆", Stars(-2))
}

func TestCard(t *testing.T) {
	var r Renderer
	html := string(r.Card(sampleProperty()))

	assert.Contains(t, html, `href="/property/p-1"`)
	assert.Contains(t, html, `src="https://img.example.com/a.jpg"`)
	assert.NotContains(t, html, "b.jpg")
	assert.Contains(t, html, "Garden flat")
	assert.Contains(t, html, "Lyon, ARA")
	assert.Contains(t, html, "$250,000")
	assert.Contains(t, html, "status-for-sale")
}

func TestCardFallsBackToPlaceholder(t *testing.T) {
	var r Renderer
	p := sampleProperty()
	p.Images = nil
	p.City = ""

	html := string(r.Card(p))
	assert.Contains(t, html, `src="`+PlaceholderCardImage+`"`)
	assert.Contains(t, html, "N/A, ARA")
}

func TestListing(t *testing.T) {
	var r Renderer
	second := sampleProperty()
	second.ID = "p-2"
	second.Title = "Loft"

	html := string(r.Listing([]*data.Property{sampleProperty(), second}))
	assert.Equal(t, 2, strings.Count(html, `class="property-card"`))
	assert.Less(t, strings.Index(html, "Garden flat"), strings.Index(html, "Loft"))

	empty := string(r.Listing(nil))
	assert.Zero(t, strings.Count(empty, `class="property-card"`))
	assert.Contains(t, empty, EmptyListingMessage)
}

func TestDetails(t *testing.T) {
	var r Renderer
	html := string(r.Details(sampleProperty()))

	assert.Contains(t, html, "a.jpg")
	assert.Contains(t, html, "b.jpg")
	assert.Contains(t, html, "<span>$250</span>")
	assert.Contains(t, html, "2 spaces")
	assert.Contains(t, html, "<span>2015</span>")
	assert.Contains(t, html, `<span class="feature-tag">Garden</span>`)
	assert.NotContains(t, html, "No features listed")
}

func TestDetailsOmitsMissingFacts(t *testing.T) {
	var r Renderer
	p := sampleProperty()
	p.Images = nil
	p.Amenities = nil
	p.YearBuilt = nil
	p.Parking = 0
	p.Area = 0

	html := string(r.Details(p))
	assert.Contains(t, html, PlaceholderDetailsImage)
	assert.Contains(t, html, "No features listed")
	assert.NotContains(t, html, "Parking")
	assert.NotContains(t, html, "Year Built")
	assert.Contains(t, html, "<span>$0</span>")
}

func TestReviews(t *testing.T) {
	var r Renderer
	reviews := []*data.Review{
		{UserName: "Ana", Rating: 4, Comment: "Bright rooms.", CreatedAt: time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC)},
		{UserName: "Bo", Rating: 2, Comment: "Noisy.", CreatedAt: time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)},
	}

	html := string(r.Reviews(reviews))
	assert.Equal(t, 2, strings.Count(html, `class="review-card"`))
	assert.Contains(t, html, "⭐⭐⭐⭐☆")
	assert.Contains(t, html, "January 5, 2026")
	assert.Less(t, strings.Index(html, "Ana"), strings.Index(html, "Bo"))

	assert.Contains(t, string(r.Reviews(nil)), EmptyReviewsMessage)
}

func TestManagementList(t *testing.T) {
	var r Renderer
	html := string(r.ManagementList([]*data.Property{sampleProperty()}))
	assert.Contains(t, html, `href="/manage/p-1/edit"`)
	assert.Contains(t, html, `href="/manage/p-1/delete"`)

	assert.Contains(t, string(r.ManagementList(nil)), EmptyManagementMessage)
}

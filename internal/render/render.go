// Package render turns listings and reviews into HTML fragments. Every
// function is pure: it returns markup for the caller to mount and never
// touches state.
package render

import (
	"bytes"
	"html/template"

	"github.com/aoideee/estate-listings/internal/data"
)

// Placeholder images used when a listing has none.
const (
	PlaceholderCardImage    = "https://via.placeholder.com/400x250?text=Property+Image"
	PlaceholderDetailsImage = "https://via.placeholder.com/800x500?text=Property+Image"
)

// Messages shown in place of a list or page body.
const (
	EmptyListingMessage    = "No properties found matching your criteria."
	EmptyReviewsMessage    = "No reviews yet. Be the first to review this property!"
	ListingErrorMessage    = "Error loading properties. Please try again later."
	DetailsErrorMessage    = "Error loading property details. Please try again later."
	EmptyManagementMessage = "No properties to manage."
)

// Fragment is a renderable unit of HTML.
type Fragment = template.HTML

var templates = template.Must(template.New("render").Funcs(template.FuncMap{
	"currency":    FormatCurrency,
	"date":        FormatDate,
	"statusClass": StatusClass,
	"stars":       Stars,
	"orNA":        orNA,
}).Parse(fragmentTemplates))

// Renderer produces the fragments for listing, details and review views.
// The zero value is ready to use.
type Renderer struct{}

func execute(name string, v any) Fragment {
	var buf bytes.Buffer
	// The templates only read fields of values built by this package, so
	// execution cannot fail once parsing succeeded.
	if err := templates.ExecuteTemplate(&buf, name, v); err != nil {
		panic(err)
	}
	return Fragment(buf.String())
}

type cardView struct {
	*data.Property
	Image       string
	Placeholder string
}

// Card renders one listing card. Activating the card navigates to the
// listing's detail page.
func (Renderer) Card(p *data.Property) Fragment {
	image := PlaceholderCardImage
	if len(p.Images) > 0 {
		image = p.Images[0]
	}
	return execute("card", cardView{Property: p, Image: image, Placeholder: PlaceholderCardImage})
}

// Listing renders one card per property in the given order, or the empty
// state message when there are none.
func (r Renderer) Listing(properties []*data.Property) Fragment {
	if len(properties) == 0 {
		return r.Message(EmptyListingMessage)
	}
	cards := make([]Fragment, len(properties))
	for i, p := range properties {
		cards[i] = r.Card(p)
	}
	return execute("listing", cards)
}

type detailsView struct {
	*data.Property
	Gallery     []string
	Placeholder string
	PerSqft     float64
}

// Details renders the full detail view of a listing.
func (Renderer) Details(p *data.Property) Fragment {
	images := p.Images
	if len(images) == 0 {
		images = []string{PlaceholderDetailsImage}
	}
	return execute("details", detailsView{
		Property:    p,
		Gallery:     images,
		Placeholder: PlaceholderDetailsImage,
		PerSqft:     float64(p.PricePerArea()),
	})
}

// Review renders a single review with its star rating.
func (Renderer) Review(r *data.Review) Fragment {
	return execute("review", r)
}

// Reviews renders a review list, or the empty message when there are none.
func (r Renderer) Reviews(reviews []*data.Review) Fragment {
	if len(reviews) == 0 {
		return execute("plain-message", EmptyReviewsMessage)
	}
	items := make([]Fragment, len(reviews))
	for i, review := range reviews {
		items[i] = r.Review(review)
	}
	return execute("reviews", items)
}

// ManagementList renders the rows of the manage page, each with edit and
// delete actions.
func (Renderer) ManagementList(properties []*data.Property) Fragment {
	if len(properties) == 0 {
		return execute("management-empty", EmptyManagementMessage)
	}
	return execute("management", properties)
}

// Message renders a status line such as an empty state or a load error.
func (Renderer) Message(text string) Fragment {
	return execute("message", text)
}

package catalog

import (
	"context"
	"io"
	"log/slog"

	"github.com/aoideee/estate-listings/internal/data"
	"github.com/aoideee/estate-listings/internal/render"
)

// ReviewFetcher is the network collaborator for reviews.
type ReviewFetcher interface {
	ListReviews(ctx context.Context, propertyID string) ([]*data.Review, error)
	CreateReview(ctx context.Context, in data.ReviewInput) (*data.Review, error)
}

// DetailsRenderer renders the details page fragments.
type DetailsRenderer interface {
	Details(p *data.Property) render.Fragment
	Reviews(reviews []*data.Review) render.Fragment
	Message(text string) render.Fragment
}

// Details is what a DetailView has loaded so far.
type Details struct {
	Property *data.Property
	Reviews  []*data.Review

	Fragment        render.Fragment // The property, or the load error message
	ReviewsFragment render.Fragment
	Failed          bool
}

// DetailView loads one property and its reviews for the details page.
type DetailView struct {
	properties Fetcher
	reviews    ReviewFetcher
	renderer   DetailsRenderer
	logger     *slog.Logger
}

// NewDetailView returns a DetailView. A nil logger discards log output.
func NewDetailView(properties Fetcher, reviews ReviewFetcher, renderer DetailsRenderer, logger *slog.Logger) *DetailView {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &DetailView{
		properties: properties,
		reviews:    reviews,
		renderer:   renderer,
		logger:     logger.With(slog.String("component", "detail_view")),
	}
}

// Load fetches the property and then its reviews. The property read counts
// as a view. A missing property renders the details error message. Review
// failures never fail the page.
func (v *DetailView) Load(ctx context.Context, id string) Details {
	return v.load(ctx, id, v.properties.GetProperty)
}

// Reload is Load for a page that is already open, such as the re-render
// after a review is submitted. It does not count another view.
func (v *DetailView) Reload(ctx context.Context, id string) Details {
	return v.load(ctx, id, func(ctx context.Context, id string) (*data.Property, error) {
		return peek(ctx, v.properties, id)
	})
}

func (v *DetailView) load(ctx context.Context, id string, get func(context.Context, string) (*data.Property, error)) Details {
	p, err := get(ctx, id)
	if err != nil {
		v.logger.Error("loading property details", slog.String("id", id), slog.String("error", err.Error()))
		return Details{Fragment: v.renderer.Message(render.DetailsErrorMessage), Failed: true}
	}
	reviews, fragment := v.LoadReviews(ctx, id)
	return Details{
		Property:        p,
		Reviews:         reviews,
		Fragment:        v.renderer.Details(p),
		ReviewsFragment: fragment,
	}
}

// LoadReviews fetches the review list. Errors are logged and treated as an
// empty list.
func (v *DetailView) LoadReviews(ctx context.Context, propertyID string) ([]*data.Review, render.Fragment) {
	reviews, err := v.reviews.ListReviews(ctx, propertyID)
	if err != nil {
		v.logger.Warn("loading reviews", slog.String("property_id", propertyID), slog.String("error", err.Error()))
		reviews = nil
	}
	return reviews, v.renderer.Reviews(reviews)
}

// SubmitReview posts a review for the property and re-fetches the list.
// Local validation runs first, so an invalid review never reaches the API.
func (v *DetailView) SubmitReview(ctx context.Context, in data.ReviewInput) ([]*data.Review, render.Fragment, error) {
	if _, err := data.ValidateReview(in, now()); err != nil {
		return nil, "", err
	}
	if _, err := v.reviews.CreateReview(ctx, in); err != nil {
		v.logger.Error("submitting review", slog.String("property_id", in.PropertyID), slog.String("error", err.Error()))
		return nil, "", err
	}
	reviews, fragment := v.LoadReviews(ctx, in.PropertyID)
	return reviews, fragment, nil
}

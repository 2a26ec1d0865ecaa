package catalog

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aoideee/estate-listings/internal/data"
	"github.com/aoideee/estate-listings/internal/render"
)

func TestDetailViewLoad(t *testing.T) {
	fetcher := &fakeFetcher{
		properties: []*data.Property{editableProperty()},
		reviews: []*data.Review{
			{PropertyID: "lyon", UserName: "Ana", Rating: 4, Comment: "Lovely."},
			{PropertyID: "other", UserName: "Bo", Rating: 1, Comment: "No."},
		},
	}
	v := NewDetailView(fetcher, fetcher, render.Renderer{}, nil)

	details := v.Load(context.Background(), "lyon")
	require.False(t, details.Failed)
	assert.Equal(t, "lyon", details.Property.ID)
	assert.Len(t, details.Reviews, 1)
	assert.Contains(t, string(details.Fragment), "Lyon flat")
	assert.Contains(t, string(details.ReviewsFragment), "Ana")
	assert.NotContains(t, string(details.ReviewsFragment), "Bo")
}

func TestDetailViewReloadDoesNotCountView(t *testing.T) {
	fetcher := peekingFetcher{&fakeFetcher{properties: []*data.Property{editableProperty()}}}
	v := NewDetailView(fetcher, fetcher, render.Renderer{}, nil)

	require.False(t, v.Load(context.Background(), "lyon").Failed)
	assert.Equal(t, 1, fetcher.called("get"))

	details := v.Reload(context.Background(), "lyon")
	require.False(t, details.Failed)
	assert.Contains(t, string(details.Fragment), "Lyon flat")
	assert.Equal(t, 1, fetcher.called("get"))
	assert.Equal(t, 1, fetcher.called("peek"))
	assert.Equal(t, 2, fetcher.called("reviews"))
}

func TestDetailViewLoadMissingProperty(t *testing.T) {
	fetcher := &fakeFetcher{}
	v := NewDetailView(fetcher, fetcher, render.Renderer{}, nil)

	details := v.Load(context.Background(), "missing")
	assert.True(t, details.Failed)
	assert.Nil(t, details.Property)
	assert.Contains(t, string(details.Fragment), render.DetailsErrorMessage)
	assert.Zero(t, fetcher.called("reviews"))
}

func TestDetailViewSwallowsReviewErrors(t *testing.T) {
	fetcher := &fakeFetcher{
		properties: []*data.Property{editableProperty()},
		reviewFn:   func() error { return errNetwork },
	}
	v := NewDetailView(fetcher, fetcher, render.Renderer{}, nil)

	details := v.Load(context.Background(), "lyon")
	assert.False(t, details.Failed)
	assert.Empty(t, details.Reviews)
	assert.Contains(t, string(details.ReviewsFragment), render.EmptyReviewsMessage)
}

func TestDetailViewSubmitReviewRefetches(t *testing.T) {
	fetcher := &fakeFetcher{properties: []*data.Property{editableProperty()}}
	v := NewDetailView(fetcher, fetcher, render.Renderer{}, nil)

	reviews, fragment, err := v.SubmitReview(context.Background(), data.ReviewInput{
		PropertyID: "lyon",
		UserName:   "Ana",
		Rating:     5,
		Comment:    "Great light.",
	})
	require.NoError(t, err)
	assert.Len(t, reviews, 1)
	assert.Equal(t, 1, strings.Count(string(fragment), `class="review-card"`))
	assert.Equal(t, 1, fetcher.called("reviews"))
}

func TestDetailViewSubmitReviewValidatesFirst(t *testing.T) {
	fetcher := &fakeFetcher{}
	v := NewDetailView(fetcher, fetcher, render.Renderer{}, nil)

	_, _, err := v.SubmitReview(context.Background(), data.ReviewInput{PropertyID: "lyon", Rating: 9})
	var verrs data.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Zero(t, fetcher.called("createReview"))
	assert.Equal(t, ReviewFailedMessage, UserMessage(errNetwork, ReviewFailedMessage, ReviewFailedMessage))
}

package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aoideee/estate-listings/internal/apiclient"
	"github.com/aoideee/estate-listings/internal/catalog"
	"github.com/aoideee/estate-listings/internal/data"
	"github.com/aoideee/estate-listings/internal/render"
)

// fakeAPI answers the way the listings API does, backed by the in-memory
// stores.
type fakeAPI struct {
	models    data.Models
	updateErr error
	deleteErr error
}

func notFoundError() error {
	return &apiclient.APIError{StatusCode: http.StatusNotFound, Message: "the requested resource could not be found"}
}

func (f *fakeAPI) ListProperties(ctx context.Context) ([]*data.Property, error) {
	return f.models.Properties.GetAll(ctx, data.Filters{})
}

// GetProperty counts a view, PeekProperty does not.
func (f *fakeAPI) GetProperty(ctx context.Context, id string) (*data.Property, error) {
	if err := f.models.Properties.IncrementViews(ctx, id); errors.Is(err, data.ErrRecordNotFound) {
		return nil, notFoundError()
	}
	return f.PeekProperty(ctx, id)
}

func (f *fakeAPI) PeekProperty(ctx context.Context, id string) (*data.Property, error) {
	p, err := f.models.Properties.Get(ctx, id)
	if errors.Is(err, data.ErrRecordNotFound) {
		return nil, notFoundError()
	}
	return p, err
}

func (f *fakeAPI) CreateProperty(ctx context.Context, in data.PropertyInput) (*data.Property, error) {
	p, err := data.Validate(in, time.Now())
	if err != nil {
		return nil, &apiclient.APIError{StatusCode: http.StatusUnprocessableEntity, Message: err.Error()}
	}
	if err := f.models.Properties.Insert(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (f *fakeAPI) UpdateProperty(ctx context.Context, id string, in data.PropertyInput) (*data.Property, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	p, err := f.PeekProperty(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Apply(in, time.Now())
	return p, f.models.Properties.Update(ctx, p)
}

func (f *fakeAPI) DeleteProperty(ctx context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if err := f.models.Properties.Delete(ctx, id); errors.Is(err, data.ErrRecordNotFound) {
		return notFoundError()
	}
	return nil
}

func (f *fakeAPI) ListReviews(ctx context.Context, propertyID string) ([]*data.Review, error) {
	return f.models.Reviews.GetForProperty(ctx, propertyID)
}

func (f *fakeAPI) CreateReview(ctx context.Context, in data.ReviewInput) (*data.Review, error) {
	r, err := data.ValidateReview(in, time.Now())
	if err != nil {
		return nil, &apiclient.APIError{StatusCode: http.StatusUnprocessableEntity, Message: err.Error()}
	}
	return r, f.models.Reviews.Insert(ctx, r)
}

var base = time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

// newTestApplication seeds a Lyon flat and a newer Paris loft and returns
// the app with their ids.
func newTestApplication(t *testing.T) (*application, *fakeAPI, string, string) {
	t.Helper()

	api := &fakeAPI{models: data.NewMemoryModels()}
	lyon := &data.Property{
		Title: "Lyon flat", Description: "Bright flat near the river.", City: "Lyon", Location: "Lyon",
		Type: data.TypeApartment, Availability: data.AvailabilityAvailable,
		Price: 300000, Bedrooms: 2, Bathrooms: 1, Area: 900, CreatedAt: base,
	}
	paris := &data.Property{
		Title: "Paris loft", Description: "Open plan loft in the Marais.", City: "Paris", Location: "Paris",
		Type: data.TypeCondo, Availability: data.AvailabilitySold,
		Price: 500000, Bedrooms: 3, Bathrooms: 2, Area: 1200, CreatedAt: base.Add(time.Hour),
	}
	require.NoError(t, api.models.Properties.Insert(context.Background(), lyon))
	require.NoError(t, api.models.Properties.Insert(context.Background(), paris))

	templates, err := newTemplateCache()
	require.NoError(t, err)

	app := &application{
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		api:       api,
		renderer:  render.Renderer{},
		templates: templates,
	}
	return app, api, lyon.ID, paris.ID
}

func get(t *testing.T, h http.Handler, path string) (int, string) {
	t.Helper()
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
	body, err := io.ReadAll(rr.Body)
	require.NoError(t, err)
	return rr.Code, string(body)
}

func post(t *testing.T, h http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestHomeShowsFeaturedListings(t *testing.T) {
	app, _, _, _ := newTestApplication(t)

	status, body := get(t, app.routes(), "/")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Featured Properties")
	assert.Contains(t, body, "Lyon flat")
	assert.Contains(t, body, "Paris loft")
}

func TestListings(t *testing.T) {
	app, _, _, _ := newTestApplication(t)
	h := app.routes()

	tests := []struct {
		name    string
		query   string
		want    []string
		notWant []string
	}{
		{name: "all", query: "", want: []string{"Lyon flat", "Paris loft", "2 properties"}},
		{name: "city filter", query: "?city=lyon", want: []string{"Lyon flat", "1 properties"}, notWant: []string{"Paris loft"}},
		{name: "price bounds", query: "?minPrice=400000", want: []string{"Paris loft"}, notWant: []string{"Lyon flat"}},
		{name: "search", query: "?q=marais", want: []string{"Paris loft"}, notWant: []string{"Lyon flat"}},
		{name: "no match", query: "?city=Nice", want: []string{render.EmptyListingMessage, "0 properties"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := get(t, h, "/listings"+tt.query)
			assert.Equal(t, http.StatusOK, status)
			for _, s := range tt.want {
				assert.Contains(t, body, s)
			}
			for _, s := range tt.notWant {
				assert.NotContains(t, body, s)
			}
		})
	}
}

func TestListingsSortOrder(t *testing.T) {
	app, _, _, _ := newTestApplication(t)
	h := app.routes()

	_, body := get(t, h, "/listings?sort=price-low")
	assert.Less(t, strings.Index(body, "Lyon flat"), strings.Index(body, "Paris loft"))

	_, body = get(t, h, "/listings?sort=price-high")
	assert.Less(t, strings.Index(body, "Paris loft"), strings.Index(body, "Lyon flat"))
}

func TestPropertyDetails(t *testing.T) {
	app, _, lyonID, _ := newTestApplication(t)
	h := app.routes()

	status, body := get(t, h, "/property/"+lyonID)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Lyon flat")
	assert.Contains(t, body, render.EmptyReviewsMessage)
	assert.Contains(t, body, `action="/property/`+lyonID+`/reviews"`)

	status, body = get(t, h, "/property/missing")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Contains(t, body, render.DetailsErrorMessage)
	assert.NotContains(t, body, "reviewForm")
}

func TestSubmitReview(t *testing.T) {
	app, api, lyonID, _ := newTestApplication(t)
	h := app.routes()

	rr := post(t, h, "/property/"+lyonID+"/reviews", url.Values{
		"userName": {"Ana"},
		"rating":   {"4"},
		"comment":  {"Lovely light in the mornings"},
	})
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), catalog.ReviewSubmittedMessage)
	assert.Contains(t, rr.Body.String(), "Lovely light in the mornings")

	reviews, err := api.ListReviews(context.Background(), lyonID)
	require.NoError(t, err)
	assert.Len(t, reviews, 1)

	rr = post(t, h, "/property/"+lyonID+"/reviews", url.Values{"rating": {"4"}, "comment": {"No name given"}})
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Contains(t, rr.Body.String(), "Name is required")
	assert.Contains(t, rr.Body.String(), "No name given")
}

func addForm() url.Values {
	return url.Values{
		"title":       {"Seaside villa"},
		"description": {"A villa with a view over the bay."},
		"type":        {data.TypeVilla},
		"status":      {"For Sale"},
		"price":       {"950000"},
		"city":        {"Nice"},
		"bedrooms":    {"4"},
		"bathrooms":   {"2.5"},
		"area":        {"2400"},
		"amenities":   {"Pool, Garden"},
	}
}

func TestAddPropertyRedirectsToDetails(t *testing.T) {
	app, api, _, _ := newTestApplication(t)

	rr := post(t, app.routes(), "/add-property", addForm())
	require.Equal(t, http.StatusSeeOther, rr.Code)

	location := rr.Header().Get("Location")
	require.True(t, strings.HasPrefix(location, "/property/"), location)

	p, err := api.GetProperty(context.Background(), strings.TrimPrefix(location, "/property/"))
	require.NoError(t, err)
	assert.Equal(t, "Seaside villa", p.Title)
	assert.Equal(t, []string{"Pool", "Garden"}, p.Amenities)
	assert.Equal(t, data.AvailabilityAvailable, p.Availability)
}

func TestAddPropertyRejectsInvalidForm(t *testing.T) {
	app, _, _, _ := newTestApplication(t)

	form := addForm()
	form.Set("title", "")
	rr := post(t, app.routes(), "/add-property", form)

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Contains(t, rr.Body.String(), `class="form-message error"`)
	assert.Contains(t, rr.Body.String(), "A villa with a view over the bay.")
}

func TestManageLists(t *testing.T) {
	app, _, lyonID, _ := newTestApplication(t)

	status, body := get(t, app.routes(), "/manage")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `href="/manage/`+lyonID+`/edit"`)
	assert.Contains(t, body, `href="/manage/`+lyonID+`/delete"`)
}

func editForm(title, price string) url.Values {
	return url.Values{
		"title":        {title},
		"description":  {"Bright flat near the river, renovated."},
		"price":        {price},
		"type":         {data.TypeApartment},
		"availability": {data.AvailabilityPending},
		"city":         {"Lyon"},
		"bedrooms":     {"2"},
		"bathrooms":    {"1"},
		"area":         {"900"},
	}
}

func TestEditFormIsPrefilled(t *testing.T) {
	app, _, lyonID, _ := newTestApplication(t)
	h := app.routes()

	status, body := get(t, h, "/manage/"+lyonID+"/edit")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `value="Lyon flat"`)
	assert.Contains(t, body, `value="300000"`)

	status, body = get(t, h, "/manage/missing/edit")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Contains(t, body, catalog.OpenFailedMessage)
}

func TestEditSubmit(t *testing.T) {
	app, api, lyonID, _ := newTestApplication(t)

	rr := post(t, app.routes(), "/manage/"+lyonID+"/edit", editForm("Lyon flat renovated", "320000"))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), catalog.PropertyUpdatedMessage)
	assert.Contains(t, rr.Body.String(), "Lyon flat renovated")

	p, err := api.GetProperty(context.Background(), lyonID)
	require.NoError(t, err)
	assert.Equal(t, 320000.0, p.Price)
	assert.Equal(t, data.AvailabilityPending, p.Availability)
}

func TestEditSubmitFailures(t *testing.T) {
	tests := []struct {
		name      string
		form      url.Values
		updateErr error
		want      string
	}{
		{
			name: "local validation",
			form: editForm("Lyon flat", "-1"),
			want: `<span class="field-error">Price cannot be negative</span>`,
		},
		{
			name:      "server message",
			form:      editForm("Lyon flat", "310000"),
			updateErr: &apiclient.APIError{StatusCode: http.StatusConflict, Message: "listing is locked"},
			want:      "listing is locked",
		},
		{
			name:      "server without message",
			form:      editForm("Lyon flat", "310000"),
			updateErr: &apiclient.APIError{StatusCode: http.StatusInternalServerError},
			want:      catalog.UpdateRejectedMessage,
		},
		{
			name:      "transport failure",
			form:      editForm("Lyon flat", "310000"),
			updateErr: errors.New("dial tcp: connection refused"),
			want:      catalog.UpdateFailedMessage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, api, lyonID, _ := newTestApplication(t)
			api.updateErr = tt.updateErr

			rr := post(t, app.routes(), "/manage/"+lyonID+"/edit", tt.form)
			assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
			assert.Contains(t, rr.Body.String(), tt.want)
			assert.Contains(t, rr.Body.String(), `id="editPropertyForm"`)
		})
	}
}

func TestDeleteProperty(t *testing.T) {
	app, api, lyonID, _ := newTestApplication(t)
	h := app.routes()

	status, body := get(t, h, "/manage/"+lyonID+"/delete")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Are you sure")

	rr := post(t, h, "/manage/"+lyonID+"/delete", url.Values{})
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/manage", rr.Header().Get("Location"))
	_, err := api.GetProperty(context.Background(), lyonID)
	require.NoError(t, err)

	rr = post(t, h, "/manage/"+lyonID+"/delete", url.Values{"confirm": {"yes"}})
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.NotContains(t, rr.Body.String(), "Lyon flat")
	assert.Contains(t, rr.Body.String(), "Paris loft")
	_, err = api.GetProperty(context.Background(), lyonID)
	assert.Error(t, err)
}

func TestDeletePropertyFailure(t *testing.T) {
	app, api, lyonID, _ := newTestApplication(t)
	api.deleteErr = errors.New("dial tcp: connection refused")

	rr := post(t, app.routes(), "/manage/"+lyonID+"/delete", url.Values{"confirm": {"yes"}})
	assert.Equal(t, http.StatusBadGateway, rr.Code)
	assert.Contains(t, rr.Body.String(), catalog.DeleteFailedMessage)
	assert.Contains(t, rr.Body.String(), "Lyon flat")
}

func TestUnknownPage(t *testing.T) {
	app, _, _, _ := newTestApplication(t)

	status, body := get(t, app.routes(), "/nowhere")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Contains(t, body, "does not exist")
}

func TestOnlyDetailVisitsCountViews(t *testing.T) {
	app, api, lyonID, _ := newTestApplication(t)
	h := app.routes()

	status, _ := get(t, h, "/manage/"+lyonID+"/edit")
	require.Equal(t, http.StatusOK, status)
	rr := post(t, h, "/manage/"+lyonID+"/edit", editForm("Lyon flat renovated", "320000"))
	require.Equal(t, http.StatusOK, rr.Code)
	rr = post(t, h, "/property/"+lyonID+"/reviews", url.Values{
		"userName": {"Ana"},
		"rating":   {"5"},
		"comment":  {"Great view"},
	})
	require.Equal(t, http.StatusOK, rr.Code)

	p, err := api.PeekProperty(context.Background(), lyonID)
	require.NoError(t, err)
	assert.Zero(t, p.Views)

	status, _ = get(t, h, "/property/"+lyonID)
	require.Equal(t, http.StatusOK, status)
	p, err = api.PeekProperty(context.Background(), lyonID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.Views)
}

func TestAddPropertyRejectsNonFiniteNumbers(t *testing.T) {
	app, api, _, _ := newTestApplication(t)

	form := addForm()
	form.Set("price", "Inf")
	rr := post(t, app.routes(), "/add-property", form)

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Contains(t, rr.Body.String(), "price must be a finite number")

	all, err := api.ListProperties(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

// cmd/api/handlers.go
// HTTP handlers for the properties and reviews resources. Each handler is a
// method on *applicationDependencies so it has access to the logger, the
// stores and the list cache.
package main

import (
	"errors"
	"net/http"

	"github.com/aoideee/estate-listings/internal/cache"
	"github.com/aoideee/estate-listings/internal/data"
	"github.com/aoideee/estate-listings/internal/validator"
)

// healthcheckHandler handles GET /health.
func (app *applicationDependencies) healthcheckHandler(w http.ResponseWriter, r *http.Request) {
	err := app.writeJSON(w, http.StatusOK, envelope{
		"status":      "available",
		"environment": app.config.environment,
		"version":     appVersion,
	}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// createPropertyHandler handles POST /property.
// It validates the body against the property rules, stores the new record
// and responds 201 with the record including its assigned id.
func (app *applicationDependencies) createPropertyHandler(w http.ResponseWriter, r *http.Request) {
	var input data.PropertyInput
	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	property, err := data.Validate(input, app.now())
	if err != nil {
		app.validationOrServerError(w, r, err)
		return
	}

	err = app.models.Properties.Insert(r.Context(), property)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
	app.invalidateListCache(r)

	err = app.writeJSON(w, http.StatusCreated, property, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// showPropertyHandler handles GET /api/properties/:id.
// A read counts as a view unless the caller passes count=false, which the
// management screens do so that editing a listing does not inflate it.
// Views do not invalidate the list cache; cached lists may show a view
// count up to one cache lifetime old.
func (app *applicationDependencies) showPropertyHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	count, err := app.readBool(r.URL.Query(), "count")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if count == nil || *count {
		err = app.models.Properties.IncrementViews(r.Context(), id)
		if err != nil {
			app.notFoundOrServerError(w, r, err)
			return
		}
	}

	property, err := app.models.Properties.Get(r.Context(), id)
	if err != nil {
		app.notFoundOrServerError(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, property, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// listPropertiesHandler handles GET /api/properties.
// Optional query parameters: type, availability, featured and sort. The
// response is a bare JSON array, newest first unless sort says otherwise.
func (app *applicationDependencies) listPropertiesHandler(w http.ResponseWriter, r *http.Request) {
	qs := r.URL.Query()

	filters := data.Filters{
		Type:         app.readString(qs, "type", ""),
		Availability: app.readString(qs, "availability", ""),
		Sort:         app.readString(qs, "sort", "-created_at"),
		SortSafeList: data.PropertySortSafeList,
	}
	featured, err := app.readBool(qs, "featured")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	filters.Featured = featured

	v := validator.New()
	data.ValidateFilters(v, filters)
	if !v.Valid() {
		app.failedValidationResponse(w, r, data.ValidationErrors(v.Errors))
		return
	}

	key := cache.GenerateQueryCacheKey(cache.PropertyListPrefix, map[string]string{
		"type":         filters.Type,
		"availability": filters.Availability,
		"featured":     qs.Get("featured"),
		"sort":         filters.Sort,
	})

	var properties []*data.Property
	if app.cache != nil {
		hit, err := app.cache.Get(r.Context(), key, &properties)
		if err != nil {
			app.logError(r, err)
		} else if hit {
			app.writeProperties(w, r, properties)
			return
		}
	}

	properties, err = app.models.Properties.GetAll(r.Context(), filters)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	if app.cache != nil {
		if err := app.cache.Set(r.Context(), key, properties); err != nil {
			app.logError(r, err)
		}
	}
	app.writeProperties(w, r, properties)
}

func (app *applicationDependencies) writeProperties(w http.ResponseWriter, r *http.Request, properties []*data.Property) {
	if properties == nil {
		properties = []*data.Property{}
	}
	err := app.writeJSON(w, http.StatusOK, properties, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// updatePropertyHandler handles PUT /api/properties/:id.
// Only the supplied fields are validated and applied; updatedAt is always
// refreshed.
func (app *applicationDependencies) updatePropertyHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var input data.PropertyInput
	err = app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	now := app.now()
	err = data.ValidatePatch(input, now)
	if err != nil {
		app.validationOrServerError(w, r, err)
		return
	}

	property, err := app.models.Properties.Get(r.Context(), id)
	if err != nil {
		app.notFoundOrServerError(w, r, err)
		return
	}

	property.Apply(input, now)

	err = app.models.Properties.Update(r.Context(), property)
	if err != nil {
		app.notFoundOrServerError(w, r, err)
		return
	}
	app.invalidateListCache(r)

	err = app.writeJSON(w, http.StatusOK, property, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// deletePropertyHandler handles DELETE /api/properties/:id.
func (app *applicationDependencies) deletePropertyHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.models.Properties.Delete(r.Context(), id)
	if err != nil {
		app.notFoundOrServerError(w, r, err)
		return
	}
	app.invalidateListCache(r)

	err = app.writeJSON(w, http.StatusOK, envelope{"message": "property successfully deleted"}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// listReviewsHandler handles GET /api/reviews/property/:id.
func (app *applicationDependencies) listReviewsHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	reviews, err := app.models.Reviews.GetForProperty(r.Context(), id)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
	if reviews == nil {
		reviews = []*data.Review{}
	}

	err = app.writeJSON(w, http.StatusOK, reviews, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// createReviewHandler handles POST /api/reviews. The reviewed property must
// exist.
func (app *applicationDependencies) createReviewHandler(w http.ResponseWriter, r *http.Request) {
	var input data.ReviewInput
	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	review, err := data.ValidateReview(input, app.now())
	if err != nil {
		app.validationOrServerError(w, r, err)
		return
	}

	_, err = app.models.Properties.Get(r.Context(), review.PropertyID)
	if err != nil {
		app.notFoundOrServerError(w, r, err)
		return
	}

	err = app.models.Reviews.Insert(r.Context(), review)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusCreated, review, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *applicationDependencies) notFoundOrServerError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, data.ErrRecordNotFound):
		app.notFoundResponse(w, r)
	default:
		app.serverErrorResponse(w, r, err)
	}
}

func (app *applicationDependencies) validationOrServerError(w http.ResponseWriter, r *http.Request, err error) {
	var verrs data.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		app.failedValidationResponse(w, r, verrs)
	default:
		app.serverErrorResponse(w, r, err)
	}
}

// invalidateListCache drops every cached list response after a write.
func (app *applicationDependencies) invalidateListCache(r *http.Request) {
	if app.cache == nil {
		return
	}
	if err := app.cache.Invalidate(r.Context(), cache.PropertyListPrefix); err != nil {
		app.logError(r, err)
	}
}

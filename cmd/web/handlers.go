// cmd/web/handlers.go
// Page handlers. Each request builds its own Catalog, EditSession or
// DetailView, subscribes to it and renders what it publishes.
package main

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/aoideee/estate-listings/internal/catalog"
	"github.com/aoideee/estate-listings/internal/data"
	"github.com/aoideee/estate-listings/internal/validator"
)

// featuredCount is how many listings the home page shows.
const featuredCount = 6

// home shows the quick search form and the newest listings. A failed load
// leaves the featured section with its empty message.
func (app *application) home(w http.ResponseWriter, r *http.Request) {
	td := newTemplateData("Home")

	c := app.newCatalog()
	c.Subscribe(func(s catalog.State) {
		if s.Status == catalog.StatusFailed {
			return
		}
		featured := s.View[:min(len(s.View), featuredCount)]
		td.Count = len(featured)
		td.Content = app.renderer.Listing(featured)
	})
	if err := c.Load(r.Context()); err != nil {
		app.logError(r, err)
	}

	app.render(w, r, http.StatusOK, "home", td)
}

// listings shows the grid. A search query takes precedence over the filter
// controls; the sort order is applied last.
func (app *application) listings(w http.ResponseWriter, r *http.Request) {
	qs := r.URL.Query()
	td := newTemplateData("Listings")
	td.Query = qs

	c := app.newCatalog()
	c.Subscribe(func(s catalog.State) {
		td.Content = s.Fragment
		td.Count = len(s.View)
	})

	if err := c.Load(r.Context()); err != nil {
		app.logError(r, err)
		app.render(w, r, http.StatusOK, "listings", td)
		return
	}

	if q := formString(qs, "q"); q != "" {
		c.Search(q)
	} else if criteria := criteriaFromQuery(qs); criteria != (catalog.Criteria{}) {
		c.Filter(criteria)
	}
	if sort := formString(qs, "sort"); sort != "" {
		c.Sort(catalog.SortKey(sort))
	}

	app.render(w, r, http.StatusOK, "listings", td)
}

// newDetailView returns a DetailView backed by the API for both properties
// and reviews.
func (app *application) newDetailView() *catalog.DetailView {
	return catalog.NewDetailView(app.api, app.api, app.renderer, app.logger)
}

// detailsPage fills td from d. It returns false when the property could not
// be loaded.
func detailsPage(td *templateData, id string, d catalog.Details) bool {
	td.Content = d.Fragment
	if d.Failed {
		return false
	}
	td.ID = id
	td.Title = d.Property.Title
	td.Reviews = d.ReviewsFragment
	return true
}

// propertyDetails shows one listing and its reviews. Each visit counts as a
// view.
func (app *application) propertyDetails(w http.ResponseWriter, r *http.Request) {
	id := readIDParam(r)
	td := newTemplateData("Property Details")
	if !detailsPage(td, id, app.newDetailView().Load(r.Context(), id)) {
		app.render(w, r, http.StatusNotFound, "details", td)
		return
	}
	app.render(w, r, http.StatusOK, "details", td)
}

// submitReview posts a review and re-renders the details page with the
// refreshed review list. Re-rendering the page is not another view.
func (app *application) submitReview(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		app.badRequest(w, r, err)
		return
	}

	id := readIDParam(r)
	td := newTemplateData("Property Details")
	dv := app.newDetailView()
	if !detailsPage(td, id, dv.Reload(r.Context(), id)) {
		app.render(w, r, http.StatusNotFound, "details", td)
		return
	}

	_, fragment, err := dv.SubmitReview(r.Context(), reviewInputFromForm(id, r.PostForm))
	if err != nil {
		var verrs data.ValidationErrors
		if errors.As(err, &verrs) {
			td.Flash = verrs.Error()
		} else {
			app.logError(r, err)
			td.Flash = catalog.ReviewFailedMessage
		}
		td.FlashError = true
		td.Values = r.PostForm
		app.render(w, r, http.StatusUnprocessableEntity, "details", td)
		return
	}

	td.Reviews = fragment
	td.Flash = catalog.ReviewSubmittedMessage
	app.render(w, r, http.StatusOK, "details", td)
}

// manageData binds the catalog to the management list.
func (app *application) manageData(c *catalog.Catalog) *templateData {
	td := newTemplateData("Manage Properties")
	c.Subscribe(func(s catalog.State) {
		if s.Status == catalog.StatusFailed {
			td.Content = s.Fragment
			return
		}
		td.Content = app.renderer.ManagementList(s.View)
	})
	return td
}

// manage lists every property with its edit and delete actions.
func (app *application) manage(w http.ResponseWriter, r *http.Request) {
	c := app.newCatalog()
	td := app.manageData(c)
	if err := c.Load(r.Context()); err != nil {
		app.logError(r, err)
	}
	app.render(w, r, http.StatusOK, "manage", td)
}

// editData binds an edit session to the edit page.
func (app *application) editData(s *catalog.EditSession, id string) *templateData {
	td := newTemplateData("Edit Property")
	td.ID = id
	s.Subscribe(func(st catalog.EditState) {
		td.Form = st.Form
		td.Flash = st.Message
		td.FlashError = st.Failed
	})
	return td
}

// editForm opens an edit session and shows the pre-filled form.
func (app *application) editForm(w http.ResponseWriter, r *http.Request) {
	id := readIDParam(r)
	s := catalog.NewEditSession(app.api, nil, app.logger)
	td := app.editData(s, id)

	if err := s.Open(r.Context(), id); err != nil {
		td.Flash = ""
		td.Content = app.renderer.Message(catalog.OpenFailedMessage)
		app.render(w, r, http.StatusNotFound, "error", td)
		return
	}
	app.render(w, r, http.StatusOK, "edit", td)
}

// editSubmit opens the property, applies the posted form and submits it.
// A successful update reloads the management list and shows it.
func (app *application) editSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		app.badRequest(w, r, err)
		return
	}

	id := readIDParam(r)
	c := app.newCatalog()
	manage := app.manageData(c)
	s := catalog.NewEditSession(app.api, c, app.logger)
	td := app.editData(s, id)

	if err := s.Open(r.Context(), id); err != nil {
		td.Flash = ""
		td.Content = app.renderer.Message(catalog.OpenFailedMessage)
		app.render(w, r, http.StatusNotFound, "error", td)
		return
	}
	if err := s.SetForm(editFormFromValues(r.PostForm)); err != nil {
		app.serverError(w, r, err)
		return
	}

	if err := s.Submit(r.Context()); err != nil {
		var verrs data.ValidationErrors
		if errors.As(err, &verrs) {
			v := validator.Validator{Errors: verrs}
			td.FieldErrors = v.Map()
		}
		app.render(w, r, http.StatusUnprocessableEntity, "edit", td)
		return
	}

	manage.Flash = s.State().Message
	app.render(w, r, http.StatusOK, "manage", manage)
}

// deleteConfirm asks the user to confirm the delete before anything is sent
// to the API.
func (app *application) deleteConfirm(w http.ResponseWriter, r *http.Request) {
	td := newTemplateData("Delete Property")
	td.ID = readIDParam(r)
	app.render(w, r, http.StatusOK, "delete", td)
}

// deleteSubmit deletes the property once the form carries confirm=yes. An
// unconfirmed post goes back to the management list untouched.
func (app *application) deleteSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		app.badRequest(w, r, err)
		return
	}

	id := readIDParam(r)
	c := app.newCatalog()
	td := app.manageData(c)
	s := catalog.NewEditSession(app.api, c, app.logger)
	s.Subscribe(func(st catalog.EditState) {
		td.Flash = st.Message
		td.FlashError = st.Failed
	})

	confirmed := catalog.ConfirmFunc(func(string) bool {
		return r.PostForm.Get("confirm") == "yes"
	})
	err := s.Delete(r.Context(), id, confirmed)
	switch {
	case errors.Is(err, catalog.ErrNotConfirmed):
		http.Redirect(w, r, "/manage", http.StatusSeeOther)
		return
	case err != nil:
		if err := c.Load(r.Context()); err != nil {
			app.logError(r, err)
		}
		app.render(w, r, http.StatusBadGateway, "manage", td)
		return
	}

	app.render(w, r, http.StatusOK, "manage", td)
}

// addForm shows the empty add-property form.
func (app *application) addForm(w http.ResponseWriter, r *http.Request) {
	app.render(w, r, http.StatusOK, "add", newTemplateData("Add Property"))
}

// addSubmit creates the property and moves straight to its details page.
func (app *application) addSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		app.badRequest(w, r, err)
		return
	}

	created, err := app.newCatalog().Create(r.Context(), propertyInputFromForm(r.PostForm))
	if err != nil {
		app.logError(r, err)
		td := newTemplateData("Add Property")
		td.Flash = catalog.UserMessage(err, catalog.CreateFailedMessage, catalog.CreateFailedMessage)
		td.FlashError = true
		td.Values = r.PostForm
		app.render(w, r, http.StatusUnprocessableEntity, "add", td)
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/property/%s", url.PathEscape(created.ID)), http.StatusSeeOther)
}

// cmd/web/helpers.go
// Rendering and error-page helpers shared by the page handlers.
package main

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/aoideee/estate-listings/internal/apiclient"
	"github.com/aoideee/estate-listings/internal/catalog"
)

func (app *application) logError(r *http.Request, err error) {
	app.logger.Error(err.Error(),
		slog.String("request_method", r.Method),
		slog.String("request_url", r.URL.String()),
		slog.String("trace_id", apiclient.TraceIDFromContext(r.Context())),
	)
}

// render executes page into a buffer first so a template error never leaves
// a half-written response.
func (app *application) render(w http.ResponseWriter, r *http.Request, status int, page string, td *templateData) {
	ts, ok := app.templates[page]
	if !ok {
		app.serverError(w, r, fmt.Errorf("the template %s does not exist", page))
		return
	}

	buf := new(bytes.Buffer)
	if err := ts.ExecuteTemplate(buf, "base", td); err != nil {
		app.serverError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

func (app *application) serverError(w http.ResponseWriter, r *http.Request, err error) {
	app.logError(r, err)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func (app *application) notFound(w http.ResponseWriter, r *http.Request) {
	td := newTemplateData("Not Found")
	td.Content = app.renderer.Message("The page you are looking for does not exist.")
	app.render(w, r, http.StatusNotFound, "error", td)
}

func (app *application) badRequest(w http.ResponseWriter, r *http.Request, err error) {
	app.logError(r, err)
	td := newTemplateData("Bad Request")
	td.Content = app.renderer.Message("The form could not be read. Please try again.")
	app.render(w, r, http.StatusBadRequest, "error", td)
}

func readIDParam(r *http.Request) string {
	return httprouter.ParamsFromContext(r.Context()).ByName("id")
}

func (app *application) newCatalog() *catalog.Catalog {
	return catalog.New(app.api, app.renderer, app.logger)
}

// cmd/api/errors.go
// Error-response helpers. Every failure is written as {"error": "..."}.
package main

import (
	"log/slog"
	"net/http"

	"github.com/aoideee/estate-listings/internal/data"
)

// logError logs an internal error at ERROR level with the request method and URL for context.
func (app *applicationDependencies) logError(r *http.Request, err error) {
	app.logger.Error(err.Error(),
		slog.String("request_method", r.Method),
		slog.String("request_url", r.URL.String()),
		slog.String("trace_id", traceIDFromRequest(r)),
	)
}

// errorResponse sends a JSON error envelope with the given status code and
// body. The body must carry an "error" string.
func (app *applicationDependencies) errorResponse(w http.ResponseWriter, r *http.Request, status int, body envelope) {
	err := app.writeJSON(w, status, body, nil)
	if err != nil {
		app.logError(r, err)
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func (app *applicationDependencies) errorMessage(w http.ResponseWriter, r *http.Request, status int, message string) {
	app.errorResponse(w, r, status, envelope{"error": message})
}

// serverErrorResponse logs a 500-level error and sends a generic message to the client.
func (app *applicationDependencies) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logError(r, err)
	app.errorMessage(w, r, http.StatusInternalServerError, "the server encountered a problem and could not process your request")
}

func (app *applicationDependencies) notFoundResponse(w http.ResponseWriter, r *http.Request) {
	app.errorMessage(w, r, http.StatusNotFound, "the requested resource could not be found")
}

func (app *applicationDependencies) methodNotAllowedResponse(w http.ResponseWriter, r *http.Request) {
	app.errorMessage(w, r, http.StatusMethodNotAllowed, "the "+r.Method+" method is not supported for this resource")
}

func (app *applicationDependencies) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.errorMessage(w, r, http.StatusBadRequest, err.Error())
}

// failedValidationResponse sends a 422 with the joined messages under
// "error" and the per-field list under "errors".
func (app *applicationDependencies) failedValidationResponse(w http.ResponseWriter, r *http.Request, errs data.ValidationErrors) {
	app.errorResponse(w, r, http.StatusUnprocessableEntity, envelope{
		"error":  errs.Error(),
		"errors": errs,
	})
}

func (app *applicationDependencies) rateLimitExceededResponse(w http.ResponseWriter, r *http.Request) {
	app.errorMessage(w, r, http.StatusTooManyRequests, "rate limit exceeded")
}

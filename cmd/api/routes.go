// cmd/api/routes.go
package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

// routes registers all HTTP endpoints and returns the configured router
// wrapped in middleware.
//
// Middleware chain (outermost → innermost):
//
//	recoverPanic → logRequest → enableCORS → rateLimit → router
//
// Endpoints:
//
//	GET    /health                      – service status
//	GET    /api/properties              – list properties (bare array)
//	GET    /api/properties/:id          – one property; counts a view
//	POST   /property                    – create a property
//	PUT    /api/properties/:id          – partially update a property
//	DELETE /api/properties/:id          – delete a property
//	GET    /api/reviews/property/:id    – reviews of a property
//	POST   /api/reviews                 – add a review
func (app *applicationDependencies) routes() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(app.notFoundResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedResponse)

	router.HandlerFunc(http.MethodGet, "/health", app.healthcheckHandler)

	router.HandlerFunc(http.MethodGet, "/api/properties", app.listPropertiesHandler)
	router.HandlerFunc(http.MethodGet, "/api/properties/:id", app.showPropertyHandler)
	router.HandlerFunc(http.MethodPost, "/property", app.createPropertyHandler)
	router.HandlerFunc(http.MethodPut, "/api/properties/:id", app.updatePropertyHandler)
	router.HandlerFunc(http.MethodDelete, "/api/properties/:id", app.deletePropertyHandler)

	router.HandlerFunc(http.MethodGet, "/api/reviews/property/:id", app.listReviewsHandler)
	router.HandlerFunc(http.MethodPost, "/api/reviews", app.createReviewHandler)

	return app.recoverPanic(app.logRequest(app.enableCORS(app.rateLimit(router))))
}

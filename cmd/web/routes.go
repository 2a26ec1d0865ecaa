// cmd/web/routes.go
package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

// routes wires the pages.
//
//	GET  /                        home with quick search and featured listings
//	GET  /listings                listing grid with search, filters and sort
//	GET  /property/:id            property details and reviews
//	POST /property/:id/reviews    submit a review
//	GET  /manage                  management list
//	GET  /manage/:id/edit         edit form
//	POST /manage/:id/edit         submit an edit
//	GET  /manage/:id/delete       delete confirmation
//	POST /manage/:id/delete       delete
//	GET  /add-property            add form
//	POST /add-property            create a property
func (app *application) routes() http.Handler {
	router := httprouter.New()
	router.NotFound = http.HandlerFunc(app.notFound)

	router.HandlerFunc(http.MethodGet, "/", app.home)
	router.HandlerFunc(http.MethodGet, "/listings", app.listings)
	router.HandlerFunc(http.MethodGet, "/property/:id", app.propertyDetails)
	router.HandlerFunc(http.MethodPost, "/property/:id/reviews", app.submitReview)

	router.HandlerFunc(http.MethodGet, "/manage", app.manage)
	router.HandlerFunc(http.MethodGet, "/manage/:id/edit", app.editForm)
	router.HandlerFunc(http.MethodPost, "/manage/:id/edit", app.editSubmit)
	router.HandlerFunc(http.MethodGet, "/manage/:id/delete", app.deleteConfirm)
	router.HandlerFunc(http.MethodPost, "/manage/:id/delete", app.deleteSubmit)

	router.HandlerFunc(http.MethodGet, "/add-property", app.addForm)
	router.HandlerFunc(http.MethodPost, "/add-property", app.addSubmit)

	return app.recoverPanic(app.logRequest(router))
}

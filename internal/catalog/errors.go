package catalog

import (
	"errors"
	"time"

	"github.com/aoideee/estate-listings/internal/data"
)

var now = time.Now

// Messages shown to the user after an action.
const (
	CreateFailedMessage    = "Error adding property. Please try again."
	UpdateRejectedMessage  = "Error updating property."
	UpdateFailedMessage    = "Error updating property. Please try again."
	DeleteFailedMessage    = "Error deleting property"
	OpenFailedMessage      = "Error loading property details"
	ReviewFailedMessage    = "Error submitting review. Please try again."
	PropertyCreatedMessage = "Property added successfully!"
	PropertyUpdatedMessage = "Property updated successfully!"
	ReviewSubmittedMessage = "Review submitted successfully!"
)

// ServerRejection is implemented by errors carrying a non-2xx response. The
// message is what the server put in its error body and may be empty.
type ServerRejection interface {
	error
	ServerMessage() string
}

// UserMessage picks the text shown to the user for err. Local validation
// errors list their messages. A server rejection shows the server's message
// when it sent one, otherwise rejected. Anything else is a transport failure
// and shows failed.
func UserMessage(err error, rejected, failed string) string {
	var verrs data.ValidationErrors
	if errors.As(err, &verrs) {
		return verrs.Error()
	}
	var rejection ServerRejection
	if errors.As(err, &rejection) {
		if msg := rejection.ServerMessage(); msg != "" {
			return msg
		}
		return rejected
	}
	return failed
}

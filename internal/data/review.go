package data

import (
	"errors"
	"strings"
	"time"

	playground "github.com/go-playground/validator/v10"

	"github.com/aoideee/estate-listings/internal/validator"
)

// Review is a visitor's rating of a listing.
type Review struct {
	ID         string    `json:"_id" bson:"_id"`
	PropertyID string    `json:"propertyId" bson:"propertyId"`
	UserName   string    `json:"userName" bson:"userName"`
	UserEmail  string    `json:"userEmail,omitempty" bson:"userEmail"`
	Rating     int       `json:"rating" bson:"rating"` // 1 to 5
	Comment    string    `json:"comment" bson:"comment"`
	CreatedAt  time.Time `json:"createdAt" bson:"createdAt"`
}

// ReviewInput holds the fields a client supplies when submitting a review.
type ReviewInput struct {
	PropertyID string `json:"propertyId" validate:"required"`
	UserName   string `json:"userName"   validate:"required,max=100"`
	UserEmail  string `json:"userEmail"  validate:"omitempty,email"`
	Rating     int    `json:"rating"     validate:"min=1,max=5"`
	Comment    string `json:"comment"    validate:"required,max=2000"`
}

var reviewValidate = playground.New()

// reviewMessages maps a field and failed tag to the message shown to users.
var reviewMessages = map[string]string{
	"PropertyID.required": "Property is required",
	"UserName.required":   "Name is required",
	"UserName.max":        "Name cannot exceed 100 characters",
	"UserEmail.email":     "Email must be a valid email address",
	"Rating.min":          "Rating must be between 1 and 5",
	"Rating.max":          "Rating must be between 1 and 5",
	"Comment.required":    "Comment is required",
	"Comment.max":         "Comment cannot exceed 2000 characters",
}

// reviewFields maps struct field names to their JSON names.
var reviewFields = map[string]string{
	"PropertyID": "propertyId",
	"UserName":   "userName",
	"UserEmail":  "userEmail",
	"Rating":     "rating",
	"Comment":    "comment",
}

// ValidateReview trims the input, checks it and returns the Review to store.
func ValidateReview(in ReviewInput, now time.Time) (*Review, error) {
	in.PropertyID = strings.TrimSpace(in.PropertyID)
	in.UserName = strings.TrimSpace(in.UserName)
	in.UserEmail = strings.ToLower(strings.TrimSpace(in.UserEmail))
	in.Comment = strings.TrimSpace(in.Comment)

	if err := reviewValidate.Struct(in); err != nil {
		var fieldErrs playground.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return nil, err
		}
		v := validator.New()
		for _, fe := range fieldErrs {
			msg, ok := reviewMessages[fe.Field()+"."+fe.Tag()]
			if !ok {
				msg = fe.Error()
			}
			v.AddError(reviewFields[fe.Field()], msg)
		}
		return nil, ValidationErrors(v.Errors)
	}

	return &Review{
		PropertyID: in.PropertyID,
		UserName:   in.UserName,
		UserEmail:  in.UserEmail,
		Rating:     in.Rating,
		Comment:    in.Comment,
		CreatedAt:  now,
	}, nil
}

package data

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateReview(t *testing.T) {
	r, err := ValidateReview(ReviewInput{
		PropertyID: "p1",
		UserName:   " Sam ",
		UserEmail:  "Sam@Example.com",
		Rating:     4,
		Comment:    "Lovely garden.",
	}, testNow)
	require.NoError(t, err)

	assert.Equal(t, "Sam", r.UserName)
	assert.Equal(t, "sam@example.com", r.UserEmail)
	assert.Equal(t, 4, r.Rating)
	assert.Equal(t, testNow, r.CreatedAt)
}

func TestValidateReviewRejectsBadInput(t *testing.T) {
	_, err := ValidateReview(ReviewInput{
		PropertyID: "p1",
		UserEmail:  "nope",
		Rating:     6,
		Comment:    "ok",
	}, testNow)

	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)

	byField := map[string]string{}
	for _, fe := range verrs {
		byField[fe.Field] = fe.Message
	}
	assert.Equal(t, map[string]string{
		"userName":  "Name is required",
		"userEmail": "Email must be a valid email address",
		"rating":    "Rating must be between 1 and 5",
	}, byField)
}

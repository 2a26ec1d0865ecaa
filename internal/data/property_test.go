package data

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPricePerArea(t *testing.T) {
	p := &Property{Price: 250000, Area: 1000}
	assert.Equal(t, int64(250), p.PricePerArea())

	p = &Property{Price: 1000, Area: 3}
	assert.Equal(t, int64(333), p.PricePerArea())

	p = &Property{Price: 250000, Area: 0}
	assert.Equal(t, int64(0), p.PricePerArea())
}

func TestApplyUpdatesOnlySuppliedFields(t *testing.T) {
	p, err := Validate(validInput(), testNow)
	require.NoError(t, err)

	later := testNow.Add(time.Hour)
	p.Apply(PropertyInput{Price: ptr(300000.0), City: ptr(" Paris ")}, later)

	assert.Equal(t, 300000.0, p.Price)
	assert.Equal(t, "Paris", p.City)
	assert.Equal(t, "Sunny family house", p.Title)
	assert.Equal(t, testNow, p.CreatedAt)
	assert.Equal(t, later, p.UpdatedAt)
}

func TestTouchNeverMovesBeforeCreation(t *testing.T) {
	p := &Property{CreatedAt: testNow, UpdatedAt: testNow}
	p.Touch(testNow.Add(-time.Minute))
	assert.Equal(t, testNow, p.UpdatedAt)
}

package data

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryPropertyModelCRUD(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryPropertyModel()

	p, err := Validate(validInput(), testNow)
	require.NoError(t, err)
	require.NoError(t, store.Insert(ctx, p))
	require.NotEmpty(t, p.ID)

	got, err := store.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p, got)

	// The store hands out copies.
	got.Title = "changed"
	again, err := store.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sunny family house", again.Title)

	require.NoError(t, store.IncrementViews(ctx, p.ID))
	require.NoError(t, store.IncrementViews(ctx, p.ID))
	again, err = store.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), again.Views)
	assert.Equal(t, testNow, again.UpdatedAt)

	again.Apply(PropertyInput{Price: ptr(1.0)}, testNow.Add(time.Hour))
	require.NoError(t, store.Update(ctx, again))

	require.NoError(t, store.Delete(ctx, p.ID))
	_, err = store.Get(ctx, p.ID)
	assert.ErrorIs(t, err, ErrRecordNotFound)
	assert.ErrorIs(t, store.Delete(ctx, p.ID), ErrRecordNotFound)
	assert.ErrorIs(t, store.IncrementViews(ctx, p.ID), ErrRecordNotFound)
}

func TestMemoryPropertyModelGetAllFiltersAndSorts(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryPropertyModel()

	for i, seed := range []struct {
		typ   string
		price float64
	}{
		{TypeHouse, 300000},
		{TypeVilla, 900000},
		{TypeHouse, 150000},
	} {
		in := validInput()
		in.Type = ptr(seed.typ)
		in.Price = ptr(seed.price)
		p, err := Validate(in, testNow.Add(time.Duration(i)*time.Hour))
		require.NoError(t, err)
		require.NoError(t, store.Insert(ctx, p))
	}

	all, err := store.GetAll(ctx, Filters{SortSafeList: PropertySortSafeList})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, 150000.0, all[0].Price, "newest first by default")

	houses, err := store.GetAll(ctx, Filters{Type: TypeHouse, Sort: "price", SortSafeList: PropertySortSafeList})
	require.NoError(t, err)
	require.Len(t, houses, 2)
	assert.Equal(t, 150000.0, houses[0].Price)
	assert.Equal(t, 300000.0, houses[1].Price)

	featured, err := store.GetAll(ctx, Filters{Featured: ptr(true)})
	require.NoError(t, err)
	assert.Empty(t, featured)
}

func TestMemoryReviewModel(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryReviewModel()

	require.NoError(t, store.Insert(ctx, &Review{PropertyID: "a", Rating: 5, CreatedAt: testNow}))
	require.NoError(t, store.Insert(ctx, &Review{PropertyID: "a", Rating: 3, CreatedAt: testNow.Add(time.Minute)}))
	require.NoError(t, store.Insert(ctx, &Review{PropertyID: "b", Rating: 1, CreatedAt: testNow}))

	reviews, err := store.GetForProperty(ctx, "a")
	require.NoError(t, err)
	require.Len(t, reviews, 2)
	assert.Equal(t, 3, reviews[0].Rating)
	assert.Equal(t, 5, reviews[1].Rating)

	none, err := store.GetForProperty(ctx, "missing")
	require.NoError(t, err)
	assert.Empty(t, none)
}

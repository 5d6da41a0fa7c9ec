package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func intPtr(v int) *int { return &v }

func namesOf(categories []Category) []string {
	names := make([]string, 0, len(categories))
	for _, c := range categories {
		names = append(names, c.Name)
	}
	return names
}

func TestSortCategoriesForDisplay(t *testing.T) {
	t.Run("orders ascending with unordered last", func(t *testing.T) {
		categories := []Category{
			{Name: "Unordered"},
			{Name: "Second", Order: intPtr(1)},
			{Name: "First", Order: intPtr(0)},
		}

		SortCategoriesForDisplay(categories)

		assert.Equal(t, []string{"First", "Second", "Unordered"}, namesOf(categories))
	})

	t.Run("ties break by case-insensitive name", func(t *testing.T) {
		categories := []Category{
			{Name: "zebra", Order: intPtr(3)},
			{Name: "Apple", Order: intPtr(3)},
			{Name: "mango", Order: intPtr(3)},
		}

		SortCategoriesForDisplay(categories)

		assert.Equal(t, []string{"Apple", "mango", "zebra"}, namesOf(categories))
	})

	t.Run("unordered categories sort among themselves by name", func(t *testing.T) {
		categories := []Category{
			{Name: "cars"},
			{Name: "Books"},
			{Name: "Anchored", Order: intPtr(7)},
		}

		SortCategoriesForDisplay(categories)

		assert.Equal(t, []string{"Anchored", "Books", "cars"}, namesOf(categories))
	})
}

func TestNextCategoryOrder(t *testing.T) {
	assert.Equal(t, 0, NextCategoryOrder(nil))
	assert.Equal(t, 0, NextCategoryOrder([]Category{{Name: "no order"}}))
	assert.Equal(t, 6, NextCategoryOrder([]Category{
		{Order: intPtr(2)},
		{Order: intPtr(5)},
		{Name: "no order"},
	}))
}

func TestNeighborIndex(t *testing.T) {
	tests := []struct {
		name      string
		length    int
		index     int
		direction string
		want      int
		ok        bool
	}{
		{"up in the middle", 5, 2, "up", 1, true},
		{"down in the middle", 5, 2, "down", 3, true},
		{"up at the top is a no-op", 5, 0, "up", 0, false},
		{"down at the bottom is a no-op", 5, 4, "down", 0, false},
		{"index past the end", 5, 9, "up", 0, false},
		{"negative index", 5, -1, "down", 0, false},
		{"unknown direction", 5, 2, "sideways", 0, false},
		{"empty list", 0, 0, "up", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NeighborIndex(tt.length, tt.index, tt.direction)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestCategoryDescendantIDs(t *testing.T) {
	id := primitive.NewObjectID()
	category := Category{
		ID:   id,
		Name: "Electronics",
		Subcategories: []Subcategory{
			{ID: "phones", Name: "Phones"},
			{ID: "laptops", Name: "Laptops"},
		},
	}

	assert.Equal(t, []string{id.Hex(), "phones", "laptops"}, category.DescendantIDs())

	bare := Category{ID: id}
	assert.Equal(t, []string{id.Hex()}, bare.DescendantIDs())
}

func TestCategoryHasSubcategory(t *testing.T) {
	category := Category{Subcategories: []Subcategory{{ID: "phones"}}}

	assert.True(t, category.HasSubcategory("phones"))
	assert.False(t, category.HasSubcategory("laptops"))
}

func testCountry() Country {
	return Country{
		ID:   "lebanon",
		Name: "Lebanon",
		Governorates: []Governorate{
			{ID: "beirut", Name: "Beirut", Districts: []District{
				{ID: "achrafieh", Name: "Achrafieh"},
				{ID: "hamra", Name: "Hamra"},
			}},
			{ID: "mount-lebanon", Name: "Mount Lebanon", Districts: []District{
				{ID: "jbeil", Name: "Jbeil"},
			}},
		},
	}
}

func TestCountryIDCollections(t *testing.T) {
	country := testCountry()

	assert.Equal(t, []string{"beirut", "mount-lebanon"}, country.GovernorateIDs())
	assert.Equal(t, []string{"achrafieh", "hamra", "jbeil"}, country.DistrictIDs())
}

func TestFindGovernorate(t *testing.T) {
	country := testCountry()

	g, found := FindGovernorate(country.Governorates, "beirut")
	require.True(t, found)
	assert.Equal(t, "Beirut", g.Name)
	assert.True(t, g.HasDistrict("hamra"))
	assert.False(t, g.HasDistrict("jbeil"))

	_, found = FindGovernorate(country.Governorates, "bekaa")
	assert.False(t, found)
}

func TestWithDistrictAdded(t *testing.T) {
	country := testCountry()

	out, found := WithDistrictAdded(country.Governorates, "mount-lebanon", District{ID: "aley", Name: "Aley"})
	require.True(t, found)

	g, _ := FindGovernorate(out, "mount-lebanon")
	assert.Equal(t, []string{"jbeil", "aley"}, g.DistrictIDs())

	// The input array is untouched
	original, _ := FindGovernorate(country.Governorates, "mount-lebanon")
	assert.Equal(t, []string{"jbeil"}, original.DistrictIDs())

	_, found = WithDistrictAdded(country.Governorates, "bekaa", District{ID: "zahle"})
	assert.False(t, found)
}

func TestWithDistrictRemoved(t *testing.T) {
	country := testCountry()

	out, found := WithDistrictRemoved(country.Governorates, "beirut", "hamra")
	require.True(t, found)

	g, _ := FindGovernorate(out, "beirut")
	assert.Equal(t, []string{"achrafieh"}, g.DistrictIDs())

	// Unknown district inside a known governorate
	_, found = WithDistrictRemoved(country.Governorates, "beirut", "jbeil")
	assert.False(t, found)

	// Unknown governorate
	_, found = WithDistrictRemoved(country.Governorates, "bekaa", "zahle")
	assert.False(t, found)
}

func TestWithGovernorateRemoved(t *testing.T) {
	country := testCountry()

	out, found := WithGovernorateRemoved(country.Governorates, "beirut")
	require.True(t, found)
	assert.Equal(t, 1, len(out))
	assert.Equal(t, "mount-lebanon", out[0].ID)

	_, found = WithGovernorateRemoved(country.Governorates, "bekaa")
	assert.False(t, found)
}

func TestDeletionBlockedError(t *testing.T) {
	err := &DeletionBlockedError{Name: "Electronics"}
	assert.Equal(t, `cannot delete "Electronics": it is still referenced by listings`, err.Error())
}

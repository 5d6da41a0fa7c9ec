// models/taxonomy.go
package models

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Taxonomy errors. Controllers translate these into HTTP responses.
var (
	ErrValidation    = errors.New("required field is blank")
	ErrInvalidSlug   = errors.New("name does not produce a usable slug")
	ErrAlreadyExists = errors.New("a record with this id already exists")
)

// DeletionBlockedError is returned when a taxonomy node is still referenced
// by at least one listing.
type DeletionBlockedError struct {
	Name string
}

func (e *DeletionBlockedError) Error() string {
	return fmt.Sprintf("cannot delete %q: it is still referenced by listings", e.Name)
}

// SortCategoriesForDisplay orders categories by order ascending with
// unordered categories last, ties broken by case-insensitive name.
func SortCategoriesForDisplay(categories []Category) {
	sort.SliceStable(categories, func(i, j int) bool {
		oi, oj := categories[i].Order, categories[j].Order
		switch {
		case oi != nil && oj != nil && *oi != *oj:
			return *oi < *oj
		case oi != nil && oj == nil:
			return true
		case oi == nil && oj != nil:
			return false
		}
		return strings.ToLower(categories[i].Name) < strings.ToLower(categories[j].Name)
	})
}

// NextCategoryOrder returns max(existing orders)+1, or 0 when no category
// carries an order yet.
func NextCategoryOrder(categories []Category) int {
	next := 0
	for _, c := range categories {
		if c.Order != nil && *c.Order >= next {
			next = *c.Order + 1
		}
	}
	return next
}

// NeighborIndex returns the index a category at index swaps with for the
// given direction. ok is false at either boundary.
func NeighborIndex(length, index int, direction string) (int, bool) {
	switch direction {
	case "up":
		if index <= 0 || index >= length {
			return 0, false
		}
		return index - 1, true
	case "down":
		if index < 0 || index >= length-1 {
			return 0, false
		}
		return index + 1, true
	}
	return 0, false
}

// DescendantIDs collects the category id plus every subcategory id under it,
// the set the referential guard checks before a category delete.
func (c Category) DescendantIDs() []string {
	ids := []string{c.ID.Hex()}
	for _, sub := range c.Subcategories {
		ids = append(ids, sub.ID)
	}
	return ids
}

// HasSubcategory reports whether the category already embeds a subcategory
// with the given id.
func (c Category) HasSubcategory(id string) bool {
	for _, sub := range c.Subcategories {
		if sub.ID == id {
			return true
		}
	}
	return false
}

// GovernorateIDs returns the ids of every governorate in the country.
func (c Country) GovernorateIDs() []string {
	ids := make([]string, 0, len(c.Governorates))
	for _, g := range c.Governorates {
		ids = append(ids, g.ID)
	}
	return ids
}

// DistrictIDs returns the ids of every district in the country, across all
// governorates.
func (c Country) DistrictIDs() []string {
	var ids []string
	for _, g := range c.Governorates {
		ids = append(ids, g.DistrictIDs()...)
	}
	return ids
}

func (g Governorate) DistrictIDs() []string {
	ids := make([]string, 0, len(g.Districts))
	for _, d := range g.Districts {
		ids = append(ids, d.ID)
	}
	return ids
}

func (g Governorate) HasDistrict(id string) bool {
	for _, d := range g.Districts {
		if d.ID == id {
			return true
		}
	}
	return false
}

// FindGovernorate returns the governorate with the given id, if present.
func FindGovernorate(governorates []Governorate, id string) (Governorate, bool) {
	for _, g := range governorates {
		if g.ID == id {
			return g, true
		}
	}
	return Governorate{}, false
}

// HasGovernorate reports whether the array holds a governorate with the id.
func HasGovernorate(governorates []Governorate, id string) bool {
	_, ok := FindGovernorate(governorates, id)
	return ok
}

// WithDistrictAdded returns a new governorates array with the district
// appended to the named governorate. Districts sit two levels deep, so the
// caller rewrites the whole array instead of issuing a targeted append.
func WithDistrictAdded(governorates []Governorate, governorateID string, district District) ([]Governorate, bool) {
	found := false
	out := make([]Governorate, 0, len(governorates))
	for _, g := range governorates {
		if g.ID == governorateID {
			districts := make([]District, 0, len(g.Districts)+1)
			districts = append(districts, g.Districts...)
			districts = append(districts, district)
			g.Districts = districts
			found = true
		}
		out = append(out, g)
	}
	return out, found
}

// WithDistrictRemoved returns a new governorates array with the district
// filtered out of the named governorate.
func WithDistrictRemoved(governorates []Governorate, governorateID, districtID string) ([]Governorate, bool) {
	found := false
	out := make([]Governorate, 0, len(governorates))
	for _, g := range governorates {
		if g.ID == governorateID {
			districts := make([]District, 0, len(g.Districts))
			for _, d := range g.Districts {
				if d.ID == districtID {
					found = true
					continue
				}
				districts = append(districts, d)
			}
			g.Districts = districts
		}
		out = append(out, g)
	}
	return out, found
}

// WithGovernorateRemoved returns a new governorates array without the named
// governorate.
func WithGovernorateRemoved(governorates []Governorate, governorateID string) ([]Governorate, bool) {
	found := false
	out := make([]Governorate, 0, len(governorates))
	for _, g := range governorates {
		if g.ID == governorateID {
			found = true
			continue
		}
		out = append(out, g)
	}
	return out, found
}

// models/listing.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Listing status values
const (
	ListingStatusPending  = "pending"
	ListingStatusApproved = "approved"
	ListingStatusRejected = "rejected"
	ListingStatusSold     = "sold"
)

// TaxonomyRef is a denormalized snapshot of a taxonomy node taken at listing
// creation time. Deleting a taxonomy node later does not cascade into these
// copies; the referential guard exists to prevent that situation.
type TaxonomyRef struct {
	ID   string `json:"id" bson:"id"`
	Name string `json:"name" bson:"name"`
}

type Listing struct {
	ID                  primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID              primitive.ObjectID `json:"userId" bson:"userId"`
	Title               string             `json:"title" bson:"title"`
	Description         string             `json:"description" bson:"description"`
	Price               float64            `json:"price" bson:"price"`
	Currency            string             `json:"currency" bson:"currency"`
	Category            TaxonomyRef        `json:"category" bson:"category"`
	Subcategory         *TaxonomyRef       `json:"subcategory,omitempty" bson:"subcategory,omitempty"`
	LocationCountry     TaxonomyRef        `json:"locationCountry" bson:"locationCountry"`
	LocationGovernorate *TaxonomyRef       `json:"locationGovernorate,omitempty" bson:"locationGovernorate,omitempty"`
	LocationDistrict    *TaxonomyRef       `json:"locationDistrict,omitempty" bson:"locationDistrict,omitempty"`
	Photos              []string           `json:"photos,omitempty" bson:"photos,omitempty"`
	Thumbnails          []string           `json:"thumbnails,omitempty" bson:"thumbnails,omitempty"`
	VideoURL            string             `json:"videoUrl,omitempty" bson:"videoUrl,omitempty"`
	VideoThumbnail      string             `json:"videoThumbnail,omitempty" bson:"videoThumbnail,omitempty"`
	Status              string             `json:"status" bson:"status"`
	RejectionReason     string             `json:"rejectionReason,omitempty" bson:"rejectionReason,omitempty"`
	Views               int                `json:"views" bson:"views"`
	CreatedAt           time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt           time.Time          `json:"updatedAt" bson:"updatedAt"`
}

type CreateListingRequest struct {
	Title         string  `json:"title" validate:"required"`
	Description   string  `json:"description" validate:"required"`
	Price         float64 `json:"price" validate:"gte=0"`
	Currency      string  `json:"currency,omitempty"`
	CategoryID    string  `json:"categoryId" validate:"required"`
	SubcategoryID string  `json:"subcategoryId,omitempty"`
	CountryID     string  `json:"countryId" validate:"required"`
	GovernorateID string  `json:"governorateId,omitempty"`
	DistrictID    string  `json:"districtId,omitempty"`
}

type UpdateListingRequest struct {
	Title       string   `json:"title,omitempty"`
	Description string   `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
}

// ListingFilter narrows the public listing feed. Zero values mean "no
// constraint".
type ListingFilter struct {
	CategoryID    string
	SubcategoryID string
	CountryID     string
	GovernorateID string
	DistrictID    string
	MinPrice      *float64
	MaxPrice      *float64
	Search        string
	Page          int64
	PageSize      int64
}

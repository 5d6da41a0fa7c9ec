// models/location.go
package models

import "time"

// Country documents are keyed by the slug of the country name rather than a
// store-assigned id, so the slug must be non-empty at creation time.
type Country struct {
	ID           string        `json:"id" bson:"_id"`
	Name         string        `json:"name" bson:"name"`
	Governorates []Governorate `json:"governorates" bson:"governorates"`
	CreatedAt    time.Time     `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt" bson:"updatedAt"`
}

type Governorate struct {
	ID        string     `json:"id" bson:"id"`
	Name      string     `json:"name" bson:"name"`
	Districts []District `json:"districts" bson:"districts"`
}

type District struct {
	ID   string `json:"id" bson:"id"`
	Name string `json:"name" bson:"name"`
}

type CreateCountryRequest struct {
	Name string `json:"name" validate:"required"`
}

type CreateGovernorateRequest struct {
	Name string `json:"name" validate:"required"`
}

type CreateDistrictRequest struct {
	Name string `json:"name" validate:"required"`
}

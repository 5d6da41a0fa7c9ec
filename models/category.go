// models/category.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Subcategory is embedded in its parent category document. The ID is the
// slug of the name at creation time and is unique only within the parent's
// subcategories array.
type Subcategory struct {
	ID       string `json:"id" bson:"id"`
	Name     string `json:"name" bson:"name"`
	IconName string `json:"iconName,omitempty" bson:"iconName,omitempty"`
}

type Category struct {
	ID            primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name          string             `json:"name" bson:"name"`
	IconName      string             `json:"iconName,omitempty" bson:"iconName,omitempty"`
	Order         *int               `json:"order,omitempty" bson:"order,omitempty"`
	Subcategories []Subcategory      `json:"subcategories" bson:"subcategories"`
	CreatedAt     time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt" bson:"updatedAt"`
}

type CreateCategoryRequest struct {
	Name     string `json:"name" validate:"required"`
	IconName string `json:"iconName,omitempty"`
}

type CreateSubcategoryRequest struct {
	Name     string `json:"name" validate:"required"`
	IconName string `json:"iconName,omitempty"`
}

type MoveCategoryRequest struct {
	Index     int    `json:"index"`
	Direction string `json:"direction" validate:"required,oneof=up down"`
}

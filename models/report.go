// models/report.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	ReportStatusOpen     = "open"
	ReportStatusResolved = "resolved"
	ReportStatusDismiss  = "dismissed"
)

// Report is a user complaint about a listing, handled from the admin pages.
type Report struct {
	ID         primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	ListingID  primitive.ObjectID `json:"listingId" bson:"listingId"`
	ReporterID primitive.ObjectID `json:"reporterId" bson:"reporterId"`
	Reason     string             `json:"reason" bson:"reason"`
	Details    string             `json:"details,omitempty" bson:"details,omitempty"`
	Status     string             `json:"status" bson:"status"`
	ResolvedBy primitive.ObjectID `json:"resolvedBy,omitempty" bson:"resolvedBy,omitempty"`
	CreatedAt  time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt  time.Time          `json:"updatedAt" bson:"updatedAt"`
}

type CreateReportRequest struct {
	ListingID string `json:"listingId" validate:"required"`
	Reason    string `json:"reason" validate:"required"`
	Details   string `json:"details,omitempty"`
}

type ResolveReportRequest struct {
	Action string `json:"action" validate:"required,oneof=resolved dismissed"`
}

type ModerateListingRequest struct {
	Reason string `json:"reason,omitempty"`
}

type BanUserRequest struct {
	Reason string `json:"reason,omitempty"`
}

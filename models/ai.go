// models/ai.go
package models

// AnalyzeImageRequest carries the listing photo as a data URI
// ("data:<mime>;base64,<data>").
type AnalyzeImageRequest struct {
	PhotoDataURI string `json:"photoDataUri" validate:"required"`
}

type ImageAnalysis struct {
	IsAuthentic bool     `json:"isAuthentic"`
	Issues      []string `json:"issues"`
}

type RecommendationsRequest struct {
	ViewingHistory   []string `json:"viewingHistory"`
	CurrentListingID string   `json:"currentListingId" validate:"required"`
}

type Recommendations struct {
	RecommendedListings []Listing `json:"recommendedListings"`
}

package controllers

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/souqna/souqna_backend/models"
	"github.com/souqna/souqna_backend/repositories"
	"github.com/souqna/souqna_backend/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const recommendationCandidateLimit = 50

// AIController exposes the two generative helper endpoints. AI is nil when
// no API key was configured; both endpoints then answer 503.
type AIController struct {
	AI          *services.AIService
	ListingRepo *repositories.ListingRepository
}

func NewAIController(ai *services.AIService, listingRepo *repositories.ListingRepository) *AIController {
	return &AIController{
		AI:          ai,
		ListingRepo: listingRepo,
	}
}

// AnalyzeImage checks a listing photo for authenticity problems before the
// seller submits it
func (aic *AIController) AnalyzeImage(c echo.Context) error {
	if aic.AI == nil {
		return aic.unavailable(c)
	}

	var req models.AnalyzeImageRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "photoDataUri is required",
		})
	}

	if _, _, err := services.DecodeDataURI(req.PhotoDataURI); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: err.Error(),
		})
	}

	analysis, err := aic.AI.AnalyzeListingImage(c.Request().Context(), req.PhotoDataURI)
	if err != nil {
		log.Printf("Image analysis failed: %v", err)
		return c.JSON(http.StatusBadGateway, models.Response{
			Status:  http.StatusBadGateway,
			Message: "Image analysis is temporarily unavailable",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Image analyzed successfully",
		Data:    analysis,
	})
}

// GetRecommendations returns listings similar to what the user has been
// browsing. Candidates come from the newest approved listings; the model
// only ranks them.
func (aic *AIController) GetRecommendations(c echo.Context) error {
	if aic.AI == nil {
		return aic.unavailable(c)
	}

	var req models.RecommendationsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "currentListingId is required",
		})
	}

	currentID, err := primitive.ObjectIDFromHex(req.CurrentListingID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid listing ID",
		})
	}

	ctx := c.Request().Context()
	candidates, err := aic.ListingRepo.FindApprovedExcept(ctx, currentID, recommendationCandidateLimit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to load listings",
		})
	}

	recommendedIDs, err := aic.AI.RecommendListings(ctx, req.ViewingHistory, candidates)
	if err != nil {
		log.Printf("Recommendations failed: %v", err)
		return c.JSON(http.StatusBadGateway, models.Response{
			Status:  http.StatusBadGateway,
			Message: "Recommendations are temporarily unavailable",
		})
	}

	byID := make(map[string]models.Listing, len(candidates))
	for _, listing := range candidates {
		byID[listing.ID.Hex()] = listing
	}

	recommendations := models.Recommendations{RecommendedListings: []models.Listing{}}
	for _, id := range recommendedIDs {
		if listing, ok := byID[id]; ok {
			recommendations.RecommendedListings = append(recommendations.RecommendedListings, listing)
		}
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Recommendations retrieved successfully",
		Data:    recommendations,
	})
}

func (aic *AIController) unavailable(c echo.Context) error {
	return c.JSON(http.StatusServiceUnavailable, models.Response{
		Status:  http.StatusServiceUnavailable,
		Message: "AI features are not configured",
	})
}

package controllers

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/souqna/souqna_backend/models"
	"github.com/souqna/souqna_backend/repositories"
	"github.com/souqna/souqna_backend/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type ListingController struct {
	DB           *mongo.Database
	Repo         *repositories.ListingRepository
	CategoryRepo *repositories.CategoryRepository
	LocationRepo *repositories.LocationRepository
}

func NewListingController(db *mongo.Database, repo *repositories.ListingRepository, categoryRepo *repositories.CategoryRepository, locationRepo *repositories.LocationRepository) *ListingController {
	return &ListingController{
		DB:           db,
		Repo:         repo,
		CategoryRepo: categoryRepo,
		LocationRepo: locationRepo,
	}
}

// CreateListing creates a pending listing. Taxonomy ids are resolved against
// the current trees and stored as denormalized snapshots, so the listing
// keeps its category and location names even if the trees change later.
func (lc *ListingController) CreateListing(c echo.Context) error {
	userID, err := currentUserObjectID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Invalid token",
		})
	}

	var req models.CreateListingRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Title, description, category and country are required",
		})
	}

	ctx := c.Request().Context()
	listing, errMsg := lc.buildListing(c, userID, &req)
	if errMsg != "" {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: errMsg,
		})
	}

	if err := lc.Repo.Create(ctx, listing); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to create listing",
		})
	}

	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "Listing created successfully and is pending review",
		Data:    listing,
	})
}

// buildListing resolves the taxonomy snapshot for a new listing. Returns a
// human-readable message on any resolution failure.
func (lc *ListingController) buildListing(c echo.Context, userID primitive.ObjectID, req *models.CreateListingRequest) (*models.Listing, string) {
	ctx := c.Request().Context()

	categoryID, err := primitive.ObjectIDFromHex(req.CategoryID)
	if err != nil {
		return nil, "Invalid category ID"
	}
	category, err := lc.CategoryRepo.Get(ctx, categoryID)
	if err != nil {
		return nil, "Category not found"
	}

	var subcategory *models.TaxonomyRef
	if req.SubcategoryID != "" {
		found := false
		for _, sub := range category.Subcategories {
			if sub.ID == req.SubcategoryID {
				subcategory = &models.TaxonomyRef{ID: sub.ID, Name: sub.Name}
				found = true
				break
			}
		}
		if !found {
			return nil, "Subcategory not found in the selected category"
		}
	}

	country, err := lc.LocationRepo.Get(ctx, req.CountryID)
	if err != nil {
		return nil, "Country not found"
	}

	var governorateRef, districtRef *models.TaxonomyRef
	if req.GovernorateID != "" {
		governorate, found := models.FindGovernorate(country.Governorates, req.GovernorateID)
		if !found {
			return nil, "Governorate not found in the selected country"
		}
		governorateRef = &models.TaxonomyRef{ID: governorate.ID, Name: governorate.Name}

		if req.DistrictID != "" {
			found := false
			for _, d := range governorate.Districts {
				if d.ID == req.DistrictID {
					districtRef = &models.TaxonomyRef{ID: d.ID, Name: d.Name}
					found = true
					break
				}
			}
			if !found {
				return nil, "District not found in the selected governorate"
			}
		}
	} else if req.DistrictID != "" {
		return nil, "A district requires a governorate"
	}

	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}

	now := time.Now()
	return &models.Listing{
		UserID:              userID,
		Title:               utils.SanitizeInput(req.Title),
		Description:         utils.SanitizeInput(req.Description),
		Price:               req.Price,
		Currency:            currency,
		Category:            models.TaxonomyRef{ID: category.ID.Hex(), Name: category.Name},
		Subcategory:         subcategory,
		LocationCountry:     models.TaxonomyRef{ID: country.ID, Name: country.Name},
		LocationGovernorate: governorateRef,
		LocationDistrict:    districtRef,
		Status:              models.ListingStatusPending,
		CreatedAt:           now,
		UpdatedAt:           now,
	}, ""
}

// GetListings returns the public feed of approved listings
func (lc *ListingController) GetListings(c echo.Context) error {
	filter := models.ListingFilter{
		CategoryID:    c.QueryParam("category"),
		SubcategoryID: c.QueryParam("subcategory"),
		CountryID:     c.QueryParam("country"),
		GovernorateID: c.QueryParam("governorate"),
		DistrictID:    c.QueryParam("district"),
		Search:        utils.SanitizeInput(c.QueryParam("q")),
	}

	if v := c.QueryParam("minPrice"); v != "" {
		if price, err := strconv.ParseFloat(v, 64); err == nil {
			filter.MinPrice = &price
		}
	}
	if v := c.QueryParam("maxPrice"); v != "" {
		if price, err := strconv.ParseFloat(v, 64); err == nil {
			filter.MaxPrice = &price
		}
	}
	if v := c.QueryParam("page"); v != "" {
		filter.Page, _ = strconv.ParseInt(v, 10, 64)
	}
	if v := c.QueryParam("pageSize"); v != "" {
		filter.PageSize, _ = strconv.ParseInt(v, 10, 64)
	}

	listings, total, err := lc.Repo.Find(c.Request().Context(), filter)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to load listings",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Listings retrieved successfully",
		Data: map[string]interface{}{
			"listings": listings,
			"total":    total,
		},
	})
}

// GetListing returns one listing and counts the view
func (lc *ListingController) GetListing(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid listing ID",
		})
	}

	ctx := c.Request().Context()
	listing, err := lc.Repo.Get(ctx, id)
	if err != nil {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Listing not found",
		})
	}

	if listing.Status == models.ListingStatusApproved || listing.Status == models.ListingStatusSold {
		if err := lc.Repo.IncrementViews(ctx, id); err != nil {
			log.Printf("Failed to count view on listing %s: %v", id.Hex(), err)
		} else {
			listing.Views++
		}
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Listing retrieved successfully",
		Data:    listing,
	})
}

// GetMyListings returns the current user's listings in every status
func (lc *ListingController) GetMyListings(c echo.Context) error {
	userID, err := currentUserObjectID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Invalid token",
		})
	}

	listings, err := lc.Repo.FindByUser(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to load listings",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Listings retrieved successfully",
		Data:    listings,
	})
}

// UpdateListing lets the owner edit title, description and price. The
// listing goes back to pending so edits pass moderation again.
func (lc *ListingController) UpdateListing(c echo.Context) error {
	listing, errResp := lc.ownedListing(c)
	if errResp != nil {
		return errResp
	}

	var req models.UpdateListingRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	set := bson.M{"status": models.ListingStatusPending, "rejectionReason": ""}
	if req.Title != "" {
		set["title"] = utils.SanitizeInput(req.Title)
	}
	if req.Description != "" {
		set["description"] = utils.SanitizeInput(req.Description)
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return c.JSON(http.StatusBadRequest, models.Response{
				Status:  http.StatusBadRequest,
				Message: "Price must not be negative",
			})
		}
		set["price"] = *req.Price
	}

	if err := lc.Repo.Update(c.Request().Context(), listing.ID, set); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to update listing",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Listing updated successfully and is pending review",
	})
}

// MarkSold flags an approved listing as sold
func (lc *ListingController) MarkSold(c echo.Context) error {
	listing, errResp := lc.ownedListing(c)
	if errResp != nil {
		return errResp
	}

	if listing.Status != models.ListingStatusApproved {
		return c.JSON(http.StatusConflict, models.Response{
			Status:  http.StatusConflict,
			Message: "Only approved listings can be marked as sold",
		})
	}

	if err := lc.Repo.Update(c.Request().Context(), listing.ID, bson.M{"status": models.ListingStatusSold}); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to update listing",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Listing marked as sold",
	})
}

// DeleteListing removes the owner's listing
func (lc *ListingController) DeleteListing(c echo.Context) error {
	listing, errResp := lc.ownedListing(c)
	if errResp != nil {
		return errResp
	}

	if err := lc.Repo.Delete(c.Request().Context(), listing.ID); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to delete listing",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Listing deleted successfully",
	})
}

// UploadListingMedia attaches photos (with thumbnails) and an optional video
// (with an extracted thumbnail) to the owner's listing
func (lc *ListingController) UploadListingMedia(c echo.Context) error {
	listing, errResp := lc.ownedListing(c)
	if errResp != nil {
		return errResp
	}

	form, err := c.MultipartForm()
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Multipart form data is required",
		})
	}

	set := bson.M{}
	var photos, thumbnails []string

	for _, file := range form.File["photos"] {
		if !utils.IsValidImageFile(file) {
			return c.JSON(http.StatusBadRequest, models.Response{
				Status:  http.StatusBadRequest,
				Message: fmt.Sprintf("%s is not a supported image", file.Filename),
			})
		}

		src, err := file.Open()
		if err != nil {
			return c.JSON(http.StatusInternalServerError, models.Response{
				Status:  http.StatusInternalServerError,
				Message: "Failed to read uploaded file",
			})
		}
		fileData, err := io.ReadAll(src)
		src.Close()
		if err != nil {
			return c.JSON(http.StatusInternalServerError, models.Response{
				Status:  http.StatusInternalServerError,
				Message: "Failed to read uploaded file",
			})
		}

		filename := uuid.New().String() + filepath.Ext(file.Filename)
		fileURL, err := utils.UploadFileToPath(fileData, filename, "image", "listings")
		if err != nil {
			return c.JSON(http.StatusInternalServerError, models.Response{
				Status:  http.StatusInternalServerError,
				Message: "Failed to store uploaded file",
			})
		}
		photos = append(photos, fileURL)

		thumbURL, err := utils.GenerateImageThumbnail(fileData, filename)
		if err != nil {
			log.Printf("Failed to generate thumbnail for %s: %v", filename, err)
		} else {
			thumbnails = append(thumbnails, thumbURL)
		}
	}

	if len(photos) > 0 {
		set["photos"] = append(listing.Photos, photos...)
		set["thumbnails"] = append(listing.Thumbnails, thumbnails...)
	}

	if videoFiles := form.File["video"]; len(videoFiles) > 0 {
		file := videoFiles[0]
		if err := utils.ValidateFileType(file.Filename, "video"); err != nil {
			return c.JSON(http.StatusBadRequest, models.Response{
				Status:  http.StatusBadRequest,
				Message: err.Error(),
			})
		}

		src, err := file.Open()
		if err != nil {
			return c.JSON(http.StatusInternalServerError, models.Response{
				Status:  http.StatusInternalServerError,
				Message: "Failed to read uploaded video",
			})
		}
		fileData, err := io.ReadAll(src)
		src.Close()
		if err != nil {
			return c.JSON(http.StatusInternalServerError, models.Response{
				Status:  http.StatusInternalServerError,
				Message: "Failed to read uploaded video",
			})
		}

		filename := uuid.New().String() + filepath.Ext(file.Filename)
		videoURL, err := utils.UploadFileToPath(fileData, filename, "video", "videos")
		if err != nil {
			return c.JSON(http.StatusInternalServerError, models.Response{
				Status:  http.StatusInternalServerError,
				Message: "Failed to store uploaded video",
			})
		}
		set["videoUrl"] = videoURL

		videoThumb, err := utils.GenerateVideoThumbnail(videoURL)
		if err != nil {
			log.Printf("Failed to extract video thumbnail for %s: %v", filename, err)
		} else {
			set["videoThumbnail"] = videoThumb
		}
	}

	if len(set) == 0 {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "No photos or video provided",
		})
	}

	if err := lc.Repo.Update(c.Request().Context(), listing.ID, set); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to save media",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Media uploaded successfully",
		Data:    set,
	})
}

// GetShareQR returns a PNG QR code pointing at the listing's public page
func (lc *ListingController) GetShareQR(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid listing ID",
		})
	}

	ctx := c.Request().Context()
	if _, err := lc.Repo.Get(ctx, id); err != nil {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Listing not found",
		})
	}

	baseURL := os.Getenv("PUBLIC_BASE_URL")
	if baseURL == "" {
		baseURL = "https://souqna.app"
	}
	shareURL := fmt.Sprintf("%s/listings/%s", baseURL, id.Hex())

	png, err := utils.GenerateShareQR(shareURL, 256)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to generate QR code",
		})
	}

	return c.Blob(http.StatusOK, "image/png", png)
}

// ReportListing files a user complaint about a listing
func (lc *ListingController) ReportListing(c echo.Context) error {
	userID, err := currentUserObjectID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Invalid token",
		})
	}

	var req models.CreateReportRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Listing ID and reason are required",
		})
	}

	listingID, err := primitive.ObjectIDFromHex(req.ListingID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid listing ID",
		})
	}

	ctx := c.Request().Context()
	if _, err := lc.Repo.Get(ctx, listingID); err != nil {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Listing not found",
		})
	}

	now := time.Now()
	report := models.Report{
		ListingID:  listingID,
		ReporterID: userID,
		Reason:     utils.SanitizeInput(req.Reason),
		Details:    utils.SanitizeInput(req.Details),
		Status:     models.ReportStatusOpen,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	result, err := lc.DB.Collection("reports").InsertOne(ctx, report)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to submit report",
		})
	}
	report.ID = result.InsertedID.(primitive.ObjectID)

	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "Report submitted successfully",
		Data:    report,
	})
}

// ownedListing loads the listing from the path parameter and checks that the
// caller owns it. Admins pass the check too.
func (lc *ListingController) ownedListing(c echo.Context) (*models.Listing, error) {
	userID, err := currentUserObjectID(c)
	if err != nil {
		return nil, c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Invalid token",
		})
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return nil, c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid listing ID",
		})
	}

	listing, err := lc.Repo.Get(c.Request().Context(), id)
	if err != nil {
		return nil, c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Listing not found",
		})
	}

	userType := c.Get("userType")
	isAdmin := userType == "admin" || userType == "super_admin"
	if listing.UserID != userID && !isAdmin {
		return nil, c.JSON(http.StatusForbidden, models.Response{
			Status:  http.StatusForbidden,
			Message: "You do not own this listing",
		})
	}

	return listing, nil
}

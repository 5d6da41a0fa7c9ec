package controllers

import (
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/souqna/souqna_backend/models"
	"github.com/souqna/souqna_backend/repositories"
	"github.com/souqna/souqna_backend/utils"
	"github.com/souqna/souqna_backend/websocket"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type AdminController struct {
	DB          *mongo.Database
	ListingRepo *repositories.ListingRepository
	Hub         *websocket.Hub
}

func NewAdminController(db *mongo.Database, listingRepo *repositories.ListingRepository, hub *websocket.Hub) *AdminController {
	return &AdminController{
		DB:          db,
		ListingRepo: listingRepo,
		Hub:         hub,
	}
}

// GetPendingListings returns the moderation queue, oldest submission first
func (ac *AdminController) GetPendingListings(c echo.Context) error {
	listings, err := ac.ListingRepo.FindByStatus(c.Request().Context(), models.ListingStatusPending)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to load pending listings",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Pending listings retrieved successfully",
		Data:    listings,
	})
}

// ApproveListing publishes a pending listing
func (ac *AdminController) ApproveListing(c echo.Context) error {
	return ac.moderate(c, models.ListingStatusApproved, "Your listing has been approved", "")
}

// RejectListing declines a pending listing with an optional reason
func (ac *AdminController) RejectListing(c echo.Context) error {
	var req models.ModerateListingRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	notice := "Your listing has been rejected"
	if req.Reason != "" {
		notice = "Your listing has been rejected: " + req.Reason
	}
	return ac.moderate(c, models.ListingStatusRejected, notice, req.Reason)
}

func (ac *AdminController) moderate(c echo.Context, status, notice, reason string) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid listing ID",
		})
	}

	ctx := c.Request().Context()
	listing, err := ac.ListingRepo.Get(ctx, id)
	if err != nil {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Listing not found",
		})
	}

	if listing.Status != models.ListingStatusPending {
		return c.JSON(http.StatusConflict, models.Response{
			Status:  http.StatusConflict,
			Message: "Listing is not pending review",
		})
	}

	set := bson.M{"status": status, "rejectionReason": reason}
	if err := ac.ListingRepo.Update(ctx, id, set); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to update listing",
		})
	}
	listing.Status = status
	listing.RejectionReason = reason

	go ac.notifyOwner(listing, notice)

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Listing " + status,
		Data:    listing,
	})
}

func (ac *AdminController) notifyOwner(listing *models.Listing, notice string) {
	if err := ac.Hub.NotifyListingModerated(listing.UserID, listing); err != nil {
		utils.SendPushNotification(ac.DB, listing.UserID, "Listing update", notice, map[string]string{
			"type":      websocket.NotificationTypeListingModerated,
			"listingId": listing.ID.Hex(),
		})
	}

	if err := utils.SaveNotification(ac.DB, listing.UserID, "Listing update", notice, websocket.NotificationTypeListingModerated, map[string]string{
		"listingId": listing.ID.Hex(),
	}); err != nil {
		log.Printf("Failed to save moderation notification: %v", err)
	}
}

// GetReports lists user reports, open ones first, newest within each status
func (ac *AdminController) GetReports(c echo.Context) error {
	ctx := c.Request().Context()

	filter := bson.M{}
	if status := c.QueryParam("status"); status != "" {
		filter["status"] = status
	}

	opts := options.Find().SetSort(bson.D{
		{Key: "status", Value: 1},
		{Key: "createdAt", Value: -1},
	})
	cursor, err := ac.DB.Collection("reports").Find(ctx, filter, opts)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to load reports",
		})
	}
	defer cursor.Close(ctx)

	reports := []models.Report{}
	if err := cursor.All(ctx, &reports); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to load reports",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Reports retrieved successfully",
		Data:    reports,
	})
}

// ResolveReport closes a report as resolved or dismissed
func (ac *AdminController) ResolveReport(c echo.Context) error {
	adminID, err := currentUserObjectID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Invalid token",
		})
	}

	reportID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid report ID",
		})
	}

	var req models.ResolveReportRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Action must be 'resolved' or 'dismissed'",
		})
	}

	result, err := ac.DB.Collection("reports").UpdateOne(c.Request().Context(),
		bson.M{"_id": reportID, "status": models.ReportStatusOpen},
		bson.M{"$set": bson.M{
			"status":     req.Action,
			"resolvedBy": adminID,
			"updatedAt":  time.Now(),
		}},
	)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to update report",
		})
	}
	if result.MatchedCount == 0 {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Open report not found",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Report " + req.Action,
	})
}

// GetUsers lists user accounts for the admin pages
func (ac *AdminController) GetUsers(c echo.Context) error {
	ctx := c.Request().Context()

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetProjection(bson.M{"password": 0})
	cursor, err := ac.DB.Collection("users").Find(ctx, bson.M{}, opts)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to load users",
		})
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to load users",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Users retrieved successfully",
		Data:    users,
	})
}

// BanUser blocks an account from signing in
func (ac *AdminController) BanUser(c echo.Context) error {
	userID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid user ID",
		})
	}

	var req models.BanUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	ctx := c.Request().Context()
	var target models.User
	if err := ac.DB.Collection("users").FindOne(ctx, bson.M{"_id": userID}).Decode(&target); err != nil {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "User not found",
		})
	}

	// Admins cannot ban other admins
	if target.UserType != "user" {
		return c.JSON(http.StatusForbidden, models.Response{
			Status:  http.StatusForbidden,
			Message: "Only regular users can be banned",
		})
	}

	_, err = ac.DB.Collection("users").UpdateOne(ctx, bson.M{"_id": userID}, bson.M{
		"$set": bson.M{
			"isBanned":  true,
			"banReason": utils.SanitizeInput(req.Reason),
			"updatedAt": time.Now(),
		},
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to ban user",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "User banned successfully",
	})
}

// UnbanUser lifts a ban
func (ac *AdminController) UnbanUser(c echo.Context) error {
	userID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid user ID",
		})
	}

	result, err := ac.DB.Collection("users").UpdateOne(c.Request().Context(), bson.M{"_id": userID}, bson.M{
		"$set":   bson.M{"isBanned": false, "updatedAt": time.Now()},
		"$unset": bson.M{"banReason": ""},
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to unban user",
		})
	}
	if result.MatchedCount == 0 {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "User not found",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "User unbanned successfully",
	})
}

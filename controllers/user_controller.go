package controllers

import (
	"io"
	"net/http"
	"path/filepath"
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

type UserController struct {
	DB   *mongo.Database
	Repo *repositories.UserRepository
}

func NewUserController(db *mongo.Database) *UserController {
	return &UserController{
		DB:   db,
		Repo: repositories.NewUserRepository(db),
	}
}

// GetProfile returns the logged-in user's profile
func (uc *UserController) GetProfile(c echo.Context) error {
	userID, err := currentUserObjectID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Invalid token",
		})
	}

	user, err := uc.Repo.FindByID(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "User not found",
		})
	}

	user.Password = ""
	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Profile retrieved successfully",
		Data:    user,
	})
}

// UpdateProfile updates name, phone and FCM token
func (uc *UserController) UpdateProfile(c echo.Context) error {
	userID, err := currentUserObjectID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Invalid token",
		})
	}

	var req models.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	update := bson.M{"updatedAt": time.Now()}
	if req.FullName != "" {
		update["fullName"] = utils.SanitizeInput(req.FullName)
	}
	if req.Phone != "" {
		update["phone"] = utils.SanitizeInput(req.Phone)
	}
	if req.FCMToken != "" {
		update["fcmToken"] = req.FCMToken
	}

	ctx := c.Request().Context()
	_, err = uc.DB.Collection("users").UpdateOne(ctx, bson.M{"_id": userID}, bson.M{"$set": update})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to update profile",
		})
	}

	user, err := uc.Repo.FindByID(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to load profile",
		})
	}

	user.Password = ""
	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Profile updated successfully",
		Data:    user,
	})
}

// UploadProfilePicture stores the uploaded image and saves its URL
func (uc *UserController) UploadProfilePicture(c echo.Context) error {
	userID, err := currentUserObjectID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Invalid token",
		})
	}

	file, err := c.FormFile("profilePic")
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Profile picture file is required",
		})
	}

	if !utils.IsValidImageFile(file) {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "File must be a jpg, jpeg, png, gif or webp image",
		})
	}

	src, err := file.Open()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to read uploaded file",
		})
	}
	defer src.Close()

	fileData, err := io.ReadAll(src)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to read uploaded file",
		})
	}

	filename := uuid.New().String() + filepath.Ext(file.Filename)
	fileURL, err := utils.UploadFileToPath(fileData, filename, "image", "profiles")
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to store uploaded file",
		})
	}

	if err := uc.Repo.UpdateProfilePicture(c.Request().Context(), userID, fileURL); err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to save profile picture",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Profile picture updated successfully",
		Data:    map[string]string{"profilePic": fileURL},
	})
}

// AddFavorite saves a listing to the user's favorites
func (uc *UserController) AddFavorite(c echo.Context) error {
	userID, err := currentUserObjectID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Invalid token",
		})
	}

	listingID, err := primitive.ObjectIDFromHex(c.Param("listingId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid listing ID",
		})
	}

	ctx := c.Request().Context()

	count, err := uc.DB.Collection("listings").CountDocuments(ctx, bson.M{"_id": listingID})
	if err != nil || count == 0 {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Listing not found",
		})
	}

	_, err = uc.DB.Collection("users").UpdateOne(ctx, bson.M{"_id": userID}, bson.M{
		"$addToSet": bson.M{"favoriteListings": listingID},
		"$set":      bson.M{"updatedAt": time.Now()},
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to add favorite",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Listing added to favorites",
	})
}

// RemoveFavorite removes a listing from the user's favorites
func (uc *UserController) RemoveFavorite(c echo.Context) error {
	userID, err := currentUserObjectID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Invalid token",
		})
	}

	listingID, err := primitive.ObjectIDFromHex(c.Param("listingId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid listing ID",
		})
	}

	_, err = uc.DB.Collection("users").UpdateOne(c.Request().Context(), bson.M{"_id": userID}, bson.M{
		"$pull": bson.M{"favoriteListings": listingID},
		"$set":  bson.M{"updatedAt": time.Now()},
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Failed to remove favorite",
		})
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Listing removed from favorites",
	})
}

// GetFavorites returns the user's favorite listings, newest first
func (uc *UserController) GetFavorites(c echo.Context) error {
	userID, err := currentUserObjectID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, models.Response{
			Status:  http.StatusUnauthorized,
			Message: "Invalid token",
		})
	}

	ctx := c.Request().Context()
	user, err := uc.Repo.FindByID(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "User not found",
		})
	}

	listings := []models.Listing{}
	if len(user.FavoriteListings) > 0 {
		cursor, err := uc.DB.Collection("listings").Find(ctx, bson.M{
			"_id": bson.M{"$in": user.FavoriteListings},
		})
		if err != nil {
			return c.JSON(http.StatusInternalServerError, models.Response{
				Status:  http.StatusInternalServerError,
				Message: "Failed to load favorites",
			})
		}
		defer cursor.Close(ctx)

		if err := cursor.All(ctx, &listings); err != nil {
			return c.JSON(http.StatusInternalServerError, models.Response{
				Status:  http.StatusInternalServerError,
				Message: "Failed to load favorites",
			})
		}
	}

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Favorites retrieved successfully",
		Data:    listings,
	})
}

package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/souqna/souqna_backend/middleware"
	"github.com/souqna/souqna_backend/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// respondTaxonomyError maps repository errors to HTTP responses. Anything
// unrecognized becomes a generic 500 so storage details never leak out.
func respondTaxonomyError(c echo.Context, err error) error {
	var blocked *models.DeletionBlockedError

	switch {
	case errors.Is(err, models.ErrValidation):
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Name is required",
		})
	case errors.Is(err, models.ErrInvalidSlug):
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Name must contain at least one letter or digit",
		})
	case errors.Is(err, models.ErrAlreadyExists):
		return c.JSON(http.StatusConflict, models.Response{
			Status:  http.StatusConflict,
			Message: "An entry with this name already exists",
		})
	case errors.As(err, &blocked):
		return c.JSON(http.StatusConflict, models.Response{
			Status:  http.StatusConflict,
			Message: blocked.Error(),
		})
	case errors.Is(err, mongo.ErrNoDocuments):
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Not found",
		})
	default:
		return c.JSON(http.StatusInternalServerError, models.Response{
			Status:  http.StatusInternalServerError,
			Message: "Something went wrong",
		})
	}
}

// contextWithTimeout is used for background writes detached from the request
func contextWithTimeout() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}

// currentUserObjectID reads the authenticated user's id from the JWT context
func currentUserObjectID(c echo.Context) (primitive.ObjectID, error) {
	userID, err := middleware.ExtractUserID(c)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return primitive.ObjectIDFromHex(userID)
}

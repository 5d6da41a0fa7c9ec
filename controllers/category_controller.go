package controllers

import (
	"net/http"

	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	"github.com/souqna/souqna_backend/models"
	"github.com/souqna/souqna_backend/repositories"
	"github.com/souqna/souqna_backend/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CategoryController struct {
	Repo  *repositories.CategoryRepository
	Redis *redis.Client
}

func NewCategoryController(repo *repositories.CategoryRepository, redisClient *redis.Client) *CategoryController {
	return &CategoryController{Repo: repo, Redis: redisClient}
}

// GetCategories returns all categories in display order. The public feed hits
// this on every page load, so the response is cached.
func (cc *CategoryController) GetCategories(c echo.Context) error {
	ctx := c.Request().Context()

	var cached []models.Category
	if utils.GetCachedJSON(ctx, cc.Redis, utils.CacheKeyCategories, &cached) {
		return c.JSON(http.StatusOK, models.Response{
			Status:  http.StatusOK,
			Message: "Categories retrieved successfully",
			Data:    cached,
		})
	}

	categories, err := cc.Repo.List(ctx)
	if err != nil {
		return respondTaxonomyError(c, err)
	}

	utils.CacheJSON(ctx, cc.Redis, utils.CacheKeyCategories, categories)

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Categories retrieved successfully",
		Data:    categories,
	})
}

// CreateCategory creates a new top-level category
func (cc *CategoryController) CreateCategory(c echo.Context) error {
	var req models.CreateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Category name is required",
		})
	}

	category, err := cc.Repo.AddCategory(c.Request().Context(), req.Name, req.IconName)
	if err != nil {
		return respondTaxonomyError(c, err)
	}

	cc.invalidateCache(c)

	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "Category created successfully",
		Data:    category,
	})
}

// CreateSubcategory appends a subcategory to an existing category
func (cc *CategoryController) CreateSubcategory(c echo.Context) error {
	parentID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid category ID",
		})
	}

	var req models.CreateSubcategoryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Subcategory name is required",
		})
	}

	subcategory, err := cc.Repo.AddSubcategory(c.Request().Context(), parentID, req.Name, req.IconName)
	if err != nil {
		return respondTaxonomyError(c, err)
	}

	cc.invalidateCache(c)

	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "Subcategory created successfully",
		Data:    subcategory,
	})
}

// MoveCategory swaps a category with its display-order neighbor. Moving the
// first category up or the last one down changes nothing and still succeeds.
func (cc *CategoryController) MoveCategory(c echo.Context) error {
	var req models.MoveCategoryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Direction must be 'up' or 'down'",
		})
	}
	if req.Index < 0 {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Index must not be negative",
		})
	}

	if err := cc.Repo.MoveCategory(c.Request().Context(), req.Index, req.Direction); err != nil {
		return respondTaxonomyError(c, err)
	}

	cc.invalidateCache(c)

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Category moved successfully",
	})
}

// DeleteCategory removes a category unless listings still reference it or
// any of its subcategories
func (cc *CategoryController) DeleteCategory(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid category ID",
		})
	}

	if err := cc.Repo.DeleteCategory(c.Request().Context(), id); err != nil {
		return respondTaxonomyError(c, err)
	}

	cc.invalidateCache(c)

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Category deleted successfully",
	})
}

// DeleteSubcategory removes one subcategory from its parent's array
func (cc *CategoryController) DeleteSubcategory(c echo.Context) error {
	parentID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid category ID",
		})
	}

	ctx := c.Request().Context()
	parent, err := cc.Repo.Get(ctx, parentID)
	if err != nil {
		return respondTaxonomyError(c, err)
	}

	subID := c.Param("subId")
	var subcategory *models.Subcategory
	for i := range parent.Subcategories {
		if parent.Subcategories[i].ID == subID {
			subcategory = &parent.Subcategories[i]
			break
		}
	}
	if subcategory == nil {
		return c.JSON(http.StatusNotFound, models.Response{
			Status:  http.StatusNotFound,
			Message: "Subcategory not found",
		})
	}

	if err := cc.Repo.DeleteSubcategory(ctx, parentID, *subcategory); err != nil {
		return respondTaxonomyError(c, err)
	}

	cc.invalidateCache(c)

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Subcategory deleted successfully",
	})
}

func (cc *CategoryController) invalidateCache(c echo.Context) {
	utils.InvalidateCache(c.Request().Context(), cc.Redis, utils.CacheKeyCategories)
}

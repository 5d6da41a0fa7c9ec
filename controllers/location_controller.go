package controllers

import (
	"net/http"

	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	"github.com/souqna/souqna_backend/models"
	"github.com/souqna/souqna_backend/repositories"
	"github.com/souqna/souqna_backend/utils"
)

type LocationController struct {
	Repo  *repositories.LocationRepository
	Redis *redis.Client
}

func NewLocationController(repo *repositories.LocationRepository, redisClient *redis.Client) *LocationController {
	return &LocationController{Repo: repo, Redis: redisClient}
}

// GetLocations returns all countries with their governorates and districts
func (lc *LocationController) GetLocations(c echo.Context) error {
	ctx := c.Request().Context()

	var cached []models.Country
	if utils.GetCachedJSON(ctx, lc.Redis, utils.CacheKeyLocations, &cached) {
		return c.JSON(http.StatusOK, models.Response{
			Status:  http.StatusOK,
			Message: "Locations retrieved successfully",
			Data:    cached,
		})
	}

	countries, err := lc.Repo.List(ctx)
	if err != nil {
		return respondTaxonomyError(c, err)
	}

	utils.CacheJSON(ctx, lc.Redis, utils.CacheKeyLocations, countries)

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Locations retrieved successfully",
		Data:    countries,
	})
}

// CreateCountry creates a country keyed by the slug of its name
func (lc *LocationController) CreateCountry(c echo.Context) error {
	var req models.CreateCountryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Country name is required",
		})
	}

	country, err := lc.Repo.AddCountry(c.Request().Context(), req.Name)
	if err != nil {
		return respondTaxonomyError(c, err)
	}

	lc.invalidateCache(c)

	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "Country created successfully",
		Data:    country,
	})
}

// CreateGovernorate appends a governorate to a country
func (lc *LocationController) CreateGovernorate(c echo.Context) error {
	var req models.CreateGovernorateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Governorate name is required",
		})
	}

	governorate, err := lc.Repo.AddGovernorate(c.Request().Context(), c.Param("countryId"), req.Name)
	if err != nil {
		return respondTaxonomyError(c, err)
	}

	lc.invalidateCache(c)

	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "Governorate created successfully",
		Data:    governorate,
	})
}

// CreateDistrict appends a district to a governorate
func (lc *LocationController) CreateDistrict(c echo.Context) error {
	var req models.CreateDistrictRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Status:  http.StatusBadRequest,
			Message: "District name is required",
		})
	}

	district, err := lc.Repo.AddDistrict(c.Request().Context(), c.Param("countryId"), c.Param("governorateId"), req.Name)
	if err != nil {
		return respondTaxonomyError(c, err)
	}

	lc.invalidateCache(c)

	return c.JSON(http.StatusCreated, models.Response{
		Status:  http.StatusCreated,
		Message: "District created successfully",
		Data:    district,
	})
}

// DeleteCountry removes a country and everything under it, unless listings
// still reference the country or any of its governorates or districts
func (lc *LocationController) DeleteCountry(c echo.Context) error {
	if err := lc.Repo.DeleteCountry(c.Request().Context(), c.Param("countryId")); err != nil {
		return respondTaxonomyError(c, err)
	}

	lc.invalidateCache(c)

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Country deleted successfully",
	})
}

// DeleteGovernorate removes a governorate and its districts
func (lc *LocationController) DeleteGovernorate(c echo.Context) error {
	if err := lc.Repo.DeleteGovernorate(c.Request().Context(), c.Param("countryId"), c.Param("governorateId")); err != nil {
		return respondTaxonomyError(c, err)
	}

	lc.invalidateCache(c)

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "Governorate deleted successfully",
	})
}

// DeleteDistrict removes a single district
func (lc *LocationController) DeleteDistrict(c echo.Context) error {
	if err := lc.Repo.DeleteDistrict(c.Request().Context(), c.Param("countryId"), c.Param("governorateId"), c.Param("districtId")); err != nil {
		return respondTaxonomyError(c, err)
	}

	lc.invalidateCache(c)

	return c.JSON(http.StatusOK, models.Response{
		Status:  http.StatusOK,
		Message: "District deleted successfully",
	})
}

func (lc *LocationController) invalidateCache(c echo.Context) {
	utils.InvalidateCache(c.Request().Context(), lc.Redis, utils.CacheKeyLocations)
}

package controllers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tripmatch/internal/models/response_models"
	"tripmatch/internal/services"
	"tripmatch/pkg/utils"
)

type DestinationsController struct {
	catalogService    services.CatalogServiceInterface
	similarityService services.SimilarityServiceInterface
}

func NewDestinationsController(
	catalogService services.CatalogServiceInterface,
	similarityService services.SimilarityServiceInterface,
) *DestinationsController {
	return &DestinationsController{
		catalogService:    catalogService,
		similarityService: similarityService,
	}
}

// List godoc
// @Summary List destinations
// @Description Page through the destination catalog
// @Tags Destinations
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(20)
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /destinations [get]
func (d *DestinationsController) List(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		utils.HandleServiceError(c, utils.ErrInvalidPage)
		return
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if err != nil {
		utils.HandleServiceError(c, utils.ErrInvalidPageSize)
		return
	}

	ctx := context.Background()

	dests, err := d.catalogService.List(ctx, page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, dests, "Destinations retrieved")
}

// GetByID godoc
// @Summary Get a destination
// @Tags Destinations
// @Produce json
// @Param id path string true "Destination ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /destinations/{id} [get]
func (d *DestinationsController) GetByID(c *gin.Context) {
	ctx := context.Background()

	dest, err := d.catalogService.GetByID(ctx, c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, dest, "Destination retrieved")
}

// Similar godoc
// @Summary Find similar destinations
// @Description Nearest neighbours in normalized feature space
// @Tags Destinations
// @Produce json
// @Param id path string true "Destination ID"
// @Param k query int false "Number of neighbours" default(3)
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /destinations/{id}/similar [get]
func (d *DestinationsController) Similar(c *gin.Context) {
	k, err := strconv.Atoi(c.DefaultQuery("k", "3"))
	if err != nil || k < 1 || k > 20 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid neighbour count")
		return
	}

	ctx := context.Background()

	matches, err := d.similarityService.NearestInCatalog(ctx, c.Param("id"), k)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	out := make([]response_models.SimilarDestination, 0, len(matches))
	for _, m := range matches {
		out = append(out, response_models.SimilarDestination{
			Destination: response_models.Destination{
				ID:              m.Destination.ID.String(),
				City:            m.Destination.City,
				Country:         m.Destination.Country,
				Continent:       m.Destination.Continent,
				IataCode:        m.Destination.IataCode,
				Latitude:        m.Destination.Latitude,
				Longitude:       m.Destination.Longitude,
				AvgBudgetPerDay: m.Destination.AvgBudgetPerDay,
				FlightPrice:     m.Destination.FlightPrice,
				Climate:         m.Destination.Climate,
				BestMonths:      m.Destination.BestMonths,
			},
			Distance:      m.Distance,
			SimilarityPct: m.SimilarityPct,
		})
	}

	utils.RespondSuccess(c, out, "Similar destinations retrieved")
}

// ListTravelStyles godoc
// @Summary List travel styles
// @Tags Destinations
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Router /styles [get]
func (d *DestinationsController) ListTravelStyles(c *gin.Context) {
	utils.RespondSuccess(c, d.catalogService.Styles(), "Travel styles retrieved")
}

// ImportDestinations godoc
// @Summary Import the destination catalog
// @Description Upsert destinations from a semicolon-delimited CSV body
// @Tags Destinations
// @Accept text/csv
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /admin/destinations/import [post]
func (d *DestinationsController) ImportDestinations(c *gin.Context) {
	ctx := context.Background()

	result, err := d.catalogService.ImportCSV(ctx, c.Request.Body)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, result, "Catalog imported")
}

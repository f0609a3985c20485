package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tripdeck/internal/models/request_models"
	"tripdeck/internal/services"
	"tripdeck/pkg/utils"
)

type EnrichController struct {
	enrichService   services.EnrichServiceInterface
	scheduleService services.ScheduleServiceInterface
}

func NewEnrichController(enrichService services.EnrichServiceInterface, scheduleService services.ScheduleServiceInterface) *EnrichController {
	return &EnrichController{
		enrichService:   enrichService,
		scheduleService: scheduleService,
	}
}

// PlaceInfo godoc
// @Summary Generated description and notes for a place
// @Description Always answers; failures return a fallback description
// @Tags Enrich
// @Accept json
// @Produce json
// @Param request body request_models.PlaceInfoRequest true "Place name"
// @Success 200 {object} response_models.PlaceInfo
// @Security BearerAuth
// @Router /enrich/place [post]
func (e *EnrichController) PlaceInfo(c *gin.Context) {
	var req request_models.PlaceInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "name is required")
		return
	}

	utils.RespondSuccess(c, e.enrichService.PlaceInfo(c.Request.Context(), req.Name), "Place info fetched")
}

// TravelLeg godoc
// @Summary Suggest a transport item between a stop and a destination
// @Tags Enrich
// @Accept json
// @Produce json
// @Param request body request_models.TravelLegRequest true "Origin item and destination"
// @Success 200 {object} response_models.ItemDraft
// @Security BearerAuth
// @Router /enrich/travel [post]
func (e *EnrichController) TravelLeg(c *gin.Context) {
	var req request_models.TravelLegRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "origin_item_id and destination are required")
		return
	}

	draft, err := e.enrichService.TravelLeg(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, draft, "Travel suggestion created")
}

func (e *EnrichController) FillCoordinates(c *gin.Context) {
	item, err := e.scheduleService.FillCoordinates(c.Request.Context(), c.Param("itemId"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, item, "Coordinates updated")
}

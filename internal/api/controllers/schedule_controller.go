package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tripdeck/internal/models/request_models"
	"tripdeck/internal/services"
	"tripdeck/pkg/utils"
)

type ScheduleController struct {
	scheduleService services.ScheduleServiceInterface
}

func NewScheduleController(scheduleService services.ScheduleServiceInterface) *ScheduleController {
	return &ScheduleController{
		scheduleService: scheduleService,
	}
}

// GetSchedule godoc
// @Summary Get the whole itinerary
// @Description Days sorted by day number, items sorted by start time with untimed items last
// @Tags Schedule
// @Produce json
// @Success 200 {array} response_models.DaySchedule
// @Security BearerAuth
// @Router /schedule [get]
func (s *ScheduleController) GetSchedule(c *gin.Context) {
	days, err := s.scheduleService.GetSchedule(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, days, "Schedule fetched successfully")
}

// GetDay godoc
// @Summary Get one day
// @Tags Schedule
// @Produce json
// @Param dayId path string true "Day ID"
// @Success 200 {object} response_models.DaySchedule
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /schedule/days/{dayId} [get]
func (s *ScheduleController) GetDay(c *gin.Context) {
	day, err := s.scheduleService.GetDay(c.Request.Context(), c.Param("dayId"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, day, "Day fetched successfully")
}

// AddItem godoc
// @Summary Add an item to a day
// @Description Missing title becomes "New Item", missing type becomes ACTIVITY and missing link becomes a map search
// @Tags Schedule
// @Accept json
// @Produce json
// @Param dayId path string true "Day ID"
// @Param request body request_models.AddItemRequest true "Item"
// @Success 201 {object} response_models.ItineraryItemView
// @Security BearerAuth
// @Router /schedule/days/{dayId}/items [post]
func (s *ScheduleController) AddItem(c *gin.Context) {
	var req request_models.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid item payload")
		return
	}

	item, err := s.scheduleService.AddItem(c.Request.Context(), c.Param("dayId"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, item, "Item added successfully")
}

// UpdateItem godoc
// @Summary Update an item
// @Tags Schedule
// @Accept json
// @Produce json
// @Param itemId path string true "Item ID"
// @Param request body request_models.UpdateItemRequest true "Fields to change"
// @Success 200 {object} response_models.ItineraryItemView
// @Security BearerAuth
// @Router /schedule/items/{itemId} [put]
func (s *ScheduleController) UpdateItem(c *gin.Context) {
	var req request_models.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid item payload")
		return
	}

	item, err := s.scheduleService.UpdateItem(c.Request.Context(), c.Param("itemId"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, item, "Item updated successfully")
}

// DeleteItem godoc
// @Summary Delete an item
// @Tags Schedule
// @Param dayId path string true "Day ID"
// @Param itemId path string true "Item ID"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /schedule/days/{dayId}/items/{itemId} [delete]
func (s *ScheduleController) DeleteItem(c *gin.Context) {
	err := s.scheduleService.DeleteItem(c.Request.Context(), c.Param("dayId"), c.Param("itemId"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Item deleted successfully")
}

// ReorderItems godoc
// @Summary Set the order of a day's items
// @Tags Schedule
// @Accept json
// @Param dayId path string true "Day ID"
// @Param request body request_models.ReorderItemsRequest true "Every item id of the day, in order"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /schedule/days/{dayId}/order [put]
func (s *ScheduleController) ReorderItems(c *gin.Context) {
	var req request_models.ReorderItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "item_ids is required")
		return
	}

	if err := s.scheduleService.ReorderItems(c.Request.Context(), c.Param("dayId"), req.ItemIDs); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, req.ItemIDs, "Items reordered successfully")
}

// MoveItem godoc
// @Summary Drag an item from one position to another
// @Tags Schedule
// @Accept json
// @Param dayId path string true "Day ID"
// @Param request body request_models.MoveItemRequest true "Zero-based positions"
// @Success 200 {array} string
// @Security BearerAuth
// @Router /schedule/days/{dayId}/move [post]
func (s *ScheduleController) MoveItem(c *gin.Context) {
	var req request_models.MoveItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "from and to are required")
		return
	}

	ids, err := s.scheduleService.MoveItem(c.Request.Context(), c.Param("dayId"), *req.From, *req.To)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, ids, "Item moved successfully")
}

// OptimizeDay godoc
// @Summary Optimize the visiting order of a day
// @Description Keeps the first and last located stops, reorders the rest by driving route
// @Tags Schedule
// @Param dayId path string true "Day ID"
// @Success 200 {object} response_models.RouteOptimizationResult
// @Security BearerAuth
// @Router /schedule/days/{dayId}/optimize [post]
func (s *ScheduleController) OptimizeDay(c *gin.Context) {
	result, err := s.scheduleService.OptimizeDay(c.Request.Context(), c.Param("dayId"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	if !result.Success {
		utils.RespondSuccess(c, result, result.Error)
		return
	}
	utils.RespondSuccess(c, result, "Route optimized successfully")
}

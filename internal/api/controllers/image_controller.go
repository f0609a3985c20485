package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tripdeck/internal/models/request_models"
	"tripdeck/internal/services"
	"tripdeck/pkg/utils"
)

type ImageController struct {
	imageService    services.ImageServiceInterface
	scheduleService services.ScheduleServiceInterface
}

func NewImageController(imageService services.ImageServiceInterface, scheduleService services.ScheduleServiceInterface) *ImageController {
	return &ImageController{
		imageService:    imageService,
		scheduleService: scheduleService,
	}
}

// UploadForItem godoc
// @Summary Copy a remote image into storage and attach it to an item
// @Tags Images
// @Accept json
// @Produce json
// @Param itemId path string true "Item ID"
// @Param request body request_models.UploadImageRequest true "Source image URL"
// @Success 200 {object} response_models.ItineraryItemView
// @Security BearerAuth
// @Router /images/items/{itemId} [post]
func (i *ImageController) UploadForItem(c *gin.Context) {
	var req request_models.UploadImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "A valid image_url is required")
		return
	}

	item, err := i.scheduleService.AttachImage(c.Request.Context(), c.Param("itemId"), req.ImageURL)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, item, "Image uploaded successfully")
}

// Delete godoc
// @Summary Delete a stored image by its public URL
// @Tags Images
// @Accept json
// @Param request body request_models.DeleteImageRequest true "Public URL"
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /images [delete]
func (i *ImageController) Delete(c *gin.Context) {
	var req request_models.DeleteImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "url is required")
		return
	}

	deleted := i.imageService.Delete(c.Request.Context(), req.URL)
	utils.RespondSuccess(c, gin.H{"deleted": deleted}, "Image delete processed")
}

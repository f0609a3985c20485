package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tripdeck/internal/models/request_models"
	"tripdeck/internal/services"
	"tripdeck/pkg/utils"
)

type AuthController struct {
	authService services.AuthServiceInterface
}

func NewAuthController(authService services.AuthServiceInterface) *AuthController {
	return &AuthController{
		authService: authService,
	}
}

// Login godoc
// @Summary Unlock full mode with the trip password
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body request_models.LoginRequest true "Password"
// @Success 200 {object} response_models.TokenResponse
// @Failure 401 {object} utils.APIResponse
// @Router /auth/login [post]
func (a *AuthController) Login(c *gin.Context) {
	var req request_models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Password is required")
		return
	}

	token, err := a.authService.Login(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, token, "Login successful")
}

// ViewOnly godoc
// @Summary Enter read-only mode without a password
// @Tags Auth
// @Produce json
// @Success 200 {object} response_models.TokenResponse
// @Router /auth/view-only [post]
func (a *AuthController) ViewOnly(c *gin.Context) {
	token, err := a.authService.ViewOnly(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, token, "View-only session started")
}

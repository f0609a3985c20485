package request_models

type LoginRequest struct {
	Password string `json:"password" binding:"required"`
}

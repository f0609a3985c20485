package response_models

type TokenResponse struct {
	Token     string `json:"token"`
	Mode      string `json:"mode"`
	ExpiresAt int64  `json:"expires_at"`
}

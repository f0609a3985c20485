package request_models

type PlaceInfoRequest struct {
	Name string `json:"name" binding:"required"`
}

type TravelLegRequest struct {
	OriginItemID string `json:"origin_item_id" binding:"required"`
	Destination  string `json:"destination" binding:"required"`
	City         string `json:"city"`
}

type UploadImageRequest struct {
	ImageURL string `json:"image_url" binding:"required,url"`
}

type DeleteImageRequest struct {
	URL string `json:"url" binding:"required"`
}

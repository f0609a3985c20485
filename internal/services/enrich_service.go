package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	dbm "tripdeck/internal/models/db_models"
	"tripdeck/internal/models/request_models"
	"tripdeck/internal/models/response_models"
	"tripdeck/internal/repositories"
	"tripdeck/pkg/utils"
)

const (
	placeFallbackText = "無法取得資訊，請稍後再試。"
	missingKeyText    = "請設定 GEMINI_API_KEY 或 OPENAI_API_KEY 以使用自動搜尋功能。"
)

type EnrichServiceInterface interface {
	PlaceInfo(ctx context.Context, name string) response_models.PlaceInfo
	TravelLeg(ctx context.Context, request request_models.TravelLegRequest) (*response_models.ItemDraft, error)
}

type EnrichService struct {
	ai       utils.TextGenerator
	itemRepo repositories.ItemRepository
	geocoder Geocoder
	log      *zap.Logger
}

// NewEnrichService accepts a nil generator (no key configured) and a nil
// geocoder (no maps key).
func NewEnrichService(
	ai utils.TextGenerator,
	itemRepo repositories.ItemRepository,
	geocoder Geocoder,
	log *zap.Logger,
) EnrichServiceInterface {
	return &EnrichService{ai: ai, itemRepo: itemRepo, geocoder: geocoder, log: log}
}

type placeReply struct {
	Description       string `json:"description"`
	Notes             string `json:"notes"`
	MapLink           string `json:"mapLink"`
	SuggestedDuration string `json:"suggestedDuration"`
}

// PlaceInfo never fails; model or parse errors yield the canned description.
func (e *EnrichService) PlaceInfo(ctx context.Context, name string) response_models.PlaceInfo {
	info := response_models.PlaceInfo{MapLink: utils.MapSearchLink(name)}
	if e.ai == nil {
		info.Description = strRef(missingKeyText)
		return info
	}

	raw, err := e.ai.GenerateJSON(ctx, buildPlacePrompt(name))
	if err != nil {
		e.log.Warn("place info generation failed", zap.String("place", name), zap.Error(err))
		info.Description = strRef(placeFallbackText)
		return info
	}

	var reply placeReply
	if err := json.Unmarshal([]byte(utils.CleanJSONResponse(raw)), &reply); err != nil {
		e.log.Warn("place info reply is not JSON", zap.String("place", name), zap.Error(err))
		info.Description = strRef(placeFallbackText)
		return info
	}

	info.Description = optional(reply.Description)
	info.Notes = optional(reply.Notes)
	info.SuggestedDuration = optional(reply.SuggestedDuration)
	if strings.HasPrefix(reply.MapLink, "https://") {
		info.MapLink = reply.MapLink
	}

	if e.geocoder != nil {
		if c, err := e.geocoder.Geocode(ctx, name); err == nil {
			info.LocationCoordinates = c
		} else {
			e.log.Debug("geocode skipped", zap.String("place", name), zap.Error(err))
		}
	}
	return info
}

type travelReply struct {
	Method      string `json:"method"`
	Duration    string `json:"duration"`
	Cost        string `json:"cost"`
	Description string `json:"description"`
}

// TravelLeg drafts a transport item that starts when the origin stop ends.
func (e *EnrichService) TravelLeg(ctx context.Context, request request_models.TravelLegRequest) (*response_models.ItemDraft, error) {
	if e.ai == nil {
		return nil, fmt.Errorf("%w: no AI provider key", utils.ErrFeatureDisabled)
	}

	origin, err := e.itemRepo.GetItem(ctx, request.OriginItemID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if origin == nil {
		return nil, utils.ErrItemNotFound
	}

	raw, err := e.ai.GenerateJSON(ctx, buildTravelPrompt(origin.Title, request.Destination, request.City))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrUpstreamFailure, err)
	}
	var reply travelReply
	if err := json.Unmarshal([]byte(utils.CleanJSONResponse(raw)), &reply); err != nil {
		return nil, fmt.Errorf("%w: travel reply: %v", utils.ErrUpstreamFailure, err)
	}

	return draftTravelItem(origin, request.Destination, reply), nil
}

// draftTravelItem builds the suggested item from the model's reply.
func draftTravelItem(origin *dbm.ItineraryItem, destination string, reply travelReply) *response_models.ItemDraft {
	start := "00:00"
	if origin.StartTime != nil && *origin.StartTime != "" {
		start = *origin.StartTime
	}
	stay := 0
	if origin.Duration != nil {
		stay = utils.ParseDuration(*origin.Duration)
	}

	draft := &response_models.ItemDraft{
		Title:    fmt.Sprintf("交通移動：%s ➔ %s", origin.Title, destination),
		Time:     utils.AddTimeTo(start, stay),
		Duration: reply.Duration,
		Type:     string(TransportItemType(reply.Method)),
		Description: fmt.Sprintf("目的地：%s\n方式：%s\n時間：%s\n費用：%s\n說明：%s",
			destination, reply.Method, reply.Duration, reply.Cost, reply.Description),
	}
	if reply.Cost != "" {
		draft.Cost = strRef(reply.Cost)
	}
	return draft
}

// TransportItemType maps a free-text transport method to an item type.
func TransportItemType(method string) dbm.ItemType {
	m := strings.ToLower(method)
	switch {
	case containsAny(m, "grab", "計程車", "taxi", "car"):
		return dbm.ItemTypeCarRental
	case containsAny(m, "捷運", "地鐵", "metro", "train"):
		return dbm.ItemTypeTrain
	}
	return dbm.ItemTypeInfo
}

func buildPlacePrompt(name string) string {
	return fmt.Sprintf(`請針對地點「%s」提供以下資訊：
1. 繁體中文簡介（約 100-150 字），內容需包含歷史由來（如果有）與景點特色。
2. 實用資訊，包含：注意事項、建議交通方式、預估費用（請註明幣別）。
3. 建議停留時間（格式：X分鐘 或 X小時Y分鐘）。

請以 JSON 格式回傳，格式如下：
{
    "description": "簡介內容...",
    "notes": "【注意事項】：...\n【交通】：建議搭乘...，費用約...",
    "mapLink": "https://www.google.com/maps/...",
    "suggestedDuration": "1.5小時"
}`, name)
}

func buildTravelPrompt(origin, destination, city string) string {
	if city == "" {
		city = "未知"
	}
	return fmt.Sprintf(`我目前在「%s」，接下來要前往「%s」。
目前所在城市：%s

請評估最佳交通方式，並提供以下資訊：
1. 建議交通方式 (例如：步行、Grab Car、捷運、計程車等)
2. 預估交通時間 (格式：X分鐘 或 X小時Y分鐘)
3. 預估交通費用 (請註明幣別，例如：NT$ 100-150 或 $ 0)
4. 簡短說明 (例如：路線說明、注意事項等，約30-50字)

請以 JSON 格式回傳：
{
    "method": "交通方式",
    "duration": "預估時間",
    "cost": "預估費用",
    "description": "說明"
}`, origin, destination, city)
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func strRef(s string) *string { return &s }

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

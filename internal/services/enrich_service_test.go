package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	dbm "tripdeck/internal/models/db_models"
	"tripdeck/internal/models/request_models"
	resp "tripdeck/internal/models/response_models"
	"tripdeck/pkg/utils"
)

type scriptedAI struct {
	reply   string
	err     error
	prompts []string
}

func (s *scriptedAI) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	return s.reply, s.err
}

func (s *scriptedAI) Close() error { return nil }

type staticGeocoder struct{}

func (staticGeocoder) Geocode(ctx context.Context, query string) (*resp.Coordinates, error) {
	return &resp.Coordinates{Lat: 55.67, Lng: 12.56}, nil
}

func TestPlaceInfoParsesFencedReply(t *testing.T) {
	ai := &scriptedAI{reply: "Sure!\n```json\n{\"description\":\"運河港口\",\"notes\":\"【交通】：步行\",\"mapLink\":\"https://www.google.com/maps/place/Nyhavn\",\"suggestedDuration\":\"1小時\"}\n```"}
	svc := NewEnrichService(ai, newFakeItemRepo(), staticGeocoder{}, zap.NewNop())

	info := svc.PlaceInfo(context.Background(), "Nyhavn")
	require.Equal(t, "運河港口", *info.Description)
	require.Equal(t, "【交通】：步行", *info.Notes)
	require.Equal(t, "1小時", *info.SuggestedDuration)
	require.Equal(t, "https://www.google.com/maps/place/Nyhavn", info.MapLink)
	require.NotNil(t, info.LocationCoordinates)
	require.Nil(t, info.ImageURL)
	require.Contains(t, ai.prompts[0], "「Nyhavn」")
}

func TestPlaceInfoFallbacks(t *testing.T) {
	ctx := context.Background()

	noKey := NewEnrichService(nil, newFakeItemRepo(), nil, zap.NewNop()).PlaceInfo(ctx, "Tivoli")
	require.Equal(t, missingKeyText, *noKey.Description)
	require.Equal(t, utils.MapSearchLink("Tivoli"), noKey.MapLink)

	failing := NewEnrichService(&scriptedAI{err: errors.New("quota")}, newFakeItemRepo(), nil, zap.NewNop()).PlaceInfo(ctx, "Tivoli")
	require.Equal(t, placeFallbackText, *failing.Description)
	require.Equal(t, utils.MapSearchLink("Tivoli"), failing.MapLink)

	garbage := NewEnrichService(&scriptedAI{reply: "no json here"}, newFakeItemRepo(), nil, zap.NewNop()).PlaceInfo(ctx, "Tivoli")
	require.Equal(t, placeFallbackText, *garbage.Description)
}

func TestTravelLegDraft(t *testing.T) {
	origin := testItem("museum", "day1", strPtr("10:30"))
	origin.Title = "國立博物館"
	origin.Duration = strPtr("1.5小時")
	ai := &scriptedAI{reply: `{"method":"Grab Car","duration":"20分鐘","cost":"NT$ 150","description":"直達"}`}
	svc := NewEnrichService(ai, newFakeItemRepo(origin), nil, zap.NewNop())

	draft, err := svc.TravelLeg(context.Background(), request_models.TravelLegRequest{
		OriginItemID: "museum", Destination: "夜市", City: "台北",
	})
	require.NoError(t, err)
	require.Equal(t, "交通移動：國立博物館 ➔ 夜市", draft.Title)
	require.Equal(t, "12:00", draft.Time)
	require.Equal(t, "20分鐘", draft.Duration)
	require.Equal(t, string(dbm.ItemTypeCarRental), draft.Type)
	require.Equal(t, "目的地：夜市\n方式：Grab Car\n時間：20分鐘\n費用：NT$ 150\n說明：直達", draft.Description)
	require.True(t, strings.Contains(ai.prompts[0], "目前所在城市：台北"))
}

func TestTravelLegErrors(t *testing.T) {
	ctx := context.Background()
	in := request_models.TravelLegRequest{OriginItemID: "x", Destination: "y"}

	_, err := NewEnrichService(nil, newFakeItemRepo(), nil, zap.NewNop()).TravelLeg(ctx, in)
	require.ErrorIs(t, err, utils.ErrFeatureDisabled)

	_, err = NewEnrichService(&scriptedAI{reply: "{}"}, newFakeItemRepo(), nil, zap.NewNop()).TravelLeg(ctx, in)
	require.ErrorIs(t, err, utils.ErrItemNotFound)
}

func TestTransportItemType(t *testing.T) {
	cases := map[string]dbm.ItemType{
		"Grab Car": dbm.ItemTypeCarRental,
		"搭計程車":     dbm.ItemTypeCarRental,
		"捷運淡水線":    dbm.ItemTypeTrain,
		"Metro M2": dbm.ItemTypeTrain,
		"步行":       dbm.ItemTypeInfo,
	}
	for method, want := range cases {
		require.Equal(t, want, TransportItemType(method), method)
	}
}

func TestDraftTravelItemWithoutOriginTime(t *testing.T) {
	origin := testItem("o", "day1", nil)
	draft := draftTravelItem(&origin, "B", travelReply{Method: "walk", Duration: "5分鐘"})
	require.Equal(t, "00:00", draft.Time)
	require.Nil(t, draft.Cost)
}

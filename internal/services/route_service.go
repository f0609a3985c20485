package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"tripdeck/internal/config"
	resp "tripdeck/internal/models/response_models"
	mem "tripdeck/pkg/memcache"
	"tripdeck/pkg/utils"
)

const (
	routeNeedTwoPoints = "需要至少兩個有座標的地點才能優化路線"
	routeFailed        = "路線優化失敗"
	routeNoKey         = "未設定 Google Maps API 金鑰"
)

// mapsStatusError carries a non-OK status from the Maps web services.
type mapsStatusError struct {
	status string
}

func (e *mapsStatusError) Error() string {
	return "google maps api error: " + e.status
}

type Geocoder interface {
	Geocode(ctx context.Context, query string) (*resp.Coordinates, error)
}

type RouteServiceInterface interface {
	Geocoder
	OptimizeRoute(ctx context.Context, items []resp.ItineraryItemView) resp.RouteOptimizationResult
}

// GoogleRouteClient wraps the Directions and Geocoding web services.
// Responses are cached per coordinate sequence and per query.
type GoogleRouteClient struct {
	HTTP       *http.Client
	APIKey     string
	BaseURL    string
	Cache      mem.TTLStore
	DefaultTTL time.Duration
	log        *zap.Logger
}

func NewGoogleRouteClient(cfg *config.Config, cache mem.TTLStore, log *zap.Logger) *GoogleRouteClient {
	return &GoogleRouteClient{
		HTTP:       &http.Client{Timeout: 15 * time.Second},
		APIKey:     cfg.GoogleMapsAPIKey,
		BaseURL:    strings.TrimRight(cfg.GoogleMapsBaseURL, "/"),
		Cache:      cache,
		DefaultTTL: 7 * 24 * time.Hour,
		log:        log,
	}
}

type directionsLeg struct {
	Distance struct {
		Value int `json:"value"`
	} `json:"distance"`
	Duration struct {
		Value int `json:"value"`
	} `json:"duration"`
}

type directionsRoute struct {
	WaypointOrder []int           `json:"waypoint_order"`
	Legs          []directionsLeg `json:"legs"`
}

// OptimizeRoute keeps the first and last located stops fixed and lets the
// Directions API reorder the ones between. Stops without coordinates are
// appended in their original order.
func (c *GoogleRouteClient) OptimizeRoute(ctx context.Context, items []resp.ItineraryItemView) resp.RouteOptimizationResult {
	located := make([]resp.ItineraryItemView, 0, len(items))
	var unlocated []string
	for _, it := range items {
		if it.LocationCoordinates != nil {
			located = append(located, it)
		} else {
			unlocated = append(unlocated, it.ID)
		}
	}

	failed := func(msg string) resp.RouteOptimizationResult {
		order := make([]string, len(items))
		for i, it := range items {
			order[i] = it.ID
		}
		return resp.RouteOptimizationResult{OptimizedOrder: order, Success: false, Error: msg}
	}

	if len(located) < 2 {
		return failed(routeNeedTwoPoints)
	}
	if c.APIKey == "" {
		return failed(routeNoKey)
	}

	route, err := c.directions(ctx, located)
	if err != nil {
		c.log.Warn("route optimization failed", zap.Error(err))
		var se *mapsStatusError
		if errors.As(err, &se) {
			return failed(routeFailed + ": " + se.status)
		}
		return failed(routeFailed)
	}

	order := make([]string, 0, len(items))
	order = append(order, located[0].ID)
	middle := located[1 : len(located)-1]
	if len(middle) > 0 {
		if len(route.WaypointOrder) != len(middle) {
			return failed(routeFailed)
		}
		for _, idx := range route.WaypointOrder {
			if idx < 0 || idx >= len(middle) {
				return failed(routeFailed)
			}
			order = append(order, middle[idx].ID)
		}
	}
	order = append(order, located[len(located)-1].ID)
	order = append(order, unlocated...)

	var dist, dur int
	for _, leg := range route.Legs {
		dist += leg.Distance.Value
		dur += leg.Duration.Value
	}

	return resp.RouteOptimizationResult{
		OptimizedOrder: order,
		TotalDistance:  dist,
		TotalDuration:  dur,
		DistanceText:   utils.FormatDistance(float64(dist)),
		DurationText:   utils.FormatRouteDuration(dur),
		Success:        true,
	}
}

func (c *GoogleRouteClient) directions(ctx context.Context, located []resp.ItineraryItemView) (*directionsRoute, error) {
	coords := make([]string, len(located))
	for i, it := range located {
		coords[i] = latLng(*it.LocationCoordinates)
	}
	key := "route:" + strings.Join(coords, ";")
	if raw, ok := c.Cache.Get(key); ok {
		var cached directionsRoute
		if err := json.Unmarshal(raw, &cached); err == nil {
			return &cached, nil
		}
	}

	q := url.Values{}
	q.Set("origin", coords[0])
	q.Set("destination", coords[len(coords)-1])
	if len(coords) > 2 {
		q.Set("waypoints", "optimize:true|"+strings.Join(coords[1:len(coords)-1], "|"))
	}
	q.Set("key", c.APIKey)

	var payload struct {
		Status string            `json:"status"`
		Routes []directionsRoute `json:"routes"`
	}
	if err := c.getJSON(ctx, "/maps/api/directions/json", q, &payload); err != nil {
		return nil, err
	}
	if payload.Status != "OK" {
		return nil, &mapsStatusError{status: payload.Status}
	}
	if len(payload.Routes) == 0 {
		return nil, &mapsStatusError{status: "ZERO_RESULTS"}
	}

	route := payload.Routes[0]
	if raw, err := json.Marshal(route); err == nil {
		c.Cache.Set(key, raw, c.DefaultTTL)
	}
	return &route, nil
}

func (c *GoogleRouteClient) Geocode(ctx context.Context, query string) (*resp.Coordinates, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, utils.ErrInvalidInput
	}
	if c.APIKey == "" {
		return nil, fmt.Errorf("%w: GOOGLE_MAPS_API_KEY", utils.ErrFeatureDisabled)
	}

	key := "geocode:" + strings.ToLower(query)
	if raw, ok := c.Cache.Get(key); ok {
		var cached resp.Coordinates
		if err := json.Unmarshal(raw, &cached); err == nil {
			return &cached, nil
		}
	}

	q := url.Values{}
	q.Set("address", query)
	q.Set("key", c.APIKey)

	var payload struct {
		Status  string `json:"status"`
		Results []struct {
			Geometry struct {
				Location resp.Coordinates `json:"location"`
			} `json:"geometry"`
		} `json:"results"`
	}
	if err := c.getJSON(ctx, "/maps/api/geocode/json", q, &payload); err != nil {
		return nil, err
	}
	if payload.Status != "OK" || len(payload.Results) == 0 {
		return nil, fmt.Errorf("%w: geocode status %s", utils.ErrUpstreamFailure, payload.Status)
	}

	loc := payload.Results[0].Geometry.Location
	if raw, err := json.Marshal(loc); err == nil {
		c.Cache.Set(key, raw, c.DefaultTTL)
	}
	return &loc, nil
}

func (c *GoogleRouteClient) getJSON(ctx context.Context, path string, q url.Values, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return fmt.Errorf("google maps request: %v", stripURL(err))
	}
	res, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("%w: google maps http error: %v", utils.ErrUpstreamFailure, stripURL(err))
	}
	defer res.Body.Close()
	if res.StatusCode/100 != 2 {
		return fmt.Errorf("%w: google maps bad status: %s", utils.ErrUpstreamFailure, res.Status)
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("google maps decode: %w", err)
	}
	return nil
}

// stripURL drops the request URL, which carries the API key, from transport
// errors.
func stripURL(err error) error {
	var ue *url.Error
	if errors.As(err, &ue) {
		return fmt.Errorf("%s: %w", ue.Op, ue.Err)
	}
	return err
}

func latLng(c resp.Coordinates) string {
	return fmt.Sprintf("%f,%f", c.Lat, c.Lng)
}

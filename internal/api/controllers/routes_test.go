package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"tripdeck/internal/config"
	"tripdeck/internal/models/request_models"
	"tripdeck/internal/models/response_models"
	"tripdeck/internal/services"
	"tripdeck/pkg/middleware"
	"tripdeck/pkg/utils"
)

// Unimplemented methods panic through the nil embedded interface.
type stubSchedule struct {
	services.ScheduleServiceInterface
	deleted []string
}

func (s *stubSchedule) GetSchedule(ctx context.Context) ([]response_models.DaySchedule, error) {
	return []response_models.DaySchedule{{ID: "day1", Items: []response_models.ItineraryItemView{}}}, nil
}

func (s *stubSchedule) GetDay(ctx context.Context, dayID string) (*response_models.DaySchedule, error) {
	if dayID != "day1" {
		return nil, utils.ErrDayNotFound
	}
	return &response_models.DaySchedule{ID: dayID}, nil
}

func (s *stubSchedule) DeleteItem(ctx context.Context, dayID, itemID string) error {
	s.deleted = append(s.deleted, itemID)
	return nil
}

func (s *stubSchedule) MoveItem(ctx context.Context, dayID string, from, to int) ([]string, error) {
	return []string{"b", "a"}, nil
}

type stubAuth struct {
	issuer *utils.TokenIssuer
}

func (s stubAuth) Login(ctx context.Context, req request_models.LoginRequest) (*response_models.TokenResponse, error) {
	if req.Password != "123456" {
		return nil, utils.ErrInvalidCredentials
	}
	tok, exp, _ := s.issuer.CreateToken(utils.ModeFull)
	return &response_models.TokenResponse{Token: tok, Mode: utils.ModeFull, ExpiresAt: exp.Unix()}, nil
}

func (s stubAuth) ViewOnly(ctx context.Context) (*response_models.TokenResponse, error) {
	tok, exp, _ := s.issuer.CreateToken(utils.ModeViewOnly)
	return &response_models.TokenResponse{Token: tok, Mode: utils.ModeViewOnly, ExpiresAt: exp.Unix()}, nil
}

type stubCurrency struct{}

func (stubCurrency) Rate(ctx context.Context, code string) float64 { return 36.42 }
func (stubCurrency) Convert(ctx context.Context, amount decimal.Decimal, code string) decimal.Decimal {
	return amount
}
func (stubCurrency) Rates(ctx context.Context) response_models.RateTableResponse {
	return response_models.RateTableResponse{Base: "TWD"}
}
func (stubCurrency) Base() string { return "TWD" }

func newTestEngine(t *testing.T) (*gin.Engine, *stubSchedule) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	issuer := utils.NewTokenIssuer("secret", time.Hour)
	schedule := &stubSchedule{}
	r := gin.New()
	r.Use(middleware.TraceIDMiddleware())
	RegisterRoutes(r, Router{
		Config:   &config.Config{EnrichRPS: 2},
		Issuer:   issuer,
		Auth:     NewAuthController(stubAuth{issuer: issuer}),
		Schedule: NewScheduleController(schedule),
		Expense:  NewExpenseController(nil),
		Currency: NewCurrencyController(stubCurrency{}),
		Enrich:   NewEnrichController(nil, schedule),
		Image:    NewImageController(nil, schedule),
	})
	return r, schedule
}

func call(t *testing.T, r http.Handler, method, path, token string, body interface{}) (*httptest.ResponseRecorder, utils.APIResponse) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env utils.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w, env
}

func login(t *testing.T, r http.Handler, path string, body interface{}) string {
	t.Helper()
	w, env := call(t, r, http.MethodPost, path, "", body)
	require.Equal(t, http.StatusOK, w.Code)
	data := env.Data.(map[string]interface{})
	return data["token"].(string)
}

func TestAuthFlow(t *testing.T) {
	r, _ := newTestEngine(t)

	w, env := call(t, r, http.MethodPost, "/auth/login", "", gin.H{"password": "nope"})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, "error", env.Status)
	require.NotEmpty(t, env.TraceID)

	w, _ = call(t, r, http.MethodPost, "/auth/login", "", gin.H{})
	require.Equal(t, http.StatusBadRequest, w.Code)

	full := login(t, r, "/auth/login", gin.H{"password": "123456"})
	require.NotEmpty(t, full)
}

func TestReadsNeedSession(t *testing.T) {
	r, _ := newTestEngine(t)

	w, _ := call(t, r, http.MethodGet, "/schedule", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	view := login(t, r, "/auth/view-only", nil)
	w, env := call(t, r, http.MethodGet, "/schedule", view, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "success", env.Status)

	w, _ = call(t, r, http.MethodGet, "/schedule/days/day9", view, nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	w, env = call(t, r, http.MethodGet, "/currency/rate/eur", view, nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := env.Data.(map[string]interface{})
	require.Equal(t, "EUR", data["currency"])
	require.Equal(t, 36.42, data["rate"])
}

func TestWritesNeedFullMode(t *testing.T) {
	r, schedule := newTestEngine(t)
	view := login(t, r, "/auth/view-only", nil)
	full := login(t, r, "/auth/login", gin.H{"password": "123456"})

	w, _ := call(t, r, http.MethodDelete, "/schedule/days/day1/items/a", view, nil)
	require.Equal(t, http.StatusForbidden, w.Code)
	require.Empty(t, schedule.deleted)

	w, _ = call(t, r, http.MethodPost, "/enrich/place", view, gin.H{"name": "Tivoli"})
	require.Equal(t, http.StatusForbidden, w.Code)

	w, _ = call(t, r, http.MethodDelete, "/schedule/days/day1/items/a", full, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, []string{"a"}, schedule.deleted)

	w, _ = call(t, r, http.MethodPost, "/schedule/days/day1/move", full, gin.H{"from": 1})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w, env := call(t, r, http.MethodPost, "/schedule/days/day1/move", full, gin.H{"from": 1, "to": 0})
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, []interface{}{"b", "a"}, env.Data)
}

package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"tripdeck/internal/config"
	resp "tripdeck/internal/models/response_models"
	"tripdeck/pkg/utils"
)

const rateTTL = time.Hour

// fallbackRates are TWD per unit, used when the rate API is unreachable.
var fallbackRates = map[string]float64{
	"EUR": 36.42,
	"NOK": 3.10,
	"DKK": 4.85,
	"VND": 0.0012,
}

type CurrencyServiceInterface interface {
	Rate(ctx context.Context, code string) float64
	Convert(ctx context.Context, amount decimal.Decimal, code string) decimal.Decimal
	Rates(ctx context.Context) resp.RateTableResponse
	Base() string
}

type CurrencyService struct {
	http   *http.Client
	apiURL string
	base   string
	cache  RateCache
	log    *zap.Logger

	// collapses concurrent refreshes
	mu sync.Mutex
}

func NewCurrencyService(cfg *config.Config, cache RateCache, log *zap.Logger) CurrencyServiceInterface {
	return &CurrencyService{
		http:   &http.Client{Timeout: 10 * time.Second},
		apiURL: strings.TrimRight(cfg.FXAPIURL, "/"),
		base:   cfg.BaseCurrency,
		cache:  cache,
		log:    log,
	}
}

func (s *CurrencyService) Base() string { return s.base }

// Rate returns base units per one unit of code. It never fails: the base
// currency is 1, unknown codes fall back to a fixed table and then to 1.
func (s *CurrencyService) Rate(ctx context.Context, code string) float64 {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" || code == s.base {
		return 1
	}

	table, _ := s.table(ctx)
	if table != nil {
		if r, ok := table.Rates[code]; ok && validRate(r) {
			return r
		}
	}
	if r, ok := fallbackRates[code]; ok {
		return r
	}
	return 1
}

func (s *CurrencyService) Convert(ctx context.Context, amount decimal.Decimal, code string) decimal.Decimal {
	rate := decimal.NewFromFloat(s.Rate(ctx, code))
	return amount.Mul(rate).Round(2)
}

func (s *CurrencyService) Rates(ctx context.Context) resp.RateTableResponse {
	table, source := s.table(ctx)
	if table == nil {
		rates := make(map[string]float64, len(fallbackRates)+1)
		for k, v := range fallbackRates {
			rates[k] = v
		}
		rates[s.base] = 1
		return resp.RateTableResponse{Base: s.base, Rates: rates, Source: "fallback"}
	}
	return resp.RateTableResponse{
		Base:      table.Base,
		Rates:     table.Rates,
		FetchedAt: table.FetchedAt,
		Source:    source,
	}
}

func (s *CurrencyService) table(ctx context.Context) (*RateTable, string) {
	if t, ok := s.cache.Get(ctx, s.base); ok {
		return t, "cache"
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.cache.Get(ctx, s.base); ok {
		return t, "cache"
	}

	t, err := s.fetch(ctx)
	if err != nil {
		s.log.Warn("exchange rate fetch failed, using fallback", zap.Error(err))
		return nil, ""
	}
	if err := s.cache.Set(ctx, t, rateTTL); err != nil {
		s.log.Warn("exchange rate cache write failed", zap.Error(err))
	}
	return t, "live"
}

// fetch inverts the API's "units per base" quotes into "base per unit".
func (s *CurrencyService) fetch(ctx context.Context) (*RateTable, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.apiURL+"/"+s.base, nil)
	if err != nil {
		return nil, err
	}
	res, err := s.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrUpstreamFailure, err)
	}
	defer res.Body.Close()
	if res.StatusCode/100 != 2 {
		return nil, fmt.Errorf("%w: rate api status %s", utils.ErrUpstreamFailure, res.Status)
	}

	var payload struct {
		Result string             `json:"result"`
		Rates  map[string]float64 `json:"rates"`
	}
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode rates: %w", err)
	}
	if payload.Result != "" && payload.Result != "success" {
		return nil, fmt.Errorf("%w: rate api result %q", utils.ErrUpstreamFailure, payload.Result)
	}

	rates := make(map[string]float64, len(payload.Rates))
	for code, perBase := range payload.Rates {
		if !validRate(perBase) || !validRate(1/perBase) {
			continue
		}
		rates[code] = 1 / perBase
	}
	rates[s.base] = 1

	return &RateTable{Base: s.base, Rates: rates, FetchedAt: time.Now().Unix()}, nil
}

func validRate(r float64) bool {
	return r > 0 && !math.IsInf(r, 0) && !math.IsNaN(r)
}

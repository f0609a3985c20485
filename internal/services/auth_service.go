package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"tripdeck/internal/config"
	"tripdeck/internal/models/request_models"
	"tripdeck/internal/models/response_models"
	"tripdeck/pkg/utils"
)

type AuthServiceInterface interface {
	Login(ctx context.Context, request request_models.LoginRequest) (*response_models.TokenResponse, error)
	ViewOnly(ctx context.Context) (*response_models.TokenResponse, error)
}

type AuthService struct {
	passwordHash string
	issuer       *utils.TokenIssuer
	log          *zap.Logger
}

// NewAuthService hashes the shared trip password once at startup.
func NewAuthService(cfg *config.Config, issuer *utils.TokenIssuer, log *zap.Logger) (AuthServiceInterface, error) {
	hash, err := utils.HashPassword(cfg.AppPassword)
	if err != nil {
		return nil, fmt.Errorf("hash app password: %w", err)
	}
	return &AuthService{passwordHash: hash, issuer: issuer, log: log}, nil
}

func (a *AuthService) Login(ctx context.Context, request request_models.LoginRequest) (*response_models.TokenResponse, error) {
	startTime := time.Now()

	if !utils.CheckPassword(a.passwordHash, request.Password) {
		a.log.Info("login rejected", zap.Duration("took", time.Since(startTime)))
		return nil, utils.ErrInvalidCredentials
	}
	return a.issue(utils.ModeFull)
}

func (a *AuthService) ViewOnly(ctx context.Context) (*response_models.TokenResponse, error) {
	return a.issue(utils.ModeViewOnly)
}

func (a *AuthService) issue(mode string) (*response_models.TokenResponse, error) {
	token, expiresAt, err := a.issuer.CreateToken(mode)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &response_models.TokenResponse{Token: token, Mode: mode, ExpiresAt: expiresAt.Unix()}, nil
}

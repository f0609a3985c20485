package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"tripdeck/internal/config"
	"tripdeck/internal/models/request_models"
	"tripdeck/pkg/utils"
)

func TestAuthLoginModes(t *testing.T) {
	issuer := utils.NewTokenIssuer("test-secret", time.Hour)
	svc, err := NewAuthService(&config.Config{AppPassword: "123456"}, issuer, zap.NewNop())
	require.NoError(t, err)
	ctx := context.Background()

	_, err = svc.Login(ctx, request_models.LoginRequest{Password: "wrong"})
	require.ErrorIs(t, err, utils.ErrInvalidCredentials)

	tok, err := svc.Login(ctx, request_models.LoginRequest{Password: "123456"})
	require.NoError(t, err)
	require.Equal(t, utils.ModeFull, tok.Mode)

	claims, err := issuer.ValidateToken(tok.Token)
	require.NoError(t, err)
	require.Equal(t, utils.ModeFull, claims.Mode)

	view, err := svc.ViewOnly(ctx)
	require.NoError(t, err)
	claims, err = issuer.ValidateToken(view.Token)
	require.NoError(t, err)
	require.Equal(t, utils.ModeViewOnly, claims.Mode)

	_, err = utils.NewTokenIssuer("other", time.Hour).ValidateToken(view.Token)
	require.Error(t, err)
}

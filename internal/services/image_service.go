package services

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"net/http"
	"time"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"

	"tripdeck/internal/storage"
	"tripdeck/pkg/utils"
)

const (
	maxImageWidth  = 1600
	maxImageBytes  = 20 << 20
	maxImagePixels = 50_000_000
	imageJPEGLevel = 85
)

type ImageServiceInterface interface {
	UploadFromURL(ctx context.Context, imageURL, itemID string) (string, error)
	Delete(ctx context.Context, publicURL string) bool
}

type ImageService struct {
	http  *http.Client
	store storage.ObjectStore
	log   *zap.Logger
	now   func() time.Time
}

func NewImageService(store storage.ObjectStore, log *zap.Logger) ImageServiceInterface {
	return &ImageService{
		http:  &http.Client{Timeout: 30 * time.Second},
		store: store,
		log:   log,
		now:   time.Now,
	}
}

// UploadFromURL downloads an image, re-encodes it as a bounded-width JPEG
// and stores it as "<itemID>-<unix millis>.jpg". It returns the public URL.
func (s *ImageService) UploadFromURL(ctx context.Context, imageURL, itemID string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", utils.ErrInvalidInput, err)
	}
	res, err := s.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: download image: %v", utils.ErrUpstreamFailure, err)
	}
	defer res.Body.Close()
	if res.StatusCode/100 != 2 {
		return "", fmt.Errorf("%w: download image: %s", utils.ErrUpstreamFailure, res.Status)
	}

	raw, err := io.ReadAll(io.LimitReader(res.Body, maxImageBytes))
	if err != nil {
		return "", fmt.Errorf("%w: download image: %v", utils.ErrUpstreamFailure, err)
	}

	// check the declared size before the decoder allocates for it
	cfg, _, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("%w: not a supported image: %v", utils.ErrInvalidInput, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || cfg.Width*cfg.Height > maxImagePixels {
		return "", fmt.Errorf("%w: image too large (%dx%d)", utils.ErrInvalidInput, cfg.Width, cfg.Height)
	}

	img, err := imaging.Decode(bytes.NewReader(raw), imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("%w: not a supported image: %v", utils.ErrInvalidInput, err)
	}
	if img.Bounds().Dx() > maxImageWidth {
		img = imaging.Resize(img, maxImageWidth, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(imageJPEGLevel)); err != nil {
		return "", fmt.Errorf("encode image: %w", err)
	}

	name := fmt.Sprintf("%s-%d.jpg", itemID, s.now().UnixMilli())
	if err := s.store.Put(ctx, name, &buf); err != nil {
		return "", fmt.Errorf("store image: %w", err)
	}

	publicURL := s.store.PublicURL(name)
	s.log.Info("image uploaded", zap.String("item_id", itemID), zap.String("url", publicURL))
	return publicURL, nil
}

// Delete removes the object named by the last path segment of publicURL.
func (s *ImageService) Delete(ctx context.Context, publicURL string) bool {
	name := s.store.Name(publicURL)
	if err := s.store.Remove(ctx, name); err != nil {
		s.log.Warn("image delete failed", zap.String("name", name), zap.Error(err))
		return false
	}
	s.log.Info("image deleted", zap.String("name", name))
	return true
}

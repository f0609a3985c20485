package services

import (
	"bytes"
	"context"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"tripdeck/internal/config"
	"tripdeck/internal/storage"
	"tripdeck/pkg/utils"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.NRGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func newImageFixture(t *testing.T) (*ImageService, string) {
	t.Helper()
	root := t.TempDir()
	store, err := storage.NewFileStore(&config.Config{
		StorageDir: root, StorageBucket: "itinerary-images", PublicBaseURL: "http://cdn.test",
	})
	require.NoError(t, err)
	svc := NewImageService(store, zap.NewNop()).(*ImageService)
	svc.now = func() time.Time { return time.UnixMilli(1700000000123) }
	return svc, filepath.Join(root, "itinerary-images")
}

func TestUploadFromURLResizesAndStores(t *testing.T) {
	src := pngBytes(t, 2000, 500)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write(src)
	}))
	defer srv.Close()

	svc, dir := newImageFixture(t)
	url, err := svc.UploadFromURL(context.Background(), srv.URL+"/photo.png", "item42")
	require.NoError(t, err)
	require.Equal(t, "http://cdn.test/images/item42-1700000000123.jpg", url)

	f, err := os.Open(filepath.Join(dir, "item42-1700000000123.jpg"))
	require.NoError(t, err)
	defer f.Close()
	img, err := imaging.Decode(f)
	require.NoError(t, err)
	require.Equal(t, 1600, img.Bounds().Dx())
	require.Equal(t, 400, img.Bounds().Dy())

	require.True(t, svc.Delete(context.Background(), url))
	require.False(t, svc.Delete(context.Background(), url))
}

func TestUploadFromURLRejectsNonImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>nope</html>"))
	}))
	defer srv.Close()

	svc, _ := newImageFixture(t)
	_, err := svc.UploadFromURL(context.Background(), srv.URL, "item1")
	require.Error(t, err)
}

func TestUploadFromURLRejectsHugeDimensions(t *testing.T) {
	// rewrite the IHDR of a tiny PNG to claim 30000x30000
	src := pngBytes(t, 2, 2)
	binary.BigEndian.PutUint32(src[16:20], 30000)
	binary.BigEndian.PutUint32(src[20:24], 30000)
	binary.BigEndian.PutUint32(src[29:33], crc32.ChecksumIEEE(src[12:29]))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(src)
	}))
	defer srv.Close()

	svc, dir := newImageFixture(t)
	_, err := svc.UploadFromURL(context.Background(), srv.URL+"/bomb.png", "item1")
	require.ErrorIs(t, err, utils.ErrInvalidInput)
	require.Contains(t, err.Error(), "too large")

	entries, _ := os.ReadDir(dir)
	require.Empty(t, entries)
}

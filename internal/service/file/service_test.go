package file

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"

	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T, maxSize int64) FileService {
	t.Helper()
	store, err := storage.NewLocalStorage(t.TempDir(), "/uploads")
	require.NoError(t, err)
	return NewFileService(store, maxSize)
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, x%h, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestUploadChatAttachment_Document(t *testing.T) {
	svc := newService(t, 1024)

	att, err := svc.UploadChatAttachment(context.Background(), strings.NewReader("quarterly notes"), "../Notes.TXT")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(att.FileURL, "/uploads/"))
	assert.True(t, strings.HasSuffix(att.FileURL, ".txt"))
	assert.Equal(t, "Notes.TXT", att.FileName)
	assert.Equal(t, int64(15), att.Size)
	assert.Empty(t, att.ThumbnailURL)
}

func TestUploadChatAttachment_ImageGetsThumbnail(t *testing.T) {
	svc := newService(t, 1<<20)

	att, err := svc.UploadChatAttachment(context.Background(), bytes.NewReader(pngBytes(t, 640, 480)), "photo.png")
	require.NoError(t, err)
	assert.Equal(t, "image/png", att.ContentType)
	assert.True(t, strings.HasPrefix(att.ThumbnailURL, "/uploads/thumbs/"))
}

func TestUploadChatAttachment_Limits(t *testing.T) {
	svc := newService(t, 4)

	_, err := svc.UploadChatAttachment(context.Background(), strings.NewReader(""), "empty.txt")
	assert.ErrorIs(t, err, ErrEmptyFile)

	_, err = svc.UploadChatAttachment(context.Background(), strings.NewReader("too long"), "big.txt")
	assert.ErrorIs(t, err, ErrFileTooLarge)
}

func TestThumbnail_ScalesDown(t *testing.T) {
	out, err := thumbnail(pngBytes(t, 640, 480), 320)
	require.NoError(t, err)

	img, err := jpeg.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 320, img.Bounds().Dx())
	assert.Equal(t, 240, img.Bounds().Dy())
}

package file

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // Import for PNG decoding support
	"io"
	"log/slog"
	"net/http"
	"path"
	"path/filepath"
	"strings"

	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/storage"
	"github.com/google/uuid"
	"golang.org/x/image/draw"
)

const thumbnailWidth = 320

var (
	ErrEmptyFile    = errors.New("no file uploaded")
	ErrFileTooLarge = errors.New("file exceeds the upload limit")
)

// Attachment describes a stored chat upload.
type Attachment struct {
	FileURL      string `json:"fileUrl"`
	FileName     string `json:"fileName"`
	ContentType  string `json:"contentType"`
	Size         int64  `json:"size"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
}

type FileService interface {
	UploadChatAttachment(ctx context.Context, file io.Reader, filename string) (Attachment, error)
	DeleteFile(ctx context.Context, key string) error
}

type fileServiceImpl struct {
	storage storage.FileStorage
	maxSize int64
}

func NewFileService(storage storage.FileStorage, maxSize int64) FileService {
	return &fileServiceImpl{
		storage: storage,
		maxSize: maxSize,
	}
}

// UploadChatAttachment stores the file under a random name keeping its
// extension. Images also get a JPEG thumbnail.
func (s *fileServiceImpl) UploadChatAttachment(ctx context.Context, file io.Reader, filename string) (Attachment, error) {
	limit := s.maxSize
	if limit <= 0 {
		limit = 10 << 20
	}
	buffer, err := io.ReadAll(io.LimitReader(file, limit+1))
	if err != nil {
		return Attachment{}, fmt.Errorf("failed to read upload: %w", err)
	}
	if len(buffer) == 0 {
		return Attachment{}, ErrEmptyFile
	}
	if int64(len(buffer)) > limit {
		return Attachment{}, ErrFileTooLarge
	}

	ext := strings.ToLower(filepath.Ext(filename))
	contentType := http.DetectContentType(buffer)
	id := uuid.New().String()

	key, err := s.storage.Upload(ctx, bytes.NewReader(buffer), id+ext, contentType)
	if err != nil {
		return Attachment{}, fmt.Errorf("failed to upload attachment: %w", err)
	}

	att := Attachment{
		FileURL:     s.storage.URL(key),
		FileName:    path.Base(filepath.ToSlash(filename)),
		ContentType: contentType,
		Size:        int64(len(buffer)),
	}

	if strings.HasPrefix(contentType, "image/jpeg") || strings.HasPrefix(contentType, "image/png") {
		thumb, err := thumbnail(buffer, thumbnailWidth)
		if err != nil {
			// The attachment itself is stored; a broken image just has no preview.
			slog.Warn("thumbnail generation failed", "key", key, "error", err)
			return att, nil
		}
		thumbKey, err := s.storage.Upload(ctx, bytes.NewReader(thumb), path.Join("thumbs", id+".jpg"), "image/jpeg")
		if err != nil {
			slog.Warn("thumbnail upload failed", "key", key, "error", err)
			return att, nil
		}
		att.ThumbnailURL = s.storage.URL(thumbKey)
	}

	return att, nil
}

func (s *fileServiceImpl) DeleteFile(ctx context.Context, key string) error {
	return s.storage.Delete(ctx, key)
}

// thumbnail scales the image down to width, keeping the aspect ratio.
// Images already narrower are re-encoded as is.
func thumbnail(buffer []byte, width int) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(buffer))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	var out image.Image = img
	if bounds.Dx() > width {
		height := bounds.Dy() * width / bounds.Dx()
		if height < 1 {
			height = 1
		}
		dst := image.NewRGBA(image.Rect(0, 0, width, height))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		out = dst
	}

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, out, &jpeg.Options{Quality: 75}); err != nil {
		return nil, fmt.Errorf("failed to encode JPEG: %w", err)
	}
	return buf.Bytes(), nil
}

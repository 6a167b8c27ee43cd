package usecase

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/DKSALL9/StayFlow/internal/catalog/domain"
	"github.com/DKSALL9/StayFlow/internal/platform/logger"
	"go.uber.org/zap"
)

// MaxMediaBytes is the upper bound for an attached image or video.
const MaxMediaBytes = 5 << 20

// MediaStorage uploads media bytes to object storage and returns a public URL.
type MediaStorage interface {
	Upload(ctx context.Context, originalFileName, contentType string, data []byte) (string, error)
}

// MediaUsecase validates listing media and turns it into a stable reference:
// an object-storage URL when a backend is configured, otherwise an inline
// data URI.
type MediaUsecase struct {
	storage MediaStorage
	logger  *logger.Logger
}

// NewMediaUsecase wires media handling. Storage may be nil, in which case
// media is kept inline.
func NewMediaUsecase(storage MediaStorage, log *logger.Logger) *MediaUsecase {
	return &MediaUsecase{
		storage: storage,
		logger:  log.Named("MediaUsecase"),
	}
}

// ValidateMedia checks the declared content type and size. It returns the
// media kind, "image" or "video". Type checking trusts the declared content
// type; bytes are not sniffed.
func ValidateMedia(contentType string, size int64) (string, error) {
	var kind string
	switch {
	case strings.HasPrefix(contentType, "image/"):
		kind = "image"
	case strings.HasPrefix(contentType, "video/"):
		kind = "video"
	default:
		return "", fmt.Errorf("%w: unsupported media type %q, expected image/* or video/*", domain.ErrInvalidInput, contentType)
	}
	if size > MaxMediaBytes {
		return "", fmt.Errorf("%w: media size %d exceeds the %d byte limit", domain.ErrInvalidInput, size, MaxMediaBytes)
	}
	return kind, nil
}

// StoreMedia validates the media and returns its reference plus kind.
func (uc *MediaUsecase) StoreMedia(ctx context.Context, fileName, contentType string, data []byte) (string, string, error) {
	kind, err := ValidateMedia(contentType, int64(len(data)))
	if err != nil {
		uc.logger.Warn("StoreMedia: validation failed",
			zap.String("content_type", contentType),
			zap.Int("size_bytes", len(data)),
			zap.Error(err))
		return "", "", err
	}

	if uc.storage == nil {
		return DataURI(contentType, data), kind, nil
	}

	url, err := uc.storage.Upload(ctx, fileName, contentType, data)
	if err != nil {
		uc.logger.Error("StoreMedia: upload failed", zap.String("file_name", fileName), zap.Error(err))
		return "", "", err
	}
	return url, kind, nil
}

// DataURI encodes media bytes as an inline data URI.
func DataURI(contentType string, data []byte) string {
	return fmt.Sprintf("data:%s;base64,%s", contentType, base64.StdEncoding.EncodeToString(data))
}

package usecase

import (
	"context"
	"testing"

	"github.com/DKSALL9/StayFlow/internal/catalog/domain"
	"github.com/DKSALL9/StayFlow/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMediaStorage struct {
	url string
	err error
}

func (f *fakeMediaStorage) Upload(ctx context.Context, originalFileName, contentType string, data []byte) (string, error) {
	return f.url, f.err
}

func TestValidateMedia(t *testing.T) {
	testCases := []struct {
		name        string
		contentType string
		size        int64
		wantKind    string
		wantErr     bool
	}{
		{"jpeg image", "image/jpeg", 1024, "image", false},
		{"png image", "image/png", MaxMediaBytes, "image", false},
		{"mp4 video", "video/mp4", 4 << 20, "video", false},
		{"pdf rejected", "application/pdf", 1024, "", true},
		{"empty type rejected", "", 1024, "", true},
		{"oversized image", "image/jpeg", MaxMediaBytes + 1, "", true},
		{"oversized video", "video/mp4", 6 << 20, "", true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			kind, err := ValidateMedia(tc.contentType, tc.size)
			if tc.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantKind, kind)
		})
	}
}

func TestStoreMediaInline(t *testing.T) {
	uc := NewMediaUsecase(nil, logger.NewNop())

	ref, kind, err := uc.StoreMedia(context.Background(), "photo.png", "image/png", []byte("pixels"))
	require.NoError(t, err)
	assert.Equal(t, "image", kind)
	assert.Equal(t, "data:image/png;base64,cGl4ZWxz", ref)
}

func TestStoreMediaWithStorage(t *testing.T) {
	t.Run("returns the uploaded URL", func(t *testing.T) {
		uc := NewMediaUsecase(&fakeMediaStorage{url: "https://cdn.example.com/media/x.mp4"}, logger.NewNop())

		ref, kind, err := uc.StoreMedia(context.Background(), "tour.mp4", "video/mp4", []byte("frames"))
		require.NoError(t, err)
		assert.Equal(t, "video", kind)
		assert.Equal(t, "https://cdn.example.com/media/x.mp4", ref)
	})

	t.Run("surfaces upload failures", func(t *testing.T) {
		uc := NewMediaUsecase(&fakeMediaStorage{err: assert.AnError}, logger.NewNop())

		_, _, err := uc.StoreMedia(context.Background(), "tour.mp4", "video/mp4", []byte("frames"))
		assert.Error(t, err)
	})

	t.Run("rejects invalid media before upload", func(t *testing.T) {
		uc := NewMediaUsecase(&fakeMediaStorage{url: "unused"}, logger.NewNop())

		_, _, err := uc.StoreMedia(context.Background(), "doc.pdf", "application/pdf", []byte("%PDF"))
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

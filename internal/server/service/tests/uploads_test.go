package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/IvanChernomyrdin/go-courses-api/internal/server/service"
	"github.com/IvanChernomyrdin/go-courses-api/internal/server/service/mocks"
	serr "github.com/IvanChernomyrdin/go-courses-api/internal/shared/errors"
)

func TestUploadsService_IssueUploadURL_OK(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	storage := mocks.NewMockObjectStorage(ctrl)

	now := time.UnixMilli(1700000000123)
	svc := service.NewUploadsService(storage, "course-images", time.Minute).
		WithClock(func() time.Time { return now })

	key := "course-images/1700000000123-cat.png"
	storage.EXPECT().PresignPut(ctx, key, "image/png", time.Minute).Return("https://signed", nil)
	storage.EXPECT().ObjectURL(key).Return("https://bucket.s3.us-east-1.amazonaws.com/" + key)

	got, err := svc.IssueUploadURL(ctx, "cat.png", "image/png")
	require.NoError(t, err)
	require.Equal(t, "https://signed", got.UploadURL)
	require.Contains(t, got.FileURL, "cat.png")
}

func TestUploadsService_IssueUploadURL_MissingParams(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := service.NewUploadsService(mocks.NewMockObjectStorage(ctrl), "course-images", time.Minute)

	for _, tc := range [][2]string{{"", "image/png"}, {"cat.png", ""}, {"", ""}} {
		_, err := svc.IssueUploadURL(context.Background(), tc[0], tc[1])
		require.ErrorIs(t, err, service.ErrUploadParamsRequired)
		require.Equal(t, 400, serr.StatusOf(err))
	}
}

// ошибка подписи не раскрывается клиенту
func TestUploadsService_IssueUploadURL_PresignError(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	storage := mocks.NewMockObjectStorage(ctrl)

	svc := service.NewUploadsService(storage, "course-images", time.Minute)
	storage.EXPECT().PresignPut(ctx, gomock.Any(), "image/png", time.Minute).Return("", errors.New("no credentials"))

	_, err := svc.IssueUploadURL(ctx, "cat.png", "image/png")
	require.ErrorIs(t, err, serr.ErrInternal)
	require.Equal(t, "internal error", serr.PublicMessage(err))
}

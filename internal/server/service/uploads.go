package service

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	svcmodels "github.com/IvanChernomyrdin/go-courses-api/internal/server/service/models"
	serr "github.com/IvanChernomyrdin/go-courses-api/internal/shared/errors"
)

// ErrUploadParamsRequired — не передан filename или fileType.
var ErrUploadParamsRequired = &serr.HTTPError{
	Status:  http.StatusBadRequest,
	Message: "Filename and fileType are required",
	Kind:    serr.ErrInvalidInput,
}

// UploadsService выдаёт подписанные ссылки для загрузки изображений курсов.
type UploadsService struct {
	storage ObjectStorage
	prefix  string
	ttl     time.Duration
	now     func() time.Time
}

func NewUploadsService(storage ObjectStorage, prefix string, ttl time.Duration) *UploadsService {
	return &UploadsService{
		storage: storage,
		prefix:  strings.Trim(prefix, "/"),
		ttl:     ttl,
		now:     time.Now,
	}
}

// WithClock подменяет источник времени (для тестов).
func (s *UploadsService) WithClock(now func() time.Time) *UploadsService {
	s.now = now
	return s
}

// IssueUploadURL строит ключ <prefix>/<unix-ms>-<filename> и подписывает PUT на него.
func (s *UploadsService) IssueUploadURL(ctx context.Context, filename, fileType string) (svcmodels.UploadURL, error) {
	if filename == "" || fileType == "" {
		return svcmodels.UploadURL{}, ErrUploadParamsRequired
	}
	if s.storage == nil {
		return svcmodels.UploadURL{}, fmt.Errorf("%w: object storage is not configured", serr.ErrInternal)
	}

	key := fmt.Sprintf("%d-%s", s.now().UnixMilli(), filename)
	if s.prefix != "" {
		key = s.prefix + "/" + key
	}

	uploadURL, err := s.storage.PresignPut(ctx, key, fileType, s.ttl)
	if err != nil {
		return svcmodels.UploadURL{}, fmt.Errorf("%w: presign %q: %v", serr.ErrInternal, key, err)
	}

	return svcmodels.UploadURL{
		UploadURL: uploadURL,
		FileURL:   s.storage.ObjectURL(key),
	}, nil
}

// Package storage содержит клиент объектного хранилища (S3 или совместимое, например MinIO).
//
// Сервер не загружает файлы сам: он выдаёт клиенту подписанный URL,
// по которому тот кладёт объект напрямую в бакет.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/IvanChernomyrdin/go-courses-api/internal/server/config"
)

// ErrNoBucket — не задан бакет.
var ErrNoBucket = errors.New("storage: bucket is not configured")

// подменяется в тестах, чтобы не читать окружение и ~/.aws
var loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

// S3 подписывает PUT-запросы для загрузки изображений курсов.
type S3 struct {
	presign  *s3.PresignClient
	bucket   string
	region   string
	endpoint string
}

// NewS3 создаёт клиент по настройкам хранилища.
//
// Если заданы ключи доступа, используются статические учётные данные,
// иначе стандартная цепочка AWS (env, shared config, IAM-роль).
// Непустой Endpoint включает path-style адресацию (MinIO).
func NewS3(ctx context.Context, cfg config.StorageConfig) (*S3, error) {
	if cfg.Bucket == "" {
		return nil, ErrNoBucket
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	endpoint := strings.TrimRight(cfg.Endpoint, "/")
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3{
		presign:  s3.NewPresignClient(client),
		bucket:   cfg.Bucket,
		region:   cfg.Region,
		endpoint: endpoint,
	}, nil
}

// PresignPut возвращает URL для PUT-загрузки объекта key с типом contentType.
// Загруженный объект будет публично читаемым.
func (s *S3) PresignPut(ctx context.Context, key, contentType string, ttl time.Duration) (string, error) {
	req, err := s.presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
		ACL:         types.ObjectCannedACLPublicRead,
	}, s3.WithPresignExpires(ttl))
	if err != nil {
		return "", fmt.Errorf("presign put object: %w", err)
	}
	return req.URL, nil
}

// ObjectURL возвращает публичный адрес объекта.
//
// Для AWS это virtual-hosted адрес https://<bucket>.s3.<region>.amazonaws.com/<key>,
// для своего endpoint — path-style <endpoint>/<bucket>/<key>.
func (s *S3) ObjectURL(key string) string {
	if s.endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", s.endpoint, s.bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}

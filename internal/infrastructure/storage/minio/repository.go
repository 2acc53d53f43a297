package minio

import (
	"bytes"
	"context"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"

	"github.com/turtacn/qsphere/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/qsphere/pkg/errors"
)

var ErrInvalidRequest = errors.New(errors.ErrCodeValidation, "invalid publish request")

// Artifact is a rendered document to publish.
type Artifact struct {
	// SceneID groups every artifact of one render under a common prefix.
	SceneID     string
	Name        string
	Data        []byte
	ContentType string
	Metadata    map[string]string
}

// PublishResult describes a stored artifact.
type PublishResult struct {
	Bucket     string    `json:"bucket"`
	ObjectKey  string    `json:"object_key"`
	ETag       string    `json:"etag"`
	Size       int64     `json:"size"`
	URL        string    `json:"url"`
	ExpiresAt  time.Time `json:"expires_at"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// Publisher uploads artifacts and hands out time-limited links to them.
type Publisher interface {
	Publish(ctx context.Context, a *Artifact) (*PublishResult, error)
	Exists(ctx context.Context, objectKey string) (bool, error)
	Delete(ctx context.Context, objectKey string) error
}

type minioPublisher struct {
	client *MinIOClient
	logger logging.Logger
	now    func() time.Time
}

func NewPublisher(client *MinIOClient, log logging.Logger) Publisher {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &minioPublisher{client: client, logger: log, now: time.Now}
}

// ObjectKey builds "<prefix>/<sceneID>/<name>", skipping empty segments.
func ObjectKey(prefix, sceneID, name string) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{strings.Trim(prefix, "/"), sceneID, path.Base(name)} {
		if p != "" && p != "." && p != "/" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, "/")
}

func (p *minioPublisher) Publish(ctx context.Context, a *Artifact) (*PublishResult, error) {
	if a == nil || a.Name == "" || len(a.Data) == 0 {
		return nil, ErrInvalidRequest
	}
	if p.client.isClosed() {
		return nil, ErrMinIOClientClosed
	}
	cfg := p.client.config
	key := ObjectKey(cfg.Prefix, a.SceneID, a.Name)

	contentType := a.ContentType
	if contentType == "" {
		contentType = http.DetectContentType(a.Data[:min(512, len(a.Data))])
	}

	api := p.client.GetClient()
	info, err := api.PutObject(ctx, cfg.Bucket, key, bytes.NewReader(a.Data), int64(len(a.Data)),
		minio.PutObjectOptions{ContentType: contentType, UserMetadata: a.Metadata})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodePublishFailed, "upload failed").WithDetail("key=" + key)
	}

	u, err := api.PresignedGetObject(ctx, cfg.Bucket, key, cfg.PresignExpiry, nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodePublishFailed, "failed to presign download url").WithDetail("key=" + key)
	}

	now := p.now()
	p.logger.Info("artifact published",
		logging.String("bucket", cfg.Bucket),
		logging.String("key", key),
		logging.Int64("size", info.Size))

	return &PublishResult{
		Bucket:     cfg.Bucket,
		ObjectKey:  key,
		ETag:       info.ETag,
		Size:       info.Size,
		URL:        u.String(),
		ExpiresAt:  now.Add(cfg.PresignExpiry),
		UploadedAt: now,
	}, nil
}

func (p *minioPublisher) Exists(ctx context.Context, objectKey string) (bool, error) {
	_, err := p.client.GetClient().StatObject(ctx, p.client.config.Bucket, objectKey, minio.StatObjectOptions{})
	if err == nil {
		return true, nil
	}
	if minio.ToErrorResponse(err).Code == "NoSuchKey" {
		return false, nil
	}
	return false, errors.Wrap(err, errors.ErrCodeExternalService, "stat object failed")
}

func (p *minioPublisher) Delete(ctx context.Context, objectKey string) error {
	if objectKey == "" {
		return ErrInvalidRequest
	}
	if err := p.client.GetClient().RemoveObject(ctx, p.client.config.Bucket, objectKey, minio.RemoveObjectOptions{}); err != nil {
		return errors.Wrap(err, errors.ErrCodeExternalService, "remove object failed")
	}
	return nil
}

//Personal.AI order the ending

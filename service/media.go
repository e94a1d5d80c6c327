package service

import (
	"Prism/config"
	"Prism/dao"
	"Prism/models"
	"Prism/pkg/log"
	"context"
	"fmt"
	"image"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/aliyun/alibabacloud-oss-go-sdk-v2/oss"
	"github.com/google/uuid"
	"go.uber.org/zap"

	_ "golang.org/x/image/webp"
	_ "image/jpeg"
	_ "image/png"
)

const maxUploadSize int64 = 10 << 20 // 10MB

var _ IMediaService = (*MediaService)(nil)
var _ ObjectRemover = (*MediaService)(nil)

type IMediaService interface {
	// Upload 上传媒体流，返回对象键
	Upload(ctx context.Context, header *multipart.FileHeader) (string, string, error)
	// SetAvatar 设置用户/群头像，替换旧引用并清理旧对象
	SetAvatar(ctx context.Context, actorID uint64, ownerType string, ownerID uint64, header *multipart.FileHeader) (string, error)
	RemoveObjects(ctx context.Context, keys []string)
}

type MediaService struct {
	Client     *oss.Client
	BucketName string
	Media      *dao.MediaDAO
	Members    *dao.GroupMemberDAO
}

func NewMediaService(conf *config.Config, client *oss.Client, media *dao.MediaDAO, members *dao.GroupMemberDAO) *MediaService {
	return &MediaService{
		Client:     client,
		BucketName: conf.Oss.Bucket,
		Media:      media,
		Members:    members,
	}
}

// Upload 校验并上传，对象键用 uuid，按日期分目录。
// 返回对象键和媒体类型（image / video）
func (s *MediaService) Upload(ctx context.Context, header *multipart.FileHeader) (string, string, error) {
	if header == nil {
		return "", "", fmt.Errorf("missing file")
	}
	// header.Size 不可信，但可做第一道拦截
	if header.Size <= 0 || header.Size > maxUploadSize {
		return "", "", fmt.Errorf("file size invalid")
	}

	f, err := header.Open()
	if err != nil {
		return "", "", err
	}
	defer f.Close()

	seeker, ok := f.(io.ReadSeeker)
	if !ok {
		return "", "", fmt.Errorf("uploaded file is not seekable")
	}

	mediaType, ext, err := s.detectMedia(seeker)
	if err != nil {
		return "", "", err
	}

	objectKey := fmt.Sprintf("media/%s/%s%s",
		time.Now().Format("2006/01/02"),
		uuid.NewString(),
		ext,
	)

	limited := io.LimitReader(seeker, maxUploadSize+1)
	if _, err := s.Client.PutObject(ctx, &oss.PutObjectRequest{
		Bucket: oss.Ptr(s.BucketName),
		Key:    oss.Ptr(objectKey),
		Body:   limited,
	}); err != nil {
		return "", "", err
	}
	return objectKey, mediaType, nil
}

// detectMedia 嗅探媒体类型并校验内容，读完会把流拨回起点。
// 图片读取尺寸 + 格式，不解码全图
func (s *MediaService) detectMedia(seeker io.ReadSeeker) (string, string, error) {
	head := make([]byte, 512)
	n, _ := seeker.Read(head)
	contentType := http.DetectContentType(head[:n])
	_, _ = seeker.Seek(0, io.SeekStart)

	switch contentType {
	case "image/jpeg", "image/png", "image/webp":
		_, format, err := image.DecodeConfig(seeker)
		if err != nil {
			return "", "", fmt.Errorf("invalid image: %w", err)
		}
		format = strings.ToLower(format)
		ext := "." + format
		if format == "jpeg" {
			ext = ".jpg"
		}
		_, _ = seeker.Seek(0, io.SeekStart)
		return models.MediaTypeImage, ext, nil
	case "video/mp4":
		return models.MediaTypeVideo, ".mp4", nil
	default:
		return "", "", fmt.Errorf("unsupported media type: %s", contentType)
	}
}

// SetAvatar 用户头像本人可换，群头像群主/管理员可换
func (s *MediaService) SetAvatar(ctx context.Context, actorID uint64, ownerType string, ownerID uint64, header *multipart.FileHeader) (string, error) {
	switch ownerType {
	case models.MediaOwnerUser:
		if actorID != ownerID {
			return "", ErrUnauthorized
		}
	case models.MediaOwnerGroup:
		leader, err := s.Members.IsLeader(ctx, ownerID, actorID)
		if err != nil {
			return "", err
		}
		if !leader {
			return "", ErrUnauthorized
		}
	default:
		return "", ErrInvalidTarget
	}

	objectKey, mediaType, err := s.Upload(ctx, header)
	if err != nil {
		return "", err
	}
	if mediaType != models.MediaTypeImage {
		s.RemoveObjects(ctx, []string{objectKey})
		return "", fmt.Errorf("avatar must be an image")
	}

	old, err := s.Media.FindByOwner(ctx, ownerType, ownerID)
	if err != nil {
		return "", err
	}
	if err := s.Media.DeleteByOwner(ctx, ownerType, ownerID); err != nil {
		return "", err
	}
	if _, err := s.Media.Create(ctx, ownerType, ownerID, models.MediaTypeImage, objectKey); err != nil {
		return "", err
	}
	if old != nil {
		s.RemoveObjects(ctx, []string{old.Path})
	}
	return objectKey, nil
}

// RemoveObjects 尽力删除，失败只记日志，不影响业务结果
func (s *MediaService) RemoveObjects(ctx context.Context, keys []string) {
	for _, key := range keys {
		if key == "" {
			continue
		}
		if _, err := s.Client.DeleteObject(ctx, &oss.DeleteObjectRequest{
			Bucket: oss.Ptr(s.BucketName),
			Key:    oss.Ptr(key),
		}); err != nil {
			log.L.Warn("remove oss object failed", zap.String("key", key), zap.Error(err))
		}
	}
}

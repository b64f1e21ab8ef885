package pictureBed

import (
	"context"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var ErrS3Disabled = errors.New("未配置对象存储")

type PresignedUploadRequest struct {
	Filename    string
	ContentType string
	ExpiresIn   time.Duration // 默认 15 分钟
}

type PresignedUpload struct {
	UploadURL string            `json:"upload_url"`
	FileKey   string            `json:"file_key"`
	FileURL   string            `json:"file_url"`
	ExpiresAt time.Time         `json:"expires_at"`
	Method    string            `json:"method"`
	Headers   map[string]string `json:"headers"`
}

// PresignUpload 生成预签名 PUT 地址，前端直传对象存储
func (pb *PictureBed) PresignUpload(ctx context.Context, req PresignedUploadRequest) (*PresignedUpload, error) {
	if !pb.UsesS3() {
		return nil, ErrS3Disabled
	}
	ext := strings.ToLower(path.Ext(req.Filename))
	defaultType, ok := imageExts[ext]
	if !ok {
		return nil, ErrUnsupportedType
	}
	contentType := req.ContentType
	if contentType == "" {
		contentType = defaultType
	}
	if req.ExpiresIn <= 0 {
		req.ExpiresIn = 15 * time.Minute
	}

	key := pb.objectKey(uuid.NewString() + ext)
	presigned, err := s3.NewPresignClient(pb.s3Client).PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(pb.s3cfg.Bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(req.ExpiresIn))
	if err != nil {
		return nil, errors.Wrap(err, "生成预签名 URL 失败")
	}

	headers := map[string]string{"Content-Type": contentType}
	for k, v := range presigned.SignedHeader {
		if len(v) > 0 {
			headers[k] = v[0]
		}
	}
	return &PresignedUpload{
		UploadURL: presigned.URL,
		FileKey:   key,
		FileURL:   pb.objectURL(key),
		ExpiresAt: time.Now().Add(req.ExpiresIn),
		Method:    presigned.Method,
		Headers:   headers,
	}, nil
}

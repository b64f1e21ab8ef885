package pictureBed

import (
	"context"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"campus-activity/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// MaxImageSize 单张图片上限 10MB
const MaxImageSize = 10 << 20

var (
	ErrUnsupportedType = errors.New("不支持的图片格式")
	ErrTooLarge        = errors.New("图片过大")
)

var imageExts = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
}

// PictureBed 活动封面等图片的存储，配置了 S3 时写对象存储，否则落到本地目录
type PictureBed struct {
	SaveDir string
	BaseURL string

	s3cfg    config.S3
	s3Client *s3.Client
	uploader *manager.Uploader
}

func New(ctx context.Context, cfg *config.Config) (*PictureBed, error) {
	pb := &PictureBed{
		SaveDir: cfg.Storage.Home,
		BaseURL: strings.TrimRight(cfg.Storage.BaseURL, "/"),
		s3cfg:   cfg.S3,
	}
	if !cfg.S3.Enabled() {
		return pb, nil
	}
	if err := pb.initS3(ctx); err != nil {
		return nil, err
	}
	return pb, nil
}

func (pb *PictureBed) initS3(ctx context.Context) error {
	region := pb.s3cfg.Region
	if region == "" {
		region = "us-east-1"
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			pb.s3cfg.AccessKey, pb.s3cfg.SecretAccessKey, "")),
	)
	if err != nil {
		return errors.Wrap(err, "加载 S3 配置失败")
	}
	pb.s3Client = s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if pb.s3cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(pb.s3cfg.Endpoint)
		}
		o.UsePathStyle = pb.s3cfg.UsePathStyle
	})
	pb.uploader = manager.NewUploader(pb.s3Client)
	return nil
}

func (pb *PictureBed) UsesS3() bool {
	return pb.s3Client != nil
}

// SaveImage 校验扩展名和大小后保存，返回访问 URL
func (pb *PictureBed) SaveImage(ctx context.Context, fileHeader *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	contentType, ok := imageExts[ext]
	if !ok {
		return "", ErrUnsupportedType
	}
	if fileHeader.Size > MaxImageSize {
		return "", ErrTooLarge
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", errors.Wrap(err, "打开上传文件失败")
	}
	defer file.Close()

	name := uuid.NewString() + ext
	if pb.UsesS3() {
		return pb.putObject(ctx, name, contentType, file)
	}
	return pb.saveLocal(name, file)
}

func (pb *PictureBed) putObject(ctx context.Context, name, contentType string, body io.Reader) (string, error) {
	key := pb.objectKey(name)
	_, err := pb.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(pb.s3cfg.Bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", errors.Wrap(err, "上传到 S3 失败")
	}
	return pb.objectURL(key), nil
}

func (pb *PictureBed) saveLocal(name string, body io.Reader) (string, error) {
	if err := os.MkdirAll(pb.SaveDir, os.ModePerm); err != nil {
		return "", errors.Wrap(err, "创建上传目录失败")
	}
	dst, err := os.Create(filepath.Join(pb.SaveDir, name))
	if err != nil {
		return "", errors.Wrap(err, "创建文件失败")
	}
	defer dst.Close()
	if _, err := io.Copy(dst, body); err != nil {
		return "", errors.Wrap(err, "写入文件失败")
	}
	return pb.BaseURL + "/" + name, nil
}

func (pb *PictureBed) objectKey(name string) string {
	return strings.TrimLeft(path.Join(strings.Trim(pb.s3cfg.Prefix, "/"), name), "/")
}

func (pb *PictureBed) objectURL(key string) string {
	base := strings.TrimRight(pb.s3cfg.BaseURL, "/")
	if base == "" {
		base = strings.TrimRight(pb.s3cfg.Endpoint, "/")
	}
	if pb.s3cfg.UsePathStyle {
		return base + "/" + pb.s3cfg.Bucket + "/" + key
	}
	return base + "/" + key
}

package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// MaxAvatarSize is the maximum allowed avatar upload (5MB).
	MaxAvatarSize = 5 * 1024 * 1024
	// FolderAvatars is the S3 prefix for avatar objects.
	FolderAvatars = "avatars"
	// sniffLen is how much of an upload is read to detect its type.
	sniffLen = 3072
)

// ErrUnsupportedType is returned for uploads that are not an allowed image.
var ErrUnsupportedType = errors.New("unsupported file type")

// AllowedImageTypes maps accepted image MIME types to their object extension.
var AllowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// S3Config holds S3 client configuration.
type S3Config struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	AvatarsBucket   string
}

// S3 uploads user media to S3.
type S3 struct {
	client   *s3.Client
	uploader *manager.Uploader
	cfg      S3Config
	logger   *zap.Logger
}

// NewS3 creates an S3 client using credentials from config or .env (AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY).
func NewS3(ctx context.Context, cfg S3Config, logger *zap.Logger) (*S3, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	accessKey := cfg.AccessKeyID
	secretKey := cfg.SecretAccessKey
	if accessKey == "" || secretKey == "" {
		accessKey = os.Getenv("AWS_ACCESS_KEY_ID")
		secretKey = os.Getenv("AWS_SECRET_ACCESS_KEY")
	}
	opts := []func(*config.LoadOptions) error{
		config.WithRegion(cfg.Region),
	}
	if accessKey != "" && secretKey != "" {
		opts = append(opts, config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			accessKey, secretKey, "",
		)))
		logger.Info("S3 client using static credentials", zap.String("region", cfg.Region), zap.String("avatars_bucket", cfg.AvatarsBucket))
	} else {
		logger.Warn("S3 client using default credential chain (AWS_ACCESS_KEY_ID/AWS_SECRET_ACCESS_KEY not set)")
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	client := s3.NewFromConfig(awsCfg)
	return &S3{
		client:   client,
		uploader: manager.NewUploader(client),
		cfg:      cfg,
		logger:   logger,
	}, nil
}

// DetectImage sniffs the start of r. It returns the MIME type and a reader that yields the
// full content, or ErrUnsupportedType when r is not an allowed image.
func DetectImage(r io.Reader) (string, io.Reader, error) {
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", nil, fmt.Errorf("read upload: %w", err)
	}
	head = head[:n]
	mtype := mimetype.Detect(head)
	for allowed := range AllowedImageTypes {
		if mtype.Is(allowed) {
			return allowed, io.MultiReader(bytes.NewReader(head), r), nil
		}
	}
	return "", nil, fmt.Errorf("%w: %s", ErrUnsupportedType, mtype.String())
}

// AvatarKey returns the S3 object key for an avatar: avatars/{user_id}/{uuid}{ext}.
func AvatarKey(userID int64, contentType string) string {
	return path.Join(FolderAvatars, strconv.FormatInt(userID, 10), uuid.NewString()+AllowedImageTypes[contentType])
}

// PublicObjectURL returns the public URL for an object (no signing; the bucket is public).
func (s *S3) PublicObjectURL(bucket, key string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", bucket, s.cfg.Region, key)
}

// UploadAvatar validates and stores a profile picture and returns its public URL.
func (s *S3) UploadAvatar(ctx context.Context, userID int64, body io.Reader, size int64) (string, error) {
	if size > MaxAvatarSize {
		return "", fmt.Errorf("avatar exceeds %d bytes", MaxAvatarSize)
	}
	contentType, content, err := DetectImage(body)
	if err != nil {
		return "", err
	}
	key := AvatarKey(userID, contentType)
	return s.Upload(ctx, s.cfg.AvatarsBucket, key, contentType, content, size, true)
}

// Upload streams a reader to S3. Set publicRead for objects served by direct URL.
func (s *S3) Upload(ctx context.Context, bucket, key, contentType string, body io.Reader, contentLength int64, publicRead bool) (string, error) {
	var contentLengthPtr *int64
	if contentLength > 0 {
		contentLengthPtr = &contentLength
	}
	input := &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentType:   aws.String(contentType),
		ContentLength: contentLengthPtr,
	}
	if publicRead {
		input.ACL = types.ObjectCannedACLPublicRead
	}
	if _, err := s.uploader.Upload(ctx, input); err != nil {
		return "", fmt.Errorf("upload: %w", err)
	}
	s.logger.Debug("object uploaded", zap.String("bucket", bucket), zap.String("key", key))
	return s.PublicObjectURL(bucket, key), nil
}

package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/dmitrijs2005/boilerparts/internal/server/repositories/repomanager"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	sc "github.com/dmitrijs2005/boilerparts/internal/server/config"
)

var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// ImageService resolves the object-storage keys stored in a part's
// images column into short-lived presigned GET URLs.
type ImageService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	config      *sc.Config
}

// NewImageService constructs an ImageService over the given repositories
// and S3 settings.
func NewImageService(db *sql.DB, m repomanager.RepositoryManager, config *sc.Config) *ImageService {
	return &ImageService{db: db, repomanager: m, config: config}
}

func (s *ImageService) getPresignClient() (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(context.Background(),
		awsconfig.WithRegion(s.config.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,     // MINIO_ROOT_USER
			s.config.S3RootPassword, // MINIO_ROOT_PASSWORD
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
	})

	return newS3PresignClient(client), nil
}

// ImageURLs looks the part up and returns one presigned GET URL per
// stored image key. Parts without images yield an empty slice.
func (s *ImageService) ImageURLs(ctx context.Context, partID int64) ([]string, error) {

	part, err := s.repomanager.Parts(s.db).GetByID(ctx, partID)
	if err != nil {
		return nil, err
	}

	keys := part.ImageList()
	if len(keys) == 0 {
		return []string{}, nil
	}

	presignClient, err := s.getPresignClient()
	if err != nil {
		return nil, err
	}

	bucket := s.config.S3Bucket

	urls := make([]string, 0, len(keys))
	for _, key := range keys {
		key := key
		req, err := presignGetObject(presignClient, ctx, &s3.GetObjectInput{
			Bucket: &bucket,
			Key:    &key,
		}, s3.WithPresignExpires(15*time.Minute))
		if err != nil {
			return nil, err
		}
		urls = append(urls, req.URL)
	}

	return urls, nil
}

package assets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"math/rand"
	"mime"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"newsreel/background"
	"newsreel/config"
	"newsreel/music"
)

// ErrNoBucket is returned by NewS3 when no bucket is configured.
var ErrNoBucket = errors.New("s3: no bucket configured")

// S3Store serves render assets out of an S3 bucket and receives the
// finished artifacts. Fetches cache into a destination directory so a
// bucket object is downloaded at most once per deployment.
type S3Store struct {
	client  *s3.Client
	bucket  string
	baseURL string
	region  string
	destDir string
	rng     *rand.Rand
}

var (
	_ background.RemoteFetcher = (*S3Store)(nil)
	_ music.RemoteFetcher      = (*S3Store)(nil)
)

// NewS3 dials the default AWS configuration chain with the configured
// region. Downloads land in destDir.
func NewS3(ctx context.Context, cfg config.Config, destDir string) (*S3Store, error) {
	if cfg.S3Bucket == "" {
		return nil, ErrNoBucket
	}

	var loadOpts []func(*awsconfig.LoadOptions) error
	if cfg.S3Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(cfg.S3Region))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return &S3Store{
		client:  s3.NewFromConfig(awsCfg),
		bucket:  cfg.S3Bucket,
		baseURL: cfg.S3PublicBaseURL,
		region:  cfg.S3Region,
		destDir: destDir,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}, nil
}

// FetchRandom downloads one random object under the prefix that
// carries a wanted extension. An object already downloaded on an
// earlier call is reused without touching the network again.
func (s *S3Store) FetchRandom(ctx context.Context, prefix string, exts []string) (string, bool) {
	ctx, cancel := context.WithTimeout(ctx, config.RemoteFetchTimeout)
	defer cancel()

	out, err := s.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket:  aws.String(s.bucket),
		Prefix:  aws.String(prefix),
		MaxKeys: aws.Int32(1000),
	})
	if err != nil {
		log.Printf("⚠️ S3 list s3://%s/%s failed: %v", s.bucket, prefix, err)
		return "", false
	}

	var keys []string
	for _, obj := range out.Contents {
		if obj.Key != nil && matchesExt(*obj.Key, exts) {
			keys = append(keys, *obj.Key)
		}
	}
	if len(keys) == 0 {
		return "", false
	}

	key := keys[s.rng.Intn(len(keys))]
	local := filepath.Join(s.destDir, "s3_"+path.Base(key))
	if _, err := os.Stat(local); err == nil {
		return local, true
	}
	if err := s.download(ctx, key, local); err != nil {
		log.Printf("⚠️ S3 download s3://%s/%s failed: %v", s.bucket, key, err)
		return "", false
	}
	log.Printf("📥 Downloaded s3://%s/%s", s.bucket, key)
	return local, true
}

func (s *S3Store) download(ctx context.Context, key, local string) error {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return err
	}
	defer out.Body.Close()

	if err := os.MkdirAll(filepath.Dir(local), 0o755); err != nil {
		return err
	}
	f, err := os.Create(local)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, out.Body); err != nil {
		f.Close()
		os.Remove(local)
		return err
	}
	return f.Close()
}

// UploadArtifact puts a finished video or thumbnail under the key and
// returns its public URL. An object already present is kept as is.
func (s *S3Store) UploadArtifact(ctx context.Context, localPath, key string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, config.PublishTimeout)
	defer cancel()

	exists, err := s.exists(ctx, key)
	if err != nil {
		return "", fmt.Errorf("head s3://%s/%s: %w", s.bucket, key, err)
	}
	if exists {
		log.Printf("⏭️ s3://%s/%s already uploaded, skipping", s.bucket, key)
		return s.publicURL(key), nil
	}

	f, err := os.Open(localPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	in := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   f,
		ACL:    s3types.ObjectCannedACLPublicRead,
	}
	if ct := mime.TypeByExtension(filepath.Ext(localPath)); ct != "" {
		in.ContentType = aws.String(ct)
	}
	if _, err := s.client.PutObject(ctx, in); err != nil {
		return "", fmt.Errorf("put s3://%s/%s: %w", s.bucket, key, err)
	}
	log.Printf("📤 Uploaded s3://%s/%s", s.bucket, key)
	return s.publicURL(key), nil
}

// exists treats both SDK shapes of HeadObject's 404 as "not there".
func (s *S3Store) exists(ctx context.Context, key string) (bool, error) {
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err == nil {
		return true, nil
	}

	var respErr *awshttp.ResponseError
	if errors.As(err, &respErr) && respErr.HTTPStatusCode() == 404 {
		return false, nil
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) && apiErr.ErrorCode() == "NotFound" {
		return false, nil
	}

	return false, err
}

func (s *S3Store) publicURL(key string) string {
	if s.baseURL != "" {
		return s.baseURL + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}

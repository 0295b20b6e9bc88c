package publish

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"golang.org/x/sync/errgroup"

	"github.com/aitorfernandez/puid"
)

// contentTypes maps file extensions to MIME types.
var contentTypes = map[string]string{
	".html": "text/html; charset=utf-8",
	".css":  "text/css; charset=utf-8",
	".js":   "application/javascript",
	".json": "application/json",
	".xml":  "application/xml",
	".csv":  "text/csv; charset=utf-8",
	".txt":  "text/plain; charset=utf-8",
	".md":   "text/markdown; charset=utf-8",
	".yaml": "text/yaml; charset=utf-8",
	".yml":  "text/yaml; charset=utf-8",

	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".webp": "image/webp",
	".svg":  "image/svg+xml",

	".pdf":     "application/pdf",
	".zip":     "application/zip",
	".gz":      "application/gzip",
	".parquet": "application/vnd.apache.parquet",
	".mp4":     "video/mp4",
	".mp3":     "audio/mpeg",
}

func getContentType(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ct, ok := contentTypes[ext]; ok {
		return ct
	}
	return "application/octet-stream"
}

// ObjectPutter is the subset of the S3 API the Uploader needs.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Upload records where a local file was stored.
type Upload struct {
	Path string
	ID   string
	Key  string
}

// Uploader stores files in a bucket under freshly minted IDs.
type Uploader struct {
	Client      ObjectPutter
	Generator   *puid.Generator
	Bucket      string
	KeyPrefix   string
	IDPrefix    string
	Concurrency int
	Logger      *slog.Logger
}

// ObjectKey returns the key a file is stored under: the key prefix, the ID,
// and the file's lower-cased extension.
func ObjectKey(keyPrefix, id, path string) string {
	return keyPrefix + id + strings.ToLower(filepath.Ext(path))
}

// UploadFiles uploads every path and returns one Upload per path, in the
// same order. IDs are minted before any upload starts, so a failed run
// never reuses an ID for a different file.
func (u *Uploader) UploadFiles(ctx context.Context, paths []string) ([]Upload, error) {
	if u.Bucket == "" {
		return nil, fmt.Errorf("no bucket configured")
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no files to upload")
	}

	uploads := make([]Upload, len(paths))
	for i, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("failed to access %s: %w", path, err)
		}
		if info.IsDir() {
			return nil, fmt.Errorf("not a file: %s", path)
		}

		id, err := u.Generator.Generate(u.IDPrefix)
		if err != nil {
			return nil, fmt.Errorf("failed to generate id for %s: %w", path, err)
		}
		uploads[i] = Upload{Path: path, ID: id, Key: ObjectKey(u.KeyPrefix, id, path)}
	}

	logger := u.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	logger.Info("uploading files", "count", len(uploads), "bucket", u.Bucket)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(u.Concurrency, 1))
	for _, up := range uploads {
		g.Go(func() error {
			if err := u.uploadFile(gctx, up.Key, up.Path); err != nil {
				return fmt.Errorf("failed to upload %s: %w", up.Path, err)
			}
			logger.Debug("uploaded", "path", up.Path, "key", up.Key)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	logger.Info("upload complete", "count", len(uploads))
	return uploads, nil
}

func (u *Uploader) uploadFile(ctx context.Context, key, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = u.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.Bucket),
		Key:         aws.String(key),
		Body:        file,
		ContentType: aws.String(getContentType(path)),
		Metadata:    map[string]string{"source-name": filepath.Base(path)},
	})
	return err
}

// Package cloudwriter buffers objects in memory and uploads them to object
// storage when closed.
package cloudwriter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/chrisdamba/foodstore/internal/models"
)

const (
	uploadTimeout      = 30 * time.Second
	parquetContentType = "application/vnd.apache.parquet"
)

var ErrWriterClosed = errors.New("cloud writer already closed")

type CloudWriter interface {
	Write(data []byte) (int, error)
	Close() error
}

type CloudWriterFactory interface {
	NewWriter(bucket, objectPath string) (CloudWriter, error)
}

// ObjectPutter is the slice of the S3 API an upload needs. *s3.Client
// satisfies it.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// NewFactory picks the uploader for cfg.Provider. Only "s3" is supported;
// credentials come from the default AWS chain.
func NewFactory(cfg models.CloudStorageConfig) (CloudWriterFactory, error) {
	switch cfg.Provider {
	case "s3":
		if cfg.BucketName == "" {
			return nil, fmt.Errorf("s3 upload needs a bucket name")
		}
		var opts []func(*config.LoadOptions) error
		if cfg.Region != "" {
			opts = append(opts, config.WithRegion(cfg.Region))
		}
		awsCfg, err := config.LoadDefaultConfig(context.Background(), opts...)
		if err != nil {
			return nil, fmt.Errorf("loading aws config: %w", err)
		}
		return NewS3WriterFactory(s3.NewFromConfig(awsCfg)), nil
	default:
		return nil, fmt.Errorf("unsupported cloud storage provider: %q", cfg.Provider)
	}
}

// S3WriterFactory sends each closed activity partition as one PutObject.
type S3WriterFactory struct {
	client ObjectPutter
}

func NewS3WriterFactory(client ObjectPutter) *S3WriterFactory {
	return &S3WriterFactory{client: client}
}

func (f *S3WriterFactory) NewWriter(bucket, objectPath string) (CloudWriter, error) {
	return &bufferedWriter{upload: func(data []byte) error {
		ctx, cancel := context.WithTimeout(context.Background(), uploadTimeout)
		defer cancel()
		_, err := f.client.PutObject(ctx, &s3.PutObjectInput{
			Bucket:      aws.String(bucket),
			Key:         aws.String(objectPath),
			Body:        bytes.NewReader(data),
			ContentType: aws.String(parquetContentType),
		})
		if err != nil {
			return fmt.Errorf("uploading s3://%s/%s: %w", bucket, objectPath, err)
		}
		return nil
	}}, nil
}

// MemoryWriterFactory keeps closed objects in memory, keyed by bucket/path.
type MemoryWriterFactory struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func NewMemoryWriterFactory() *MemoryWriterFactory {
	return &MemoryWriterFactory{objects: make(map[string][]byte)}
}

func (f *MemoryWriterFactory) NewWriter(bucket, objectPath string) (CloudWriter, error) {
	key := bucket + "/" + objectPath
	return &bufferedWriter{upload: func(data []byte) error {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.objects[key] = append([]byte(nil), data...)
		return nil
	}}, nil
}

// Object returns the bytes uploaded under bucket/objectPath.
func (f *MemoryWriterFactory) Object(bucket, objectPath string) ([]byte, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.objects[bucket+"/"+objectPath]
	return data, ok
}

// bufferedWriter holds the whole object until Close, which uploads it once.
type bufferedWriter struct {
	buffer bytes.Buffer
	upload func(data []byte) error
	closed bool
}

func (w *bufferedWriter) Write(data []byte) (int, error) {
	if w.closed {
		return 0, ErrWriterClosed
	}
	return w.buffer.Write(data)
}

func (w *bufferedWriter) Close() error {
	if w.closed {
		return ErrWriterClosed
	}
	w.closed = true
	return w.upload(w.buffer.Bytes())
}

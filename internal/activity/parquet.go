package activity

import (
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/source"
	"github.com/xitongsys/parquet-go/writer"
	"go.uber.org/zap"

	"github.com/chrisdamba/foodstore/internal/cloudwriter"
	"github.com/chrisdamba/foodstore/internal/models"
)

// ParquetOutput keeps one parquet writer per topic partition. Files are only
// complete once Close has written their footers.
type ParquetOutput struct {
	basePath     string
	folder       string
	bucket       string
	cloudFactory cloudwriter.CloudWriterFactory
	writers      map[string]*writer.ParquetWriter
	files        map[string]source.ParquetFile
}

// NewParquetOutput writes under cfg.OutputPath, or uploads to
// cfg.CloudStorage when a provider is configured.
func NewParquetOutput(cfg models.ActivityConfig) (*ParquetOutput, error) {
	if cfg.CloudStorage.Provider == "" {
		return newParquetOutput(cfg.OutputPath, cfg.OutputFolder, "", nil), nil
	}
	factory, err := cloudwriter.NewFactory(cfg.CloudStorage)
	if err != nil {
		return nil, fmt.Errorf("failed to create cloud writer factory: %w", err)
	}
	return newParquetOutput(cfg.OutputPath, cfg.OutputFolder, cfg.CloudStorage.BucketName, factory), nil
}

// NewCloudParquetOutput uploads every partition through factory into bucket.
func NewCloudParquetOutput(factory cloudwriter.CloudWriterFactory, bucket, folder string) *ParquetOutput {
	return newParquetOutput("", folder, bucket, factory)
}

func newParquetOutput(basePath, folder, bucket string, factory cloudwriter.CloudWriterFactory) *ParquetOutput {
	return &ParquetOutput{
		basePath:     basePath,
		folder:       folder,
		bucket:       bucket,
		cloudFactory: factory,
		writers:      make(map[string]*writer.ParquetWriter),
		files:        make(map[string]source.ParquetFile),
	}
}

func (p *ParquetOutput) WriteMessage(topic string, msg []byte) error {
	record, err := decodeRecord(msg)
	if err != nil {
		return err
	}

	key := partition(topic, record.Timestamp)
	pw, ok := p.writers[key]
	if !ok {
		pw, err = p.createWriter(key)
		if err != nil {
			return err
		}
	}

	if err := pw.Write(record); err != nil {
		return fmt.Errorf("failed to write parquet record: %w", err)
	}
	return nil
}

func (p *ParquetOutput) createWriter(key string) (*writer.ParquetWriter, error) {
	var fw source.ParquetFile
	if p.cloudFactory != nil {
		objectPath := path.Join(p.folder, filepath.ToSlash(key), "data.parquet")
		cw, err := p.cloudFactory.NewWriter(p.bucket, objectPath)
		if err != nil {
			return nil, fmt.Errorf("failed to create cloud writer: %w", err)
		}
		fw = NewCloudParquetFile(cw)
	} else {
		dir := filepath.Join(p.basePath, p.folder, key)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
		var err error
		fw, err = local.NewLocalFileWriter(filepath.Join(dir, "data.parquet"))
		if err != nil {
			return nil, fmt.Errorf("failed to create local parquet file: %w", err)
		}
	}

	pw, err := writer.NewParquetWriter(fw, new(Record), 4)
	if err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to create ParquetWriter: %w", err)
	}
	p.writers[key] = pw
	p.files[key] = fw
	return pw, nil
}

func (p *ParquetOutput) Close() error {
	var lastErr error
	for key, pw := range p.writers {
		if err := pw.WriteStop(); err != nil {
			zap.S().Errorw("failed to finish parquet file", "partition", key, "error", err)
			lastErr = err
		}
		if err := p.files[key].Close(); err != nil {
			zap.S().Errorw("failed to close parquet file", "partition", key, "error", err)
			lastErr = err
		}
		delete(p.writers, key)
		delete(p.files, key)
	}
	return lastErr
}

// CloudParquetFile adapts a write-only CloudWriter to source.ParquetFile.
// Only forward writes are supported.
type CloudParquetFile struct {
	cloudWriter cloudwriter.CloudWriter
	offset      int64
}

func NewCloudParquetFile(cw cloudwriter.CloudWriter) *CloudParquetFile {
	return &CloudParquetFile{cloudWriter: cw}
}

func (c *CloudParquetFile) Open(name string) (source.ParquetFile, error) {
	return nil, fmt.Errorf("open not supported for cloud storage")
}

func (c *CloudParquetFile) Create(name string) (source.ParquetFile, error) {
	return c, nil
}

func (c *CloudParquetFile) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case 0:
		c.offset = offset
	case 1:
		c.offset += offset
	default:
		return 0, fmt.Errorf("seek from end not supported for cloud storage")
	}
	return c.offset, nil
}

func (c *CloudParquetFile) Read(p []byte) (int, error) {
	return 0, fmt.Errorf("read not supported for cloud storage")
}

func (c *CloudParquetFile) Write(p []byte) (int, error) {
	n, err := c.cloudWriter.Write(p)
	c.offset += int64(n)
	return n, err
}

func (c *CloudParquetFile) Close() error {
	return c.cloudWriter.Close()
}

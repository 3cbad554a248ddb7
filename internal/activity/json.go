package activity

import (
	"fmt"
	"os"
	"path/filepath"
)

// JSONOutput appends one JSON line per record under
// basePath/folder/topic/year=/month=/day=/hour=/data.json. Each topic keeps
// only its current partition open; moving to another hour closes the old file.
type JSONOutput struct {
	basePath string
	folder   string
	files    map[string]*partitionFile
}

type partitionFile struct {
	dir  string
	file *os.File
}

func NewJSONOutput(basePath, folder string) *JSONOutput {
	return &JSONOutput{
		basePath: basePath,
		folder:   folder,
		files:    make(map[string]*partitionFile),
	}
}

func (j *JSONOutput) WriteMessage(topic string, msg []byte) error {
	record, err := decodeRecord(msg)
	if err != nil {
		return err
	}

	dir := filepath.Join(j.basePath, j.folder, partition(topic, record.Timestamp))
	current, ok := j.files[topic]
	if !ok || current.dir != dir {
		if ok {
			delete(j.files, topic)
			if err := current.file.Close(); err != nil {
				return fmt.Errorf("failed to close journal file: %w", err)
			}
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
		file, err := os.OpenFile(filepath.Join(dir, "data.json"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open journal file: %w", err)
		}
		current = &partitionFile{dir: dir, file: file}
		j.files[topic] = current
	}

	if _, err := current.file.Write(append(msg, '\n')); err != nil {
		return fmt.Errorf("failed to append to journal: %w", err)
	}
	return nil
}

func (j *JSONOutput) Close() error {
	var lastErr error
	for topic, current := range j.files {
		if err := current.file.Close(); err != nil {
			lastErr = err
		}
		delete(j.files, topic)
	}
	return lastErr
}

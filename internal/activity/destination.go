// Package activity journals storefront events to an external destination:
// the console, partitioned JSON files, parquet files or Kafka.
package activity

import (
	"fmt"
	"io"

	"github.com/chrisdamba/foodstore/internal/models"
)

// Journal topics.
const (
	TopicSession = "session_events"
	TopicCart    = "cart_events"
	TopicOrder   = "order_events"
)

// Destination receives one encoded Record per call.
type Destination interface {
	WriteMessage(topic string, msg []byte) error
	Close() error
}

// NewDestination builds the destination selected by cfg.Format. It returns
// nil for "none". Console output goes to stdout.
func NewDestination(cfg models.ActivityConfig, stdout io.Writer) (Destination, error) {
	switch cfg.Format {
	case "", "none":
		return nil, nil
	case "console":
		return NewConsoleOutput(stdout), nil
	case "json":
		return NewJSONOutput(cfg.OutputPath, cfg.OutputFolder), nil
	case "parquet":
		return NewParquetOutput(cfg)
	case "kafka":
		return NewKafkaOutput(cfg.KafkaBrokerList)
	default:
		return nil, fmt.Errorf("unsupported activity format: %q", cfg.Format)
	}
}

type ConsoleOutput struct {
	w io.Writer
}

func NewConsoleOutput(w io.Writer) *ConsoleOutput {
	return &ConsoleOutput{w: w}
}

func (c *ConsoleOutput) WriteMessage(topic string, msg []byte) error {
	if _, err := fmt.Fprintf(c.w, "[%s] %s\n", topic, msg); err != nil {
		return fmt.Errorf("failed to write to console: %w", err)
	}
	return nil
}

func (c *ConsoleOutput) Close() error {
	return nil
}

package session

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mikeMule/gebeta-client/internal/models"
	"github.com/mikeMule/gebeta-client/internal/session/producers"
)

// OutputDestination receives session events by topic. Sinks are chosen from
// configuration: Kafka when enabled, a per-topic JSON file tree when an output
// path is set, console otherwise.
type OutputDestination interface {
	WriteMessage(topic string, msg []byte) error
	Close() error
}

type ConsoleOutput struct{}

func (c *ConsoleOutput) WriteMessage(topic string, msg []byte) error {
	output := fmt.Sprintf("[%s] %s\n", topic, string(msg))
	_, err := os.Stdout.Write([]byte(output))
	if err != nil {
		return fmt.Errorf("failed to write to stdout: %w", err)
	}
	_ = os.Stdout.Sync()
	return nil
}

func (c *ConsoleOutput) Close() error { return nil }

// JSONOutput appends newline-delimited JSON to one file per topic.
type JSONOutput struct {
	basePath string
	files    map[string]*os.File
}

func NewJSONOutput(basePath string) *JSONOutput {
	return &JSONOutput{
		basePath: basePath,
		files:    make(map[string]*os.File),
	}
}

func (j *JSONOutput) WriteMessage(topic string, msg []byte) error {
	file, ok := j.files[topic]
	if !ok {
		if err := os.MkdirAll(j.basePath, 0o755); err != nil {
			return fmt.Errorf("failed to create output dir: %w", err)
		}
		filename := filepath.Join(j.basePath, topic+".jsonl")
		created, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to create file for topic %s: %w", topic, err)
		}
		j.files[topic] = created
		file = created
	}

	if _, err := file.Write(append(msg, '\n')); err != nil {
		return fmt.Errorf("failed to write message to topic %s: %w", topic, err)
	}
	return nil
}

func (j *JSONOutput) Close() error {
	var firstErr error
	for _, file := range j.files {
		if err := file.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// KafkaOutput publishes session events to Kafka.
type KafkaOutput struct {
	producer *producers.SaramaProducer
}

func NewKafkaOutput(cfg *models.Config) (*KafkaOutput, error) {
	producer, err := producers.NewSaramaProducer(cfg)
	if err != nil {
		return nil, err
	}
	return &KafkaOutput{producer: producer}, nil
}

func (k *KafkaOutput) WriteMessage(topic string, msg []byte) error {
	return k.producer.WriteMessage(topic, msg)
}

func (k *KafkaOutput) Close() error {
	return k.producer.Close()
}

// OutputForConfig picks the sink the configuration asks for.
func OutputForConfig(cfg *models.Config) (OutputDestination, error) {
	switch {
	case cfg.KafkaEnabled:
		return NewKafkaOutput(cfg)
	case cfg.OutputFile != "":
		return NewJSONOutput(cfg.OutputFile), nil
	default:
		return &ConsoleOutput{}, nil
	}
}

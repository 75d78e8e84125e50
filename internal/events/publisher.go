package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-kafka/v2/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// EventPublisher defines the interface for publishing submission events
type EventPublisher interface {
	PublishSubmissionRecorded(ctx context.Context, event *SubmissionRecordedEvent) error
	Close() error
}

// PublisherConfig holds configuration for the event publisher
type PublisherConfig struct {
	KafkaBrokers []string
	TopicName    string
	Logger       *slog.Logger
}

// watermillPublisher implements EventPublisher on top of any Watermill
// message.Publisher (Kafka in production, GoChannel locally).
type watermillPublisher struct {
	publisher message.Publisher
	logger    *slog.Logger
	topicName string
}

// NewKafkaEventPublisher creates a Kafka-backed event publisher using Watermill.
func NewKafkaEventPublisher(config PublisherConfig) (EventPublisher, error) {
	logger := watermill.NewSlogLogger(config.Logger)

	publisherConfig := kafka.PublisherConfig{
		Brokers:   config.KafkaBrokers,
		Marshaler: kafka.DefaultMarshaler{},
	}

	publisher, err := kafka.NewPublisher(publisherConfig, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka publisher: %w", err)
	}

	return &watermillPublisher{
		publisher: publisher,
		logger:    config.Logger,
		topicName: config.TopicName,
	}, nil
}

// NewGoChannelEventPublisher creates an in-process publisher. Useful for
// local runs where no broker is available; messages are dropped once the
// process exits.
func NewGoChannelEventPublisher(topicName string, slogger *slog.Logger) EventPublisher {
	logger := watermill.NewSlogLogger(slogger)
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, logger)

	return &watermillPublisher{
		publisher: pubSub,
		logger:    slogger,
		topicName: topicName,
	}
}

// PublishSubmissionRecorded publishes a submission event to the configured topic.
func (p *watermillPublisher) PublishSubmissionRecorded(ctx context.Context, event *SubmissionRecordedEvent) error {
	eventBytes, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal submission event: %w", err)
	}

	msg := message.NewMessage(event.ID, eventBytes)
	msg.Metadata.Set("event_type", string(event.Type))
	msg.Metadata.Set("source", event.Source)
	msg.Metadata.Set("version", event.Version)
	msg.Metadata.Set("timestamp", event.Timestamp.Format(time.RFC3339))

	if err := p.publisher.Publish(p.topicName, msg); err != nil {
		p.logger.Error("Failed to publish submission event",
			"event_id", event.ID,
			"event_type", event.Type,
			"error", err)
		return fmt.Errorf("failed to publish submission event: %w", err)
	}

	p.logger.Info("Published submission event",
		"event_id", event.ID,
		"event_type", event.Type,
		"topic", p.topicName)

	return nil
}

// Close closes the publisher and releases resources
func (p *watermillPublisher) Close() error {
	return p.publisher.Close()
}

// MockEventPublisher is a mock implementation for testing
type MockEventPublisher struct {
	Events []SubmissionRecordedEvent
	Logger *slog.Logger
}

// NewMockEventPublisher creates a new mock event publisher
func NewMockEventPublisher(logger *slog.Logger) *MockEventPublisher {
	return &MockEventPublisher{
		Events: make([]SubmissionRecordedEvent, 0),
		Logger: logger,
	}
}

// PublishSubmissionRecorded stores the event in memory (for testing)
func (m *MockEventPublisher) PublishSubmissionRecorded(ctx context.Context, event *SubmissionRecordedEvent) error {
	m.Events = append(m.Events, *event)
	m.Logger.Info("Mock: Published submission event",
		"event_id", event.ID,
		"event_type", event.Type)
	return nil
}

// Close is a no-op for the mock publisher
func (m *MockEventPublisher) Close() error {
	return nil
}

// GetPublishedEvents returns all published events (for testing)
func (m *MockEventPublisher) GetPublishedEvents() []SubmissionRecordedEvent {
	return m.Events
}

// ClearEvents clears all published events (for testing)
func (m *MockEventPublisher) ClearEvents() {
	m.Events = make([]SubmissionRecordedEvent, 0)
}

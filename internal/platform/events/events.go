// Package events publishes activity events to Kafka so downstream
// consumers (notification fan-out, indexing) can react to record
// mutations. Publishing is best-effort: a broker outage never fails the
// mutation that produced the event.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"

	collection "commune/internal/collection/models"
)

// ActivityTopic is the stream of record mutation activities.
const ActivityTopic = "commune.activity"

// ActivityEvent is the wire payload for one record mutation.
type ActivityEvent struct {
	CircleID     string                `json:"circleId"`
	CollectionID string                `json:"collectionId"`
	RecordSlug   string                `json:"recordSlug"`
	ActorID      string                `json:"actorId"`
	Activities   []collection.Activity `json:"activities"`
	Timestamp    time.Time             `json:"timestamp"`
}

// Publisher emits activity events.
type Publisher interface {
	Emit(ctx context.Context, event ActivityEvent)
}

// NopPublisher drops events. Used when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) Emit(context.Context, ActivityEvent) {}

// KafkaPublisher produces activity events asynchronously; delivery
// failures are logged, never surfaced to the caller.
type KafkaPublisher struct {
	client *kgo.Client
	logger *slog.Logger
}

type Option func(*KafkaPublisher)

func WithLogger(logger *slog.Logger) Option {
	return func(p *KafkaPublisher) { p.logger = logger }
}

// NewKafkaPublisher connects to the brokers and ensures the activity
// topic exists.
func NewKafkaPublisher(ctx context.Context, brokers []string, opts ...Option) (*KafkaPublisher, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(ActivityTopic),
		kgo.AllowAutoTopicCreation(),
	)
	if err != nil {
		return nil, err
	}
	p := &KafkaPublisher{client: client, logger: slog.Default()}
	for _, opt := range opts {
		opt(p)
	}
	if err := p.ensureTopic(ctx); err != nil {
		client.Close()
		return nil, err
	}
	return p, nil
}

func (p *KafkaPublisher) ensureTopic(ctx context.Context) error {
	admin := kadm.NewClient(p.client)
	resp, err := admin.CreateTopics(ctx, 1, 1, nil, ActivityTopic)
	if err != nil {
		return err
	}
	for _, r := range resp {
		if r.Err != nil && !errors.Is(r.Err, kerr.TopicAlreadyExists) {
			return r.Err
		}
	}
	return nil
}

// Emit produces the event keyed by collection id so per-collection
// ordering is preserved.
func (p *KafkaPublisher) Emit(ctx context.Context, event ActivityEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		p.logger.ErrorContext(ctx, "failed to encode activity event",
			"collection_id", event.CollectionID,
			"error", err,
		)
		return
	}
	record := &kgo.Record{Key: []byte(event.CollectionID), Value: payload}
	p.client.Produce(ctx, record, func(_ *kgo.Record, err error) {
		if err != nil {
			p.logger.Error("failed to publish activity event",
				"collection_id", event.CollectionID,
				"record_slug", event.RecordSlug,
				"error", err,
			)
		}
	})
}

// Close flushes pending produces and releases the client.
func (p *KafkaPublisher) Close(ctx context.Context) error {
	if err := p.client.Flush(ctx); err != nil {
		return err
	}
	p.client.Close()
	return nil
}

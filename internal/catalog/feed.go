package catalog

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/segmentio/kafka-go"
)

// Change operations carried on the feed.
const (
	OpSaved   = "saved"
	OpDeleted = "deleted"
)

// ProductChange is published whenever the admin panel writes the catalog.
type ProductChange struct {
	Op        string    `json:"op"`
	ProductID string    `json:"product_id"`
	Product   Product   `json:"product,omitempty"`
	ChangedAt time.Time `json:"changed_at"`
}

// ChangeHandler receives catalog changes from a subscription.
type ChangeHandler func(ctx context.Context, change ProductChange) error

// Feed publishes catalog changes to Kafka so storefront clients can refresh
// their snapshot instead of polling.
type Feed struct {
	writer *kafka.Writer
}

// NewFeed creates a Feed on the given brokers and topic.
func NewFeed(brokers []string, topic string) *Feed {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
	}
	return &Feed{writer: writer}
}

// Publish sends one change, keyed by product id.
func (f *Feed) Publish(ctx context.Context, change ProductChange) error {
	data, err := json.Marshal(change)
	if err != nil {
		return err
	}

	return f.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(change.ProductID),
		Value: data,
		Time:  change.ChangedAt,
	})
}

// Close closes the underlying writer.
func (f *Feed) Close() error {
	return f.writer.Close()
}

// Subscription consumes the change feed and drives ChangeHandlers.
type Subscription struct {
	reader *kafka.Reader
}

// NewSubscription creates a Subscription in the given consumer group.
func NewSubscription(brokers []string, topic, groupID string) *Subscription {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    topic,
		GroupID:  groupID,
		MinBytes: 10e3, // 10KB
		MaxBytes: 10e6, // 10MB
	})
	return &Subscription{reader: reader}
}

// Listen blocks, decoding changes and invoking handler until ctx is done.
// Handler errors are logged, not fatal.
func (s *Subscription) Listen(ctx context.Context, handler ChangeHandler) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			msg, err := s.reader.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				log.Printf("[Catalog] Error reading change feed: %v", err)
				continue
			}

			var change ProductChange
			if err := json.Unmarshal(msg.Value, &change); err != nil {
				log.Printf("[Catalog] Malformed change message: %v", err)
				continue
			}

			if err := handler(ctx, change); err != nil {
				log.Printf("[Catalog] Change handler error for %s: %v", change.ProductID, err)
			}
		}
	}
}

// Close closes the underlying reader.
func (s *Subscription) Close() error {
	return s.reader.Close()
}

package events

import (
	"context"
	"fmt"
	"time"

	"auction-engine/utils"

	"github.com/nats-io/nats.go"
	"github.com/segmentio/kafka-go"
)

// LogSink writes every message to the structured log
type LogSink struct{}

// Publish implements Sink
func (LogSink) Publish(_ context.Context, subject, key string, payload []byte) error {
	utils.Info("Event published", map[string]any{
		"subject": subject,
		"key":     key,
		"payload": string(payload),
	})
	return nil
}

const (
	natsConnectWait   = 5 * time.Second
	natsMaxReconnects = 5
	natsReconnectWait = 2 * time.Second
)

// natsConn is the part of *nats.Conn the sink uses
type natsConn interface {
	Publish(subject string, data []byte) error
	Drain() error
}

// NATSSink publishes each subject as a NATS subject
type NATSSink struct {
	conn natsConn
}

// ConnectNATS dials the server at url
func ConnectNATS(url string) (*nats.Conn, error) {
	opts := []nats.Option{
		nats.Name("auction-engine publisher"),
		nats.Timeout(natsConnectWait),
		nats.MaxReconnects(natsMaxReconnects),
		nats.ReconnectWait(natsReconnectWait),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				utils.Warn("NATS disconnected", map[string]any{"error": err.Error()})
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			utils.Info("NATS reconnected", map[string]any{"url": nc.ConnectedUrl()})
		}),
	}

	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("events: connect to NATS at %s: %w", url, err)
	}
	return nc, nil
}

// NewNATSSink wraps an open connection
func NewNATSSink(conn *nats.Conn) (*NATSSink, error) {
	if conn == nil {
		return nil, fmt.Errorf("events: NATS connection cannot be nil")
	}
	return &NATSSink{conn: conn}, nil
}

// Publish implements Sink
func (s *NATSSink) Publish(_ context.Context, subject, _ string, payload []byte) error {
	if err := s.conn.Publish(subject, payload); err != nil {
		return fmt.Errorf("events: publish to NATS subject %s: %w", subject, err)
	}
	return nil
}

// Close drains pending messages and closes the connection
func (s *NATSSink) Close() error {
	return s.conn.Drain()
}

// messageWriter is the part of *kafka.Writer the sink uses
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaSink writes every subject to one topic, keyed by listing id so a
// listing's events stay on one partition. The subject travels as a header.
type KafkaSink struct {
	w     messageWriter
	topic string
}

// NewKafkaSink creates an async writer; delivery failures are logged from the completion callback
func NewKafkaSink(brokers []string, topic string) *KafkaSink {
	return &KafkaSink{
		topic: topic,
		w: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
			MaxAttempts:  5,
			WriteTimeout: 5 * time.Second,
			ReadTimeout:  5 * time.Second,
			BatchTimeout: 50 * time.Millisecond,
			Async:        true,
			Completion: func(messages []kafka.Message, err error) {
				if err != nil {
					utils.Warn("Kafka delivery failed", map[string]any{
						"topic":    topic,
						"messages": len(messages),
						"error":    err.Error(),
					})
				}
			},
		},
	}
}

// Publish implements Sink
func (s *KafkaSink) Publish(ctx context.Context, subject, key string, payload []byte) error {
	err := s.w.WriteMessages(ctx, kafka.Message{
		Key:     []byte(key),
		Value:   payload,
		Headers: []kafka.Header{{Key: "subject", Value: []byte(subject)}},
	})
	if err != nil {
		return fmt.Errorf("events: write %s to kafka topic %s: %w", subject, s.topic, err)
	}
	return nil
}

// Close flushes buffered messages
func (s *KafkaSink) Close() error { return s.w.Close() }

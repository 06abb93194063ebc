package events

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	model "auction-engine/internal/models"

	"github.com/nats-io/nats.go"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
)

type message struct {
	subject string
	key     string
	payload []byte
}

type recordingSink struct {
	mu   sync.Mutex
	msgs []message
	err  error
}

func (s *recordingSink) Publish(_ context.Context, subject, key string, payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.msgs = append(s.msgs, message{subject: subject, key: key, payload: payload})
	return s.err
}

func TestBus_Publish(t *testing.T) {
	t.Parallel()

	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		publish     func(b *Bus)
		wantSubject string
		wantKey     string
		check       func(t *testing.T, data json.RawMessage)
	}{
		{
			name: "auto_bid",
			publish: func(b *Bus) {
				b.AutoBidTriggered(context.Background(), model.AutoBidEvent{
					EventID: "e1", ListingID: "l1", BidderID: "u1", EventType: model.AutoBidPlace, Amount: 5_700_000, Ceiling: 5_800_000,
				})
			},
			wantSubject: SubjectAutoBid,
			wantKey:     "l1",
			check: func(t *testing.T, data json.RawMessage) {
				var e model.AutoBidEvent
				require.NoError(t, json.Unmarshal(data, &e))
				require.Equal(t, model.AutoBidPlace, e.EventType)
				require.Equal(t, int64(5_700_000), e.Amount)
			},
		},
		{
			name: "order_created",
			publish: func(b *Bus) {
				b.OrderCreated(context.Background(), model.Order{OrderID: "o1", ListingID: "l2", WinnerID: "u2", FinalPrice: 100, Status: model.OrderPendingPayment})
			},
			wantSubject: SubjectOrderCreate,
			wantKey:     "l2",
			check: func(t *testing.T, data json.RawMessage) {
				var o model.Order
				require.NoError(t, json.Unmarshal(data, &o))
				require.Equal(t, "u2", o.WinnerID)
			},
		},
		{
			name: "order_status",
			publish: func(b *Bus) {
				b.OrderStatusChanged(context.Background(), model.Order{OrderID: "o1", ListingID: "l3", Status: model.OrderCompleted})
			},
			wantSubject: SubjectOrderStatus,
			wantKey:     "l3",
			check: func(t *testing.T, data json.RawMessage) {
				var o model.Order
				require.NoError(t, json.Unmarshal(data, &o))
				require.Equal(t, model.OrderCompleted, o.Status)
			},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			sink := &recordingSink{}
			bus := NewBus(sink)
			bus.now = func() time.Time { return at }

			tc.publish(bus)

			require.Len(t, sink.msgs, 1)
			msg := sink.msgs[0]
			require.Equal(t, tc.wantSubject, msg.subject)
			require.Equal(t, tc.wantKey, msg.key)

			var env Envelope
			require.NoError(t, json.Unmarshal(msg.payload, &env))
			require.Equal(t, tc.wantSubject, env.Type)
			require.True(t, at.Equal(env.OccurredAt))
			tc.check(t, env.Data)
		})
	}
}

func TestBus_SinkFailureIsSwallowed(t *testing.T) {
	t.Parallel()

	sink := &recordingSink{err: errors.New("broker unavailable")}
	bus := NewBus(sink)

	require.NotPanics(t, func() {
		bus.OrderCreated(context.Background(), model.Order{OrderID: "o1", ListingID: "l1"})
	})
	require.Len(t, sink.msgs, 1)
}

func TestLogSink(t *testing.T) {
	t.Parallel()
	require.NoError(t, LogSink{}.Publish(context.Background(), SubjectAutoBid, "l1", []byte(`{}`)))
}

func TestNewNATSSink_NilConnection(t *testing.T) {
	t.Parallel()
	_, err := NewNATSSink(nil)
	require.Error(t, err)
}

type fakeNATSConn struct {
	subjects []string
	payloads [][]byte
	err      error
	drained  bool
}

func (c *fakeNATSConn) Publish(subject string, data []byte) error {
	c.subjects = append(c.subjects, subject)
	c.payloads = append(c.payloads, data)
	return c.err
}

func (c *fakeNATSConn) Drain() error {
	c.drained = true
	return nil
}

type fakeKafkaWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *fakeKafkaWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.msgs = append(w.msgs, msgs...)
	return w.err
}

func (w *fakeKafkaWriter) Close() error {
	w.closed = true
	return nil
}

func TestNATSSink_Publish(t *testing.T) {
	t.Parallel()

	conn := &fakeNATSConn{}
	sink := &NATSSink{conn: conn}

	require.NoError(t, sink.Publish(context.Background(), SubjectAutoBid, "l1", []byte(`{"a":1}`)))
	require.Equal(t, []string{SubjectAutoBid}, conn.subjects)
	require.Equal(t, `{"a":1}`, string(conn.payloads[0]))

	conn.err = nats.ErrConnectionClosed
	err := sink.Publish(context.Background(), SubjectOrderCreate, "l1", []byte(`{}`))
	require.ErrorIs(t, err, nats.ErrConnectionClosed)
	require.Contains(t, err.Error(), SubjectOrderCreate)

	require.NoError(t, sink.Close())
	require.True(t, conn.drained)
}

func TestKafkaSink_Publish(t *testing.T) {
	t.Parallel()

	w := &fakeKafkaWriter{}
	sink := &KafkaSink{w: w, topic: "auction-events"}

	require.NoError(t, sink.Publish(context.Background(), SubjectOrderStatus, "l7", []byte(`{"b":2}`)))
	require.Len(t, w.msgs, 1)
	msg := w.msgs[0]
	require.Equal(t, "l7", string(msg.Key))
	require.Equal(t, `{"b":2}`, string(msg.Value))
	require.Equal(t, []kafka.Header{{Key: "subject", Value: []byte(SubjectOrderStatus)}}, msg.Headers)

	boom := errors.New("leader not available")
	w.err = boom
	err := sink.Publish(context.Background(), SubjectAutoBid, "l7", []byte(`{}`))
	require.ErrorIs(t, err, boom)
	require.Contains(t, err.Error(), "auction-events")

	require.NoError(t, sink.Close())
	require.True(t, w.closed)
}

func TestNewKafkaSink_WriterSettings(t *testing.T) {
	t.Parallel()

	sink := NewKafkaSink([]string{"localhost:9092"}, "auction-events")
	w, ok := sink.w.(*kafka.Writer)
	require.True(t, ok)
	require.Equal(t, "auction-events", w.Topic)
	require.True(t, w.Async)
	require.Equal(t, kafka.RequireAll, w.RequiredAcks)
	require.IsType(t, &kafka.Hash{}, w.Balancer)
	require.NotNil(t, w.Completion)
	require.NotPanics(t, func() { w.Completion(nil, errors.New("broker down")) })
}

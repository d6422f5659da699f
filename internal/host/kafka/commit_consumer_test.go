package kafka

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	segkafka "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codemonkeylabs/graffiti-extensions/internal/domain/models"
)

type recordingSink struct {
	entities []any
}

func (s *recordingSink) Commit(_ context.Context, entity any) error {
	s.entities = append(s.entities, entity)
	return nil
}

func newTestConsumer(sink CommitSink) *Consumer {
	return &Consumer{
		dlqWriter: &segkafka.Writer{
			Addr:         segkafka.TCP("localhost:1"),
			Topic:        "post-commits-dlq",
			WriteTimeout: 100 * time.Millisecond,
		},
		sink:     sink,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		dlqTopic: "post-commits-dlq",
	}
}

func TestConsumer_HandleMessageDispatchesPost(t *testing.T) {
	t.Parallel()

	sink := &recordingSink{}
	consumer := newTestConsumer(sink)

	payload, err := json.Marshal(CommitMessage{
		Post: models.Post{ID: 1, Title: "Hi", IsPublished: true},
	})
	require.NoError(t, err)

	consumer.handleMessage(context.Background(), segkafka.Message{Value: payload})

	require.Len(t, sink.entities, 1)

	post, ok := sink.entities[0].(*models.Post)
	require.True(t, ok)
	assert.Equal(t, int64(1), post.ID)
	assert.Equal(t, "Hi", post.Title)
	assert.True(t, post.IsPublished)
}

func TestConsumer_UndecodableMessageSkipsSink(t *testing.T) {
	t.Parallel()

	sink := &recordingSink{}
	consumer := newTestConsumer(sink)

	consumer.handleMessage(context.Background(), segkafka.Message{Value: []byte("not json")})

	assert.Empty(t, sink.entities)
}

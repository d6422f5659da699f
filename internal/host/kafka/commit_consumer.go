package kafka

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/codemonkeylabs/graffiti-extensions/internal/domain/models"
	"github.com/segmentio/kafka-go"
)

// CommitMessage is the wire form of a host commit event.
type CommitMessage struct {
	Post models.Post `json:"post"`
}

// CommitSink receives decoded commit events; in practice this is the host
// application's commit pipeline.
type CommitSink interface {
	Commit(ctx context.Context, entity any) error
}

// Consumer feeds commit events from a Kafka topic into the extension
// pipeline, for hosts that publish their commit stream instead of calling
// in-process. Undecodable messages go to the dead-letter topic.
type Consumer struct {
	reader      *kafka.Reader
	dlqWriter   *kafka.Writer
	sink        CommitSink
	logger      *slog.Logger
	commitTopic string
	dlqTopic    string
}

func NewConsumer(
	brokers []string,
	groupID string,
	commitTopic string,
	dlqTopic string,
	sink CommitSink,
	logger *slog.Logger,
) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        brokers,
		GroupID:        groupID,
		Topic:          commitTopic,
		MinBytes:       10e3,
		MaxBytes:       10e6,
		CommitInterval: 1 * time.Second,
		Logger:         kafka.LoggerFunc(logger.Debug),
		ErrorLogger:    kafka.LoggerFunc(logger.Error),
	})

	dlqWriter := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        dlqTopic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
		Logger:       kafka.LoggerFunc(logger.Debug),
		ErrorLogger:  kafka.LoggerFunc(logger.Error),
	}

	return &Consumer{
		reader:      reader,
		dlqWriter:   dlqWriter,
		sink:        sink,
		logger:      logger,
		commitTopic: commitTopic,
		dlqTopic:    dlqTopic,
	}
}

func (c *Consumer) Start(ctx context.Context) {
	c.logger.Info("Starting Kafka commit consumer",
		"topic", c.commitTopic,
	)

	go func() {
		for {
			select {
			case <-ctx.Done():
				c.logger.Info("Stopping Kafka commit consumer")
				return
			default:
				msg, err := c.reader.ReadMessage(ctx)
				if err != nil {
					if ctx.Err() != nil {
						return
					}

					c.logger.Error("Failed to read message from Kafka",
						"error", err,
					)

					continue
				}

				c.handleMessage(ctx, msg)
			}
		}
	}()
}

func (c *Consumer) handleMessage(ctx context.Context, msg kafka.Message) {
	var commit CommitMessage

	if err := json.Unmarshal(msg.Value, &commit); err != nil {
		c.logger.Error("Failed to decode commit message, sending to DLQ",
			"error", err,
			"offset", msg.Offset,
		)

		c.sendToDLQ(ctx, msg)

		return
	}

	post := commit.Post

	if err := c.sink.Commit(ctx, &post); err != nil {
		c.logger.Error("Failed to process commit event",
			"error", err,
			"postID", post.ID,
		)
	}
}

func (c *Consumer) sendToDLQ(ctx context.Context, msg kafka.Message) {
	dlqMsg := kafka.Message{
		Key:   msg.Key,
		Value: msg.Value,
	}

	if err := c.dlqWriter.WriteMessages(ctx, dlqMsg); err != nil {
		c.logger.Error("Failed to write message to DLQ",
			"error", err,
			"topic", c.dlqTopic,
		)
	}
}

func (c *Consumer) Close() error {
	if err := c.reader.Close(); err != nil {
		return err
	}

	return c.dlqWriter.Close()
}

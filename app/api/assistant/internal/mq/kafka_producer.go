package mq

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"VoiceMart/app/api/assistant/internal/config"

	"github.com/segmentio/kafka-go"
	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/core/threading"
)

const publishTimeout = 3 * time.Second

// MessageWriter is the part of *kafka.Writer the publisher needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type CommandPublisher struct {
	writer MessageWriter
}

// NewCommandPublisher returns nil when kafka is not configured; a nil
// publisher drops events.
func NewCommandPublisher(c config.KafkaConf) *CommandPublisher {
	if len(c.Brokers) == 0 || c.CommandTopic == "" {
		logx.Infow("command events disabled, kafka config missing")
		return nil
	}
	return NewCommandPublisherWithWriter(&kafka.Writer{
		Addr:                   kafka.TCP(c.Brokers...),
		Topic:                  c.CommandTopic,
		RequiredAcks:           kafka.RequireOne,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
		BatchTimeout:           5 * time.Millisecond,
	})
}

func NewCommandPublisherWithWriter(w MessageWriter) *CommandPublisher {
	return &CommandPublisher{writer: w}
}

func (p *CommandPublisher) Publish(ctx context.Context, evt CommandEvent) error {
	if p == nil || p.writer == nil {
		return nil
	}
	body, err := json.Marshal(evt)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.FormatInt(evt.EventID, 10)),
		Value: body,
	})
}

// PublishAsync sends evt in the background. The request context is not used
// so the event survives the request finishing first.
func (p *CommandPublisher) PublishAsync(evt CommandEvent) {
	if p == nil || p.writer == nil {
		return
	}
	threading.GoSafe(func() {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()
		if err := p.Publish(ctx, evt); err != nil {
			logx.Errorw("publish command event failed",
				logx.Field("event_id", evt.EventID),
				logx.Field("intent", evt.Intent),
				logx.Field("err", err),
			)
		}
	})
}

func (p *CommandPublisher) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}

package mq

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"VoiceMart/app/api/assistant/internal/config"
	"VoiceMart/app/assistant/catalog/catalogtest"
	"VoiceMart/app/assistant/directive"
	"VoiceMart/app/assistant/intent"
	"VoiceMart/app/assistant/reply"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingWriter struct {
	mu     sync.Mutex
	msgs   []kafka.Message
	err    error
	closed bool
	done   chan struct{}
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.msgs = append(w.msgs, msgs...)
	if w.done != nil {
		close(w.done)
		w.done = nil
	}
	return w.err
}

func (w *recordingWriter) Close() error {
	w.closed = true
	return nil
}

func sampleEnvelope() reply.Envelope {
	return reply.Envelope{
		Intent:     intent.KindSearchCategory,
		Confidence: intent.ConfidenceHigh,
		Resolution: reply.ResolutionRule,
		Message:    "Let me find laptops for you.",
		Action:     directive.SearchCategory,
		Products:   catalogtest.Sample(3),
	}
}

func TestNewCommandEvent(t *testing.T) {
	evt := NewCommandEvent(sampleEnvelope(), "show me laptops", reply.PageContext{Page: "/"})

	assert.NotZero(t, evt.EventID)
	assert.Equal(t, "CommandInterpreted", evt.Type)
	assert.Equal(t, "SEARCH_CATEGORY", evt.Intent)
	assert.Equal(t, "high", evt.Confidence)
	assert.Equal(t, "rule", evt.Resolution)
	assert.Equal(t, "SEARCH_CATEGORY", evt.Action)
	assert.Equal(t, 3, evt.ProductCount)
	assert.Equal(t, "/", evt.Page)
}

func TestPublish(t *testing.T) {
	w := &recordingWriter{}
	p := NewCommandPublisherWithWriter(w)
	evt := NewCommandEvent(sampleEnvelope(), "show me laptops", reply.PageContext{})

	require.NoError(t, p.Publish(context.Background(), evt))
	require.Len(t, w.msgs, 1)
	assert.Equal(t, strconv.FormatInt(evt.EventID, 10), string(w.msgs[0].Key))

	var decoded CommandEvent
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &decoded))
	assert.Equal(t, evt, decoded)

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestPublishAsync(t *testing.T) {
	done := make(chan struct{})
	w := &recordingWriter{err: errors.New("broker down"), done: done}
	p := NewCommandPublisherWithWriter(w)

	p.PublishAsync(NewCommandEvent(sampleEnvelope(), "x", reply.PageContext{}))

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("event was not published")
	}
}

func TestNilPublisher(t *testing.T) {
	p := NewCommandPublisher(config.KafkaConf{})
	assert.Nil(t, p)
	assert.NoError(t, p.Publish(context.Background(), CommandEvent{}))
	p.PublishAsync(CommandEvent{})
	assert.NoError(t, p.Close())
}

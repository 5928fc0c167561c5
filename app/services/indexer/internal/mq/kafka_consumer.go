package mq

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"time"

	"VoiceMart/app/dal/product"
	"VoiceMart/app/services/indexer/internal/svc"

	"github.com/segmentio/kafka-go"
	"github.com/zeromicro/go-zero/core/logx"
)

// MessageReader is the part of *kafka.Reader the consumers use.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

func StartCanalProductConsumer(ctx context.Context, sc *svc.ServiceContext) error {
	kc := sc.Config.KafkaConf
	if len(kc.Brokers) == 0 || kc.ProductsTopic == "" || kc.Group == "" {
		logx.Infow("skip product consumer, kafka config missing")
		return nil
	}
	return Consume(ctx, newReader(kc.Brokers, kc.Group, kc.ProductsTopic), "product", func(ctx context.Context, value []byte) {
		var evt CanalProductsMessage
		if err := json.Unmarshal(value, &evt); err != nil {
			logx.Errorw("unmarshal product message failed", logx.Field("err", err))
			return
		}
		HandleProductsMessage(ctx, sc, evt)
	})
}

func StartCanalCategoryConsumer(ctx context.Context, sc *svc.ServiceContext) error {
	kc := sc.Config.KafkaConf
	if len(kc.Brokers) == 0 || kc.CategoriesTopic == "" || kc.Group == "" {
		logx.Infow("skip category consumer, kafka config missing")
		return nil
	}
	return Consume(ctx, newReader(kc.Brokers, kc.Group, kc.CategoriesTopic), "category", func(ctx context.Context, value []byte) {
		var evt CanalCategoriesMessage
		if err := json.Unmarshal(value, &evt); err != nil {
			logx.Errorw("unmarshal category message failed", logx.Field("err", err))
			return
		}
		HandleCategoriesMessage(ctx, sc, evt)
	})
}

func newReader(brokers []string, group, topic string) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:     brokers,
		GroupID:     group,
		Topic:       topic,
		MinBytes:    1,
		MaxBytes:    10 << 20,
		MaxWait:     50 * time.Millisecond,
		StartOffset: kafka.FirstOffset,
	})
}

// Fetch failures back off from fetchRetryDelay, doubling up to maxFetchRetryDelay.
var (
	fetchRetryDelay    = 500 * time.Millisecond
	maxFetchRetryDelay = 30 * time.Second
)

// Consume fetches, handles and commits messages until ctx is done or the
// reader is closed. Handling never blocks the commit: a bad message is logged
// and skipped.
func Consume(ctx context.Context, r MessageReader, name string, handle func(context.Context, []byte)) error {
	defer r.Close()

	delay := fetchRetryDelay
	for {
		m, err := r.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if errors.Is(err, io.EOF) {
				logx.Infow("reader closed, stop consumer", logx.Field("consumer", name))
				return nil
			}
			logx.Errorw("fetch message failed",
				logx.Field("consumer", name),
				logx.Field("retry_in", delay.String()),
				logx.Field("err", err),
			)
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(delay):
			}
			delay = min(delay*2, maxFetchRetryDelay)
			continue
		}
		delay = fetchRetryDelay

		handle(ctx, m.Value)

		if err := r.CommitMessages(ctx, m); err != nil {
			logx.Errorw("commit message failed",
				logx.Field("consumer", name),
				logx.Field("offset", m.Offset),
				logx.Field("err", err),
			)
		}
	}
}

func HandleProductsMessage(ctx context.Context, sc *svc.ServiceContext, message CanalProductsMessage) {
	if sc.Index == nil {
		logx.Infow("skip product message, elasticsearch client unavailable")
		return
	}
	if message.IsDdl || len(message.Data) == 0 {
		return
	}

	eventType := strings.ToUpper(message.Type)
	names := make(map[int64]string)

	for _, row := range message.Data {
		switch eventType {
		case canalDelete:
			if err := sc.Index.Delete(ctx, row.ID); err != nil {
				logx.Errorw("delete product document failed", logx.Field("id", row.ID), logx.Field("err", err))
			}
		case canalInsert, canalUpdate:
			name, ok := names[row.CategoryID]
			if !ok {
				name = categoryName(ctx, sc, row.CategoryID)
				names[row.CategoryID] = name
			}
			if err := sc.Index.Upsert(ctx, row.Document(name)); err != nil {
				logx.Errorw("upsert product document failed", logx.Field("id", row.ID), logx.Field("err", err))
			}
		default:
			logx.Infow("skip product message", logx.Field("type", message.Type))
			return
		}
	}
}

// HandleCategoriesMessage drops cached category lists and schedules a
// reindex of each changed category's products, which carry its name.
func HandleCategoriesMessage(ctx context.Context, sc *svc.ServiceContext, message CanalCategoriesMessage) {
	if message.IsDdl || len(message.Data) == 0 {
		return
	}
	switch strings.ToUpper(message.Type) {
	case canalInsert, canalUpdate, canalDelete:
	default:
		logx.Infow("skip category message", logx.Field("type", message.Type))
		return
	}

	ids := make([]int64, 0, len(message.Data))
	for _, row := range message.Data {
		ids = append(ids, row.ID)
	}
	if err := sc.Categories.DelActiveCache(ctx, ids...); err != nil {
		logx.Errorw("drop category cache failed", logx.Field("ids", ids), logx.Field("err", err))
	}

	if strings.ToUpper(message.Type) == canalInsert {
		// a new category has no products yet
		return
	}
	for _, id := range ids {
		if err := EnqueueReindexCategory(ctx, sc, id); err != nil {
			logx.Errorw("enqueue category reindex failed", logx.Field("category_id", id), logx.Field("err", err))
		}
	}
}

func categoryName(ctx context.Context, sc *svc.ServiceContext, id int64) string {
	if id <= 0 {
		return ""
	}
	c, err := sc.Categories.FindOne(ctx, id)
	if err != nil {
		if !errors.Is(err, product.ErrNotFound) {
			logx.Errorw("load category failed", logx.Field("category_id", id), logx.Field("err", err))
		}
		return ""
	}
	return c.Name
}

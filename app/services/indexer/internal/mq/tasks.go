package mq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"VoiceMart/app/common/consts/biz"
	"VoiceMart/app/dal/product"
	"VoiceMart/app/dal/search"
	"VoiceMart/app/services/indexer/internal/svc"

	"github.com/hibiken/asynq"
	"github.com/zeromicro/go-zero/core/logx"
)

var errTasksDisabled = errors.New("asynq client unavailable")

func NewAsynqMux(sc *svc.ServiceContext) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(biz.ReindexCategoryTask, newReindexCategoryHandler(sc))
	mux.HandleFunc(biz.BackfillCatalogTask, newBackfillHandler(sc))
	return mux
}

// EnqueueReindexCategory schedules a delayed reindex of one category. Changes
// arriving while a reindex is pending collapse into it.
func EnqueueReindexCategory(ctx context.Context, sc *svc.ServiceContext, categoryID int64) error {
	if sc.Tasks == nil {
		return errTasksDisabled
	}
	payload, err := json.Marshal(ReindexCategoryPayload{CategoryID: categoryID})
	if err != nil {
		return err
	}
	task := asynq.NewTask(biz.ReindexCategoryTask, payload)
	_, err = sc.Tasks.EnqueueContext(ctx, task,
		asynq.ProcessIn(biz.ReindexCategoryDelay),
		asynq.Queue(QueueIndexer),
		asynq.TaskID(fmt.Sprintf("reindex-category:%d", categoryID)),
	)
	if errors.Is(err, asynq.ErrTaskIDConflict) {
		logx.Infow("category reindex already pending", logx.Field("category_id", categoryID))
		return nil
	}
	return err
}

func EnqueueBackfill(ctx context.Context, sc *svc.ServiceContext) error {
	if sc.Tasks == nil {
		return errTasksDisabled
	}
	task := asynq.NewTask(biz.BackfillCatalogTask, nil)
	_, err := sc.Tasks.EnqueueContext(ctx, task, asynq.Queue(QueueIndexer), asynq.TaskID("catalog-backfill"))
	if errors.Is(err, asynq.ErrTaskIDConflict) {
		return nil
	}
	return err
}

func newReindexCategoryHandler(sc *svc.ServiceContext) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload ReindexCategoryPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return fmt.Errorf("decode reindex payload: %v: %w", err, asynq.SkipRetry)
		}
		if payload.CategoryID <= 0 {
			return fmt.Errorf("invalid category id %d: %w", payload.CategoryID, asynq.SkipRetry)
		}

		n, err := Reproject(ctx, sc, payload.CategoryID)
		if err != nil {
			return err
		}
		logx.WithContext(ctx).Infow("category reindexed",
			logx.Field("category_id", payload.CategoryID),
			logx.Field("documents", n),
		)
		return nil
	}
}

func newBackfillHandler(sc *svc.ServiceContext) asynq.HandlerFunc {
	return func(ctx context.Context, _ *asynq.Task) error {
		n, err := Reproject(ctx, sc, 0)
		if err != nil {
			return err
		}
		logx.WithContext(ctx).Infow("catalog backfilled", logx.Field("documents", n))
		return nil
	}
}

// Reproject copies every product of a category, or of the whole catalog when
// categoryID is zero, from MySQL into the search index in id order.
func Reproject(ctx context.Context, sc *svc.ServiceContext, categoryID int64) (uint64, error) {
	if sc.Index == nil {
		return 0, fmt.Errorf("reproject: elasticsearch client unavailable: %w", asynq.SkipRetry)
	}

	var (
		total   uint64
		afterID int64
	)
	for {
		rows, err := sc.Products.FindByFilter(ctx, product.ProductFilter{
			CategoryId: categoryID,
			AfterId:    afterID,
			Limit:      biz.ReindexBatchSize,
		})
		if err != nil {
			return total, fmt.Errorf("list products after %d: %w", afterID, err)
		}
		if len(rows) == 0 {
			return total, nil
		}

		docs := make([]search.Document, 0, len(rows))
		for _, row := range rows {
			docs = append(docs, summaryDocument(row))
		}
		stats, err := sc.Index.BulkIndex(ctx, docs)
		total += stats.Indexed
		if err != nil {
			return total, err
		}

		afterID = rows[len(rows)-1].Id
		if len(rows) < biz.ReindexBatchSize {
			return total, nil
		}
	}
}

package bootstrap

import (
	"context"

	"VoiceMart/app/dal/search"
	"VoiceMart/app/services/indexer/internal/mq"
	"VoiceMart/app/services/indexer/internal/svc"

	"github.com/zeromicro/go-zero/core/logx"
)

// EnsureIndex creates the product index when missing and schedules a full
// backfill into the new index.
func EnsureIndex(ctx context.Context, sc *svc.ServiceContext) error {
	if sc.Search == nil {
		return nil
	}

	created, err := sc.Search.EnsureIndex(ctx, search.IndexParams{
		NumberOfShards:   sc.Config.ElasticConf.NumberOfShards,
		NumberOfReplicas: sc.Config.ElasticConf.NumberOfReplicas,
	})
	if err != nil {
		return err
	}
	if !created {
		return nil
	}

	logx.Infow("product index created", logx.Field("index", sc.Search.Index()))
	if err := mq.EnqueueBackfill(ctx, sc); err != nil {
		logx.Errorw("enqueue catalog backfill failed", logx.Field("err", err))
	}
	return nil
}

package bootstrap

import (
	"context"

	"VoiceMart/app/services/indexer/internal/mq"
	"VoiceMart/app/services/indexer/internal/svc"

	"github.com/hibiken/asynq"
	"github.com/zeromicro/go-zero/core/logx"
)

// RunAsynq serves reindex tasks until ctx is done.
func RunAsynq(ctx context.Context, sc *svc.ServiceContext) error {
	addr := svc.AsynqAddr(sc.Config)
	if addr == "" {
		logx.Infow("skip asynq server, redis address missing")
		return nil
	}

	queues := sc.Config.AsynqServerConf.Queues
	if len(queues) == 0 {
		queues = map[string]int{mq.QueueIndexer: 1}
	}
	srv := asynq.NewServer(asynq.RedisClientOpt{Addr: addr}, asynq.Config{
		Concurrency: sc.Config.AsynqServerConf.Concurrency,
		Queues:      queues,
	})
	if err := srv.Start(mq.NewAsynqMux(sc)); err != nil {
		return err
	}

	<-ctx.Done()
	srv.Shutdown()
	return nil
}

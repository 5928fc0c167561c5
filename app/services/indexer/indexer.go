package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"VoiceMart/app/services/indexer/internal/bootstrap"
	"VoiceMart/app/services/indexer/internal/config"
	"VoiceMart/app/services/indexer/internal/mq"
	"VoiceMart/app/services/indexer/internal/svc"

	"github.com/zeromicro/go-zero/core/conf"
	"github.com/zeromicro/go-zero/core/logx"
	"golang.org/x/sync/errgroup"
)

var configFile = flag.String("f", "etc/indexer.yaml", "the config file")

func main() {
	flag.Parse()

	var c config.Config
	conf.MustLoad(*configFile, &c)
	ctx := svc.NewServiceContext(c)
	defer ctx.Close()

	rootCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := bootstrap.EnsureIndex(rootCtx, ctx); err != nil {
		logx.Errorw("ensure product index failed", logx.Field("err", err))
	}

	group, groupCtx := errgroup.WithContext(rootCtx)
	group.Go(func() error { return mq.StartCanalProductConsumer(groupCtx, ctx) })
	group.Go(func() error { return mq.StartCanalCategoryConsumer(groupCtx, ctx) })
	group.Go(func() error { return bootstrap.RunAsynq(groupCtx, ctx) })

	if err := group.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logx.Errorw("indexer stopped with error", logx.Field("err", err))
		os.Exit(1)
	}

	logx.Info("indexer shutdown gracefully")
}

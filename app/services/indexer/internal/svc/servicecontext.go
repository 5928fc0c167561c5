package svc

import (
	"context"

	"VoiceMart/app/dal/product"
	"VoiceMart/app/dal/search"
	"VoiceMart/app/services/indexer/internal/config"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/hibiken/asynq"
	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/core/stores/sqlx"
)

type (
	// ProductIndex is the write side of the search projection.
	ProductIndex interface {
		Upsert(ctx context.Context, doc search.Document) error
		Delete(ctx context.Context, productID int64) error
		BulkIndex(ctx context.Context, docs []search.Document) (search.BulkStats, error)
	}

	ProductLister interface {
		FindByFilter(ctx context.Context, filter product.ProductFilter) ([]*product.ProductSummary, error)
	}

	CategoryStore interface {
		FindOne(ctx context.Context, id int64) (*product.Categories, error)
		DelActiveCache(ctx context.Context, ids ...int64) error
	}

	TaskEnqueuer interface {
		EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
	}
)

type ServiceContext struct {
	Config config.Config

	// Search is nil when no elasticsearch address is configured.
	Search     *search.Client
	Index      ProductIndex
	Products   ProductLister
	Categories CategoryStore
	// Tasks is nil when asynq has no redis address.
	Tasks TaskEnqueuer
}

func NewServiceContext(c config.Config) *ServiceContext {
	logx.MustSetup(c.LogConf)

	db := sqlx.NewMysql(c.MysqlConf.DataSource)
	sc := &ServiceContext{
		Config:     c,
		Products:   product.NewProductsModel(db, c.CacheConf),
		Categories: product.NewCategoriesModel(db, c.CacheConf),
	}

	if len(c.ElasticConf.Addresses) > 0 {
		client, err := elasticsearch.NewClient(elasticsearch.Config{
			Addresses: c.ElasticConf.Addresses,
			Username:  c.ElasticConf.Username,
			Password:  c.ElasticConf.Password,
		})
		if err != nil {
			logx.Errorw("init elasticsearch client failed", logx.Field("err", err))
		} else {
			sc.Search = search.NewClient(client, c.ElasticConf.IndexName)
			sc.Index = sc.Search
			logx.Infow("elasticsearch client initialized", logx.Field("addresses", c.ElasticConf.Addresses))
		}
	} else {
		logx.Infow("elasticsearch client disabled, no addresses configured")
	}

	if addr := AsynqAddr(c); addr != "" {
		sc.Tasks = asynq.NewClient(asynq.RedisClientOpt{Addr: addr})
	} else {
		logx.Infow("asynq client disabled, no redis address configured")
	}

	return sc
}

func AsynqAddr(c config.Config) string {
	if c.AsynqConf.Addr != "" {
		return c.AsynqConf.Addr
	}
	if len(c.CacheConf) > 0 {
		return c.CacheConf[0].Host
	}
	return ""
}

func (s *ServiceContext) Close() {
	if closer, ok := s.Tasks.(*asynq.Client); ok {
		if err := closer.Close(); err != nil {
			logx.Errorw("close asynq client failed", logx.Field("err", err))
		}
	}
}

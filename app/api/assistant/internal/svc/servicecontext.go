// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package svc

import (
	"context"
	"strings"
	"time"

	"VoiceMart/app/api/assistant/internal/config"
	"VoiceMart/app/api/assistant/internal/mq"
	"VoiceMart/app/assistant/catalog"
	"VoiceMart/app/assistant/completion"
	"VoiceMart/app/assistant/dispatch"
	"VoiceMart/app/assistant/fallback"
	"VoiceMart/app/assistant/responder"
	"VoiceMart/app/common/consts/biz"
	"VoiceMart/app/common/middleware"
	"VoiceMart/app/common/snowflake"
	"VoiceMart/app/dal/product"
	"VoiceMart/app/dal/search"

	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/core/stores/cache"
	"github.com/zeromicro/go-zero/core/stores/redis"
	"github.com/zeromicro/go-zero/core/stores/sqlx"
	"github.com/zeromicro/go-zero/rest"
)

const assistantSystemPrompt = "You are a concise shopping assistant. Only mention products that appear in the supplied catalog sample."

type ServiceContext struct {
	Config                 config.Config
	CommandLimitMiddleware rest.Middleware

	Catalog    catalog.Service
	Responder  *responder.Responder
	Resolver   *fallback.Resolver
	Dispatcher *dispatch.Dispatcher
	Events     *mq.CommandPublisher
}

// Dependencies are the collaborators NewServiceContext builds from config.
type Dependencies struct {
	Catalog    catalog.Service
	Generator  completion.Generator
	Events     *mq.CommandPublisher
	LimitStore *redis.Redis
}

func NewServiceContext(c config.Config) *ServiceContext {
	logx.MustSetup(c.LogConf)

	if c.SnowflakeNode > 0 {
		if err := snowflake.Init(c.SnowflakeNode); err != nil {
			logx.Errorw("init snowflake node failed", logx.Field("node", c.SnowflakeNode), logx.Field("err", err))
		}
	}

	var limitStore *redis.Redis
	if c.RedisConf.Host != "" {
		limitStore = redis.MustNewRedis(c.RedisConf)
	} else {
		logx.Infow("command rate limit disabled, redis config missing")
	}

	return NewServiceContextWith(c, Dependencies{
		Catalog:    newCatalog(c),
		Generator:  newGenerator(c.ChatModel),
		Events:     mq.NewCommandPublisher(c.KafkaConf),
		LimitStore: limitStore,
	})
}

func NewServiceContextWith(c config.Config, deps Dependencies) *ServiceContext {
	resp := responder.New(deps.Catalog)
	resolver := fallback.New(deps.Catalog, deps.Generator)

	period := time.Duration(c.CommandLimit.PeriodSeconds) * time.Second
	limiter := middleware.NewCommandLimitMiddleware(deps.LimitStore, biz.CommandLimitPrefix, period, c.CommandLimit.Quota)

	return &ServiceContext{
		Config:                 c,
		CommandLimitMiddleware: limiter.Handle,
		Catalog:                deps.Catalog,
		Responder:              resp,
		Resolver:               resolver,
		Dispatcher:             dispatch.New(resp, resolver),
		Events:                 deps.Events,
	}
}

func (s *ServiceContext) Close() {
	if err := s.Events.Close(); err != nil {
		logx.Errorw("close command publisher failed", logx.Field("err", err))
	}
}

func newCatalog(c config.Config) catalog.Service {
	db := sqlx.NewMysql(c.MysqlConf.DataSource)
	categories := product.NewCategoriesModel(db, c.CacheConf, cache.WithExpiry(c.Catalog.CategoryCacheTTL()))

	if strings.EqualFold(c.Catalog.Backend, config.CatalogBackendElastic) {
		if len(c.ElasticConf.Addresses) == 0 {
			logx.Errorw("elasticsearch catalog selected without addresses, using mysql")
		} else if es, err := elasticsearch.NewClient(elasticsearch.Config{
			Addresses: c.ElasticConf.Addresses,
			Username:  c.ElasticConf.Username,
			Password:  c.ElasticConf.Password,
		}); err != nil {
			logx.Errorw("init elasticsearch client failed, using mysql", logx.Field("err", err))
		} else {
			logx.Infow("catalog served from elasticsearch", logx.Field("index", c.ElasticConf.IndexName))
			return catalog.NewSearchCatalog(search.NewClient(es, c.ElasticConf.IndexName), categories)
		}
	}

	return catalog.NewSQLCatalog(product.NewProductsModel(db, c.CacheConf), categories)
}

// newGenerator returns nil, not a typed nil, when no model can be built.
func newGenerator(c config.ModelConf) completion.Generator {
	if c.APIKey == "" {
		logx.Infow("chat model disabled, missing api key")
		return nil
	}
	ctx := context.Background()

	if strings.EqualFold(c.Provider, config.ModelProviderGemini) {
		g, err := completion.NewGeminiGenerator(ctx, completion.GeminiOptions{
			APIKey:          c.APIKey,
			Model:           c.Model,
			Temperature:     c.Temperature,
			MaxOutputTokens: c.MaxOutputTokens,
		})
		if err != nil {
			logx.Errorw("init gemini model failed", logx.Field("err", err))
			return nil
		}
		logx.Infow("gemini model initialized", logx.Field("model", c.Model))
		return g
	}

	arkConf := &ark.ChatModelConfig{
		BaseURL: c.BaseUrl,
		APIKey:  c.APIKey,
		Model:   c.Model,
	}
	if c.Temperature > 0 {
		arkConf.Temperature = &c.Temperature
	}
	if c.MaxOutputTokens > 0 {
		maxTokens := int(c.MaxOutputTokens)
		arkConf.MaxTokens = &maxTokens
	}
	cm, err := ark.NewChatModel(ctx, arkConf)
	if err != nil {
		logx.Errorw("init ark chat model failed", logx.Field("err", err))
		return nil
	}
	g, err := completion.NewArkGenerator(ctx, cm, assistantSystemPrompt)
	if err != nil {
		logx.Errorw("build ark completion chain failed", logx.Field("err", err))
		return nil
	}
	logx.Infow("ark chat model initialized", logx.Field("model", c.Model))
	return g
}

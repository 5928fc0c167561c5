// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package config

import (
	"time"

	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/core/stores/cache"
	"github.com/zeromicro/go-zero/core/stores/redis"
	"github.com/zeromicro/go-zero/core/stores/sqlx"
	"github.com/zeromicro/go-zero/rest"
)

const (
	CatalogBackendMysql   = "mysql"
	CatalogBackendElastic = "elasticsearch"

	ModelProviderArk    = "ark"
	ModelProviderGemini = "gemini"
)

type Config struct {
	rest.RestConf

	LogConf logx.LogConf

	MysqlConf sqlx.SqlConf
	CacheConf cache.CacheConf
	// RedisConf backs the command rate limiter; leave Host empty to disable it.
	RedisConf redis.RedisConf `json:",optional"`

	Catalog     CatalogConf
	ElasticConf ElasticConf `json:",optional"`

	// ChatModel is optional: without an api key the assistant answers
	// ambiguous commands from keyword search alone.
	ChatModel ModelConf `json:",optional"`

	CommandLimit LimitConf `json:",optional"`
	KafkaConf    KafkaConf `json:",optional"`

	SnowflakeNode int64 `json:",optional"`
}

type CatalogConf struct {
	Backend              string `json:",default=mysql,options=mysql|elasticsearch"`
	CategoryCacheSeconds int    `json:",default=300"`
}

func (c CatalogConf) CategoryCacheTTL() time.Duration {
	return time.Duration(c.CategoryCacheSeconds) * time.Second
}

type ElasticConf struct {
	Addresses []string `json:",optional"`
	Username  string   `json:",optional"`
	Password  string   `json:",optional"`
	IndexName string   `json:",default=products"`
}

type ModelConf struct {
	Provider        string  `json:",default=ark,options=ark|gemini"`
	BaseUrl         string  `json:",optional"`
	APIKey          string  `json:",optional"`
	Model           string  `json:",optional"`
	Temperature     float32 `json:",optional"`
	MaxOutputTokens int32   `json:",optional"`
}

type LimitConf struct {
	PeriodSeconds int `json:",default=60"`
	Quota         int `json:",default=30"`
}

type KafkaConf struct {
	Brokers      []string `json:",optional"`
	CommandTopic string   `json:",optional"`
}

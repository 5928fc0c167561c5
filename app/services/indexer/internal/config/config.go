package config

import (
	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/core/stores/cache"
	"github.com/zeromicro/go-zero/core/stores/sqlx"
)

type Config struct {
	LogConf     logx.LogConf
	KafkaConf   KafkaConf
	ElasticConf ElasticConf

	MysqlConf sqlx.SqlConf
	CacheConf cache.CacheConf

	AsynqConf       AsynqRedisConf  `json:",optional"`
	AsynqServerConf AsynqServerConf `json:",optional"`
}

type KafkaConf struct {
	Brokers         []string `json:",optional"`
	Group           string   `json:",optional"`
	ProductsTopic   string   `json:",optional"`
	CategoriesTopic string   `json:",optional"`
}

type ElasticConf struct {
	Addresses        []string `json:",optional"`
	Username         string   `json:",optional"`
	Password         string   `json:",optional"`
	IndexName        string   `json:",default=products"`
	NumberOfShards   int      `json:",default=1"`
	NumberOfReplicas int      `json:",optional"`
}

// AsynqRedisConf falls back to the first cache node when Addr is empty.
type AsynqRedisConf struct {
	Addr string `json:",optional"`
}

type AsynqServerConf struct {
	Concurrency int            `json:",default=2"`
	Queues      map[string]int `json:",optional"`
}

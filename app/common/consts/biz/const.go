package biz

import "time"

const (
	// CommandLimitPrefix keys the per-client voice command quota in redis.
	CommandLimitPrefix = "voicemart:limit:command"

	CommandEventType = "CommandInterpreted"

	ReindexCategoryTask = "catalog:reindex_category"
	BackfillCatalogTask = "catalog:backfill"

	ReindexCategoryDelay = 5 * time.Second
	ReindexBatchSize     = 200
)

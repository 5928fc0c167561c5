package product

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/zeromicro/go-zero/core/stores/builder"
	"github.com/zeromicro/go-zero/core/stores/cache"
	"github.com/zeromicro/go-zero/core/stores/sqlc"
	"github.com/zeromicro/go-zero/core/stores/sqlx"
)

const cacheActiveCategoriesKey = "cache:categories:active"

var _ CategoriesModel = (*customCategoriesModel)(nil)

type (
	// CategoriesModel is an interface to be customized, add more methods here,
	// and implement the added methods in customCategoriesModel.
	CategoriesModel interface {
		categoriesModel
		// FindAllActive returns active categories ordered by name, cached as one entry.
		FindAllActive(ctx context.Context) ([]*Categories, error)
		// DelActiveCache drops the cached active category list after a category change.
		DelActiveCache(ctx context.Context, ids ...int64) error
	}

	customCategoriesModel struct {
		*defaultCategoriesModel
	}
)

// NewCategoriesModel returns a model for the database table.
func NewCategoriesModel(conn sqlx.SqlConn, c cache.CacheConf, opts ...cache.Option) CategoriesModel {
	return &customCategoriesModel{
		defaultCategoriesModel: newCategoriesModel(conn, c, opts...),
	}
}

func (m *customCategoriesModel) FindAllActive(ctx context.Context) ([]*Categories, error) {
	var resp []*Categories
	err := m.QueryRowCtx(ctx, &resp, cacheActiveCategoriesKey, func(ctx context.Context, conn sqlx.SqlConn, v any) error {
		query := fmt.Sprintf("select %s from %s where `is_active` = ? order by `name` asc", categoriesRows, m.table)
		return conn.QueryRowsCtx(ctx, v, query, true)
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (m *customCategoriesModel) DelActiveCache(ctx context.Context, ids ...int64) error {
	keys := make([]string, 0, len(ids)+1)
	keys = append(keys, cacheActiveCategoriesKey)
	for _, id := range ids {
		keys = append(keys, fmt.Sprintf("%s%v", cacheCategoriesIdPrefix, id))
	}
	return m.DelCacheCtx(ctx, keys...)
}

var (
	categoriesFieldNames = builder.RawFieldNames(&Categories{})
	categoriesRows       = strings.Join(categoriesFieldNames, ",")

	cacheCategoriesIdPrefix = "cache:categories:id:"
)

type (
	categoriesModel interface {
		FindOne(ctx context.Context, id int64) (*Categories, error)
	}

	defaultCategoriesModel struct {
		sqlc.CachedConn
		table string
	}

	Categories struct {
		Id          int64          `db:"id"`
		Name        string         `db:"name"`
		Description sql.NullString `db:"description"`
		IsActive    bool           `db:"is_active"`
		CreatedAt   time.Time      `db:"created_at"`
		UpdatedAt   time.Time      `db:"updated_at"`
	}
)

func newCategoriesModel(conn sqlx.SqlConn, c cache.CacheConf, opts ...cache.Option) *defaultCategoriesModel {
	return &defaultCategoriesModel{
		CachedConn: sqlc.NewConn(conn, c, opts...),
		table:      "`categories`",
	}
}

func (m *defaultCategoriesModel) FindOne(ctx context.Context, id int64) (*Categories, error) {
	categoriesIdKey := fmt.Sprintf("%s%v", cacheCategoriesIdPrefix, id)
	var resp Categories
	err := m.QueryRowCtx(ctx, &resp, categoriesIdKey, func(ctx context.Context, conn sqlx.SqlConn, v any) error {
		query := fmt.Sprintf("select %s from %s where `id` = ? limit 1", categoriesRows, m.table)
		return conn.QueryRowCtx(ctx, v, query, id)
	})
	switch err {
	case nil:
		return &resp, nil
	case sqlc.ErrNotFound:
		return nil, ErrNotFound
	default:
		return nil, err
	}
}

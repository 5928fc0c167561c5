package product

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeromicro/go-zero/core/stores/cache"
	"github.com/zeromicro/go-zero/core/stores/redis"
	"github.com/zeromicro/go-zero/core/stores/sqlx"
)

var summaryColumns = []string{
	"id", "name", "description", "price", "rating", "num_reviews", "brand", "image",
	"category_id", "category_name", "is_active", "created_at", "updated_at",
}

func newTestConn(t *testing.T) (sqlx.SqlConn, sqlmock.Sqlmock, cache.CacheConf) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	mr := miniredis.RunT(t)
	conf := cache.CacheConf{
		{
			RedisConf: redis.RedisConf{Host: mr.Addr(), Type: redis.NodeType},
			Weight:    100,
		},
	}
	return sqlx.NewSqlConnFromDB(db), mock, conf
}

func ptr(v float64) *float64 { return &v }

func TestFindByFilter(t *testing.T) {
	conn, mock, conf := newTestConn(t)
	m := NewProductsModel(conn, conf)

	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(summaryColumns).
		AddRow(7, "Pixel 9", "android phone", 699.0, 4.6, 120, "Google", "pixel.png", 3, "Smartphones", true, now, now)

	mock.ExpectQuery(regexp.QuoteMeta(
		"where p.`is_active` = ? and p.`category_id` = ? and p.`price` <= ? " +
			"and (LOWER(p.`name`) LIKE ? ESCAPE '!' OR LOWER(p.`description`) LIKE ? ESCAPE '!') " +
			"order by p.`rating` desc, p.`num_reviews` desc, p.`id` asc limit ?",
	)).
		WithArgs(true, int64(3), 800.0, "%pix!_el%", "%pix!_el%", 20).
		WillReturnRows(rows)

	got, err := m.FindByFilter(context.Background(), ProductFilter{
		ActiveOnly: true,
		CategoryId: 3,
		MaxPrice:   ptr(800),
		Keywords:   []string{"  PIX_EL ", ""},
		Fields:     []string{"name", "description"},
		OrderBy:    []Order{{Column: "rating", Desc: true}, {Column: "num_reviews", Desc: true}},
		Limit:      20,
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(7), got[0].Id)
	assert.Equal(t, "Smartphones", got[0].CategoryName)
	assert.Equal(t, "pixel.png", got[0].Image.String)
	assert.True(t, got[0].IsActive)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByFilter_NoConditions(t *testing.T) {
	conn, mock, conf := newTestConn(t)
	m := NewProductsModel(conn, conf)

	mock.ExpectQuery(regexp.QuoteMeta("on c.`id` = p.`category_id` order by p.`id` asc limit ?")).
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows(summaryColumns))

	got, err := m.FindByFilter(context.Background(), ProductFilter{OrderBy: []Order{{Column: "id"}}, Limit: 5})
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByFilter_RejectsBadInput(t *testing.T) {
	conn, mock, conf := newTestConn(t)
	m := NewProductsModel(conn, conf)
	ctx := context.Background()

	filters := []ProductFilter{
		{},
		{Limit: maxFilterLimit + 1},
		{Limit: 10, Keywords: []string{"phone"}},
		{Limit: 10, Keywords: []string{"phone"}, Fields: []string{"password"}},
		{Limit: 10, OrderBy: []Order{{Column: "1; drop table products"}}},
	}
	for _, f := range filters {
		_, err := m.FindByFilter(ctx, f)
		assert.ErrorIs(t, err, ErrInvalidParam)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindAllActive_Cached(t *testing.T) {
	conn, mock, conf := newTestConn(t)
	m := NewCategoriesModel(conn, conf)
	ctx := context.Background()

	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	columns := []string{"id", "name", "description", "is_active", "created_at", "updated_at"}
	mock.ExpectQuery(regexp.QuoteMeta("from `categories` where `is_active` = ? order by `name` asc")).
		WithArgs(true).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(1, "Laptops", "portable computers", true, now, now).
			AddRow(2, "Smartphones", nil, true, now, now))

	first, err := m.FindAllActive(ctx)
	require.NoError(t, err)
	require.Len(t, first, 2)

	second, err := m.FindAllActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Laptops", "Smartphones"}, []string{second[0].Name, second[1].Name})
	assert.False(t, second[1].Description.Valid)
	assert.NoError(t, mock.ExpectationsWereMet())

	require.NoError(t, m.DelActiveCache(ctx, 1))
	mock.ExpectQuery(regexp.QuoteMeta("from `categories` where `is_active` = ?")).
		WithArgs(true).
		WillReturnRows(sqlmock.NewRows(columns).AddRow(1, "Laptops", nil, true, now, now))

	third, err := m.FindAllActive(ctx)
	require.NoError(t, err)
	assert.Len(t, third, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoriesFindOne_Cached(t *testing.T) {
	conn, mock, conf := newTestConn(t)
	m := NewCategoriesModel(conn, conf)
	ctx := context.Background()

	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	columns := []string{"id", "name", "description", "is_active", "created_at", "updated_at"}
	mock.ExpectQuery(regexp.QuoteMeta("from `categories` where `id` = ? limit 1")).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows(columns).AddRow(3, "Cameras", nil, true, now, now))

	first, err := m.FindOne(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, "Cameras", first.Name)

	second, err := m.FindOne(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, first.Id, second.Id)
	assert.Equal(t, first.Name, second.Name)
	assert.NoError(t, mock.ExpectationsWereMet())

	mock.ExpectQuery(regexp.QuoteMeta("from `categories` where `id` = ? limit 1")).
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows(columns))
	_, err = m.FindOne(ctx, 99)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

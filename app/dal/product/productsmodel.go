package product

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/zeromicro/go-zero/core/stores/cache"
	"github.com/zeromicro/go-zero/core/stores/sqlc"
	"github.com/zeromicro/go-zero/core/stores/sqlx"
)

const maxFilterLimit = 500

var _ ProductsModel = (*customProductsModel)(nil)

var (
	summaryRows = "p.`id`,p.`name`,p.`description`,p.`price`,p.`rating`,p.`num_reviews`,p.`brand`,p.`image`," +
		"p.`category_id`,COALESCE(c.`name`,'') AS `category_name`,p.`is_active`,p.`created_at`,p.`updated_at`"

	filterFields = map[string]string{
		"name":        "p.`name`",
		"description": "p.`description`",
		"brand":       "p.`brand`",
	}

	orderColumns = map[string]string{
		"id":          "p.`id`",
		"rating":      "p.`rating`",
		"num_reviews": "p.`num_reviews`",
		"price":       "p.`price`",
		"created_at":  "p.`created_at`",
	}

	likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")
)

type (
	// ProductsModel is an interface to be customized, add more methods here,
	// and implement the added methods in customProductsModel.
	ProductsModel interface {
		// FindByFilter lists products joined with their category name.
		FindByFilter(ctx context.Context, filter ProductFilter) ([]*ProductSummary, error)
	}

	customProductsModel struct {
		sqlc.CachedConn
		table           string
		categoriesTable string
	}

	// ProductFilter narrows a product listing. Zero values mean "no constraint"
	// except Limit, which is required.
	ProductFilter struct {
		ActiveOnly bool
		CategoryId int64
		MinPrice   *float64
		MaxPrice   *float64
		// Keywords match when any keyword appears, case-insensitively, in any of Fields.
		Keywords []string
		Fields   []string
		OrderBy  []Order
		AfterId  int64
		Limit    int
	}

	Order struct {
		Column string
		Desc   bool
	}

	ProductSummary struct {
		Id           int64          `db:"id"`
		Name         string         `db:"name"`
		Description  string         `db:"description"`
		Price        float64        `db:"price"`
		Rating       float64        `db:"rating"`
		NumReviews   int64          `db:"num_reviews"`
		Brand        string         `db:"brand"`
		Image        sql.NullString `db:"image"`
		CategoryId   sql.NullInt64  `db:"category_id"`
		CategoryName string         `db:"category_name"`
		IsActive     bool           `db:"is_active"`
		CreatedAt    time.Time      `db:"created_at"`
		UpdatedAt    time.Time      `db:"updated_at"`
	}
)

// NewProductsModel returns a model for the database table.
func NewProductsModel(conn sqlx.SqlConn, c cache.CacheConf, opts ...cache.Option) ProductsModel {
	return &customProductsModel{
		CachedConn:      sqlc.NewConn(conn, c, opts...),
		table:           "`products`",
		categoriesTable: "`categories`",
	}
}

func (m *customProductsModel) FindByFilter(ctx context.Context, filter ProductFilter) ([]*ProductSummary, error) {
	where, args, err := filter.where()
	if err != nil {
		return nil, err
	}
	orderBy, err := filter.orderBy()
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf("select %s from %s p left join %s c on c.`id` = p.`category_id`%s order by %s limit ?",
		summaryRows, m.table, m.categoriesTable, where, orderBy)
	args = append(args, filter.Limit)

	var resp []*ProductSummary
	if err := m.QueryRowsNoCacheCtx(ctx, &resp, query, args...); err != nil {
		return nil, err
	}
	return resp, nil
}

func (f ProductFilter) where() (string, []any, error) {
	if f.Limit <= 0 || f.Limit > maxFilterLimit {
		return "", nil, ErrInvalidParam
	}

	var (
		conds []string
		args  []any
	)
	if f.ActiveOnly {
		conds = append(conds, "p.`is_active` = ?")
		args = append(args, true)
	}
	if f.CategoryId > 0 {
		conds = append(conds, "p.`category_id` = ?")
		args = append(args, f.CategoryId)
	}
	if f.MinPrice != nil {
		conds = append(conds, "p.`price` >= ?")
		args = append(args, *f.MinPrice)
	}
	if f.MaxPrice != nil {
		conds = append(conds, "p.`price` <= ?")
		args = append(args, *f.MaxPrice)
	}
	if f.AfterId > 0 {
		conds = append(conds, "p.`id` > ?")
		args = append(args, f.AfterId)
	}

	var matches []string
	for _, kw := range f.Keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		if len(f.Fields) == 0 {
			return "", nil, ErrInvalidParam
		}
		pattern := "%" + likeEscaper.Replace(kw) + "%"
		for _, field := range f.Fields {
			column, ok := filterFields[field]
			if !ok {
				return "", nil, ErrInvalidParam
			}
			matches = append(matches, fmt.Sprintf("LOWER(%s) LIKE ? ESCAPE '!'", column))
			args = append(args, pattern)
		}
	}
	if len(matches) > 0 {
		conds = append(conds, "("+strings.Join(matches, " OR ")+")")
	}

	if len(conds) == 0 {
		return "", args, nil
	}
	return " where " + strings.Join(conds, " and "), args, nil
}

func (f ProductFilter) orderBy() (string, error) {
	clauses := make([]string, 0, len(f.OrderBy)+1)
	seenId := false
	for _, o := range f.OrderBy {
		column, ok := orderColumns[o.Column]
		if !ok {
			return "", ErrInvalidParam
		}
		dir := "asc"
		if o.Desc {
			dir = "desc"
		}
		clauses = append(clauses, column+" "+dir)
		seenId = seenId || o.Column == "id"
	}
	if !seenId {
		clauses = append(clauses, "p.`id` asc")
	}
	return strings.Join(clauses, ", "), nil
}

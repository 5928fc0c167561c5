// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package assistant

import (
	"context"
	"strings"

	"VoiceMart/app/api/assistant/internal/logic/helper"
	"VoiceMart/app/api/assistant/internal/svc"
	"VoiceMart/app/api/assistant/internal/types"
	"VoiceMart/app/assistant/catalog"
	"VoiceMart/app/assistant/responder"
	"VoiceMart/app/common/consts/errno"

	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/x/errors"
)

type RecommendationsLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewRecommendationsLogic(ctx context.Context, svcCtx *svc.ServiceContext) *RecommendationsLogic {
	return &RecommendationsLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *RecommendationsLogic) Recommendations(req *types.RecommendationsRequest) (resp *types.RecommendationsResponse, err error) {
	if req == nil {
		req = &types.RecommendationsRequest{}
	}
	if req.PriceRange.Min < 0 || req.PriceRange.Max < 0 ||
		(req.PriceRange.Max > 0 && req.PriceRange.Min > req.PriceRange.Max) {
		return nil, errors.New(errno.InvalidParam, "invalid price range")
	}

	p := responder.RecommendationPredicate()

	if name := strings.TrimSpace(req.Category); name != "" {
		categories, err := l.svcCtx.Catalog.ActiveCategories(l.ctx)
		if err != nil {
			l.Logger.Errorw("list categories failed", logx.Field("err", err))
			return nil, errors.New(errno.CatalogUnavailable, "catalog unavailable")
		}
		c, ok := catalog.FindCategory(categories, name)
		if !ok {
			return nil, errors.New(errno.CategoryNotFound, "category not found")
		}
		p.CategoryID = c.ID
	}
	// zero means unbounded on either side
	if req.PriceRange.Min > 0 {
		p.MinPrice = catalog.Price(req.PriceRange.Min)
	}
	if req.PriceRange.Max > 0 {
		p.MaxPrice = catalog.Price(req.PriceRange.Max)
	}

	products, err := l.svcCtx.Catalog.Find(l.ctx, p)
	if err != nil {
		l.Logger.Errorw("find recommendations failed", logx.Field("category_id", p.CategoryID), logx.Field("err", err))
		return nil, errors.New(errno.CatalogUnavailable, "catalog unavailable")
	}

	return &types.RecommendationsResponse{Products: helper.ToProductItems(products)}, nil
}

// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package assistant

import (
	"context"
	"strings"

	"VoiceMart/app/api/assistant/internal/logic/helper"
	"VoiceMart/app/api/assistant/internal/svc"
	"VoiceMart/app/api/assistant/internal/types"
	"VoiceMart/app/common/consts/errno"

	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/x/errors"
)

type VoiceSearchLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewVoiceSearchLogic(ctx context.Context, svcCtx *svc.ServiceContext) *VoiceSearchLogic {
	return &VoiceSearchLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *VoiceSearchLogic) VoiceSearch(req *types.VoiceSearchRequest) (resp *types.VoiceSearchResponse, err error) {
	if req == nil || strings.TrimSpace(req.Query) == "" {
		return nil, errors.New(errno.QueryEmpty, "search query is required")
	}

	results := helper.ToProductItems(l.svcCtx.Resolver.Relevant(l.ctx, req.Query))
	l.Logger.Infow("voice search", logx.Field("query", req.Query), logx.Field("results", len(results)))

	return &types.VoiceSearchResponse{
		Query:   req.Query,
		Results: results,
		Count:   len(results),
	}, nil
}

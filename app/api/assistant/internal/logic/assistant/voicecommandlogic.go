// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package assistant

import (
	"context"
	stderrors "errors"

	"VoiceMart/app/api/assistant/internal/logic/helper"
	"VoiceMart/app/api/assistant/internal/mq"
	"VoiceMart/app/api/assistant/internal/svc"
	"VoiceMart/app/api/assistant/internal/types"
	"VoiceMart/app/assistant/dispatch"
	"VoiceMart/app/assistant/reply"
	"VoiceMart/app/common/consts/errno"

	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/x/errors"
)

type VoiceCommandLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewVoiceCommandLogic(ctx context.Context, svcCtx *svc.ServiceContext) *VoiceCommandLogic {
	return &VoiceCommandLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *VoiceCommandLogic) VoiceCommand(req *types.VoiceCommandRequest) (resp *types.VoiceCommandResponse, err error) {
	if req == nil {
		return nil, errors.New(errno.CommandEmpty, dispatch.ErrEmptyCommand.Error())
	}

	page := reply.PageContext{Page: req.Context.Page}
	env, err := l.svcCtx.Dispatcher.Dispatch(l.ctx, req.Command, page)
	if err != nil {
		if stderrors.Is(err, dispatch.ErrEmptyCommand) {
			return nil, errors.New(errno.CommandEmpty, err.Error())
		}
		l.Logger.Errorw("dispatch command failed", logx.Field("err", err))
		return nil, errors.New(errno.InternalError, "failed to interpret command")
	}

	l.svcCtx.Events.PublishAsync(mq.NewCommandEvent(env, req.Command, page))

	return helper.ToVoiceCommandResponse(env), nil
}

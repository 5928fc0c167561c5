// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package assistant

import (
	"net/http"

	"VoiceMart/app/api/assistant/internal/logic/assistant"
	"VoiceMart/app/api/assistant/internal/svc"
	"VoiceMart/app/api/assistant/internal/types"
	"VoiceMart/app/common/consts/errno"

	"github.com/zeromicro/go-zero/rest/httpx"
	"github.com/zeromicro/x/errors"
)

func VoiceSearchHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.VoiceSearchRequest
		if err := httpx.Parse(r, &req); err != nil {
			httpx.ErrorCtx(r.Context(), w, errors.New(errno.InvalidParam, err.Error()))
			return
		}

		l := assistant.NewVoiceSearchLogic(r.Context(), svcCtx)
		resp, err := l.VoiceSearch(&req)
		if err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
		} else {
			httpx.OkJsonCtx(r.Context(), w, resp)
		}
	}
}

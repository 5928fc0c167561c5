package middleware

import (
	"net/http"
	"time"

	"VoiceMart/app/common/consts/errno"
	"VoiceMart/app/common/util"

	"github.com/zeromicro/go-zero/core/limit"
	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/core/stores/redis"
	"github.com/zeromicro/go-zero/rest/httpx"
	"github.com/zeromicro/x/errors"
)

type CommandLimitMiddleware struct {
	limiter *limit.PeriodLimit
}

// NewCommandLimitMiddleware allows quota commands per client per period. A nil
// store disables limiting.
func NewCommandLimitMiddleware(store *redis.Redis, keyPrefix string, period time.Duration, quota int) *CommandLimitMiddleware {
	if store == nil || quota <= 0 {
		return &CommandLimitMiddleware{}
	}
	seconds := int(period / time.Second)
	if seconds <= 0 {
		seconds = 1
	}
	return &CommandLimitMiddleware{
		limiter: limit.NewPeriodLimit(seconds, quota, store, keyPrefix),
	}
}

func (m *CommandLimitMiddleware) Handle(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if m.limiter == nil {
			next(w, r)
			return
		}

		key := util.ClientKey(r)
		code, err := m.limiter.TakeCtx(r.Context(), key)
		if err != nil {
			// redis trouble must not take the assistant down
			logx.WithContext(r.Context()).Errorw("command limiter unavailable, allowing request",
				logx.Field("client", key),
				logx.Field("err", err),
			)
			next(w, r)
			return
		}

		if code == limit.OverQuota {
			httpx.ErrorCtx(r.Context(), w, errors.New(errno.TooManyRequests, "too many voice commands, please slow down"))
			return
		}
		next(w, r)
	}
}

package response

import (
	"context"
	"errors"
	"net/http"

	"VoiceMart/app/common/consts/errno"

	"github.com/zeromicro/go-zero/rest/httpx"
	xerrors "github.com/zeromicro/x/errors"
)

type Response struct {
	StatusCode int    `json:"code"`
	StatusMsg  string `json:"message"`
}

func NewResponse(statusCode int, statusMsg string) Response {
	return Response{
		StatusCode: statusCode,
		StatusMsg:  statusMsg,
	}
}

// ErrorHandler maps coded errors to a Response body and an HTTP status; 4xxxx
// codes are client errors, everything else is a server error.
func ErrorHandler(_ context.Context, err error) (int, any) {
	var codeErr *xerrors.CodeMsg
	if errors.As(err, &codeErr) {
		return httpStatus(codeErr.Code), NewResponse(codeErr.Code, codeErr.Msg)
	}
	return http.StatusInternalServerError, NewResponse(errno.InternalError, err.Error())
}

func httpStatus(code int) int {
	switch {
	case code == errno.TooManyRequests:
		return http.StatusTooManyRequests
	case code == errno.CategoryNotFound:
		return http.StatusNotFound
	case code >= 40000 && code < 50000:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Setup installs ErrorHandler on go-zero's httpx.
func Setup() {
	httpx.SetErrorHandlerCtx(ErrorHandler)
}

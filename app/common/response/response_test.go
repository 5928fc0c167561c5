package response

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"VoiceMart/app/common/consts/errno"

	"github.com/stretchr/testify/assert"
	xerrors "github.com/zeromicro/x/errors"
)

func TestErrorHandler(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		body   Response
	}{
		{"invalid param", xerrors.New(errno.CommandEmpty, "command is required"), http.StatusBadRequest, Response{errno.CommandEmpty, "command is required"}},
		{"rate limited", xerrors.New(errno.TooManyRequests, "slow down"), http.StatusTooManyRequests, Response{errno.TooManyRequests, "slow down"}},
		{"category", xerrors.New(errno.CategoryNotFound, "no such category"), http.StatusNotFound, Response{errno.CategoryNotFound, "no such category"}},
		{"wrapped", fmt.Errorf("logic: %w", xerrors.New(errno.CatalogUnavailable, "catalog down")), http.StatusInternalServerError, Response{errno.CatalogUnavailable, "catalog down"}},
		{"plain", fmt.Errorf("boom"), http.StatusInternalServerError, Response{errno.InternalError, "boom"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := ErrorHandler(context.Background(), tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.body, body)
		})
	}
}

package api

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/mkarlsen/tenant-auth-api/internal/utils"
)

type BaseHandler struct{}

// RequestCtx lifts gin context keys into the request context under typed keys,
// so services and repositories never see gin.
func (h *BaseHandler) RequestCtx(ginCtx *gin.Context) context.Context {
	ctx := ginCtx.Request.Context()
	for k, v := range ginCtx.Keys {
		ctx = context.WithValue(ctx, utils.ContextKey(k), v)
	}
	return ctx
}

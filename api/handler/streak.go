package handler

import (
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/eduhub/backend/pkg/httpcontext"
	streakUC "github.com/eduhub/backend/usecase/streak"
)

type StreakHandler struct {
	baseHandler
	uc *streakUC.UseCase
}

func NewStreakHandler(uc *streakUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *StreakHandler {
	return &StreakHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Current streak
// @Tags streak
// @Router /api/v1/streak [get]
func (h *StreakHandler) GetStreak(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	record, err := h.uc.Get(stdCtx, userID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, record)
}

// @Summary Mark today's activity
// @Tags streak
// @Router /api/v1/streak/mark [post]
func (h *StreakHandler) MarkToday(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	record, err := h.uc.MarkToday(stdCtx, userID, time.Now())
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, record)
}

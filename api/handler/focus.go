package handler

import (
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/eduhub/backend/pkg/httpcontext"
	focusUC "github.com/eduhub/backend/usecase/focus"
)

type FocusHandler struct {
	baseHandler
	uc *focusUC.UseCase
}

func NewFocusHandler(uc *focusUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *FocusHandler {
	return &FocusHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Timer status
// @Tags focus
// @Router /api/v1/focus [get]
func (h *FocusHandler) GetStatus(ctx *fasthttp.RequestCtx) {
	h.respondSuccess(ctx, http.StatusOK, h.uc.Current(h.userID(ctx)))
}

// @Summary Start or resume the timer
// @Tags focus
// @Router /api/v1/focus/start [post]
func (h *FocusHandler) Start(ctx *fasthttp.RequestCtx) {
	h.respondSuccess(ctx, http.StatusOK, h.uc.Start(h.userID(ctx), time.Now()))
}

// @Summary Pause the timer
// @Tags focus
// @Router /api/v1/focus/pause [post]
func (h *FocusHandler) Pause(ctx *fasthttp.RequestCtx) {
	h.respondSuccess(ctx, http.StatusOK, h.uc.Pause(h.userID(ctx)))
}

// @Summary Stop the timer, committing the session
// @Tags focus
// @Router /api/v1/focus/stop [post]
func (h *FocusHandler) Stop(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	status, err := h.uc.Stop(stdCtx, userID, time.Now())
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, status)
}

// @Summary Reset a stopped or paused timer
// @Tags focus
// @Router /api/v1/focus/reset [post]
func (h *FocusHandler) Reset(ctx *fasthttp.RequestCtx) {
	status, err := h.uc.Reset(h.userID(ctx))
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, status)
}

// @Summary Today's focus total
// @Tags focus
// @Router /api/v1/focus/today [get]
func (h *FocusHandler) Today(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	total, err := h.uc.Today(stdCtx, userID, time.Now())
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, total)
}

package handler

import (
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/eduhub/backend/pkg/httpcontext"
	dashUC "github.com/eduhub/backend/usecase/dashboard"
)

type DashboardHandler struct {
	baseHandler
	uc *dashUC.UseCase
}

func NewDashboardHandler(uc *dashUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Dashboard view
// @Tags dashboard
// @Router /api/v1/dashboard [get]
func (h *DashboardHandler) GetDashboard(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	dash, err := h.uc.Build(stdCtx, userID, time.Now())
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, dash)
}

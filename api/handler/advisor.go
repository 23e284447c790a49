package handler

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/eduhub/backend/api/transport"
	"github.com/eduhub/backend/domain"
	"github.com/eduhub/backend/pkg/httpcontext"
	advisorUC "github.com/eduhub/backend/usecase/advisor"
)

type AdvisorHandler struct {
	baseHandler
	uc *advisorUC.UseCase
}

func NewAdvisorHandler(uc *advisorUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *AdvisorHandler {
	return &AdvisorHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Work advice for the current situation
// @Tags advisor
// @Router /api/v1/advisor [post]
func (h *AdvisorHandler) Advise(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	report, err := h.uc.Advise(stdCtx, userID, time.Now())
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, report)
}

// @Summary Chat with the companion
// @Tags advisor
// @Router /api/v1/chat [post]
func (h *AdvisorHandler) Chat(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)

	var req transport.ChatRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || strings.TrimSpace(req.Message) == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	reply, err := h.uc.Chat(stdCtx, userID, req.Message, time.Now())
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, map[string]string{"reply": reply})
}

// @Summary Clear chat history
// @Tags advisor
// @Router /api/v1/chat [delete]
func (h *AdvisorHandler) ClearChat(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.ClearHistory(stdCtx, userID); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusNoContent, nil)
}

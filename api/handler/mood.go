package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/eduhub/backend/api/transport"
	"github.com/eduhub/backend/domain"
	"github.com/eduhub/backend/pkg/httpcontext"
	moodUC "github.com/eduhub/backend/usecase/mood"
)

type MoodHandler struct {
	baseHandler
	uc *moodUC.UseCase
}

func NewMoodHandler(uc *moodUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *MoodHandler {
	return &MoodHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary List mood entries
// @Tags moods
// @Router /api/v1/moods [get]
func (h *MoodHandler) GetMoods(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	moods, err := h.uc.ListMoods(stdCtx, userID, parseInt(string(ctx.QueryArgs().Peek("limit")), 30))
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, moods)
}

// @Summary Record mood
// @Tags moods
// @Router /api/v1/moods [post]
func (h *MoodHandler) CreateMood(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)

	var req transport.MoodRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || req.Mood == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.uc.CreateMood(stdCtx, &domain.MoodEntry{
		UserID: userID,
		Mood:   req.Mood,
		Note:   req.Note,
		Date:   time.Now(),
	})
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, created)
}

// @Summary Delete mood entry
// @Tags moods
// @Router /api/v1/moods/{id} [delete]
func (h *MoodHandler) DeleteMood(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)

	id, _ := ctx.UserValue("id").(string)
	if id == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "missing mood id", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.DeleteMood(stdCtx, userID, id); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusNoContent, nil)
}

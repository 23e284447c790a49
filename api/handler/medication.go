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
	medUC "github.com/eduhub/backend/usecase/medication"
)

type MedicationHandler struct {
	baseHandler
	uc *medUC.UseCase
}

func NewMedicationHandler(uc *medUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *MedicationHandler {
	return &MedicationHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary List medications
// @Tags medications
// @Router /api/v1/medications [get]
func (h *MedicationHandler) GetMedications(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	meds, err := h.uc.ListMedications(stdCtx, userID, parseInt(string(ctx.QueryArgs().Peek("limit")), 0))
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, meds)
}

// @Summary Create medication
// @Tags medications
// @Router /api/v1/medications [post]
func (h *MedicationHandler) CreateMedication(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)

	med, ok := h.parseMedication(ctx, userID)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.uc.CreateMedication(stdCtx, med)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, created)
}

// @Summary Update medication
// @Tags medications
// @Router /api/v1/medications/{id} [put]
func (h *MedicationHandler) UpdateMedication(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)

	med, ok := h.parseMedication(ctx, userID)
	if !ok {
		return
	}
	if med.ID == "" {
		med.ID, _ = ctx.UserValue("id").(string)
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, err := h.uc.UpdateMedication(stdCtx, med)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, updated)
}

// @Summary Delete medication
// @Tags medications
// @Router /api/v1/medications/{id} [delete]
func (h *MedicationHandler) DeleteMedication(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)

	id, _ := ctx.UserValue("id").(string)
	if id == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "missing medication id", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.DeleteMedication(stdCtx, userID, id); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusNoContent, nil)
}

// @Summary Log medication intake
// @Tags medications
// @Router /api/v1/medications/{id}/log [post]
func (h *MedicationHandler) LogTaken(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)

	id, _ := ctx.UserValue("id").(string)
	if id == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "missing medication id", nil))
		return
	}

	var req transport.MedicationLogRequest
	_ = json.Unmarshal(ctx.PostBody(), &req)

	var takenAt time.Time
	if req.TakenAt != "" {
		if parsed, err := time.Parse(time.RFC3339, req.TakenAt); err == nil {
			takenAt = parsed
		}
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	logged, err := h.uc.LogTaken(stdCtx, userID, id, takenAt)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, map[string]interface{}{"taken_at": logged})
}

func (h *MedicationHandler) parseMedication(ctx *fasthttp.RequestCtx, userID string) (*domain.Medication, bool) {
	var req transport.MedicationRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return nil, false
	}
	return &domain.Medication{
		ID:        req.ID,
		UserID:    userID,
		Name:      req.Name,
		Dosage:    req.Dosage,
		Frequency: req.Frequency,
		Times:     req.Times,
		Notes:     req.Notes,
	}, true
}
